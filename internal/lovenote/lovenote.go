package lovenote

import "time"

type EmotionTag string

const (
	TagLove     EmotionTag = "LOVE"
	TagHappy    EmotionTag = "HAPPY"
	TagMissYou  EmotionTag = "MISS_YOU"
	TagGrateful EmotionTag = "GRATEFUL"
	TagExcited  EmotionTag = "EXCITED"
)

// ParseEmotionTag falls back to LOVE for unknown values.
func ParseEmotionTag(s string) EmotionTag {
	switch EmotionTag(s) {
	case TagLove, TagHappy, TagMissYou, TagGrateful, TagExcited:
		return EmotionTag(s)
	}
	return TagLove
}

type LoveNote struct {
	ID            string     `json:"id" firestore:"-"`
	SenderID      string     `json:"senderId" firestore:"sender_id"`
	ReceiverID    string     `json:"receiverId" firestore:"receiver_id"`
	Content       string     `json:"content" firestore:"content"`
	EmotionTag    EmotionTag `json:"emotionTag" firestore:"emotion_tag"`
	ReactionEmoji string     `json:"reactionEmoji,omitempty" firestore:"reaction_emoji"`
	IsRead        bool       `json:"isRead" firestore:"is_read"`
	CreatedAt     time.Time  `json:"createdAt" firestore:"created_at"`
	ReadAt        *time.Time `json:"readAt,omitempty" firestore:"read_at"`
}

type CreateRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	EmotionTag string `json:"emotionTag"`
}

type ReactionRequest struct {
	Emoji string `json:"emoji"`
}
