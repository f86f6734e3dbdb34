package surprise

import "time"

type ContentType string

const (
	ContentMessage ContentType = "MESSAGE"
	ContentPhoto   ContentType = "PHOTO"
	ContentVideo   ContentType = "VIDEO"
	ContentVoice   ContentType = "VOICE"
)

// ParseContentType falls back to MESSAGE for unknown values.
func ParseContentType(s string) ContentType {
	switch ContentType(s) {
	case ContentMessage, ContentPhoto, ContentVideo, ContentVoice:
		return ContentType(s)
	}
	return ContentMessage
}

type Surprise struct {
	ID              string      `json:"id" firestore:"-"`
	CreatorID       string      `json:"creatorId" firestore:"creator_id"`
	Title           string      `json:"title" firestore:"title"`
	Description     string      `json:"description" firestore:"description"`
	UnlockCondition string      `json:"unlockCondition" firestore:"unlock_condition"`
	ContentURL      string      `json:"contentUrl,omitempty" firestore:"content_url"`
	ContentType     ContentType `json:"contentType" firestore:"content_type"`
	IsUnlocked      bool        `json:"isUnlocked" firestore:"is_unlocked"`
	UnlockDate      *time.Time  `json:"unlockDate,omitempty" firestore:"unlock_date"`
	CreatedAt       time.Time   `json:"createdAt" firestore:"created_at"`
}

type CreateRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	UnlockCondition string `json:"unlockCondition"`
	ContentURL      string `json:"contentUrl"`
	ContentType     string `json:"contentType"`
}

type UpdateRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	UnlockCondition *string `json:"unlockCondition"`
	ContentURL      *string `json:"contentUrl"`
	ContentType     *string `json:"contentType"`
}

type Stats struct {
	Total    int64 `json:"total"`
	Unlocked int64 `json:"unlocked"`
}
