package partner

import "time"

// RequestStatus tracks the lifecycle of a partner request.
// PENDING is the initial state; ACCEPTED and REJECTED are terminal.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusAccepted RequestStatus = "ACCEPTED"
	StatusRejected RequestStatus = "REJECTED"
)

// Terminal reports whether no further transition is allowed from s.
func (s RequestStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Request is a proposal from one user to another to form a partnership.
type Request struct {
	ID         string        `json:"id" firestore:"-"`
	SenderID   string        `json:"senderId" firestore:"sender_id"`
	ReceiverID string        `json:"receiverId" firestore:"receiver_id"`
	Status     RequestStatus `json:"status" firestore:"status"`
	CreatedAt  time.Time     `json:"createdAt" firestore:"created_at"`
	UpdatedAt  time.Time     `json:"updatedAt" firestore:"updated_at"`
}

// Partnership is the persisted record of an accepted, exclusive two-user
// pairing. User1ID/User2ID are stored in sorted order so the pair key and
// either-direction queries agree on one canonical form.
type Partnership struct {
	ID        string    `json:"id" firestore:"-"`
	User1ID   string    `json:"user1Id" firestore:"user1_id"`
	User2ID   string    `json:"user2Id" firestore:"user2_id"`
	LinkedAt  time.Time `json:"linkedAt" firestore:"linked_at"`
	CreatedAt time.Time `json:"createdAt" firestore:"created_at"`
}

func (p *Partnership) Contains(userID string) bool {
	return p.User1ID == userID || p.User2ID == userID
}

// PartnerOf returns the other member of the partnership, or "" when userID
// is not part of it.
func (p *Partnership) PartnerOf(userID string) string {
	switch userID {
	case p.User1ID:
		return p.User2ID
	case p.User2ID:
		return p.User1ID
	}
	return ""
}

// SortPair orders two user IDs lexicographically.
func SortPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// PairKey is the canonical document ID for the unordered pair {a, b}.
// Writing partnerships under this key makes a duplicate-pair insert fail at
// the store instead of silently creating a second record.
func PairKey(a, b string) string {
	first, second := SortPair(a, b)
	return first + "_" + second
}
