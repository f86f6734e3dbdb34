package memory

import "time"

type Type string

const (
	TypeFirstMeeting Type = "FIRST_MEETING"
	TypeDate         Type = "DATE"
	TypeTrip         Type = "TRIP"
	TypeAnniversary  Type = "ANNIVERSARY"
	TypeCelebration  Type = "CELEBRATION"
	TypeOther        Type = "OTHER"
)

// ParseType falls back to OTHER for unknown values.
func ParseType(s string) Type {
	switch Type(s) {
	case TypeFirstMeeting, TypeDate, TypeTrip, TypeAnniversary, TypeCelebration, TypeOther:
		return Type(s)
	}
	return TypeOther
}

type Memory struct {
	ID          string    `json:"id" firestore:"-"`
	CreatorID   string    `json:"creatorId" firestore:"creator_id"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	MemoryDate  time.Time `json:"memoryDate" firestore:"memory_date"`
	Type        Type      `json:"type" firestore:"type"`
	PhotoURLs   []string  `json:"photoUrls,omitempty" firestore:"photo_urls"`
	Location    string    `json:"location,omitempty" firestore:"location"`
	IsMilestone bool      `json:"isMilestone" firestore:"is_milestone"`
	CreatedAt   time.Time `json:"createdAt" firestore:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updated_at"`
}

type CreateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MemoryDate  time.Time `json:"memoryDate"`
	PhotoURLs   []string  `json:"photoUrls"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	IsMilestone *bool     `json:"isMilestone"`
}

type UpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	MemoryDate  *time.Time `json:"memoryDate"`
	PhotoURLs   []string   `json:"photoUrls"`
	Location    *string    `json:"location"`
	Type        *string    `json:"type"`
	IsMilestone *bool      `json:"isMilestone"`
}
