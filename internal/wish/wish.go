package wish

import "time"

type Category string

const (
	CategoryTravel    Category = "TRAVEL"
	CategoryFood      Category = "FOOD"
	CategoryAdventure Category = "ADVENTURE"
	CategoryGift      Category = "GIFT"
	CategoryDateIdea  Category = "DATE_IDEA"
	CategoryOther     Category = "OTHER"
)

// ParseCategory falls back to OTHER for unknown values.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryTravel, CategoryFood, CategoryAdventure, CategoryGift, CategoryDateIdea, CategoryOther:
		return Category(s)
	}
	return CategoryOther
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusFulfilled Status = "FULFILLED"
	StatusCancelled Status = "CANCELLED"
)

func ValidStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusFulfilled, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

type Wish struct {
	ID              string     `json:"id" firestore:"-"`
	CreatorID       string     `json:"creatorId" firestore:"creator_id"`
	Title           string     `json:"title" firestore:"title"`
	Description     string     `json:"description" firestore:"description"`
	PhotoURL        string     `json:"photoUrl,omitempty" firestore:"photo_url"`
	Category        Category   `json:"category" firestore:"category"`
	Status          Status     `json:"status" firestore:"status"`
	FulfillmentNote string     `json:"fulfillmentNote,omitempty" firestore:"fulfillment_note"`
	CreatedAt       time.Time  `json:"createdAt" firestore:"created_at"`
	FulfilledAt     *time.Time `json:"fulfilledAt,omitempty" firestore:"fulfilled_at"`
}

type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
	Category    string `json:"category"`
}

type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PhotoURL    *string `json:"photoUrl"`
	Category    *string `json:"category"`
}

type StatusUpdateRequest struct {
	Status          string `json:"status"`
	FulfillmentNote string `json:"fulfillmentNote"`
}

type Stats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Fulfilled int64 `json:"fulfilled"`
	Cancelled int64 `json:"cancelled"`
}
