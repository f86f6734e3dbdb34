package user

import "time"

type Role string

const (
	RolePartner Role = "PARTNER"
	RoleAdmin   Role = "ADMIN"
)

type User struct {
	ID              string    `json:"id" firestore:"-"`
	ClerkID         string    `json:"clerkId" firestore:"clerk_id"`
	Email           string    `json:"email" firestore:"email"`
	Name            string    `json:"name" firestore:"name"`
	Role            Role      `json:"role" firestore:"role"`
	ProfileImageURL string    `json:"profileImageUrl" firestore:"profile_image_url"`
	CreatedAt       time.Time `json:"createdAt" firestore:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" firestore:"updated_at"`
}
