package notification

import "time"

type DeviceToken struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"userId" firestore:"user_id"`
	Token     string    `json:"token" firestore:"token"`
	Platform  string    `json:"platform" firestore:"platform"`
	CreatedAt time.Time `json:"createdAt" firestore:"created_at"`
}

type RegisterDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}
