package photomoment

import "time"

type PhotoMoment struct {
	ID         string     `json:"id" firestore:"-"`
	UploaderID string     `json:"uploaderId" firestore:"uploader_id"`
	PhotoURL   string     `json:"photoUrl" firestore:"photo_url"`
	Caption    string     `json:"caption" firestore:"caption"`
	Location   string     `json:"location,omitempty" firestore:"location"`
	TakenAt    *time.Time `json:"takenAt,omitempty" firestore:"taken_at"`
	IsFavorite bool       `json:"isFavorite" firestore:"is_favorite"`
	UploadedAt time.Time  `json:"uploadedAt" firestore:"uploaded_at"`
}

type CreateRequest struct {
	PhotoURL string     `json:"photoUrl"`
	Caption  string     `json:"caption"`
	Location string     `json:"location"`
	TakenAt  *time.Time `json:"takenAt"`
}

type Stats struct {
	Total     int64 `json:"total"`
	Favorites int64 `json:"favorites"`
}
