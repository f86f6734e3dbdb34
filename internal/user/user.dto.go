package user

type RegisterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	ProfileImageURL *string `json:"profileImageUrl"`
}
