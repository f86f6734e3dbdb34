package partner

type SendRequestDTO struct {
	ReceiverID string `json:"receiverId"`
}

type RespondRequestDTO struct {
	RequestID string `json:"requestId"`
	Accepted  bool   `json:"accepted"`
}
