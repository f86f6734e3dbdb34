package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"whispersofusAPI/internal/partner"
	"whispersofusAPI/services"
)

type PartnerHandler struct {
	partnerService *services.PartnerService
	userService    *services.UserService
}

func NewPartnerHandler(partnerService *services.PartnerService, userService *services.UserService) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		userService:    userService,
	}
}

// POST /partners/request
func (h *PartnerHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	var req partner.SendRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ReceiverID == "" {
		respondWithError(w, http.StatusBadRequest, "receiverId is required")
		return
	}

	created, err := h.partnerService.SendPartnerRequest(ctx, u.ID, req.ReceiverID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// POST /partners/respond
func (h *PartnerHandler) Respond(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	var req partner.RespondRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RequestID == "" {
		respondWithError(w, http.StatusBadRequest, "requestId is required")
		return
	}

	updated, err := h.partnerService.RespondToPartnerRequest(ctx, req.RequestID, req.Accepted, u.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// GET /partners/me
//
// Having no partner is a normal state for a fresh account, so it answers 200
// with an explicit null rather than an error.
func (h *PartnerHandler) GetPartner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	p, err := h.partnerService.GetPartner(ctx, u.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

// GET /partners/status
func (h *PartnerHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	p, err := h.partnerService.GetPartner(ctx, u.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	resp := map[string]interface{}{
		"hasPartner": p != nil,
	}
	if p != nil {
		resp["partner"] = p
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// GET /partners/requests/received
func (h *PartnerHandler) GetReceivedRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	requests, err := h.partnerService.GetReceivedRequests(ctx, u.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, requests)
}

// GET /partners/requests/pending
func (h *PartnerHandler) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	requests, err := h.partnerService.GetPendingReceivedRequests(ctx, u.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, requests)
}

// GET /partners/requests/sent
func (h *PartnerHandler) GetSentRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	requests, err := h.partnerService.GetSentRequests(ctx, u.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, requests)
}
