package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"whispersofusAPI/internal/photomoment"
	"whispersofusAPI/services"
)

type PhotoMomentHandler struct {
	photoService *services.PhotoMomentService
	userService  *services.UserService
}

func NewPhotoMomentHandler(photoService *services.PhotoMomentService, userService *services.UserService) *PhotoMomentHandler {
	return &PhotoMomentHandler{
		photoService: photoService,
		userService:  userService,
	}
}

// POST /photo-moments
func (h *PhotoMomentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	var req photomoment.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	moment, err := h.photoService.CreatePhotoMoment(ctx, u.ID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, moment)
}

// GET /photo-moments
func (h *PhotoMomentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	moments, err := h.photoService.GetAllPhotoMoments(ctx)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, moments)
}

// GET /photo-moments/favorites
func (h *PhotoMomentHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	moments, err := h.photoService.GetFavorites(ctx)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, moments)
}

// PUT /photo-moments/{id}/favorite
func (h *PhotoMomentHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	moment, err := h.photoService.ToggleFavorite(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, moment)
}

// GET /photo-moments/stats
func (h *PhotoMomentHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	stats, err := h.photoService.GetStats(ctx)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// DELETE /photo-moments/{id}
func (h *PhotoMomentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	if err := h.photoService.DeletePhotoMoment(ctx, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "photo moment deleted"})
}
