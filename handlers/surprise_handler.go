package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"whispersofusAPI/internal/surprise"
	"whispersofusAPI/services"
)

type SurpriseHandler struct {
	surpriseService *services.SurpriseService
	userService     *services.UserService
}

func NewSurpriseHandler(surpriseService *services.SurpriseService, userService *services.UserService) *SurpriseHandler {
	return &SurpriseHandler{
		surpriseService: surpriseService,
		userService:     userService,
	}
}

// POST /surprises
func (h *SurpriseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	var req surprise.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.surpriseService.CreateSurprise(ctx, u.ID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// GET /surprises?creator=me
func (h *SurpriseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	var (
		surprises []*surprise.Surprise
		err       error
	)
	if r.URL.Query().Get("creator") == "me" {
		surprises, err = h.surpriseService.GetSurprisesByCreator(ctx, u.ID)
	} else {
		surprises, err = h.surpriseService.GetAllSurprises(ctx)
	}
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, surprises)
}

// GET /surprises/unlocked
func (h *SurpriseHandler) GetUnlocked(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	surprises, err := h.surpriseService.GetUnlockedSurprises(ctx)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, surprises)
}

// GET /surprises/locked
func (h *SurpriseHandler) GetLocked(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	surprises, err := h.surpriseService.GetLockedSurprises(ctx)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, surprises)
}

// GET /surprises/stats
func (h *SurpriseHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	stats, err := h.surpriseService.GetStats(ctx)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// PUT /surprises/{id}/unlock
func (h *SurpriseHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	unlocked, err := h.surpriseService.UnlockSurprise(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, unlocked)
}

// PUT /surprises/{id}
func (h *SurpriseHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	var req surprise.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.surpriseService.UpdateSurprise(ctx, mux.Vars(r)["id"], &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// DELETE /surprises/{id}
func (h *SurpriseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	if err := h.surpriseService.DeleteSurprise(ctx, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "surprise deleted"})
}
