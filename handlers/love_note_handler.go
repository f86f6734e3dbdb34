package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"whispersofusAPI/internal/lovenote"
	"whispersofusAPI/services"
)

type LoveNoteHandler struct {
	loveNoteService *services.LoveNoteService
	userService     *services.UserService
}

func NewLoveNoteHandler(loveNoteService *services.LoveNoteService, userService *services.UserService) *LoveNoteHandler {
	return &LoveNoteHandler{
		loveNoteService: loveNoteService,
		userService:     userService,
	}
}

// POST /love-notes
func (h *LoveNoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	var req lovenote.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		respondWithError(w, http.StatusBadRequest, "content is required")
		return
	}

	note, err := h.loveNoteService.CreateLoveNote(ctx, u.ID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, note)
}

// GET /love-notes?page=&size=
func (h *LoveNoteHandler) GetReceived(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	page, size := paging(r, 0, 20)
	notes, err := h.loveNoteService.GetNotesForReceiver(ctx, u.ID, page, size)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, notes)
}

// GET /love-notes/unread
func (h *LoveNoteHandler) GetUnread(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	notes, err := h.loveNoteService.GetUnreadNotes(ctx, u.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, notes)
}

// GET /love-notes/unread/count
func (h *LoveNoteHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	count, err := h.loveNoteService.GetUnreadNotesCount(ctx, u.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// PUT /love-notes/{id}/read
func (h *LoveNoteHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	note, err := h.loveNoteService.MarkNoteAsRead(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, note)
}

// POST /love-notes/{id}/reaction
func (h *LoveNoteHandler) React(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	var req lovenote.ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Emoji == "" {
		respondWithError(w, http.StatusBadRequest, "emoji is required")
		return
	}

	note, err := h.loveNoteService.AddReaction(ctx, mux.Vars(r)["id"], req.Emoji)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, note)
}

// DELETE /love-notes/{id}
func (h *LoveNoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	if err := h.loveNoteService.DeleteLoveNote(ctx, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "love note deleted"})
}
