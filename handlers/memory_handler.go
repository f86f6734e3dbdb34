package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"whispersofusAPI/internal/memory"
	"whispersofusAPI/services"
)

type MemoryHandler struct {
	memoryService *services.MemoryService
	userService   *services.UserService
}

func NewMemoryHandler(memoryService *services.MemoryService, userService *services.UserService) *MemoryHandler {
	return &MemoryHandler{
		memoryService: memoryService,
		userService:   userService,
	}
}

// POST /memories
func (h *MemoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := currentUser(ctx, h.userService, w)
	if !ok {
		return
	}

	var req memory.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.memoryService.CreateMemory(ctx, u.ID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// GET /memories?order=asc|desc
func (h *MemoryHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	memories, err := h.memoryService.GetTimeline(ctx, r.URL.Query().Get("order") == "asc")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, memories)
}

// GET /memories/type/{type}
func (h *MemoryHandler) GetByType(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	memories, err := h.memoryService.GetMemoriesByType(ctx, memory.ParseType(mux.Vars(r)["type"]))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, memories)
}

// GET /memories/milestones
func (h *MemoryHandler) GetMilestones(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	milestones, err := h.memoryService.GetMilestones(ctx)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, milestones)
}

// PUT /memories/{id}
func (h *MemoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	var req memory.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.memoryService.UpdateMemory(ctx, mux.Vars(r)["id"], &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// DELETE /memories/{id}
func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := currentUser(ctx, h.userService, w); !ok {
		return
	}

	if err := h.memoryService.DeleteMemory(ctx, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "memory deleted"})
}
