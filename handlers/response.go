package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/user"
	"whispersofusAPI/middleware"
	"whispersofusAPI/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps the error taxonomy onto HTTP statuses.
// Unexpected errors are logged in full and returned as a generic 500.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		respondWithError(w, http.StatusNotFound, err.Error())
	case apperr.KindInvalid:
		respondWithError(w, http.StatusBadRequest, err.Error())
	case apperr.KindConflict:
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("Unexpected error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// currentUser resolves the authenticated identity token from the context to
// the internal user record. Services only ever see internal user IDs.
func currentUser(ctx context.Context, users *services.UserService, w http.ResponseWriter) (*user.User, bool) {
	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return nil, false
	}

	u, err := users.GetByClerkID(ctx, clerkID)
	if err != nil {
		respondWithServiceError(w, err)
		return nil, false
	}
	return u, true
}
