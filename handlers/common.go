package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"lce-project/backend/middleware"
	"lce-project/backend/models"
	"lce-project/backend/repositories"
	"lce-project/backend/services"
)

// currentUser učitava prijavljenog korisnika na osnovu claims-a iz konteksta.
func currentUser(ctx context.Context, users *services.UserService) (*models.User, error) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return nil, errors.New("no session")
	}
	return users.GetByID(ctx, claims.UserID)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeServiceError mapira ErrNotFound na 404, ostalo na zadati status.
func writeServiceError(w http.ResponseWriter, err error, status int) {
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), status)
}
