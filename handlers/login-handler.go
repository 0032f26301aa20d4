package handlers

import (
	"encoding/json"
	"net/http"

	"lce-project/backend/logging"
	"lce-project/backend/models"
	"lce-project/backend/services"
)

type LoginHandler struct {
	userService *services.UserService
}

func NewLoginHandler(userService *services.UserService) *LoginHandler {
	return &LoginHandler{userService: userService}
}

func (h *LoginHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user.Passcode = ""
	writeJSON(w, http.StatusCreated, user)
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Passcode string `json:"passcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.Login(r.Context(), request.Email, request.Passcode)
	if err != nil {
		logging.Logger.Warnf("Event ID: LOGIN_FAILED, Description: Login failed for %s: %v", request.Email, err)
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	user.Passcode = ""
	writeJSON(w, http.StatusOK, struct {
		User  *models.User `json:"user"`
		Token string       `json:"token"`
	}{User: user, Token: token})
}

func (h *LoginHandler) ResetPasscode(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.userService.ResetPasscode(r.Context(), request.Email); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Temporary passcode sent"}`))
}
