package handlers

import (
	"encoding/json"
	"net/http"

	"lce-project/backend/models"
	"lce-project/backend/services"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	userService         *services.UserService
	accessService       *services.AccessService
	notificationService *services.NotificationService
}

func NewUserHandler(userService *services.UserService, accessService *services.AccessService, notificationService *services.NotificationService) *UserHandler {
	return &UserHandler{
		userService:         userService,
		accessService:       accessService,
		notificationService: notificationService,
	}
}

type userPermissions struct {
	IsAdmin              bool `json:"isAdmin"`
	CanCreateProjects    bool `json:"canCreateProjects"`
	CanCreateSubprojects bool `json:"canCreateSubprojects"`
	CanCreateTasks       bool `json:"canCreateTasks"`
	CanCreateConcurrence bool `json:"canCreateConcurrence"`
	CanCreateSubtasks    bool `json:"canCreateSubtasks"`
}

// GetCurrentUser vraća prijavljenog korisnika sa dozvolama za UI.
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user.Passcode = ""
	writeJSON(w, http.StatusOK, struct {
		User        *models.User    `json:"user"`
		Permissions userPermissions `json:"permissions"`
	}{
		User: user,
		Permissions: userPermissions{
			IsAdmin:              h.accessService.IsAdmin(user),
			CanCreateProjects:    h.accessService.CanCreateProjects(user),
			CanCreateSubprojects: h.accessService.CanCreateSubprojects(user),
			CanCreateTasks:       h.accessService.CanCreateTasks(user),
			CanCreateConcurrence: h.accessService.CanCreateConcurrence(user),
			CanCreateSubtasks:    h.accessService.CanCreateSubtasks(user),
		},
	})
}

// GetAssignableUsers vraća korisnike kojima prijavljeni sme da dodeljuje posao.
func (h *UserHandler) GetAssignableUsers(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	assignable, err := h.accessService.GetAssignableUsers(r.Context(), user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for i := range assignable {
		assignable[i].Passcode = ""
	}
	writeJSON(w, http.StatusOK, assignable)
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for i := range users {
		users[i].Passcode = ""
	}
	writeJSON(w, http.StatusOK, users)
}

// GetHierarchy vraća statične tabele zvanja i grupa za registracionu formu.
func (h *UserHandler) GetHierarchy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Designations []models.Designation `json:"designations"`
		Groups       []models.Group       `json:"groups"`
	}{
		Designations: models.Designations,
		Groups:       models.Groups,
	})
}

func (h *UserHandler) ChangePasscode(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request struct {
		OldPasscode     string `json:"oldPasscode"`
		NewPasscode     string `json:"newPasscode"`
		ConfirmPasscode string `json:"confirmPasscode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.userService.ChangePasscode(r.Context(), user.ID, request.OldPasscode, request.NewPasscode, request.ConfirmPasscode); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Passcode changed successfully"}`))
}

func (h *UserHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	notifications, err := h.notificationService.GetUserNotifications(r.Context(), user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// MarkNotificationRead označava obaveštenje prijavljenog korisnika kao pročitano.
func (h *UserHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	notificationID := mux.Vars(r)["notificationID"]
	if err := h.notificationService.MarkRead(r.Context(), user.ID, notificationID); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Notification marked as read"}`))
}
