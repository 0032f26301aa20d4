package handlers

import (
	"encoding/json"
	"net/http"

	"lce-project/backend/models"
	"lce-project/backend/services"

	"github.com/gorilla/mux"
)

type ConcurrenceHandler struct {
	concurrenceService *services.ConcurrenceService
	userService        *services.UserService
	accessService      *services.AccessService
}

func NewConcurrenceHandler(concurrenceService *services.ConcurrenceService, userService *services.UserService, accessService *services.AccessService) *ConcurrenceHandler {
	return &ConcurrenceHandler{
		concurrenceService: concurrenceService,
		userService:        userService,
		accessService:      accessService,
	}
}

func (h *ConcurrenceHandler) CreateConcurrence(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !h.accessService.CanCreateConcurrence(user) {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	var input services.ConcurrenceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	concurrence, err := h.concurrenceService.CreateConcurrence(r.Context(), input, user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, concurrence)
}

func (h *ConcurrenceHandler) GetProjectConcurrences(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	concurrences, err := h.concurrenceService.GetProjectConcurrences(r.Context(), vars["projectID"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, concurrences)
}

func (h *ConcurrenceHandler) GetConcurrenceByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	concurrence, err := h.concurrenceService.GetByID(r.Context(), vars["concurrenceID"])
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, concurrence)
}

// Sign beleži potpis prijavljenog recenzenta.
func (h *ConcurrenceHandler) Sign(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	concurrence, err := h.concurrenceService.Sign(r.Context(), vars["concurrenceID"], user.ID)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, concurrence)
}

// HODSign upisuje HOD odobrenje; dozvoljeno samo adminima.
func (h *ConcurrenceHandler) HODSign(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !h.accessService.IsAdmin(user) {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	concurrence, err := h.concurrenceService.HODSign(r.Context(), vars["concurrenceID"], user.ID)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, concurrence)
}

func (h *ConcurrenceHandler) MarkSentToClient(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !h.accessService.CanCreateConcurrence(user) {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	concurrence, err := h.concurrenceService.MarkSentToClient(r.Context(), vars["concurrenceID"])
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, concurrence)
}

func (h *ConcurrenceHandler) UpdateConcurrence(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var patch models.ConcurrencePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	concurrence, err := h.concurrenceService.Update(r.Context(), vars["concurrenceID"], patch)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, concurrence)
}

func (h *ConcurrenceHandler) DeleteConcurrence(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !h.accessService.CanCreateConcurrence(user) {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	if err := h.concurrenceService.Delete(r.Context(), vars["concurrenceID"]); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Concurrence deleted"}`))
}
