package handlers

import (
	"encoding/json"
	"net/http"

	"lce-project/backend/models"
	"lce-project/backend/services"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	userService    *services.UserService
	accessService  *services.AccessService
	noteService    *services.NoteService
}

func NewProjectHandler(projectService *services.ProjectService, userService *services.UserService, accessService *services.AccessService, noteService *services.NoteService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		userService:    userService,
		accessService:  accessService,
		noteService:    noteService,
	}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input services.ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	// Projekat najvišeg nivoa mogu da prave samo admini; podprojekte i L1
	if input.ParentProjectID == "" {
		if !h.accessService.CanCreateProjects(user) {
			http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
			return
		}
	} else if !h.accessService.CanCreateSubprojects(user) {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), input, user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// GetVisibleProjects vraća projekte najvišeg nivoa vidljive prijavljenom korisniku.
func (h *ProjectHandler) GetVisibleProjects(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	projects, err := h.projectService.GetVisibleProjects(r.Context(), user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	project, err := h.projectService.GetProjectByID(r.Context(), vars["projectID"])
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) GetSubprojects(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subprojects, err := h.projectService.GetSubprojects(r.Context(), vars["projectID"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, subprojects)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var patch models.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), vars["projectID"], patch)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
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
	if err := h.projectService.DeleteProject(r.Context(), vars["projectID"]); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Project deleted"}`))
}

// Beleške projekta

func (h *ProjectHandler) GetProjectNotes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notes, err := h.noteService.GetProjectNotes(r.Context(), vars["projectID"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *ProjectHandler) AddProjectNote(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	var request struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	note, err := h.noteService.AddNote(r.Context(), vars["projectID"], request.Text, user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *ProjectHandler) DeleteProjectNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.noteService.DeleteNote(r.Context(), vars["noteID"]); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Note deleted"}`))
}
