package handlers

import (
	"encoding/json"
	"net/http"

	"lce-project/backend/models"
	"lce-project/backend/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	taskService   *services.TaskService
	userService   *services.UserService
	accessService *services.AccessService
}

func NewTaskHandler(taskService *services.TaskService, userService *services.UserService, accessService *services.AccessService) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		userService:   userService,
		accessService: accessService,
	}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !h.accessService.CanCreateTasks(user) {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	var input services.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), input, user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetProjectTasks(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	tasks, err := h.taskService.GetProjectTasks(r.Context(), vars["projectID"], user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// GetMyTasks vraća "My Board" listu: dodeljeni pa kreirani zadaci.
func (h *TaskHandler) GetMyTasks(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tasks, err := h.taskService.GetMyTasks(r.Context(), user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetProjectParticipants(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	participants, err := h.taskService.GetProjectParticipants(r.Context(), vars["projectID"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for i := range participants {
		participants[i].Passcode = ""
	}
	writeJSON(w, http.StatusOK, participants)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), vars["taskID"], patch)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.taskService.DeleteTask(r.Context(), vars["taskID"]); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Task deleted"}`))
}

// Podzadaci

func (h *TaskHandler) AddSubtask(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.userService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !h.accessService.CanCreateSubtasks(user) {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	var request struct {
		Title      string `json:"title"`
		AssigneeID string `json:"assigneeId"`
		DueDate    string `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	subtask, err := h.taskService.AddSubtask(r.Context(), vars["taskID"], request.Title, request.AssigneeID, request.DueDate)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, subtask)
}

func (h *TaskHandler) UpdateSubtask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var patch services.SubtaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.taskService.UpdateSubtask(r.Context(), vars["taskID"], vars["subtaskID"], patch); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Subtask updated"}`))
}

func (h *TaskHandler) DeleteSubtask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.taskService.DeleteSubtask(r.Context(), vars["taskID"], vars["subtaskID"]); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Subtask deleted"}`))
}
