package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lce-project/backend/models"
	"lce-project/backend/repositories"

	"github.com/google/uuid"
)

type TaskService struct {
	tasks         repositories.TaskRepository
	users         repositories.UserRepository
	access        *AccessService
	notifications *NotificationService
}

func NewTaskService(tasks repositories.TaskRepository, users repositories.UserRepository, access *AccessService, notifications *NotificationService) *TaskService {
	return &TaskService{
		tasks:         tasks,
		users:         users,
		access:        access,
		notifications: notifications,
	}
}

type TaskInput struct {
	ProjectID         string          `json:"projectId"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Priority          models.Priority `json:"priority"`
	DueDate           string          `json:"dueDate"`
	AssigneeIDs       []string        `json:"assigneeIds"`
	AssigneeID        string          `json:"assigneeId"`
	ConcurrenceID     string          `json:"concurrenceId"`
	IsConcurrenceTask bool            `json:"isConcurrenceTask"`
	PDFData           string          `json:"pdfData"`
	PDFName           string          `json:"pdfName"`
}

func (s *TaskService) CreateTask(ctx context.Context, input TaskInput, creatorID string) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	if input.ProjectID == "" {
		return nil, fmt.Errorf("task must belong to a project")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	assigneeIDs, assigneeID := models.NormalizeAssignees(input.AssigneeIDs, input.AssigneeID)

	task := &models.Task{
		ID:                uuid.NewString(),
		ProjectID:         input.ProjectID,
		Title:             title,
		Description:       strings.TrimSpace(input.Description),
		Priority:          priority,
		Status:            models.StatusToDo,
		DueDate:           input.DueDate,
		AssignerID:        creatorID,
		AssigneeIDs:       assigneeIDs,
		AssigneeID:        assigneeID,
		ConcurrenceID:     input.ConcurrenceID,
		IsConcurrenceTask: input.IsConcurrenceTask,
		PDFData:           input.PDFData,
		PDFName:           input.PDFName,
		CreatedBy:         creatorID,
		CreatedAt:         time.Now(),
	}

	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, err
	}

	s.notifications.NotifyTaskAssigned(ctx, task)
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	return s.tasks.Update(ctx, id, patch)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// GetProjectTasks vraća zadatke projekta koje korisnik sme da vidi. Admin i
// L1 vide sve; ostali samo one gde su zaduženi ili kreatori.
func (s *TaskService) GetProjectTasks(ctx context.Context, projectID string, user *models.User) ([]models.Task, error) {
	all, err := s.tasks.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if s.access.IsAdmin(user) || user.Level == models.LevelL1 {
		return all, nil
	}

	var visible []models.Task
	for i := range all {
		t := &all[i]
		if t.IsAssignedTo(user.ID) || t.CreatedBy == user.ID {
			visible = append(visible, *t)
		}
	}
	return visible, nil
}

// GetMyTasks vraća zadatke dodeljene korisniku pa one koje je kreirao, bez
// duplikata (dodeljeni imaju prednost).
func (s *TaskService) GetMyTasks(ctx context.Context, userID string) ([]models.Task, error) {
	all, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var assigned []models.Task
	assignedIDs := make(map[string]bool)
	for i := range all {
		if all[i].IsAssignedTo(userID) {
			assigned = append(assigned, all[i])
			assignedIDs[all[i].ID] = true
		}
	}
	for i := range all {
		if all[i].CreatedBy == userID && !assignedIDs[all[i].ID] {
			assigned = append(assigned, all[i])
		}
	}
	return assigned, nil
}

// GetProjectParticipants vraća sve korisnike koji učestvuju u zadacima
// projekta, kao zaduženi ili kao kreatori. Koristi se za predlog liste
// potpisnika pri kreiranju concurrence zapisa.
func (s *TaskService) GetProjectParticipants(ctx context.Context, projectID string) ([]models.User, error) {
	tasks, err := s.tasks.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for i := range tasks {
		for _, id := range tasks[i].AssigneeList() {
			add(id)
		}
		add(tasks[i].CreatedBy)
	}

	var participants []models.User
	for _, id := range ids {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			continue // obrisani korisnici se preskaču
		}
		participants = append(participants, *user)
	}
	return participants, nil
}

// AddSubtask dodaje podzadatak u roditeljski zadatak.
func (s *TaskService) AddSubtask(ctx context.Context, taskID string, title, assigneeID, dueDate string) (*models.Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("subtask title is required")
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	subtask := models.Subtask{
		ID:         uuid.NewString(),
		Title:      title,
		AssigneeID: assigneeID,
		Status:     models.StatusToDo,
		DueDate:    dueDate,
		CreatedAt:  time.Now(),
	}
	task.Subtasks = append(task.Subtasks, subtask)
	now := time.Now()
	task.UpdatedAt = &now

	if err := s.tasks.Replace(ctx, task); err != nil {
		return nil, err
	}
	return &subtask, nil
}

type SubtaskPatch struct {
	Title      *string            `json:"title,omitempty"`
	AssigneeID *string            `json:"assigneeId,omitempty"`
	Status     *models.TaskStatus `json:"status,omitempty"`
	DueDate    *string            `json:"dueDate,omitempty"`
}

func (s *TaskService) UpdateSubtask(ctx context.Context, taskID, subtaskID string, patch SubtaskPatch) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	for i := range task.Subtasks {
		if task.Subtasks[i].ID != subtaskID {
			continue
		}
		if patch.Title != nil {
			task.Subtasks[i].Title = *patch.Title
		}
		if patch.AssigneeID != nil {
			task.Subtasks[i].AssigneeID = *patch.AssigneeID
		}
		if patch.Status != nil {
			task.Subtasks[i].Status = *patch.Status
		}
		if patch.DueDate != nil {
			task.Subtasks[i].DueDate = *patch.DueDate
		}
		now := time.Now()
		task.UpdatedAt = &now
		return s.tasks.Replace(ctx, task)
	}
	return repositories.ErrNotFound
}

func (s *TaskService) DeleteSubtask(ctx context.Context, taskID, subtaskID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	kept := task.Subtasks[:0]
	for _, st := range task.Subtasks {
		if st.ID != subtaskID {
			kept = append(kept, st)
		}
	}
	task.Subtasks = kept
	now := time.Now()
	task.UpdatedAt = &now
	return s.tasks.Replace(ctx, task)
}
