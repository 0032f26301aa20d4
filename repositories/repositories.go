package repositories

import (
	"context"
	"errors"

	"lce-project/backend/models"
)

// ErrNotFound vraćaju sve update/delete operacije kada zapis ne postoji.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmpID(ctx context.Context, empID string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	UpdatePasscode(ctx context.Context, id, passcodeHash string) error
}

type ProjectRepository interface {
	GetAll(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	FindByParent(ctx context.Context, parentID string) ([]models.Project, error)
	Insert(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, ids ...string) error
}

type TaskRepository interface {
	GetAll(ctx context.Context) ([]models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	FindByProject(ctx context.Context, projectID string) ([]models.Task, error)
	FindByConcurrence(ctx context.Context, concurrenceID string) ([]models.Task, error)
	Insert(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	Replace(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, ids ...string) error
	DeleteByProjects(ctx context.Context, projectIDs ...string) error
	DeleteByConcurrence(ctx context.Context, concurrenceID string) error
}

type ConcurrenceRepository interface {
	GetAll(ctx context.Context) ([]models.Concurrence, error)
	GetByID(ctx context.Context, id string) (*models.Concurrence, error)
	FindByProject(ctx context.Context, projectID string) ([]models.Concurrence, error)
	Insert(ctx context.Context, concurrence *models.Concurrence) error
	Update(ctx context.Context, id string, patch models.ConcurrencePatch) (*models.Concurrence, error)
	Replace(ctx context.Context, concurrence *models.Concurrence) error
	Delete(ctx context.Context, id string) error
}

type NoteRepository interface {
	FindByProject(ctx context.Context, projectID string) ([]models.Note, error)
	Insert(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}
