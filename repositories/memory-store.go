package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"lce-project/backend/models"

	"github.com/google/uuid"
)

// In-memory implementacije repozitorijuma. Ponašanje je isto kao kod Mongo
// implementacija: cela kolekcija se drži u memoriji, a svaka mutacija se radi
// pod ekskluzivnim zaključavanjem kolekcije. Koriste se za lokalni rad bez
// baze i u testovima.

type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{}
}

func (r *InMemoryUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) FindByEmpID(ctx context.Context, empID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].EmpID == empID {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) Insert(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, *user)
	return nil
}

func (r *InMemoryUserRepository) UpdatePasscode(ctx context.Context, id, passcodeHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Passcode = passcodeHash
			return nil
		}
	}
	return ErrNotFound
}

type InMemoryProjectRepository struct {
	mu       sync.RWMutex
	projects []models.Project
}

func NewInMemoryProjectRepository() *InMemoryProjectRepository {
	return &InMemoryProjectRepository{}
}

func (r *InMemoryProjectRepository) GetAll(ctx context.Context) ([]models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Project, len(r.projects))
	copy(out, r.projects)
	return out, nil
}

func (r *InMemoryProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.projects {
		if r.projects[i].ID == id {
			p := r.projects[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryProjectRepository) FindByParent(ctx context.Context, parentID string) ([]models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Project
	for i := range r.projects {
		if r.projects[i].ParentProjectID == parentID {
			out = append(out, r.projects[i])
		}
	}
	return out, nil
}

func (r *InMemoryProjectRepository) Insert(ctx context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = append(r.projects, *project)
	return nil
}

func (r *InMemoryProjectRepository) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.projects {
		if r.projects[i].ID == id {
			r.projects[i].Apply(patch)
			now := time.Now()
			r.projects[i].UpdatedAt = &now
			p := r.projects[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryProjectRepository) Delete(ctx context.Context, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	toDelete := make(map[string]bool, len(ids))
	for _, id := range ids {
		toDelete[id] = true
	}
	kept := r.projects[:0]
	for _, p := range r.projects {
		if !toDelete[p.ID] {
			kept = append(kept, p)
		}
	}
	r.projects = kept
	return nil
}

type InMemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks []models.Task
}

func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{}
}

func (r *InMemoryTaskRepository) GetAll(ctx context.Context) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}

func (r *InMemoryTaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			t := r.tasks[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryTaskRepository) FindByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Task
	for i := range r.tasks {
		if r.tasks[i].ProjectID == projectID {
			out = append(out, r.tasks[i])
		}
	}
	return out, nil
}

func (r *InMemoryTaskRepository) FindByConcurrence(ctx context.Context, concurrenceID string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Task
	for i := range r.tasks {
		if r.tasks[i].ConcurrenceID == concurrenceID {
			out = append(out, r.tasks[i])
		}
	}
	return out, nil
}

func (r *InMemoryTaskRepository) Insert(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *InMemoryTaskRepository) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks[i].Apply(patch)
			now := time.Now()
			r.tasks[i].UpdatedAt = &now
			t := r.tasks[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryTaskRepository) Replace(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == task.ID {
			r.tasks[i] = *task
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryTaskRepository) Delete(ctx context.Context, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	toDelete := make(map[string]bool, len(ids))
	for _, id := range ids {
		toDelete[id] = true
	}
	kept := r.tasks[:0]
	for _, t := range r.tasks {
		if !toDelete[t.ID] {
			kept = append(kept, t)
		}
	}
	r.tasks = kept
	return nil
}

func (r *InMemoryTaskRepository) DeleteByProjects(ctx context.Context, projectIDs ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	toDelete := make(map[string]bool, len(projectIDs))
	for _, id := range projectIDs {
		toDelete[id] = true
	}
	kept := r.tasks[:0]
	for _, t := range r.tasks {
		if !toDelete[t.ProjectID] {
			kept = append(kept, t)
		}
	}
	r.tasks = kept
	return nil
}

func (r *InMemoryTaskRepository) DeleteByConcurrence(ctx context.Context, concurrenceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.tasks[:0]
	for _, t := range r.tasks {
		if t.ConcurrenceID != concurrenceID {
			kept = append(kept, t)
		}
	}
	r.tasks = kept
	return nil
}

type InMemoryConcurrenceRepository struct {
	mu           sync.RWMutex
	concurrences []models.Concurrence
}

func NewInMemoryConcurrenceRepository() *InMemoryConcurrenceRepository {
	return &InMemoryConcurrenceRepository{}
}

func (r *InMemoryConcurrenceRepository) GetAll(ctx context.Context) ([]models.Concurrence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Concurrence, len(r.concurrences))
	copy(out, r.concurrences)
	return out, nil
}

func (r *InMemoryConcurrenceRepository) GetByID(ctx context.Context, id string) (*models.Concurrence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.concurrences {
		if r.concurrences[i].ID == id {
			c := r.concurrences[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryConcurrenceRepository) FindByProject(ctx context.Context, projectID string) ([]models.Concurrence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Concurrence
	for i := range r.concurrences {
		if r.concurrences[i].ProjectID == projectID {
			out = append(out, r.concurrences[i])
		}
	}
	return out, nil
}

func (r *InMemoryConcurrenceRepository) Insert(ctx context.Context, concurrence *models.Concurrence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.concurrences = append(r.concurrences, *concurrence)
	return nil
}

func (r *InMemoryConcurrenceRepository) Update(ctx context.Context, id string, patch models.ConcurrencePatch) (*models.Concurrence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.concurrences {
		if r.concurrences[i].ID == id {
			r.concurrences[i].Apply(patch)
			now := time.Now()
			r.concurrences[i].UpdatedAt = &now
			c := r.concurrences[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryConcurrenceRepository) Replace(ctx context.Context, concurrence *models.Concurrence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.concurrences {
		if r.concurrences[i].ID == concurrence.ID {
			r.concurrences[i] = *concurrence
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryConcurrenceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.concurrences[:0]
	for _, c := range r.concurrences {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	r.concurrences = kept
	return nil
}

type InMemoryNoteRepository struct {
	mu    sync.RWMutex
	notes []models.Note
}

func NewInMemoryNoteRepository() *InMemoryNoteRepository {
	return &InMemoryNoteRepository{}
}

func (r *InMemoryNoteRepository) FindByProject(ctx context.Context, projectID string) ([]models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Note
	for i := range r.notes {
		if r.notes[i].ProjectID == projectID {
			out = append(out, r.notes[i])
		}
	}
	// Najnovije prve
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryNoteRepository) Insert(ctx context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, *note)
	return nil
}

func (r *InMemoryNoteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.notes[:0]
	for _, n := range r.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	r.notes = kept
	return nil
}

type InMemoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications []models.Notification
}

func NewInMemoryNotificationRepository() *InMemoryNotificationRepository {
	return &InMemoryNotificationRepository{}
}

func (r *InMemoryNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *InMemoryNotificationRepository) FindByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Notification
	for i := range r.notifications {
		if r.notifications[i].UserID == userID {
			out = append(out, r.notifications[i])
		}
	}
	return out, nil
}

func (r *InMemoryNotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].UserID == userID && r.notifications[i].ID == notificationID {
			r.notifications[i].IsRead = true
			return nil
		}
	}
	return ErrNotFound
}
