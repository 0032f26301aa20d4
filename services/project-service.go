package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lce-project/backend/logging"
	"lce-project/backend/models"
	"lce-project/backend/repositories"

	"github.com/google/uuid"
)

type ProjectService struct {
	projects repositories.ProjectRepository
	tasks    repositories.TaskRepository
	access   *AccessService
}

func NewProjectService(projects repositories.ProjectRepository, tasks repositories.TaskRepository, access *AccessService) *ProjectService {
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		access:   access,
	}
}

type ProjectInput struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Priority        models.Priority `json:"priority"`
	DueDate         string          `json:"dueDate"`
	ScopeLink       string          `json:"scopeLink"`
	AssigneeIDs     []string        `json:"assigneeIds"`
	AssigneeID      string          `json:"assigneeId"`
	ParentProjectID string          `json:"parentProjectId"`
}

func (s *ProjectService) CreateProject(ctx context.Context, input ProjectInput, creatorID string) (*models.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("project title is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	assigneeIDs, assigneeID := models.NormalizeAssignees(input.AssigneeIDs, input.AssigneeID)

	project := &models.Project{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     strings.TrimSpace(input.Description),
		Priority:        priority,
		Status:          models.ProjectNotStarted,
		DueDate:         input.DueDate,
		ScopeLink:       input.ScopeLink,
		AssignerID:      creatorID,
		AssigneeIDs:     assigneeIDs,
		AssigneeID:      assigneeID,
		ParentProjectID: input.ParentProjectID,
		CreatedBy:       creatorID,
		CreatedAt:       time.Now(),
	}

	if err := s.projects.Insert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	return s.projects.Update(ctx, id, patch)
}

func (s *ProjectService) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *ProjectService) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	return s.projects.GetAll(ctx)
}

func (s *ProjectService) GetSubprojects(ctx context.Context, parentID string) ([]models.Project, error) {
	return s.projects.FindByParent(ctx, parentID)
}

// DeleteProject briše projekat, sve njegove zadatke i rekurzivno sva
// podstabla podprojekata. Prvo se skupi celo podstablo pa se brisanja rade
// grupno po kolekciji.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	subtree, err := s.collectSubtree(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tasks.DeleteByProjects(ctx, subtree...); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, subtree...); err != nil {
		return err
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Deleted project %s with %d subtree record(s)", id, len(subtree))
	return nil
}

// collectSubtree vraća id projekta i svih njegovih podprojekata, u dubinu.
func (s *ProjectService) collectSubtree(ctx context.Context, id string) ([]string, error) {
	ids := []string{id}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		children, err := s.projects.FindByParent(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			ids = append(ids, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return ids, nil
}

// GetVisibleProjects vraća projekte najvišeg nivoa koje korisnik sme da vidi.
// Admin i L1 vide sve; ostali vide projekte gde su zaduženi ili gde imaju
// makar jedan zadatak kao zaduženi ili kao kreator.
func (s *ProjectService) GetVisibleProjects(ctx context.Context, user *models.User) ([]models.Project, error) {
	if user == nil {
		return nil, nil
	}

	all, err := s.projects.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var topLevel []models.Project
	for _, p := range all {
		if p.ParentProjectID == "" {
			topLevel = append(topLevel, p)
		}
	}

	if s.access.IsAdmin(user) || user.Level == models.LevelL1 {
		return topLevel, nil
	}

	allTasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	myTaskProjects := make(map[string]bool)
	for i := range allTasks {
		t := &allTasks[i]
		if t.IsAssignedTo(user.ID) || t.CreatedBy == user.ID {
			myTaskProjects[t.ProjectID] = true
		}
	}

	var visible []models.Project
	for i := range topLevel {
		p := &topLevel[i]
		if p.IsAssignedTo(user.ID) || myTaskProjects[p.ID] {
			visible = append(visible, *p)
		}
	}
	return visible, nil
}
