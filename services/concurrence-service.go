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

// ConcurrenceService vodi tok odobravanja crteža: potpisi recenzenata,
// HOD odobrenje i slanje klijentu, uz automatske sign-off zadatke.
type ConcurrenceService struct {
	concurrences repositories.ConcurrenceRepository
	tasks        repositories.TaskRepository
	taskService  *TaskService
	notifier     *NotificationService
	dispatcher   *DispatchService

	// RequireAllSigned traži da svi recenzenti potpišu pre HOD odobrenja i
	// slanja klijentu. UI je to oduvek nametao; ovde je pravilo podesivo.
	RequireAllSigned bool
}

func NewConcurrenceService(
	concurrences repositories.ConcurrenceRepository,
	tasks repositories.TaskRepository,
	taskService *TaskService,
	notifier *NotificationService,
	dispatcher *DispatchService,
	requireAllSigned bool,
) *ConcurrenceService {
	return &ConcurrenceService{
		concurrences:     concurrences,
		tasks:            tasks,
		taskService:      taskService,
		notifier:         notifier,
		dispatcher:       dispatcher,
		RequireAllSigned: requireAllSigned,
	}
}

type ConcurrenceInput struct {
	ProjectID     string   `json:"projectId"`
	DrawingTitle  string   `json:"drawingTitle"`
	Description   string   `json:"description"`
	ReviewerIDs   []string `json:"reviewerIds"`
	DueDate       string   `json:"dueDate"`
	LinkedTaskID  string   `json:"linkedTaskId"`
	LinkedPDFData string   `json:"linkedPdfData"`
	LinkedPDFName string   `json:"linkedPdfName"`
}

// CreateConcurrence pravi concurrence zapis i po jedan sign-off zadatak za
// svakog recenzenta, sa kopijom PDF-a crteža. Ako bilo koji zadatak ne uspe,
// već upisani zapisi se uklanjaju i operacija vraća grešku — nema polovičnog
// stanja.
func (s *ConcurrenceService) CreateConcurrence(ctx context.Context, input ConcurrenceInput, creatorID string) (*models.Concurrence, error) {
	title := strings.TrimSpace(input.DrawingTitle)
	if title == "" {
		return nil, fmt.Errorf("drawing title is required")
	}
	if input.ProjectID == "" {
		return nil, fmt.Errorf("concurrence must belong to a project")
	}

	reviewers := make([]models.Reviewer, 0, len(input.ReviewerIDs))
	for _, id := range input.ReviewerIDs {
		reviewers = append(reviewers, models.Reviewer{UserID: id, Signed: false})
	}

	concurrence := &models.Concurrence{
		ID:            uuid.NewString(),
		ProjectID:     input.ProjectID,
		DrawingTitle:  title,
		Description:   strings.TrimSpace(input.Description),
		Reviewers:     reviewers,
		HODSignOff:    models.HODSignOff{Signed: false},
		SentToClient:  false,
		LinkedTaskID:  input.LinkedTaskID,
		LinkedPDFData: input.LinkedPDFData,
		LinkedPDFName: input.LinkedPDFName,
		CreatedBy:     creatorID,
		CreatedAt:     time.Now(),
	}

	if err := s.concurrences.Insert(ctx, concurrence); err != nil {
		return nil, err
	}

	// Automatski sign-off zadatak za svakog recenzenta
	var createdTaskIDs []string
	for _, r := range reviewers {
		task, err := s.taskService.CreateTask(ctx, TaskInput{
			ProjectID:         input.ProjectID,
			Title:             fmt.Sprintf("Concurrence: %s", title),
			Description:       fmt.Sprintf("Review and sign concurrence for %q", title),
			Priority:          models.PriorityHigh,
			DueDate:           input.DueDate,
			AssigneeIDs:       []string{r.UserID},
			ConcurrenceID:     concurrence.ID,
			IsConcurrenceTask: true,
			PDFData:           input.LinkedPDFData,
			PDFName:           input.LinkedPDFName,
		}, creatorID)
		if err != nil {
			s.rollbackCreate(ctx, concurrence.ID, createdTaskIDs)
			return nil, fmt.Errorf("failed to create sign-off task for reviewer %s: %v", r.UserID, err)
		}
		createdTaskIDs = append(createdTaskIDs, task.ID)
	}

	s.notifier.NotifySignOffRequested(ctx, concurrence)
	logging.Logger.Infof("Event ID: CONCURRENCE_CREATED, Description: Concurrence %s created with %d reviewer(s)", concurrence.ID, len(reviewers))
	return concurrence, nil
}

// rollbackCreate uklanja concurrence i do tada upisane sign-off zadatke.
func (s *ConcurrenceService) rollbackCreate(ctx context.Context, concurrenceID string, taskIDs []string) {
	if len(taskIDs) > 0 {
		if err := s.tasks.Delete(ctx, taskIDs...); err != nil {
			logging.Logger.Errorf("Event ID: CONCURRENCE_ROLLBACK_FAILED, Description: Failed to delete sign-off tasks for concurrence %s: %v", concurrenceID, err)
		}
	}
	if err := s.concurrences.Delete(ctx, concurrenceID); err != nil {
		logging.Logger.Errorf("Event ID: CONCURRENCE_ROLLBACK_FAILED, Description: Failed to delete concurrence %s: %v", concurrenceID, err)
	}
}

// Sign beleži potpis recenzenta i prebacuje njegov sign-off zadatak u "Done".
// Potpis korisnika koji nije na listi je tiho ignorisan; ponovni potpis samo
// osvežava vreme.
func (s *ConcurrenceService) Sign(ctx context.Context, concurrenceID, userID string) (*models.Concurrence, error) {
	concurrence, err := s.concurrences.GetByID(ctx, concurrenceID)
	if err != nil {
		return nil, err
	}

	signed := false
	now := time.Now()
	for i := range concurrence.Reviewers {
		if concurrence.Reviewers[i].UserID == userID {
			concurrence.Reviewers[i].Signed = true
			concurrence.Reviewers[i].SignedAt = &now
			signed = true
			break
		}
	}

	if signed {
		concurrence.UpdatedAt = &now
		if err := s.concurrences.Replace(ctx, concurrence); err != nil {
			return nil, err
		}

		// Povezani sign-off zadatak ovog recenzenta ide u "Done"
		tasks, err := s.tasks.FindByConcurrence(ctx, concurrenceID)
		if err != nil {
			return nil, err
		}
		for i := range tasks {
			if tasks[i].IsAssignedTo(userID) {
				done := models.StatusDone
				if _, err := s.tasks.Update(ctx, tasks[i].ID, models.TaskPatch{Status: &done}); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	return concurrence, nil
}

// HODSign upisuje HOD odobrenje. Kada je RequireAllSigned uključen, odobrenje
// je moguće tek pošto svi recenzenti potpišu.
func (s *ConcurrenceService) HODSign(ctx context.Context, concurrenceID, userID string) (*models.Concurrence, error) {
	concurrence, err := s.concurrences.GetByID(ctx, concurrenceID)
	if err != nil {
		return nil, err
	}

	if s.RequireAllSigned && !concurrence.AllSigned() {
		return nil, fmt.Errorf("all reviewers must sign before HOD approval")
	}

	now := time.Now()
	concurrence.HODSignOff = models.HODSignOff{Signed: true, SignedBy: userID, SignedAt: &now}
	concurrence.UpdatedAt = &now
	if err := s.concurrences.Replace(ctx, concurrence); err != nil {
		return nil, err
	}

	s.notifier.NotifyHODApproved(ctx, concurrence)
	return concurrence, nil
}

// MarkSentToClient beleži slanje klijentu i javlja klijentskom portalu.
// Neuspeh portala se loguje, stanje zapisa je već promenjeno.
func (s *ConcurrenceService) MarkSentToClient(ctx context.Context, concurrenceID string) (*models.Concurrence, error) {
	concurrence, err := s.concurrences.GetByID(ctx, concurrenceID)
	if err != nil {
		return nil, err
	}

	if s.RequireAllSigned && !concurrence.AllSigned() {
		return nil, fmt.Errorf("all reviewers must sign before dispatch")
	}

	now := time.Now()
	concurrence.SentToClient = true
	concurrence.SentAt = &now
	concurrence.UpdatedAt = &now
	if err := s.concurrences.Replace(ctx, concurrence); err != nil {
		return nil, err
	}

	if err := s.dispatcher.NotifyClientDispatch(ctx, concurrence); err != nil {
		logging.Logger.Warnf("Event ID: CLIENT_DISPATCH_FAILED, Description: Concurrence %s dispatched but portal notification failed: %v", concurrenceID, err)
	}
	s.notifier.NotifySentToClient(ctx, concurrence)
	return concurrence, nil
}

// Delete briše concurrence i sve automatski kreirane sign-off zadatke.
func (s *ConcurrenceService) Delete(ctx context.Context, concurrenceID string) error {
	if err := s.concurrences.Delete(ctx, concurrenceID); err != nil {
		return err
	}
	return s.tasks.DeleteByConcurrence(ctx, concurrenceID)
}

func (s *ConcurrenceService) Update(ctx context.Context, id string, patch models.ConcurrencePatch) (*models.Concurrence, error) {
	return s.concurrences.Update(ctx, id, patch)
}

func (s *ConcurrenceService) GetByID(ctx context.Context, id string) (*models.Concurrence, error) {
	return s.concurrences.GetByID(ctx, id)
}

func (s *ConcurrenceService) GetProjectConcurrences(ctx context.Context, projectID string) ([]models.Concurrence, error) {
	return s.concurrences.FindByProject(ctx, projectID)
}
