package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"lce-project/backend/models"
	"lce-project/backend/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type concurrenceFixture struct {
	tasks         *repositories.InMemoryTaskRepository
	concurrences  *repositories.InMemoryConcurrenceRepository
	notifications *repositories.InMemoryNotificationRepository
	taskSvc       *TaskService
	svc           *ConcurrenceService
}

func newConcurrenceFixture(requireAllSigned bool) *concurrenceFixture {
	users := repositories.NewInMemoryUserRepository()
	tasks := repositories.NewInMemoryTaskRepository()
	concurrences := repositories.NewInMemoryConcurrenceRepository()
	notifications := repositories.NewInMemoryNotificationRepository()
	access := NewAccessService(users)
	notifier := NewNotificationService(notifications)
	taskSvc := NewTaskService(tasks, users, access, notifier)
	return &concurrenceFixture{
		tasks:         tasks,
		concurrences:  concurrences,
		notifications: notifications,
		taskSvc:       taskSvc,
		svc:           NewConcurrenceService(concurrences, tasks, taskSvc, notifier, nil, requireAllSigned),
	}
}

func TestCreateConcurrenceFansOutSignOffTasks(t *testing.T) {
	ctx := context.Background()
	f := newConcurrenceFixture(true)

	c, err := f.svc.CreateConcurrence(ctx, ConcurrenceInput{
		ProjectID:     "p1",
		DrawingTitle:  "Foundation GA Rev.2",
		ReviewerIDs:   []string{"r1", "r2", "r3"},
		DueDate:       "2026-09-30",
		LinkedPDFData: "data:application/pdf;base64,AAAA",
		LinkedPDFName: "foundation-ga.pdf",
	}, "lead")
	require.NoError(t, err)

	require.Len(t, c.Reviewers, 3)
	for _, r := range c.Reviewers {
		assert.False(t, r.Signed)
		assert.Nil(t, r.SignedAt)
	}
	assert.False(t, c.HODSignOff.Signed)
	assert.False(t, c.SentToClient)

	tasks, err := f.tasks.FindByConcurrence(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	seen := make(map[string]bool)
	for _, task := range tasks {
		assert.Equal(t, "Concurrence: Foundation GA Rev.2", task.Title)
		assert.Equal(t, c.ID, task.ConcurrenceID)
		assert.True(t, task.IsConcurrenceTask)
		assert.Equal(t, models.PriorityHigh, task.Priority)
		assert.Equal(t, models.StatusToDo, task.Status)
		assert.Equal(t, "2026-09-30", task.DueDate)
		assert.Equal(t, "foundation-ga.pdf", task.PDFName)
		// Svaki recenzent dobija tačno jedan zadatak, samo za sebe
		require.Len(t, task.AssigneeList(), 1)
		seen[task.AssigneeList()[0]] = true
	}
	assert.Len(t, seen, 3)
}

func TestCreateConcurrenceValidation(t *testing.T) {
	ctx := context.Background()
	f := newConcurrenceFixture(true)

	_, err := f.svc.CreateConcurrence(ctx, ConcurrenceInput{ProjectID: "p1"}, "lead")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drawing title is required")

	_, err = f.svc.CreateConcurrence(ctx, ConcurrenceInput{DrawingTitle: "No project"}, "lead")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must belong to a project")
}

// failingTaskRepository pušta prvih n upisa pa odbija ostale.
type failingTaskRepository struct {
	*repositories.InMemoryTaskRepository
	allowed int
	done    int
}

func (r *failingTaskRepository) Insert(ctx context.Context, task *models.Task) error {
	if r.done >= r.allowed {
		return fmt.Errorf("insert rejected")
	}
	r.done++
	return r.InMemoryTaskRepository.Insert(ctx, task)
}

func TestCreateConcurrenceRollsBackOnTaskFailure(t *testing.T) {
	ctx := context.Background()
	users := repositories.NewInMemoryUserRepository()
	tasks := &failingTaskRepository{InMemoryTaskRepository: repositories.NewInMemoryTaskRepository(), allowed: 1}
	concurrences := repositories.NewInMemoryConcurrenceRepository()
	access := NewAccessService(users)
	notifier := NewNotificationService(nil)
	taskSvc := NewTaskService(tasks, users, access, notifier)
	svc := NewConcurrenceService(concurrences, tasks, taskSvc, notifier, nil, true)

	_, err := svc.CreateConcurrence(ctx, ConcurrenceInput{
		ProjectID:    "p1",
		DrawingTitle: "Doomed",
		ReviewerIDs:  []string{"r1", "r2"},
	}, "lead")
	require.Error(t, err)

	// Ni concurrence ni delimično kreirani zadaci ne smeju da prežive
	all, err := concurrences.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	remaining, err := tasks.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestSignMarksReviewerAndCompletesTask(t *testing.T) {
	ctx := context.Background()
	f := newConcurrenceFixture(true)

	c, err := f.svc.CreateConcurrence(ctx, ConcurrenceInput{
		ProjectID:    "p1",
		DrawingTitle: "Drawing",
		ReviewerIDs:  []string{"r1", "r2"},
	}, "lead")
	require.NoError(t, err)

	signed, err := f.svc.Sign(ctx, c.ID, "r1")
	require.NoError(t, err)

	for _, r := range signed.Reviewers {
		if r.UserID == "r1" {
			assert.True(t, r.Signed)
			assert.NotNil(t, r.SignedAt)
		} else {
			assert.False(t, r.Signed, "other reviewers must stay unsigned")
		}
	}

	tasks, err := f.tasks.FindByConcurrence(ctx, c.ID)
	require.NoError(t, err)
	for _, task := range tasks {
		if task.IsAssignedTo("r1") {
			assert.Equal(t, models.StatusDone, task.Status)
		} else {
			assert.Equal(t, models.StatusToDo, task.Status)
		}
	}
}

func TestSignByNonReviewerIsIgnored(t *testing.T) {
	ctx := context.Background()
	f := newConcurrenceFixture(true)

	c, err := f.svc.CreateConcurrence(ctx, ConcurrenceInput{
		ProjectID:    "p1",
		DrawingTitle: "Drawing",
		ReviewerIDs:  []string{"r1"},
	}, "lead")
	require.NoError(t, err)

	got, err := f.svc.Sign(ctx, c.ID, "stranger")
	require.NoError(t, err)
	assert.False(t, got.Reviewers[0].Signed)
	assert.False(t, got.AllSigned())
}

func TestSignIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newConcurrenceFixture(true)

	c, err := f.svc.CreateConcurrence(ctx, ConcurrenceInput{
		ProjectID:    "p1",
		DrawingTitle: "Drawing",
		ReviewerIDs:  []string{"r1"},
	}, "lead")
	require.NoError(t, err)

	_, err = f.svc.Sign(ctx, c.ID, "r1")
	require.NoError(t, err)
	again, err := f.svc.Sign(ctx, c.ID, "r1")
	require.NoError(t, err)
	assert.True(t, again.Reviewers[0].Signed)
	assert.True(t, again.AllSigned())
}

func TestHODSignRequiresAllReviewerSignatures(t *testing.T) {
	ctx := context.Background()
	f := newConcurrenceFixture(true)

	c, err := f.svc.CreateConcurrence(ctx, ConcurrenceInput{
		ProjectID:    "p1",
		DrawingTitle: "Drawing",
		ReviewerIDs:  []string{"r1", "r2"},
	}, "lead")
	require.NoError(t, err)

	_, err = f.svc.HODSign(ctx, c.ID, "hod")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all reviewers must sign")

	_, err = f.svc.Sign(ctx, c.ID, "r1")
	require.NoError(t, err)
	_, err = f.svc.Sign(ctx, c.ID, "r2")
	require.NoError(t, err)

	approved, err := f.svc.HODSign(ctx, c.ID, "hod")
	require.NoError(t, err)
	assert.True(t, approved.HODSignOff.Signed)
	assert.Equal(t, "hod", approved.HODSignOff.SignedBy)
	assert.NotNil(t, approved.HODSignOff.SignedAt)
}

func TestHODSignWithoutGate(t *testing.T) {
	ctx := context.Background()
	f := newConcurrenceFixture(false)

	c, err := f.svc.CreateConcurrence(ctx, ConcurrenceInput{
		ProjectID:    "p1",
		DrawingTitle: "Drawing",
		ReviewerIDs:  []string{"r1", "r2"},
	}, "lead")
	require.NoError(t, err)

	// Bez kapije HOD potpisuje i pre recenzenata
	approved, err := f.svc.HODSign(ctx, c.ID, "hod")
	require.NoError(t, err)
	assert.True(t, approved.HODSignOff.Signed)
}

func TestMarkSentToClient(t *testing.T) {
	ctx := context.Background()
	f := newConcurrenceFixture(true)

	c, err := f.svc.CreateConcurrence(ctx, ConcurrenceInput{
		ProjectID:    "p1",
		DrawingTitle: "Drawing",
		ReviewerIDs:  []string{"r1"},
	}, "lead")
	require.NoError(t, err)

	_, err = f.svc.MarkSentToClient(ctx, c.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before dispatch")

	_, err = f.svc.Sign(ctx, c.ID, "r1")
	require.NoError(t, err)

	sent, err := f.svc.MarkSentToClient(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, sent.SentToClient)
	assert.NotNil(t, sent.SentAt)
}

func TestDeleteConcurrenceRemovesSignOffTasks(t *testing.T) {
	ctx := context.Background()
	f := newConcurrenceFixture(true)

	c, err := f.svc.CreateConcurrence(ctx, ConcurrenceInput{
		ProjectID:    "p1",
		DrawingTitle: "Doomed",
		ReviewerIDs:  []string{"r1", "r2"},
	}, "lead")
	require.NoError(t, err)

	unrelated, err := f.taskSvc.CreateTask(ctx, TaskInput{Title: "Unrelated", ProjectID: "p1"}, "lead")
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, c.ID))

	_, err = f.concurrences.GetByID(ctx, c.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	remaining, err := f.tasks.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, unrelated.ID, remaining[0].ID)
}

func TestConcurrenceFullLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newConcurrenceFixture(true)

	c, err := f.svc.CreateConcurrence(ctx, ConcurrenceInput{
		ProjectID:    "p1",
		DrawingTitle: "Pipe Rack GA",
		ReviewerIDs:  []string{"r1", "r2"},
	}, "lead")
	require.NoError(t, err)

	// Recenzenti su obavešteni da se traži potpis
	for _, id := range []string{"r1", "r2"} {
		got, err := f.notifications.FindByUser(ctx, id)
		require.NoError(t, err)
		// Jedno obaveštenje za sign-off zadatak, jedno za traženi potpis
		assert.Len(t, got, 2)
	}

	_, err = f.svc.Sign(ctx, c.ID, "r1")
	require.NoError(t, err)
	_, err = f.svc.Sign(ctx, c.ID, "r2")
	require.NoError(t, err)

	signed, err := f.svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, signed.AllSigned())

	_, err = f.svc.HODSign(ctx, c.ID, "hod")
	require.NoError(t, err)
	sent, err := f.svc.MarkSentToClient(ctx, c.ID)
	require.NoError(t, err)

	assert.True(t, sent.HODSignOff.Signed)
	assert.True(t, sent.SentToClient)

	// Kreator je obavešten o odobrenju i o slanju
	creatorNotes, err := f.notifications.FindByUser(ctx, "lead")
	require.NoError(t, err)
	assert.Len(t, creatorNotes, 2)
}
