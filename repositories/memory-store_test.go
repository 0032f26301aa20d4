package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"lce-project/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryProjectRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryProjectRepository()

	require.NoError(t, repo.Insert(ctx, &models.Project{ID: "p1", Title: "Old"}))

	title := "New"
	status := models.ProjectInProgress
	updated, err := repo.Update(ctx, "p1", models.ProjectPatch{Title: &title, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, models.ProjectInProgress, updated.Status)
	assert.NotNil(t, updated.UpdatedAt)

	_, err = repo.Update(ctx, "missing", models.ProjectPatch{Title: &title})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInMemoryProjectRepositoryDeleteMany(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryProjectRepository()

	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, repo.Insert(ctx, &models.Project{ID: id}))
	}
	require.NoError(t, repo.Delete(ctx, "p1", "p3"))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "p2", all[0].ID)
}

func TestInMemoryTaskRepositoryScopedDeletes(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryTaskRepository()

	require.NoError(t, repo.Insert(ctx, &models.Task{ID: "t1", ProjectID: "p1"}))
	require.NoError(t, repo.Insert(ctx, &models.Task{ID: "t2", ProjectID: "p2", ConcurrenceID: "c1"}))
	require.NoError(t, repo.Insert(ctx, &models.Task{ID: "t3", ProjectID: "p2"}))

	require.NoError(t, repo.DeleteByConcurrence(ctx, "c1"))
	require.NoError(t, repo.DeleteByProjects(ctx, "p1"))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "t3", all[0].ID)
}

func TestInMemoryUserRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryUserRepository()

	require.NoError(t, repo.Insert(ctx, &models.User{ID: "u1", Email: "mira@lloyds.in", EmpID: "EMP1"}))

	byEmail, err := repo.FindByEmail(ctx, "  MIRA@lloyds.in ")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	byEmpID, err := repo.FindByEmpID(ctx, "EMP1")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmpID.ID)

	_, err = repo.FindByEmail(ctx, "nobody@lloyds.in")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInMemoryNoteRepositoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryNoteRepository()

	base := time.Now()
	require.NoError(t, repo.Insert(ctx, &models.Note{ID: "n1", ProjectID: "p1", Text: "old", CreatedAt: base.Add(-time.Hour)}))
	require.NoError(t, repo.Insert(ctx, &models.Note{ID: "n2", ProjectID: "p1", Text: "new", CreatedAt: base}))
	require.NoError(t, repo.Insert(ctx, &models.Note{ID: "n3", ProjectID: "p2", Text: "other project", CreatedAt: base}))

	notes, err := repo.FindByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "n2", notes[0].ID)
	assert.Equal(t, "n1", notes[1].ID)
}

func TestInMemoryNotificationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryNotificationRepository()

	n := &models.Notification{UserID: "u1", Message: "hello", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, n))
	require.NotEmpty(t, n.ID)

	got, err := repo.FindByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].IsRead)

	require.NoError(t, repo.MarkRead(ctx, "u1", n.ID))
	got, err = repo.FindByUser(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got[0].IsRead)

	err = repo.MarkRead(ctx, "u2", n.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInMemoryConcurrenceRepositoryReplace(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryConcurrenceRepository()

	require.NoError(t, repo.Insert(ctx, &models.Concurrence{ID: "c1", DrawingTitle: "v1"}))

	updated := &models.Concurrence{ID: "c1", DrawingTitle: "v2"}
	require.NoError(t, repo.Replace(ctx, updated))

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.DrawingTitle)

	err = repo.Replace(ctx, &models.Concurrence{ID: "missing"})
	assert.True(t, errors.Is(err, ErrNotFound))
}
