package services

import (
	"context"
	"testing"

	"lce-project/backend/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(repositories.NewInMemoryNoteRepository())

	_, err := svc.AddNote(ctx, "p1", "   ", "u1")
	require.Error(t, err)

	note, err := svc.AddNote(ctx, "p1", "  Client asked for Rev.3  ", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Client asked for Rev.3", note.Text)
	assert.Equal(t, "u1", note.CreatedBy)

	notes, err := svc.GetProjectNotes(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, notes, 1)

	require.NoError(t, svc.DeleteNote(ctx, note.ID))
	notes, err = svc.GetProjectNotes(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, notes)
}
