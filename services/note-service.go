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

type NoteService struct {
	notes repositories.NoteRepository
}

func NewNoteService(notes repositories.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) GetProjectNotes(ctx context.Context, projectID string) ([]models.Note, error) {
	return s.notes.FindByProject(ctx, projectID)
}

func (s *NoteService) AddNote(ctx context.Context, projectID, text, userID string) (*models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("note text is required")
	}

	note := &models.Note{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Text:      text,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}
	if err := s.notes.Insert(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	return s.notes.Delete(ctx, id)
}
