package services

import (
	"context"
	"fmt"
	"time"

	"lce-project/backend/logging"
	"lce-project/backend/models"
	"lce-project/backend/repositories"
)

// NotificationService upisuje obaveštenja korisnicima. Neuspeh upisa se samo
// loguje: obaveštenja ne smeju da obore operaciju koja ih je izazvala.
type NotificationService struct {
	repo repositories.NotificationRepository
}

func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) notify(ctx context.Context, userID, message string) {
	if s == nil || s.repo == nil || userID == "" {
		return
	}
	notification := &models.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
		IsRead:    false,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		logging.Logger.Warnf("Event ID: NOTIFICATION_FAILED, Description: Failed to store notification for user %s: %v", userID, err)
	}
}

func (s *NotificationService) NotifyTaskAssigned(ctx context.Context, task *models.Task) {
	for _, userID := range task.AssigneeList() {
		s.notify(ctx, userID, fmt.Sprintf("You have been assigned the task \"%s\".", task.Title))
	}
}

func (s *NotificationService) NotifySignOffRequested(ctx context.Context, concurrence *models.Concurrence) {
	for _, r := range concurrence.Reviewers {
		s.notify(ctx, r.UserID, fmt.Sprintf("Your sign-off is requested on concurrence \"%s\".", concurrence.DrawingTitle))
	}
}

func (s *NotificationService) NotifyHODApproved(ctx context.Context, concurrence *models.Concurrence) {
	s.notify(ctx, concurrence.CreatedBy, fmt.Sprintf("Concurrence \"%s\" has HOD approval.", concurrence.DrawingTitle))
}

func (s *NotificationService) NotifySentToClient(ctx context.Context, concurrence *models.Concurrence) {
	s.notify(ctx, concurrence.CreatedBy, fmt.Sprintf("Concurrence \"%s\" has been dispatched to the client.", concurrence.DrawingTitle))
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	if s == nil || s.repo == nil {
		return nil, nil
	}
	return s.repo.FindByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if s == nil || s.repo == nil {
		return nil
	}
	return s.repo.MarkRead(ctx, userID, notificationID)
}
