package service

import (
	"context"

	"leasehold-backend/internal/domain"
	"leasehold-backend/internal/logger"
	"leasehold-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) Notify(ctx context.Context, userID, kind, title, message string, attrs map[string]string) {
	note := &domain.Notification{
		UserID:     userID,
		Kind:       kind,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		// Notification delivery never fails the workflow that triggered it.
		logger.Error("Failed to create notification", "user_id", userID, "kind", kind, "error", err)
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, userID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}
