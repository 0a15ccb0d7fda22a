package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	model "github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
)

// NotificationService is an append-only inbox per recipient.
type NotificationService struct {
	Dep *dependency.Dependency
}

func NewNotificationService(dep *dependency.Dependency) (*NotificationService, error) {
	if dep.DB == nil {
		return nil, errors.New("NotificationService: db is nil")
	}

	return &NotificationService{Dep: dep}, nil
}

func (s *NotificationService) push(ctx context.Context, tx *gorm.DB, toEmail string, fromEmail string, notificationType string) error {
	notification := model.Notification{
		ToEmail:   toEmail,
		FromEmail: fromEmail,
		Type:      notificationType,
	}
	return gorm.G[model.Notification](tx).Create(ctx, &notification)
}

// Push appends an unread notification for toEmail.
func (s *NotificationService) Push(ctx context.Context, toEmail string, fromEmail string, notificationType string) error {
	if err := s.push(ctx, s.Dep.DB, toEmail, fromEmail, notificationType); err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	return nil
}

// ListUnread returns the unread inbox of recipient, oldest first.
func (s *NotificationService) ListUnread(ctx context.Context, recipient string) ([]dto.NotificationOut, error) {
	notifications, err := gorm.G[model.Notification](s.Dep.DB).
		Where("to_email = ? AND read = ?", recipient, false).
		Order("created_at asc, id asc").
		Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}

	result := make([]dto.NotificationOut, 0, len(notifications))
	for i := range notifications {
		result = append(result, notificationToOut(&notifications[i]))
	}
	return result, nil
}

// MarkRead flags one notification of recipient as read, or all of them when
// id is nil or empty. Ids that are not UUIDs fail with InvalidID; ids owned by
// someone else, unknown ids and already-read notifications are no-ops.
func (s *NotificationService) MarkRead(ctx context.Context, recipient string, id *string) error {
	query := gorm.G[model.Notification](s.Dep.DB).Where("to_email = ? AND read = ?", recipient, false)

	if id != nil && *id != "" {
		if err := uuid.Validate(*id); err != nil {
			return apperror.InvalidID()
		}
		query = query.Where("id = ?", *id)
	}

	if _, err := query.Update(ctx, "read", true); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
