package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/sirupsen/logrus"
)

// UnreadLimit caps the unread list returned to clients.
const UnreadLimit = 10

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidID    = errors.New("invalid id format")
	ErrInvalidType  = errors.New("invalid notification type")
)

type Inbox struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int64           `json:"unread_count"`
}

type NotificationService interface {
	Emit(ctx context.Context, userID uuid.UUID, typ Type, title, message string) (*Notification, error)
	Unread(ctx context.Context, userID uuid.UUID, limit int) (*Inbox, error)
	ListUnread(ctx context.Context) (*Inbox, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context) error
}

type notificationService struct {
	repo NotificationRepository
}

func NewService(repo NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) Emit(ctx context.Context, userID uuid.UUID, typ Type, title, message string) (*Notification, error) {
	log := config.WithContext(ctx)
	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, typ)
	}

	n := &Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.WithError(err).WithField("type", typ).Error("Failed to create notification")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"type":            typ,
		"recipient_id":    userID,
	}).Info("Notification emitted")
	return n, nil
}

func (s *notificationService) Unread(ctx context.Context, userID uuid.UUID, limit int) (*Inbox, error) {
	list, err := s.repo.ListUnread(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*Notification{}
	}
	return &Inbox{Notifications: list, UnreadCount: count}, nil
}

func (s *notificationService) ListUnread(ctx context.Context) (*Inbox, error) {
	log := config.WithContext(ctx)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.WithError(err).Warn("Attempt to list notifications without authentication")
		return nil, ErrUnauthorized
	}

	inbox, err := s.Unread(ctx, userID, UnreadLimit)
	if err != nil {
		log.WithError(err).Error("Failed to list unread notifications")
		return nil, err
	}
	return inbox, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID string) error {
	log := config.WithContext(ctx)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return ErrUnauthorized
	}

	id, err := uuid.Parse(notificationID)
	if err != nil {
		log.WithError(err).Warn("Invalid notification ID")
		return ErrInvalidID
	}

	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if !errors.Is(err, ErrNotificationNotFound) {
			log.WithError(err).Error("Failed to mark notification as read")
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	log := config.WithContext(ctx)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return ErrUnauthorized
	}

	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to mark all notifications as read")
		return err
	}
	log.WithField("updated", updated).Info("Notifications marked as read")
	return nil
}
