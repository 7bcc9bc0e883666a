package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
)

const (
	defaultNotificationPage  = 1
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

// NotificationService is the recipient's inbox. Marking a notification read
// deletes it.
type NotificationService struct {
	repo   repo.NotificationRepository
	logger *zap.Logger
}

func NewNotificationService(repo repo.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		logger: logger,
	}
}

func (s *NotificationService) List(ctx context.Context, actor model.Actor, page, limit int) (model.NotificationList, error) {
	if page < 1 {
		page = defaultNotificationPage
	}
	if limit < 1 || limit > maxNotificationLimit {
		limit = defaultNotificationLimit
	}

	items, err := s.repo.ListByRecipient(ctx, actor.ID, limit, pageOffset(page, limit))
	if err != nil {
		return model.NotificationList{}, err
	}
	total, err := s.repo.CountByRecipient(ctx, actor.ID)
	if err != nil {
		return model.NotificationList{}, err
	}

	return model.NotificationList{
		Total:      total,
		Pagination: model.NewPagination(page, limit, total),
		Data:       items,
	}, nil
}

func (s *NotificationService) Count(ctx context.Context, actor model.Actor) (int, error) {
	return s.repo.CountByRecipient(ctx, actor.ID)
}

// MarkRead removes one of the actor's notifications. Someone else's
// notification is reported as not found.
func (s *NotificationService) MarkRead(ctx context.Context, actor model.Actor, id string) error {
	if err := checkID("id", id); err != nil {
		return err
	}
	return s.repo.DeleteForRecipient(ctx, id, actor.ID)
}

// MarkAllRead removes every notification of the actor and returns how many
// were removed.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor model.Actor) (int64, error) {
	n, err := s.repo.DeleteAllForRecipient(ctx, actor.ID)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("notifications cleared", zap.String("recipient_id", actor.ID), zap.Int64("count", n))
	return n, nil
}
