package notification

import (
	"context"
	"time"

	"github.com/careconnect/clinic-scheduler/internal/models"
)

// ListResult carries one page of notifications plus the counters the
// client renders a badge from.
type ListResult struct {
	Items  []models.Notification `json:"items"`
	Total  int64                 `json:"total"`
	Unread int64                 `json:"unread"`
}

// Service exposes a user's notification inbox. Ownership is enforced
// on every mutating call: a foreign row behaves like a missing one.
type Service struct {
	repo         Repository
	storeTimeout time.Duration
}

func NewService(repo Repository, storeTimeout time.Duration) *Service {
	return &Service{repo: repo, storeTimeout: storeTimeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

func (s *Service) List(
	ctx context.Context,
	userID uint,
	limit int,
	offset int,
	isRead *bool,
) (*ListResult, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, err := s.repo.ListNotifications(ctx, userID, limit, offset, isRead)
	if err != nil {
		return nil, err
	}

	total, unread, err := s.repo.CountNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []models.Notification{}
	}

	return &ListResult{
		Items:  items,
		Total:  total,
		Unread: unread,
	}, nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID uint) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID uint) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, id, userID uint) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.DeleteNotification(ctx, id, userID)
}
