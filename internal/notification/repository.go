package notification

import (
	"context"

	"github.com/careconnect/clinic-scheduler/internal/models"
)

type Repository interface {
	CreateNotification(
		ctx context.Context,
		n *models.Notification,
	) error

	ListNotifications(
		ctx context.Context,
		userID uint,
		limit int,
		offset int,
		isRead *bool,
	) ([]models.Notification, error)

	CountNotifications(
		ctx context.Context,
		userID uint,
	) (total int64, unread int64, err error)

	MarkRead(
		ctx context.Context,
		id uint,
		userID uint,
	) error

	MarkAllRead(
		ctx context.Context,
		userID uint,
	) error

	DeleteNotification(
		ctx context.Context,
		id uint,
		userID uint,
	) error
}
