package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/careconnect/clinic-scheduler/internal/httperr"
	"github.com/careconnect/clinic-scheduler/internal/models"
	"github.com/careconnect/clinic-scheduler/internal/notification"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return translateError(r.db.WithContext(ctx).Create(n).Error)
}

func (r *NotificationGormRepository) ListNotifications(
	ctx context.Context,
	userID uint,
	limit int,
	offset int,
	isRead *bool,
) ([]models.Notification, error) {

	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")

	if isRead != nil {
		q = q.Where("is_read = ?", *isRead)
	}

	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var items []models.Notification
	if err := q.Find(&items).Error; err != nil {
		return nil, translateError(err)
	}

	return items, nil
}

// CountNotifications returns total and unread counts for a user. Unread
// is always computed fresh so it cannot drift after MarkRead.
func (r *NotificationGormRepository) CountNotifications(
	ctx context.Context,
	userID uint,
) (total int64, unread int64, err error) {

	base := r.db.WithContext(ctx).Model(&models.Notification{})

	if err = base.Session(&gorm.Session{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, translateError(err)
	}

	if err = base.Session(&gorm.Session{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&unread).Error; err != nil {
		return 0, 0, translateError(err)
	}

	return total, unread, nil
}

// MarkRead flips a single notification. Rows owned by another user look
// exactly like missing rows.
func (r *NotificationGormRepository) MarkRead(
	ctx context.Context,
	id uint,
	userID uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)

	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return nil
}

func (r *NotificationGormRepository) MarkAllRead(
	ctx context.Context,
	userID uint,
) error {

	return translateError(r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error)
}

func (r *NotificationGormRepository) DeleteNotification(
	ctx context.Context,
	id uint,
	userID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})

	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return nil
}

// Compile-time check
var _ notification.Repository = (*NotificationGormRepository)(nil)
