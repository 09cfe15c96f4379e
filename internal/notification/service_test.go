package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careconnect/clinic-scheduler/internal/httperr"
	"github.com/careconnect/clinic-scheduler/internal/models"
)

// memRepo is an in-memory Repository enforcing the same ownership
// contract as the store: a foreign row behaves like a missing one.
type memRepo struct {
	mu     sync.Mutex
	rows   []*models.Notification
	nextID uint
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1}
}

func (r *memRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.ID = r.nextID
	r.nextID++
	n.CreatedAt = time.Now()
	r.rows = append(r.rows, n)
	return nil
}

func (r *memRepo) ListNotifications(_ context.Context, userID uint, limit, offset int, isRead *bool) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Notification
	for i := len(r.rows) - 1; i >= 0; i-- {
		n := r.rows[i]
		if n.UserID != userID {
			continue
		}
		if isRead != nil && n.IsRead != *isRead {
			continue
		}
		out = append(out, *n)
	}

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepo) CountNotifications(_ context.Context, userID uint) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total, unread int64
	for _, n := range r.rows {
		if n.UserID != userID {
			continue
		}
		total++
		if !n.IsRead {
			unread++
		}
	}
	return total, unread, nil
}

func (r *memRepo) MarkRead(_ context.Context, id, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.rows {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeNotFound)
}

func (r *memRepo) MarkAllRead(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.rows {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *memRepo) DeleteNotification(_ context.Context, id, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, n := range r.rows {
		if n.ID == id && n.UserID == userID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeNotFound)
}

var _ Repository = (*memRepo)(nil)

func seedInbox(t *testing.T, repo *memRepo, userID uint, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		require.NoError(t, repo.CreateNotification(context.Background(), &models.Notification{
			UserID:  userID,
			Type:    models.NotificationSystem,
			Title:   "hello",
			Message: "world",
		}))
	}
}

func TestService_ListCountsAreFresh(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, time.Second)

	seedInbox(t, repo, 1, 3)
	seedInbox(t, repo, 2, 5)

	res, err := svc.List(context.Background(), 1, 20, 0, nil)
	require.NoError(t, err)

	assert.Len(t, res.Items, 3)
	assert.EqualValues(t, 3, res.Total)
	assert.EqualValues(t, 3, res.Unread)

	require.NoError(t, svc.MarkRead(context.Background(), res.Items[0].ID, 1))

	res, err = svc.List(context.Background(), 1, 20, 0, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Total)
	assert.EqualValues(t, 2, res.Unread, "unread count must reflect the mark immediately")
}

func TestService_ListFilterByRead(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, time.Second)

	seedInbox(t, repo, 1, 4)
	require.NoError(t, svc.MarkRead(context.Background(), 1, 1))

	unreadOnly := false
	res, err := svc.List(context.Background(), 1, 20, 0, &unreadOnly)
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)

	readOnly := true
	res, err = svc.List(context.Background(), 1, 20, 0, &readOnly)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
}

func TestService_ListEmptyInboxIsNotNil(t *testing.T) {
	svc := NewService(newMemRepo(), time.Second)

	res, err := svc.List(context.Background(), 1, 20, 0, nil)
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.EqualValues(t, 0, res.Total)
	assert.EqualValues(t, 0, res.Unread)
}

func TestService_MarkReadEnforcesOwnership(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, time.Second)

	seedInbox(t, repo, 1, 1)

	err := svc.MarkRead(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	// The owner still can.
	assert.NoError(t, svc.MarkRead(context.Background(), 1, 1))
}

func TestService_MarkAllRead(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, time.Second)

	seedInbox(t, repo, 1, 5)
	seedInbox(t, repo, 2, 2)

	require.NoError(t, svc.MarkAllRead(context.Background(), 1))

	res, err := svc.List(context.Background(), 1, 20, 0, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.Total, "total is untouched")
	assert.EqualValues(t, 0, res.Unread)

	// The other user's inbox is untouched.
	res, err = svc.List(context.Background(), 2, 20, 0, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Unread)
}

func TestService_DeleteEnforcesOwnership(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, time.Second)

	seedInbox(t, repo, 1, 2)

	err := svc.Delete(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	require.NoError(t, svc.Delete(context.Background(), 1, 1))

	res, err := svc.List(context.Background(), 1, 20, 0, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
}

func TestService_DeleteTwice(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, time.Second)

	seedInbox(t, repo, 1, 1)

	require.NoError(t, svc.Delete(context.Background(), 1, 1))

	err := svc.Delete(context.Background(), 1, 1)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}
