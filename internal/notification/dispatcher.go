package notification

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/careconnect/clinic-scheduler/internal/models"
	"github.com/careconnect/clinic-scheduler/internal/realtime"
)

// Event is one user-facing notification raised by any subsystem.
type Event struct {
	UserID   uint
	Type     string
	Title    string
	Message  string
	Link     string
	Metadata map[string]any
}

// pushPayload is the wire shape sent over the live channel.
type pushPayload struct {
	ID        uint            `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Link      string          `json:"link,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

// Dispatcher persists notifications and fans them out to live
// sessions. Persistence is the only hard dependency: the live push is
// a delivery optimization, never a source of truth.
type Dispatcher struct {
	repo         Repository
	hub          *realtime.Hub
	log          *zap.Logger
	storeTimeout time.Duration
	queue        chan Event
}

func NewDispatcher(
	repo Repository,
	hub *realtime.Hub,
	log *zap.Logger,
	storeTimeout time.Duration,
) *Dispatcher {
	d := &Dispatcher{
		repo:         repo,
		hub:          hub,
		log:          log,
		storeTimeout: storeTimeout,
		queue:        make(chan Event, 100),
	}

	go d.worker()
	return d
}

// Publish persists the notification, then pushes it to the user's live
// channel if one is bound. Absence of a live session is not an error.
func (d *Dispatcher) Publish(ctx context.Context, ev Event) (*models.Notification, error) {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	n := &models.Notification{
		UserID:   ev.UserID,
		Type:     ev.Type,
		Title:    ev.Title,
		Message:  ev.Message,
		Link:     ev.Link,
		Metadata: metaJSON,
	}

	ctx, cancel := context.WithTimeout(ctx, d.storeTimeout)
	defer cancel()

	if err := d.repo.CreateNotification(ctx, n); err != nil {
		return nil, err
	}

	payload := pushPayload{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if metaJSON != "" {
		payload.Metadata = json.RawMessage(metaJSON)
	}

	d.hub.Publish(realtime.UserChannel(n.UserID), payload)

	return n, nil
}

// Dispatch enqueues an event without blocking the caller. Used by the
// scheduling engine for its fire-and-forget side effects; a failed
// publish is logged with the recipient, never surfaced upstream.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.Uint("user_id", ev.UserID),
			zap.String("type", ev.Type),
		)
	}
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if _, err := d.Publish(context.Background(), ev); err != nil {
			d.log.Warn("notification publish failed",
				zap.Uint("user_id", ev.UserID),
				zap.String("type", ev.Type),
				zap.Error(err),
			)
		}
	}
}
