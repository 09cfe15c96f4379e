package appointment

import (
	"github.com/careconnect/clinic-scheduler/internal/audit"
	"github.com/careconnect/clinic-scheduler/internal/mailer"
	"github.com/careconnect/clinic-scheduler/internal/notification"
)

// Side-effect collaborators, consumer-side so tests can fake them.
// Every one of these is fire-and-forget: a failure is logged by the
// implementation and never unwinds the primary state mutation.

type notifier interface {
	Dispatch(ev notification.Event)
}

type mailQueue interface {
	Dispatch(to string, kind mailer.Kind, params map[string]string)
}

type auditTrail interface {
	Dispatch(ev audit.Event)
}

func auditEvent(userID *uint, action string, appointmentID uint, meta map[string]any) audit.Event {
	id := appointmentID
	return audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &id,
		Metadata: meta,
	}
}
