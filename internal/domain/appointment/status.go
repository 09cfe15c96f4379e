package appointment

import "github.com/careconnect/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

// transitions is the full state machine. Terminal states have no
// outgoing edges.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

func InitialStatus() Status {
	return StatusPending
}

func IsValidStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}

func IsTerminal(s Status) bool {
	edges, ok := transitions[s]
	return ok && len(edges) == 0
}

// NonTerminalStatuses lists the states that keep a slot occupied.
func NonTerminalStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

// CanTransition validates a single state-machine edge.
func CanTransition(from, to Status) error {
	edges, ok := transitions[from]
	if !ok {
		return httperr.ErrBusinessf(httperr.CodeInvalidTransition, "unknown status "+string(from))
	}
	for _, next := range edges {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusinessf(
		httperr.CodeInvalidTransition,
		string(from)+" -> "+string(to),
	)
}

// ===============================
// Cancellation attribution
// ===============================

type Actor string

const (
	ActorPatient   Actor = "patient"
	ActorPhysician Actor = "physician"
	ActorAdmin     Actor = "admin"
)

func IsValidActor(a Actor) bool {
	switch a {
	case ActorPatient, ActorPhysician, ActorAdmin:
		return true
	}
	return false
}

// ===============================
// Consultation type
// ===============================

const (
	ConsultationVideo = "VIDEO"
	ConsultationAudio = "AUDIO"
	ConsultationChat  = "CHAT"
)

func IsValidConsultationType(t string) bool {
	switch t {
	case ConsultationVideo, ConsultationAudio, ConsultationChat:
		return true
	}
	return false
}
