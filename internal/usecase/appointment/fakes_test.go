package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/careconnect/clinic-scheduler/internal/audit"
	domain "github.com/careconnect/clinic-scheduler/internal/domain/appointment"
	"github.com/careconnect/clinic-scheduler/internal/httperr"
	"github.com/careconnect/clinic-scheduler/internal/mailer"
	"github.com/careconnect/clinic-scheduler/internal/models"
	"github.com/careconnect/clinic-scheduler/internal/notification"
)

// fakeRepo is an in-memory domain.Repository. Its conflict check
// mirrors the store contract: an insert fails when the slot overlaps a
// non-terminal appointment of the same physician.
type fakeRepo struct {
	mu sync.Mutex

	users        map[uint]*models.User
	services     map[uint]*models.Service
	windows      map[uint][]models.AvailabilityWindow
	appointments []*models.Appointment

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[uint]*models.User),
		services: make(map[uint]*models.Service),
		windows:  make(map[uint][]models.AvailabilityWindow),
		nextID:   1,
	}
}

func (r *fakeRepo) addUser(u models.User) *models.User {
	r.users[u.ID] = &u
	return &u
}

func (r *fakeRepo) addService(s models.Service) *models.Service {
	r.services[s.ID] = &s
	return &s
}

func (r *fakeRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return u, nil
}

func (r *fakeRepo) GetServiceByID(_ context.Context, id uint) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return s, nil
}

func (r *fakeRepo) CreateAppointmentIfSlotFree(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.PhysicianID != ap.PhysicianID {
			continue
		}
		if domain.IsTerminal(domain.Status(existing.Status)) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, existing.StartTime, existing.EndTime) {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
	}

	ap.ID = r.nextID
	r.nextID++
	r.appointments = append(r.appointments, ap)
	return nil
}

func (r *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, _ *models.Appointment) error {
	return nil
}

func (r *fakeRepo) ListWindows(_ context.Context, physicianID uint) ([]models.AvailabilityWindow, error) {
	return r.windows[physicianID], nil
}

func (r *fakeRepo) ReplaceWindows(_ context.Context, physicianID uint, windows []models.AvailabilityWindow) error {
	r.windows[physicianID] = windows
	return nil
}

func (r *fakeRepo) SetAvailabilityStatus(_ context.Context, physicianID uint, isAvailable bool) error {
	u, ok := r.users[physicianID]
	if !ok {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	u.IsAvailable = isAvailable
	return nil
}

func (r *fakeRepo) ListForPhysician(_ context.Context, physicianID uint, _, _ int) ([]models.Appointment, int64, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.PhysicianID == physicianID {
			out = append(out, *ap)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) ListForPatient(_ context.Context, patientID uint, _, _ int) ([]models.Appointment, int64, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.PatientID == patientID {
			out = append(out, *ap)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) ListAll(_ context.Context, _ domain.ListFilter) ([]models.Appointment, int64, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		out = append(out, *ap)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) ListAppointmentsForDay(_ context.Context, physicianID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.PhysicianID != physicianID {
			continue
		}
		if domain.IsTerminal(domain.Status(ap.Status)) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// SIDE-EFFECT FAKES
// ======================================================

type fakeNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *fakeNotifier) Dispatch(ev notification.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *fakeNotifier) forUser(userID uint) []notification.Event {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []notification.Event
	for _, ev := range n.events {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out
}

type sentMail struct {
	To     string
	Kind   mailer.Kind
	Params map[string]string
}

type fakeMail struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMail) Dispatch(to string, kind mailer.Kind, params map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Kind: kind, Params: params})
}

type fakeAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *fakeAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *fakeAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}
