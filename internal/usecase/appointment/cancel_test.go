package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/careconnect/clinic-scheduler/internal/domain/appointment"
	"github.com/careconnect/clinic-scheduler/internal/httperr"
	"github.com/careconnect/clinic-scheduler/internal/mailer"
	"github.com/careconnect/clinic-scheduler/internal/models"
)

func cancelFixture(t *testing.T) (*fakeRepo, *fakeNotifier, *fakeMail, *fakeAudit, *CancelAppointment, *models.Appointment) {
	t.Helper()

	repo := newFakeRepo()
	patient := repo.addUser(models.User{ID: 1, Name: "Ana Silva", Email: "ana@example.com", Role: models.RolePatient})
	physician := repo.addUser(models.User{ID: 2, Name: "Bruno Costa", Email: "bruno@example.com", Role: models.RolePhysician, IsAvailable: true})

	start := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{
		PatientID:   1,
		Patient:     *patient,
		PhysicianID: 2,
		Physician:   *physician,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		Status:      string(domain.StatusConfirmed),
	}
	require.NoError(t, repo.CreateAppointmentIfSlotFree(context.Background(), ap))

	notif := &fakeNotifier{}
	mail := &fakeMail{}
	auditTrail := &fakeAudit{}

	uc := NewCancelAppointment(repo, notif, mail, auditTrail, testStoreTimeout)
	return repo, notif, mail, auditTrail, uc, ap
}

func TestCancelAppointment_ByPatient(t *testing.T) {
	_, notif, mail, auditTrail, uc, ap := cancelFixture(t)

	actor := uint(1)
	got, err := uc.Execute(context.Background(), ap.ID, domain.ActorPatient, &actor)
	require.NoError(t, err)

	assert.Equal(t, "CANCELLED", got.Status)
	require.NotNil(t, got.CancelledBy)
	assert.Equal(t, "patient", *got.CancelledBy)
	require.NotNil(t, got.CancelledAt)

	// Both parties notified, attribution in the copy.
	patientEvents := notif.forUser(1)
	physicianEvents := notif.forUser(2)
	require.Len(t, patientEvents, 1)
	require.Len(t, physicianEvents, 1)
	assert.Contains(t, patientEvents[0].Message, "cancelled by the patient")
	assert.Contains(t, physicianEvents[0].Message, "cancelled by the patient")

	require.Len(t, mail.sent, 1)
	assert.Equal(t, mailer.KindCancellation, mail.sent[0].Kind)
	assert.Equal(t, "ana@example.com", mail.sent[0].To)
	assert.Equal(t, "patient", mail.sent[0].Params["cancelled_by"])

	assert.Contains(t, auditTrail.actions(), "appointment_cancelled")
}

func TestCancelAppointment_ByPhysician(t *testing.T) {
	_, _, _, _, uc, ap := cancelFixture(t)

	actor := uint(2)
	got, err := uc.Execute(context.Background(), ap.ID, domain.ActorPhysician, &actor)
	require.NoError(t, err)
	assert.Equal(t, "physician", *got.CancelledBy)
}

func TestCancelAppointment_AdminNeedsNoOwnership(t *testing.T) {
	_, _, _, _, uc, ap := cancelFixture(t)

	admin := uint(77)
	got, err := uc.Execute(context.Background(), ap.ID, domain.ActorAdmin, &admin)
	require.NoError(t, err)
	assert.Equal(t, "admin", *got.CancelledBy)
}

func TestCancelAppointment_ForeignAppointmentLooksMissing(t *testing.T) {
	_, notif, _, _, uc, ap := cancelFixture(t)

	stranger := uint(42)
	_, err := uc.Execute(context.Background(), ap.ID, domain.ActorPatient, &stranger)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	otherPhysician := uint(43)
	_, err = uc.Execute(context.Background(), ap.ID, domain.ActorPhysician, &otherPhysician)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	assert.Empty(t, notif.events)
}

func TestCancelAppointment_AlreadyCancelled(t *testing.T) {
	_, notif, mail, _, uc, ap := cancelFixture(t)

	actor := uint(1)
	_, err := uc.Execute(context.Background(), ap.ID, domain.ActorPatient, &actor)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), ap.ID, domain.ActorPatient, &actor)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	// Side effects fired exactly once.
	assert.Len(t, notif.forUser(1), 1)
	assert.Len(t, mail.sent, 1)
}

func TestCancelAppointment_CompletedCannotBeCancelled(t *testing.T) {
	_, _, _, _, uc, ap := cancelFixture(t)
	ap.Status = string(domain.StatusCompleted)

	actor := uint(1)
	_, err := uc.Execute(context.Background(), ap.ID, domain.ActorPatient, &actor)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestCancelAppointment_UnknownActor(t *testing.T) {
	_, _, _, _, uc, ap := cancelFixture(t)

	_, err := uc.Execute(context.Background(), ap.ID, domain.Actor("robot"), nil)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidationFailure))
}

func TestCancelAppointment_UnknownID(t *testing.T) {
	_, _, _, _, uc, _ := cancelFixture(t)

	_, err := uc.Execute(context.Background(), 999, domain.ActorAdmin, nil)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}
