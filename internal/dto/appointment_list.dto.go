package dto

import (
	"time"

	"github.com/careconnect/clinic-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID               uint      `json:"id"`
	AppointmentDate  time.Time `json:"appointment_date"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	ConsultationType string    `json:"consultation_type"`
	PatientName      string    `json:"patient_name"`
	PhysicianName    string    `json:"physician_name"`
	ServiceName      string    `json:"service_name"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:               ap.ID,
		AppointmentDate:  ap.AppointmentDate,
		StartTime:        ap.StartTime,
		EndTime:          ap.EndTime,
		Status:           ap.Status,
		ConsultationType: ap.ConsultationType,
		PatientName:      ap.Patient.Name,
		PhysicianName:    ap.Physician.Name,
		ServiceName:      ap.Service.Name,
	}
}

func FromAppointments(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
