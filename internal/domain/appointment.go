package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending    AppointmentStatus = "pending"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusInProgress AppointmentStatus = "in-progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusScheduled,
		AppointmentStatusInProgress, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type ConsultationType string

const (
	ConsultationVideo    ConsultationType = "video"
	ConsultationInPerson ConsultationType = "in-person"
)

func (t ConsultationType) IsValid() bool {
	return t == ConsultationVideo || t == ConsultationInPerson
}

type Appointment struct {
	ID               int64             `json:"id"`
	PatientID        int64             `json:"patient_id"`
	DoctorID         int64             `json:"doctor_id"`
	AppointmentDate  time.Time         `json:"appointment_date"`
	ConsultationType ConsultationType  `json:"consultation_type"`
	Status           AppointmentStatus `json:"status"`
	Notes            string            `json:"notes,omitempty"`
	SecondOpinion    bool              `json:"second_opinion"`
	Fee              float64           `json:"fee"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	PatientName      string            `json:"patient_name,omitempty"`
	DoctorName       string            `json:"doctor_name,omitempty"`
	DoctorSpecialty  string            `json:"doctor_specialty,omitempty"`
	DoctorPhotoURL   string            `json:"doctor_photo_url,omitempty"`
}

type CreateAppointmentDTO struct {
	DoctorID         int64            `json:"doctor_id" binding:"required"`
	Date             string           `json:"date" binding:"required"`
	TimeSlot         string           `json:"time_slot" binding:"required"`
	ConsultationType ConsultationType `json:"consultation_type" binding:"required,oneof=video in-person"`
	Notes            string           `json:"notes"`
	SecondOpinion    bool             `json:"second_opinion"`
}

type UpdateAppointmentDTO struct {
	Status          *AppointmentStatus `json:"status" binding:"omitempty,oneof=pending confirmed scheduled in-progress completed cancelled"`
	AppointmentDate *time.Time         `json:"appointment_date"`
	Notes           *string            `json:"notes"`
}

type PatientDashboard struct {
	Upcoming []Appointment `json:"upcoming"`
	Past     []Appointment `json:"past"`
}

type AppointmentFilter struct {
	PatientID     *int64             `json:"patient_id"`
	DoctorID      *int64             `json:"doctor_id"`
	Status        *AppointmentStatus `json:"status"`
	ExcludeStatus *AppointmentStatus `json:"exclude_status"`
	StartDate     *time.Time         `json:"start_date"`
	EndDate       *time.Time         `json:"end_date"`
	Limit         int                `json:"limit"`
	Offset        int                `json:"offset"`
}
