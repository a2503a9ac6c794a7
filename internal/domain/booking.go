package domain

import (
	"time"
)

type BookingState string

const (
	BookingStateInitial    BookingState = "initial"
	BookingStateDateChosen BookingState = "date_chosen"
	BookingStateSlotChosen BookingState = "slot_chosen"
	BookingStateConfirmed  BookingState = "confirmed"
	BookingStateCancelled  BookingState = "cancelled"
)

// BookingSelection накапливает выбор пациента в мастере записи.
// Подтверждение возможно только при непустых Date и TimeSlot, причем
// TimeSlot обязан входить в актуальный набор слотов выбранной даты.
type BookingSelection struct {
	Date             *time.Time       `json:"date"`
	TimeSlot         *string          `json:"time_slot"`
	ConsultationType ConsultationType `json:"consultation_type"`
	Notes            string           `json:"notes"`
	SecondOpinion    bool             `json:"second_opinion"`
}

type BookingConfirmation struct {
	AppointmentID int64  `json:"appointment_id"`
	DoctorName    string `json:"doctor_name"`
	Date          string `json:"date"`
	TimeSlot      string `json:"time_slot"`
	Redirect      string `json:"redirect"`
}
