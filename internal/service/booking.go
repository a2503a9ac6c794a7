package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"healthconnect/internal/domain"
	"healthconnect/internal/schedule"
)

// BookingFlow ведет пациента по шагам записи: дата, слот, подтверждение.
// Смена даты всегда сбрасывает выбранный слот, подтверждение без полного
// выбора невозможно.
type BookingFlow struct {
	Doctor    *domain.Doctor
	State     domain.BookingState
	Selection domain.BookingSelection
}

func NewBookingFlow(doctor *domain.Doctor, consultationType domain.ConsultationType) *BookingFlow {
	if !consultationType.IsValid() {
		consultationType = domain.ConsultationVideo
	}

	return &BookingFlow{
		Doctor: doctor,
		State:  domain.BookingStateInitial,
		Selection: domain.BookingSelection{
			ConsultationType: consultationType,
		},
	}
}

func (f *BookingFlow) SelectDate(date, now time.Time) error {
	if f.State == domain.BookingStateConfirmed || f.State == domain.BookingStateCancelled {
		return errors.New("запись уже завершена")
	}

	if !schedule.DateSelectable(f.Doctor.AvailableDays, date, now) {
		return domain.ErrSlotUnavailable
	}

	f.Selection.Date = &date
	f.Selection.TimeSlot = nil
	f.State = domain.BookingStateDateChosen

	return nil
}

func (f *BookingFlow) SelectSlot(slot string) error {
	if f.State == domain.BookingStateConfirmed || f.State == domain.BookingStateCancelled {
		return errors.New("запись уже завершена")
	}

	if f.Selection.Date == nil {
		return domain.ErrMissingSelection
	}

	slots := schedule.ResolveSlots(f.Doctor.AvailableDays, f.Doctor.TimeSlots, *f.Selection.Date)
	if !containsSlot(slots, slot) {
		return domain.ErrSlotUnavailable
	}

	f.Selection.TimeSlot = &slot
	f.State = domain.BookingStateSlotChosen

	return nil
}

func (f *BookingFlow) SetConsultationType(consultationType domain.ConsultationType) error {
	if !consultationType.IsValid() {
		return errors.New("некорректный тип консультации")
	}

	f.Selection.ConsultationType = consultationType

	return nil
}

func (f *BookingFlow) SetNotes(notes string) {
	f.Selection.Notes = notes
}

func (f *BookingFlow) SetSecondOpinion(secondOpinion bool) {
	f.Selection.SecondOpinion = secondOpinion
}

func (f *BookingFlow) Cancel() {
	f.State = domain.BookingStateCancelled
}

func (f *BookingFlow) ReadyToConfirm() bool {
	return f.Selection.Date != nil && f.Selection.TimeSlot != nil &&
		f.State == domain.BookingStateSlotChosen
}

type BookingServiceImpl struct {
	doctors      DoctorService
	appointments AppointmentService
	notifier     Notifier
	logger       *zap.Logger
}

func NewBookingService(doctors DoctorService, appointments AppointmentService, notifier Notifier, logger *zap.Logger) *BookingServiceImpl {
	return &BookingServiceImpl{
		doctors:      doctors,
		appointments: appointments,
		notifier:     notifier,
		logger:       logger,
	}
}

func (s *BookingServiceImpl) StartFlow(ctx context.Context, doctorID int64, consultationType domain.ConsultationType) (*BookingFlow, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	return NewBookingFlow(doctor, consultationType), nil
}

// Confirm завершает запись: проверяет полноту выбора, создает запись на прием
// и уведомляет пациента.
func (s *BookingServiceImpl) Confirm(ctx context.Context, patientID, doctorID int64, selection domain.BookingSelection) (*domain.BookingConfirmation, error) {
	if selection.Date == nil || selection.TimeSlot == nil {
		return nil, domain.ErrMissingSelection
	}

	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	dto := domain.CreateAppointmentDTO{
		DoctorID:         doctorID,
		Date:             selection.Date.Format("2006-01-02"),
		TimeSlot:         *selection.TimeSlot,
		ConsultationType: selection.ConsultationType,
		Notes:            selection.Notes,
		SecondOpinion:    selection.SecondOpinion,
	}

	appointmentID, err := s.appointments.Create(ctx, patientID, dto)
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) || errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		s.logger.Error("ошибка подтверждения записи", zap.Int64("doctorId", doctorID), zap.Error(err))
		return nil, domain.ErrBookingFailed
	}

	formattedDate := selection.Date.Format("January 2, 2006")

	s.notifier.Notify(ctx, patientID, domain.Notification{
		Title:       "Appointment Booked!",
		Description: "Your appointment with " + doctor.Name + " on " + formattedDate + " at " + *selection.TimeSlot + " has been confirmed.",
		Variant:     domain.NotificationDefault,
	})

	return &domain.BookingConfirmation{
		AppointmentID: appointmentID,
		DoctorName:    doctor.Name,
		Date:          formattedDate,
		TimeSlot:      *selection.TimeSlot,
		Redirect:      "/dashboard",
	}, nil
}
