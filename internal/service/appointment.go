package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"healthconnect/internal/domain"
	"healthconnect/internal/repository"
	"healthconnect/internal/schedule"
	"healthconnect/pkg/validator"
)

type AppointmentServiceImpl struct {
	repo       repository.AppointmentRepository
	doctorRepo repository.DoctorRepository
	userRepo   repository.UserRepository
	logger     *zap.Logger
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	_, err := s.userRepo.GetByID(ctx, patientID)
	if err != nil {
		s.logger.Warn("пациент не найден при создании записи", zap.Int64("patientId", patientID), zap.Error(err))
		return 0, domain.ErrAccountNotFound
	}

	doctor, err := s.doctorRepo.GetByID(ctx, dto.DoctorID)
	if err != nil {
		s.logger.Warn("врач не найден при создании записи", zap.Int64("doctorId", dto.DoctorID), zap.Error(err))
		return 0, domain.ErrNotFound
	}

	if !dto.ConsultationType.IsValid() {
		return 0, errors.New("некорректный тип консультации")
	}

	if !validator.ValidateTimeSlot(dto.TimeSlot) {
		return 0, errors.New("некорректный формат слота времени")
	}

	appointmentDate, err := combineDateSlot(dto.Date, dto.TimeSlot)
	if err != nil {
		return 0, err
	}

	// Слот должен входить в недельное расписание врача на этот день.
	slots := schedule.ResolveSlots(doctor.AvailableDays, doctor.TimeSlots, appointmentDate)
	if !containsSlot(slots, dto.TimeSlot) {
		return 0, domain.ErrSlotUnavailable
	}

	appointment := domain.Appointment{
		DoctorID:         dto.DoctorID,
		AppointmentDate:  appointmentDate,
		ConsultationType: dto.ConsultationType,
		Notes:            dto.Notes,
		SecondOpinion:    dto.SecondOpinion,
		Fee:              doctor.ConsultationFee,
	}

	id, err := s.repo.Create(ctx, patientID, appointment)
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			return 0, domain.ErrSlotUnavailable
		}
		s.logger.Error("ошибка создания записи на прием", zap.Error(err))
		return 0, domain.ErrBookingFailed
	}

	return id, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("ошибка получения записи на прием", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("ошибка при получении записи")
	}

	return appointment, nil
}

func (s *AppointmentServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	if dto.Status != nil && !dto.Status.IsValid() {
		return errors.New("некорректный статус записи")
	}

	err := s.repo.Update(ctx, id, dto)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		s.logger.Error("ошибка обновления записи на прием", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении записи")
	}

	return nil
}

func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id int64) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ErrNotFound
	}

	if appointment.Status == domain.AppointmentStatusCancelled {
		return nil
	}

	if appointment.Status == domain.AppointmentStatusCompleted {
		return errors.New("завершенную запись нельзя отменить")
	}

	status := domain.AppointmentStatusCancelled
	err = s.repo.Update(ctx, id, domain.UpdateAppointmentDTO{Status: &status})
	if err != nil {
		s.logger.Error("ошибка отмены записи на прием", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при отмене записи")
	}

	return nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка при получении списка записей: %w", err)
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка подсчета записей", zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка при подсчете записей: %w", err)
	}

	return appointments, total, nil
}

// Dashboard делит записи пациента на предстоящие и прошедшие.
// Отмененные записи в предстоящие не попадают.
func (s *AppointmentServiceImpl) Dashboard(ctx context.Context, patientID int64) (*domain.PatientDashboard, error) {
	_, err := s.userRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	appointments, err := s.repo.List(ctx, domain.AppointmentFilter{PatientID: &patientID})
	if err != nil {
		s.logger.Error("ошибка получения записей пациента", zap.Int64("patientId", patientID), zap.Error(err))
		return nil, errors.New("ошибка при получении записей пациента")
	}

	now := time.Now()
	dashboard := &domain.PatientDashboard{
		Upcoming: []domain.Appointment{},
		Past:     []domain.Appointment{},
	}

	for _, appointment := range appointments {
		switch {
		case appointment.Status == domain.AppointmentStatusCancelled:
			dashboard.Past = append(dashboard.Past, appointment)
		case appointment.AppointmentDate.After(now):
			dashboard.Upcoming = append(dashboard.Upcoming, appointment)
		default:
			dashboard.Past = append(dashboard.Past, appointment)
		}
	}

	return dashboard, nil
}

func combineDateSlot(date, slot string) (time.Time, error) {
	combined, err := time.ParseInLocation("2006-01-02 15:04", date+" "+slot, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректная дата записи: %w", err)
	}
	return combined, nil
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
