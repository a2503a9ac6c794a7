package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"healthconnect/config"
	"healthconnect/internal/domain"
	"healthconnect/internal/repository"
	"healthconnect/internal/schedule"
	"healthconnect/internal/search"
	"healthconnect/internal/storage"
	"healthconnect/pkg/cache"
)

const doctorListCacheKey = "doctors:all"

type DoctorServiceImpl struct {
	repo            repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	fileStorage     storage.FileStorage
	cache           *cache.Cache
	horizonDays     int
	logger          *zap.Logger
}

func NewDoctorService(
	repo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	fileStorage storage.FileStorage,
	cache *cache.Cache,
	bookingConfig config.BookingConfig,
	logger *zap.Logger,
) *DoctorServiceImpl {
	return &DoctorServiceImpl{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		fileStorage:     fileStorage,
		cache:           cache,
		horizonDays:     bookingConfig.HorizonDays,
		logger:          logger,
	}
}

func (s *DoctorServiceImpl) Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error) {
	if !dto.Gender.IsValid() {
		return 0, errors.New("некорректный пол врача")
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания врача", zap.Error(err))
		return 0, errors.New("ошибка при создании врача")
	}

	s.invalidateListCache(ctx)

	return id, nil
}

func (s *DoctorServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("ошибка получения врача", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("ошибка при получении врача")
	}

	return doctor, nil
}

func (s *DoctorServiceImpl) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	doctor, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("ошибка получения врача по пользователю", zap.Int64("userId", userID), zap.Error(err))
		return nil, errors.New("ошибка при получении врача")
	}

	return doctor, nil
}

func (s *DoctorServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	err := s.repo.Update(ctx, id, dto)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		s.logger.Error("ошибка обновления врача", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении врача")
	}

	s.invalidateListCache(ctx)

	return nil
}

func (s *DoctorServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		s.logger.Error("ошибка удаления врача", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении врача")
	}

	s.invalidateListCache(ctx)

	return nil
}

// Search отдает врачей, прошедших фильтры, в заданном порядке сортировки.
// Полный список кешируется, фильтрация выполняется в памяти.
func (s *DoctorServiceImpl) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Doctor, error) {
	doctors, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	return search.Apply(doctors, criteria), nil
}

func (s *DoctorServiceImpl) UploadProfilePhoto(ctx context.Context, doctorID int64, photo []byte, filename string) error {
	doctor, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return domain.ErrNotFound
	}

	url, err := s.fileStorage.UploadFile(ctx, photo, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки фото", zap.Int64("doctorId", doctorID), zap.Error(err))
		return errors.New("ошибка при загрузке фото")
	}

	if doctor.PhotoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, doctor.PhotoURL); err != nil {
			s.logger.Warn("ошибка удаления старого фото", zap.Error(err))
		}
	}

	if err := s.repo.UpdateProfilePhoto(ctx, doctorID, url); err != nil {
		s.logger.Error("ошибка сохранения URL фото", zap.Int64("doctorId", doctorID), zap.Error(err))
		return errors.New("ошибка при загрузке фото")
	}

	s.invalidateListCache(ctx)

	return nil
}

func (s *DoctorServiceImpl) DeleteProfilePhoto(ctx context.Context, doctorID int64) error {
	doctor, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return domain.ErrNotFound
	}

	if doctor.PhotoURL == "" {
		return nil
	}

	if err := s.fileStorage.DeleteFile(ctx, doctor.PhotoURL); err != nil {
		s.logger.Error("ошибка удаления фото", zap.Int64("doctorId", doctorID), zap.Error(err))
		return errors.New("ошибка при удалении фото")
	}

	if err := s.repo.UpdateProfilePhoto(ctx, doctorID, ""); err != nil {
		s.logger.Error("ошибка очистки URL фото", zap.Int64("doctorId", doctorID), zap.Error(err))
		return errors.New("ошибка при удалении фото")
	}

	s.invalidateListCache(ctx)

	return nil
}

// AvailableDays строит ближайшие приемные дни врача в пределах горизонта записи.
func (s *DoctorServiceImpl) AvailableDays(ctx context.Context, doctorID int64, now time.Time) ([]schedule.AvailableDay, error) {
	doctor, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	return schedule.UpcomingDays(doctor.AvailableDays, now, s.horizonDays), nil
}

// SlotsForDate отдает свободные слоты врача на дату: недельное расписание
// за вычетом уже занятых записей.
func (s *DoctorServiceImpl) SlotsForDate(ctx context.Context, doctorID int64, date time.Time) ([]string, error) {
	doctor, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	slots := schedule.ResolveSlots(doctor.AvailableDays, doctor.TimeSlots, date)
	if len(slots) == 0 {
		return slots, nil
	}

	booked, err := s.appointmentRepo.GetBookedSlots(ctx, doctorID, date.Format("2006-01-02"))
	if err != nil {
		s.logger.Error("ошибка получения занятых слотов", zap.Int64("doctorId", doctorID), zap.Error(err))
		return nil, errors.New("ошибка при получении слотов")
	}

	bookedSet := make(map[string]bool, len(booked))
	for _, slot := range booked {
		bookedSet[slot] = true
	}

	free := make([]string, 0, len(slots))
	for _, slot := range slots {
		if !bookedSet[slot] {
			free = append(free, slot)
		}
	}

	return free, nil
}

func (s *DoctorServiceImpl) listAll(ctx context.Context) ([]domain.Doctor, error) {
	if s.cache != nil {
		var cached []domain.Doctor
		hit, err := s.cache.Get(ctx, doctorListCacheKey, &cached)
		if err != nil {
			s.logger.Warn("ошибка чтения кеша врачей", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	doctors, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка врачей", zap.Error(err))
		return nil, fmt.Errorf("ошибка при получении списка врачей: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, doctorListCacheKey, doctors); err != nil {
			s.logger.Warn("ошибка записи кеша врачей", zap.Error(err))
		}
	}

	return doctors, nil
}

func (s *DoctorServiceImpl) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, doctorListCacheKey); err != nil {
		s.logger.Warn("ошибка инвалидации кеша врачей", zap.Error(err))
	}
}
