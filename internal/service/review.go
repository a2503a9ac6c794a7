package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"healthconnect/internal/domain"
	"healthconnect/internal/repository"
	"healthconnect/pkg/cache"
)

type ReviewServiceImpl struct {
	repo       repository.ReviewRepository
	doctorRepo repository.DoctorRepository
	userRepo   repository.UserRepository
	cache      *cache.Cache
	logger     *zap.Logger
}

func NewReviewService(
	repo repository.ReviewRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	cache *cache.Cache,
	logger *zap.Logger,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		userRepo:   userRepo,
		cache:      cache,
		logger:     logger,
	}
}

func (s *ReviewServiceImpl) Create(ctx context.Context, patientID int64, dto domain.CreateReviewDTO) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, patientID)
	if err != nil {
		s.logger.Warn("пользователь не найден при создании отзыва", zap.Int64("patientId", patientID), zap.Error(err))
		return 0, domain.ErrAccountNotFound
	}

	_, err = s.doctorRepo.GetByID(ctx, dto.DoctorID)
	if err != nil {
		s.logger.Warn("врач не найден при создании отзыва", zap.Int64("doctorId", dto.DoctorID), zap.Error(err))
		return 0, domain.ErrNotFound
	}

	if dto.Rating < 1 || dto.Rating > 5 {
		return 0, errors.New("оценка должна быть от 1 до 5")
	}

	id, err := s.repo.Create(ctx, patientID, user.DisplayName, dto)
	if err != nil {
		s.logger.Error("ошибка создания отзыва", zap.Error(err))
		return 0, errors.New("ошибка при создании отзыва")
	}

	s.refreshDoctorRating(ctx, dto.DoctorID)

	return id, nil
}

func (s *ReviewServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("ошибка получения отзыва", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("ошибка при получении отзыва")
	}

	return review, nil
}

func (s *ReviewServiceImpl) Delete(ctx context.Context, id int64) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ErrNotFound
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления отзыва", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении отзыва")
	}

	s.refreshDoctorRating(ctx, review.DoctorID)

	return nil
}

func (s *ReviewServiceImpl) GetByDoctorID(ctx context.Context, doctorID int64, limit, offset int) ([]domain.Review, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	filter := domain.ReviewFilter{
		DoctorID: &doctorID,
		Limit:    limit,
		Offset:   offset,
	}

	reviews, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения отзывов врача", zap.Int64("doctorId", doctorID), zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка при получении отзывов: %w", err)
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка подсчета отзывов", zap.Int64("doctorId", doctorID), zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка при подсчете отзывов: %w", err)
	}

	return reviews, total, nil
}

// refreshDoctorRating пересчитывает агрегат врача после изменения отзывов.
func (s *ReviewServiceImpl) refreshDoctorRating(ctx context.Context, doctorID int64) {
	rating, count, err := s.repo.AggregateByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Warn("ошибка агрегации рейтинга", zap.Int64("doctorId", doctorID), zap.Error(err))
		return
	}

	if err := s.doctorRepo.UpdateRating(ctx, doctorID, rating, count); err != nil {
		s.logger.Warn("ошибка обновления рейтинга врача", zap.Int64("doctorId", doctorID), zap.Error(err))
		return
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, doctorListCacheKey); err != nil {
			s.logger.Warn("ошибка инвалидации кеша врачей", zap.Error(err))
		}
	}
}
