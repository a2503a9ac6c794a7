package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"healthconnect/internal/domain"
)

type ReviewRepo struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{
		db: db,
	}
}

func (r *ReviewRepo) Create(ctx context.Context, patientID int64, patientName string, dto domain.CreateReviewDTO) (int64, error) {
	query := `
		INSERT INTO reviews (doctor_id, patient_id, patient_name, rating, comment, review_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6, $6)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.DoctorID,
		patientID,
		patientName,
		dto.Rating,
		dto.Comment,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания отзыва: %w", err)
	}

	return id, nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `
		SELECT id, doctor_id, patient_id, patient_name, rating, comment, review_date, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	review, err := r.scanReview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения отзыва: %w", err)
	}

	return review, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления отзыва: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ReviewRepo) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	where, args := buildReviewWhere(filter)

	query := `
		SELECT id, doctor_id, patient_id, patient_name, rating, comment, review_date, created_at, updated_at
		FROM reviews
	` + where + `
		ORDER BY review_date DESC
	`

	argCount := len(args) + 1
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
		argCount++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка отзывов: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		review, err := r.scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования отзыва: %w", err)
		}
		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepo) CountByFilter(ctx context.Context, filter domain.ReviewFilter) (int, error) {
	where, args := buildReviewWhere(filter)

	query := `SELECT COUNT(*) FROM reviews` + where

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета отзывов: %w", err)
	}

	return count, nil
}

func (r *ReviewRepo) AggregateByDoctor(ctx context.Context, doctorID int64) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE doctor_id = $1
	`

	var rating float64
	var count int
	err := r.db.QueryRow(ctx, query, doctorID).Scan(&rating, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка агрегации отзывов: %w", err)
	}

	return rating, count, nil
}

func buildReviewWhere(filter domain.ReviewFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("doctor_id = $%d", argCount))
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.MinRating != nil {
		conditions = append(conditions, fmt.Sprintf("rating >= $%d", argCount))
		args = append(args, *filter.MinRating)
		argCount++
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *ReviewRepo) scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.DoctorID,
		&review.PatientID,
		&review.PatientName,
		&review.Rating,
		&review.Comment,
		&review.Date,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}
