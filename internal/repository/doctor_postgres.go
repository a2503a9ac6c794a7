package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"healthconnect/internal/domain"
)

type DoctorRepo struct {
	db *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) *DoctorRepo {
	return &DoctorRepo{
		db: db,
	}
}

func (r *DoctorRepo) Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	locationJSON, err := marshalNullable(dto.Location)
	if err != nil {
		return 0, fmt.Errorf("ошибка сериализации адреса: %w", err)
	}

	query := `
		INSERT INTO doctors (
			user_id,
			name,
			specialty,
			hospital,
			experience,
			bio,
			languages,
			consultation_fee,
			gender,
			location,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id
	`

	var userID *int64
	if dto.UserID != 0 {
		userID = &dto.UserID
	}

	languages := dto.Languages
	if languages == nil {
		languages = []string{}
	}

	now := time.Now()
	var id int64
	err = tx.QueryRow(ctx, query,
		userID,
		dto.Name,
		dto.Specialty,
		dto.Hospital,
		dto.Experience,
		dto.Bio,
		languages,
		dto.ConsultationFee,
		dto.Gender,
		locationJSON,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания врача: %w", err)
	}

	if len(dto.AvailableDays) > 0 {
		if err = r.saveAvailability(ctx, tx, id, dto.AvailableDays, dto.TimeSlots); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

const doctorColumns = `
	d.id, d.user_id, d.name, d.specialty, d.hospital, d.experience, d.bio,
	d.rating, d.review_count, d.languages, d.available_today, d.consultation_fee,
	d.photo_url, d.is_verified, d.gender, d.location, d.education,
	d.specializations, d.services, d.awards, d.publications,
	d.created_at, d.updated_at`

func (r *DoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors d WHERE d.id = $1`

	doctor, err := r.scanDoctor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения врача: %w", err)
	}

	if err = r.loadAvailability(ctx, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

func (r *DoctorRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors d WHERE d.user_id = $1`

	doctor, err := r.scanDoctor(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения врача: %w", err)
	}

	if err = r.loadAvailability(ctx, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

func (r *DoctorRepo) List(ctx context.Context) ([]domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors d ORDER BY d.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка врачей: %w", err)
	}
	defer rows.Close()

	var doctors []domain.Doctor
	for rows.Next() {
		doctor, err := r.scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования врача: %w", err)
		}
		doctors = append(doctors, *doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	for i := range doctors {
		if err := r.loadAvailability(ctx, &doctors[i]); err != nil {
			return nil, err
		}
	}

	return doctors, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	var sets []string
	var args []interface{}
	argCount := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if dto.Name != nil {
		addSet("name", *dto.Name)
	}
	if dto.Specialty != nil {
		addSet("specialty", *dto.Specialty)
	}
	if dto.Hospital != nil {
		addSet("hospital", *dto.Hospital)
	}
	if dto.Experience != nil {
		addSet("experience", *dto.Experience)
	}
	if dto.Bio != nil {
		addSet("bio", *dto.Bio)
	}
	if dto.Languages != nil {
		addSet("languages", *dto.Languages)
	}
	if dto.AvailableToday != nil {
		addSet("available_today", *dto.AvailableToday)
	}
	if dto.ConsultationFee != nil {
		addSet("consultation_fee", *dto.ConsultationFee)
	}
	if dto.Verified != nil {
		addSet("is_verified", *dto.Verified)
	}
	if dto.Location != nil {
		locationJSON, err := json.Marshal(dto.Location)
		if err != nil {
			return fmt.Errorf("ошибка сериализации адреса: %w", err)
		}
		addSet("location", locationJSON)
	}
	if dto.Specializations != nil {
		addSet("specializations", *dto.Specializations)
	}
	if dto.Services != nil {
		addSet("services", *dto.Services)
	}

	if len(sets) > 0 {
		addSet("updated_at", time.Now())

		args = append(args, id)
		query := fmt.Sprintf("UPDATE doctors SET %s WHERE id = $%d", strings.Join(sets, ", "), argCount)

		tag, err := r.db.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("ошибка обновления врача: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
	}

	if dto.AvailableDays != nil {
		slots := domain.WeeklyAvailability{}
		if dto.TimeSlots != nil {
			slots = *dto.TimeSlots
		}
		if err := r.SetWeeklyAvailability(ctx, id, *dto.AvailableDays, slots); err != nil {
			return err
		}
	}

	return nil
}

func (r *DoctorRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления врача: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *DoctorRepo) UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error {
	query := `UPDATE doctors SET photo_url = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления фото врача: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *DoctorRepo) SetWeeklyAvailability(ctx context.Context, id int64, days []string, slots domain.WeeklyAvailability) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM doctor_availability WHERE doctor_id = $1`, id); err != nil {
		return fmt.Errorf("ошибка очистки расписания врача: %w", err)
	}

	if err = r.saveAvailability(ctx, tx, id, days, slots); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *DoctorRepo) UpdateRating(ctx context.Context, id int64, rating float64, reviewCount int) error {
	query := `UPDATE doctors SET rating = $1, review_count = $2, updated_at = $3 WHERE id = $4`

	tag, err := r.db.Exec(ctx, query, rating, reviewCount, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления рейтинга врача: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *DoctorRepo) saveAvailability(ctx context.Context, tx pgx.Tx, id int64, days []string, slots domain.WeeklyAvailability) error {
	query := `
		INSERT INTO doctor_availability (doctor_id, weekday, position, slots)
		VALUES ($1, $2, $3, $4)
	`

	for i, day := range days {
		daySlots := slots[day]
		if daySlots == nil {
			daySlots = []string{}
		}
		if _, err := tx.Exec(ctx, query, id, day, i, daySlots); err != nil {
			return fmt.Errorf("ошибка сохранения расписания врача: %w", err)
		}
	}

	return nil
}

func (r *DoctorRepo) loadAvailability(ctx context.Context, doctor *domain.Doctor) error {
	query := `
		SELECT weekday, slots
		FROM doctor_availability
		WHERE doctor_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, doctor.ID)
	if err != nil {
		return fmt.Errorf("ошибка получения расписания врача: %w", err)
	}
	defer rows.Close()

	doctor.AvailableDays = nil
	doctor.TimeSlots = domain.WeeklyAvailability{}

	for rows.Next() {
		var weekday string
		var slots []string
		if err := rows.Scan(&weekday, &slots); err != nil {
			return fmt.Errorf("ошибка сканирования расписания: %w", err)
		}
		doctor.AvailableDays = append(doctor.AvailableDays, weekday)
		doctor.TimeSlots[weekday] = slots
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return nil
}

func (r *DoctorRepo) scanDoctor(row pgx.Row) (*domain.Doctor, error) {
	var doctor domain.Doctor
	var userID *int64
	var locationJSON, educationJSON, awardsJSON, publicationsJSON []byte

	err := row.Scan(
		&doctor.ID,
		&userID,
		&doctor.Name,
		&doctor.Specialty,
		&doctor.Hospital,
		&doctor.Experience,
		&doctor.Bio,
		&doctor.Rating,
		&doctor.ReviewCount,
		&doctor.Languages,
		&doctor.AvailableToday,
		&doctor.ConsultationFee,
		&doctor.PhotoURL,
		&doctor.Verified,
		&doctor.Gender,
		&locationJSON,
		&educationJSON,
		&doctor.Specializations,
		&doctor.Services,
		&awardsJSON,
		&publicationsJSON,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		doctor.UserID = *userID
	}

	if len(locationJSON) > 0 {
		if err := json.Unmarshal(locationJSON, &doctor.Location); err != nil {
			return nil, fmt.Errorf("ошибка разбора адреса: %w", err)
		}
	}
	if len(educationJSON) > 0 {
		if err := json.Unmarshal(educationJSON, &doctor.Education); err != nil {
			return nil, fmt.Errorf("ошибка разбора образования: %w", err)
		}
	}
	if len(awardsJSON) > 0 {
		if err := json.Unmarshal(awardsJSON, &doctor.Awards); err != nil {
			return nil, fmt.Errorf("ошибка разбора наград: %w", err)
		}
	}
	if len(publicationsJSON) > 0 {
		if err := json.Unmarshal(publicationsJSON, &doctor.Publications); err != nil {
			return nil, fmt.Errorf("ошибка разбора публикаций: %w", err)
		}
	}

	return &doctor, nil
}

func marshalNullable(loc *domain.Location) ([]byte, error) {
	if loc == nil {
		return nil, nil
	}
	return json.Marshal(loc)
}
