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

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

func (r *AppointmentRepo) Create(ctx context.Context, patientID int64, appointment domain.Appointment) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	checkQuery := `
		SELECT COUNT(*)
		FROM appointments
		WHERE doctor_id = $1
		AND appointment_date = $2
		AND status != 'cancelled'
	`

	var count int
	err = tx.QueryRow(ctx, checkQuery, appointment.DoctorID, appointment.AppointmentDate).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки доступности слота: %w", err)
	}

	if count > 0 {
		return 0, domain.ErrSlotUnavailable
	}

	query := `
		INSERT INTO appointments (patient_id, doctor_id, appointment_date, consultation_type, status, notes, second_opinion, fee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err = tx.QueryRow(ctx, query,
		patientID,
		appointment.DoctorID,
		appointment.AppointmentDate,
		appointment.ConsultationType,
		domain.AppointmentStatusConfirmed,
		appointment.Notes,
		appointment.SecondOpinion,
		appointment.Fee,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания записи на прием: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

const appointmentColumns = `
	a.id, a.patient_id, a.doctor_id, a.appointment_date, a.consultation_type, a.status,
	a.notes, a.second_opinion, a.fee, a.created_at, a.updated_at,
	u.display_name AS patient_name,
	d.name AS doctor_name, d.specialty AS doctor_specialty, d.photo_url AS doctor_photo_url`

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN users u ON a.patient_id = u.id
		JOIN doctors d ON a.doctor_id = d.id
		WHERE a.id = $1
	`

	appointment, err := r.scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи на прием: %w", err)
	}

	return appointment, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	var sets []string
	var args []interface{}
	argCount := 1

	if dto.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *dto.Status)
		argCount++
	}

	if dto.AppointmentDate != nil {
		sets = append(sets, fmt.Sprintf("appointment_date = $%d", argCount))
		args = append(args, *dto.AppointmentDate)
		argCount++
	}

	if dto.Notes != nil {
		sets = append(sets, fmt.Sprintf("notes = $%d", argCount))
		args = append(args, *dto.Notes)
		argCount++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE appointments SET %s WHERE id = $%d", strings.Join(sets, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления записи на прием: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи на прием: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	where, args := buildAppointmentWhere(filter)

	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN users u ON a.patient_id = u.id
		JOIN doctors d ON a.doctor_id = d.id
	` + where + `
		ORDER BY a.appointment_date
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
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		appointment, err := r.scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	where, args := buildAppointmentWhere(filter)

	query := `SELECT COUNT(*) FROM appointments a` + where

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета записей: %w", err)
	}

	return count, nil
}

func (r *AppointmentRepo) GetBookedSlots(ctx context.Context, doctorID int64, date string) ([]string, error) {
	query := `
		SELECT to_char(appointment_date, 'HH24:MI')
		FROM appointments
		WHERE doctor_id = $1
		AND appointment_date::date = $2
		AND status != 'cancelled'
		ORDER BY appointment_date
	`

	rows, err := r.db.Query(ctx, query, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения занятых слотов: %w", err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("ошибка сканирования слота: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return slots, nil
}

func buildAppointmentWhere(filter domain.AppointmentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("a.patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("a.doctor_id = $%d", argCount))
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.ExcludeStatus != nil {
		conditions = append(conditions, fmt.Sprintf("a.status != $%d", argCount))
		args = append(args, *filter.ExcludeStatus)
		argCount++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_date >= $%d", argCount))
		args = append(args, *filter.StartDate)
		argCount++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_date <= $%d", argCount))
		args = append(args, *filter.EndDate)
		argCount++
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *AppointmentRepo) scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.AppointmentDate,
		&appointment.ConsultationType,
		&appointment.Status,
		&appointment.Notes,
		&appointment.SecondOpinion,
		&appointment.Fee,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
		&appointment.PatientName,
		&appointment.DoctorName,
		&appointment.DoctorSpecialty,
		&appointment.DoctorPhotoURL,
	)
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}
