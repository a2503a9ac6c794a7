package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"healthconnect/internal/domain"
)

type Repositories struct {
	User        UserRepository
	Doctor      DoctorRepository
	Appointment AppointmentRepository
	Review      ReviewRepository
	Auth        AuthRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Auth:        NewAuthRepository(db),
		Doctor:      NewDoctorRepository(db),
		Appointment: NewAppointmentRepository(db),
		Review:      NewReviewRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO, passwordHash string) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Doctor, error)

	UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error
	SetWeeklyAvailability(ctx context.Context, id int64, days []string, slots domain.WeeklyAvailability) error
	UpdateRating(ctx context.Context, id int64, rating float64, reviewCount int) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, patientID int64, appointment domain.Appointment) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	GetBookedSlots(ctx context.Context, doctorID int64, date string) ([]string, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, patientID int64, patientName string, review domain.CreateReviewDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
	CountByFilter(ctx context.Context, filter domain.ReviewFilter) (int, error)
	AggregateByDoctor(ctx context.Context, doctorID int64) (float64, int, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error

	CreateResetToken(ctx context.Context, token domain.PasswordResetToken) error
	GetResetToken(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	MarkResetTokenUsed(ctx context.Context, token string) error
}
