package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"healthconnect/config"
	"healthconnect/internal/domain"
	"healthconnect/internal/repository"
	"healthconnect/internal/schedule"
	"healthconnect/internal/storage"
	"healthconnect/pkg/cache"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Cache       *cache.Cache
	Notifier    Notifier
}

type Services struct {
	User        UserService
	Auth        AuthService
	Doctor      DoctorService
	Appointment AppointmentService
	Booking     BookingService
	Review      ReviewService
}

func NewServices(deps Deps) *Services {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(deps.Logger)
	}

	doctor := NewDoctorService(deps.Repos.Doctor, deps.Repos.Appointment, deps.FileStorage, deps.Cache, deps.Config.Booking, deps.Logger)
	appointment := NewAppointmentService(deps.Repos.Appointment, deps.Repos.Doctor, deps.Repos.User, deps.Logger)

	return &Services{
		User:        NewUserService(deps.Repos.User, deps.Logger),
		Auth:        NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Config.Booking, deps.Logger),
		Doctor:      doctor,
		Appointment: appointment,
		Booking:     NewBookingService(doctor, appointment, notifier, deps.Logger),
		Review:      NewReviewService(deps.Repos.Review, deps.Repos.Doctor, deps.Repos.User, deps.Cache, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type DoctorService interface {
	Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error
	Delete(ctx context.Context, id int64) error

	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Doctor, error)

	UploadProfilePhoto(ctx context.Context, doctorID int64, photo []byte, filename string) error
	DeleteProfilePhoto(ctx context.Context, doctorID int64) error

	AvailableDays(ctx context.Context, doctorID int64, now time.Time) ([]schedule.AvailableDay, error)
	SlotsForDate(ctx context.Context, doctorID int64, date time.Time) ([]string, error)
}

type AppointmentService interface {
	Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error
	Cancel(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
	Dashboard(ctx context.Context, patientID int64) (*domain.PatientDashboard, error)
}

type BookingService interface {
	StartFlow(ctx context.Context, doctorID int64, consultationType domain.ConsultationType) (*BookingFlow, error)
	Confirm(ctx context.Context, patientID, doctorID int64, selection domain.BookingSelection) (*domain.BookingConfirmation, error)
}

type ReviewService interface {
	Create(ctx context.Context, patientID int64, dto domain.CreateReviewDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
	GetByDoctorID(ctx context.Context, doctorID int64, limit, offset int) ([]domain.Review, int, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)

	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}
