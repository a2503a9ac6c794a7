package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"healthconnect/internal/domain"
)

type fakeDoctorRepo struct {
	doctors   map[int64]*domain.Doctor
	listCalls int
}

func (r *fakeDoctorRepo) Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error) {
	return 0, nil
}

func (r *fakeDoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	doctor, ok := r.doctors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doctor, nil
}

func (r *fakeDoctorRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeDoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	return nil
}

func (r *fakeDoctorRepo) Delete(ctx context.Context, id int64) error { return nil }

func (r *fakeDoctorRepo) List(ctx context.Context) ([]domain.Doctor, error) {
	r.listCalls++

	out := make([]domain.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDoctorRepo) UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error {
	return nil
}

func (r *fakeDoctorRepo) SetWeeklyAvailability(ctx context.Context, id int64, days []string, slots domain.WeeklyAvailability) error {
	return nil
}

func (r *fakeDoctorRepo) UpdateRating(ctx context.Context, id int64, rating float64, reviewCount int) error {
	return nil
}

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	nextID       int64
	bookedSlots  map[string][]string
	createErr    error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{},
		nextID:       1,
		bookedSlots:  map[string][]string{},
	}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, patientID int64, appointment domain.Appointment) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}

	id := r.nextID
	r.nextID++

	appointment.ID = id
	appointment.PatientID = patientID
	appointment.Status = domain.AppointmentStatusConfirmed
	r.appointments[id] = &appointment

	return id, nil
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return appointment, nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	appointment, ok := r.appointments[id]
	if !ok {
		return domain.ErrNotFound
	}
	if dto.Status != nil {
		appointment.Status = *dto.Status
	}
	if dto.Notes != nil {
		appointment.Notes = *dto.Notes
	}
	return nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id int64) error {
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	out := make([]domain.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	list, _ := r.List(ctx, filter)
	return len(list), nil
}

func (r *fakeAppointmentRepo) GetBookedSlots(ctx context.Context, doctorID int64, date string) ([]string, error) {
	return r.bookedSlots[date], nil
}

func newAppointmentService(t *testing.T) (*AppointmentServiceImpl, *fakeAppointmentRepo, *fakeUserRepo) {
	t.Helper()

	repo := newFakeAppointmentRepo()
	userRepo := newFakeUserRepo()
	doctorRepo := &fakeDoctorRepo{doctors: map[int64]*domain.Doctor{1: testDoctor()}}

	svc := NewAppointmentService(repo, doctorRepo, userRepo, zap.NewNop())

	return svc, repo, userRepo
}

func createTestPatient(t *testing.T, userRepo *fakeUserRepo) int64 {
	t.Helper()

	id, err := userRepo.Create(context.Background(), domain.CreateUserDTO{
		Email:       "patient@example.com",
		DisplayName: "Demo Patient",
		Role:        domain.UserRolePatient,
	}, "hash")
	require.NoError(t, err)

	return id
}

func TestAppointmentCreate(t *testing.T) {
	svc, repo, userRepo := newAppointmentService(t)
	patientID := createTestPatient(t, userRepo)

	id, err := svc.Create(context.Background(), patientID, domain.CreateAppointmentDTO{
		DoctorID:         1,
		Date:             "2025-06-02", // понедельник
		TimeSlot:         "09:30",
		ConsultationType: domain.ConsultationVideo,
		Notes:            "chest pain",
	})

	require.NoError(t, err)

	appointment := repo.appointments[id]
	require.NotNil(t, appointment)
	assert.Equal(t, patientID, appointment.PatientID)
	assert.Equal(t, domain.AppointmentStatusConfirmed, appointment.Status)
	assert.Equal(t, 80.0, appointment.Fee)
	assert.Equal(t, time.Date(2025, time.June, 2, 9, 30, 0, 0, time.Local), appointment.AppointmentDate)
}

func TestAppointmentCreateErrors(t *testing.T) {
	tests := []struct {
		name     string
		patient  bool
		dto      domain.CreateAppointmentDTO
		expected error
	}{
		{
			name:     "неизвестный пациент",
			patient:  false,
			dto:      domain.CreateAppointmentDTO{DoctorID: 1, Date: "2025-06-02", TimeSlot: "09:30", ConsultationType: domain.ConsultationVideo},
			expected: domain.ErrAccountNotFound,
		},
		{
			name:     "неизвестный врач",
			patient:  true,
			dto:      domain.CreateAppointmentDTO{DoctorID: 99, Date: "2025-06-02", TimeSlot: "09:30", ConsultationType: domain.ConsultationVideo},
			expected: domain.ErrNotFound,
		},
		{
			name:     "слот вне расписания дня",
			patient:  true,
			dto:      domain.CreateAppointmentDTO{DoctorID: 1, Date: "2025-06-02", TimeSlot: "14:00", ConsultationType: domain.ConsultationVideo},
			expected: domain.ErrSlotUnavailable,
		},
		{
			name:     "день вне расписания",
			patient:  true,
			dto:      domain.CreateAppointmentDTO{DoctorID: 1, Date: "2025-06-03", TimeSlot: "09:30", ConsultationType: domain.ConsultationVideo},
			expected: domain.ErrSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, userRepo := newAppointmentService(t)

			patientID := int64(404)
			if tt.patient {
				patientID = createTestPatient(t, userRepo)
			}

			_, err := svc.Create(context.Background(), patientID, tt.dto)

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestAppointmentCreateConflictBecomesSlotUnavailable(t *testing.T) {
	svc, repo, userRepo := newAppointmentService(t)
	patientID := createTestPatient(t, userRepo)
	repo.createErr = domain.ErrSlotUnavailable

	_, err := svc.Create(context.Background(), patientID, domain.CreateAppointmentDTO{
		DoctorID:         1,
		Date:             "2025-06-02",
		TimeSlot:         "09:30",
		ConsultationType: domain.ConsultationVideo,
	})

	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

func TestAppointmentCancel(t *testing.T) {
	svc, repo, userRepo := newAppointmentService(t)
	patientID := createTestPatient(t, userRepo)

	id, err := svc.Create(context.Background(), patientID, domain.CreateAppointmentDTO{
		DoctorID:         1,
		Date:             "2025-06-02",
		TimeSlot:         "09:30",
		ConsultationType: domain.ConsultationVideo,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), id))
	assert.Equal(t, domain.AppointmentStatusCancelled, repo.appointments[id].Status)

	// повторная отмена идемпотентна
	require.NoError(t, svc.Cancel(context.Background(), id))
}

func TestAppointmentCancelCompleted(t *testing.T) {
	svc, repo, _ := newAppointmentService(t)

	repo.appointments[1] = &domain.Appointment{ID: 1, Status: domain.AppointmentStatusCompleted}

	err := svc.Cancel(context.Background(), 1)

	assert.Error(t, err)
	assert.Equal(t, domain.AppointmentStatusCompleted, repo.appointments[1].Status)
}

func TestAppointmentCancelNotFound(t *testing.T) {
	svc, _, _ := newAppointmentService(t)

	err := svc.Cancel(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDashboard(t *testing.T) {
	svc, repo, userRepo := newAppointmentService(t)
	patientID := createTestPatient(t, userRepo)

	now := time.Now()

	repo.appointments[1] = &domain.Appointment{
		ID: 1, PatientID: patientID,
		AppointmentDate: now.AddDate(0, 0, 7),
		Status:          domain.AppointmentStatusConfirmed,
	}
	repo.appointments[2] = &domain.Appointment{
		ID: 2, PatientID: patientID,
		AppointmentDate: now.AddDate(0, 0, -7),
		Status:          domain.AppointmentStatusCompleted,
	}
	repo.appointments[3] = &domain.Appointment{
		ID: 3, PatientID: patientID,
		AppointmentDate: now.AddDate(0, 0, 3),
		Status:          domain.AppointmentStatusCancelled,
	}
	repo.appointments[4] = &domain.Appointment{
		ID: 4, PatientID: 999,
		AppointmentDate: now.AddDate(0, 0, 1),
		Status:          domain.AppointmentStatusConfirmed,
	}

	dashboard, err := svc.Dashboard(context.Background(), patientID)
	require.NoError(t, err)

	require.Len(t, dashboard.Upcoming, 1)
	assert.Equal(t, int64(1), dashboard.Upcoming[0].ID)

	// отмененная запись в будущем относится к прошедшим
	assert.Len(t, dashboard.Past, 2)
}

func TestDashboardUnknownPatient(t *testing.T) {
	svc, _, _ := newAppointmentService(t)

	_, err := svc.Dashboard(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
