package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"healthconnect/internal/domain"
	"healthconnect/internal/schedule"
)

type fakeDoctorService struct {
	doctors map[int64]*domain.Doctor
}

func (f *fakeDoctorService) Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeDoctorService) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	doctor, ok := f.doctors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doctor, nil
}

func (f *fakeDoctorService) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeDoctorService) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	return nil
}

func (f *fakeDoctorService) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeDoctorService) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Doctor, error) {
	return nil, nil
}

func (f *fakeDoctorService) UploadProfilePhoto(ctx context.Context, doctorID int64, photo []byte, filename string) error {
	return nil
}

func (f *fakeDoctorService) DeleteProfilePhoto(ctx context.Context, doctorID int64) error {
	return nil
}

func (f *fakeDoctorService) AvailableDays(ctx context.Context, doctorID int64, now time.Time) ([]schedule.AvailableDay, error) {
	return nil, nil
}

func (f *fakeDoctorService) SlotsForDate(ctx context.Context, doctorID int64, date time.Time) ([]string, error) {
	return nil, nil
}

type fakeAppointmentService struct {
	createdID  int64
	createErr  error
	lastDTO    domain.CreateAppointmentDTO
	lastCaller int64
}

func (f *fakeAppointmentService) Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	f.lastCaller = patientID
	f.lastDTO = dto
	if f.createErr != nil {
		return 0, f.createErr
	}
	return f.createdID, nil
}

func (f *fakeAppointmentService) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeAppointmentService) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	return nil
}

func (f *fakeAppointmentService) Cancel(ctx context.Context, id int64) error { return nil }

func (f *fakeAppointmentService) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	return nil, 0, nil
}

func (f *fakeAppointmentService) Dashboard(ctx context.Context, patientID int64) (*domain.PatientDashboard, error) {
	return nil, nil
}

type fakeNotifier struct {
	notifications []domain.Notification
}

func (f *fakeNotifier) Notify(ctx context.Context, userID int64, n domain.Notification) {
	f.notifications = append(f.notifications, n)
}

func testDoctor() *domain.Doctor {
	return &domain.Doctor{
		ID:              1,
		Name:            "Dr. Anna de Vries",
		Specialty:       "Cardiologist",
		ConsultationFee: 80,
		AvailableDays:   []string{"Monday", "Wednesday", "Friday"},
		TimeSlots: domain.WeeklyAvailability{
			"Monday":    {"09:00", "09:30", "10:00"},
			"Wednesday": {"14:00", "14:30"},
			"Friday":    {"11:00"},
		},
	}
}

func TestBookingFlowHappyPath(t *testing.T) {
	flow := NewBookingFlow(testDoctor(), domain.ConsultationVideo)

	assert.Equal(t, domain.BookingStateInitial, flow.State)
	assert.False(t, flow.ReadyToConfirm())

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local)
	monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)

	require.NoError(t, flow.SelectDate(monday, now))
	assert.Equal(t, domain.BookingStateDateChosen, flow.State)
	assert.False(t, flow.ReadyToConfirm())

	require.NoError(t, flow.SelectSlot("09:30"))
	assert.Equal(t, domain.BookingStateSlotChosen, flow.State)
	assert.True(t, flow.ReadyToConfirm())
}

func TestBookingFlowSlotBeforeDate(t *testing.T) {
	flow := NewBookingFlow(testDoctor(), domain.ConsultationVideo)

	err := flow.SelectSlot("09:30")

	assert.ErrorIs(t, err, domain.ErrMissingSelection)
	assert.Equal(t, domain.BookingStateInitial, flow.State)
}

func TestBookingFlowRejectsPastDate(t *testing.T) {
	flow := NewBookingFlow(testDoctor(), domain.ConsultationVideo)

	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.Local)
	pastMonday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)

	err := flow.SelectDate(pastMonday, now)

	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

func TestBookingFlowRejectsDayOutsideSchedule(t *testing.T) {
	flow := NewBookingFlow(testDoctor(), domain.ConsultationVideo)

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local)
	tuesday := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.Local)

	err := flow.SelectDate(tuesday, now)

	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

func TestBookingFlowRejectsUnknownSlot(t *testing.T) {
	flow := NewBookingFlow(testDoctor(), domain.ConsultationVideo)

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local)
	friday := time.Date(2025, time.June, 6, 0, 0, 0, 0, time.Local)

	require.NoError(t, flow.SelectDate(friday, now))

	err := flow.SelectSlot("09:00") // слот понедельника, не пятницы

	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.Nil(t, flow.Selection.TimeSlot)
}

func TestBookingFlowDateChangeResetsSlot(t *testing.T) {
	flow := NewBookingFlow(testDoctor(), domain.ConsultationVideo)

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local)
	monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)
	wednesday := time.Date(2025, time.June, 4, 0, 0, 0, 0, time.Local)

	require.NoError(t, flow.SelectDate(monday, now))
	require.NoError(t, flow.SelectSlot("09:00"))
	require.True(t, flow.ReadyToConfirm())

	require.NoError(t, flow.SelectDate(wednesday, now))

	assert.Nil(t, flow.Selection.TimeSlot)
	assert.Equal(t, domain.BookingStateDateChosen, flow.State)
	assert.False(t, flow.ReadyToConfirm())
}

func TestBookingFlowCancelled(t *testing.T) {
	flow := NewBookingFlow(testDoctor(), domain.ConsultationVideo)
	flow.Cancel()

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local)
	monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)

	assert.Error(t, flow.SelectDate(monday, now))
	assert.Error(t, flow.SelectSlot("09:00"))
}

func TestBookingFlowInvalidConsultationTypeFallsBackToVideo(t *testing.T) {
	flow := NewBookingFlow(testDoctor(), domain.ConsultationType("telepathy"))

	assert.Equal(t, domain.ConsultationVideo, flow.Selection.ConsultationType)
}

func TestBookingConfirm(t *testing.T) {
	doctors := &fakeDoctorService{doctors: map[int64]*domain.Doctor{1: testDoctor()}}
	appointments := &fakeAppointmentService{createdID: 42}
	notifier := &fakeNotifier{}

	svc := NewBookingService(doctors, appointments, notifier, zap.NewNop())

	date := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)
	slot := "09:30"

	confirmation, err := svc.Confirm(context.Background(), 7, 1, domain.BookingSelection{
		Date:             &date,
		TimeSlot:         &slot,
		ConsultationType: domain.ConsultationInPerson,
		Notes:            "follow-up",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), confirmation.AppointmentID)
	assert.Equal(t, "Dr. Anna de Vries", confirmation.DoctorName)
	assert.Equal(t, "June 2, 2025", confirmation.Date)
	assert.Equal(t, "09:30", confirmation.TimeSlot)
	assert.Equal(t, "/dashboard", confirmation.Redirect)

	assert.Equal(t, int64(7), appointments.lastCaller)
	assert.Equal(t, "2025-06-02", appointments.lastDTO.Date)
	assert.Equal(t, domain.ConsultationInPerson, appointments.lastDTO.ConsultationType)
	assert.Equal(t, "follow-up", appointments.lastDTO.Notes)

	require.Len(t, notifier.notifications, 1)
	assert.Equal(t, "Appointment Booked!", notifier.notifications[0].Title)
	assert.Contains(t, notifier.notifications[0].Description, "Dr. Anna de Vries")
	assert.Contains(t, notifier.notifications[0].Description, "June 2, 2025")
}

func TestBookingConfirmMissingSelection(t *testing.T) {
	svc := NewBookingService(&fakeDoctorService{}, &fakeAppointmentService{}, &fakeNotifier{}, zap.NewNop())

	date := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)
	slot := "09:30"

	tests := []struct {
		name      string
		selection domain.BookingSelection
	}{
		{"без даты и слота", domain.BookingSelection{}},
		{"без слота", domain.BookingSelection{Date: &date}},
		{"без даты", domain.BookingSelection{TimeSlot: &slot}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Confirm(context.Background(), 7, 1, tt.selection)

			assert.ErrorIs(t, err, domain.ErrMissingSelection)
		})
	}
}

func TestBookingConfirmErrors(t *testing.T) {
	date := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)
	slot := "09:30"
	selection := domain.BookingSelection{Date: &date, TimeSlot: &slot, ConsultationType: domain.ConsultationVideo}

	t.Run("врач не найден", func(t *testing.T) {
		svc := NewBookingService(&fakeDoctorService{}, &fakeAppointmentService{}, &fakeNotifier{}, zap.NewNop())

		_, err := svc.Confirm(context.Background(), 7, 99, selection)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("слот занят", func(t *testing.T) {
		doctors := &fakeDoctorService{doctors: map[int64]*domain.Doctor{1: testDoctor()}}
		appointments := &fakeAppointmentService{createErr: domain.ErrSlotUnavailable}
		notifier := &fakeNotifier{}

		svc := NewBookingService(doctors, appointments, notifier, zap.NewNop())

		_, err := svc.Confirm(context.Background(), 7, 1, selection)

		assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
		assert.Empty(t, notifier.notifications)
	})

	t.Run("сбой хранилища превращается в ошибку записи", func(t *testing.T) {
		doctors := &fakeDoctorService{doctors: map[int64]*domain.Doctor{1: testDoctor()}}
		appointments := &fakeAppointmentService{createErr: errors.New("connection reset")}

		svc := NewBookingService(doctors, appointments, &fakeNotifier{}, zap.NewNop())

		_, err := svc.Confirm(context.Background(), 7, 1, selection)

		assert.ErrorIs(t, err, domain.ErrBookingFailed)
	})
}
