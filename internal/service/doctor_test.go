package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"healthconnect/config"
	"healthconnect/internal/domain"
	"healthconnect/pkg/cache"
)

func newDoctorService(t *testing.T, listCache *cache.Cache) (*DoctorServiceImpl, *fakeDoctorRepo, *fakeAppointmentRepo) {
	t.Helper()

	doctorRepo := &fakeDoctorRepo{doctors: map[int64]*domain.Doctor{1: testDoctor()}}
	appointmentRepo := newFakeAppointmentRepo()

	svc := NewDoctorService(doctorRepo, appointmentRepo, nil, listCache,
		config.BookingConfig{HorizonDays: 14}, zap.NewNop())

	return svc, doctorRepo, appointmentRepo
}

func TestSlotsForDate(t *testing.T) {
	svc, _, appointmentRepo := newDoctorService(t, nil)

	appointmentRepo.bookedSlots["2025-06-02"] = []string{"09:30"}

	monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)

	free, err := svc.SlotsForDate(context.Background(), 1, monday)

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, free)
}

func TestSlotsForDateOutsideSchedule(t *testing.T) {
	svc, _, _ := newDoctorService(t, nil)

	tuesday := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.Local)

	free, err := svc.SlotsForDate(context.Background(), 1, tuesday)

	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestSlotsForDateUnknownDoctor(t *testing.T) {
	svc, _, _ := newDoctorService(t, nil)

	_, err := svc.SlotsForDate(context.Background(), 99, time.Now())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAvailableDaysWithinHorizon(t *testing.T) {
	svc, _, _ := newDoctorService(t, nil)

	now := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.Local) // понедельник

	days, err := svc.AvailableDays(context.Background(), 1, now)

	require.NoError(t, err)
	// Пн, Ср, Пт в течение двух недель
	assert.Len(t, days, 6)
	assert.Equal(t, "Monday", days[0].Name)
}

func TestSearchUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	listCache := cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 5*time.Minute)

	svc, doctorRepo, _ := newDoctorService(t, listCache)

	first, err := svc.Search(context.Background(), domain.DefaultSearchCriteria())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, doctorRepo.listCalls)

	// повторный поиск идет из кеша
	second, err := svc.Search(context.Background(), domain.DefaultSearchCriteria())
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, doctorRepo.listCalls)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	listCache := cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 5*time.Minute)

	svc, doctorRepo, _ := newDoctorService(t, listCache)

	_, err := svc.Search(context.Background(), domain.DefaultSearchCriteria())
	require.NoError(t, err)
	require.Equal(t, 1, doctorRepo.listCalls)

	name := "Dr. Renamed"
	require.NoError(t, svc.Update(context.Background(), 1, domain.UpdateDoctorDTO{Name: &name}))

	_, err = svc.Search(context.Background(), domain.DefaultSearchCriteria())
	require.NoError(t, err)
	assert.Equal(t, 2, doctorRepo.listCalls)
}
