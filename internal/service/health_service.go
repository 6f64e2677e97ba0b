package service

import (
	"context"
	"errors"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrDeviceExists = errors.New("device already registered")

// CheckInInput carries the vitals for one daily check-in. All fields
// are optional; omitted ones stay unset on the stored record.
type CheckInInput struct {
	HeartRate   *int
	SystolicBP  *int
	DiastolicBP *int
	Weight      *float64
	SleepHours  *float64
	WaterIntake *float64
	Mood        *int
	Stress      *int
	Steps       *int
	DeviceID    *primitive.ObjectID
}

// HealthService manages daily check-ins and registered devices.
type HealthService interface {
	SubmitCheckIn(ctx context.Context, userID primitive.ObjectID, input CheckInInput) (*domain.DailyCheckIn, error)
	CheckInHistory(ctx context.Context, userID primitive.ObjectID, start, end string) ([]domain.DailyCheckIn, error)
	RegisterDevice(ctx context.Context, userID primitive.ObjectID, name, identifier string) (*domain.Device, error)
	ListDevices(ctx context.Context, userID primitive.ObjectID) ([]domain.Device, error)
}

// healthService implements the HealthService interface.
type healthService struct {
	healthRepo repository.HealthRepository
	now        func() time.Time
}

// NewHealthService creates a new instance of healthService.
func NewHealthService(healthRepo repository.HealthRepository, now func() time.Time) HealthService {
	if now == nil {
		now = time.Now
	}
	return &healthService{healthRepo: healthRepo, now: now}
}

// SubmitCheckIn upserts the check-in for today. Submitting twice on the
// same day overwrites the earlier vitals rather than creating a second
// record.
func (s *healthService) SubmitCheckIn(ctx context.Context, userID primitive.ObjectID, input CheckInInput) (*domain.DailyCheckIn, error) {
	if userID.IsZero() {
		return nil, ErrValidationFailed
	}

	source := domain.SourceManual
	if input.DeviceID != nil {
		source = domain.SourceDevice
	}

	checkIn := &domain.DailyCheckIn{
		UserID:      userID,
		Date:        s.now().UTC().Format(domain.DateLayout),
		Source:      source,
		DeviceID:    input.DeviceID,
		HeartRate:   input.HeartRate,
		SystolicBP:  input.SystolicBP,
		DiastolicBP: input.DiastolicBP,
		Weight:      input.Weight,
		SleepHours:  input.SleepHours,
		WaterIntake: input.WaterIntake,
		Mood:        input.Mood,
		Stress:      input.Stress,
		Steps:       input.Steps,
	}
	return s.healthRepo.UpsertCheckIn(ctx, checkIn)
}

// CheckInHistory lists check-ins over [start, end]. Missing bounds
// default to the last 30 days.
func (s *healthService) CheckInHistory(ctx context.Context, userID primitive.ObjectID, start, end string) ([]domain.DailyCheckIn, error) {
	today := s.now().UTC()
	if end == "" {
		end = today.Format(domain.DateLayout)
	}
	if start == "" {
		start = today.AddDate(0, 0, -defaultConsumptionWindowDays).Format(domain.DateLayout)
	}
	if _, err := domain.ParseDate(start); err != nil {
		return nil, ErrValidationFailed
	}
	if _, err := domain.ParseDate(end); err != nil {
		return nil, ErrValidationFailed
	}

	checkIns, err := s.healthRepo.ListCheckIns(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	if checkIns == nil {
		checkIns = []domain.DailyCheckIn{}
	}
	return checkIns, nil
}

func (s *healthService) RegisterDevice(ctx context.Context, userID primitive.ObjectID, name, identifier string) (*domain.Device, error) {
	if userID.IsZero() || name == "" || identifier == "" {
		return nil, ErrValidationFailed
	}
	device := &domain.Device{
		UserID:     userID,
		Name:       name,
		Identifier: identifier,
	}
	deviceID, err := s.healthRepo.CreateDevice(ctx, device)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDeviceExists
		}
		return nil, err
	}
	device.ID = deviceID
	return device, nil
}

func (s *healthService) ListDevices(ctx context.Context, userID primitive.ObjectID) ([]domain.Device, error) {
	devices, err := s.healthRepo.ListDevices(ctx, userID)
	if err != nil {
		return nil, err
	}
	if devices == nil {
		devices = []domain.Device{}
	}
	return devices, nil
}
