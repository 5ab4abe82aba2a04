package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SalonBookingService/internal/integrations/companyservice"
	"github.com/m04kA/SalonBookingService/internal/service/schedule/models"
)

type fakeScheduleRepo struct {
	replaced        []*domain.TemplateInterval
	intervals       []*domain.TemplateInterval
	upcoming        []*domain.ScheduleException
	listFrom        time.Time
	addExceptionErr error
	removeErr       error
}

func (f *fakeScheduleRepo) GetTemplateDay(_ context.Context, _, _ int64, weekday time.Weekday) ([]*domain.TemplateInterval, error) {
	result := make([]*domain.TemplateInterval, 0)
	for _, interval := range f.intervals {
		if interval.Weekday == weekday {
			result = append(result, interval)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) ReplaceTemplateDay(_ context.Context, _, _ int64, _ time.Weekday, intervals []*domain.TemplateInterval) error {
	f.replaced = intervals
	return nil
}

func (f *fakeScheduleRepo) GetExceptions(_ context.Context, _, _ int64, _ time.Time) ([]*domain.ScheduleException, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) ListExceptionsFrom(_ context.Context, _, _ int64, from time.Time) ([]*domain.ScheduleException, error) {
	f.listFrom = from
	return f.upcoming, nil
}

func (f *fakeScheduleRepo) AddException(_ context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error) {
	if f.addExceptionErr != nil {
		return nil, f.addExceptionErr
	}
	created := *exc
	created.ID = 1
	return &created, nil
}

func (f *fakeScheduleRepo) RemoveException(_ context.Context, _, _ int64, _ time.Time, _ string, _ domain.ExceptionKind) error {
	return f.removeErr
}

type fakeCompanyClient struct {
	companyErr  error
	employeeErr error
	granularity int
}

func (f *fakeCompanyClient) GetCompany(_ context.Context, id int64) (*companyservice.Company, error) {
	if f.companyErr != nil {
		return nil, f.companyErr
	}
	return &companyservice.Company{ID: id, SlotGranularityMinutes: f.granularity}, nil
}

func (f *fakeCompanyClient) GetEmployee(_ context.Context, companyID, id int64) (*companyservice.Employee, error) {
	if f.employeeErr != nil {
		return nil, f.employeeErr
	}
	return &companyservice.Employee{ID: id, CompanyID: companyID, IsActive: true}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeScheduleRepo, client *fakeCompanyClient) *Service {
	svc := NewService(repo, client, fakeTxManager{}, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func upsertRequest(intervals ...models.IntervalInput) *models.UpsertTemplateDayRequest {
	return &models.UpsertTemplateDayRequest{
		CompanyID:  1,
		EmployeeID: 2,
		Weekday:    time.Monday,
		Intervals:  intervals,
	}
}

func TestUpsertTemplateDay_ReplacesDay(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo, &fakeCompanyClient{granularity: 30})

	err := svc.UpsertTemplateDay(context.Background(), upsertRequest(
		models.IntervalInput{OpenTime: "09:00", CloseTime: "13:00"},
		models.IntervalInput{OpenTime: "14:00", CloseTime: "18:00"},
	))
	if err != nil {
		t.Fatalf("UpsertTemplateDay: %v", err)
	}
	if len(repo.replaced) != 2 {
		t.Fatalf("expected 2 intervals stored, got %d", len(repo.replaced))
	}
	if repo.replaced[0].Weekday != time.Monday {
		t.Errorf("stored weekday = %d, want Monday", repo.replaced[0].Weekday)
	}
}

func TestUpsertTemplateDay_EmptyDayAllowed(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo, &fakeCompanyClient{granularity: 30})

	// Пустой список интервалов - выходной день
	if err := svc.UpsertTemplateDay(context.Background(), upsertRequest()); err != nil {
		t.Fatalf("UpsertTemplateDay with no intervals: %v", err)
	}
	if len(repo.replaced) != 0 {
		t.Fatalf("expected empty day stored, got %d intervals", len(repo.replaced))
	}
}

func TestUpsertTemplateDay_RejectsOverlap(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCompanyClient{granularity: 30})

	err := svc.UpsertTemplateDay(context.Background(), upsertRequest(
		models.IntervalInput{OpenTime: "09:00", CloseTime: "12:00"},
		models.IntervalInput{OpenTime: "11:30", CloseTime: "14:00"},
	))
	if !errors.Is(err, ErrOverlappingIntervals) {
		t.Fatalf("expected ErrOverlappingIntervals, got %v", err)
	}
}

func TestUpsertTemplateDay_TouchingIntervalsAllowed(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCompanyClient{granularity: 30})

	// Граница встык - не пересечение
	err := svc.UpsertTemplateDay(context.Background(), upsertRequest(
		models.IntervalInput{OpenTime: "09:00", CloseTime: "12:00"},
		models.IntervalInput{OpenTime: "12:00", CloseTime: "14:00"},
	))
	if err != nil {
		t.Fatalf("touching intervals should be valid: %v", err)
	}
}

func TestUpsertTemplateDay_RejectsUnalignedInterval(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCompanyClient{granularity: 30})

	// 100 минут не кратны шагу 30
	err := svc.UpsertTemplateDay(context.Background(), upsertRequest(
		models.IntervalInput{OpenTime: "09:00", CloseTime: "10:40"},
	))
	if !errors.Is(err, ErrIntervalNotAligned) {
		t.Fatalf("expected ErrIntervalNotAligned, got %v", err)
	}
}

func TestUpsertTemplateDay_RejectsInvertedInterval(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCompanyClient{granularity: 30})

	err := svc.UpsertTemplateDay(context.Background(), upsertRequest(
		models.IntervalInput{OpenTime: "14:00", CloseTime: "12:00"},
	))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpsertTemplateDay_CompanyNotFound(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCompanyClient{companyErr: companyservice.ErrCompanyNotFound})

	err := svc.UpsertTemplateDay(context.Background(), upsertRequest(
		models.IntervalInput{OpenTime: "09:00", CloseTime: "12:00"},
	))
	if !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestGetSchedule_IncludesUpcomingExceptions(t *testing.T) {
	repo := &fakeScheduleRepo{
		intervals: []*domain.TemplateInterval{
			{CompanyID: 1, EmployeeID: 2, Weekday: time.Monday, OpenTime: "09:00", CloseTime: "13:00"},
		},
		upcoming: []*domain.ScheduleException{
			{ID: 7, CompanyID: 1, EmployeeID: 2, Date: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), SlotTime: "19:00", Kind: domain.ExceptionExtra},
			{ID: 8, CompanyID: 1, EmployeeID: 2, Date: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), SlotTime: "10:00", Kind: domain.ExceptionBlock},
		},
	}
	svc := newTestService(repo, &fakeCompanyClient{granularity: 30})

	resp, err := svc.GetSchedule(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if len(resp.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(resp.Days))
	}
	if len(resp.Exceptions) != 2 {
		t.Fatalf("expected 2 exceptions in response, got %d", len(resp.Exceptions))
	}
	if resp.Exceptions[0].Kind != domain.ExceptionExtra || resp.Exceptions[0].SlotTime != "19:00" {
		t.Errorf("first exception = %s %s, want extra 19:00", resp.Exceptions[0].Kind, resp.Exceptions[0].SlotTime)
	}

	// Время теста - 10 марта 12:00 UTC, по Москве тот же день:
	// прошедшие исключения отсекаются с сегодняшней даты
	wantFrom := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !repo.listFrom.Equal(wantFrom) {
		t.Errorf("exceptions listed from %s, want %s",
			repo.listFrom.Format(domain.DateFormat), wantFrom.Format(domain.DateFormat))
	}
}

func TestAddException_DuplicateMapped(t *testing.T) {
	repo := &fakeScheduleRepo{addExceptionErr: scheduleRepo.ErrDuplicateException}
	svc := newTestService(repo, &fakeCompanyClient{granularity: 30})

	_, err := svc.AddException(context.Background(), &models.AddExceptionRequest{
		CompanyID:  1,
		EmployeeID: 2,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		SlotTime:   "19:00",
		Kind:       domain.ExceptionExtra,
	})
	if !errors.Is(err, ErrDuplicateException) {
		t.Fatalf("expected ErrDuplicateException, got %v", err)
	}
}

func TestAddException_InvalidKind(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCompanyClient{granularity: 30})

	_, err := svc.AddException(context.Background(), &models.AddExceptionRequest{
		CompanyID:  1,
		EmployeeID: 2,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		SlotTime:   "19:00",
		Kind:       "holiday",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRemoveException_NotFoundMapped(t *testing.T) {
	repo := &fakeScheduleRepo{removeErr: scheduleRepo.ErrExceptionNotFound}
	svc := newTestService(repo, &fakeCompanyClient{granularity: 30})

	err := svc.RemoveException(context.Background(), &models.RemoveExceptionRequest{
		CompanyID:  1,
		EmployeeID: 2,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		SlotTime:   "19:00",
		Kind:       domain.ExceptionBlock,
	})
	if !errors.Is(err, ErrExceptionNotFound) {
		t.Fatalf("expected ErrExceptionNotFound, got %v", err)
	}
}
