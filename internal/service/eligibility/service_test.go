package eligibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	subscriptionRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/subscription"
)

type fakeSubscriptionRepo struct {
	sub         *domain.Subscription
	deactivated []int64
}

func (f *fakeSubscriptionRepo) GetActiveByClient(_ context.Context, _ int64) (*domain.Subscription, error) {
	if f.sub == nil {
		return nil, subscriptionRepo.ErrSubscriptionNotFound
	}
	return f.sub, nil
}

func (f *fakeSubscriptionRepo) Deactivate(_ context.Context, id int64) (bool, error) {
	f.deactivated = append(f.deactivated, id)
	return true, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var moscow = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic(err)
	}
	return loc
}()

// Понедельник 2 марта 2026, 10:00 по Москве
var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, moscow)

func newTestService(repo *fakeSubscriptionRepo) *Service {
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, moscow)
}

func TestEvaluate_GuestWithinHorizon(t *testing.T) {
	svc := newTestService(&fakeSubscriptionRepo{})

	elig, err := svc.Evaluate(context.Background(), domain.Guest(), date(2026, 3, 17), moscow)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if elig.MaxHorizonDays != domain.BaseHorizonDays {
		t.Errorf("MaxHorizonDays = %d, want %d", elig.MaxHorizonDays, domain.BaseHorizonDays)
	}
	if elig.SaturdayAllowed {
		t.Error("guest should not have saturday access")
	}
	if !elig.Cutoff.Equal(date(2026, 3, 17)) {
		t.Errorf("Cutoff = %s, want 2026-03-17", elig.Cutoff.Format(domain.DateFormat))
	}
}

func TestEvaluate_GuestBeyondHorizon(t *testing.T) {
	svc := newTestService(&fakeSubscriptionRepo{})

	_, err := svc.Evaluate(context.Background(), domain.Guest(), date(2026, 3, 18), moscow)

	var horizonErr *HorizonError
	if !errors.As(err, &horizonErr) {
		t.Fatalf("expected *HorizonError, got %v", err)
	}
	if !horizonErr.Cutoff.Equal(date(2026, 3, 17)) {
		t.Errorf("Cutoff = %s, want 2026-03-17", horizonErr.Cutoff.Format(domain.DateFormat))
	}
}

func TestEvaluate_StaffHorizonAndSaturday(t *testing.T) {
	svc := newTestService(&fakeSubscriptionRepo{})
	staff := domain.Actor{ID: 7, Role: domain.RoleEmployee}

	// Суббота внутри расширенного горизонта
	elig, err := svc.Evaluate(context.Background(), staff, date(2026, 3, 7), moscow)
	if err != nil {
		t.Fatalf("Evaluate saturday for staff: %v", err)
	}
	if elig.MaxHorizonDays != domain.StaffHorizonDays {
		t.Errorf("MaxHorizonDays = %d, want %d", elig.MaxHorizonDays, domain.StaffHorizonDays)
	}
	if !elig.SaturdayAllowed {
		t.Error("staff should have saturday access")
	}

	// 31 день от 2 марта - это 2 апреля; 3 апреля уже за горизонтом
	if _, err := svc.Evaluate(context.Background(), staff, date(2026, 4, 2), moscow); err != nil {
		t.Errorf("2026-04-02 should be within staff horizon: %v", err)
	}
	var horizonErr *HorizonError
	if _, err := svc.Evaluate(context.Background(), staff, date(2026, 4, 3), moscow); !errors.As(err, &horizonErr) {
		t.Errorf("2026-04-03 should be beyond staff horizon, got %v", err)
	}
}

func TestEvaluate_ClientSaturdayRestricted(t *testing.T) {
	svc := newTestService(&fakeSubscriptionRepo{})
	client := domain.Actor{ID: 42, Role: domain.RoleClient}

	_, err := svc.Evaluate(context.Background(), client, date(2026, 3, 7), moscow)
	if !errors.Is(err, ErrSaturdayRestricted) {
		t.Fatalf("expected ErrSaturdayRestricted, got %v", err)
	}
}

func TestEvaluate_SubscriptionExtendsHorizonAndSaturday(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		sub: &domain.Subscription{
			ID:       1,
			ClientID: 42,
			Active:   true,
			StartsAt: date(2026, 2, 1),
			EndsAt:   date(2026, 3, 25),
		},
	}
	svc := newTestService(repo)
	client := domain.Actor{ID: 42, Role: domain.RoleClient}

	// Суббота доступна при действующем абонементе
	elig, err := svc.Evaluate(context.Background(), client, date(2026, 3, 7), moscow)
	if err != nil {
		t.Fatalf("Evaluate saturday with subscription: %v", err)
	}
	if !elig.HasActiveSubscription {
		t.Error("HasActiveSubscription should be true")
	}

	// Горизонт продлён до конца абонемента
	elig, err = svc.Evaluate(context.Background(), client, date(2026, 3, 25), moscow)
	if err != nil {
		t.Fatalf("Evaluate extended horizon: %v", err)
	}
	if !elig.Cutoff.Equal(date(2026, 3, 25)) {
		t.Errorf("Cutoff = %s, want 2026-03-25", elig.Cutoff.Format(domain.DateFormat))
	}

	var horizonErr *HorizonError
	if _, err := svc.Evaluate(context.Background(), client, date(2026, 3, 26), moscow); !errors.As(err, &horizonErr) {
		t.Errorf("2026-03-26 should be beyond extended horizon, got %v", err)
	}
}

func TestEvaluate_ExpiredSubscriptionLazilyDeactivated(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		sub: &domain.Subscription{
			ID:       9,
			ClientID: 42,
			Active:   true,
			StartsAt: date(2026, 1, 1),
			EndsAt:   date(2026, 2, 1),
		},
	}
	svc := newTestService(repo)
	client := domain.Actor{ID: 42, Role: domain.RoleClient}

	_, err := svc.Evaluate(context.Background(), client, date(2026, 3, 7), moscow)
	if !errors.Is(err, ErrSaturdayRestricted) {
		t.Fatalf("expired subscription should not grant saturday, got %v", err)
	}
	if len(repo.deactivated) != 1 || repo.deactivated[0] != 9 {
		t.Errorf("expected lazy deactivation of subscription 9, got %v", repo.deactivated)
	}
}

func TestEvaluate_SubscriptionIgnoredForStaff(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		sub: &domain.Subscription{
			ID:       1,
			ClientID: 7,
			Active:   true,
			StartsAt: date(2026, 2, 1),
			EndsAt:   date(2026, 6, 1),
		},
	}
	svc := newTestService(repo)
	staff := domain.Actor{ID: 7, Role: domain.RoleManager}

	elig, err := svc.Evaluate(context.Background(), staff, date(2026, 3, 10), moscow)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if elig.HasActiveSubscription {
		t.Error("staff eligibility should not consult subscriptions")
	}
	if !elig.Cutoff.Equal(date(2026, 4, 2)) {
		t.Errorf("Cutoff = %s, want 2026-04-02", elig.Cutoff.Format(domain.DateFormat))
	}
}
