package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	subscriptionstore "github.com/m04kA/SalonBookingService/internal/infra/storage/subscription"
	"github.com/m04kA/SalonBookingService/internal/integrations/holidayfeed"
	"github.com/m04kA/SalonBookingService/internal/integrations/loyaltyservice"
	"github.com/m04kA/SalonBookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	due         []*domain.Booking
	transitions []int64
	moveBlocked map[int64]bool
	claims      map[int64]bool
}

func (f *fakeBookingRepo) ListDueForCompletion(_ context.Context, _ time.Time, _ uint64) ([]*domain.Booking, error) {
	return f.due, nil
}

func (f *fakeBookingRepo) TransitionStatus(_ context.Context, id int64, _, _ domain.BookingStatus) (bool, error) {
	if f.moveBlocked[id] {
		return false, nil
	}
	f.transitions = append(f.transitions, id)
	return true, nil
}

func (f *fakeBookingRepo) ClaimPointsAward(_ context.Context, id int64) (bool, error) {
	if f.claims == nil {
		f.claims = map[int64]bool{}
	}
	if f.claims[id] {
		return false, nil
	}
	f.claims[id] = true
	return true, nil
}

type fakeSubscriptionRepo struct {
	sub         *domain.Subscription
	expired     []*domain.Subscription
	incremented []int64
	deactivated []int64
}

func (f *fakeSubscriptionRepo) GetActiveByClient(_ context.Context, _ int64) (*domain.Subscription, error) {
	if f.sub == nil {
		return nil, subscriptionstore.ErrSubscriptionNotFound
	}
	return f.sub, nil
}

func (f *fakeSubscriptionRepo) IncrementUsedVisits(_ context.Context, id int64) (*domain.Subscription, error) {
	f.incremented = append(f.incremented, id)
	f.sub.UsedVisits++
	copied := *f.sub
	return &copied, nil
}

func (f *fakeSubscriptionRepo) ListExpired(_ context.Context, _ time.Time) ([]*domain.Subscription, error) {
	return f.expired, nil
}

func (f *fakeSubscriptionRepo) Deactivate(_ context.Context, id int64) (bool, error) {
	f.deactivated = append(f.deactivated, id)
	return true, nil
}

type fakeHolidayRepo struct {
	upserts []*domain.Holiday
}

func (f *fakeHolidayRepo) Upsert(_ context.Context, holiday *domain.Holiday) error {
	f.upserts = append(f.upserts, holiday)
	return nil
}

type fakeLoyaltyClient struct {
	requests []*loyaltyservice.AddPointsRequest
	err      error
}

func (f *fakeLoyaltyClient) AddPoints(_ context.Context, req *loyaltyservice.AddPointsRequest) (*loyaltyservice.AddPointsResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &loyaltyservice.AddPointsResponse{ClientID: req.ClientID, Points: int64(req.Amount)}, nil
}

type fakeHolidayFeed struct {
	feeds map[int]*holidayfeed.FeedResponse
	years []int
}

func (f *fakeHolidayFeed) FetchYear(_ context.Context, year int) (*holidayfeed.FeedResponse, error) {
	f.years = append(f.years, year)
	feed, ok := f.feeds[year]
	if !ok {
		return &holidayfeed.FeedResponse{Year: year}, nil
	}
	return feed, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	bookings *fakeBookingRepo
	subs     *fakeSubscriptionRepo
	holidays *fakeHolidayRepo
	loyalty  *fakeLoyaltyClient
	feed     *fakeHolidayFeed
	sweeper  *Sweeper
}

func newTestEnv() *testEnv {
	env := &testEnv{
		bookings: &fakeBookingRepo{moveBlocked: map[int64]bool{}},
		subs:     &fakeSubscriptionRepo{},
		holidays: &fakeHolidayRepo{},
		loyalty:  &fakeLoyaltyClient{},
		feed:     &fakeHolidayFeed{feeds: map[int]*holidayfeed.FeedResponse{}},
	}
	cfg := Config{
		Interval:            time.Minute,
		HolidaySyncInterval: 24 * time.Hour,
		CompletionBatchSize: 100,
	}
	env.sweeper = New(cfg, env.bookings, env.subs, env.holidays, env.loyalty, env.feed, nil, nopLogger{})
	env.sweeper.timeProvider = fixedTime{now: testNow}
	return env
}

func dueBooking(id int64, clientID *int64) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		CompanyID:    1,
		EmployeeID:   2,
		ServiceID:    3,
		ClientID:     clientID,
		StartAt:      testNow.Add(-2 * time.Hour),
		Status:       domain.StatusConfirmed,
		ServicePrice: 1500.0,
	}
}

func TestSweep_CompletesDueBookings(t *testing.T) {
	env := newTestEnv()
	env.bookings.due = []*domain.Booking{
		dueBooking(10, ptr.Ptr(int64(42))),
		dueBooking(11, nil),
	}

	env.sweeper.sweep(context.Background())

	if len(env.bookings.transitions) != 2 {
		t.Fatalf("transitions = %v, want both bookings completed", env.bookings.transitions)
	}

	// Баллы начисляются только записям с клиентом; гостевая проходит мимо
	if len(env.loyalty.requests) != 1 {
		t.Fatalf("loyalty requests = %d, want 1", len(env.loyalty.requests))
	}
	req := env.loyalty.requests[0]
	if req.BookingID != 10 || req.ClientID != 42 || req.Amount != 1500.0 {
		t.Errorf("unexpected loyalty request: %+v", req)
	}
}

func TestSweep_PointsAwardedExactlyOnce(t *testing.T) {
	env := newTestEnv()
	booking := dueBooking(10, ptr.Ptr(int64(42)))
	env.bookings.due = []*domain.Booking{booking}

	env.sweeper.sweep(context.Background())

	// Запись снова в выборке (например, переход не зафиксировался бы в БД),
	// но флаг начисления уже взведён
	booking.Status = domain.StatusCompleted
	env.sweeper.sweep(context.Background())

	if len(env.loyalty.requests) != 1 {
		t.Fatalf("loyalty requests = %d, want exactly 1", len(env.loyalty.requests))
	}
}

func TestSweep_ConcurrentCancelSkipsSideEffects(t *testing.T) {
	env := newTestEnv()
	env.bookings.due = []*domain.Booking{dueBooking(10, ptr.Ptr(int64(42)))}
	env.bookings.moveBlocked[10] = true

	env.sweeper.sweep(context.Background())

	if len(env.loyalty.requests) != 0 {
		t.Errorf("loyalty requests = %d, want 0 when transition lost", len(env.loyalty.requests))
	}
	if len(env.subs.incremented) != 0 {
		t.Errorf("visits consumed = %v, want none when transition lost", env.subs.incremented)
	}
}

func TestSweep_ConsumesSubscriptionVisit(t *testing.T) {
	env := newTestEnv()
	env.bookings.due = []*domain.Booking{dueBooking(10, ptr.Ptr(int64(42)))}
	env.subs.sub = &domain.Subscription{
		ID:          5,
		ClientID:    42,
		Active:      true,
		TotalVisits: 8,
		UsedVisits:  3,
	}

	env.sweeper.sweep(context.Background())

	if len(env.subs.incremented) != 1 || env.subs.incremented[0] != 5 {
		t.Fatalf("incremented = %v, want [5]", env.subs.incremented)
	}
	if len(env.subs.deactivated) != 0 {
		t.Errorf("subscription with remaining visits should stay active, got %v", env.subs.deactivated)
	}
}

func TestSweep_ExhaustedSubscriptionDeactivated(t *testing.T) {
	env := newTestEnv()
	env.bookings.due = []*domain.Booking{dueBooking(10, ptr.Ptr(int64(42)))}
	env.subs.sub = &domain.Subscription{
		ID:          5,
		ClientID:    42,
		Active:      true,
		TotalVisits: 8,
		UsedVisits:  7,
	}

	env.sweeper.sweep(context.Background())

	// Последний визит списан - абонемент гасится
	if len(env.subs.deactivated) != 1 || env.subs.deactivated[0] != 5 {
		t.Fatalf("deactivated = %v, want [5]", env.subs.deactivated)
	}
}

func TestSweep_DeactivatesExpiredSubscriptions(t *testing.T) {
	env := newTestEnv()
	env.subs.expired = []*domain.Subscription{
		{ID: 5, ClientID: 42, Active: true, EndsAt: testNow.Add(-24 * time.Hour)},
		{ID: 6, ClientID: 43, Active: true, EndsAt: testNow.Add(-48 * time.Hour)},
	}

	env.sweeper.sweep(context.Background())

	if len(env.subs.deactivated) != 2 {
		t.Fatalf("deactivated = %v, want both expired subscriptions", env.subs.deactivated)
	}
}

func TestSweep_SyncsHolidaysForTwoYears(t *testing.T) {
	env := newTestEnv()
	env.feed.feeds[2026] = &holidayfeed.FeedResponse{
		Year: 2026,
		Holidays: []holidayfeed.FeedHoliday{
			{Date: "2026-01-01", Name: "Новый год"},
			{Date: "2026-03-08", Name: "8 марта"},
		},
	}
	env.feed.feeds[2027] = &holidayfeed.FeedResponse{
		Year: 2027,
		Holidays: []holidayfeed.FeedHoliday{
			{Date: "2027-01-01", Name: "Новый год"},
		},
	}

	env.sweeper.sweep(context.Background())

	if len(env.feed.years) != 2 || env.feed.years[0] != 2026 || env.feed.years[1] != 2027 {
		t.Fatalf("fetched years = %v, want [2026 2027]", env.feed.years)
	}
	if len(env.holidays.upserts) != 3 {
		t.Fatalf("upserts = %d, want 3", len(env.holidays.upserts))
	}
	first := env.holidays.upserts[0]
	if first.Behavior != domain.HolidayBlockAll || !first.Active {
		t.Errorf("synced holiday should be active block_all, got %+v", first)
	}
}

func TestSweep_HolidaySyncThrottled(t *testing.T) {
	env := newTestEnv()

	env.sweeper.sweep(context.Background())
	// Повторный проход внутри окна синхронизации календарь не дёргает
	env.sweeper.sweep(context.Background())

	if len(env.feed.years) != 2 {
		t.Fatalf("fetched years = %v, want single sync of two years", env.feed.years)
	}
}

func TestSweep_BadFeedDateSkipped(t *testing.T) {
	env := newTestEnv()
	env.feed.feeds[2026] = &holidayfeed.FeedResponse{
		Year: 2026,
		Holidays: []holidayfeed.FeedHoliday{
			{Date: "01.01.2026", Name: "Новый год"},
			{Date: "2026-03-08", Name: "8 марта"},
		},
	}

	env.sweeper.sweep(context.Background())

	if len(env.holidays.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1 (bad date skipped)", len(env.holidays.upserts))
	}
	if env.holidays.upserts[0].Name != "8 марта" {
		t.Errorf("upserted holiday = %q, want 8 марта", env.holidays.upserts[0].Name)
	}
}

func TestSweep_FeedErrorDoesNotBlockRetry(t *testing.T) {
	env := newTestEnv()
	failing := &failingFeed{err: errors.New("calendar unavailable")}
	env.sweeper.holidayFeed = failing

	env.sweeper.sweep(context.Background())
	// Синхронизация не удалась - следующий проход пробует снова
	env.sweeper.sweep(context.Background())

	if failing.calls != 4 {
		t.Fatalf("feed calls = %d, want retry on next sweep (4 calls)", failing.calls)
	}
}

type failingFeed struct {
	err   error
	calls int
}

func (f *failingFeed) FetchYear(_ context.Context, _ int) (*holidayfeed.FeedResponse, error) {
	f.calls++
	return nil, f.err
}
