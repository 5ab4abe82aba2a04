package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/booking"
	tokenStore "github.com/m04kA/SalonBookingService/internal/infra/storage/canceltoken"
	"github.com/m04kA/SalonBookingService/internal/integrations/notifyservice"
	"github.com/m04kA/SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SalonBookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking   *domain.Booking
	cancelled []int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, _ string) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeTokenStore struct {
	tokens map[string]int64
}

func (f *fakeTokenStore) Consume(_ context.Context, token string) (int64, error) {
	id, ok := f.tokens[token]
	if !ok {
		return 0, tokenStore.ErrTokenNotFound
	}
	delete(f.tokens, token)
	return id, nil
}

type fakeNotifyClient struct {
	sent []*notifyservice.Notification
}

func (f *fakeNotifyClient) Send(_ context.Context, n *notifyservice.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	repo   *fakeBookingRepo
	tokens *fakeTokenStore
	notify *fakeNotifyClient
	svc    *Service
}

func newTestEnv(booking *domain.Booking) *testEnv {
	env := &testEnv{
		repo:   &fakeBookingRepo{booking: booking},
		tokens: &fakeTokenStore{tokens: map[string]int64{}},
		notify: &fakeNotifyClient{},
	}
	env.svc = NewService(env.repo, env.tokens, env.notify, nopLogger{})
	env.svc.timeProvider = fixedTime{now: testNow}
	return env
}

func guestBooking(startAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:          10,
		CompanyID:   1,
		EmployeeID:  2,
		ServiceID:   3,
		GuestName:   ptr.Ptr("Анна"),
		GuestPhone:  ptr.Ptr("+79990001122"),
		BookingDate: time.Date(startAt.Year(), startAt.Month(), startAt.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:   "18:00",
		StartAt:     startAt,
		Status:      domain.StatusPending,
		ServiceName: "Стрижка",
	}
}

func clientBooking(clientID int64) *domain.Booking {
	b := guestBooking(testNow.Add(24 * time.Hour))
	b.GuestName = nil
	b.GuestPhone = nil
	b.ClientID = &clientID
	return b
}

func TestGetByID_ClientSeesOwnBooking(t *testing.T) {
	env := newTestEnv(clientBooking(42))

	resp, err := env.svc.GetByID(context.Background(), 10, domain.Actor{ID: 42, Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if resp.ID != 10 {
		t.Errorf("ID = %d, want 10", resp.ID)
	}
}

func TestGetByID_ForeignBookingDenied(t *testing.T) {
	env := newTestEnv(clientBooking(42))

	_, err := env.svc.GetByID(context.Background(), 10, domain.Actor{ID: 99, Role: domain.RoleClient})
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestGetByID_StaffSeesAnyBooking(t *testing.T) {
	env := newTestEnv(clientBooking(42))

	_, err := env.svc.GetByID(context.Background(), 10, domain.Actor{ID: 7, Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("GetByID for staff: %v", err)
	}
}

func TestGetCompanyBookings_StaffOnly(t *testing.T) {
	env := newTestEnv(clientBooking(42))

	_, err := env.svc.GetCompanyBookings(context.Background(),
		domain.Actor{ID: 42, Role: domain.RoleClient},
		&models.GetCompanyBookingsRequest{CompanyID: 1})
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for client, got %v", err)
	}

	resp, err := env.svc.GetCompanyBookings(context.Background(),
		domain.Actor{ID: 7, Role: domain.RoleManager},
		&models.GetCompanyBookingsRequest{CompanyID: 1})
	if err != nil {
		t.Fatalf("GetCompanyBookings for staff: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("Total = %d, want 1", resp.Total)
	}
}

func TestGetCompanyBookings_InvalidStatus(t *testing.T) {
	env := newTestEnv(nil)

	_, err := env.svc.GetCompanyBookings(context.Background(),
		domain.Actor{ID: 7, Role: domain.RoleManager},
		&models.GetCompanyBookingsRequest{CompanyID: 1, Status: ptr.Ptr("unknown")})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCancel_SendsNotifications(t *testing.T) {
	env := newTestEnv(clientBooking(42))

	err := env.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{
		Actor:              domain.Actor{ID: 42, Role: domain.RoleClient},
		CancellationReason: "не смогу прийти",
	})
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(env.repo.cancelled) != 1 || env.repo.cancelled[0] != 10 {
		t.Fatalf("expected booking 10 cancelled, got %v", env.repo.cancelled)
	}

	// Отмена и освобождение слота - два отдельных уведомления
	if len(env.notify.sent) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(env.notify.sent))
	}
	if env.notify.sent[0].Kind != notifyservice.KindBookingCancelled {
		t.Errorf("first notification kind = %s, want %s", env.notify.sent[0].Kind, notifyservice.KindBookingCancelled)
	}
	if env.notify.sent[1].Kind != notifyservice.KindSlotFreed {
		t.Errorf("second notification kind = %s, want %s", env.notify.sent[1].Kind, notifyservice.KindSlotFreed)
	}
}

func TestCancel_OverlongReasonRejected(t *testing.T) {
	env := newTestEnv(clientBooking(42))

	reason := make([]rune, domain.MaxCancellationReasonLength+1)
	for i := range reason {
		reason[i] = 'а'
	}
	err := env.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{
		Actor:              domain.Actor{ID: 42, Role: domain.RoleClient},
		CancellationReason: string(reason),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(env.repo.cancelled) != 0 {
		t.Fatalf("booking should not be cancelled, got %v", env.repo.cancelled)
	}
}

func TestCancel_CompletedBookingRejected(t *testing.T) {
	booking := clientBooking(42)
	booking.Status = domain.StatusCompleted
	env := newTestEnv(booking)

	err := env.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{
		Actor: domain.Actor{ID: 42, Role: domain.RoleClient},
	})
	if !errors.Is(err, ErrCannotCancel) {
		t.Fatalf("expected ErrCannotCancel, got %v", err)
	}
}

func TestCancelByToken_Success(t *testing.T) {
	// Запись завтра, окно отмены ещё не наступило
	env := newTestEnv(guestBooking(testNow.Add(24 * time.Hour)))
	env.tokens.tokens["tok-1"] = 10

	err := env.svc.CancelByToken(context.Background(), &models.CancelByTokenRequest{Token: "tok-1"})
	if err != nil {
		t.Fatalf("CancelByToken: %v", err)
	}
	if len(env.repo.cancelled) != 1 {
		t.Fatalf("expected booking cancelled, got %v", env.repo.cancelled)
	}
}

func TestCancelByToken_TooLate(t *testing.T) {
	// До начала записи меньше трёх часов
	env := newTestEnv(guestBooking(testNow.Add(2 * time.Hour)))
	env.tokens.tokens["tok-1"] = 10

	err := env.svc.CancelByToken(context.Background(), &models.CancelByTokenRequest{Token: "tok-1"})
	if !errors.Is(err, ErrTooLate) {
		t.Fatalf("expected ErrTooLate, got %v", err)
	}
	if len(env.repo.cancelled) != 0 {
		t.Fatalf("booking should not be cancelled, got %v", env.repo.cancelled)
	}
}

func TestCancelByToken_OverlongReasonKeepsToken(t *testing.T) {
	env := newTestEnv(guestBooking(testNow.Add(24 * time.Hour)))
	env.tokens.tokens["tok-1"] = 10

	reason := make([]rune, domain.MaxCancellationReasonLength+1)
	for i := range reason {
		reason[i] = 'а'
	}
	err := env.svc.CancelByToken(context.Background(), &models.CancelByTokenRequest{
		Token:              "tok-1",
		CancellationReason: string(reason),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// Токен не должен сгореть на отклонённом запросе
	if _, ok := env.tokens.tokens["tok-1"]; !ok {
		t.Fatal("token consumed on rejected request")
	}
}

func TestCancelByToken_SingleUse(t *testing.T) {
	env := newTestEnv(guestBooking(testNow.Add(24 * time.Hour)))
	env.tokens.tokens["tok-1"] = 10

	if err := env.svc.CancelByToken(context.Background(), &models.CancelByTokenRequest{Token: "tok-1"}); err != nil {
		t.Fatalf("first CancelByToken: %v", err)
	}

	err := env.svc.CancelByToken(context.Background(), &models.CancelByTokenRequest{Token: "tok-1"})
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound on reuse, got %v", err)
	}
}

func TestCancelByToken_UnknownToken(t *testing.T) {
	env := newTestEnv(guestBooking(testNow.Add(24 * time.Hour)))

	err := env.svc.CancelByToken(context.Background(), &models.CancelByTokenRequest{Token: "missing"})
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}
