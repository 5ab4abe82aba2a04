package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SalonBookingService/internal/domain"
	subscriptionRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/subscription"
	"github.com/m04kA/SalonBookingService/internal/service/subscriptions/models"
)

type fakeSubscriptionRepo struct {
	sub         *domain.Subscription
	created     *domain.Subscription
	deactivated []int64
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	copied := *sub
	copied.ID = 100
	f.created = &copied
	return &copied, nil
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

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeSubscriptionRepo) *Service {
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func activateRequest() *models.ActivateRequest {
	return &models.ActivateRequest{
		CompanyID:   1,
		ClientID:    42,
		AmountPaid:  5000.0,
		PeriodStart: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		TotalVisits: 8,
	}
}

func TestActivate_CreatesSubscription(t *testing.T) {
	repo := &fakeSubscriptionRepo{}
	svc := newTestService(repo)

	resp, err := svc.Activate(context.Background(), activateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, int64(42), resp.ClientID)
	assert.True(t, resp.Active)
	assert.Equal(t, 8, resp.TotalVisits)
	assert.Zero(t, resp.UsedVisits)
}

func TestActivate_SecondActiveRejected(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		sub: &domain.Subscription{
			ID:       5,
			ClientID: 42,
			Active:   true,
			StartsAt: testNow.AddDate(0, -1, 0),
			EndsAt:   testNow.AddDate(0, 1, 0),
		},
	}
	svc := newTestService(repo)

	_, err := svc.Activate(context.Background(), activateRequest())
	require.ErrorIs(t, err, ErrSubscriptionExists)
	assert.Nil(t, repo.created)
}

func TestActivate_ExpiredActiveReplaced(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		sub: &domain.Subscription{
			ID:       5,
			ClientID: 42,
			Active:   true,
			StartsAt: testNow.AddDate(0, -2, 0),
			EndsAt:   testNow.AddDate(0, -1, 0),
		},
	}
	svc := newTestService(repo)

	// Просроченный активный абонемент гасится, новый создаётся
	resp, err := svc.Activate(context.Background(), activateRequest())
	require.NoError(t, err)

	assert.Equal(t, []int64{5}, repo.deactivated)
	assert.Equal(t, int64(100), resp.ID)
}

func TestActivate_Validation(t *testing.T) {
	svc := newTestService(&fakeSubscriptionRepo{})

	tests := []struct {
		name   string
		mutate func(*models.ActivateRequest)
	}{
		{"missing client", func(r *models.ActivateRequest) { r.ClientID = 0 }},
		{"missing company", func(r *models.ActivateRequest) { r.CompanyID = 0 }},
		{"inverted period", func(r *models.ActivateRequest) { r.PeriodStart, r.PeriodEnd = r.PeriodEnd, r.PeriodStart }},
		{"zero visits", func(r *models.ActivateRequest) { r.TotalVisits = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := activateRequest()
			tt.mutate(req)

			_, err := svc.Activate(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetActive_ExpiredDeactivatedOnRead(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		sub: &domain.Subscription{
			ID:       5,
			ClientID: 42,
			Active:   true,
			StartsAt: testNow.AddDate(0, -2, 0),
			EndsAt:   testNow.AddDate(0, -1, 0),
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetActive(context.Background(), 42)
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
	assert.Equal(t, []int64{5}, repo.deactivated)
}

func TestGetActive_NotFound(t *testing.T) {
	svc := newTestService(&fakeSubscriptionRepo{})

	_, err := svc.GetActive(context.Background(), 42)
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}
