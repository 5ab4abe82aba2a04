package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

// bookingRow строка в порядке bookingColumns: гостевая запись на 10 марта
func bookingRow() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).AddRow(
		int64(10), int64(1), int64(2), int64(3),
		nil, "Анна", "+79990001122",
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		"10:00:00",
		time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		60, "confirmed", "Стрижка", 1500.0, false,
		nil, nil, nil,
		time.Now(), time.Now(),
	)
}

func TestGetByID_ScansBooking(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE id = ").
		WithArgs(int64(10)).
		WillReturnRows(bookingRow())

	booking, err := repo.GetByID(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if booking.ID != 10 {
		t.Errorf("ID = %d, want 10", booking.ID)
	}
	// Секунды из time-колонки отбрасываются при сканировании
	if booking.StartTime != "10:00" {
		t.Errorf("StartTime = %q, want 10:00", booking.StartTime)
	}
	if booking.Status != domain.StatusConfirmed {
		t.Errorf("Status = %s, want confirmed", booking.Status)
	}
	if booking.GuestName == nil || *booking.GuestName != "Анна" {
		t.Errorf("GuestName = %v, want Анна", booking.GuestName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE id = ").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCreate_UniqueViolationMapped(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	_, err := repo.Create(context.Background(), &domain.Booking{
		CompanyID:  1,
		EmployeeID: 2,
		ServiceID:  3,
		StartTime:  "10:00",
		Status:     domain.StatusPending,
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestFindConflicting_FiltersByActiveStatuses(t *testing.T) {
	repo, mock := newTestRepository(t)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	// Слот занимают только активные статусы
	mock.ExpectQuery("SELECT .+ FROM bookings WHERE .+ status IN ").
		WithArgs(int64(1), int64(2),
			string(domain.StatusPending), string(domain.StatusConfirmed), string(domain.StatusCompleted),
			end, start).
		WillReturnRows(bookingRow())

	booking, err := repo.FindConflicting(context.Background(), 1, 2, start, end)
	if err != nil {
		t.Fatalf("FindConflicting: %v", err)
	}
	if booking.ID != 10 {
		t.Errorf("ID = %d, want 10", booking.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindConflicting_NoOverlap(t *testing.T) {
	repo, mock := newTestRepository(t)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE .+ status IN ").
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.FindConflicting(context.Background(), 1, 2, start, start.Add(time.Hour))
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestTransitionStatus_Moved(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("UPDATE bookings SET").
		WithArgs("completed", int64(10), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	moved, err := repo.TransitionStatus(context.Background(), 10, domain.StatusPending, domain.StatusCompleted)
	if err != nil {
		t.Fatalf("TransitionStatus: %v", err)
	}
	if !moved {
		t.Error("expected moved = true")
	}
}

func TestTransitionStatus_ConcurrentChange(t *testing.T) {
	repo, mock := newTestRepository(t)

	// Статус уже изменился конкурентно: 0 затронутых строк, без ошибки
	mock.ExpectExec("UPDATE bookings SET").
		WithArgs("completed", int64(10), "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	moved, err := repo.TransitionStatus(context.Background(), 10, domain.StatusPending, domain.StatusCompleted)
	if err != nil {
		t.Fatalf("TransitionStatus: %v", err)
	}
	if moved {
		t.Error("expected moved = false when status changed concurrently")
	}
}

func TestCancel_AlreadyFinishedRejected(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("UPDATE bookings SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 10, "не смогу прийти")
	if !errors.Is(err, ErrCannotCancel) {
		t.Fatalf("expected ErrCannotCancel, got %v", err)
	}
}

func TestClaimPointsAward_ExactlyOnce(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("UPDATE bookings SET points_awarded").
		WithArgs(true, int64(10), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET points_awarded").
		WithArgs(true, int64(10), false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	claimed, err := repo.ClaimPointsAward(context.Background(), 10)
	if err != nil {
		t.Fatalf("ClaimPointsAward: %v", err)
	}
	if !claimed {
		t.Error("first claim should succeed")
	}

	claimed, err = repo.ClaimPointsAward(context.Background(), 10)
	if err != nil {
		t.Fatalf("ClaimPointsAward repeat: %v", err)
	}
	if claimed {
		t.Error("second claim should return false")
	}
}
