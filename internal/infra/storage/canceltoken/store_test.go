package canceltoken

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client), mr
}

func TestSave_SetsKeyWithTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "tok-1", 42, time.Hour); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if ttl := mr.TTL(keyPrefix + "tok-1"); ttl != time.Hour {
		t.Errorf("key ttl = %s, want 1h", ttl)
	}

	bookingID, err := store.Consume(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if bookingID != 42 {
		t.Errorf("bookingID = %d, want 42", bookingID)
	}
}

func TestSave_NonPositiveTTLSkipped(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "tok-1", 42, 0); err != nil {
		t.Fatalf("Save with zero ttl: %v", err)
	}

	_, err := store.Consume(ctx, "tok-1")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestConsume_SingleUse(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "tok-1", 42, time.Hour); err != nil {
		t.Fatalf("Save: %v", err)
	}

	bookingID, err := store.Consume(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if bookingID != 42 {
		t.Errorf("bookingID = %d, want 42", bookingID)
	}

	// Токен одноразовый: повторное чтение не находит ключ
	if _, err := store.Consume(ctx, "tok-1"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound on reuse, got %v", err)
	}
}

func TestConsume_ExpiredToken(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "tok-1", 42, time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err := store.Consume(ctx, "tok-1")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound after expiry, got %v", err)
	}
}

func TestConsume_UnknownToken(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Consume(context.Background(), "missing")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}
