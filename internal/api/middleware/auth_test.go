package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

func callAuth(t *testing.T, headers map[string]string) (*httptest.ResponseRecorder, domain.Actor, bool) {
	t.Helper()

	var actor domain.Actor
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		actor = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	Auth(next).ServeHTTP(rec, req)
	return rec, actor, called
}

func TestAuth_MissingUserID(t *testing.T) {
	rec, _, called := callAuth(t, nil)

	if called {
		t.Fatal("handler should not be called without X-User-ID")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_InvalidUserID(t *testing.T) {
	rec, _, called := callAuth(t, map[string]string{HeaderUserID: "abc"})

	if called {
		t.Fatal("handler should not be called with bad X-User-ID")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_ActorInContext(t *testing.T) {
	_, actor, called := callAuth(t, map[string]string{
		HeaderUserID:   "42",
		HeaderUserRole: "manager",
	})

	if !called {
		t.Fatal("handler should be called")
	}
	if actor.ID != 42 || actor.Role != domain.RoleManager {
		t.Errorf("actor = %+v, want id=42 role=manager", actor)
	}
}

func TestAuth_EmptyRoleDefaultsToClient(t *testing.T) {
	_, actor, called := callAuth(t, map[string]string{HeaderUserID: "42"})

	if !called {
		t.Fatal("handler should be called")
	}
	if actor.Role != domain.RoleClient {
		t.Errorf("role = %s, want client", actor.Role)
	}
}

func TestAuth_GuestRoleRejected(t *testing.T) {
	// Защищённые маршруты не принимают гостевую роль
	rec, _, called := callAuth(t, map[string]string{
		HeaderUserID:   "42",
		HeaderUserRole: "guest",
	})

	if called {
		t.Fatal("handler should not be called for guest role")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestOptionalActor_NoHeadersIsGuest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/guest/bookings", nil)

	actor := OptionalActor(req)
	if !actor.IsGuest() {
		t.Errorf("actor = %+v, want guest", actor)
	}
}

func TestOptionalActor_HeadersRecognized(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies/1/employees/2/available-slots", nil)
	req.Header.Set(HeaderUserID, "7")
	req.Header.Set(HeaderUserRole, "employee")

	actor := OptionalActor(req)
	if actor.ID != 7 || actor.Role != domain.RoleEmployee {
		t.Errorf("actor = %+v, want id=7 role=employee", actor)
	}
}
