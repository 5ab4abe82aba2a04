package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// Заголовки, проставляемые API-шлюзом после проверки токена
// Сервис доверяет им как уже проверенным данным
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Auth middleware для защищённых маршрутов
// Требует X-User-ID и корректную роль; актор кладётся в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := r.Header.Get(HeaderUserID)
		if idStr == "" {
			handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondUnauthorized(w, "некорректный X-User-ID")
			return
		}

		role := domain.Role(r.Header.Get(HeaderUserRole))
		if role == "" {
			role = domain.RoleClient
		}
		if !role.Valid() || role == domain.RoleGuest {
			handlers.RespondUnauthorized(w, "некорректный X-User-Role")
			return
		}

		actor := domain.Actor{ID: id, Role: role}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor кладет актора в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext возвращает актора запроса
// Для публичных маршрутов без заголовков возвращает гостя
func ActorFromContext(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(actorKey).(domain.Actor); ok {
		return actor
	}
	return domain.Guest()
}

// OptionalActor извлекает актора из заголовков публичного маршрута
// Отсутствие заголовков - гость, ошибок не бывает
func OptionalActor(r *http.Request) domain.Actor {
	idStr := r.Header.Get(HeaderUserID)
	if idStr == "" {
		return domain.Guest()
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return domain.Guest()
	}

	role := domain.Role(r.Header.Get(HeaderUserRole))
	if !role.Valid() || role == domain.RoleGuest {
		role = domain.RoleClient
	}

	return domain.Actor{ID: id, Role: role}
}
