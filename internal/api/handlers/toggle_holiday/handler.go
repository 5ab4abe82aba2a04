package toggle_holiday

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/domain"
	holidaystore "github.com/m04kA/SalonBookingService/internal/infra/storage/holiday"
)

const (
	msgInvalidDate        = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBehavior    = "некорректное поведение праздника"
	msgHolidayNotFound    = "праздник не найден"
)

type Handler struct {
	store  HolidayStore
	logger Logger
}

func NewHandler(store HolidayStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Handle PATCH /internal/holidays/{date}
// Внутренний маршрут для ручного управления праздничным календарём
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req ToggleHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /internal/holidays/%s - Invalid request body: %v", vars["date"], err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Name != nil && req.Behavior != nil {
		behavior := domain.HolidayBehavior(*req.Behavior)
		if !behavior.Valid() {
			handlers.RespondBadRequest(w, msgInvalidBehavior)
			return
		}

		err = h.store.Upsert(r.Context(), &domain.Holiday{
			Date:     date,
			Name:     *req.Name,
			Behavior: behavior,
			Active:   req.Active,
		})
		if err == nil {
			// Upsert при конфликте не трогает active, выставляем явно
			err = h.store.SetActive(r.Context(), date, req.Active)
		}
	} else {
		err = h.store.SetActive(r.Context(), date, req.Active)
	}

	if err != nil {
		switch {
		case errors.Is(err, holidaystore.ErrHolidayNotFound):
			handlers.RespondNotFound(w, msgHolidayNotFound)

		default:
			h.logger.Error("PATCH /internal/holidays/%s - Failed: error=%v", vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /internal/holidays/%s - Holiday toggled: active=%t", vars["date"], req.Active)
	handlers.RespondJSON(w, http.StatusOK, &ToggleHolidayResponse{
		Date:   date.Format(domain.DateFormat),
		Active: req.Active,
	})
}
