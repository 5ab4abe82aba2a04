package cancel_by_token

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/service/bookings"
)

const (
	msgInvalidToken       = "некорректный токен отмены"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTokenNotFound      = "токен отмены не найден или уже использован"
	msgNotFound           = "запись не найдена"
	msgCannotCancel       = "запись не может быть отменена"
	msgTooLate            = "отмена недоступна менее чем за 3 часа до начала"
	msgInvalidReason      = "некорректная причина отмены"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/guest/cancellations/{token}
// Гостевая отмена по одноразовому токену, без аутентификации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	token := vars["token"]
	if token == "" {
		h.logger.Warn("POST /guest/cancellations/{token} - Empty token")
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	// Тело опционально: гость может не указывать причину
	var req CancelByTokenRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /guest/cancellations/{token} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.CancelByToken(r.Context(), req.ToServiceRequest(token))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrTokenNotFound):
			h.logger.Warn("POST /guest/cancellations/{token} - Token not found or used")
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /guest/cancellations/{token} - Booking not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrTooLate):
			h.logger.Warn("POST /guest/cancellations/{token} - Too late to cancel")
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTooLate)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("POST /guest/cancellations/{token} - Cannot cancel")
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /guest/cancellations/{token} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("POST /guest/cancellations/{token} - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /guest/cancellations/{token} - Booking cancelled by guest token")
	handlers.RespondJSON(w, http.StatusOK, nil)
}
