package activate_subscription

import (
	"errors"
	"net/http"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/service/subscriptions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAlreadyExists      = "у клиента уже есть активный абонемент"
)

type Handler struct {
	service SubscriptionService
	logger  Logger
}

func NewHandler(service SubscriptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /internal/subscriptions/activate
// Внутренний маршрут для платёжного сервиса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ActivateSubscriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/subscriptions/activate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /internal/subscriptions/activate - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	sub, err := h.service.Activate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrSubscriptionExists):
			h.logger.Warn("POST /internal/subscriptions/activate - Already exists: client_id=%d", req.ClientID)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, subscriptions.ErrInvalidInput):
			h.logger.Warn("POST /internal/subscriptions/activate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /internal/subscriptions/activate - Failed: client_id=%d, error=%v",
				req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/subscriptions/activate - Subscription activated: id=%d, client_id=%d",
		sub.ID, sub.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(sub))
}
