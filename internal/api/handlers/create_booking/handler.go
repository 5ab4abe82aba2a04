package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/service/eligibility"
	uc "github.com/m04kA/SalonBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgCompanyNotFound    = "компания не найдена"
	msgEmployeeNotFound   = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotProvided = "мастер не оказывает эту услугу"
	msgEmployeeInactive   = "мастер не принимает записи"
	msgSlotUnavailable    = "слот недоступен, обновите список доступных слотов"
	msgInvalidDate        = "дата записи уже прошла"
	msgSaturday           = "запись на субботу доступна персоналу и клиентам с абонементом"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Авторизованная запись: актор приходит из Auth middleware
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	ucReq, err := req.toUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	h.execute(w, r, "POST /bookings", ucReq)
}

// HandleGuest POST /api/v1/guest/bookings
// Гостевая запись без аутентификации; в ответе токен отмены
func (h *Handler) HandleGuest(w http.ResponseWriter, r *http.Request) {
	var req CreateGuestBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /guest/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.toUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /guest/bookings - Invalid date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	h.execute(w, r, "POST /guest/bookings", ucReq)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, route string, ucReq *uc.Request) {
	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		h.respondError(w, route, ucReq, err)
		return
	}

	h.logger.Info("%s - Booking created: booking_id=%d, employee_id=%d, date=%s, time=%s",
		route, resp.ID, resp.EmployeeID, resp.BookingDate.Format(domain.DateFormat), resp.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, fromUseCaseResponse(resp))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, req *uc.Request, err error) {
	var horizonErr *eligibility.HorizonError

	switch {
	case errors.Is(err, uc.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, uc.ErrCompanyNotFound):
		h.logger.Warn("%s - Company not found: company_id=%d", route, req.CompanyID)
		handlers.RespondNotFound(w, msgCompanyNotFound)

	case errors.Is(err, uc.ErrEmployeeNotFound):
		h.logger.Warn("%s - Employee not found: employee_id=%d", route, req.EmployeeID)
		handlers.RespondNotFound(w, msgEmployeeNotFound)

	case errors.Is(err, uc.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: service_id=%d", route, req.ServiceID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, uc.ErrServiceNotProvided):
		h.logger.Warn("%s - Service not provided: service_id=%d, employee_id=%d",
			route, req.ServiceID, req.EmployeeID)
		handlers.RespondBadRequest(w, msgServiceNotProvided)

	case errors.Is(err, uc.ErrEmployeeInactive):
		h.logger.Warn("%s - Employee inactive: employee_id=%d", route, req.EmployeeID)
		handlers.RespondBadRequest(w, msgEmployeeInactive)

	case errors.Is(err, uc.ErrInvalidDate):
		h.logger.Warn("%s - Invalid date: date=%s", route, req.Date.Format(domain.DateFormat))
		handlers.RespondBadRequest(w, msgInvalidDate)

	case errors.As(err, &horizonErr):
		h.logger.Warn("%s - Date beyond horizon: cutoff=%s", route, horizonErr.Cutoff.Format(domain.DateFormat))
		handlers.RespondError(w, http.StatusUnprocessableEntity, horizonErr.Error())

	case errors.Is(err, eligibility.ErrSaturdayRestricted):
		h.logger.Warn("%s - Saturday restricted: actor_id=%d", route, req.Actor.ID)
		handlers.RespondForbidden(w, msgSaturday)

	case errors.Is(err, uc.ErrSlotUnavailable):
		h.logger.Warn("%s - Slot unavailable: employee_id=%d, date=%s, time=%s",
			route, req.EmployeeID, req.Date.Format(domain.DateFormat), req.StartTime)
		handlers.RespondConflict(w, msgSlotUnavailable)

	default:
		h.logger.Error("%s - Failed to create booking: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
