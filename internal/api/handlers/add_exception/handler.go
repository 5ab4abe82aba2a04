package add_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SalonBookingService/internal/service/schedule"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidEmployeeID  = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCompanyNotFound    = "компания не найдена"
	msgEmployeeNotFound   = "мастер не найден"
	msgDuplicate          = "такое исключение уже существует"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies/{companyId}/employees/{employeeId}/exceptions
// Только для персонала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if !actor.IsStaff() {
		h.logger.Warn("POST /exceptions - Access denied: actor_id=%d role=%s", actor.ID, actor.Role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	var req AddExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(companyID, employeeID)
	if err != nil {
		h.logger.Warn("POST /exceptions - Invalid date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	exc, err := h.service.AddException(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrCompanyNotFound):
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, schedule.ErrEmployeeNotFound):
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, schedule.ErrDuplicateException):
			h.logger.Warn("POST /exceptions - Duplicate: employee_id=%d, date=%s, slot=%s, kind=%s",
				employeeID, req.Date, req.SlotTime, req.Kind)
			handlers.RespondConflict(w, msgDuplicate)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /exceptions - Failed: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /exceptions - Exception created: employee_id=%d, date=%s, slot=%s, kind=%s",
		employeeID, req.Date, req.SlotTime, req.Kind)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(exc))
}
