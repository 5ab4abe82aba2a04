package update_template_day

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SalonBookingService/internal/service/schedule"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidEmployeeID  = "некорректный ID мастера"
	msgInvalidWeekday     = "некорректный день недели, ожидается число 0-6"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCompanyNotFound    = "компания не найдена"
	msgEmployeeNotFound   = "мастер не найден"
	msgOverlapping        = "интервалы дня пересекаются"
	msgNotAligned         = "длина интервала не кратна шагу сетки слотов"
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

// Handle PUT /api/v1/companies/{companyId}/employees/{employeeId}/schedule/{weekday}
// Только для персонала; день заменяется целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if !actor.IsStaff() {
		h.logger.Warn("PUT /schedule/{weekday} - Access denied: actor_id=%d role=%s", actor.ID, actor.Role)
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

	weekdayNum, err := strconv.Atoi(vars["weekday"])
	if err != nil || weekdayNum < 0 || weekdayNum > 6 {
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	var req UpdateTemplateDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(companyID, employeeID, time.Weekday(weekdayNum))
	if err != nil {
		h.logger.Warn("PUT /schedule/{weekday} - Invalid intervals: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpsertTemplateDay(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, schedule.ErrCompanyNotFound):
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, schedule.ErrEmployeeNotFound):
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, schedule.ErrOverlappingIntervals):
			h.logger.Warn("PUT /schedule/{weekday} - Overlapping intervals: employee_id=%d", employeeID)
			handlers.RespondBadRequest(w, msgOverlapping)

		case errors.Is(err, schedule.ErrIntervalNotAligned):
			h.logger.Warn("PUT /schedule/{weekday} - Interval not aligned: employee_id=%d", employeeID)
			handlers.RespondBadRequest(w, msgNotAligned)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /schedule/{weekday} - Failed: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/{weekday} - Template day replaced: employee_id=%d, weekday=%d",
		employeeID, weekdayNum)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
