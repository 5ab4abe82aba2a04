package remove_exception

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/service/schedule"
	"github.com/m04kA/SalonBookingService/internal/service/schedule/models"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

const (
	msgInvalidCompanyID  = "некорректный ID компании"
	msgInvalidEmployeeID = "некорректный ID мастера"
	msgInvalidParams     = "некорректные параметры исключения"
	msgNotFound          = "исключение не найдено"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/companies/{companyId}/employees/{employeeId}/exceptions?date=YYYY-MM-DD&slotTime=HH:MM&kind=block
// Только для персонала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if !actor.IsStaff() {
		h.logger.Warn("DELETE /exceptions - Access denied: actor_id=%d role=%s", actor.ID, actor.Role)
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

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	slotTime, err := types.NewTimeStringFromString(query.Get("slotTime"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	kind := domain.ExceptionKind(query.Get("kind"))

	err = h.service.RemoveException(r.Context(), &models.RemoveExceptionRequest{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       date,
		SlotTime:   slotTime,
		Kind:       kind,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrExceptionNotFound):
			h.logger.Warn("DELETE /exceptions - Not found: employee_id=%d, date=%s, slot=%s, kind=%s",
				employeeID, date.Format(domain.DateFormat), slotTime, kind)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("DELETE /exceptions - Failed: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /exceptions - Exception removed: employee_id=%d, date=%s, slot=%s, kind=%s",
		employeeID, date.Format(domain.DateFormat), slotTime, kind)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
