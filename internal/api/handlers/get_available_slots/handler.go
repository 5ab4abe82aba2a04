package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/service/eligibility"
	uc "github.com/m04kA/SalonBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCompanyID  = "некорректный ID компании"
	msgInvalidEmployeeID = "некорректный ID мастера"
	msgInvalidDate       = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgCompanyNotFound   = "компания не найдена"
	msgEmployeeNotFound  = "мастер не найден"
	msgSaturday          = "запись на субботу доступна персоналу и клиентам с абонементом"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/employees/{employeeId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Маршрут публичный: заголовки опциональны, без них актор - гость
	actor := middleware.OptionalActor(r)

	resp, err := h.useCase.Execute(r.Context(), &uc.Request{
		Actor:      actor,
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       date,
	})
	if err != nil {
		h.respondError(w, companyID, employeeID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp, domain.DateFormat))
}

func (h *Handler) respondError(w http.ResponseWriter, companyID, employeeID int64, err error) {
	var horizonErr *eligibility.HorizonError

	switch {
	case errors.Is(err, uc.ErrCompanyNotFound):
		h.logger.Warn("GET /available-slots - Company not found: company_id=%d", companyID)
		handlers.RespondNotFound(w, msgCompanyNotFound)

	case errors.Is(err, uc.ErrEmployeeNotFound):
		h.logger.Warn("GET /available-slots - Employee not found: employee_id=%d", employeeID)
		handlers.RespondNotFound(w, msgEmployeeNotFound)

	case errors.Is(err, uc.ErrInvalidInput):
		h.logger.Warn("GET /available-slots - Invalid input: %v", err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.As(err, &horizonErr):
		h.logger.Warn("GET /available-slots - Date beyond horizon: cutoff=%s",
			horizonErr.Cutoff.Format(domain.DateFormat))
		handlers.RespondError(w, http.StatusUnprocessableEntity, horizonErr.Error())

	case errors.Is(err, eligibility.ErrSaturdayRestricted):
		h.logger.Warn("GET /available-slots - Saturday restricted: company_id=%d", companyID)
		handlers.RespondForbidden(w, msgSaturday)

	default:
		h.logger.Error("GET /available-slots - Failed: company_id=%d, employee_id=%d, error=%v",
			companyID, employeeID, err)
		handlers.RespondInternalError(w)
	}
}
