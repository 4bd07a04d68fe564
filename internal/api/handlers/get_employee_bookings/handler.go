package get_employee_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Sohelnm1/HCS-BookingService/internal/api/handlers"
	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	"github.com/Sohelnm1/HCS-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/admin/employees/{employeeId}/bookings
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем employeeId из URL
	vars := mux.Vars(r)
	employeeIDStr := vars["employeeId"]

	employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/employees/{id}/bookings - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /admin/employees/{id}/bookings - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /admin/employees/{id}/bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем бронирования сотрудника на дату
	result, err := h.service.GetEmployeeBookings(r.Context(), &models.GetEmployeeBookingsRequest{
		EmployeeID: employeeID,
		Date:       date,
	})
	if err != nil {
		h.logger.Error("GET /admin/employees/{id}/bookings - Failed to get bookings: employee_id=%d, error=%v",
			employeeID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/employees/{id}/bookings - Bookings retrieved successfully: employee_id=%d, date=%s, count=%d",
		employeeID, dateStr, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
