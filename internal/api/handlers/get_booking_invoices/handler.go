package get_booking_invoices

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Sohelnm1/HCS-BookingService/internal/api/handlers"
	"github.com/Sohelnm1/HCS-BookingService/internal/api/middleware"
	"github.com/Sohelnm1/HCS-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/bookings/{bookingId}/invoices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/invoices - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем userID и роль из контекста (через middleware Auth)
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/invoices - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	isAdmin := middleware.IsAdminFromContext(r.Context())

	// Получаем счета (сервис сам проверит права доступа)
	invoices, err := h.service.GetInvoices(r.Context(), bookingID, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/invoices - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/invoices - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id}/invoices - Failed to get invoices: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/invoices - Invoices retrieved successfully: booking_id=%d, count=%d",
		bookingID, len(invoices))
	handlers.RespondJSON(w, http.StatusOK, invoices)
}
