package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Sohelnm1/HCS-BookingService/internal/api/handlers"
	"github.com/Sohelnm1/HCS-BookingService/internal/api/middleware"
	rescheduleBooking "github.com/Sohelnm1/HCS-BookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotReschedule   = "перенос бронирования недоступен"
	msgReschedulePending  = "предыдущий перенос ожидает оплаты сбора"
	msgDateNotBookable    = "запись на выбранную дату невозможна"
	msgInvalidTimeSlot    = "выбранное время не совпадает с сеткой слотов"
	msgNoEligibleStaff    = "нет сотрудников, подходящих под предпочтение по полу"
	msgSlotNotAvailable   = "слот уже занят, выберите другое время"
	msgPaymentGateway     = "платежный сервис недоступен, попробуйте позже"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем userID и роль из контекста (через middleware Auth)
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	isAdmin := middleware.IsAdminFromContext(r.Context())

	// Декодируем body
	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в запрос use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID, isAdmin)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Переносим бронирование
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reschedule - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrReschedulePending):
			h.logger.Warn("POST /bookings/{id}/reschedule - Previous reschedule awaiting payment: booking_id=%d",
				bookingID)
			handlers.RespondConflict(w, msgReschedulePending)

		case errors.Is(err, rescheduleBooking.ErrRescheduleNotAllowed):
			h.logger.Warn("POST /bookings/{id}/reschedule - Reschedule not allowed: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrDateNotBookable):
			h.logger.Warn("POST /bookings/{id}/reschedule - Date not bookable: booking_id=%d, date=%s",
				bookingID, req.NewDate)
			handlers.RespondBadRequest(w, msgDateNotBookable)

		case errors.Is(err, rescheduleBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid time slot: booking_id=%d, start_time=%s",
				bookingID, req.NewStartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, rescheduleBooking.ErrNoEligibleStaff):
			h.logger.Warn("POST /bookings/{id}/reschedule - No eligible staff: booking_id=%d, date=%s",
				bookingID, req.NewDate)
			handlers.RespondConflict(w, msgNoEligibleStaff)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot not available: booking_id=%d, date=%s, start_time=%s",
				bookingID, req.NewDate, req.NewStartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrPaymentGateway):
			h.logger.Error("POST /bookings/{id}/reschedule - Payment gateway error: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentGateway)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed to reschedule booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/{id}/reschedule - Reschedule processed: booking_id=%d, user_id=%d, status=%s",
		bookingID, userID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, response)
}
