package create_booking

import (
	"errors"
	"net/http"

	"github.com/Sohelnm1/HCS-BookingService/internal/api/handlers"
	"github.com/Sohelnm1/HCS-BookingService/internal/api/middleware"
	createBooking "github.com/Sohelnm1/HCS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput        = "некорректные параметры запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceInactive     = "услуга недоступна для записи"
	msgTierNotFound        = "тариф не найден"
	msgExtraNotFound       = "дополнительная услуга не найдена"
	msgPhoneNotVerified    = "телефон не подтвержден"
	msgIdentityUnavailable = "сервис проверки пользователей недоступен, попробуйте позже"
	msgDateNotBookable     = "запись на выбранную дату невозможна"
	msgInvalidTimeSlot     = "выбранное время не совпадает с сеткой слотов"
	msgNoEligibleStaff     = "нет сотрудников, подходящих под предпочтение по полу"
	msgSlotNotAvailable    = "слот уже занят, выберите другое время"
	msgCouponInvalid       = "купон недействителен"
	msgPaymentGateway      = "платежный сервис недоступен, попробуйте позже"
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
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в запрос use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Создаем бронирование
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrTierNotFound):
			h.logger.Warn("POST /bookings - Pricing tier not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgTierNotFound)

		case errors.Is(err, createBooking.ErrExtraNotFound):
			h.logger.Warn("POST /bookings - Extra not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgExtraNotFound)

		case errors.Is(err, createBooking.ErrPhoneNotVerified):
			h.logger.Warn("POST /bookings - Phone not verified: user_id=%d", userID)
			handlers.RespondForbidden(w, msgPhoneNotVerified)

		case errors.Is(err, createBooking.ErrIdentityUnavailable):
			h.logger.Error("POST /bookings - Identity service unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondServiceUnavailable(w, msgIdentityUnavailable)

		case errors.Is(err, createBooking.ErrDateNotBookable):
			h.logger.Warn("POST /bookings - Date not bookable: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateNotBookable)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, start_time=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrNoEligibleStaff):
			h.logger.Warn("POST /bookings - No eligible staff: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondConflict(w, msgNoEligibleStaff)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, date=%s, start_time=%s",
				userID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrCouponInvalid):
			h.logger.Warn("POST /bookings - Coupon invalid: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgCouponInvalid)

		case errors.Is(err, createBooking.ErrPaymentGateway):
			h.logger.Error("POST /bookings - Payment gateway error: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentGateway)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, employee_id=%d",
		result.ID, userID, result.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
