package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/Sohelnm1/HCS-BookingService/internal/api/handlers"
	confirmPayment "github.com/Sohelnm1/HCS-BookingService/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры запроса"
	msgNotFound           = "бронирование не найдено"
	msgOrderMismatch      = "платежный ордер не относится к бронированию"
	msgInvalidState       = "бронирование не ожидает оплаты"
	msgSlotLost           = "слот переноса занят, сбор возвращен"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/callback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req PaymentCallbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/callback - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обрабатываем колбэк
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/callback - Invalid input: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments/callback - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrOrderMismatch):
			h.logger.Warn("POST /payments/callback - Order mismatch: booking_id=%d, order_id=%s",
				req.BookingID, req.OrderID)
			handlers.RespondBadRequest(w, msgOrderMismatch)

		case errors.Is(err, confirmPayment.ErrInvalidState):
			h.logger.Warn("POST /payments/callback - Booking not awaiting payment: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, confirmPayment.ErrSlotLost):
			h.logger.Warn("POST /payments/callback - Reschedule slot lost: booking_id=%d, order_id=%s",
				req.BookingID, req.OrderID)
			handlers.RespondConflict(w, msgSlotLost)

		default:
			h.logger.Error("POST /payments/callback - Failed to process callback: booking_id=%d, order_id=%s, error=%v",
				req.BookingID, req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/callback - Callback processed: booking_id=%d, order_id=%s, status=%s",
		req.BookingID, req.OrderID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
