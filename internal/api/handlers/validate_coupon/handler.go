package validate_coupon

import (
	"errors"
	"net/http"

	"github.com/Sohelnm1/HCS-BookingService/internal/api/handlers"
	"github.com/Sohelnm1/HCS-BookingService/internal/api/middleware"
	validateCoupon "github.com/Sohelnm1/HCS-BookingService/internal/usecase/validate_coupon"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
)

// ValidateCouponRequest HTTP request model
type ValidateCouponRequest struct {
	Code      string  `json:"code"`
	ServiceID int64   `json:"serviceId"`
	Subtotal  float64 `json:"subtotal"`
}

type Handler struct {
	useCase ValidateCouponUseCase
	logger  Logger
}

func NewHandler(useCase ValidateCouponUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/coupons/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /coupons/validate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req ValidateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Проверяем купон
	result, err := h.useCase.Execute(r.Context(), &validateCoupon.Request{
		UserID:    userID,
		Code:      req.Code,
		ServiceID: req.ServiceID,
		Subtotal:  req.Subtotal,
	})
	if err != nil {
		switch {
		case errors.Is(err, validateCoupon.ErrInvalidInput):
			h.logger.Warn("POST /coupons/validate - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, validateCoupon.ErrCouponInvalid):
			// Неприменимый купон не ошибка для клиента: отвечаем valid=false
			h.logger.Info("POST /coupons/validate - Coupon invalid: user_id=%d, code=%s", userID, req.Code)
			handlers.RespondJSON(w, http.StatusOK, &validateCoupon.Response{
				Code:       req.Code,
				Valid:      false,
				TotalAfter: req.Subtotal,
			})

		default:
			h.logger.Error("POST /coupons/validate - Failed to validate coupon: user_id=%d, code=%s, error=%v",
				userID, req.Code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /coupons/validate - Coupon valid: user_id=%d, code=%s, discount=%.2f",
		userID, req.Code, result.DiscountAmount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
