package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/Sohelnm1/HCS-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/Sohelnm1/HCS-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
	msgTierNotFound       = "тариф не найден"
	msgExtraNotFound      = "дополнительная услуга не найдена"
	msgDateNotBookable    = "запись на выбранную дату невозможна"
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

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req AvailableSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в запрос use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid input: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("POST /slots - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			h.logger.Warn("POST /slots - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrTierNotFound):
			h.logger.Warn("POST /slots - Pricing tier not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgTierNotFound)

		case errors.Is(err, getAvailableSlots.ErrExtraNotFound):
			h.logger.Warn("POST /slots - Extra not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgExtraNotFound)

		case errors.Is(err, getAvailableSlots.ErrDateNotBookable):
			h.logger.Warn("POST /slots - Date not bookable: service_id=%d, date=%s", req.ServiceID, req.Date)
			handlers.RespondBadRequest(w, msgDateNotBookable)

		default:
			h.logger.Error("POST /slots - Failed to get slots: service_id=%d, date=%s, error=%v",
				req.ServiceID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slots retrieved successfully: service_id=%d, date=%s, slots_count=%d",
		req.ServiceID, req.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
