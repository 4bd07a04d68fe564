package update_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Sohelnm1/HCS-BookingService/internal/api/handlers"
	"github.com/Sohelnm1/HCS-BookingService/internal/service/schedule"
	"github.com/Sohelnm1/HCS-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidConfigID    = "некорректный ID конфигурации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректная конфигурация расписания"
	msgNotFound           = "конфигурация расписания не найдена"
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

// Handle PUT /api/v1/admin/schedule-configs/{configId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем configId из URL
	vars := mux.Vars(r)
	configIDStr := vars["configId"]

	configID, err := strconv.ParseInt(configIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/schedule-configs/{id} - Invalid config ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	// Декодируем body
	var req models.UpdateScheduleConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule-configs/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем конфигурацию
	result, err := h.service.UpdateConfig(r.Context(), configID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrConfigNotFound):
			h.logger.Warn("PUT /admin/schedule-configs/{id} - Config not found: config_id=%d", configID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrInvalidConfig):
			h.logger.Warn("PUT /admin/schedule-configs/{id} - Invalid config: config_id=%d, error=%v",
				configID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /admin/schedule-configs/{id} - Failed to update config: config_id=%d, error=%v",
				configID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/schedule-configs/{id} - Config updated successfully: config_id=%d", configID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
