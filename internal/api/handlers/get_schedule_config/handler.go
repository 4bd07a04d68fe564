package get_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Sohelnm1/HCS-BookingService/internal/api/handlers"
	"github.com/Sohelnm1/HCS-BookingService/internal/service/schedule"
)

const (
	msgInvalidConfigID = "некорректный ID конфигурации"
	msgNotFound        = "конфигурация расписания не найдена"
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

// Handle GET /api/v1/admin/schedule-configs/{configId}
// configId "default" возвращает конфигурацию по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	configIDStr := vars["configId"]

	var (
		result interface{}
		err    error
	)
	if configIDStr == "default" {
		result, err = h.service.GetDefaultConfig(r.Context())
	} else {
		var configID int64
		configID, err = strconv.ParseInt(configIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /admin/schedule-configs/{id} - Invalid config ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfigID)
			return
		}
		result, err = h.service.GetConfig(r.Context(), configID)
	}

	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrConfigNotFound):
			h.logger.Warn("GET /admin/schedule-configs/{id} - Config not found: config_id=%s", configIDStr)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/schedule-configs/{id} - Failed to get config: config_id=%s, error=%v",
				configIDStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/schedule-configs/{id} - Config retrieved successfully: config_id=%s", configIDStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}
