package update_schedule_config

import (
	"context"

	"github.com/Sohelnm1/HCS-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateConfig(ctx context.Context, id int64, req *models.UpdateScheduleConfigRequest) (*models.ScheduleConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
