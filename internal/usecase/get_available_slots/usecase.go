package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	catalogRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/catalog"
	"github.com/Sohelnm1/HCS-BookingService/internal/scheduling"
	"github.com/Sohelnm1/HCS-BookingService/pkg/types"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	catalogRepo     CatalogRepository
	bookingRepo     BookingRepository
	scheduleService ScheduleService
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	scheduleService ScheduleService,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		bookingRepo:     bookingRepo,
		scheduleService: scheduleService,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов.
// Ответ — снимок на момент запроса: доступность перепроверяется
// при создании бронирования внутри транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, tier=%v, extras=%d, gender=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.PricingTierID, len(req.Extras), req.GenderPreference)

	// 1. Валидация входных данных
	pref, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceInactive
	}

	// 4. Вычисляем длительность визита: тариф + доп. услуги
	duration, err := uc.resolveDuration(ctx, service, req)
	if err != nil {
		return nil, err
	}

	// 5. Получаем действующую конфигурацию расписания услуги
	cfg, err := uc.scheduleService.GetConfigForService(ctx, service)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule config for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// 6. Генерируем кандидатов начала визита
	candidates, err := scheduling.GenerateSlots(cfg, req.Date, now, duration)
	if err != nil {
		if errors.Is(err, scheduling.ErrDateNotBookable) {
			uc.logger.Warn("GetAvailableSlots: date not bookable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDateNotBookable, err)
		}
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 7. Сужаем пул сотрудников под предпочтение по полу
	allEmployees, err := uc.catalogRepo.GetEligibleEmployees(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get employees for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get employees: %v", ErrInternal, err)
	}

	employeePtrs := make([]*domain.Employee, 0, len(allEmployees))
	for i := range allEmployees {
		employeePtrs = append(employeePtrs, &allEmployees[i])
	}

	eligible, err := scheduling.FilterEligible(employeePtrs, pref)
	if err != nil {
		if errors.Is(err, scheduling.ErrNoEligibleStaff) {
			// Нет сотрудников нужного пола: отдаём всю сетку недоступной,
			// чтобы клиент видел расписание и причину
			uc.logger.Warn("GetAvailableSlots: no eligible staff for service=%d, gender=%s", req.ServiceID, pref)
			return buildResponse(req, duration, allUnavailable(candidates, duration), true), nil
		}
		return nil, fmt.Errorf("%w: failed to filter employees: %v", ErrInternal, err)
	}

	// 8. Получаем бронирования подходящих сотрудников на дату
	employeeIDs := make([]int64, 0, len(eligible))
	for _, e := range eligible {
		employeeIDs = append(employeeIDs, e.ID)
	}

	bookings, err := uc.bookingRepo.GetByEmployeesAndDate(ctx, domain.EmployeeDayFilter{
		EmployeeIDs: employeeIDs,
		Date:        req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Помечаем каждый слот доступным/недоступным
	slots, err := scheduling.AnnotateSlots(candidates, duration, cfg.BufferTimeMinutes, eligible, bookings, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to annotate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: service=%d, date=%s: %d candidates",
		req.ServiceID, req.Date.Format(domain.DateFormat), len(slots))

	return buildResponse(req, duration, slots, false), nil
}

// resolveDuration загружает тариф и доп. услуги и считает длительность визита
func (uc *UseCase) resolveDuration(ctx context.Context, service *domain.Service, req *Request) (int, error) {
	var tier *domain.PricingTier
	if req.PricingTierID != nil {
		t, err := uc.catalogRepo.GetPricingTier(ctx, *req.PricingTierID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrTierNotFound) {
				return 0, ErrTierNotFound
			}
			return 0, fmt.Errorf("%w: failed to get pricing tier: %v", ErrInternal, err)
		}
		tier = t
	}

	lines, err := loadExtraLines(ctx, uc.catalogRepo, req.Extras)
	if err != nil {
		return 0, err
	}

	duration, err := scheduling.ResolveDuration(service, tier, lines)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: duration resolution failed: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return duration, nil
}

// loadExtraLines загружает доп. услуги по выбору пользователя
func loadExtraLines(ctx context.Context, repo CatalogRepository, selections []domain.ExtraSelection) ([]scheduling.ExtraLine, error) {
	if len(selections) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(selections))
	for _, sel := range selections {
		ids = append(ids, sel.ExtraID)
	}

	extras, err := repo.GetExtras(ctx, ids)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrExtraNotFound) {
			return nil, ErrExtraNotFound
		}
		return nil, fmt.Errorf("%w: failed to get extras: %v", ErrInternal, err)
	}

	lines := make([]scheduling.ExtraLine, 0, len(selections))
	for i := range selections {
		lines = append(lines, scheduling.ExtraLine{
			Extra:    &extras[i],
			Quantity: selections[i].Quantity,
		})
	}

	return lines, nil
}

// allUnavailable строит сетку из одних недоступных слотов
func allUnavailable(candidates []types.TimeString, duration int) []domain.Slot {
	slots := make([]domain.Slot, 0, len(candidates))
	for _, start := range candidates {
		slots = append(slots, domain.Slot{
			StartTime:       start,
			DurationMinutes: duration,
			Available:       false,
		})
	}
	return slots
}

func buildResponse(req *Request, duration int, slots []domain.Slot, noStaff bool) *Response {
	resp := &Response{
		Date:            req.Date.Format(domain.DateFormat),
		DurationMinutes: duration,
		Slots:           make([]SlotView, 0, len(slots)),
		NoEligibleStaff: noStaff,
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, SlotView{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
		})
	}
	return resp
}
