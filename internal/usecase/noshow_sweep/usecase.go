package noshow_sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	bookingRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/booking"
)

// UseCase фоновая разметка неявок.
// Подтверждённое бронирование без отметки о визите помечается no_show
// спустя no_show_minutes политики после начала визита. Прогон идемпотентен:
// условный UPDATE по статусу схлопывает повторную разметку
type UseCase struct {
	bookingRepo  BookingRepository
	policyRepo   PolicyRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, policyRepo PolicyRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		policyRepo:   policyRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Result итог одного прогона
type Result struct {
	Scanned int // Просмотрено кандидатов
	Marked  int // Помечено no_show
}

// Execute выполняет один прогон разметки
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()

	candidates, err := uc.bookingRepo.ListConfirmedUpTo(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list candidates: %v", ErrInternal, err)
	}

	result := &Result{Scanned: len(candidates)}
	policies := make(map[int64]*domain.BookingPolicy)

	for _, b := range candidates {
		policy, err := uc.policyFor(ctx, b, policies)
		if err != nil {
			uc.logger.Error("NoShowSweep: policy lookup failed for booking=%d: %v", b.ID, err)
			continue
		}

		appointmentAt, err := b.AppointmentAt(now.Location())
		if err != nil {
			uc.logger.Error("NoShowSweep: bad start time for booking=%d: %v", b.ID, err)
			continue
		}

		if !policy.IsNoShowDue(b, appointmentAt, now) {
			continue
		}

		if err := uc.bookingRepo.MarkNoShow(ctx, b.ID); err != nil {
			// Гонка с параллельной отменой или другим прогоном — не ошибка
			if errors.Is(err, bookingRepo.ErrInvalidState) || errors.Is(err, bookingRepo.ErrBookingNotFound) {
				continue
			}
			uc.logger.Error("NoShowSweep: failed to mark booking=%d: %v", b.ID, err)
			continue
		}

		uc.logger.Info("NoShowSweep: booking=%d marked no_show (appointment was %s)",
			b.ID, appointmentAt.Format("2006-01-02 15:04"))
		result.Marked++
	}

	if result.Marked > 0 {
		uc.logger.Info("NoShowSweep: run complete, scanned=%d, marked=%d", result.Scanned, result.Marked)
	}

	return result, nil
}

// policyFor возвращает политику бронирования с кешированием в пределах прогона
func (uc *UseCase) policyFor(ctx context.Context, b *domain.Booking, cache map[int64]*domain.BookingPolicy) (*domain.BookingPolicy, error) {
	if b.PolicyID == nil {
		return uc.policyRepo.GetActive(ctx)
	}
	if p, ok := cache[*b.PolicyID]; ok {
		return p, nil
	}
	p, err := uc.policyRepo.GetByID(ctx, *b.PolicyID)
	if err != nil {
		return nil, err
	}
	cache[*b.PolicyID] = p
	return p, nil
}
