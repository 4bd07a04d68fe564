package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	bookingRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/catalog"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/notifyservice"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/paymentgateway"
	"github.com/Sohelnm1/HCS-BookingService/internal/scheduling"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	catalogRepo     CatalogRepository
	policyRepo      PolicyRepository
	scheduleService ScheduleService
	payments        PaymentClient
	notifier        NotifyClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	policyRepo PolicyRepository,
	scheduleService ScheduleService,
	payments PaymentClient,
	notifier NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		catalogRepo:     catalogRepo,
		policyRepo:      policyRepo,
		scheduleService: scheduleService,
		payments:        payments,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования.
// Бесплатный перенос применяется сразу; платный удерживает целевой слот
// в pending-полях и ждёт оплаты сбора. Длительность визита при переносе
// не пересчитывается — фиксируется при создании бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, actor=%d, newDate=%s, newTime=%s",
		req.BookingID, req.ActorID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Предварительные проверки вне транзакции: бронирование, права, политика
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.UserID != req.ActorID && !req.IsAdmin {
		uc.logger.Warn("RescheduleBooking: access denied for actor=%d to booking=%d", req.ActorID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if booking.ReschedulePaymentStatus == domain.ReschedulePending {
		uc.logger.Warn("RescheduleBooking: booking=%d already has a reschedule awaiting payment", req.BookingID)
		return nil, ErrReschedulePending
	}

	policy, err := uc.resolvePolicy(ctx, booking)
	if err != nil {
		return nil, err
	}

	appointmentAt, err := booking.AppointmentAt(now.Location())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute appointment time: %v", ErrInternal, err)
	}

	if err := policy.EvaluateReschedule(booking, appointmentAt, now); err != nil {
		uc.logger.Warn("RescheduleBooking: not allowed for booking=%d: %v", req.BookingID, err)
		return nil, ErrRescheduleNotAllowed
	}

	service, err := uc.catalogRepo.GetService(ctx, booking.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: service %d vanished", ErrInternal, booking.ServiceID)
		}
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	cfg, err := uc.scheduleService.GetConfigForService(ctx, service)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	fee := policy.RescheduleFee

	// 4. Платёжный ордер на сбор создаётся до транзакции: при откате
	// останется неоплаченный ордер, который шлюз сам закроет по TTL
	var order *paymentgateway.Order
	if fee > 0 {
		order, err = uc.payments.CreateOrder(ctx, paymentgateway.CreateOrderRequest{
			BookingID: booking.ID,
			UserID:    booking.UserID,
			Amount:    fee,
			Currency:  "INR",
			Purpose:   "reschedule",
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to create fee order for booking=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
		}
	}

	var resp *Response

	// 5. Сериализуемая транзакция: проверка нового слота + запись
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Новое время должно лежать на сетке
		candidates, err := scheduling.GenerateSlots(cfg, req.NewDate, now, booking.DurationMinutes)
		if err != nil {
			if errors.Is(err, scheduling.ErrDateNotBookable) {
				return fmt.Errorf("%w: %v", ErrDateNotBookable, err)
			}
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}
		if !slotOnGrid(req.NewStartTime, candidates) {
			return ErrInvalidTimeSlot
		}

		// 5.2. Пул сотрудников под исходное предпочтение по полу
		allEmployees, err := uc.catalogRepo.GetEligibleEmployees(txCtx, booking.ServiceID)
		if err != nil {
			return fmt.Errorf("%w: failed to get employees: %v", ErrInternal, err)
		}
		employeePtrs := make([]*domain.Employee, 0, len(allEmployees))
		for i := range allEmployees {
			employeePtrs = append(employeePtrs, &allEmployees[i])
		}

		eligible, err := scheduling.FilterEligible(employeePtrs, booking.GenderPreference)
		if err != nil {
			if errors.Is(err, scheduling.ErrNoEligibleStaff) {
				return ErrNoEligibleStaff
			}
			return fmt.Errorf("%w: failed to filter employees: %v", ErrInternal, err)
		}

		// 5.3. Блокируем день сотрудников; своё бронирование не мешает
		// переносу в пределах того же дня
		employeeIDs := make([]int64, 0, len(eligible))
		for _, e := range eligible {
			employeeIDs = append(employeeIDs, e.ID)
		}
		bookings, err := uc.bookingRepo.GetByEmployeesAndDate(txCtx, domain.EmployeeDayFilter{
			EmployeeIDs: employeeIDs,
			Date:        req.NewDate,
			ForUpdate:   true,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		employee, err := scheduling.SelectEmployee(eligible, req.NewStartTime, booking.DurationMinutes,
			cfg.BufferTimeMinutes, bookings, &booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to select employee: %v", ErrInternal, err)
		}
		if employee == nil {
			return ErrSlotNotAvailable
		}

		// 5.4. Применяем или удерживаем
		if fee <= 0 {
			if err := uc.bookingRepo.ApplyReschedule(txCtx, booking.ID, req.NewDate, req.NewStartTime, employee.ID); err != nil {
				if errors.Is(err, bookingRepo.ErrInvalidState) {
					return ErrRescheduleNotAllowed
				}
				return fmt.Errorf("%w: failed to apply reschedule: %v", ErrInternal, err)
			}
			resp = &Response{
				BookingID:          booking.ID,
				Status:             StatusRescheduled,
				NewDate:            req.NewDate,
				NewStartTime:       req.NewStartTime,
				EmployeeID:         employee.ID,
				RescheduleFee:      0,
				RescheduleAttempts: booking.RescheduleAttempts + 1,
			}
			return nil
		}

		if err := uc.bookingRepo.SetPendingReschedule(txCtx, booking.ID, req.NewDate, req.NewStartTime,
			employee.ID, order.OrderID); err != nil {
			if errors.Is(err, bookingRepo.ErrInvalidState) {
				return ErrRescheduleNotAllowed
			}
			return fmt.Errorf("%w: failed to set pending reschedule: %v", ErrInternal, err)
		}

		resp = &Response{
			BookingID:          booking.ID,
			Status:             StatusAwaitingPayment,
			NewDate:            req.NewDate,
			NewStartTime:       req.NewStartTime,
			EmployeeID:         employee.ID,
			RescheduleFee:      fee,
			RescheduleAttempts: booking.RescheduleAttempts,
			PaymentOrderID:     &order.OrderID,
			PaymentURL:         &order.PaymentURL,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking=%d -> %s %s, status=%s",
		resp.BookingID, resp.NewDate.Format(domain.DateFormat), resp.NewStartTime, resp.Status)

	// 6. Уведомление о применённом переносе; для платного — после оплаты
	if resp.Status == StatusRescheduled && policy.NotifyOnReschedule {
		uc.notifier.SendBestEffort(ctx, notifyservice.Notification{
			UserID:    booking.UserID,
			BookingID: booking.ID,
			Event:     "booking_rescheduled",
			Message:   fmt.Sprintf("Визит перенесён на %s %s", resp.NewDate.Format(domain.DateFormat), resp.NewStartTime),
		})
	}

	return resp, nil
}

// resolvePolicy возвращает политику бронирования; для старых записей
// без policy_id используется действующая политика
func (uc *UseCase) resolvePolicy(ctx context.Context, b *domain.Booking) (*domain.BookingPolicy, error) {
	if b.PolicyID != nil {
		p, err := uc.policyRepo.GetByID(ctx, *b.PolicyID)
		if err == nil {
			return p, nil
		}
		uc.logger.Warn("RescheduleBooking: policy id=%d lookup failed, falling back to active: %v", *b.PolicyID, err)
	}

	p, err := uc.policyRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	return p, nil
}
