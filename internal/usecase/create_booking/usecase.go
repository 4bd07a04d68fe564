package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	catalogRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/catalog"
	couponRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/coupon"
	identityClient "github.com/Sohelnm1/HCS-BookingService/internal/integrations/identityservice"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/notifyservice"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/paymentgateway"
	"github.com/Sohelnm1/HCS-BookingService/internal/pricing"
	"github.com/Sohelnm1/HCS-BookingService/internal/scheduling"

	"github.com/google/uuid"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	catalogRepo     CatalogRepository
	policyRepo      PolicyRepository
	couponRepo      CouponRepository
	invoiceRepo     InvoiceRepository
	scheduleService ScheduleService
	identity        IdentityClient
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
	couponRepo CouponRepository,
	invoiceRepo InvoiceRepository,
	scheduleService ScheduleService,
	identity IdentityClient,
	payments PaymentClient,
	notifier NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		catalogRepo:     catalogRepo,
		policyRepo:      policyRepo,
		couponRepo:      couponRepo,
		invoiceRepo:     invoiceRepo,
		scheduleService: scheduleService,
		identity:        identity,
		payments:        payments,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности слота и вставка выполняются в одной сериализуемой
// транзакции с блокировкой бронирований сотрудников на дату (FOR UPDATE):
// два конкурирующих запроса на последний слот не могут пройти оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	pref, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что телефон пользователя подтверждён
	verified, err := uc.identity.IsPhoneVerified(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, identityClient.ErrServiceDegraded) {
			uc.logger.Error("CreateBooking: identity service degraded for user=%d: %v", req.UserID, err)
			return nil, ErrIdentityUnavailable
		}
		uc.logger.Error("CreateBooking: identity check failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: identity check: %v", ErrInternal, err)
	}
	if !verified {
		uc.logger.Warn("CreateBooking: phone not verified for user=%d", req.UserID)
		return nil, ErrPhoneNotVerified
	}

	// 4. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceInactive
	}

	// 5. Загружаем тариф и доп. услуги, считаем длительность и базовую цену
	tier, lines, err := uc.loadPricingInputs(ctx, service, req)
	if err != nil {
		return nil, err
	}

	duration, err := scheduling.ResolveDuration(service, tier, lines)
	if err != nil {
		uc.logger.Warn("CreateBooking: duration resolution failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	basePrice := service.Price
	if tier != nil {
		basePrice = tier.Price
	}

	// 6. Купон (если указан)
	var coupon *domain.Coupon
	if req.CouponCode != nil {
		coupon, err = uc.couponRepo.GetByCode(ctx, *req.CouponCode)
		if err != nil {
			if errors.Is(err, couponRepo.ErrCouponNotFound) {
				uc.logger.Warn("CreateBooking: coupon %s not found", *req.CouponCode)
				return nil, ErrCouponInvalid
			}
			return nil, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
		}
	}

	// 7. Действующая политика отмены фиксируется в бронировании
	policy, err := uc.policyRepo.GetActive(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get active policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get active policy: %v", ErrInternal, err)
	}

	// 8. Конфигурация расписания услуги
	cfg, err := uc.scheduleService.GetConfigForService(ctx, service)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// 9. Доплата за предпочтение по полу
	var genderFee float64
	if pref.HasSurcharge() {
		genderFee = service.GenderPreferenceFee
	}

	var result *domain.Booking
	var breakdown *pricing.Breakdown
	var invoiceNumber string

	// 10. Сериализуемая транзакция: перепроверка слота + вставка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 10.1. Запрошенное время должно лежать на сетке слотов
		candidates, err := scheduling.GenerateSlots(cfg, req.Date, now, duration)
		if err != nil {
			if errors.Is(err, scheduling.ErrDateNotBookable) {
				uc.logger.Warn("CreateBooking: date not bookable: %v", err)
				return fmt.Errorf("%w: %v", ErrDateNotBookable, err)
			}
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}
		if !slotOnGrid(req.StartTime, candidates) {
			uc.logger.Warn("CreateBooking: time %s is not on the slot grid", req.StartTime)
			return ErrInvalidTimeSlot
		}

		// 10.2. Пул сотрудников под предпочтение
		allEmployees, err := uc.catalogRepo.GetEligibleEmployees(txCtx, req.ServiceID)
		if err != nil {
			return fmt.Errorf("%w: failed to get employees: %v", ErrInternal, err)
		}
		employeePtrs := make([]*domain.Employee, 0, len(allEmployees))
		for i := range allEmployees {
			employeePtrs = append(employeePtrs, &allEmployees[i])
		}

		eligible, err := scheduling.FilterEligible(employeePtrs, pref)
		if err != nil {
			if errors.Is(err, scheduling.ErrNoEligibleStaff) {
				return ErrNoEligibleStaff
			}
			return fmt.Errorf("%w: failed to filter employees: %v", ErrInternal, err)
		}

		// 10.3. Блокируем бронирования сотрудников на дату
		employeeIDs := make([]int64, 0, len(eligible))
		for _, e := range eligible {
			employeeIDs = append(employeeIDs, e.ID)
		}
		bookings, err := uc.bookingRepo.GetByEmployeesAndDate(txCtx, domain.EmployeeDayFilter{
			EmployeeIDs: employeeIDs,
			Date:        req.Date,
			ForUpdate:   true,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 10.4. Детерминированно выбираем свободного сотрудника
		employee, err := scheduling.SelectEmployee(eligible, req.StartTime, duration, cfg.BufferTimeMinutes, bookings, nil)
		if err != nil {
			return fmt.Errorf("%w: failed to select employee: %v", ErrInternal, err)
		}
		if employee == nil {
			uc.logger.Warn("CreateBooking: slot %s on %s is taken by all eligible employees",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 10.5. Расчёт стоимости (купон валидируется внутри)
		var couponUsage int
		if coupon != nil {
			couponUsage, err = uc.bookingRepo.CountUserCouponUsage(txCtx, coupon.ID, req.UserID)
			if err != nil {
				return fmt.Errorf("%w: failed to count coupon usage: %v", ErrInternal, err)
			}
		}

		breakdown, err = pricing.Calculate(pricing.Input{
			ServiceID:           req.ServiceID,
			BasePrice:           basePrice,
			Extras:              toPricingLines(lines),
			GenderPreferenceFee: genderFee,
			Coupon:              coupon,
			CouponUserUsage:     couponUsage,
			Now:                 now,
		})
		if err != nil {
			if errors.Is(err, pricing.ErrCouponInvalid) {
				uc.logger.Warn("CreateBooking: coupon rejected: %v", err)
				return ErrCouponInvalid
			}
			return fmt.Errorf("%w: failed to calculate price: %v", ErrInternal, err)
		}

		// 10.6. Создаем бронирование
		booking := &domain.Booking{
			UserID:                  req.UserID,
			ServiceID:               req.ServiceID,
			PricingTierID:           req.PricingTierID,
			EmployeeID:              &employee.ID,
			AppointmentDate:         req.Date,
			StartTime:               req.StartTime,
			DurationMinutes:         duration,
			TotalAmount:             breakdown.TotalAmount,
			Status:                  domain.StatusPending,
			PaymentStatus:           domain.PaymentPending,
			GenderPreference:        pref,
			PolicyID:                &policy.ID,
			ReschedulePaymentStatus: domain.RescheduleNotRequired,
			Extras:                  toBookingExtras(lines),
			Notes:                   req.Notes,
		}
		if coupon != nil {
			booking.CouponID = &coupon.ID
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 10.7. Снимок счёта
		invoiceNumber = "INV-" + uuid.NewString()
		if _, err := uc.invoiceRepo.Create(txCtx, &domain.Invoice{
			Number:         invoiceNumber,
			BookingID:      created.ID,
			Kind:           domain.InvoiceBooking,
			BaseAmount:     breakdown.BaseAmount,
			ExtrasAmount:   breakdown.ExtrasAmount,
			GenderFee:      breakdown.GenderFee,
			CouponCode:     breakdown.CouponCode,
			DiscountAmount: breakdown.DiscountAmount,
			FeeAmount:      breakdown.FeeAmount,
			TotalAmount:    breakdown.TotalAmount,
		}); err != nil {
			return fmt.Errorf("%w: failed to create invoice: %v", ErrInternal, err)
		}

		// 10.8. Инкремент счётчика купона в той же транзакции
		if coupon != nil {
			if err := uc.couponRepo.IncrementUsage(txCtx, coupon.ID); err != nil {
				if errors.Is(err, couponRepo.ErrUsageLimitReached) {
					return ErrCouponInvalid
				}
				return fmt.Errorf("%w: failed to increment coupon usage: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, employee=%d, total=%.2f",
		result.ID, *result.EmployeeID, result.TotalAmount)

	// 11. Платёжный ордер после коммита: слот уже удержан pending-бронированием
	resp := uc.buildResponse(result, breakdown, invoiceNumber)
	if breakdown.TotalAmount > 0 {
		order, err := uc.payments.CreateOrder(ctx, paymentgateway.CreateOrderRequest{
			BookingID: result.ID,
			UserID:    result.UserID,
			Amount:    breakdown.TotalAmount,
			Currency:  "INR",
			Purpose:   "booking",
		})
		if err != nil {
			// Бронирование остаётся pending; клиент может повторить оплату
			uc.logger.Error("CreateBooking: failed to create payment order for booking=%d: %v", result.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
		}
		if err := uc.bookingRepo.SetPaymentOrder(ctx, result.ID, order.OrderID); err != nil {
			uc.logger.Error("CreateBooking: failed to attach payment order %s to booking=%d: %v",
				order.OrderID, result.ID, err)
			return nil, fmt.Errorf("%w: failed to attach payment order: %v", ErrInternal, err)
		}
		resp.PaymentOrderID = &order.OrderID
		resp.PaymentURL = &order.PaymentURL
	}

	// 12. Уведомление — best effort
	uc.notifier.SendBestEffort(ctx, notifyservice.Notification{
		UserID:    result.UserID,
		BookingID: result.ID,
		Event:     "booking_created",
		Message:   fmt.Sprintf("Визит запланирован на %s %s", resp.AppointmentDate.Format(domain.DateFormat), resp.StartTime),
	})

	return resp, nil
}

// loadPricingInputs загружает тариф и доп. услуги запроса
func (uc *UseCase) loadPricingInputs(ctx context.Context, service *domain.Service, req *Request) (*domain.PricingTier, []scheduling.ExtraLine, error) {
	var tier *domain.PricingTier
	if req.PricingTierID != nil {
		t, err := uc.catalogRepo.GetPricingTier(ctx, *req.PricingTierID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrTierNotFound) {
				return nil, nil, ErrTierNotFound
			}
			return nil, nil, fmt.Errorf("%w: failed to get pricing tier: %v", ErrInternal, err)
		}
		tier = t
	}

	if len(req.Extras) == 0 {
		return tier, nil, nil
	}

	ids := make([]int64, 0, len(req.Extras))
	for _, sel := range req.Extras {
		ids = append(ids, sel.ExtraID)
	}

	extras, err := uc.catalogRepo.GetExtras(ctx, ids)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrExtraNotFound) {
			return nil, nil, ErrExtraNotFound
		}
		return nil, nil, fmt.Errorf("%w: failed to get extras: %v", ErrInternal, err)
	}

	lines := make([]scheduling.ExtraLine, 0, len(req.Extras))
	for i := range req.Extras {
		lines = append(lines, scheduling.ExtraLine{
			Extra:    &extras[i],
			Quantity: req.Extras[i].Quantity,
		})
	}

	return tier, lines, nil
}

// toPricingLines конвертирует строки доп. услуг в позиции калькулятора
func toPricingLines(lines []scheduling.ExtraLine) []pricing.Line {
	out := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, pricing.Line{PriceEach: l.Extra.Price, Quantity: l.Quantity})
	}
	return out
}

// toBookingExtras фиксирует цены и длительности доп. услуг на момент бронирования
func toBookingExtras(lines []scheduling.ExtraLine) []domain.BookingExtra {
	out := make([]domain.BookingExtra, 0, len(lines))
	for _, l := range lines {
		out = append(out, domain.BookingExtra{
			ExtraID:         l.Extra.ID,
			Quantity:        l.Quantity,
			PriceEach:       l.Extra.Price,
			DurationMinutes: l.Extra.TotalMinutes(),
		})
	}
	return out
}

func (uc *UseCase) buildResponse(b *domain.Booking, breakdown *pricing.Breakdown, invoiceNumber string) *Response {
	return &Response{
		ID:              b.ID,
		UserID:          b.UserID,
		ServiceID:       b.ServiceID,
		EmployeeID:      *b.EmployeeID,
		AppointmentDate: b.AppointmentDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		BaseAmount:      breakdown.BaseAmount,
		ExtrasAmount:    breakdown.ExtrasAmount,
		GenderFee:       breakdown.GenderFee,
		DiscountAmount:  breakdown.DiscountAmount,
		TotalAmount:     breakdown.TotalAmount,
		InvoiceNumber:   invoiceNumber,
		CreatedAt:       b.CreatedAt,
	}
}
