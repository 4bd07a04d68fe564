package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	bookingRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/booking"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/notifyservice"
	"github.com/Sohelnm1/HCS-BookingService/internal/scheduling"

	"github.com/google/uuid"
)

// UseCase use case обработки подтверждения оплаты.
// Колбэк шлюза не является доверенным: статус платежа всегда
// перепроверяется прямым запросом к шлюзу
type UseCase struct {
	bookingRepo     BookingRepository
	catalogRepo     CatalogRepository
	invoiceRepo     InvoiceRepository
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
	invoiceRepo InvoiceRepository,
	scheduleService ScheduleService,
	payments PaymentClient,
	notifier NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		catalogRepo:     catalogRepo,
		invoiceRepo:     invoiceRepo,
		scheduleService: scheduleService,
		payments:        payments,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подтверждения оплаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking=%d, order=%s", req.BookingID, req.OrderID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.OrderID == "" {
		return nil, fmt.Errorf("%w: orderID is required", ErrInvalidInput)
	}

	// 2. Перепроверяем платёж у шлюза
	result, err := uc.payments.VerifyPayment(ctx, req.OrderID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: verification failed for order=%s: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: payment verification: %v", ErrInternal, err)
	}

	var resp *Response
	var booking *domain.Booking
	var event string

	// 3. Транзакция: переход статуса по результату платежа
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.PaymentOrderID == nil || *booking.PaymentOrderID != req.OrderID {
			uc.logger.Warn("ConfirmPayment: order %s does not match booking=%d", req.OrderID, req.BookingID)
			return ErrOrderMismatch
		}

		// 3.1. Оплата переноса
		if booking.ReschedulePaymentStatus == domain.ReschedulePending {
			resp, event, err = uc.handleReschedulePayment(txCtx, booking, result.Paid(), result.Amount)
			return err
		}

		// 3.2. Первичная оплата
		resp, event, err = uc.handleInitialPayment(txCtx, booking, result.Paid())
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmPayment: booking=%d -> status=%s, payment=%s, reschedule=%s",
		resp.BookingID, resp.Status, resp.PaymentStatus, resp.ReschedulePaymentStatus)

	// 4. Уведомление
	if event != "" {
		uc.notifier.SendBestEffort(ctx, notifyservice.Notification{
			UserID:    booking.UserID,
			BookingID: booking.ID,
			Event:     event,
		})
	}

	return resp, nil
}

// handleInitialPayment обрабатывает первичную оплату pending-бронирования
func (uc *UseCase) handleInitialPayment(ctx context.Context, booking *domain.Booking, paid bool) (*Response, string, error) {
	if !paid {
		if err := uc.bookingRepo.MarkPaymentFailed(ctx, booking.ID); err != nil && !errors.Is(err, bookingRepo.ErrInvalidState) {
			return nil, "", fmt.Errorf("%w: failed to mark payment failed: %v", ErrInternal, err)
		}
		return &Response{
			BookingID:               booking.ID,
			Status:                  string(booking.Status),
			PaymentStatus:           string(domain.PaymentFailed),
			ReschedulePaymentStatus: string(booking.ReschedulePaymentStatus),
		}, "", nil
	}

	if err := uc.bookingRepo.ConfirmPayment(ctx, booking.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrInvalidState) {
			// Повторная доставка колбэка: уже подтверждено — успех
			if booking.Status == domain.StatusConfirmed && booking.PaymentStatus == domain.PaymentPaid {
				uc.logger.Info("ConfirmPayment: booking=%d already confirmed, duplicate callback", booking.ID)
				return &Response{
					BookingID:               booking.ID,
					Status:                  string(domain.StatusConfirmed),
					PaymentStatus:           string(domain.PaymentPaid),
					ReschedulePaymentStatus: string(booking.ReschedulePaymentStatus),
				}, "", nil
			}
			return nil, "", ErrInvalidState
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, "", ErrBookingNotFound
		}
		return nil, "", fmt.Errorf("%w: failed to confirm payment: %v", ErrInternal, err)
	}

	return &Response{
		BookingID:               booking.ID,
		Status:                  string(domain.StatusConfirmed),
		PaymentStatus:           string(domain.PaymentPaid),
		ReschedulePaymentStatus: string(booking.ReschedulePaymentStatus),
	}, "booking_confirmed", nil
}

// handleReschedulePayment обрабатывает оплату сбора за перенос.
// Удержанный слот перепроверяется: между удержанием и оплатой его мог
// занять другой клиент — тогда перенос отклоняется, сбор возвращается,
// бронирование остаётся на исходном слоте
func (uc *UseCase) handleReschedulePayment(ctx context.Context, booking *domain.Booking, paid bool, feeAmount float64) (*Response, string, error) {
	if !paid {
		if err := uc.bookingRepo.FailPendingReschedule(ctx, booking.ID); err != nil && !errors.Is(err, bookingRepo.ErrInvalidState) {
			return nil, "", fmt.Errorf("%w: failed to reject reschedule: %v", ErrInternal, err)
		}
		return &Response{
			BookingID:               booking.ID,
			Status:                  string(booking.Status),
			PaymentStatus:           string(booking.PaymentStatus),
			ReschedulePaymentStatus: string(domain.RescheduleFailed),
		}, "", nil
	}

	if booking.PendingDate == nil || booking.PendingStartTime == nil || booking.PendingEmployeeID == nil {
		return nil, "", fmt.Errorf("%w: pending reschedule fields are incomplete", ErrInternal)
	}

	// Перепроверка слота под блокировкой
	free, err := uc.pendingSlotStillFree(ctx, booking)
	if err != nil {
		return nil, "", err
	}
	if !free {
		uc.logger.Warn("ConfirmPayment: reschedule slot lost for booking=%d, refunding fee %.2f", booking.ID, feeAmount)
		if err := uc.bookingRepo.FailPendingReschedule(ctx, booking.ID); err != nil && !errors.Is(err, bookingRepo.ErrInvalidState) {
			return nil, "", fmt.Errorf("%w: failed to reject reschedule: %v", ErrInternal, err)
		}
		if err := uc.payments.CreateRefund(ctx, *booking.PaymentOrderID, feeAmount); err != nil {
			uc.logger.Error("ConfirmPayment: fee refund failed for booking=%d: %v", booking.ID, err)
		}
		return nil, "", ErrSlotLost
	}

	newTotal := booking.TotalAmount + feeAmount
	if err := uc.bookingRepo.CompletePendingReschedule(ctx, booking.ID, newTotal); err != nil {
		if errors.Is(err, bookingRepo.ErrInvalidState) {
			return nil, "", ErrInvalidState
		}
		return nil, "", fmt.Errorf("%w: failed to complete reschedule: %v", ErrInternal, err)
	}

	// Снимок счёта на сбор за перенос
	if _, err := uc.invoiceRepo.Create(ctx, &domain.Invoice{
		Number:      "INV-" + uuid.NewString(),
		BookingID:   booking.ID,
		Kind:        domain.InvoiceReschedule,
		FeeAmount:   feeAmount,
		TotalAmount: feeAmount,
	}); err != nil {
		return nil, "", fmt.Errorf("%w: failed to create invoice: %v", ErrInternal, err)
	}

	return &Response{
		BookingID:               booking.ID,
		Status:                  string(booking.Status),
		PaymentStatus:           string(booking.PaymentStatus),
		ReschedulePaymentStatus: string(domain.ReschedulePaid),
	}, "booking_rescheduled", nil
}

// pendingSlotStillFree проверяет, что удержанный сотрудник всё ещё свободен
// в целевом слоте (FOR UPDATE на его бронированиях на целевую дату)
func (uc *UseCase) pendingSlotStillFree(ctx context.Context, booking *domain.Booking) (bool, error) {
	service, err := uc.catalogRepo.GetService(ctx, booking.ServiceID)
	if err != nil {
		return false, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	cfg, err := uc.scheduleService.GetConfigForService(ctx, service)
	if err != nil {
		return false, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByEmployeesAndDate(ctx, domain.EmployeeDayFilter{
		EmployeeIDs: []int64{*booking.PendingEmployeeID},
		Date:        *booking.PendingDate,
		ForUpdate:   true,
	})
	if err != nil {
		return false, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	pool := []*domain.Employee{{ID: *booking.PendingEmployeeID, IsActive: true}}
	employee, err := scheduling.SelectEmployee(pool, *booking.PendingStartTime, booking.DurationMinutes,
		cfg.BufferTimeMinutes, bookings, &booking.ID)
	if err != nil {
		return false, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}

	return employee != nil, nil
}
