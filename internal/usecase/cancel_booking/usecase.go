package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	bookingRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/booking"
	"github.com/Sohelnm1/HCS-BookingService/internal/integrations/notifyservice"

	"github.com/google/uuid"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	policyRepo   PolicyRepository
	invoiceRepo  InvoiceRepository
	payments     PaymentClient
	notifier     NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	policyRepo PolicyRepository,
	invoiceRepo InvoiceRepository,
	payments PaymentClient,
	notifier NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		policyRepo:   policyRepo,
		invoiceRepo:  invoiceRepo,
		payments:     payments,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования.
// Комиссия и возврат считаются по политике, зафиксированной при создании
// бронирования; отмена и снимок счёта пишутся в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%d, admin=%v, force=%v",
		req.BookingID, req.ActorID, req.IsAdmin, req.Force)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if req.Force && !req.IsAdmin {
		return nil, fmt.Errorf("%w: force cancellation requires admin", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var resp *Response
	var booking *domain.Booking
	var policy *domain.BookingPolicy

	// 3. Транзакция: оценка политики + условный переход статуса + счёт
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.1. Права: владелец или администратор
		if booking.UserID != req.ActorID && !req.IsAdmin {
			uc.logger.Warn("CancelBooking: access denied for actor=%d to booking=%d", req.ActorID, req.BookingID)
			return ErrAccessDenied
		}

		// 3.2. Политика, действовавшая при создании
		policy, err = uc.resolvePolicy(txCtx, booking)
		if err != nil {
			return err
		}

		appointmentAt, err := booking.AppointmentAt(now.Location())
		if err != nil {
			return fmt.Errorf("%w: failed to compute appointment time: %v", ErrInternal, err)
		}

		// 3.3. Оценка отмены: принудительная отмена администратором
		// пропускает оконные проверки и логируется отдельно
		adminOverride := req.IsAdmin && req.Force
		if adminOverride {
			uc.logger.Warn("CancelBooking: ADMIN FORCE CANCEL booking=%d by admin=%d", req.BookingID, req.ActorID)
		}

		decision, err := policy.EvaluateCancellation(booking, appointmentAt, now, adminOverride)
		if err != nil {
			if errors.Is(err, domain.ErrCancellationNotAllowed) {
				uc.logger.Warn("CancelBooking: cancellation not allowed for booking=%d: %v", req.BookingID, err)
				return ErrCancellationNotAllowed
			}
			return fmt.Errorf("%w: failed to evaluate policy: %v", ErrInternal, err)
		}

		// 3.4. Условный переход статуса: гонка двух отмен схлопывается здесь
		if err := uc.bookingRepo.Cancel(txCtx, req.BookingID, req.Reason, decision.Fee, decision.Refund, req.ActorID); err != nil {
			if errors.Is(err, bookingRepo.ErrInvalidState) {
				return ErrCancellationNotAllowed
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 3.5. Снимок счёта отмены
		invoiceNumber := "INV-" + uuid.NewString()
		if _, err := uc.invoiceRepo.Create(txCtx, &domain.Invoice{
			Number:      invoiceNumber,
			BookingID:   booking.ID,
			Kind:        domain.InvoiceCancellation,
			FeeAmount:   decision.Fee,
			TotalAmount: decision.Fee,
		}); err != nil {
			return fmt.Errorf("%w: failed to create invoice: %v", ErrInternal, err)
		}

		resp = &Response{
			BookingID:       booking.ID,
			Status:          string(domain.StatusCancelled),
			CancellationFee: decision.Fee,
			RefundAmount:    decision.Refund,
			CreditIssued:    decision.CreditLedger,
			InvoiceNumber:   invoiceNumber,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking=%d cancelled, fee=%.2f, refund=%.2f",
		resp.BookingID, resp.CancellationFee, resp.RefundAmount)

	// 4. Возврат средств — после коммита, best effort: отмена уже
	// зафиксирована, неуспех возврата разбирается вручную по логу
	if resp.RefundAmount > 0 && booking.PaymentStatus == domain.PaymentPaid && booking.PaymentOrderID != nil {
		if err := uc.payments.CreateRefund(ctx, *booking.PaymentOrderID, resp.RefundAmount); err != nil {
			uc.logger.Error("CancelBooking: refund failed for booking=%d, order=%s, amount=%.2f: %v",
				booking.ID, *booking.PaymentOrderID, resp.RefundAmount, err)
		}
	}

	// 5. Уведомление
	if policy.NotifyOnCancel {
		uc.notifier.SendBestEffort(ctx, notifyservice.Notification{
			UserID:    booking.UserID,
			BookingID: booking.ID,
			Event:     "booking_cancelled",
			Message:   fmt.Sprintf("Бронирование отменено, возврат %.2f", resp.RefundAmount),
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
		uc.logger.Warn("CancelBooking: policy id=%d lookup failed, falling back to active: %v", *b.PolicyID, err)
	}

	p, err := uc.policyRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	return p, nil
}
