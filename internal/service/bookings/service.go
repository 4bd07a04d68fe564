package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
	bookingRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/booking"
	"github.com/Sohelnm1/HCS-BookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
// Изменяющие операции (создание, отмена, перенос) живут в usecase-слое:
// здесь только выдача данных с проверкой прав доступа
type Service struct {
	bookingRepo BookingRepository
	invoiceRepo InvoiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	invoiceRepo InvoiceRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования; администратор — любые
func (s *Service) GetByID(ctx context.Context, id, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID && !isAdmin {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	filter := domain.UserBookingsFilter{UserID: req.UserID}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByUser(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetEmployeeBookings получает бронирования сотрудника на дату
// Административная операция: права проверяет вызывающая сторона
func (s *Service) GetEmployeeBookings(ctx context.Context, req *models.GetEmployeeBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetEmployeeBookings: fetching bookings for employee=%d, date=%s",
		req.EmployeeID, req.Date.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.GetByEmployeesAndDate(ctx, domain.EmployeeDayFilter{
		EmployeeIDs: []int64{req.EmployeeID},
		Date:        req.Date,
	})
	if err != nil {
		s.logger.Error("GetEmployeeBookings: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: GetEmployeeBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetInvoices получает счета бронирования с проверкой прав доступа
func (s *Service) GetInvoices(ctx context.Context, bookingID, userID int64, isAdmin bool) ([]models.InvoiceResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetInvoices - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID && !isAdmin {
		return nil, ErrAccessDenied
	}

	invoices, err := s.invoiceRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetInvoices: repository error for booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetInvoices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainInvoices(invoices), nil
}
