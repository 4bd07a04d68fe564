package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/cancel_booking"
	confirmPaymentHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/get_booking"
	getBookingInvoicesHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/get_booking_invoices"
	getEmployeeBookingsHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/get_employee_bookings"
	getScheduleConfigHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/get_schedule_config"
	getUserBookingsHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/get_user_bookings"
	rescheduleBookingHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/reschedule_booking"
	updateScheduleConfigHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/update_schedule_config"
	validateCouponHandler "github.com/Sohelnm1/HCS-BookingService/internal/api/handlers/validate_coupon"
	"github.com/Sohelnm1/HCS-BookingService/internal/api/middleware"
	"github.com/Sohelnm1/HCS-BookingService/internal/config"
	scheduleCache "github.com/Sohelnm1/HCS-BookingService/internal/infra/cache/schedule"
	bookingRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/catalog"
	couponRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/coupon"
	invoiceRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/invoice"
	policyRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/policy"
	scheduleRepo "github.com/Sohelnm1/HCS-BookingService/internal/infra/storage/schedule"
	identityClient "github.com/Sohelnm1/HCS-BookingService/internal/integrations/identityservice"
	notifyClient "github.com/Sohelnm1/HCS-BookingService/internal/integrations/notifyservice"
	paymentClient "github.com/Sohelnm1/HCS-BookingService/internal/integrations/paymentgateway"
	bookingsService "github.com/Sohelnm1/HCS-BookingService/internal/service/bookings"
	scheduleService "github.com/Sohelnm1/HCS-BookingService/internal/service/schedule"
	cancelBookingUC "github.com/Sohelnm1/HCS-BookingService/internal/usecase/cancel_booking"
	confirmPaymentUC "github.com/Sohelnm1/HCS-BookingService/internal/usecase/confirm_payment"
	createBookingUC "github.com/Sohelnm1/HCS-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/Sohelnm1/HCS-BookingService/internal/usecase/get_available_slots"
	noshowSweepUC "github.com/Sohelnm1/HCS-BookingService/internal/usecase/noshow_sweep"
	rescheduleBookingUC "github.com/Sohelnm1/HCS-BookingService/internal/usecase/reschedule_booking"
	validateCouponUC "github.com/Sohelnm1/HCS-BookingService/internal/usecase/validate_coupon"
	"github.com/Sohelnm1/HCS-BookingService/pkg/dbmetrics"
	"github.com/Sohelnm1/HCS-BookingService/pkg/logger"
	"github.com/Sohelnm1/HCS-BookingService/pkg/metrics"
	"github.com/Sohelnm1/HCS-BookingService/pkg/simpletxmanager"
	"github.com/Sohelnm1/HCS-BookingService/pkg/txmanager"
)

func main() {
	// Подхватываем .env (секреты: пароль БД, ключ платёжного шлюза)
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting HCS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Подключаемся к Redis (кеш конфигураций расписания)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	// Инициализируем интеграционных клиентов
	payments := paymentClient.NewClient(
		cfg.PaymentGateway.URL,
		cfg.PaymentGateway.APIKey,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	notifier := notifyClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	identity := identityClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PaymentGateway=%s, NotifyService=%s, IdentityService=%s)",
		cfg.PaymentGateway.URL, cfg.NotifyService.URL, cfg.IdentityService.URL)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		catalogRepository  *catalogRepo.Repository
		couponRepository   *couponRepo.Repository
		invoiceRepository  *invoiceRepo.Repository
		policyRepository   *policyRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		couponRepository = couponRepo.NewRepository(wrappedDB)
		invoiceRepository = invoiceRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		couponRepository = couponRepo.NewRepository(db)
		invoiceRepository = invoiceRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш конфигураций расписания
	configCache := scheduleCache.NewCache(
		redisClient,
		time.Duration(cfg.Redis.ScheduleTTLSeconds)*time.Second,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, invoiceRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, configCache, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		scheduleSvc,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		policyRepository,
		couponRepository,
		invoiceRepository,
		scheduleSvc,
		identity,
		payments,
		notifier,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		policyRepository,
		invoiceRepository,
		payments,
		notifier,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		policyRepository,
		scheduleSvc,
		payments,
		notifier,
		txMgr,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		invoiceRepository,
		scheduleSvc,
		payments,
		notifier,
		txMgr,
		log,
	)
	validateCouponUseCase := validateCouponUC.NewUseCase(couponRepository, bookingRepository, log)
	noshowSweepUseCase := noshowSweepUC.NewUseCase(bookingRepository, policyRepository, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	validateCoupon := validateCouponHandler.NewHandler(validateCouponUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBookingInvoices := getBookingInvoicesHandler.NewHandler(bookingSvc, log)
	getEmployeeBookings := getEmployeeBookingsHandler.NewHandler(bookingSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodPost)

	// Колбэк платёжного шлюза (статус ордера перепроверяется у шлюза)
	api.HandleFunc("/payments/callback", confirmPayment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// История бронирований пользователя
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Счета бронирования
	protected.HandleFunc("/bookings/{bookingId}/invoices", getBookingInvoices.Handle).Methods(http.MethodGet)

	// --- Операции записи (с ограничением частоты) ---
	writes := api.PathPrefix("").Subrouter()
	writes.Use(middleware.Auth)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		writes.Use(limiter.Limit)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Создание бронирования
	writes.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	writes.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Перенос бронирования
	writes.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// Предварительная проверка купона
	writes.HandleFunc("/coupons/validate", validateCoupon.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireAdmin)

	// Бронирования сотрудника на дату
	admin.HandleFunc("/employees/{employeeId}/bookings", getEmployeeBookings.Handle).Methods(http.MethodGet)

	// Конфигурация расписания
	admin.HandleFunc("/schedule-configs/{configId}", getScheduleConfig.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule-configs/{configId}", updateScheduleConfig.Handle).Methods(http.MethodPut)

	// Фоновая разметка неявок
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Sweep.Enabled {
		go runNoShowSweep(sweepCtx, noshowSweepUseCase, time.Duration(cfg.Sweep.IntervalMinutes)*time.Minute, log)
		log.Info("No-show sweep started (interval=%dm)", cfg.Sweep.IntervalMinutes)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopSweep()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// runNoShowSweep периодически помечает неявки по завершённым слотам
func runNoShowSweep(ctx context.Context, uc *noshowSweepUC.UseCase, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := uc.Execute(ctx)
			if err != nil {
				log.Error("NoShowSweep: sweep failed: %v", err)
				continue
			}
			if result.Marked > 0 {
				log.Info("NoShowSweep: scanned=%d, marked=%d", result.Scanned, result.Marked)
			}
		}
	}
}
