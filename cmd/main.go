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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	activateSubscriptionHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/activate_subscription"
	addExceptionHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/add_exception"
	cancelBookingHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/cancel_booking"
	cancelByTokenHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/cancel_by_token"
	createBookingHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_booking"
	getCompanyBookingsHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_company_bookings"
	getScheduleHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/get_schedule"
	removeExceptionHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/remove_exception"
	toggleHolidayHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/toggle_holiday"
	updateTemplateDayHandler "github.com/m04kA/SalonBookingService/internal/api/handlers/update_template_day"
	"github.com/m04kA/SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SalonBookingService/internal/app"
	"github.com/m04kA/SalonBookingService/internal/config"
	bookingRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SalonBookingService/internal/infra/storage/canceltoken"
	holidayRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/holiday"
	scheduleRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/schedule"
	subscriptionRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/subscription"
	companyServiceClient "github.com/m04kA/SalonBookingService/internal/integrations/companyservice"
	holidayFeedClient "github.com/m04kA/SalonBookingService/internal/integrations/holidayfeed"
	loyaltyServiceClient "github.com/m04kA/SalonBookingService/internal/integrations/loyaltyservice"
	notifyServiceClient "github.com/m04kA/SalonBookingService/internal/integrations/notifyservice"
	availabilityService "github.com/m04kA/SalonBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SalonBookingService/internal/service/bookings"
	eligibilityService "github.com/m04kA/SalonBookingService/internal/service/eligibility"
	scheduleService "github.com/m04kA/SalonBookingService/internal/service/schedule"
	subscriptionsService "github.com/m04kA/SalonBookingService/internal/service/subscriptions"
	createBookingUC "github.com/m04kA/SalonBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SalonBookingService/internal/worker/sweeper"
	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SalonBookingService/pkg/logger"
	"github.com/m04kA/SalonBookingService/pkg/metrics"
	"github.com/m04kA/SalonBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SalonBookingService/pkg/txmanager"
)

func main() {
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

	log.Info("Starting SalonBookingService...")
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

	// Применяем миграции
	migrator, err := app.NewMigrator(db, cfg.Booking.MigrationsDir)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Migrations applied, schema version=%d", version)
	}

	// Подключаемся к Redis (хранилище гостевых токенов отмены)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционных клиентов
	companyClient := companyServiceClient.NewClient(
		cfg.CompanyService.URL,
		time.Duration(cfg.CompanyService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	loyaltyClient := loyaltyServiceClient.NewClient(
		cfg.LoyaltyService.URL,
		time.Duration(cfg.LoyaltyService.Timeout)*time.Second,
		log,
	)
	holidayFeed := holidayFeedClient.NewClient(
		cfg.HolidayFeed.URL,
		time.Duration(cfg.HolidayFeed.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CompanyService=%s, NotifyService=%s, LoyaltyService=%s, HolidayFeed=%s)",
		cfg.CompanyService.URL, cfg.NotifyService.URL, cfg.LoyaltyService.URL, cfg.HolidayFeed.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		holidayRepository      *holidayRepo.Repository
		subscriptionRepository *subscriptionRepo.Repository
	)

	// Интерфейс transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		holidayRepository = holidayRepo.NewRepository(wrappedDB)
		subscriptionRepository = subscriptionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		holidayRepository = holidayRepo.NewRepository(db)
		subscriptionRepository = subscriptionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	tokenStore := canceltoken.NewStore(redisClient)

	// Инициализируем сервисы
	eligibilitySvc := eligibilityService.NewService(subscriptionRepository, log)
	availabilitySvc := availabilityService.NewService(
		scheduleRepository,
		holidayRepository,
		bookingRepository,
		eligibilitySvc,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		companyClient,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		tokenStore,
		notifyClient,
		log,
	)
	subscriptionSvc := subscriptionsService.NewService(subscriptionRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		companyClient,
		tokenStore,
		notifyClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilitySvc,
		companyClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	cancelByToken := cancelByTokenHandler.NewHandler(bookingSvc, log)
	getCompanyBookings := getCompanyBookingsHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateTemplateDay := updateTemplateDayHandler.NewHandler(scheduleSvc, log)
	addException := addExceptionHandler.NewHandler(scheduleSvc, log)
	removeException := removeExceptionHandler.NewHandler(scheduleSvc, log)
	activateSubscription := activateSubscriptionHandler.NewHandler(subscriptionSvc, log)
	toggleHoliday := toggleHolidayHandler.NewHandler(holidayRepository, log)

	// Запускаем фоновые задачи
	var sweep *sweeper.Sweeper
	if cfg.Sweeper.Enabled {
		var sweepMetrics sweeper.MetricsCollector
		if cfg.Metrics.Enabled {
			sweepMetrics = metricsCollector
		}

		sweep = sweeper.New(
			sweeper.Config{
				Interval:            time.Duration(cfg.Sweeper.IntervalSeconds) * time.Second,
				HolidaySyncInterval: time.Duration(cfg.Sweeper.HolidaySyncHours) * time.Hour,
				CompletionBatchSize: uint64(cfg.Sweeper.CompletionBatchSize),
			},
			bookingRepository,
			subscriptionRepository,
			holidayRepository,
			loyaltyClient,
			holidayFeed,
			sweepMetrics,
			log,
		)
		sweep.Start(context.Background())
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты мастера на дату (роль берётся из заголовков, если есть)
	api.HandleFunc("/companies/{companyId}/employees/{employeeId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Гостевая запись без аккаунта
	api.HandleFunc("/guest/bookings", createBooking.HandleGuest).Methods(http.MethodPost)

	// Гостевая отмена по одноразовому токену
	api.HandleFunc("/guest/cancellations/{token}", cancelByToken.Handle).Methods(http.MethodPost)

	// ============================================================
	// INTERNAL ROUTES (для внутренних сервисов, закрыты на уровне сети)
	// ============================================================

	// Активация абонемента по событию оплаты
	api.HandleFunc("/internal/subscriptions/activate", activateSubscription.Handle).Methods(http.MethodPost)

	// Ручное управление праздничным календарём
	api.HandleFunc("/internal/holidays/{date}", toggleHoliday.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Управление компанией (для персонала) ---
	// Список записей компании
	protected.HandleFunc("/companies/{companyId}/bookings", getCompanyBookings.Handle).Methods(http.MethodGet)

	// Расписание мастера: шаблон и исключения
	protected.HandleFunc("/companies/{companyId}/employees/{employeeId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{companyId}/employees/{employeeId}/schedule/{weekday}",
		updateTemplateDay.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/companies/{companyId}/employees/{employeeId}/exceptions",
		addException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/companies/{companyId}/employees/{employeeId}/exceptions",
		removeException.Handle).Methods(http.MethodDelete)

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

	// Останавливаем фоновые задачи
	if sweep != nil {
		sweep.Stop()
	}

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
