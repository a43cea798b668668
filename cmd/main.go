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

	createHolidayHandler "github.com/hikari-salon/reservation-service/internal/api/handlers/create_holiday"
	createReservationHandler "github.com/hikari-salon/reservation-service/internal/api/handlers/create_reservation"
	createSpecialOpenDayHandler "github.com/hikari-salon/reservation-service/internal/api/handlers/create_special_open_day"
	deleteHolidayHandler "github.com/hikari-salon/reservation-service/internal/api/handlers/delete_holiday"
	deleteScheduleOverrideHandler "github.com/hikari-salon/reservation-service/internal/api/handlers/delete_schedule_override"
	deleteSpecialOpenDayHandler "github.com/hikari-salon/reservation-service/internal/api/handlers/delete_special_open_day"
	getAvailabilityHandler "github.com/hikari-salon/reservation-service/internal/api/handlers/get_availability"
	getReservationHandler "github.com/hikari-salon/reservation-service/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/hikari-salon/reservation-service/internal/api/handlers/list_reservations"
	updateReservationStatusHandler "github.com/hikari-salon/reservation-service/internal/api/handlers/update_reservation_status"
	upsertScheduleOverrideHandler "github.com/hikari-salon/reservation-service/internal/api/handlers/upsert_schedule_override"
	"github.com/hikari-salon/reservation-service/internal/api/middleware"
	"github.com/hikari-salon/reservation-service/internal/config"
	availabilityCacheInfra "github.com/hikari-salon/reservation-service/internal/infra/cache"
	"github.com/hikari-salon/reservation-service/internal/infra/migrate"
	calendarRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/calendar"
	couponRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/coupon"
	customerRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/customer"
	reservationRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/reservation"
	staffRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/staff"
	catalogServiceClient "github.com/hikari-salon/reservation-service/internal/integrations/catalogservice"
	settingsServiceClient "github.com/hikari-salon/reservation-service/internal/integrations/settingsservice"
	couponsService "github.com/hikari-salon/reservation-service/internal/service/coupons"
	reservationsService "github.com/hikari-salon/reservation-service/internal/service/reservations"
	scheduleService "github.com/hikari-salon/reservation-service/internal/service/schedule"
	createReservationUC "github.com/hikari-salon/reservation-service/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/hikari-salon/reservation-service/internal/usecase/get_availability"
	"github.com/hikari-salon/reservation-service/pkg/dbmetrics"
	"github.com/hikari-salon/reservation-service/pkg/logger"
	"github.com/hikari-salon/reservation-service/pkg/metrics"
	"github.com/hikari-salon/reservation-service/pkg/simpletxmanager"
	"github.com/hikari-salon/reservation-service/pkg/txmanager"
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

	log.Info("Starting hikari-reservation-service...")
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
	if err := migrate.Up(db, cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied from %s", cfg.Database.MigrationsPath)

	// Кеш доступности поверх redis (опционален, nil когда выключен)
	type availabilityCacheDep interface {
		Get(ctx context.Context, date string, menuIDs []int64, staffID *int64, dest interface{}) bool
		Set(ctx context.Context, date string, menuIDs []int64, staffID *int64, value interface{})
		InvalidateDate(ctx context.Context, date string)
	}
	var availabilityCache availabilityCacheDep

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		availabilityCache = availabilityCacheInfra.NewAvailabilityCache(
			redisClient,
			time.Duration(cfg.Redis.AvailabilityTTLSec)*time.Second,
			log,
		)
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.AvailabilityTTLSec)
	}

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	settingsClient := settingsServiceClient.NewClient(
		cfg.SettingsService.URL,
		time.Duration(cfg.SettingsService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, SettingsService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.SettingsService.URL, cfg.SettingsService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		staffRepository       *staffRepo.Repository
		calendarRepository    *calendarRepo.Repository
		couponRepository      *couponRepo.Repository
		customerRepository    *customerRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		couponRepository = couponRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		calendarRepository = calendarRepo.NewRepository(db)
		couponRepository = couponRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	couponsSvc := couponsService.NewService(
		couponRepository,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		txMgr,
		availabilityCache,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		staffRepository,
		calendarRepository,
		availabilityCache,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		staffRepository,
		calendarRepository,
		catalogClient,
		settingsClient,
		availabilityCache,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		staffRepository,
		calendarRepository,
		customerRepository,
		couponRepository,
		couponsSvc,
		catalogClient,
		settingsClient,
		txMgr,
		availabilityCache,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	upsertScheduleOverride := upsertScheduleOverrideHandler.NewHandler(scheduleSvc, log)
	deleteScheduleOverride := deleteScheduleOverrideHandler.NewHandler(scheduleSvc, log)
	createHoliday := createHolidayHandler.NewHandler(scheduleSvc, log)
	deleteHoliday := deleteHolidayHandler.NewHandler(scheduleSvc, log)
	createSpecialOpenDay := createSpecialOpenDayHandler.NewHandler(scheduleSvc, log)
	deleteSpecialOpenDay := deleteSpecialOpenDayHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Request ID для трассировки запросов в логах
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчёт доступных слотов на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание визита
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-ID header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)

	// --- Визиты ---
	// Список визитов с фильтрацией
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)

	// Получение визита по ID
	admin.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Изменение статуса визита
	admin.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- График мастеров ---
	// Разовое изменение графика мастера
	admin.HandleFunc("/staff/{staffId}/schedule-override", upsertScheduleOverride.Handle).Methods(http.MethodPut)

	// Удаление разового изменения графика
	admin.HandleFunc("/staff/{staffId}/schedule-override/{date}", deleteScheduleOverride.Handle).Methods(http.MethodDelete)

	// --- Календарь салона ---
	// Праздники и закрытия
	admin.HandleFunc("/holidays", createHoliday.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/holidays/{holidayId}", deleteHoliday.Handle).Methods(http.MethodDelete)

	// Особые дни открытия
	admin.HandleFunc("/special-open-days", createSpecialOpenDay.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/special-open-days/{dayId}", deleteSpecialOpenDay.Handle).Methods(http.MethodDelete)

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
