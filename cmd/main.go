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

	cancelBookingHandler "github.com/lensbook/PhotoBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/lensbook/PhotoBookingService/internal/api/handlers/create_booking"
	getAvailableDatesHandler "github.com/lensbook/PhotoBookingService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/lensbook/PhotoBookingService/internal/api/handlers/get_available_slots"
	getAvailableSlotsRangeHandler "github.com/lensbook/PhotoBookingService/internal/api/handlers/get_available_slots_range"
	getBookingHandler "github.com/lensbook/PhotoBookingService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/lensbook/PhotoBookingService/internal/api/handlers/get_bookings"
	updateBookingHandler "github.com/lensbook/PhotoBookingService/internal/api/handlers/update_booking"
	"github.com/lensbook/PhotoBookingService/internal/api/middleware"
	"github.com/lensbook/PhotoBookingService/internal/config"
	bookingRepo "github.com/lensbook/PhotoBookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/lensbook/PhotoBookingService/internal/infra/storage/schedule"
	"github.com/lensbook/PhotoBookingService/internal/integrations/calendar"
	"github.com/lensbook/PhotoBookingService/internal/integrations/maps"
	"github.com/lensbook/PhotoBookingService/internal/service/allocator"
	"github.com/lensbook/PhotoBookingService/internal/service/duration"
	"github.com/lensbook/PhotoBookingService/internal/service/events"
	"github.com/lensbook/PhotoBookingService/internal/service/schedule"
	"github.com/lensbook/PhotoBookingService/internal/service/travel"
	cancelBookingUC "github.com/lensbook/PhotoBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/lensbook/PhotoBookingService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/lensbook/PhotoBookingService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/lensbook/PhotoBookingService/internal/usecase/get_available_slots"
	getAvailableSlotsRangeUC "github.com/lensbook/PhotoBookingService/internal/usecase/get_available_slots_range"
	getBookingUC "github.com/lensbook/PhotoBookingService/internal/usecase/get_booking"
	getBookingsUC "github.com/lensbook/PhotoBookingService/internal/usecase/get_bookings"
	updateBookingUC "github.com/lensbook/PhotoBookingService/internal/usecase/update_booking"
	"github.com/lensbook/PhotoBookingService/pkg/dbmetrics"
	"github.com/lensbook/PhotoBookingService/pkg/logger"
	"github.com/lensbook/PhotoBookingService/pkg/metrics"
	"github.com/lensbook/PhotoBookingService/pkg/simpletxmanager"
	"github.com/lensbook/PhotoBookingService/pkg/txmanager"
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

	log.Info("Starting PhotoBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var externalMetrics interface {
		ObserveExternalRequest(target string, err error, duration time.Duration)
	}
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		externalMetrics = metricsCollector
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

	// Инициализируем клиент календаря: live или fake, выбор один раз
	var calClient calendar.Client
	if cfg.Calendar.Mode == "fake" {
		calClient = calendar.NewFakeClient(log)
		log.Info("Calendar client: fake (in-memory)")
	} else {
		calClient = calendar.NewLiveClient(
			cfg.Calendar.BaseURL,
			cfg.Calendar.Token,
			time.Duration(cfg.Calendar.Timeout)*time.Second,
			log,
			externalMetrics,
		)
		log.Info("Calendar client: live (%s, timeout=%ds)", cfg.Calendar.BaseURL, cfg.Calendar.Timeout)
	}

	// Инициализируем клиент карт
	fallbacks := make([]maps.Fallback, 0, len(cfg.Maps.Fallbacks))
	for _, f := range cfg.Maps.Fallbacks {
		fallbacks = append(fallbacks, maps.Fallback{Substring: f.Substring, Lat: f.Lat, Lng: f.Lng})
	}
	mapsClient := maps.NewClient(
		cfg.Maps.BaseURL,
		cfg.Maps.APIKey,
		time.Duration(cfg.Maps.Timeout)*time.Second,
		maps.LatLng{Lat: cfg.Maps.HomeBaseLat, Lng: cfg.Maps.HomeBaseLng},
		time.Duration(cfg.Maps.RouteCacheTTLMinutes)*time.Minute,
		fallbacks,
		log,
		externalMetrics,
	)
	log.Info("Maps client initialized (%s, route cache TTL=%dm)", cfg.Maps.BaseURL, cfg.Maps.RouteCacheTTLMinutes)

	// Инициализируем репозитории и tx manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	loc := cfg.Location()
	resources := cfg.DomainResources()

	travelEstimator := travel.NewEstimator(mapsClient, log)
	durationPolicy := duration.NewPolicy(travelEstimator, log)
	businessCalendar := schedule.NewCalendar(scheduleRepository, loc, cfg.Business.CutoffHour, log)
	slotAllocator := allocator.New(calClient, businessCalendar, travelEstimator, allocator.Options{
		StepMinutes:        cfg.Business.SlotStepMinutes,
		TrafficAwareRecalc: cfg.Business.TrafficAwareRecalc,
		GapBufferBasis:     allocator.GapBasis(cfg.Business.GapBufferBasis),
	}, log)
	eventPublisher := events.NewPublisher(calClient, loc, log)

	// Инициализируем use cases
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		slotAllocator, durationPolicy, businessCalendar, resources, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotAllocator, durationPolicy, businessCalendar, resources, log)
	getAvailableSlotsRangeUseCase := getAvailableSlotsRangeUC.NewUseCase(
		slotAllocator, durationPolicy, businessCalendar, resources, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository, slotAllocator, durationPolicy, eventPublisher,
		travelEstimator, businessCalendar, txMgr, resources, log)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository, slotAllocator, durationPolicy, eventPublisher,
		travelEstimator, businessCalendar, txMgr, resources, log)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookingRepository, eventPublisher, log)
	getBookingUseCase := getBookingUC.NewUseCase(bookingRepository, log)
	getBookingsUseCase := getBookingsUC.NewUseCase(bookingRepository, log)

	// Инициализируем handlers
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableSlotsRange := getAvailableSlotsRangeHandler.NewHandler(getAvailableSlotsRangeUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(getBookingUseCase, log)
	getBookings := getBookingsHandler.NewHandler(getBookingsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID())

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность ---
	api.HandleFunc("/availability/dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/slots-range", getAvailableSlotsRange.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", updateBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{id}", cancelBooking.Handle).Methods(http.MethodDelete)

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
