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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBlockHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/create_block"
	createPropertyHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/create_property"
	createReservationHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/create_reservation"
	deleteBlockHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/delete_block"
	exportCalendarHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/export_calendar"
	getCalendarHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/get_calendar"
	getPropertySettingsHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/get_property_settings"
	getReservationHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/get_reservation"
	listBlocksHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/list_blocks"
	listPropertiesHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/list_properties"
	listReservationsHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/list_reservations"
	loadHistoryHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/load_history"
	removeReservationHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/remove_reservation"
	selectDateHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/select_date"
	updatePropertySettingsHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/update_property_settings"
	updateReservationHandler "github.com/m04kA/rental-guide-service/internal/api/handlers/update_reservation"
	"github.com/m04kA/rental-guide-service/internal/api/middleware"
	"github.com/m04kA/rental-guide-service/internal/config"
	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/infra/notify"
	blockedRepo "github.com/m04kA/rental-guide-service/internal/infra/storage/blocked"
	propertyRepo "github.com/m04kA/rental-guide-service/internal/infra/storage/property"
	reservationRepo "github.com/m04kA/rental-guide-service/internal/infra/storage/reservation"
	blocksService "github.com/m04kA/rental-guide-service/internal/service/blocks"
	"github.com/m04kA/rental-guide-service/internal/service/feed"
	"github.com/m04kA/rental-guide-service/internal/service/occupancy"
	propertiesService "github.com/m04kA/rental-guide-service/internal/service/properties"
	reservationsService "github.com/m04kA/rental-guide-service/internal/service/reservations"
	exportCalendarUC "github.com/m04kA/rental-guide-service/internal/usecase/export_calendar"
	getCalendarUC "github.com/m04kA/rental-guide-service/internal/usecase/get_calendar"
	mutateReservationUC "github.com/m04kA/rental-guide-service/internal/usecase/mutate_reservation"
	selectDateUC "github.com/m04kA/rental-guide-service/internal/usecase/select_date"
	"github.com/m04kA/rental-guide-service/pkg/dbmetrics"
	"github.com/m04kA/rental-guide-service/pkg/logger"
	"github.com/m04kA/rental-guide-service/pkg/metrics"
	"github.com/m04kA/rental-guide-service/pkg/txmanager"
)

// janitorInterval период очистки истекших сессий операторов
const janitorInterval = time.Minute

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

	log.Info("Starting rental-guide-service...")

	location, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal("Failed to load calendar timezone %q: %v", cfg.Calendar.Timezone, err)
	}

	// Инициализируем метрики (если включены). nil-коллектор безопасен для всех вызовов.
	var metricsCollector *metrics.Metrics
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	blockedRepository := blockedRepo.NewRepository(wrappedDB)
	propertyRepository := propertyRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	timeProvider := &reservationsService.RealTimeProvider{}

	propertiesSvc := propertiesService.NewService(
		propertyRepository,
		time.Duration(cfg.Properties.CacheTTL)*time.Second,
		cfg.Calendar.Timezone,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		blockedRepository,
		txMgr,
		timeProvider,
		location,
		log,
	)
	blocksSvc := blocksService.NewService(
		blockedRepository,
		propertiesSvc,
		timeProvider,
		location,
		log,
	)

	// Фоновые процессы живут до завершения сервиса
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Ленты операторов и индекс занятости
	hub := feed.NewHub(
		reservationsSvc,
		cfg.Feed.HistoryPageSize,
		cfg.Feed.SessionTTLDuration(),
		metricsCollector,
		log,
	)
	tracker := occupancy.NewTracker(log)

	// Подписки на изменения через LISTEN/NOTIFY
	listener := notify.NewPQListener(
		cfg.Database.DSN(),
		time.Duration(cfg.Feed.ListenerMinReconnect)*time.Second,
		time.Duration(cfg.Feed.ListenerMaxReconnect)*time.Second,
		log,
	)
	defer listener.Close()

	broker := notify.NewBroker(listener, cfg.Feed.NotifyChannel, reservationsSvc, blocksSvc, metricsCollector, log)
	broker.OnFailure(func(kind domain.RecordKind, err error) {
		switch kind {
		case domain.RecordReservation:
			tracker.MarkReservationsFailed(err)
		case domain.RecordBlock:
			tracker.MarkBlocksFailed(err)
		}
	})

	feedUpdates := broker.SubscribeActive(bgCtx, nil)
	occupancyReservations := broker.SubscribeActive(bgCtx, nil)
	occupancyBlocks := broker.SubscribeBlocks(bgCtx)

	go hub.Run(bgCtx, feedUpdates)
	go hub.RunJanitor(bgCtx, janitorInterval)
	go func() {
		for list := range occupancyReservations {
			if err := tracker.SetReservations(list); err != nil {
				log.Warn("Occupancy: reservation delivery rejected: %v", err)
			}
		}
	}()
	go func() {
		for list := range occupancyBlocks {
			if err := tracker.SetBlocks(list); err != nil {
				log.Warn("Occupancy: block delivery rejected: %v", err)
			}
		}
	}()
	go func() {
		if err := broker.Run(bgCtx); err != nil {
			log.Error("Broker stopped: %v", err)
		}
	}()

	resyncer, err := notify.NewResyncer(bgCtx, cfg.Feed.ResyncCron, broker, log)
	if err != nil {
		log.Fatal("Failed to schedule resync: %v", err)
	}
	resyncer.Start()
	log.Info("Subscriptions started (channel=%s, resync=%q)", cfg.Feed.NotifyChannel, cfg.Feed.ResyncCron)

	// Инициализируем use cases
	mutateReservationUseCase := mutateReservationUC.NewUseCase(reservationsSvc, propertiesSvc, hub, metricsCollector, log)
	getCalendarUseCase := getCalendarUC.NewUseCase(propertiesSvc, tracker, location, log)
	selectDateUseCase := selectDateUC.NewUseCase(propertiesSvc, tracker, metricsCollector, location, log)
	exportCalendarUseCase := exportCalendarUC.NewUseCase(
		propertiesSvc,
		reservationsSvc,
		blocksSvc,
		cfg.Calendar.ProductID,
		log,
	)

	// Инициализируем handlers
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	selectDate := selectDateHandler.NewHandler(selectDateUseCase, log)
	exportCalendar := exportCalendarHandler.NewHandler(exportCalendarUseCase, log)

	listReservations := listReservationsHandler.NewHandler(hub, reservationsSvc, log)
	loadHistory := loadHistoryHandler.NewHandler(hub, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, hub, log)
	createReservation := createReservationHandler.NewHandler(mutateReservationUseCase, hub, log)
	updateReservation := updateReservationHandler.NewHandler(mutateReservationUseCase, hub, log)
	removeReservation := removeReservationHandler.NewHandler(mutateReservationUseCase, hub, log)

	listBlocks := listBlocksHandler.NewHandler(blocksSvc, log)
	createBlock := createBlockHandler.NewHandler(blocksSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blocksSvc, log)

	listProperties := listPropertiesHandler.NewHandler(propertiesSvc, log)
	createProperty := createPropertyHandler.NewHandler(propertiesSvc, log)
	getPropertySettings := getPropertySettingsHandler.NewHandler(propertiesSvc, log)
	updatePropertySettings := updatePropertySettingsHandler.NewHandler(propertiesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (календарь гостя)
	// ============================================================

	// Месяц календаря с состоянием выбора
	api.HandleFunc("/properties/{propertyId}/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Клик по дате
	api.HandleFunc("/properties/{propertyId}/calendar/select", selectDate.Handle).Methods(http.MethodPost)

	// Выгрузка занятости в iCalendar
	api.HandleFunc("/properties/{propertyId}/calendar.ics", exportCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Operator-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/history/next", loadHistory.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}", removeReservation.Handle).Methods(http.MethodDelete)

	// --- Блокировки дат ---
	protected.HandleFunc("/properties/{propertyId}/blocks", listBlocks.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/properties/{propertyId}/blocks", createBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

	// --- Объекты и их настройки ---
	protected.HandleFunc("/properties", listProperties.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/properties", createProperty.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/properties/{propertyId}/settings", getPropertySettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/properties/{propertyId}/settings", updatePropertySettings.Handle).Methods(http.MethodPut)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем подписки и планировщик
	<-resyncer.Stop().Done()
	stopBackground()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
