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

	avitoCallbackHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/avito_callback"
	cancelBookingHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/cancel_booking"
	connectAvitoHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/connect_avito"
	createBookingHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/create_booking"
	createGuestHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/create_guest"
	createPropertyHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/create_property"
	deletePropertyHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/delete_property"
	disconnectAvitoHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/disconnect_avito"
	exportBookingsHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/export_bookings"
	getBookingHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/get_booking"
	getBookingHistoryHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/get_booking_history"
	getCalendarHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/get_calendar"
	getChatMessagesHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/get_chat_messages"
	getGuestHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/get_guest"
	getGuestBookingsHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/get_guest_bookings"
	getPropertyHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/get_property"
	getRatesHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/get_rates"
	getStatsHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/get_stats"
	ingestMessageHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/ingest_message"
	listBookingsHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/list_bookings"
	listChatsHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/list_chats"
	listGuestsHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/list_guests"
	listPropertiesHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/list_properties"
	moveBookingHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/move_booking"
	syncAvitoHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/sync_avito"
	updateBookingHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/update_booking"
	updateGuestHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/update_guest"
	updatePropertyHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/update_property"
	upsertRatesHandler "github.com/m0rven/STR-PropertyManager/internal/api/handlers/upsert_rates"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/config"
	calendarCache "github.com/m0rven/STR-PropertyManager/internal/infra/cache/calendar"
	"github.com/m0rven/STR-PropertyManager/internal/infra/events"
	auditRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/audit"
	avitoRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/avito"
	bookingRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/booking"
	chatRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/chat"
	guestRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/guest"
	propertyRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/property"
	rateRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/rate"
	avitoClient "github.com/m0rven/STR-PropertyManager/internal/integrations/avito"
	analyticsService "github.com/m0rven/STR-PropertyManager/internal/service/analytics"
	bookingsService "github.com/m0rven/STR-PropertyManager/internal/service/bookings"
	chatsService "github.com/m0rven/STR-PropertyManager/internal/service/chats"
	exportsService "github.com/m0rven/STR-PropertyManager/internal/service/exports"
	guestsService "github.com/m0rven/STR-PropertyManager/internal/service/guests"
	propertiesService "github.com/m0rven/STR-PropertyManager/internal/service/properties"
	ratesService "github.com/m0rven/STR-PropertyManager/internal/service/rates"
	connectAvitoUC "github.com/m0rven/STR-PropertyManager/internal/usecase/connect_avito"
	createBookingUC "github.com/m0rven/STR-PropertyManager/internal/usecase/create_booking"
	getCalendarUC "github.com/m0rven/STR-PropertyManager/internal/usecase/get_calendar"
	moveBookingUC "github.com/m0rven/STR-PropertyManager/internal/usecase/move_booking"
	syncAvitoUC "github.com/m0rven/STR-PropertyManager/internal/usecase/sync_avito"
	"github.com/m0rven/STR-PropertyManager/pkg/dbmetrics"
	"github.com/m0rven/STR-PropertyManager/pkg/logger"
	"github.com/m0rven/STR-PropertyManager/pkg/metrics"
	"github.com/m0rven/STR-PropertyManager/pkg/simpletxmanager"
	"github.com/m0rven/STR-PropertyManager/pkg/txmanager"
)

// TxManager интерфейс transaction manager для сервисов и use cases
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting STR-PropertyManager...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		propertyRepository *propertyRepo.Repository
		rateRepository     *rateRepo.Repository
		guestRepository    *guestRepo.Repository
		chatRepository     *chatRepo.Repository
		auditRepository    *auditRepo.Repository
		avitoRepository    *avitoRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		propertyRepository = propertyRepo.NewRepository(wrappedDB)
		rateRepository = rateRepo.NewRepository(wrappedDB)
		guestRepository = guestRepo.NewRepository(wrappedDB)
		chatRepository = chatRepo.NewRepository(wrappedDB)
		auditRepository = auditRepo.NewRepository(wrappedDB)
		avitoRepository = avitoRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		propertyRepository = propertyRepo.NewRepository(db)
		rateRepository = rateRepo.NewRepository(db)
		guestRepository = guestRepo.NewRepository(db)
		chatRepository = chatRepo.NewRepository(db)
		auditRepository = auditRepo.NewRepository(db)
		avitoRepository = avitoRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш снимков календаря (опционально, поверх Redis)
	var snapshotCache getCalendarUC.SnapshotCache
	var calCache *calendarCache.Cache

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		calCache = calendarCache.New(
			redisClient,
			time.Duration(cfg.Redis.CalendarTTL)*time.Second,
			metricsCollector,
			log,
		)
		snapshotCache = calCache
		log.Info("Calendar snapshot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.CalendarTTL)
	}

	// Публикация событий изменений (опционально, поверх RabbitMQ)
	var publisher events.Publisher = events.NopPublisher{}
	var consumer *events.Consumer

	if cfg.AMQP.Enabled {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, metricsCollector, log)
		if err != nil {
			log.Fatal("Failed to connect to AMQP: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Event publisher enabled (exchange=%s)", cfg.AMQP.Exchange)

		// Консьюмер инвалидации кеша календаря по событиям изменений
		if cfg.Redis.Enabled {
			consumer, err = events.NewConsumer(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, log)
			if err != nil {
				log.Fatal("Failed to start AMQP consumer: %v", err)
			}
			defer consumer.Close()
		}
	}

	// Клиент API Авито
	avitoAPIClient := avitoClient.NewClient(
		cfg.Avito.BaseURL,
		cfg.Avito.ClientID,
		cfg.Avito.ClientSecret,
		cfg.Avito.RedirectURL,
		time.Duration(cfg.Avito.Timeout)*time.Second,
		cfg.Avito.MaxRetries,
		log,
	)
	log.Info("Avito client initialized (base=%s, timeout=%ds, retries=%d)",
		cfg.Avito.BaseURL, cfg.Avito.Timeout, cfg.Avito.MaxRetries)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, auditRepository, publisher, txMgr, log)
	propertySvc := propertiesService.NewService(propertyRepository, bookingRepository, txMgr, log)
	rateSvc := ratesService.NewService(rateRepository, propertyRepository, txMgr, log)
	guestSvc := guestsService.NewService(guestRepository, bookingRepository, log)
	chatSvc := chatsService.NewService(chatRepository, publisher, txMgr, log)
	exportSvc := exportsService.NewService(bookingRepository, propertyRepository, cfg.Exports.DefaultDelimiter, log)
	analyticsSvc := analyticsService.NewService(bookingRepository, propertyRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		propertyRepository,
		rateRepository,
		auditRepository,
		publisher,
		txMgr,
		log,
	)
	moveBookingUseCase := moveBookingUC.NewUseCase(
		bookingRepository,
		propertyRepository,
		auditRepository,
		publisher,
		txMgr,
		log,
	)
	getCalendarUseCase := getCalendarUC.NewUseCase(
		bookingRepository,
		propertyRepository,
		rateRepository,
		snapshotCache,
		log,
	)
	connectAvitoUseCase := connectAvitoUC.NewUseCase(avitoRepository, avitoAPIClient, log)
	syncAvitoUseCase := syncAvitoUC.NewUseCase(
		bookingRepository,
		propertyRepository,
		rateRepository,
		avitoRepository,
		avitoAPIClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	moveBooking := moveBookingHandler.NewHandler(moveBookingUseCase, log)
	getBookingHistory := getBookingHistoryHandler.NewHandler(bookingSvc, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)

	createProperty := createPropertyHandler.NewHandler(propertySvc, log)
	listProperties := listPropertiesHandler.NewHandler(propertySvc, log)
	getProperty := getPropertyHandler.NewHandler(propertySvc, log)
	updateProperty := updatePropertyHandler.NewHandler(propertySvc, log)
	deleteProperty := deletePropertyHandler.NewHandler(propertySvc, log)
	getRates := getRatesHandler.NewHandler(rateSvc, log)
	upsertRates := upsertRatesHandler.NewHandler(rateSvc, log)

	createGuest := createGuestHandler.NewHandler(guestSvc, log)
	listGuests := listGuestsHandler.NewHandler(guestSvc, log)
	getGuest := getGuestHandler.NewHandler(guestSvc, log)
	updateGuest := updateGuestHandler.NewHandler(guestSvc, log)
	getGuestBookings := getGuestBookingsHandler.NewHandler(guestSvc, log)

	listChats := listChatsHandler.NewHandler(chatSvc, log)
	getChatMessages := getChatMessagesHandler.NewHandler(chatSvc, log)
	ingestMessage := ingestMessageHandler.NewHandler(chatSvc, log)

	connectAvito := connectAvitoHandler.NewHandler(connectAvitoUseCase, log)
	avitoCallback := avitoCallbackHandler.NewHandler(connectAvitoUseCase, log)
	disconnectAvito := disconnectAvitoHandler.NewHandler(connectAvitoUseCase, log)
	syncAvito := syncAvitoHandler.NewHandler(syncAvitoUseCase, log)

	exportBookings := exportBookingsHandler.NewHandler(exportSvc, log)
	getStats := getStatsHandler.NewHandler(analyticsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// OAuth-колбек от Авито: владелец восстанавливается из state
	r.HandleFunc("/auth/avito-callback", avitoCallback.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Площадки ---
	protected.HandleFunc("/properties", createProperty.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/properties", listProperties.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/properties/{propertyId}", getProperty.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/properties/{propertyId}", updateProperty.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/properties/{propertyId}", deleteProperty.Handle).Methods(http.MethodDelete)

	// --- Тарифы ---
	protected.HandleFunc("/properties/{propertyId}/rates", getRates.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/properties/{propertyId}/rates", upsertRates.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/move", moveBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/history", getBookingHistory.Handle).Methods(http.MethodGet)

	// --- Календарь ---
	protected.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// --- Гости ---
	protected.HandleFunc("/guests", createGuest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/guests", listGuests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/guests/{guestId}", getGuest.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/guests/{guestId}", updateGuest.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/guests/{guestId}/bookings", getGuestBookings.Handle).Methods(http.MethodGet)

	// --- Чаты ---
	protected.HandleFunc("/chats", listChats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/chats/{chatId}/messages", getChatMessages.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/chats/messages", ingestMessage.Handle).Methods(http.MethodPost)

	// --- Интеграция с Авито ---
	protected.HandleFunc("/avito/connect", connectAvito.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/avito/connect", disconnectAvito.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/properties/{propertyId}/avito/sync", syncAvito.Handle).Methods(http.MethodPost)

	// --- Отчеты и аналитика ---
	protected.HandleFunc("/exports/bookings", exportBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/analytics/stats", getStats.Handle).Methods(http.MethodGet)

	// Консьюмер событий: сбрасывает кеш календаря владельца при изменениях
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()

	if consumer != nil {
		go func() {
			err := consumer.Run(consumerCtx, func(ctx context.Context, event events.Event) {
				if err := calCache.InvalidateOwner(ctx, event.OwnerID); err != nil {
					log.Warn("Cache invalidation failed: owner_id=%d, event=%s: %v",
						event.OwnerID, event.Type, err)
				}
			})
			if err != nil {
				log.Error("Event consumer stopped: %v", err)
			}
		}()
		log.Info("Cache invalidation consumer started (queue=%s)", cfg.AMQP.Queue)
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

	stopConsumer()

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
