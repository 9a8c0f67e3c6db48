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
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	activateTimesHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/activate_times"
	cancelBookingHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/cancel_booking"
	cancelRecurringHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/cancel_recurring_bookings"
	checkAvailabilityHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/check_availability"
	completeBookingHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/create_booking"
	createChildHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/create_child"
	createFeedbackHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/create_feedback"
	createRecurringHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/create_recurring_bookings"
	createSessionReportHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/create_session_report"
	deleteChildHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/delete_child"
	getAnalyticsHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/get_analytics"
	getAvailableSlotsHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/get_booking"
	getChildHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/get_child"
	getFeedbackHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/get_feedback"
	getSessionReportHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/get_session_report"
	getTherapistHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/get_therapist"
	getTherapistBookingsHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/get_therapist_bookings"
	getUserBookingsHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/get_user_bookings"
	listChildrenHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/list_children"
	listLeavesHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/list_leaves"
	listOwnLeavesHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/list_own_leaves"
	listTherapistsHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/list_therapists"
	processLeaveHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/process_leave"
	requestLeaveHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/request_leave"
	updateChildHandler "github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/update_child"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/config"
	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/infra/cache/slots"
	"github.com/m04kA/TheraConnect-BookingService/internal/infra/migrations"
	bookingRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/booking"
	childRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/child"
	leaveRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/leave"
	sessionRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/session"
	therapistRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/therapist"
	"github.com/m04kA/TheraConnect-BookingService/internal/integrations/notifier"
	analyticsService "github.com/m04kA/TheraConnect-BookingService/internal/service/analytics"
	bookingsService "github.com/m04kA/TheraConnect-BookingService/internal/service/bookings"
	childrenService "github.com/m04kA/TheraConnect-BookingService/internal/service/children"
	sessionsService "github.com/m04kA/TheraConnect-BookingService/internal/service/sessions"
	therapistsService "github.com/m04kA/TheraConnect-BookingService/internal/service/therapists"
	checkAvailabilityUC "github.com/m04kA/TheraConnect-BookingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_booking"
	createRecurringUC "github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_recurring_bookings"
	getAvailableSlotsUC "github.com/m04kA/TheraConnect-BookingService/internal/usecase/get_available_slots"
	processLeaveUC "github.com/m04kA/TheraConnect-BookingService/internal/usecase/process_leave"
	requestLeaveUC "github.com/m04kA/TheraConnect-BookingService/internal/usecase/request_leave"
	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
	"github.com/m04kA/TheraConnect-BookingService/pkg/metrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/txmanager"
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

	log.Info("Starting TheraConnect-BookingService...")

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
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

	if cfg.Database.MigrateOnStart {
		if err := migrations.Run(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Без метрик обёртка просто проксирует вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis: кэш занятых слотов
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unavailable, slots cache will miss: %v", err)
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
	}
	slotsCache := slots.NewCache(rdb, time.Duration(cfg.Redis.SlotsTTL)*time.Second)

	// Очередь уведомлений (asynq поверх того же Redis)
	var enqueuer notifier.Enqueuer
	if cfg.Notifications.Enabled {
		queueClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer queueClient.Close()
		enqueuer = queueClient
		log.Info("Notifications queue %q enabled", cfg.Notifications.Queue)
	}
	dispatcher := notifier.NewDispatcher(enqueuer, cfg.Notifications.Queue, log)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	therapistRepository := therapistRepo.NewRepository(wrappedDB)
	childRepository := childRepo.NewRepository(wrappedDB)
	leaveRepository := leaveRepo.NewRepository(wrappedDB)
	sessionRepository := sessionRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		therapistRepository,
		slotsCache,
		dispatcher,
		txMgr,
		loc,
		log,
	)
	childSvc := childrenService.NewService(childRepository, bookingRepository, txMgr, log)
	therapistSvc := therapistsService.NewService(therapistRepository, leaveRepository, log)
	sessionSvc := sessionsService.NewService(
		sessionRepository,
		bookingRepository,
		therapistRepository,
		dispatcher,
		loc,
		log,
	)
	analyticsSvc := analyticsService.NewService(
		bookingRepository,
		therapistRepository,
		childRepository,
		leaveRepository,
		sessionRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		therapistRepository,
		childRepository,
		leaveRepository,
		slotsCache,
		dispatcher,
		metricsCollector,
		txMgr,
		cfg.Notifications.ReminderBeforeDuration(),
		loc,
		log,
	)
	createRecurringUseCase := createRecurringUC.NewUseCase(
		createBookingUseCase,
		therapistRepository,
		childRepository,
		dispatcher,
		loc,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		therapistRepository,
		bookingRepository,
		leaveRepository,
		slotsCache,
		loc,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		therapistRepository,
		bookingRepository,
		leaveRepository,
		loc,
		log,
	)
	requestLeaveUseCase := requestLeaveUC.NewUseCase(therapistRepository, leaveRepository, loc, log)
	processLeaveUseCase := processLeaveUC.NewUseCase(
		leaveRepository,
		bookingRepository,
		therapistRepository,
		slotsCache,
		dispatcher,
		metricsCollector,
		txMgr,
		loc,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createRecurring := createRecurringHandler.NewHandler(createRecurringUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getTherapistBookings := getTherapistBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	cancelRecurring := cancelRecurringHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	createSessionReport := createSessionReportHandler.NewHandler(sessionSvc, log)
	getSessionReport := getSessionReportHandler.NewHandler(sessionSvc, log)
	createFeedback := createFeedbackHandler.NewHandler(sessionSvc, log)
	getFeedback := getFeedbackHandler.NewHandler(sessionSvc, log)
	listTherapists := listTherapistsHandler.NewHandler(therapistSvc, log)
	getTherapist := getTherapistHandler.NewHandler(therapistSvc, log)
	activateTimes := activateTimesHandler.NewHandler(therapistSvc, log)
	listOwnLeaves := listOwnLeavesHandler.NewHandler(therapistSvc, log)
	requestLeave := requestLeaveHandler.NewHandler(requestLeaveUseCase, log)
	listLeaves := listLeavesHandler.NewHandler(therapistSvc, log)
	processLeave := processLeaveHandler.NewHandler(processLeaveUseCase, log)
	getAnalytics := getAnalyticsHandler.NewHandler(analyticsSvc, log)
	createChild := createChildHandler.NewHandler(childSvc, log)
	listChildren := listChildrenHandler.NewHandler(childSvc, log)
	getChild := getChildHandler.NewHandler(childSvc, log)
	updateChild := updateChildHandler.NewHandler(childSvc, log)
	deleteChild := deleteChildHandler.NewHandler(childSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, все маршруты требуют X-User-ID и X-User-Role
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// Лимит на создание и отмену бронирований
	limit := func(h http.Handler) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		limit = limiter.Middleware
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	parentOnly := middleware.RequireRole(domain.RoleParent)

	// ============================================================
	// ANY ROLE
	// ============================================================

	api.HandleFunc("/bookings/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}/report", getSessionReport.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}/feedback", getFeedback.Handle).Methods(http.MethodGet)
	api.HandleFunc("/therapists", listTherapists.Handle).Methods(http.MethodGet)
	api.HandleFunc("/therapists/{therapistId:[0-9]+}", getTherapist.Handle).Methods(http.MethodGet)

	// ============================================================
	// PARENT
	// ============================================================

	api.Handle("/bookings", parentOnly(limit(http.HandlerFunc(createBooking.Handle)))).Methods(http.MethodPost)
	api.Handle("/bookings", parentOnly(http.HandlerFunc(getUserBookings.Handle))).Methods(http.MethodGet)
	api.Handle("/bookings/recurring", parentOnly(limit(http.HandlerFunc(createRecurring.Handle)))).Methods(http.MethodPost)
	api.Handle("/bookings/recurring/{groupId}/cancel",
		parentOnly(limit(http.HandlerFunc(cancelRecurring.Handle)))).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId:[0-9]+}/cancel",
		parentOnly(limit(http.HandlerFunc(cancelBooking.Handle)))).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId:[0-9]+}/feedback",
		parentOnly(http.HandlerFunc(createFeedback.Handle))).Methods(http.MethodPost)

	// Завершение сессии: терапевт этой сессии или администратор
	api.Handle("/bookings/{bookingId:[0-9]+}/complete",
		middleware.RequireRole(domain.RoleTherapist, domain.RoleAdmin)(http.HandlerFunc(completeBooking.Handle))).
		Methods(http.MethodPatch)

	// Отчёт по сессии пишет только её терапевт
	api.Handle("/bookings/{bookingId:[0-9]+}/report",
		middleware.RequireRole(domain.RoleTherapist)(http.HandlerFunc(createSessionReport.Handle))).
		Methods(http.MethodPost)

	api.Handle("/children", parentOnly(http.HandlerFunc(createChild.Handle))).Methods(http.MethodPost)
	api.Handle("/children", parentOnly(http.HandlerFunc(listChildren.Handle))).Methods(http.MethodGet)
	api.Handle("/children/{childId:[0-9]+}", parentOnly(http.HandlerFunc(getChild.Handle))).Methods(http.MethodGet)
	api.Handle("/children/{childId:[0-9]+}", parentOnly(http.HandlerFunc(updateChild.Handle))).Methods(http.MethodPut)
	api.Handle("/children/{childId:[0-9]+}", parentOnly(http.HandlerFunc(deleteChild.Handle))).Methods(http.MethodDelete)

	// ============================================================
	// THERAPIST
	// ============================================================

	therapist := api.PathPrefix("/therapists/me").Subrouter()
	therapist.Use(middleware.RequireRole(domain.RoleTherapist))

	therapist.HandleFunc("/times", activateTimes.Handle).Methods(http.MethodPost)
	therapist.HandleFunc("/bookings", getTherapistBookings.Handle).Methods(http.MethodGet)
	therapist.HandleFunc("/leaves", requestLeave.Handle).Methods(http.MethodPost)
	therapist.HandleFunc("/leaves", listOwnLeaves.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/leaves", listLeaves.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/leaves/{leaveId:[0-9]+}", processLeave.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/analytics", getAnalytics.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

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
