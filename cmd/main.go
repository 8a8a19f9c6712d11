package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	adminCancelReservationHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/admin_cancel_reservation"
	adminListReservationsHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/admin_list_reservations"
	cancelReservationHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/cancel_reservation"
	createEquipmentHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/create_equipment"
	createReservationHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/create_reservation"
	createRoomHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/create_room"
	defaultSlotHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/default_slot"
	deleteEquipmentHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/delete_equipment"
	deleteRoomHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/delete_room"
	getCancelledReservationsHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/get_cancelled_reservations"
	getEquipmentHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/get_equipment"
	getReservationHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/get_reservation"
	getRoomHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/get_room"
	getUserReservationsHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/get_user_reservations"
	listEquipmentHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/list_equipment"
	listRoomsHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/list_rooms"
	searchRoomsHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/search_rooms"
	updateEquipmentHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/update_equipment"
	updateReservationHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/update_reservation"
	updateRoomHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/update_room"
	usageReportHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/usage_report"
	validateReservationHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/validate_reservation"
	"github.com/m04kA/SMC-RoomBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBooking/internal/config"
	equipmentRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/equipment"
	reservationRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/room"
	userServiceClient "github.com/m04kA/SMC-RoomBooking/internal/integrations/userservice"
	equipmentService "github.com/m04kA/SMC-RoomBooking/internal/service/equipment"
	reservationsService "github.com/m04kA/SMC-RoomBooking/internal/service/reservations"
	roomsService "github.com/m04kA/SMC-RoomBooking/internal/service/rooms"
	createReservationUC "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_reservation"
	searchRoomsUC "github.com/m04kA/SMC-RoomBooking/internal/usecase/search_rooms"
	updateReservationUC "github.com/m04kA/SMC-RoomBooking/internal/usecase/update_reservation"
	usageReportUC "github.com/m04kA/SMC-RoomBooking/internal/usecase/usage_report"
	"github.com/m04kA/SMC-RoomBooking/pkg/clock"
	"github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/keymutex"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
	"github.com/m04kA/SMC-RoomBooking/pkg/metrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML configuration file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-RoomBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	// Единый часовой пояс для рабочих часов и разбора времени без смещения
	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone %q: %v", cfg.Booking.Timezone, err)
	}
	clk := clock.NewReal(loc)
	log.Info("Booking timezone: %s", loc)

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

	// Обёртка над БД: с метриками пула или только прокидывание транзакции из контекста
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB, cfg.Booking.SerializationRetries)
	roomLocks := keymutex.New[int64]()

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log.With("component", "userservice"),
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории
	roomRepository := roomRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	equipmentRepository := equipmentRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		roomRepository,
		userClient,
		clk,
		log,
	)
	roomsSvc := roomsService.NewService(
		roomRepository,
		equipmentRepository,
		txMgr,
		log,
	)
	equipmentSvc := equipmentService.NewService(
		equipmentRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		roomRepository,
		reservationRepository,
		roomLocks,
		txMgr,
		clk,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		roomRepository,
		reservationRepository,
		roomLocks,
		txMgr,
		clk,
		log,
	)
	searchRoomsUseCase := searchRoomsUC.NewUseCase(
		roomRepository,
		reservationRepository,
		txMgr,
		clk,
		log,
	)
	usageReportUseCase := usageReportUC.NewUseCase(
		roomRepository,
		reservationRepository,
		txMgr,
		clk,
		log,
	)

	// Инициализируем handlers
	listRooms := listRoomsHandler.NewHandler(roomsSvc, log)
	getRoom := getRoomHandler.NewHandler(roomsSvc, log)
	searchRooms := searchRoomsHandler.NewHandler(searchRoomsUseCase, loc, log)
	listEquipment := listEquipmentHandler.NewHandler(equipmentSvc, log)
	getEquipment := getEquipmentHandler.NewHandler(equipmentSvc, log)

	defaultSlot := defaultSlotHandler.NewHandler(clk)
	validateReservation := validateReservationHandler.NewHandler(clk, loc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, metricsCollector, loc, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, metricsCollector, loc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, metricsCollector, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getCancelledReservations := getCancelledReservationsHandler.NewHandler(reservationsSvc, log)

	adminListReservations := adminListReservationsHandler.NewHandler(reservationsSvc, log)
	adminCancelReservation := adminCancelReservationHandler.NewHandler(reservationsSvc, metricsCollector, log)
	usageReport := usageReportHandler.NewHandler(usageReportUseCase, log)
	createRoom := createRoomHandler.NewHandler(roomsSvc, log)
	updateRoom := updateRoomHandler.NewHandler(roomsSvc, log)
	deleteRoom := deleteRoomHandler.NewHandler(roomsSvc, log)
	createEquipment := createEquipmentHandler.NewHandler(equipmentSvc, log)
	updateEquipment := updateEquipmentHandler.NewHandler(equipmentSvc, log)
	deleteEquipment := deleteEquipmentHandler.NewHandler(equipmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Каталог ---
	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/available", searchRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id:[0-9]+}", getRoom.Handle).Methods(http.MethodGet)
	api.HandleFunc("/equipment", listEquipment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id:[0-9]+}", getEquipment.Handle).Methods(http.MethodGet)

	// --- Помощники формы бронирования ---
	api.HandleFunc("/reservations/default-slot", defaultSlot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/validate", validateReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования пользователя ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/cancelled", getCancelledReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id:[0-9]+}", updateReservation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{id:[0-9]+}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (X-User-ID + X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly)

	admin.HandleFunc("/reservations", adminListReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id:[0-9]+}/cancel", adminCancelReservation.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/reports/usage", usageReport.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/rooms", createRoom.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/rooms/{id:[0-9]+}", updateRoom.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/rooms/{id:[0-9]+}", deleteRoom.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/equipment", createEquipment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/equipment/{id:[0-9]+}", updateEquipment.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/equipment/{id:[0-9]+}", deleteEquipment.Handle).Methods(http.MethodDelete)

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
