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

	checkAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_availability"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/delete_reservation"
	getAllReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_all_reservations"
	getCustomerReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_customer_reservations"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	manageCustomersHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/manage_customers"
	manageEmployeesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/manage_employees"
	manageReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/manage_reservation"
	manageServicesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/manage_services"
	manageTeamsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/manage_teams"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	customerRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/customer"
	employeeRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/employee"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	teamRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/team"
	authServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/authservice"
	catalogService "github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	customersService "github.com/m04kA/SMC-ReservationService/internal/service/customers"
	employeesService "github.com/m04kA/SMC-ReservationService/internal/service/employees"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	teamsService "github.com/m04kA/SMC-ReservationService/internal/service/teams"
	checkAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	manageReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/manage_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")
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

	// Инициализируем клиента AuthService
	authClient := authServiceClient.NewClient(
		cfg.AuthService.URL,
		time.Duration(cfg.AuthService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (AuthService=%s timeout=%ds)",
		cfg.AuthService.URL, cfg.AuthService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		customerRepository    *customerRepo.Repository
		employeeRepository    *employeeRepo.Repository
		teamRepository        *teamRepo.Repository
		serviceRepository     *serviceRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		employeeRepository = employeeRepo.NewRepository(wrappedDB)
		teamRepository = teamRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		employeeRepository = employeeRepo.NewRepository(db)
		teamRepository = teamRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, authClient, log)
	customersSvc := customersService.NewService(customerRepository, authClient, log)
	employeesSvc := employeesService.NewService(employeeRepository, authClient, log)
	teamsSvc := teamsService.NewService(teamRepository, employeeRepository, authClient, txMgr, log)
	catalogSvc := catalogService.NewService(serviceRepository, authClient, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		serviceRepository,
		log,
	)
	manageReservationUseCase := manageReservationUC.NewUseCase(
		reservationRepository,
		customerRepository,
		serviceRepository,
		teamRepository,
		authClient,
		txMgr,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		serviceRepository,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	manageReservation := manageReservationHandler.NewHandler(manageReservationUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationsSvc, log)
	getAllReservations := getAllReservationsHandler.NewHandler(reservationsSvc, log)
	getCustomerReservations := getCustomerReservationsHandler.NewHandler(reservationsSvc, log)
	manageCustomers := manageCustomersHandler.NewHandler(customersSvc, log)
	manageEmployees := manageEmployeesHandler.NewHandler(employeesSvc, log)
	manageTeams := manageTeamsHandler.NewHandler(teamsSvc, log)
	manageServices := manageServicesHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Справочная проверка занятости даты по услуге
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки ---
	// Создание заявки (от имени вызывающего)
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Все заявки, разделенные на ожидающие и принятые (персонал)
	protected.HandleFunc("/reservations", getAllReservations.Handle).Methods(http.MethodGet)

	// Получение заявки по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Полное обновление заявки с заменой набора бригад (персонал)
	protected.HandleFunc("/reservations/{reservationId}", manageReservation.Handle).Methods(http.MethodPut)

	// Удаление заявки (персонал)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// Заявки заказчика, разделенные на ожидающие и принятые
	protected.HandleFunc("/customers/{customerId}/reservations", getCustomerReservations.Handle).Methods(http.MethodGet)

	// --- Заказчики ---
	protected.HandleFunc("/customers", manageCustomers.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/customers", manageCustomers.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}", manageCustomers.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}", manageCustomers.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/customers/{customerId}", manageCustomers.HandleDelete).Methods(http.MethodDelete)

	// --- Сотрудники (персонал) ---
	protected.HandleFunc("/employees", manageEmployees.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/employees", manageEmployees.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{employeeId}", manageEmployees.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{employeeId}", manageEmployees.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/employees/{employeeId}", manageEmployees.HandleDelete).Methods(http.MethodDelete)

	// --- Бригады (персонал) ---
	protected.HandleFunc("/teams", manageTeams.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/teams", manageTeams.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/teams/{teamId}", manageTeams.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/teams/{teamId}", manageTeams.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/teams/{teamId}", manageTeams.HandleDelete).Methods(http.MethodDelete)

	// --- Каталог услуг ---
	protected.HandleFunc("/services", manageServices.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/services", manageServices.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/services/{serviceId}", manageServices.HandleDelete).Methods(http.MethodDelete)

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
