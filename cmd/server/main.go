package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/config"
	"github.com/educonnect/educonnect-backend/internal/database"
	"github.com/educonnect/educonnect-backend/internal/handler"
	"github.com/educonnect/educonnect-backend/internal/logger"
	"github.com/educonnect/educonnect-backend/internal/middleware"
	"github.com/educonnect/educonnect-backend/internal/notification"
	"github.com/educonnect/educonnect-backend/internal/repository"
	"github.com/educonnect/educonnect-backend/internal/router"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
	"github.com/educonnect/educonnect-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg)
	defer logger.Flush()

	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting EduConnect+ Backend")

	if cfg.PaystackSecretKey == "" {
		log.Warn().Msg("PAYSTACK_SECRET_KEY not set, webhook payloads will be trusted without a signature check")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	linkRepo := repository.NewParentLinkRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	timetableRepo := repository.NewTimetableRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)
	feeRepo := repository.NewFeeStructureRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	txRepo := repository.NewTransactionRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	calendarRepo := repository.NewCalendarRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	healthRepo := repository.NewHealthRecordRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Messaging infrastructure ──────────────────────────────────────
	queue := notification.NewQueue(rdb)
	publisher := database.NewRedisPublisher(rdb)
	mailer := notification.NewMailer(cfg, log)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo)
	userService := service.NewUserService(userRepo, linkRepo, classRepo, authService, log)
	classService := service.NewClassService(classRepo, userRepo, settingRepo)
	timetableService := service.NewTimetableService(timetableRepo, classRepo, userRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo)
	gradeService := service.NewGradeService(gradeRepo, userRepo)
	financeService := service.NewFinanceService(feeRepo, invoiceRepo, userRepo, log)
	transactionService := service.NewTransactionService(txRepo, invoiceRepo, queue, cfg.PaymentCheckoutBaseURL, cfg.PaystackSecretKey, log)
	announcementService := service.NewAnnouncementService(announcementRepo, classRepo, userRepo, queue, log)
	messagingService := service.NewMessagingService(conversationRepo, userRepo, publisher, log)
	calendarService := service.NewCalendarService(calendarRepo)
	healthService := service.NewHealthService(healthRepo, userRepo, linkRepo)
	settingService := service.NewSettingService(settingRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Admin:        handler.NewAdminHandler(userService, dashboardService),
		Parent:       handler.NewParentHandler(userService, attendanceService, gradeService, financeService),
		Class:        handler.NewClassHandler(classService),
		Timetable:    handler.NewTimetableHandler(timetableService),
		Attendance:   handler.NewAttendanceHandler(attendanceService),
		Grade:        handler.NewGradeHandler(gradeService),
		Finance:      handler.NewFinanceHandler(financeService),
		Transaction:  handler.NewTransactionHandler(transactionService, log),
		Announcement: handler.NewAnnouncementHandler(announcementService),
		Messaging:    handler.NewMessagingHandler(messagingService),
		Calendar:     handler.NewCalendarHandler(calendarService),
		HealthRecord: handler.NewHealthRecordHandler(healthService),
		Setting:      handler.NewSettingHandler(settingService),
		System:       handler.NewSystemHandler(database.NewHealthChecker(pool, rdb), log),
		WS:           handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})

	notificationWorker := worker.NewNotificationWorker(rdb, userRepo, linkRepo, mailer, log)
	go func() {
		defer close(workerDone)
		notificationWorker.Start(workerCtx)
	}()

	sweeper, err := worker.NewOverdueSweeper(cfg.OverdueSweepCron, financeService, log)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.OverdueSweepCron).Msg("Invalid overdue sweep schedule")
	}
	sweeper.Start()

	// ─── Setup Router ──────────────────────────────────────────────────
	loginLimiter := middleware.NewRateLimiter(ctx, cfg.LoginRateLimit, time.Minute)
	r := router.SetupRouter(authService, loginLimiter, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the scheduler, letting a running sweep finish.
	<-sweeper.Stop().Done()

	// 3. Stop the notification worker; it flushes its buffer on the way out.
	workerCancel()
	<-workerDone

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
