package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/campushelp/helpdesk/internal/api/http"
	"github.com/campushelp/helpdesk/internal/api/http/handlers"
	"github.com/campushelp/helpdesk/internal/auth"
	"github.com/campushelp/helpdesk/internal/config"
	"github.com/campushelp/helpdesk/internal/events"
	"github.com/campushelp/helpdesk/internal/mail"
	"github.com/campushelp/helpdesk/internal/observability"
	"github.com/campushelp/helpdesk/internal/persistence"
	"github.com/campushelp/helpdesk/internal/repository"
	"github.com/campushelp/helpdesk/internal/service"
	"github.com/campushelp/helpdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	changeRepo := repository.NewStatusChangeRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	var mailer mail.Mailer
	if cfg.Mail.Username != "" {
		mailer = mail.NewSMTPMailer(cfg.Mail)
	} else {
		logger.Warn("MAIL_USERNAME not set; using log-only mail transport")
		mailer = mail.NewLogMailer(logger)
	}

	notificationService := service.NewNotificationService(dispatcher, mailer, logger, cfg.Mail)
	worker.StartNotificationWorker(notificationService)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:       ticketRepo,
		NoteRepo:         noteRepo,
		StatusChangeRepo: changeRepo,
		Dispatcher:       dispatcher,
	})

	sessions := auth.NewSessionManager(auth.NewRedisSessionStore(redis.Client), cfg.Auth.SessionTTL())
	authService := service.NewAuthService(staffRepo, sessions, cfg.Auth.BcryptCost, logger)
	if err := authService.EnsureAdminAccount(ctx, cfg.Auth); err != nil {
		logger.Fatal("failed to ensure admin account", zap.Error(err))
	}

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:         handlers.NewTicketsHandler(ticketService),
		Staff:           handlers.NewStaffHandler(authService, cfg.Auth.SessionTTL()),
		StaffTickets:    handlers.NewStaffTicketsHandler(ticketService),
		StaffMiddleware: auth.NewStaffMiddleware(sessions),
		SubmitLimiter:   httptransport.SubmitRateLimiter(redis.Client, cfg.App.SubmitRatePerMinute, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
