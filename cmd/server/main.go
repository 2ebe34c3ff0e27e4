package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"enrolpay/internal/config"
	"enrolpay/internal/domain"
	"enrolpay/internal/handler"
	"enrolpay/internal/notify/noop"
	"enrolpay/internal/notify/ses"
	"enrolpay/internal/notify/smsgateway"
	"enrolpay/internal/port"
	"enrolpay/internal/repository/postgres"
	"enrolpay/internal/router"
	"enrolpay/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	agencyRepo := postgres.NewAgencyRepo(db)
	planRepo := postgres.NewPaymentPlanRepo(db)
	installmentRepo := postgres.NewInstallmentRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)
	jobRunRepo := postgres.NewJobRunRepo(db)
	auditRepo := postgres.NewAuditRepo(db)

	// Initialize channel providers
	senders, err := buildSenders(cfg)
	if err != nil {
		return err
	}

	// Initialize services
	runner := service.NewJobRunner(jobRunRepo)
	engine := service.NewStatusEngine(agencyRepo, installmentRepo, auditRepo, runner, cfg.Scheduler.AgencyConcurrency)
	dispatcher := service.NewDispatcher(agencyRepo, installmentRepo, notificationRepo, auditRepo, runner, senders)
	commissionSvc := service.NewCommissionService(planRepo, installmentRepo)
	reportingSvc := service.NewReportingService(agencyRepo, installmentRepo, notificationRepo, jobRunRepo, auditRepo)

	// Initialize handlers
	jobH := handler.NewJobHandler(engine, dispatcher)
	reportH := handler.NewReportHandler(reportingSvc, commissionSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(jobH, reportH, healthH, cfg.CORS.AllowedOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the periodic pipeline trigger
	if cfg.Scheduler.Enabled {
		worker := service.NewSchedulerWorker(engine, dispatcher, service.SchedulerConfig{
			Interval: time.Duration(cfg.Scheduler.IntervalMins) * time.Minute,
		})
		go worker.Start(ctx)
	} else {
		log.Printf("scheduler: disabled, jobs run only via API triggers")
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func buildSenders(cfg *config.Config) (map[domain.NotificationChannel]port.MessageSender, error) {
	senders := map[domain.NotificationChannel]port.MessageSender{}

	switch cfg.Email.Provider {
	case "ses":
		emailSender, err := ses.NewSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		senders[domain.ChannelEmail] = emailSender
	default:
		senders[domain.ChannelEmail] = noop.NewSender("email")
	}

	switch cfg.SMS.Provider {
	case "gateway":
		senders[domain.ChannelSMS] = smsgateway.NewSender(
			cfg.SMS.GatewayURL, cfg.SMS.APIKey, cfg.SMS.SenderID,
			time.Duration(cfg.SMS.TimeoutSecs)*time.Second)
	default:
		senders[domain.ChannelSMS] = noop.NewSender("sms")
	}

	return senders, nil
}
