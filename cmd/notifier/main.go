package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lostfound/config"
	"lostfound/internal/audit"
	"lostfound/internal/db"
	"lostfound/internal/mailer"
	"lostfound/internal/mq"
	"lostfound/internal/mqhandler"
	redisclient "lostfound/internal/redis"
	"lostfound/internal/repository"
	"lostfound/internal/service/notifier"
	"lostfound/internal/util"
)

func main() {
	// Load config
	cfg := config.Load()

	logger := util.NewLogger()
	defer logger.Sync()

	logger.Info("Starting claim notifier service...")

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, 24*time.Hour, logger)

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Audit trails: one for mail-send attempts, one for workflow traces.
	mailTrail := audit.NewTrail(cfg.Audit.MailLog, logger)
	traceTrail := audit.NewTrail(cfg.Audit.TraceLog, logger)

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn, logger)
	itemRepo := repository.NewItemRepository(dbConn, logger)
	notiRepo := repository.NewNotificationRepository(dbConn, logger)

	mail := mailer.New(cfg.SMTP, mailTrail, logger)

	svc := notifier.New(
		&notifier.PoolSessionSource{Pool: dbConn},
		itemRepo,
		userRepo,
		notiRepo,
		mail,
		traceTrail,
		logger,
		time.Duration(cfg.Notifier.RunTimeoutSeconds)*time.Second,
	)

	handler := mqhandler.NewClaimResolvedHandler(svc, deduper, logger)

	logger.Info("Initializing claim resolved consumer", zap.String("queue", "claim.resolved.notify.q"))
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "claim.resolved.notify.q", mq.RoutingKeyClaimResolved, logger)
	if err != nil {
		logger.Fatal("failed to init claim resolved consumer", zap.Error(err))
	}
	consumer.SetHandler(handler.HandleClaimResolved)
	go func() {
		logger.Info("Starting claim resolved consumer")
		if err := consumer.StartConsuming(); err != nil {
			logger.Fatal("claim resolved consumer failed", zap.Error(err))
		}
	}()
	defer consumer.Close()

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		logger.Info("Serving metrics", zap.String("addr", cfg.Notifier.MetricsAddr))
		if err := http.ListenAndServe(cfg.Notifier.MetricsAddr, nil); err != nil {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	logger.Info("Consumer started, notifier is ready to process claim resolutions")

	// Keep service running
	select {}
}
