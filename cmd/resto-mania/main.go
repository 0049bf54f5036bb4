package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/api"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/config"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/db"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/live"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/notify"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/repository"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)
	if level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Database, log.WithField("component", "db"))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	notifier, cleanup, err := buildNotifier(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize notifier")
	}
	defer cleanup()

	hub := live.NewHub(log.WithField("component", "hub"))
	sched := live.NewScheduler(ctx, log.WithField("component", "scheduler"))
	live.NewService(
		hub,
		sched,
		repository.NewSnapshotRepo(pool),
		notifier,
		cfg.Live,
		log.WithField("component", "live"),
	)

	handler := api.NewHandler(
		repository.NewOrderRepo(pool),
		repository.NewBillRepo(pool),
		repository.NewTableRepo(pool),
		repository.NewUserRepo(pool),
		repository.NewFeedbackRepo(pool),
		hub,
		log.WithField("component", "api"),
	)
	router := api.NewRouter(handler, cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("port", cfg.Server.Port).Info("server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		sched.StopAll()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("server exited with error")
	}
	log.Info("server stopped")
}

func buildNotifier(cfg *config.Config, log *logrus.Logger) (notify.Notifier, func(), error) {
	switch cfg.Notify.Kind {
	case "amqp":
		n, err := notify.NewAMQPNotifier(cfg.RabbitMQ.URL(), cfg.Notify.Exchange, log.WithField("component", "notify"))
		if err != nil {
			return nil, nil, err
		}
		return n, n.Close, nil
	default:
		n := notify.NewWebhookNotifier(cfg.Notify.OrderUpdateURL, cfg.Notify.BillUpdateURL, log.WithField("component", "notify"))
		return n, func() {}, nil
	}
}
