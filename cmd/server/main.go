package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/advisor"
	"github.com/ukydev/fleet-dashboard/internal/config"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/logging"
	"github.com/ukydev/fleet-dashboard/internal/mockdata"
	"github.com/ukydev/fleet-dashboard/internal/notify"
	"github.com/ukydev/fleet-dashboard/internal/observability"
	"github.com/ukydev/fleet-dashboard/internal/policy"
	"github.com/ukydev/fleet-dashboard/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := observability.Setup(ctx, observability.Options{
		Enabled:     cfg.OTelEnabled,
		ServiceName: cfg.OTelServiceName,
		Environment: cfg.AppEnv,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.WithError(err).Warn("Tracer shutdown failed")
		}
	}()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	advisorSvc := newAdvisor(ctx, cfg, log)
	publisher := newPublisher(cfg, log)
	defer publisher.Close()

	router := server.NewRouter(server.Dependencies{
		Store:             store,
		Evaluator:         policy.NewEvaluator(log),
		Advisor:           advisorSvc,
		Publisher:         publisher,
		Log:               log,
		DataSource:        cfg.DataSource,
		ServiceName:       cfg.OTelServiceName,
		Tracing:           cfg.OTelEnabled,
		CORSOrigins:       cfg.CORSOrigins,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore returns the configured data source. Mongo is seeded from the
// embedded demo fleet only when asked to via fleetctl seed.
func openStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (db.Store, error) {
	switch cfg.DataSource {
	case config.SourceMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
		return db.NewMongoStore(client, cfg.MongoDB), nil
	default:
		fleet, err := mockdata.Default()
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"users":    len(fleet.Users),
			"vehicles": len(fleet.Vehicles),
		}).Info("Serving the demo fleet from memory")
		return db.NewMemoryStore(fleet), nil
	}
}

// newAdvisor wires Gemini and the optional redis cache. Missing settings
// degrade to an unconfigured advisor rather than failing startup.
func newAdvisor(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) *advisor.Service {
	gen, err := advisor.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		if errors.Is(err, advisor.ErrNotConfigured) {
			log.Info("GEMINI_API_KEY not set; AI advisor disabled")
		} else {
			log.WithError(err).Warn("AI advisor disabled")
		}
		return advisor.NewService(nil, nil, 0, log)
	}

	var cache advisor.Cache
	if cfg.RedisAddr != "" {
		rdb, err := advisor.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable; advisor responses will not be cached")
		} else {
			cache = advisor.NewRedisCache(rdb)
		}
	}

	log.WithField("model", gen.Model()).Info("AI advisor enabled")
	return advisor.NewService(gen, cache, cfg.AdvisorCacheTTL, log)
}

func newPublisher(cfg *config.Config, log logrus.FieldLogger) notify.Publisher {
	if cfg.MQTTBroker == "" {
		return notify.NopPublisher{}
	}
	pub, err := notify.DialMQTT(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic)
	if err != nil {
		log.WithError(err).Warn("MQTT broker unavailable; policy alerts disabled")
		return notify.NopPublisher{}
	}
	log.WithField("topic", cfg.MQTTTopic).Info("Publishing policy alerts over MQTT")
	return pub
}
