package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"clinicore/internal/audit"
	"clinicore/internal/auth/hasher"
	authservice "clinicore/internal/auth/service"
	authstore "clinicore/internal/auth/store"
	"clinicore/internal/auth/store/refresh"
	"clinicore/internal/auth/token"
	"clinicore/internal/events"
	patientservice "clinicore/internal/patient/service"
	patientstore "clinicore/internal/patient/store"
	"clinicore/internal/platform/config"
	"clinicore/internal/platform/httpserver"
	"clinicore/internal/platform/logger"
	"clinicore/internal/platform/metrics"
	platformredis "clinicore/internal/platform/redis"
	httptransport "clinicore/internal/transport/http"
)

// main wires the dependency graph and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores default to in-memory; a DSN switches both contexts to Postgres.
	var (
		patients patientservice.PatientStore
		users    authservice.UserStore
	)
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		patients = patientstore.NewPostgresStore(db)
		users = authstore.NewPostgresUserStore(db)
		log.Info("using postgres stores")
	} else {
		patients = patientstore.NewMemoryStore()
		users = authstore.NewMemoryUserStore()
		log.Info("using in-memory stores")
	}

	var refreshStore authservice.RefreshTokenStore
	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		refreshStore = refresh.NewRedisStore(redisClient.Client)
		log.Info("using redis refresh token store")
	} else {
		refreshStore = refresh.NewMemoryStore()
	}

	var eventPublisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		defer kafkaPublisher.Close()
		eventPublisher = kafkaPublisher
		log.Info("publishing domain events to kafka", "topic", cfg.KafkaTopic)
	} else {
		eventPublisher = events.NewInMemoryPublisher()
	}

	auditStore := audit.NewInMemoryStore()
	auditInbox := make(chan audit.Event, 256)
	auditPublisher := audit.NewChannelPublisher(auditInbox)
	auditWorker := audit.NewWorker(auditStore, auditInbox)

	m := metrics.New()

	passwordHasher := hasher.NewBcryptHasher(cfg.BcryptCost)
	tokenIssuer := token.NewJWTIssuer(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTokenTTL)

	patientSvc := patientservice.New(patients,
		patientservice.WithLogger(log),
		patientservice.WithAuditPublisher(auditPublisher),
		patientservice.WithEventPublisher(eventPublisher),
		patientservice.WithMetrics(m),
	)
	authSvc := authservice.New(users, passwordHasher, tokenIssuer,
		authservice.WithLogger(log),
		authservice.WithAuditPublisher(auditPublisher),
		authservice.WithEventPublisher(eventPublisher),
		authservice.WithMetrics(m),
		authservice.WithRefreshTokenStore(refreshStore, cfg.RefreshTokenTTL),
	)

	router := httptransport.NewRouter(patientSvc, authSvc)
	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return auditWorker.Run(ctx)
	})
	g.Go(func() error {
		log.Info("starting clinicore", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("clinicore stopped")
	return nil
}
