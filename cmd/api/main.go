// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/config"
	"github.com/your-org/store-pilot/internal/domain/assistant"
	"github.com/your-org/store-pilot/internal/domain/catalog"
	"github.com/your-org/store-pilot/internal/domain/command"
	"github.com/your-org/store-pilot/internal/domain/negotiation"
	"github.com/your-org/store-pilot/internal/domain/session"
	"github.com/your-org/store-pilot/internal/infrastructure/database/postgres"
	"github.com/your-org/store-pilot/internal/infrastructure/database/redis"
	"github.com/your-org/store-pilot/internal/infrastructure/kv"
	"github.com/your-org/store-pilot/internal/infrastructure/llm"
	"github.com/your-org/store-pilot/internal/infrastructure/messaging"
	"github.com/your-org/store-pilot/internal/infrastructure/messaging/kafka"
	"github.com/your-org/store-pilot/internal/interfaces/http"
	"github.com/your-org/store-pilot/internal/interfaces/http/routes"
	"github.com/your-org/store-pilot/internal/pkg/auth"
	"github.com/your-org/store-pilot/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log, logFile, err := logger.New(cfg.Logging)
	if err != nil {
		logrus.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("Starting %s", cfg.App.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]http.HealthChecker{}
	var recorders negotiation.MultiRecorder
	var audit *postgres.AuditRepository

	// Connect to database
	var db *postgres.DB
	if cfg.Database.Enabled {
		db, err = postgres.NewConnection(cfg, log)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		checks["database"] = db

		migration := postgres.NewMigration(db.GetDB(), log)
		if err := migration.RunAutoMigrations(); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}
		if err := migration.CreateIndexes(); err != nil {
			log.WithError(err).Warn("Index creation failed")
		}

		audit = postgres.NewAuditRepository(db.GetDB())
		recorders = append(recorders, audit)
	}

	products, err := loadCatalog(ctx, cfg, db, log)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.WithField("products", products.Len()).Info("Catalog loaded")

	// Connect to Redis
	var redisClient goredis.Cmdable
	var state kv.Store = kv.NewMemory()
	if cfg.Redis.Enabled {
		client, err := redis.NewConnection(cfg, log)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		checks["redis"] = client

		redisClient = client.GetClient()
		state = kv.NewRedis(client.GetClient(), cfg.Redis.KeyPrefix, cfg.Session.StateTTL)
	} else {
		log.Warn("Redis disabled: session state is kept in memory and rate limiting is off")
	}

	if cfg.Kafka.Enabled {
		broker := kafka.NewBroker(cfg.Kafka.Brokers, log)
		defer broker.Close()
		recorders = append(recorders, messaging.NewEventPublisher(broker, cfg.Kafka.Topic))
	}

	sessionOpts := []session.Option{
		session.WithKV(state),
		session.WithRecorder(recorders),
		session.WithIdleTimeout(cfg.Session.IdleTimeout),
		session.WithLogger(log),
	}
	if cfg.Haggle.Seeded {
		sessionOpts = append(sessionOpts, session.WithSeed(cfg.Haggle.Seed))
	}
	sessions := session.NewManager(products, sessionOpts...)
	go sessions.Run(ctx, time.Minute)

	chat, err := assistant.NewService(
		llm.NewOpenAI(cfg.LLM, log),
		log,
		assistant.WithMaxFunctionCalls(cfg.LLM.MaxFunctionCalls),
	)
	if err != nil {
		log.Fatalf("Failed to create assistant: %v", err)
	}

	deps := routes.Dependencies{
		Sessions:  sessions,
		Assistant: chat,
		Executor:  command.NewExecutor(log),
		JWT:       auth.NewJWTManager(cfg),
		Logger:    log,
	}
	if audit != nil {
		deps.Audit = audit
	}

	server := http.NewServer(cfg, deps, redisClient, checks, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}

// loadCatalog reads products from the configured source. In development the
// products table is seeded from the catalog file.
func loadCatalog(ctx context.Context, cfg *config.Config, db *postgres.DB, log logrus.FieldLogger) (*catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("catalog source %s needs a database", cfg.Catalog.Source)
		}
		if cfg.IsDevelopment() {
			if fileCatalog, err := catalog.LoadFile(cfg.Catalog.Path); err == nil {
				if err := postgres.NewMigration(db.GetDB(), log).SeedCatalog(ctx, fileCatalog); err != nil {
					log.WithError(err).Warn("Catalog seeding failed")
				}
			} else {
				log.WithError(err).Warn("No catalog file to seed from")
			}
		}
		return postgres.NewCatalogRepository(db.GetDB()).Load(ctx)
	default:
		return catalog.LoadFile(cfg.Catalog.Path)
	}
}
