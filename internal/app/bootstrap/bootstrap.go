package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	card "cardhub/contexts/card-directory/card-service"
	cardmemory "cardhub/contexts/card-directory/card-service/adapters/memory"
	cardmongo "cardhub/contexts/card-directory/card-service/adapters/mongo"
	cardpostgres "cardhub/contexts/card-directory/card-service/adapters/postgres"
	cardsystem "cardhub/contexts/card-directory/card-service/adapters/system"
	cardports "cardhub/contexts/card-directory/card-service/ports"
	user "cardhub/contexts/identity-access/user-service"
	"cardhub/contexts/identity-access/user-service/adapters/credentials"
	usermemory "cardhub/contexts/identity-access/user-service/adapters/memory"
	usermongo "cardhub/contexts/identity-access/user-service/adapters/mongo"
	userpostgres "cardhub/contexts/identity-access/user-service/adapters/postgres"
	usersystem "cardhub/contexts/identity-access/user-service/adapters/system"
	"cardhub/contexts/identity-access/user-service/application/commands"
	userports "cardhub/contexts/identity-access/user-service/ports"
	"cardhub/internal/app/bridge"
	"cardhub/internal/platform/auth"
	"cardhub/internal/platform/config"
	"cardhub/internal/platform/db"
	"cardhub/internal/platform/httpserver"

	"go.uber.org/multierr"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server          *httpserver.Server
	stores          stores
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// MigrateApp prepares the configured store (schema or indexes, admin seed)
// and exits.
type MigrateApp struct {
	cfg    config.Config
	stores stores
	users  user.Module
	logger *slog.Logger
}

// stores is the driver-specific half of the wiring. Everything above the
// repository ports is identical across drivers.
type stores struct {
	driver  string
	users   userports.Repository
	cards   cardports.Repository
	health  httpserver.HealthCheck
	prepare func(ctx context.Context) error
	close   func() error
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, "api")

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return nil, multierr.Append(err, st.close())
	}
	users, cards := buildModules(cfg, st, signer, logger)

	if cfg.AutoMigrate {
		if err := st.prepare(ctx); err != nil {
			return nil, multierr.Append(err, st.close())
		}
	}
	if err := seedAdmin(ctx, cfg, users, logger); err != nil {
		return nil, multierr.Append(err, st.close())
	}

	server := httpserver.New(users, cards, signer, logger, httpserver.Options{
		Addr:               cfg.HTTPAddr(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Health:             st.health,
	})
	return &APIApp{
		server:          server,
		stores:          st,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

func BuildMigrate(ctx context.Context) (*MigrateApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, "migrate")
	if cfg.StoreDriver == config.StoreDriverMemory {
		return nil, errors.New("migrate requires STORE_DRIVER postgres or mongo")
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return nil, multierr.Append(err, st.close())
	}
	users, _ := buildModules(cfg, st, signer, logger)
	return &MigrateApp{
		cfg:    cfg,
		stores: st,
		users:  users,
		logger: logger,
	}, nil
}

func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pg, err := db.Connect(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return stores{}, err
		}
		userRepo := userpostgres.NewRepository(pg.DB, logger)
		cardRepo := cardpostgres.NewRepository(pg.DB, logger)
		return stores{
			driver: cfg.StoreDriver,
			users:  userRepo,
			cards:  cardRepo,
			health: pg.Ping,
			prepare: func(ctx context.Context) error {
				if err := userRepo.AutoMigrate(ctx); err != nil {
					return err
				}
				return cardRepo.AutoMigrate(ctx)
			},
			close: pg.Close,
		}, nil

	case config.StoreDriverMongo:
		mg, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return stores{}, err
		}
		userRepo := usermongo.NewRepository(mg.Database, logger)
		cardRepo := cardmongo.NewRepository(mg.Database, logger)
		return stores{
			driver: cfg.StoreDriver,
			users:  userRepo,
			cards:  cardRepo,
			health: mg.Ping,
			prepare: func(ctx context.Context) error {
				return multierr.Combine(
					userRepo.EnsureIndexes(ctx),
					cardRepo.EnsureIndexes(ctx),
				)
			},
			close: mg.Close,
		}, nil

	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; data is lost on restart",
			"event", "bootstrap_memory_store",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return stores{
			driver:  cfg.StoreDriver,
			users:   usermemory.NewStore(),
			cards:   cardmemory.NewStore(),
			prepare: func(context.Context) error { return nil },
			close:   func() error { return nil },
		}, nil

	default:
		return stores{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func buildModules(cfg config.Config, st stores, signer *auth.Signer, logger *slog.Logger) (user.Module, card.Module) {
	cards := card.NewModule(card.Dependencies{
		Repository:  st.cards,
		Users:       bridge.UserDirectory{Users: st.users},
		Clock:       cardsystem.SystemClock{},
		IDGenerator: cardsystem.UUIDGenerator{},
		Logger:      logger,
	})
	users := user.NewModule(user.Dependencies{
		Repository:  st.users,
		Hasher:      credentials.NewBcryptHasher(cfg.BcryptCost),
		Tokens:      credentials.TokenIssuer{Signer: signer},
		Cards:       bridge.CardPurger{Purge: cards.PurgeOwner},
		Clock:       usersystem.SystemClock{},
		IDGenerator: usersystem.UUIDGenerator{},
		Logger:      logger,
	})
	return users, cards
}

func seedAdmin(ctx context.Context, cfg config.Config, users user.Module, logger *slog.Logger) error {
	if cfg.SeedAdminEmail == "" {
		return nil
	}
	admin, created, err := users.SeedAdmin.Execute(ctx, commands.SeedAdminCommand{
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	logger.Info("admin account ready",
		"event", "bootstrap_admin_ready",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"user_id", admin.UserID,
		"created", created,
	)
	return nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"store_driver", a.stores.driver,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := a.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return multierr.Combine(a.server.Shutdown(shutdownCtx), <-errCh)
}

func (a *APIApp) Close() error {
	if a.stores.close == nil {
		return nil
	}
	return a.stores.close()
}

func (m *MigrateApp) Run(ctx context.Context) error {
	if err := m.stores.prepare(ctx); err != nil {
		return err
	}
	m.logger.Info("store prepared",
		"event", "bootstrap_store_prepared",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"store_driver", m.stores.driver,
	)
	return seedAdmin(ctx, m.cfg, m.users, m.logger)
}

func (m *MigrateApp) Close() error {
	if m.stores.close == nil {
		return nil
	}
	return m.stores.close()
}

func newLogger(cfg config.Config, process string) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.LogFormat), "text") {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return slog.Default().With("service", cfg.ServiceName, "process", process)
}
