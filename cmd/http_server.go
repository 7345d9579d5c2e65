package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/netfibra/backoffice/internal"
	"github.com/netfibra/backoffice/internal/auth"
	authPostgres "github.com/netfibra/backoffice/internal/auth/postgres"
	"github.com/netfibra/backoffice/internal/catalog"
	catalogPostgres "github.com/netfibra/backoffice/internal/catalog/postgres"
	"github.com/netfibra/backoffice/internal/core/events"
	"github.com/netfibra/backoffice/internal/material"
	materialPostgres "github.com/netfibra/backoffice/internal/material/postgres"
	"github.com/netfibra/backoffice/internal/notification"
	"github.com/netfibra/backoffice/internal/partner"
	partnerPostgres "github.com/netfibra/backoffice/internal/partner/postgres"
	"github.com/netfibra/backoffice/internal/pricelist"
	pricelistPostgres "github.com/netfibra/backoffice/internal/pricelist/postgres"
	"github.com/netfibra/backoffice/internal/rbac"
	rbacPostgres "github.com/netfibra/backoffice/internal/rbac/postgres"
	"github.com/netfibra/backoffice/internal/tenant"
	tenantPostgres "github.com/netfibra/backoffice/internal/tenant/postgres"
	"github.com/netfibra/backoffice/internal/transport/rest"
	"github.com/netfibra/backoffice/internal/user"
	userPostgres "github.com/netfibra/backoffice/internal/user/postgres"
	"github.com/netfibra/backoffice/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	RBACService *rbac.Service
	Handlers    rest.Handlers
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.Handlers,
		deps.RBACService,
		deps.Config.Server.AllowedOrigins,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWith(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewEventBus(log)

	var mailer notification.Mailer
	if config.Email.Enabled {
		mailer = notification.NewSMTPMailer(config.Email)
	} else {
		mailer = notification.NewNoopMailer(log)
	}
	notification.NewSubscriber(mailer, log).Register(bus)
	notification.NewAuditSubscriber(log).Register(bus)

	authService := auth.NewService(
		authPostgres.NewAuthRepository(gormDB),
		auth.NewJWTTokenGenerator(config.Security),
		config.Security.BCryptCost,
		log,
	)
	catalogService := catalog.NewService(catalogPostgres.NewCatalogRepository(gormDB), bus, log)
	materialService := material.NewService(materialPostgres.NewMaterialRepository(gormDB), log)
	pricelistService := pricelist.NewService(pricelistPostgres.NewPriceListRepository(gormDB), bus, log)
	rbacService := rbac.NewService(rbacPostgres.NewRBACRepository(gormDB), bus, log)
	partnerService := partner.NewService(partnerPostgres.NewPartnerRepository(gormDB), log)
	tenantService := tenant.NewService(tenantPostgres.NewTenantRepository(gormDB), log)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), authService, bus, log)

	return &Dependencies{
		Config:      config,
		DB:          db,
		GormDB:      gormDB,
		Router:      chi.NewRouter(),
		Logger:      log,
		RBACService: rbacService,
		Handlers: rest.Handlers{
			Auth:      auth.NewHandler(authService),
			Catalog:   catalog.NewHandler(catalogService),
			Material:  material.NewHandler(materialService),
			Pricelist: pricelist.NewHandler(pricelistService),
			RBAC:      rbac.NewHandler(rbacService),
			Partner:   partner.NewHandler(partnerService),
			Tenant:    tenant.NewHandler(tenantService),
			User:      user.NewHandler(userService),
		},
	}, nil
}

// initDB opens one pgx-backed pool and hands the same connection to both the
// sqlx handle (health checks, raw queries) and gorm (repositories).
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB}), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm over pgx: %w", err)
	}

	return dbConn, gormDB, nil
}
