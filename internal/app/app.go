package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/db"
	httpX "github.com/sourcexpress/sourcexpress-backend/internal/http"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
	"github.com/sourcexpress/sourcexpress-backend/internal/realtime"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services
	Hub      *realtime.Hub

	server *httpX.Server
	cancel context.CancelFunc
}

func New(tracing bool) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := pg.DB()

	hub := realtime.NewHub(log)

	clients, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients, hub)
	handlerset := wireHandlers(theDB, log, serviceset, hub)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, handlerset, middleware, tracing)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Clients:  clients,
		Services: serviceset,
		Hub:      hub,
	}, nil
}

// Start launches the background loops: the compliance sweeper and, when a
// redis bus is wired, the forwarder that fans bus events into the local hub.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	go a.Services.Compliance.Run(ctx)

	if a.Clients.EventBus != nil {
		if err := a.Clients.EventBus.StartForwarder(ctx, a.Hub.Broadcast); err != nil {
			a.Log.Warn("realtime forwarder failed to start", "error", err)
		}
	}
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.server = &httpX.Server{Engine: a.Router}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.server.Run(":" + a.Cfg.Port)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.Log.Warn("server shutdown", "error", err)
		}
	}
	a.Clients.Close()
	if a.Log != nil {
		a.Log.Sync()
	}
}
