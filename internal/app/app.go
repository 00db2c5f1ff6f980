package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/blog-portal/internal/actions"
	"github.com/bobmcallan/blog-portal/internal/cache"
	"github.com/bobmcallan/blog-portal/internal/client"
	"github.com/bobmcallan/blog-portal/internal/common"
	"github.com/bobmcallan/blog-portal/internal/config"
	"github.com/bobmcallan/blog-portal/internal/handlers"
	"github.com/bobmcallan/blog-portal/internal/interfaces"
	"github.com/bobmcallan/blog-portal/internal/mcp"
	"github.com/bobmcallan/blog-portal/internal/notify"
	"github.com/bobmcallan/blog-portal/internal/seed"
	"github.com/bobmcallan/blog-portal/internal/session"
	"github.com/bobmcallan/blog-portal/internal/storage"
	"github.com/bobmcallan/blog-portal/internal/store"
	"github.com/bobmcallan/blog-portal/internal/upload"
)

// recentToasts bounds the notification history.
const recentToasts = 100

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Storage    interfaces.StorageManager
	Store      *store.Store
	Bus        *notify.Bus
	Recorder   *notify.Recorder
	Client     *client.BlogClient
	Dispatcher *actions.Dispatcher

	// HTTP handlers
	HealthHandler        *handlers.HealthHandler
	VersionHandler       *handlers.VersionHandler
	ServerHealthHandler  *handlers.ServerHealthHandler
	StateHandler         *handlers.StateHandler
	NotificationsHandler *handlers.NotificationsHandler
	MCPHandler           *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("running in dev mode, dev users are seeded from import/users.json")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	if err := a.initStore(); err != nil {
		return nil, err
	}
	if err := a.initDispatcher(); err != nil {
		a.Close()
		return nil, err
	}
	a.initHandlers()

	if cfg.IsDevMode() {
		go seed.DevUsers(context.Background(), a.Client, logger)
	}

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initStore opens storage and seeds the store with the persisted login.
func (a *App) initStore() error {
	mgr, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.Storage = mgr

	persister := session.NewPersister(mgr.KeyValueStorage())
	ua, err := persister.Load(context.Background())
	if err != nil {
		// A corrupt userInfo record starts the client logged out.
		a.Logger.Warn().Err(err).Msg("failed to load persisted login")
		ua = nil
	}
	if ua != nil {
		a.Logger.Info().Str("user_id", ua.ID).Msg("restored persisted login")
	}

	a.Store = store.New(ua)
	return nil
}

// initDispatcher builds the client, the outcome bus and the dispatcher.
func (a *App) initDispatcher() error {
	opts := []client.Option{client.WithLogger(a.Logger)}
	if ttl := a.Config.API.GetCacheTTL(); ttl > 0 {
		opts = append(opts, client.WithCache(cache.New(ttl, a.Config.API.CacheMaxEntries)))
		a.Logger.Debug().Dur("ttl", ttl).Msg("response cache enabled")
	}
	a.Client = client.NewBlogClient(a.Config.API.URL, a.Config.API.GetTimeout(), opts...)

	uploads, err := upload.NewPreparer(a.Config.Upload)
	if err != nil {
		return fmt.Errorf("invalid upload config: %w", err)
	}

	a.Recorder = notify.NewRecorder(recentToasts)
	a.Bus = notify.NewBus()
	a.Bus.Subscribe(notify.Toaster(a.Recorder.Add))
	a.Bus.Subscribe(notify.LogSink(a.Logger))

	a.Dispatcher = actions.NewDispatcher(
		a.Client,
		a.Store,
		a.Bus,
		session.NewPersister(a.Storage.KeyValueStorage()),
		uploads,
		a.Logger,
	)
	return nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger, a.Config.API.URL)
	a.ServerHealthHandler = handlers.NewServerHealthHandler(a.Logger, a.Config.API.URL)
	a.StateHandler = handlers.NewStateHandler(a.Store, a.Logger)
	a.NotificationsHandler = handlers.NewNotificationsHandler(a.Recorder)
	a.MCPHandler = mcp.NewHandler(a.Config, mcp.NewTools(a.Dispatcher, a.Recorder), a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
