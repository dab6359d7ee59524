// Package cli wires the harpoon daemon and its offline command line tools.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/reklai/harpoon-telescope/internal/application/usecase"
	"github.com/reklai/harpoon-telescope/internal/cli/styles"
	"github.com/reklai/harpoon-telescope/internal/infrastructure/bridge"
	"github.com/reklai/harpoon-telescope/internal/infrastructure/config"
	"github.com/reklai/harpoon-telescope/internal/infrastructure/persistence/sqlite"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

// App holds CLI dependencies.
//
// The CLI never talks to the extension: its host is a bridge that is not
// listening, so every browser call fails fast and only state stored in the
// database is read or edited.
type App struct {
	Config *config.Config
	Theme  *styles.Theme

	// ConfigFile is the file the config was read from. CreatedConfig is set
	// when this run wrote a default config.
	ConfigFile    string
	CreatedConfig string

	Slots    *usecase.TabManager
	Sessions *usecase.SessionStore

	db         *sqlite.LazyDB
	ctx        context.Context
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	// Quiet by default: the CLI only reports warnings unless asked for more.
	level := zerolog.WarnLevel
	if envLevel := os.Getenv("HARPOON_LOG_LEVEL"); envLevel != "" {
		level = logging.ParseLevel(envLevel)
	}
	logger, logCleanup, _ := logging.NewWithFile(
		logging.Config{Level: level, Format: cfg.Logging.Format, TimeFormat: "15:04:05"},
		logging.FileConfig{Enabled: false},
	)
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.Database.Path)

	offline := bridge.NewServer(ctx, bridge.Options{})
	restorer := usecase.NewScrollRestorer(ctx, offline)
	slots := usecase.NewTabManager(sqlite.NewLazySlotRepository(db), offline, offline, restorer, usecase.TabManagerOptions{})
	sessions := usecase.NewSessionStore(sqlite.NewLazySessionRepository(db), slots, offline, restorer)

	return &App{
		Config:        cfg,
		Theme:         styles.NewTheme(),
		ConfigFile:    mgr.GetConfigFile(),
		CreatedConfig: mgr.CreatedConfigFile(),
		Slots:         slots,
		Sessions:      sessions,
		db:            db,
		ctx:           ctx,
		logCleanup:    logCleanup,
	}, nil
}

// Ctx returns the context carrying the CLI logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// SlotsSavedAt reports when the slot list was last written.
func (a *App) SlotsSavedAt() (time.Time, bool, error) {
	db, err := a.db.DB(a.ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	return sqlite.NewKVStore(db).UpdatedAt(a.ctx, sqlite.SlotsKey)
}

// Close releases resources.
func (a *App) Close() error {
	if a.Slots != nil {
		a.Slots.Close()
	}
	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}
