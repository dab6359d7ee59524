package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/reklai/harpoon-telescope/internal/app/messaging"
	"github.com/reklai/harpoon-telescope/internal/application/usecase"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/infrastructure/bridge"
	"github.com/reklai/harpoon-telescope/internal/infrastructure/config"
	"github.com/reklai/harpoon-telescope/internal/infrastructure/persistence/sqlite"
	"github.com/reklai/harpoon-telescope/internal/infrastructure/telemetry"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

const stopTimeout = 5 * time.Second

// Daemon is the long-running process the extension connects to. It owns
// the slot list, the sessions and every background restore loop.
type Daemon struct {
	db      *sql.DB
	metrics *telemetry.Metrics
	tracing *telemetry.Provider

	Bridge    *bridge.Server
	Restorer  *usecase.ScrollRestorer
	Slots     *usecase.TabManager
	Sessions  *usecase.SessionStore
	Lifecycle *usecase.LifecycleReconciler
	Router    *messaging.Router
}

// NewDaemon wires the daemon from a loaded config. ctx bounds every
// background loop and should be cancelled to stop the daemon.
func NewDaemon(ctx context.Context, mgr *config.Manager) (*Daemon, error) {
	cfg := mgr.Get()
	if cfg == nil {
		return nil, errors.New("config not loaded")
	}
	log := logging.FromContext(ctx)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var metrics *telemetry.Metrics
	if cfg.Telemetry.MetricsEnabled {
		metrics = telemetry.NewMetrics()
	}
	tracing, err := telemetry.NewProvider(telemetry.TracingConfig{
		Enabled:     cfg.Telemetry.TracingEnabled,
		Exporter:    cfg.Telemetry.TraceExporter,
		FilePath:    cfg.Telemetry.TraceFile,
		SampleRate:  cfg.Telemetry.SampleRate,
		ServiceName: "harpoon",
	})
	if err != nil {
		_ = sqlite.Close(db)
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Timings are read on every use so a config reload applies to the next
	// operation without a restart.
	messageTimeout := func() time.Duration { return mgr.Get().Bridge.MessageTimeout() }

	// Set below; the bridge only calls the hook once Run accepts connections.
	var slots *usecase.TabManager

	server := bridge.NewServer(ctx, bridge.Options{
		Addr:        cfg.Bridge.ListenAddr,
		CallTimeout: messageTimeout,
		Metrics:     metrics,
		// A browser that started before the daemon never delivers
		// host_startup to it. Reconciling on connect still marks the dead
		// handles closed; clearing the list stays tied to host_startup.
		OnConnect: func(ctx context.Context) {
			if _, err := slots.Reconcile(ctx); err != nil {
				logging.FromContext(ctx).Warn().Err(err).Msg("reconcile on connect failed")
			}
		},
	})

	restorer := usecase.NewScrollRestorer(ctx, server,
		usecase.WithRetryDelays(func() []time.Duration { return mgr.Get().Scroll.RetryDelays() }),
		usecase.WithAttemptTimeout(messageTimeout),
		usecase.WithRestoreObserver(func(outcome usecase.RestoreOutcome) {
			metrics.RecordRestore(string(outcome))
		}),
	)

	notifier := messaging.NewNotifier(server, nil, messageTimeout)

	slots = usecase.NewTabManager(sqlite.NewSlotRepository(db), server, server, restorer, usecase.TabManagerOptions{
		MessageTimeout: messageTimeout,
		UpdateDebounce: func() time.Duration { return mgr.Get().Tabs.UpdateDebounce() },
		OnTabClosed: func(_ context.Context, id entity.TabID) {
			notifier.Forget(id)
		},
	})
	sessions := usecase.NewSessionStore(sqlite.NewSessionRepository(db), slots, server, restorer)

	lifecycle := usecase.NewLifecycleReconciler(ctx, sessions, slots, server, server,
		func() usecase.LifecycleTimings {
			lc := mgr.Get().Lifecycle
			return usecase.LifecycleTimings{
				InitialDelay: lc.InitialDelay(),
				Attempts:     lc.PromptAttempts,
				Interval:     lc.PromptInterval(),
			}
		},
		messageTimeout,
	)

	router := messaging.NewRouter(ctx, messaging.Services{
		Slots:     slots,
		Sessions:  sessions,
		Scrolls:   restorer,
		Lifecycle: lifecycle,
		Host:      server,
		Notifier:  notifier,
	},
		messaging.WithDeduplicator(messaging.NewRequestDeduplicator(cfg.Bridge.DedupWindow())),
		messaging.WithMetrics(metrics),
		messaging.WithTracer(tracing.Tracer()),
	)

	mgr.OnConfigChange(func(next *config.Config) {
		log.Info().
			Str("log_level", next.Logging.Level).
			Int("message_timeout_ms", next.Bridge.MessageTimeoutMs).
			Msg("configuration reloaded")
		if next.Bridge.ListenAddr != cfg.Bridge.ListenAddr {
			log.Warn().Str("listen_addr", next.Bridge.ListenAddr).Msg("bridge address change takes effect after restart")
		}
	})

	log.Debug().
		Str("db_path", cfg.Database.Path).
		Bool("metrics", metrics != nil).
		Bool("tracing", tracing.Enabled()).
		Msg("daemon wired")

	return &Daemon{
		db:        db,
		metrics:   metrics,
		tracing:   tracing,
		Bridge:    server,
		Restorer:  restorer,
		Slots:     slots,
		Sessions:  sessions,
		Lifecycle: lifecycle,
		Router:    router,
	}, nil
}

// Inbound adapts the router to the bridge.
func (d *Daemon) Inbound(ctx context.Context, raw []byte) *bridge.Reply {
	resp := d.Router.Handle(ctx, raw)
	if resp == nil {
		return nil
	}
	return &bridge.Reply{OK: resp.OK, Error: resp.Reason, Data: resp.Data}
}

// Run serves the extension until ctx is cancelled, then waits for
// background deliveries to notice the cancellation.
func (d *Daemon) Run(ctx context.Context) error {
	err := d.Bridge.Run(ctx, d.Inbound)

	d.Router.Wait()
	d.Lifecycle.Wait()
	d.Restorer.Wait()
	return err
}

// Close releases resources. Call it once, after Run returned.
func (d *Daemon) Close() error {
	d.Slots.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return errors.Join(d.tracing.Shutdown(shutdownCtx), sqlite.Close(d.db))
}

// DaemonLogger builds the daemon logger from config: console or JSON on
// stderr, plus a rotating file when enabled.
func DaemonLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	return logging.NewWithFile(
		logging.Config{
			Level:      logging.ParseLevel(cfg.Logging.Level),
			Format:     cfg.Logging.Format,
			TimeFormat: time.RFC3339,
		},
		logging.FileConfig{
			Enabled:       cfg.Logging.EnableFileLog,
			LogDir:        cfg.Logging.LogDir,
			SessionID:     logging.GenerateSessionID(),
			MaxSizeMB:     cfg.Logging.MaxSizeMB,
			MaxBackups:    cfg.Logging.MaxBackups,
			MaxAgeDays:    cfg.Logging.MaxAgeDays,
			Compress:      cfg.Logging.Compress,
			WriteToStderr: true,
		},
	)
}
