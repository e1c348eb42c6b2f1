// Package realm parses realm command flags and starts the game runtime.
package realm

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/louisbranch/idlerealm/internal/notify"
	entrypoint "github.com/louisbranch/idlerealm/internal/platform/cmd"
	"github.com/louisbranch/idlerealm/internal/platform/logging"
	"github.com/louisbranch/idlerealm/internal/random"
	"github.com/louisbranch/idlerealm/internal/realm/event"
	"github.com/louisbranch/idlerealm/internal/realm/inventory"
	"github.com/louisbranch/idlerealm/internal/realm/item"
	"github.com/louisbranch/idlerealm/internal/realm/monster"
	"github.com/louisbranch/idlerealm/internal/realm/reconcile"
	"github.com/louisbranch/idlerealm/internal/realm/spell"
	"github.com/louisbranch/idlerealm/internal/realm/worldmap"
	"github.com/louisbranch/idlerealm/internal/storage/sqlite"
	"github.com/louisbranch/idlerealm/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// Config holds realm command configuration.
type Config struct {
	Port      int    `env:"IDLEREALM_PORT" envDefault:"8080"`
	Addr      string `env:"IDLEREALM_ADDR"`
	DBPath    string `env:"IDLEREALM_DB_PATH" envDefault:"idlerealm.db"`
	Locale    string `env:"IDLEREALM_LOCALE" envDefault:"en"`
	LogLevel  string `env:"IDLEREALM_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"IDLEREALM_LOG_FORMAT" envDefault:"text"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The notification server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The notification server listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database file")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for announcement copy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Runtime is the wired game core: the store, the announcement hub, and the
// event dispatcher the tick scheduler drives.
type Runtime struct {
	Store      *sqlite.Store
	Hub        *notify.Hub
	Dispatcher *event.Dispatcher
	Telemetry  *telemetry.Emitter
	Log        *logrus.Logger
}

// BuildRuntime wires the runtime from configuration.
func BuildRuntime(cfg Config) (*Runtime, error) {
	log := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	seed, err := random.NewSeed()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("seed rng: %w", err)
	}

	hub := notify.NewHub(log)
	emitter := telemetry.New(store, log)
	atlas := worldmap.NewAtlas()
	dispatcher := event.NewDispatcher(event.Deps{
		Store:     store,
		Notifier:  hub,
		Atlas:     atlas,
		Monsters:  monster.NewGenerator(atlas),
		Items:     item.NewGenerator(),
		Spells:    spell.NewGenerator(),
		Inventory: inventory.NewManager(),
		Reconcile: reconcile.NewChecker(hub, cfg.Locale, log),
		Telemetry: emitter,
		Rng:       rand.New(rand.NewSource(seed)),
		Locale:    cfg.Locale,
		Log:       log,
	})

	return &Runtime{
		Store:      store,
		Hub:        hub,
		Dispatcher: dispatcher,
		Telemetry:  emitter,
		Log:        log,
	}, nil
}

// Close releases the runtime's resources.
func (r *Runtime) Close() error {
	if r == nil {
		return nil
	}
	return r.Store.Close()
}

// Run builds the runtime and serves the announcement websocket until the
// context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRealm, func(ctx context.Context) error {
		rt, err := BuildRuntime(cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := cfg.Addr
		if addr == "" {
			addr = fmt.Sprintf(":%d", cfg.Port)
		}
		srv := &http.Server{
			Addr:    addr,
			Handler: notify.NewServer(rt.Hub, rt.Log).Routes(),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()
		rt.Log.WithField("addr", addr).Info("realm serving")

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		}
	})
}
