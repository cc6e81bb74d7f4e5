// Package play parses play command flags and runs the interactive terminal
// client against a remote rules server.
package play

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/tippi-fifestarr/scoundrel/internal/game/events"
	"github.com/tippi-fifestarr/scoundrel/internal/game/session"
	"github.com/tippi-fifestarr/scoundrel/internal/journal"
	journalsqlite "github.com/tippi-fifestarr/scoundrel/internal/journal/sqlite"
	entrypoint "github.com/tippi-fifestarr/scoundrel/internal/platform/cmd"
	"github.com/tippi-fifestarr/scoundrel/internal/transport/rest"
)

// Config holds play command configuration.
type Config struct {
	ServerURL      string        `env:"SCOUNDREL_SERVER_URL" envDefault:"http://localhost:8080"`
	RequestTimeout time.Duration `env:"SCOUNDREL_REQUEST_TIMEOUT" envDefault:"15s"`
	JournalPath    string        `env:"SCOUNDREL_JOURNAL_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "The rules server base URL")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Per-request timeout for rules server calls")
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "SQLite adventure log path (empty disables persistence)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the interactive client.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePlay, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	gateway, err := rest.New(cfg.ServerURL,
		rest.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))
	if err != nil {
		return fmt.Errorf("configure gateway: %w", err)
	}

	bus := events.NewBus()
	sinks := []journal.Sink{journal.NewWriterSink(os.Stdout)}

	var sess *session.Session
	if cfg.JournalPath != "" {
		store, err := journalsqlite.Open(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("open journal store: %w", err)
		}
		defer store.Close()
		sinks = append(sinks, journalsqlite.NewSink(store, func() string {
			if sess == nil {
				return ""
			}
			return sess.ID()
		}))
	}

	sess = session.New(gateway, bus, session.WithJournal(journal.Multi(sinks...)))

	loop := newGameLoop(sess, bus, os.Stdin, os.Stdout)
	return loop.run(ctx)
}
