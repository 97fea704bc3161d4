package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/talkdeck/talkdeck/internal/config"
	"github.com/talkdeck/talkdeck/internal/errors"
	"github.com/talkdeck/talkdeck/internal/feed"
	"github.com/talkdeck/talkdeck/internal/httpapi"
	"github.com/talkdeck/talkdeck/pkg/app"
	"github.com/talkdeck/talkdeck/pkg/observe"
	"github.com/talkdeck/talkdeck/pkg/storage"
	"github.com/talkdeck/talkdeck/pkg/ui"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		feedURL    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the talkdeck server",
		Long: `Start the HTTP server.

Configuration is read from talkdeck.json in the working directory, or
from the path given with --config. Flags override the file.

Examples:
  talkdeck serve
  talkdeck serve --config /etc/talkdeck.json
  talkdeck serve --feed https://talks.example.com/feed.xml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, addr, feedURL)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to talkdeck.json (default ./talkdeck.json)")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides server.host/port)")
	cmd.Flags().StringVarP(&feedURL, "feed", "f", "", "Feed URL (overrides feed.url)")

	return cmd
}

func runServe(configPath, addr, feedURL string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if feedURL != "" {
		cfg.Feed.URL = feedURL
	}
	if cfg.Feed.URL == "" {
		return errors.New("E301")
	}
	if addr == "" {
		addr = cfg.Address()
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}

	metrics := observe.NewMetrics()
	hub := httpapi.NewHub()
	defer hub.Close()

	source := observe.NewTracedSource(
		observe.NewMeteredSource(feed.NewSource(cfg.Feed.URL, feed.WithLogger(logger)), metrics),
		cfg.Name,
	)

	a := app.New(source,
		app.WithLogger(logger),
		app.WithStorage(store),
		app.WithNotifyObserver(func(n ui.Notification) {
			metrics.ObserveNotification(n)
			hub.ObserveNotification(n)
		}),
		app.WithPersistErrorObserver(metrics.ObservePersistError),
	)
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Init(ctx)
	if cfg.Feed.RefreshOnStart {
		if a.Refresh(ctx) {
			success("Loaded %d talks from %s", a.Talks.Count(), cfg.Feed.URL)
		} else {
			warn("Initial load failed: %s", a.Talks.LoadError())
		}
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.New(a, httpapi.WithLogger(logger), httpapi.WithHub(hub)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	info("Listening on http://%s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	success("Server stopped")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if !config.Exists(wd) {
		// No file is fine; defaults plus flags carry a dev setup.
		return config.New(), nil
	}
	return config.Load(wd)
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func openStorage(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil

	case config.BackendSQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLitePath())
		if err != nil {
			return nil, errors.New("E201").Wrap(err)
		}
		return store, nil

	case config.BackendS3:
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Storage.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Storage.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
		if err != nil {
			return nil, errors.New("E201").Wrap(err)
		}
		client := s3.NewFromConfig(awsCfg)
		return storage.NewS3Store(client, cfg.Storage.Bucket, cfg.Storage.Prefix), nil

	default:
		return nil, errors.New("E202")
	}
}
