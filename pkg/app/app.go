package app

import (
	"context"
	"log/slog"

	"github.com/talkdeck/talkdeck/pkg/prefs"
	"github.com/talkdeck/talkdeck/pkg/storage"
	"github.com/talkdeck/talkdeck/pkg/talks"
	"github.com/talkdeck/talkdeck/pkg/ui"
)

// App is the application context. It owns the three stores and the
// collaborators they share.
//
// Create an App with app.New():
//
//	a := app.New(source,
//	    app.WithStorage(store),
//	    app.WithLogger(logger),
//	)
//	a.Init(ctx)
//	defer a.Close()
type App struct {
	Talks *talks.Store
	UI    *ui.Store
	Prefs *prefs.Store

	logger  *slog.Logger
	storage storage.Store

	locker   ui.ScrollLocker
	env      prefs.Environment
	onNotify func(ui.Notification)

	onPersistError func(error)
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the structured logger shared by all stores. Defaults
// to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithStorage sets the persistence backend for preferences. Defaults to
// an in-memory store.
func WithStorage(st storage.Store) Option {
	return func(a *App) {
		a.storage = st
	}
}

// WithScrollLocker sets the page scroll capability used while a modal
// is open.
func WithScrollLocker(locker ui.ScrollLocker) Option {
	return func(a *App) {
		a.locker = locker
	}
}

// WithEnvironment sets the theme environment used to resolve and apply
// the active theme.
func WithEnvironment(env prefs.Environment) Option {
	return func(a *App) {
		a.env = env
	}
}

// WithNotifyObserver registers a callback invoked on every added
// notification.
func WithNotifyObserver(fn func(ui.Notification)) Option {
	return func(a *App) {
		a.onNotify = fn
	}
}

// WithPersistErrorObserver registers a callback invoked on every failed
// durable preferences write.
func WithPersistErrorObserver(fn func(error)) Option {
	return func(a *App) {
		a.onPersistError = fn
	}
}

// New builds the application context around a talk source. Call Init to
// load persisted preferences.
func New(source talks.Source, opts ...Option) *App {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.storage == nil {
		a.storage = storage.NewMemoryStore()
	}

	a.Talks = talks.NewStore(source, talks.WithLogger(a.logger))

	uiOpts := []ui.StoreOption{ui.WithLogger(a.logger)}
	if a.locker != nil {
		uiOpts = append(uiOpts, ui.WithScrollLocker(a.locker))
	}
	if a.onNotify != nil {
		uiOpts = append(uiOpts, ui.WithNotifyObserver(a.onNotify))
	}
	a.UI = ui.NewStore(uiOpts...)

	prefsOpts := []prefs.StoreOption{
		prefs.WithLogger(a.logger),
		prefs.WithStorage(a.storage),
	}
	if a.env != nil {
		prefsOpts = append(prefsOpts, prefs.WithEnvironment(a.env))
	}
	if a.onPersistError != nil {
		prefsOpts = append(prefsOpts, prefs.WithPersistErrorObserver(a.onPersistError))
	}
	a.Prefs = prefs.NewStore(prefsOpts...)

	return a
}

// Init loads persisted preferences and applies the active theme.
func (a *App) Init(ctx context.Context) {
	a.Prefs.Init(ctx)
}

// Refresh loads talks from the source, mirroring progress into the UI
// busy flag and surfacing failures as an error notification. The failed
// state itself lives on the talk store.
func (a *App) Refresh(ctx context.Context) bool {
	a.UI.SetLoading(true)
	defer a.UI.SetLoading(false)

	a.Talks.Load(ctx)
	if msg := a.Talks.LoadError(); msg != "" {
		a.UI.ShowError("Failed to load talks")
		return false
	}
	return true
}

// RecordView opens the detail modal for a talk and records it in the
// recently-viewed history.
func (a *App) RecordView(talkID string) {
	a.UI.OpenModal(talkID)
	a.Prefs.AddToRecentlyViewed(talkID)
}

// Close cancels pending notification timers and closes the persistence
// backend.
func (a *App) Close() error {
	a.UI.Close()
	return a.storage.Close()
}
