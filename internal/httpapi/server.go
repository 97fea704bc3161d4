package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/talkdeck/talkdeck/pkg/app"
	"github.com/talkdeck/talkdeck/pkg/prefs"
	"github.com/talkdeck/talkdeck/pkg/talks"
)

// Server routes HTTP requests onto the application context.
type Server struct {
	app    *app.App
	hub    *Hub
	logger *slog.Logger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHub sets the WebSocket hub, allowing the caller to wire the same
// hub as a notification observer on the application. Defaults to a
// fresh hub.
func WithHub(hub *Hub) Option {
	return func(s *Server) {
		s.hub = hub
	}
}

// New builds the server and its routes.
func New(a *app.App, opts ...Option) *Server {
	s := &Server{app: a}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.hub == nil {
		s.hub = NewHub()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/talks", s.handleListTalks)
		r.Get("/talks/{id}", s.handleGetTalk)
		r.Post("/talks/refresh", s.handleRefresh)

		r.Get("/filters", s.handleGetFilters)
		r.Put("/filters", s.handleSetFilters)
		r.Delete("/filters", s.handleClearFilters)

		r.Get("/favorites", s.handleListFavorites)
		r.Post("/favorites/{id}/toggle", s.handleToggleFavorite)

		r.Get("/recent", s.handleListRecent)
		r.Post("/recent/{id}", s.handleRecordView)

		r.Get("/preferences", s.handleGetPreferences)
		r.Patch("/preferences", s.handlePatchPreferences)
		r.Get("/preferences/export", s.handleExport)
		r.Post("/preferences/import", s.handleImport)

		r.Get("/notifications", s.handleListNotifications)
		r.Delete("/notifications/{id}", s.handleDismissNotification)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", s.hub.HandleWebSocket)

	s.router = r
	return s
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// talksResponse is the filtered view plus load state.
type talksResponse struct {
	Talks    []talks.Talk `json:"talks"`
	Total    int          `json:"total"`
	Filtered int          `json:"filtered"`
	Loading  bool         `json:"loading"`
	Error    string       `json:"error,omitempty"`
}

func (s *Server) handleListTalks(w http.ResponseWriter, r *http.Request) {
	filtered := s.app.Talks.Filtered()
	s.respondJSON(w, http.StatusOK, talksResponse{
		Talks:    filtered,
		Total:    s.app.Talks.Count(),
		Filtered: len(filtered),
		Loading:  s.app.Talks.IsLoading(),
		Error:    s.app.Talks.LoadError(),
	})
}

func (s *Server) handleGetTalk(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	talk, ok := s.app.Talks.TalkByID(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "talk not found")
		return
	}
	s.respondJSON(w, http.StatusOK, talk)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.app.Refresh(r.Context()) {
		s.respondError(w, http.StatusBadGateway, s.app.Talks.LoadError())
		return
	}
	count := s.app.Talks.Count()
	s.hub.NotifyTalksRefreshed(count)
	s.respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *Server) handleGetFilters(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.app.Talks.Criteria())
}

// filterPatch carries optional filter updates; absent fields keep their
// current value.
type filterPatch struct {
	TimeFilter *string `json:"timeFilter"`
	SearchTerm *string `json:"searchTerm"`
	Category   *string `json:"category"`
}

func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var patch filterPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid filter payload")
		return
	}

	if patch.TimeFilter != nil {
		s.app.Talks.SetTimeFilter(*patch.TimeFilter)
	}
	if patch.SearchTerm != nil {
		s.app.Talks.SetSearchTerm(*patch.SearchTerm)
	}
	if patch.Category != nil {
		s.app.Talks.SetCategory(*patch.Category)
	}
	s.respondJSON(w, http.StatusOK, s.app.Talks.Criteria())
}

func (s *Server) handleClearFilters(w http.ResponseWriter, r *http.Request) {
	s.app.Talks.ClearFilters()
	s.respondJSON(w, http.StatusOK, s.app.Talks.Criteria())
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string][]string{
		"favorites": s.app.Prefs.Favorites(),
	})
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.app.Prefs.ToggleFavorite(id)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"id":       id,
		"favorite": s.app.Prefs.IsFavorite(id),
	})
}

func (s *Server) handleListRecent(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string][]string{
		"recentlyViewed": s.app.Prefs.RecentlyViewed(),
	})
}

func (s *Server) handleRecordView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.app.Talks.TalkByID(id); !ok {
		s.respondError(w, http.StatusNotFound, "talk not found")
		return
	}
	s.app.RecordView(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.app.Prefs.Preferences())
}

func (s *Server) handlePatchPreferences(w http.ResponseWriter, r *http.Request) {
	var patch prefs.PreferencesPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid preferences payload")
		return
	}

	if patch.Theme != nil {
		s.app.Prefs.SetTheme(*patch.Theme)
	}
	if patch.ViewMode != nil {
		s.app.Prefs.SetViewMode(*patch.ViewMode)
	}
	if patch.ItemsPerPage != nil {
		s.app.Prefs.SetItemsPerPage(*patch.ItemsPerPage)
	}
	if patch.AutoRefresh != nil && *patch.AutoRefresh != s.app.Prefs.Preferences().AutoRefresh {
		s.app.Prefs.ToggleAutoRefresh()
	}
	for category, enabled := range patch.Notifications {
		s.app.Prefs.UpdateNotificationPreference(category, enabled)
	}
	s.respondJSON(w, http.StatusOK, s.app.Prefs.Preferences())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="talkdeck-preferences.json"`)
	s.respondJSON(w, http.StatusOK, s.app.Prefs.Export())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var data prefs.ImportData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid import payload")
		return
	}
	s.app.Prefs.Import(data)
	s.respondJSON(w, http.StatusOK, s.app.Prefs.Preferences())
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"notifications": s.app.UI.Notifications(),
	})
}

func (s *Server) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	s.app.UI.RemoveNotification(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
