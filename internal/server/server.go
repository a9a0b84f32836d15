package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"newsjester/internal/domain"
	"newsjester/internal/news"

	"github.com/google/uuid"
)

const (
	NewsPath       = "/api/news"
	LegacyNewsPath = "/.netlify/functions/news"
	HealthPath     = "/healthz"

	readHeaderTimeout   = 10 * time.Second
	idleTimeout         = 2 * time.Minute
	defaultWriteTimeout = 10 * time.Minute

	errMethodNotAllowed = "Only GET requests are allowed"
	errFetchFailed      = "Failed to fetch news"
	errInternal         = "Internal server error"
)

type NewsBuilder interface {
	Build(ctx context.Context) ([]domain.CommentedItem, error)
}

type Server struct {
	httpServer *http.Server
	news       NewsBuilder
	static     fs.FS
	now        func() time.Time
	log        *slog.Logger
}

// New builds the HTTP server. static may be nil, in which case no
// front-end is served. writeTimeout must cover a whole news batch.
func New(
	addr string,
	newsBuilder NewsBuilder,
	static fs.FS,
	writeTimeout time.Duration,
	log *slog.Logger,
) *Server {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	s := &Server{
		news:   newsBuilder,
		static: static,
		now:    time.Now,
		log:    log,
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}

	return s
}

// Handler routes the news endpoints with their own method handling, health
// checks on GET only, and everything else to the front-end.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(NewsPath, s.handleNews)
	mux.HandleFunc(LegacyNewsPath, s.handleNews)
	mux.HandleFunc("GET "+HealthPath, s.handleHealth)

	if s.static != nil {
		mux.Handle("/", http.FileServerFS(s.static))
	}

	return mux
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	requestID := uuid.NewString()

	setCORSHeaders(w.Header())
	w.Header().Set("X-Request-ID", requestID)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodGet:
	default:
		s.log.InfoContext(ctx, "Rejecting news request with unsupported method",
			"requestID", requestID,
			"method", r.Method)

		s.writeJSON(ctx, w, http.StatusMethodNotAllowed, domain.ErrorBody{Error: errMethodNotAllowed})
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			s.log.ErrorContext(ctx, "Recovered from panic while building news",
				"requestID", requestID,
				"panic", rec)

			s.writeError(ctx, w, errInternal, fmt.Errorf("panic: %v", rec))
		}
	}()

	items, err := s.news.Build(ctx)
	if err != nil {
		message := errInternal
		if errors.Is(err, news.ErrNoItems) {
			message = errFetchFailed
		}

		s.log.ErrorContext(ctx, "Failed to build news",
			"error", err,
			"requestID", requestID,
			"durationSeconds", time.Since(start).Seconds())

		s.writeError(ctx, w, message, err)
		return
	}

	if items == nil {
		items = []domain.CommentedItem{}
	}

	s.writeJSON(ctx, w, http.StatusOK, items)

	s.log.InfoContext(ctx, "News request is served",
		"requestID", requestID,
		"itemCount", len(items),
		"durationSeconds", time.Since(start).Seconds())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) writeError(
	ctx context.Context,
	w http.ResponseWriter,
	message string,
	err error,
) {
	s.writeJSON(ctx, w, http.StatusInternalServerError, domain.ErrorBody{
		Error:     message,
		Details:   err.Error(),
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) writeJSON(
	ctx context.Context,
	w http.ResponseWriter,
	status int,
	body any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.ErrorContext(ctx, "Failed to write response body",
			"error", err,
			"status", status)
	}
}

func setCORSHeaders(h http.Header) {
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}
