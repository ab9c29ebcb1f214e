package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/hnscope/pkg/domain"
	"github.com/umputun/hnscope/pkg/pager"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/catalog.go -pkg mocks -skip-ensure -fmt goimports . Catalog
//go:generate moq -out mocks/feedback_form.go -pkg mocks -skip-ensure -fmt goimports . FeedbackForm

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	catalog   Catalog
	assembler pager.PageAssembler
	feedback  FeedbackForm
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetPageSize() int
}

// Catalog resolves id lists and single items from the remote API
type Catalog interface {
	FetchIDs(ctx context.Context, key domain.FeedKey) ([]int64, error)
	FetchItem(ctx context.Context, id int64) (domain.Item, error)
}

// FeedbackForm validates and persists the feedback record
type FeedbackForm interface {
	Save(ctx context.Context, rating int, comment string) (domain.FeedbackRecord, error)
	Load(ctx context.Context) (*domain.FeedbackRecord, error)
	Clear(ctx context.Context) error
}

// Deps groups the collaborators the server delegates to
type Deps struct {
	Catalog   Catalog
	Assembler pager.PageAssembler
	Feedback  FeedbackForm
}

// New initializes a new server instance
func New(cfg ConfigProvider, deps Deps, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		catalog:   deps.Catalog,
		assembler: deps.Assembler,
		feedback:  deps.Feedback,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("hnscope", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // 64KB, feedback is the only body
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /feeds/{feed}", s.feedHandler)
		r.HandleFunc("GET /items/{id}", s.itemHandler)
		r.HandleFunc("GET /items/{id}/comments", s.commentsHandler)
		r.HandleFunc("GET /feedback", s.getFeedbackHandler)
		r.HandleFunc("POST /feedback", s.saveFeedbackHandler)
		r.HandleFunc("DELETE /feedback", s.clearFeedbackHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}

// errorStatus maps a failure class to the response status
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidWindow), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMalformedItem):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNetwork), errors.Is(err, domain.ErrMalformedList):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
