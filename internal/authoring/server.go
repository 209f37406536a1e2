package authoring

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/alnah/go-recipebox/internal/assets"
	"github.com/alnah/go-recipebox/internal/logger"
)

// Defaults for the form server address.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8000
)

// Request handling limits.
const (
	maxFormBytes    = 1 << 20
	backlogLimit    = 16
	backlogTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Sentinel errors for the form server.
var (
	ErrListen    = errors.New("failed to listen")
	ErrFormStyle = errors.New("failed to load form style")
)

// ServerOptions configures a Server.
type ServerOptions struct {
	// Service creates the records; required.
	Service *Service
	// Assets supplies the form stylesheet; embedded assets when nil.
	Assets assets.AssetLoader
	// HomeURL is opened by the "View Recipe Home" link; the link is hidden
	// when empty.
	HomeURL string
	// Logger receives request and write logs; nil discards.
	Logger *slog.Logger
	// CreateLimit and CreateBurst pace POST /create. Zero values use
	// DefaultCreateLimit and DefaultCreateBurst.
	CreateLimit rate.Limit
	CreateBurst int
}

// Defaults for pacing record creation, in creates per second.
const (
	DefaultCreateLimit = rate.Limit(2)
	DefaultCreateBurst = 10
)

// Server is the HTTP surface of the authoring form.
type Server struct {
	svc     *Service
	css     string
	homeURL string
	router  *chi.Mux
	logger  *slog.Logger
	creates *rate.Limiter
}

// Compile-time interface check.
var _ http.Handler = (*Server)(nil)

// NewServer creates the form server with its routes configured.
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Service == nil {
		return nil, errors.New("authoring: nil service")
	}
	loader := opts.Assets
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	css, err := loader.LoadStyle(assets.FormStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormStyle, err)
	}
	if strings.Contains(strings.ToLower(css), "</style") {
		return nil, fmt.Errorf("%w: stylesheet closes its <style> element", ErrFormStyle)
	}

	s := &Server{
		svc:     opts.Service,
		css:     css,
		homeURL: opts.HomeURL,
		router:  chi.NewRouter(),
		logger:  logger.OrDiscard(opts.Logger),
		creates: rate.NewLimiter(cmp.Or(opts.CreateLimit, DefaultCreateLimit), cmp.Or(opts.CreateBurst, DefaultCreateBurst)),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack. Requests are handled
// one at a time; the rest wait in a small backlog.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.ThrottleBacklog(1, backlogLimit, backlogTimeout))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleForm)
	s.router.With(s.paceCreates).Post("/create", s.handleCreate)
}

// paceCreates answers 429 once the create budget is spent.
func (s *Server) paceCreates(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.creates.Allow() {
			s.logger.Warn("create rate exceeded", "remote", r.RemoteAddr)
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// handleForm renders the empty form, with a confirmation when redirected
// from a successful create.
// GET /
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.writeForm(w, http.StatusOK, formPage{
		Created: filepath.Base(r.URL.Query().Get("created")),
		Form:    blankForm(),
	})
}

// handleCreate validates the submission, writes the record, and redirects
// to the form. A rejected submission is shown again with its messages.
// POST /create
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.writeForm(w, http.StatusBadRequest, formPage{
			Errors: []string{"The form could not be read."},
			Form:   blankForm(),
		})
		return
	}

	sub, err := ParseSubmission(r.PostForm)
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			s.logger.Error("parsing submission", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.writeForm(w, http.StatusBadRequest, formPage{
			Errors: verr.Messages(),
			Form:   submittedForm(sub),
		})
		return
	}

	path, err := s.svc.Create(sub)
	if err != nil {
		s.logger.Error("writing recipe", "title", sub.Title, "error", err)
		s.writeForm(w, http.StatusInternalServerError, formPage{
			Errors: []string{"The recipe could not be written: " + err.Error()},
			Form:   submittedForm(sub),
		})
		return
	}

	target := "/?created=" + url.QueryEscape(filepath.Base(path))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) writeForm(w http.ResponseWriter, status int, page formPage) {
	if page.Created == "." || page.Created == string(filepath.Separator) {
		page.Created = ""
	}
	page.CSS = s.css
	page.HomeURL = s.homeURL

	body, err := renderForm(page)
	if err != nil {
		s.logger.Error("rendering form", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Addr joins host and port into a listen address.
func Addr(host string, port int) string {
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Serve listens on addr and serves until ctx is cancelled, then shuts down
// gracefully. ready, when non-nil, receives the bound address once the
// listener is open.
func (s *Server) Serve(ctx context.Context, addr string, ready func(net.Addr)) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %v", ErrListen, addr, err)
	}

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       backlogTimeout,
		WriteTimeout:      backlogTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("form server listening", "addr", ln.Addr().String())
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down form server: %w", err)
	}
	s.logger.Info("form server stopped")
	return nil
}
