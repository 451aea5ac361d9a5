package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/KaramelBytes/fooddash/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server serves one pre-rendered page.
type Server struct {
	addr   string
	body   []byte
	logger *slog.Logger
}

// NewServer renders page once; later requests write the same bytes.
func NewServer(addr string, page *Page, logger *slog.Logger) (*Server, error) {
	if page == nil {
		return nil, fmt.Errorf("new server: nil page")
	}
	body, err := page.Bytes()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNoop()
	}
	return &Server{addr: addr, body: body, logger: logger}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Handler routes GET and HEAD on "/" to the page; everything else is 404.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.requestLog)
	router.HandleFunc("/", s.handlePage).Methods(http.MethodGet, http.MethodHead)
	router.NotFoundHandler = s.requestLog(http.NotFoundHandler())
	return router
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(s.body)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(s.body); err != nil {
		logging.FromContext(r.Context(), s.logger).Warn("write response", "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		ctx := logging.WithRequestID(r.Context(), id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))
		logging.FromContext(ctx, s.logger).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// ListenAndServe binds the address before serving so a port already in use
// fails immediately. It returns after ctx is done and in-flight requests
// have drained.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the server on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("dashboard listening", "url", "http://"+ln.Addr().String()+"/")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
