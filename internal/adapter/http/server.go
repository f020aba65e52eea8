package http

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/danger-zones/internal/domain"
	"github.com/couchcryptid/danger-zones/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// fetchFailedMessage is the error body clients receive when no snapshot can be served.
const fetchFailedMessage = "Failed to fetch data (Check logs/config)"

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// DangerZoneService produces the danger-zone payload. A nil result means the
// snapshot could not be produced; the service has already logged why.
type DangerZoneService interface {
	sharedobs.ReadinessChecker
	GetDangerData(ctx context.Context) *domain.DangerData
}

// Options tunes the API surface.
type Options struct {
	APITimeout     time.Duration
	RateLimitRPS   float64 // 0 disables rate limiting
	RateLimitBurst int
	AllowedOrigins []string
}

// Server exposes the danger-zone API, the map page, and health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	service    DangerZoneService
	apiTimeout time.Duration
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /api/danger-zones, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, service DangerZoneService, opts Options, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: opts.APITimeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service:    service,
		apiTimeout: opts.APITimeout,
		metrics:    metrics,
		logger:     logger,
	}

	api := http.Handler(http.HandlerFunc(s.handleDangerZones))
	if opts.RateLimitRPS > 0 {
		api = newRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst, metrics).middleware(api)
	}

	s.route(mux, "GET /{$}", http.HandlerFunc(s.handleIndex))
	s.route(mux, "GET /api/danger-zones", api)
	s.route(mux, "GET /healthz", sharedobs.LivenessHandler())
	s.route(mux, "GET /readyz", sharedobs.ReadinessHandler(service))
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer.Handler = requestID(accessLog(logger, cors(opts.AllowedOrigins, mux)))
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) route(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, instrument(pattern, s.metrics, h))
}

func (s *Server) handleDangerZones(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.apiTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.apiTimeout)
		defer cancel()
	}

	data := s.service.GetDangerData(ctx)
	if data == nil {
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": fetchFailedMessage})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, data)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, struct {
		APIPath string
	}{APIPath: "/api/danger-zones"})
	if err != nil {
		s.logger.Error("render index", "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
}
