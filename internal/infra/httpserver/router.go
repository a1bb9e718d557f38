package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appanalysis "github.com/bryanwahyu/code-doctor/internal/application/analysis"
	domain "github.com/bryanwahyu/code-doctor/internal/domain/analysis"
	"github.com/bryanwahyu/code-doctor/internal/middleware"
)

const (
	msgInvalidRequest = "Code and language are required"
	msgAnalyzeFailed  = "Failed to analyze code"
)

// Options tunes the HTTP surface.
type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64

	// reported by /health, the key itself is never passed in
	Model     string
	APIKeySet bool
}

type Router struct {
	svc     *appanalysis.Service
	metrics *middleware.Metrics
	logger  *zap.Logger
	opts    Options
}

func NewRouter(svc *appanalysis.Service, metrics *middleware.Metrics, logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = middleware.NewMetrics()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	r := &Router{svc: svc, metrics: metrics, logger: logger, opts: opts}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	mux.Use(middleware.Logging(logger))
	mux.Use(metrics.Middleware)

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"model": &middleware.ModelHealthChecker{
			Client:    svc.Client,
			Model:     opts.Model,
			APIKeySet: opts.APIKeySet,
		},
	}))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", metrics.Handler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze-error", r.wrap(r.handleAnalyzeError))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// errBadBody marks request bodies that could not be decoded.
var errBadBody = errors.New("invalid request body")

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if errors.Is(err, domain.ErrInvalidRequest) || errors.Is(err, errBadBody) {
				r.metrics.IncrementInvalid()
				writeError(w, http.StatusBadRequest, msgInvalidRequest, err.Error())
				return
			}
			r.metrics.IncrementUpstream()
			writeError(w, http.StatusInternalServerError, msgAnalyzeFailed, err.Error())
		}
	}
}

type analyzeBody struct {
	Code         string `json:"code"`
	Language     string `json:"language"`
	ErrorMessage string `json:"errorMessage"`
}

// POST /api/analyze-error
// Body: {"code": "...", "language": "python", "errorMessage": "..."}
func (r *Router) handleAnalyzeError(w http.ResponseWriter, req *http.Request) error {
	if r.opts.MaxBodyBytes > 0 {
		req.Body = http.MaxBytesReader(w, req.Body, r.opts.MaxBodyBytes)
	}

	var body analyzeBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	if err := middleware.ValidateLanguage(body.Language); err != nil {
		return err
	}

	res, err := r.svc.Analyze(req.Context(), appanalysis.Command{
		Code:         body.Code,
		Language:     strings.TrimSpace(body.Language),
		ErrorMessage: middleware.SanitizeString(body.ErrorMessage),
	})
	if err != nil {
		return err
	}
	r.metrics.ObserveAnalysis(res.Fallback)

	w.Header().Set("X-Request-ID", res.ID)
	// headers are already out once encoding starts
	_ = writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"analysis": res.Analysis,
	})
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	_ = writeJSON(w, status, map[string]string{
		"error":   msg,
		"details": details,
	})
}
