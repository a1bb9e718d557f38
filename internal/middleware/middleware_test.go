package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bryanwahyu/code-doctor/internal/domain/analysis"
)

type stubClient struct{}

func (stubClient) Complete(context.Context, string) (string, error) {
	return "", nil
}

func (stubClient) Name() string { return "stub" }

func TestValidateLanguage(t *testing.T) {
	for _, ok := range []string{"", "python", "c++", "c#", "objective-c", " typescript "} {
		assert.NoError(t, ValidateLanguage(ok), ok)
	}
	for _, bad := range []string{"py thon", "<script>", "1python", "a$b"} {
		assert.ErrorIs(t, ValidateLanguage(bad), analysis.ErrInvalidRequest, bad)
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "line1\nline2\tend", SanitizeString(" line1\n\x00line2\tend\x07 "))
}

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetrics()
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	m.ObserveAnalysis(true)
	m.ObserveAnalysis(false)
	m.IncrementUpstream()

	assert.Equal(t, uint64(2), m.RequestsTotal.Load())
	assert.Equal(t, uint64(1), m.RequestsSuccess.Load())
	assert.Equal(t, uint64(1), m.RequestsFailed.Load())
	assert.Equal(t, int64(0), m.RequestsInProgress.Load())

	rec := httptest.NewRecorder()
	m.Handler(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	var snap map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, float64(2), snap["analyses_total"])
	assert.Equal(t, float64(1), snap["analyses_fallback"])
	assert.Equal(t, float64(1), snap["upstream_failures"])
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/analyze-error", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "/api/analyze-error", fields["path"])
	assert.Equal(t, int64(2), fields["bytes"])
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	healthy := &ModelHealthChecker{Client: stubClient{}, Model: "gemini-2.5-flash", APIKeySet: true}
	HealthHandler(map[string]HealthChecker{"model": healthy})(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	HealthHandler(map[string]HealthChecker{"model": &ModelHealthChecker{}})(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "unhealthy", status.Checks["model"].Status)
}

func TestModelHealthChecker(t *testing.T) {
	ctx := context.Background()

	ok := &ModelHealthChecker{Client: stubClient{}, Model: "gpt-4o", APIKeySet: true}
	assert.NoError(t, ok.Check(ctx))

	noKey := &ModelHealthChecker{Client: stubClient{}, Model: "gpt-4o"}
	assert.ErrorContains(t, noKey.Check(ctx), "API key not configured")

	noModel := &ModelHealthChecker{Client: stubClient{}, Model: " ", APIKeySet: true}
	assert.ErrorContains(t, noModel.Check(ctx), "model name not configured")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, ok.Check(cancelled), context.Canceled)
}
