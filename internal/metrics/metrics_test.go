package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/api/jobs/1", "/api/jobs/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/api/jobs/{id}", "418")))
}

func TestMiddleware_DefaultStatus(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/ok", "200")))
}

func TestObserveMatch(t *testing.T) {
	m := New()
	m.ObserveMatch("detail", 60)
	m.ObserveMatch("detail", 80)
	m.ObserveMatch("list", 10)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MatchesComputed.WithLabelValues("detail")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.MatchScore))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveMatch("cli", 42)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "career_matches_computed_total")
	assert.Contains(t, rec.Body.String(), "career_match_score_bucket")
}
