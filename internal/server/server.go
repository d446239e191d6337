// Package server provides the HTTP REST API of the career recommender.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/config"
	"github.com/jonathan/career-recommender/internal/matching"
	"github.com/jonathan/career-recommender/internal/metrics"
	"github.com/jonathan/career-recommender/internal/resume"
	"github.com/jonathan/career-recommender/internal/roadmap"
	"github.com/jonathan/career-recommender/internal/server/middleware"
	"github.com/jonathan/career-recommender/internal/server/ratelimit"
	"go.uber.org/zap"
)

// Deps are the collaborators a Server is built from.
type Deps struct {
	Config   *config.Config
	Store    Store
	Datasets *catalog.Datasets
	// Extractor is optional; without it resumes are scanned against the vocabulary only.
	Extractor resume.SkillExtractor
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	cfg        *config.Config
	store      Store
	catalog    *catalog.Catalog
	engine     *matching.Engine
	roadmaps   *roadmap.Generator
	parser     *resume.Parser
	jwtService *JWTService
	users      *UserService
	auth       *AuthHandler
	limiter    *ratelimit.Limiter
	metrics    *metrics.Metrics
	validator  *validator.Validate
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New wires the services and routes. It does not start listening.
func New(deps Deps) (*Server, error) {
	if deps.Config == nil || deps.Store == nil || deps.Datasets == nil {
		return nil, fmt.Errorf("server requires config, store and datasets")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := deps.Metrics
	if m == nil {
		m = metrics.New()
	}

	passwordConfig, err := deps.Config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := deps.Config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	ds := deps.Datasets
	v := validator.New()
	s := &Server{
		cfg:        deps.Config,
		store:      deps.Store,
		catalog:    ds.Catalog,
		engine:     matching.NewEngine(ds.Catalog, ds.Normalizer),
		roadmaps:   roadmap.NewGenerator(ds.Reference),
		parser:     resume.NewParser(ds.Normalizer, deps.Extractor, logger.Named("resume")),
		jwtService: NewJWTService(jwtConfig),
		limiter:    ratelimit.NewLimiter(ratelimit.FromSettings(deps.Config.RateLimit)),
		metrics:    m,
		validator:  v,
		logger:     logger,
	}
	s.users = NewUserService(deps.Store, passwordConfig)
	s.auth = NewAuthHandler(s.users, s.jwtService, v, logger.Named("auth"))
	s.router = s.routes()

	s.httpServer = &http.Server{
		Addr:              deps.Config.Server.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(s.withLogging)
	r.Use(chimw.Recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(s.withCORS)
	r.Use(s.withRateLimit)

	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/jobs", s.handleListJobs)
		r.Get("/jobs/{job_id}", s.handleGetJob)

		r.Post("/auth/register", s.auth.Register)
		r.Post("/auth/login", s.auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(s.jwtService.AsTokenValidator()))

			r.Get("/auth/verify", s.auth.Verify)
			r.Post("/auth/verify", s.auth.Verify)

			r.Get("/profile", s.handleGetProfile)
			r.Post("/profile/manual", s.handleUpsertProfile)
			r.Get("/profile/skills", s.handleListSkills)
			r.Post("/profile/skills", s.handleAddSkill)
			r.Delete("/profile/skills/{skill}", s.handleDeleteSkill)

			r.Post("/resume/upload", s.handleUploadResume)
			r.Get("/resume/parsed-data", s.handleGetParsedResume)

			r.Get("/recommendations", s.handleListRecommendations)
			r.Get("/recommendations/saved", s.handleListSavedRecommendations)
			r.Get("/recommendations/explain/{job_id}", s.handleExplainRecommendation)
			r.Get("/recommendations/roadmap/{job_id}", s.handleRecommendationRoadmap)
			r.Get("/recommendations/{job_id}", s.handleRecommendationDetail)

			r.Get("/dashboard/summary", s.handleDashboardSummary)
			r.Get("/dashboard/stats", s.handleDashboardStats)
			r.Get("/dashboard/progress", s.handleDashboardProgress)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		errorResponse(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.limiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.limiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources. It is only needed when Run is not used.
func (s *Server) Close() {
	s.limiter.Stop()
}

// withCORS adds CORS headers for the configured origins.
func (s *Server) withCORS(next http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(s.cfg.Server.AllowedOrigins))
	for _, o := range s.cfg.Server.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[strings.TrimRight(o, "/")] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case allowAll:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exhausted their token bucket.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := s.limiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !info.Allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
	})
}

// extractClientID uses the IP from RemoteAddr. Forwarded headers are ignored
// because they are client controlled.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	retryAfter := int(info.RetryAfter.Round(time.Second).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	response["retry_after"] = retryAfter
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

	s.logger.Warn("rate limit exceeded",
		zap.String("client", extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)
	jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth reports liveness and database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	body := map[string]any{
		"status":   "ok",
		"database": "ok",
		"jobs":     s.catalog.Len(),
		"version":  s.catalog.Version(),
	}
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check: database unreachable", zap.Error(err))
		body["status"] = "degraded"
		body["database"] = "unreachable"
		jsonResponse(w, http.StatusServiceUnavailable, body)
		return
	}
	jsonResponse(w, http.StatusOK, body)
}

// pathJobID parses the {job_id} URL parameter.
func pathJobID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "job_id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, &ErrValidation{Field: "job_id", Message: fmt.Sprintf("invalid job id %q", raw)}
	}
	return id, nil
}
