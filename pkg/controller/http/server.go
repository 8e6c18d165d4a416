package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/usecase"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
)

type Server struct {
	router         *chi.Mux
	uc             *usecase.UseCases
	defaultProject types.ProjectID
	enableMetrics  bool
}

type Options func(*Server)

// WithDefaultProject sets the project served by the unscoped /api routes
func WithDefaultProject(projectID types.ProjectID) Options {
	return func(s *Server) {
		s.defaultProject = projectID
	}
}

// WithMetrics exposes Prometheus metrics on /metrics
func WithMetrics(enabled bool) Options {
	return func(s *Server) {
		s.enableMetrics = enabled
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router:         r,
		uc:             uc,
		defaultProject: types.DefaultProjectID,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.defaultProject.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid default project ID")
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	if s.enableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/projects", s.createProject)

		r.Group(func(r chi.Router) {
			r.Use(fixedProject(s.defaultProject))
			s.routes(r)
		})

		r.Route("/projects/{projectID}", func(r chi.Router) {
			r.Use(projectFromPath)
			s.routes(r)
		})
	})

	return s, nil
}

// routes registers the worksheet endpoints of one project
func (s *Server) routes(r chi.Router) {
	// Stage 1: identification
	r.Get("/risk-sources", s.getRiskSources)
	r.Post("/risk-sources", s.updateRiskSources)
	r.Get("/risk-events", s.getRiskEvents)
	r.Post("/risk-events/select", s.selectRiskEvents)
	r.Get("/risk-events/selected", s.getSelectedEvents)

	// Stage 2: analysis
	r.Post("/analyze-risk", s.analyzeRisk)
	r.Get("/analyzed-risks", s.getAnalyzedRisks)
	r.Post("/prioritize-risks", s.prioritizeRisks)

	// Stage 3: planning
	r.Get("/mitigation-measures", s.getMitigationMeasures)
	r.Post("/assign-mitigation", s.assignMitigation)
	r.Get("/mitigation-plans", s.getMitigationPlans)

	// Stage 4: monitoring
	r.Post("/monitor-risk", s.monitorRisk)
	r.Get("/monitoring-data", s.getMonitoringData)
	r.Get("/monitoring-data/{riskID}", s.getMonitoringResult)

	r.Get("/project-status", s.getProjectStatus)
	r.Post("/reset", s.resetProject)
	r.Get("/snapshot", s.getSnapshot)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

type ctxProjectKey struct{}

func withProject(ctx context.Context, projectID types.ProjectID) context.Context {
	ctx = context.WithValue(ctx, ctxProjectKey{}, projectID)
	return logging.With(ctx, logging.From(ctx).With("project_id", projectID))
}

func projectFrom(ctx context.Context) types.ProjectID {
	if projectID, ok := ctx.Value(ctxProjectKey{}).(types.ProjectID); ok {
		return projectID
	}
	return types.DefaultProjectID
}

// fixedProject binds every request to one project
func fixedProject(projectID types.ProjectID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(withProject(r.Context(), projectID)))
		})
	}
}

// projectFromPath binds the request to the project named in the URL
func projectFromPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		projectID := types.ProjectID(chi.URLParam(r, "projectID"))
		if err := projectID.Validate(); err != nil {
			handleError(w, r, "project", goerr.Wrap(model.ErrInvalidParameter, err.Error(),
				goerr.V(model.ProjectIDKey, projectID)))
			return
		}
		next.ServeHTTP(w, r.WithContext(withProject(r.Context(), projectID)))
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
