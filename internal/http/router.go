package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/staffing-graph-backend/internal/http/handlers"
	httpMW "github.com/yungbote/staffing-graph-backend/internal/http/middleware"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler   *httpH.HealthHandler
	IngestHandler   *httpH.IngestHandler
	EntityHandler   *httpH.EntityHandler
	MatchingHandler *httpH.MatchingHandler
	AdminHandler    *httpH.AdminHandler

	AdminAuth *httpMW.AdminAuthMiddleware

	ServiceName string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api/v1")
	{
		// Ingestion
		if cfg.IngestHandler != nil {
			api.POST("/ingest/cv", cfg.IngestHandler.IngestCV)
			api.POST("/ingest/rfp", cfg.IngestHandler.IngestRFP)
			api.POST("/ingest/projects", cfg.IngestHandler.IngestProjects)
		}

		// Read views
		if cfg.EntityHandler != nil {
			api.GET("/programmers", cfg.EntityHandler.ListProgrammers)
			api.GET("/rfps", cfg.EntityHandler.ListRFPs)
			api.GET("/rfps/next-id", cfg.EntityHandler.NextRFPID)
			api.GET("/projects", cfg.EntityHandler.ListProjects)
		}

		// Matching and conversion
		if cfg.MatchingHandler != nil {
			api.GET("/match/:rfp_id", cfg.MatchingHandler.FindCandidates)
			api.POST("/match/:rfp_id/confirm", cfg.MatchingHandler.ConfirmMatch)
		}
	}

	admin := api.Group("/admin")
	{
		if cfg.AdminAuth != nil {
			admin.Use(cfg.AdminAuth.RequireAdmin())
		}
		if cfg.AdminHandler != nil {
			admin.POST("/reset", cfg.AdminHandler.Reset)
			admin.GET("/ingestions", cfg.AdminHandler.ListIngestions)
		}
	}

	return r
}
