package app

import (
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/http/handlers"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Ingest   *handlers.IngestHandler
	Entity   *handlers.EntityHandler
	Matching *handlers.MatchingHandler
	Admin    *handlers.AdminHandler
}

func wireHandlers(log *logger.Logger, store graph.Store, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   handlers.NewHealthHandler(store),
		Ingest:   handlers.NewIngestHandler(svcs.CV, svcs.RFP, svcs.Project),
		Entity:   handlers.NewEntityHandler(svcs.CV, svcs.RFP, svcs.Project),
		Matching: handlers.NewMatchingHandler(svcs.Matching, svcs.Conversion),
		Admin:    handlers.NewAdminHandler(svcs.Admin),
	}
}
