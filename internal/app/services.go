package app

import (
	"github.com/yungbote/staffing-graph-backend/internal/clients/redis"
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
	"github.com/yungbote/staffing-graph-backend/internal/repos"
	"github.com/yungbote/staffing-graph-backend/internal/services"
)

type Services struct {
	CV         *services.CVService
	RFP        *services.RFPService
	Project    *services.ProjectService
	Matching   *services.MatchingService
	Conversion *services.ConversionService
	Admin      *services.AdminService
}

func wireServices(log *logger.Logger, cfg Config, store graph.Store, runs repos.IngestionRunRepo, cache *redis.MatchCache) Services {
	log.Info("Wiring services...")
	return Services{
		CV:         services.NewCVService(store, log, runs),
		RFP:        services.NewRFPService(store, log, runs, cache),
		Project:    services.NewProjectService(store, log, runs, cfg.BulkWorkers),
		Matching:   services.NewMatchingService(store, log, cache),
		Conversion: services.NewConversionService(store, log, cache),
		Admin:      services.NewAdminService(store, log, runs),
	}
}
