package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/staffing-graph-backend/internal/clients/redis"
	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/normalization"
	pkgerrors "github.com/yungbote/staffing-graph-backend/internal/pkg/errors"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
)

const (
	projIDPrefix          = "PROJ-"
	defaultDurationMonths = 6
	fullAllocationPercent = 100
)

// ConversionResult reports a confirmed RFP staffing.
type ConversionResult struct {
	ProjectID           string   `json:"project_id"`
	ProjectName         string   `json:"project_name"`
	Status              string   `json:"status"`
	StartDate           string   `json:"start_date,omitempty"`
	EndDate             string   `json:"end_date,omitempty"`
	AssignedProgrammers []string `json:"assigned_programmers"`
}

// ConversionService turns a won RFP into an active project with an assigned
// team. The whole conversion is one transaction: either the project exists
// with its requirements and team and the RFP is gone, or nothing changed.
type ConversionService struct {
	store graph.Store
	log   *logger.Logger
	cache *redis.MatchCache
}

func NewConversionService(store graph.Store, baseLog *logger.Logger, cache *redis.MatchCache) *ConversionService {
	return &ConversionService{
		store: store,
		log:   baseLog.With("service", "ConversionService"),
		cache: cache,
	}
}

// ConvertRFPToProject creates PROJ-<rfpID> from the RFP, copies its skill
// needs as project requirements, assigns the given programmers and deletes
// the RFP. Any unresolved programmer aborts the conversion untouched.
func (s *ConversionService) ConvertRFPToProject(ctx context.Context, rfpID string, programmerIDs []string) (*ConversionResult, error) {
	rfpID = strings.TrimSpace(rfpID)
	if rfpID == "" {
		return nil, fmt.Errorf("%w: blank rfp id", pkgerrors.ErrInvalidIdentifier)
	}

	var result *ConversionResult
	err := s.store.ExecuteWrite(ctx, func(tx graph.Tx) error {
		rfp, err := tx.GetNode(ctx, graph.KindRFP, rfpID)
		if err != nil {
			return err
		}

		projID := projIDPrefix + rfpID
		if _, err := tx.GetNode(ctx, graph.KindProject, projID); err == nil {
			return fmt.Errorf("%w: project %q", pkgerrors.ErrDuplicateID, projID)
		} else if !isNotFound(err) {
			return err
		}

		startRaw := rfp.Props.String("start_date")
		if startRaw == "" {
			startRaw = rfp.Props.String("deadline")
		}
		endRaw := ""
		if start, ok := parseDate(startRaw); ok {
			months := rfp.Props.Int("duration_months")
			if months <= 0 {
				months = defaultDurationMonths
			}
			endRaw = start.AddDate(0, months, 0).Format(dateLayout)
		}

		title := rfp.Props.String("title")
		if title == "" {
			title = rfpID
		}
		projProps := graph.Props{
			"title":       title,
			"client":      rfp.Props.String("client"),
			"description": rfp.Props.String("description"),
			"status":      string(domain.ProjectActive),
			"team_size":   len(programmerIDs),
		}
		if startRaw != "" {
			projProps["start_date"] = startRaw
		}
		if endRaw != "" {
			projProps["end_date"] = endRaw
		}
		if err := tx.MergeNode(ctx, graph.KindProject, projID, projProps); err != nil {
			return err
		}

		needs, err := tx.OutEdges(ctx, rfpID, graph.RelNeeds)
		if err != nil {
			return err
		}
		for _, e := range needs {
			reqProps := graph.Props{
				"minimum_level": e.Props.String("proficiency"),
				"mandatory":     e.Props.Bool("mandatory"),
			}
			if err := tx.MergeEdge(ctx, graph.RelRequires, projID, e.ToKey, reqProps); err != nil {
				return err
			}
		}

		assigned := make([]string, 0, len(programmerIDs))
		for _, raw := range programmerIDs {
			personKey, err := normalization.CanonicalKey(raw)
			if err != nil {
				return fmt.Errorf("programmer %q: %w", raw, err)
			}
			if _, err := tx.GetNode(ctx, graph.KindPerson, personKey); err != nil {
				return fmt.Errorf("programmer %q: %w", raw, err)
			}
			assignProps := graph.Props{"allocation_percentage": fullAllocationPercent}
			if startRaw != "" {
				assignProps["start_date"] = startRaw
			}
			if endRaw != "" {
				assignProps["end_date"] = endRaw
			}
			if err := tx.MergeEdge(ctx, graph.RelAssignedTo, personKey, projID, assignProps); err != nil {
				return err
			}
			assigned = append(assigned, personKey)
		}

		if err := tx.DeleteNode(ctx, graph.KindRFP, rfpID); err != nil {
			return err
		}

		result = &ConversionResult{
			ProjectID:           projID,
			ProjectName:         title,
			Status:              string(domain.ProjectActive),
			StartDate:           startRaw,
			EndDate:             endRaw,
			AssignedProgrammers: assigned,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, rfpID)
	s.log.Info("converted RFP to project",
		"rfp_id", rfpID, "project_id", result.ProjectID, "team", len(result.AssignedProgrammers))
	return result, nil
}
