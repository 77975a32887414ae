package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/yungbote/staffing-graph-backend/internal/clients/redis"
	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
)

// noCommitmentDelay marks a candidate with no live assignment at all.
const noCommitmentDelay = -999

const defaultRole = "Developer"

// Per-requirement score contributions by proficiency delta
// (candidate ordinal minus required ordinal).
const (
	mandatoryMeets  = 10
	mandatoryOneOff = 6
	mandatoryFarOff = 3
	optionalMeets   = 5
	optionalOneOff  = 3
	optionalFarOff  = 1
)

// MatchingService scores every person against one RFP's skill needs and
// buckets the results by skill coverage and availability.
type MatchingService struct {
	store graph.Store
	log   *logger.Logger
	cache *redis.MatchCache
}

func NewMatchingService(store graph.Store, baseLog *logger.Logger, cache *redis.MatchCache) *MatchingService {
	return &MatchingService{
		store: store,
		log:   baseLog.With("service", "MatchingService"),
		cache: cache,
	}
}

// requirement is one NEEDS edge flattened for scoring.
type requirement struct {
	skill     string
	ordinal   int
	mandatory bool
}

// commitment is a person's latest live project assignment.
type commitment struct {
	projectKey   string
	projectTitle string
	endDate      time.Time
	endDateRaw   string
}

// currentCommitment returns the assignment with the latest end date among a
// person's active and planned projects, or nil when none bind them.
func currentCommitment(ctx context.Context, store graph.Store, personKey string) (*commitment, error) {
	edges, err := store.OutEdges(ctx, personKey, graph.RelAssignedTo)
	if err != nil {
		return nil, err
	}
	var latest *commitment
	for _, e := range edges {
		proj, err := store.GetNode(ctx, graph.KindProject, e.ToKey)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		status := domain.ProjectStatus(proj.Props.String("status"))
		if status.Historical() {
			continue
		}
		// The assignment's own end date wins over the project-level one; a
		// person can roll off before the project closes.
		endRaw := e.Props.String("end_date")
		if endRaw == "" {
			endRaw = proj.Props.String("end_date")
		}
		end, ok := parseDate(endRaw)
		if !ok {
			continue
		}
		if latest == nil || end.After(latest.endDate) {
			title := proj.Props.String("title")
			if title == "" {
				title = proj.Key
			}
			latest = &commitment{
				projectKey:   proj.Key,
				projectTitle: title,
				endDate:      end,
				endDateRaw:   endRaw,
			}
		}
	}
	return latest, nil
}

// FindCandidates scores all persons against the RFP identified by rfpID.
// thresholdMonths widens the available_soon window (months * 30 days).
func (s *MatchingService) FindCandidates(ctx context.Context, rfpID string, thresholdMonths int) (*domain.MatchResponse, error) {
	if thresholdMonths <= 0 {
		thresholdMonths = 3
	}
	if cached, ok := s.cache.Get(ctx, rfpID, thresholdMonths); ok {
		return cached, nil
	}

	rfp, err := s.store.GetNode(ctx, graph.KindRFP, rfpID)
	if err != nil {
		return nil, err
	}
	needs, err := s.store.OutEdges(ctx, rfpID, graph.RelNeeds)
	if err != nil {
		return nil, err
	}
	reqs := make([]requirement, 0, len(needs))
	maxScore := 0
	for _, e := range needs {
		ord := domain.ProficiencyLevel(e.Props.String("proficiency")).Ordinal()
		if ord == 0 {
			continue
		}
		r := requirement{skill: e.ToKey, ordinal: ord, mandatory: e.Props.Bool("mandatory")}
		reqs = append(reqs, r)
		if r.mandatory {
			maxScore += mandatoryMeets
		} else {
			maxScore += optionalMeets
		}
	}

	startRaw := rfp.Props.String("start_date")
	if startRaw == "" {
		startRaw = rfp.Props.String("deadline")
	}
	rfpStart, hasStart := parseDate(startRaw)

	persons, err := s.store.ListNodes(ctx, graph.KindPerson)
	if err != nil {
		return nil, err
	}

	resp := &domain.MatchResponse{
		RFPID:          rfpID,
		PerfectMatches: []domain.CandidateMatch{},
		FutureMatches:  []domain.CandidateMatch{},
		PartialMatches: []domain.CandidateMatch{},
	}

	for _, p := range persons {
		match, include, err := s.scorePerson(ctx, p, reqs, maxScore)
		if err != nil {
			return nil, err
		}
		if !include {
			continue
		}

		current, err := currentCommitment(ctx, s.store, p.Key)
		if err != nil {
			return nil, err
		}
		delay := noCommitmentDelay
		if current != nil {
			match.CurrentProjectName = current.projectTitle
			match.CurrentProjectEndDate = current.endDateRaw
			if hasStart {
				delay = int(current.endDate.Sub(rfpStart).Hours() / 24)
			} else {
				delay = 0
			}
		}

		switch {
		case delay <= 0:
			match.Status = domain.Available
			match.DaysUntilAvailable = 0
		case delay <= thresholdMonths*30:
			match.Status = domain.AvailableSoon
			match.DaysUntilAvailable = delay
		default:
			match.Status = domain.Unavailable
			match.DaysUntilAvailable = delay
		}

		// Missing a mandatory skill caps the candidate at partial no matter
		// how soon they free up. Fully unavailable non-partials are dropped.
		switch {
		case len(match.MissingMandatorySkills) > 0:
			resp.PartialMatches = append(resp.PartialMatches, *match)
		case match.Status == domain.Available:
			resp.PerfectMatches = append(resp.PerfectMatches, *match)
		case match.Status == domain.AvailableSoon:
			resp.FutureMatches = append(resp.FutureMatches, *match)
		}
	}

	sortMatches(resp.PerfectMatches)
	sortMatches(resp.FutureMatches)
	sortMatches(resp.PartialMatches)

	s.cache.Set(ctx, rfpID, thresholdMonths, resp)
	s.log.Info("matched candidates",
		"rfp_id", rfpID,
		"perfect", len(resp.PerfectMatches),
		"future", len(resp.FutureMatches),
		"partial", len(resp.PartialMatches))
	return resp, nil
}

// scorePerson computes the skill score for one person. include is false when
// the person scored zero across every requirement.
func (s *MatchingService) scorePerson(ctx context.Context, p *graph.Node, reqs []requirement, maxScore int) (*domain.CandidateMatch, bool, error) {
	skills, err := s.store.OutEdges(ctx, p.Key, graph.RelHasSkill)
	if err != nil {
		return nil, false, err
	}
	have := make(map[string]int, len(skills))
	for _, e := range skills {
		have[e.ToKey] = domain.ProficiencyLevel(e.Props.String("proficiency")).Ordinal()
	}

	match := &domain.CandidateMatch{
		ProgrammerID:           p.Key,
		ProgrammerName:         p.Props.String("name"),
		Role:                   defaultRole,
		MissingMandatorySkills: []string{},
		MissingOptionalSkills:  []string{},
	}
	if match.ProgrammerName == "" {
		match.ProgrammerName = p.Key
	}

	total := 0
	for _, r := range reqs {
		ord, ok := have[r.skill]
		if !ok || ord == 0 {
			if r.mandatory {
				match.MissingMandatorySkills = append(match.MissingMandatorySkills, r.skill)
			} else {
				match.MissingOptionalSkills = append(match.MissingOptionalSkills, r.skill)
			}
			continue
		}
		total += requirementScore(r.mandatory, ord-r.ordinal)
	}
	if total == 0 {
		return nil, false, nil
	}
	match.TotalScore = total
	if maxScore > 0 {
		match.SkillMatchPercent = math.Round(float64(total)/float64(maxScore)*1000) / 10
	}
	return match, true, nil
}

func requirementScore(mandatory bool, delta int) int {
	switch {
	case mandatory && delta >= 0:
		return mandatoryMeets
	case mandatory && delta == -1:
		return mandatoryOneOff
	case mandatory:
		return mandatoryFarOff
	case delta >= 0:
		return optionalMeets
	case delta == -1:
		return optionalOneOff
	default:
		return optionalFarOff
	}
}

func sortMatches(list []domain.CandidateMatch) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].TotalScore != list[j].TotalScore {
			return list[i].TotalScore > list[j].TotalScore
		}
		return list[i].SkillMatchPercent > list[j].SkillMatchPercent
	})
}
