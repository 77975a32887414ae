package domain

// AvailabilityStatus classifies a candidate against an RFP start date.
type AvailabilityStatus string

const (
	Available     AvailabilityStatus = "available"
	AvailableSoon AvailabilityStatus = "available_soon"
	Unavailable   AvailabilityStatus = "unavailable"
)

// CandidateMatch is one scored candidate for an RFP.
type CandidateMatch struct {
	ProgrammerID           string             `json:"programmer_id"`
	ProgrammerName         string             `json:"programmer_name"`
	Role                   string             `json:"role,omitempty"`
	TotalScore             int                `json:"total_score"`
	SkillMatchPercent      float64            `json:"skill_match_percent"`
	MissingMandatorySkills []string           `json:"missing_mandatory_skills"`
	MissingOptionalSkills  []string           `json:"missing_optional_skills"`
	Status                 AvailabilityStatus `json:"status"`
	DaysUntilAvailable     int                `json:"days_until_available"`
	CurrentProjectEndDate  string             `json:"current_project_end_date,omitempty"`
	CurrentProjectName     string             `json:"current_project_name,omitempty"`
}

// MatchResponse buckets candidates into perfect, future and partial matches,
// each sorted by (total_score, skill_match_percent) descending.
type MatchResponse struct {
	RFPID          string           `json:"rfp_id"`
	PerfectMatches []CandidateMatch `json:"perfect_matches"`
	FutureMatches  []CandidateMatch `json:"future_matches"`
	PartialMatches []CandidateMatch `json:"partial_matches"`
}
