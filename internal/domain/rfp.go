package domain

// SkillRequirement is one technical requirement extracted from an RFP.
type SkillRequirement struct {
	SkillName               string           `json:"skill_name"`
	MinProficiency          ProficiencyLevel `json:"min_proficiency"`
	IsMandatory             bool             `json:"is_mandatory"`
	PreferredCertifications []string         `json:"preferred_certifications,omitempty"`
}

// RFPStructure is the structured form of one parsed RFP. The ID is assigned
// by this service on first save when the extractor leaves it empty.
type RFPStructure struct {
	ID             string             `json:"id,omitempty"`
	Title          string             `json:"title"`
	Client         string             `json:"client"`
	Description    string             `json:"description"`
	ProjectType    string             `json:"project_type,omitempty"`
	DurationMonths int                `json:"duration_months"`
	TeamSize       int                `json:"team_size"`
	BudgetRange    string             `json:"budget_range,omitempty"`
	StartDate      string             `json:"start_date"` // YYYY-MM-DD
	Location       string             `json:"location,omitempty"`
	RemoteAllowed  bool               `json:"remote_allowed"`
	Requirements   []SkillRequirement `json:"requirements"`
}

// RFPRead is the list view of an open RFP with its needed skills.
type RFPRead struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Client       string         `json:"client"`
	Budget       string         `json:"budget,omitempty"`
	StartDate    string         `json:"start_date,omitempty"`
	NeededSkills []RFPSkillRead `json:"needed_skills"`
}

type RFPSkillRead struct {
	Name      string           `json:"name"`
	Level     ProficiencyLevel `json:"level"`
	Mandatory bool             `json:"mandatory"`
}
