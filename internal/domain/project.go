package domain

type ProjectStatus string

const (
	ProjectCompleted ProjectStatus = "completed"
	ProjectActive    ProjectStatus = "active"
	ProjectPlanned   ProjectStatus = "planned"
	ProjectOnHold    ProjectStatus = "on_hold"
)

// Historical projects keep WORKED_ON edges; everything else keeps ASSIGNED_TO.
func (s ProjectStatus) Historical() bool { return s == ProjectCompleted }

type ProjectRequirement struct {
	SkillName      string           `json:"skill_name"`
	MinProficiency ProficiencyLevel `json:"min_proficiency"`
	IsMandatory    bool             `json:"is_mandatory"`
}

// AssignedProgrammer references a Person by canonical id or display name.
type AssignedProgrammer struct {
	ProgrammerName      string `json:"programmer_name"`
	AssignmentStartDate string `json:"assignment_start_date,omitempty"`
	AssignmentEndDate   string `json:"assignment_end_date,omitempty"`
}

// ProjectStructure is the bulk-ingestion form of one project.
type ProjectStructure struct {
	ID                      string               `json:"id"`
	Name                    string               `json:"name"`
	Client                  string               `json:"client"`
	Description             string               `json:"description"`
	StartDate               string               `json:"start_date,omitempty"`
	EndDate                 string               `json:"end_date,omitempty"`
	EstimatedDurationMonths int                  `json:"estimated_duration_months,omitempty"`
	Budget                  int                  `json:"budget,omitempty"`
	Status                  ProjectStatus        `json:"status"`
	TeamSize                int                  `json:"team_size"`
	Requirements            []ProjectRequirement `json:"requirements"`
	AssignedProgrammers     []AssignedProgrammer `json:"assigned_programmers"`
}

// ProjectRead is the list view of a project with requirements and team.
type ProjectRead struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Client         string        `json:"client"`
	Status         ProjectStatus `json:"status"`
	Description    string        `json:"description,omitempty"`
	StartDate      string        `json:"start_date,omitempty"`
	EndDate        string        `json:"end_date,omitempty"`
	RequiredSkills []string      `json:"required_skills"`
	AssignedTeam   []TeamMember  `json:"assigned_team"`
}

type TeamMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
