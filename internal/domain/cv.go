package domain

// CVStructure is the structured form of one parsed CV. It is produced by an
// external extraction pipeline; this service only persists it.
type CVStructure struct {
	FullName       string    `json:"full_name"`
	Email          string    `json:"email,omitempty"`
	Location       string    `json:"location,omitempty"`
	Summary        string    `json:"summary,omitempty"`
	UniversityName string    `json:"university_name,omitempty"`
	Certifications []string  `json:"certifications"`
	WorkedFor      []string  `json:"worked_for"`
	Skills         []CVSkill `json:"skills"`
}

type CVSkill struct {
	SkillName   string           `json:"skill_name"`
	Proficiency ProficiencyLevel `json:"proficiency"`
}

// ProgrammerRead is the list view of a Person with skills and current work.
type ProgrammerRead struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email,omitempty"`
	Location       string            `json:"location,omitempty"`
	Skills         []ProgrammerSkill `json:"skills"`
	CurrentProject string            `json:"current_project,omitempty"`
}

type ProgrammerSkill struct {
	Name        string           `json:"name"`
	Proficiency ProficiencyLevel `json:"proficiency"`
}
