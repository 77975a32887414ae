package domain

// ProficiencyLevel is the ordinal skill strength used on HAS_SKILL, NEEDS
// and REQUIRES relationships.
type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "Beginner"
	ProficiencyIntermediate ProficiencyLevel = "Intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "Advanced"
	ProficiencyExpert       ProficiencyLevel = "Expert"
)

// Ordinal maps Beginner..Expert to 1..4. Unknown values map to 0 so that a
// malformed level never outranks a real one.
func (p ProficiencyLevel) Ordinal() int {
	switch p {
	case ProficiencyBeginner:
		return 1
	case ProficiencyIntermediate:
		return 2
	case ProficiencyAdvanced:
		return 3
	case ProficiencyExpert:
		return 4
	default:
		return 0
	}
}
