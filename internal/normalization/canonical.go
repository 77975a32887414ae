package normalization

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	pkgerrors "github.com/yungbote/staffing-graph-backend/internal/pkg/errors"
)

// CanonicalKey normalizes a free-text entity name into the graph identity
// key: surrounding whitespace trimmed, internal whitespace collapsed to a
// single space, then title-cased. Inputs differing only by case or spacing
// map to the same key, which is what makes MERGE idempotent.
func CanonicalKey(raw string) (string, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: blank entity name", pkgerrors.ErrInvalidIdentifier)
	}
	// cases.Caser carries internal state, so build one per call.
	return cases.Title(language.English).String(strings.Join(fields, " ")), nil
}

// CanonicalKeys maps CanonicalKey over a list, dropping blanks silently.
func CanonicalKeys(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		key, err := CanonicalKey(r)
		if err != nil {
			continue
		}
		out = append(out, key)
	}
	return out
}
