package render

import "strings"

const (
	filenamePrefix  = "workflow_"
	filenameSuffix  = ".pdf"
	maxFilenameStem = 30
	// fallbackStem is used when a goal has no ASCII letters or digits at all.
	fallbackStem = "plan"
)

// DeriveFilename maps the original goal text to the document filename. It is
// a pure function of goal: lowercase, every character outside [a-z0-9_]
// becomes an underscore, underscore runs collapse, leading and trailing
// underscores are stripped and the result is cut to 30 characters.
func DeriveFilename(goal string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(goal) {
		keep := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !keep {
			if !lastUnderscore {
				sb.WriteByte('_')
			}
			lastUnderscore = true
			continue
		}
		sb.WriteRune(r)
		lastUnderscore = false
	}

	stem := strings.Trim(sb.String(), "_")
	if len(stem) > maxFilenameStem {
		stem = stem[:maxFilenameStem]
	}
	if stem == "" {
		stem = fallbackStem
	}
	return filenamePrefix + stem + filenameSuffix
}
