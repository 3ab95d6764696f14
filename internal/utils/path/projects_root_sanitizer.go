package pathutils

import (
	"os"
	"strings"
)

const forwardSlashConstant = "/"

// ProjectsRootSanitizer normalizes the configured projects root path consistently across commands.
type ProjectsRootSanitizer struct {
	homeExpander *HomeExpander
	fallbackRoot string
}

// NewProjectsRootSanitizer constructs a ProjectsRootSanitizer that falls back to the provided root.
func NewProjectsRootSanitizer(fallbackRoot string) *ProjectsRootSanitizer {
	return NewProjectsRootSanitizerWithExpander(nil, fallbackRoot)
}

// NewProjectsRootSanitizerWithExpander constructs a ProjectsRootSanitizer using the provided expander.
func NewProjectsRootSanitizerWithExpander(homeExpander *HomeExpander, fallbackRoot string) *ProjectsRootSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}

	return &ProjectsRootSanitizer{
		homeExpander: resolvedExpander,
		fallbackRoot: strings.TrimSpace(fallbackRoot),
	}
}

// Sanitize trims whitespace, expands the user's home directory, and strips trailing separators.
// Empty input resolves to the configured fallback root.
func (sanitizer *ProjectsRootSanitizer) Sanitize(candidateRoot string) string {
	fallbackRoot := ""
	expander := NewHomeExpander()
	if sanitizer != nil {
		fallbackRoot = sanitizer.fallbackRoot
		expander = sanitizer.homeExpander
	}

	trimmedRoot := strings.TrimSpace(candidateRoot)
	if len(trimmedRoot) == 0 {
		trimmedRoot = fallbackRoot
	}
	if len(trimmedRoot) == 0 {
		return trimmedRoot
	}

	expandedRoot := expander.Expand(trimmedRoot)
	return trimTrailingSeparators(expandedRoot)
}

func trimTrailingSeparators(candidatePath string) string {
	trimmedPath := candidatePath
	for len(trimmedPath) > 1 {
		if strings.HasSuffix(trimmedPath, forwardSlashConstant) {
			trimmedPath = strings.TrimSuffix(trimmedPath, forwardSlashConstant)
			continue
		}
		if strings.HasSuffix(trimmedPath, string(os.PathSeparator)) {
			trimmedPath = strings.TrimSuffix(trimmedPath, string(os.PathSeparator))
			continue
		}
		break
	}
	return trimmedPath
}
