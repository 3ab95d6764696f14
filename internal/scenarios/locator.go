package scenarios

import (
	"fmt"
	"os"

	pathutils "github.com/weagle/weagle/internal/utils/path"
)

const (
	// DefaultProjectsRoot is the directory searched for project folders when no override is configured.
	DefaultProjectsRoot = "./projects"

	composeFileNameConstant              = "docker-compose.yml"
	composeFilePathTemplateConstant      = "%s/%s/%s"
	composeFileMissingTemplateConstant   = "project %s has no compose file at %s"
	composeFileStatErrorTemplateConstant = "unable to inspect compose file %s: %w"
)

// ComposeFileMissingError reports a selected project whose compose file does not exist.
type ComposeFileMissingError struct {
	Project ProjectFolder
	Path    string
}

// Error describes the missing compose file.
func (missingError ComposeFileMissingError) Error() string {
	return fmt.Sprintf(composeFileMissingTemplateConstant, missingError.Project, missingError.Path)
}

// ComposeFileLocator resolves docker-compose file paths beneath the projects root.
type ComposeFileLocator struct {
	projectsRoot string
}

// NewComposeFileLocator constructs a locator rooted at the sanitized projects root.
func NewComposeFileLocator(projectsRoot string) *ComposeFileLocator {
	sanitizer := pathutils.NewProjectsRootSanitizer(DefaultProjectsRoot)
	return &ComposeFileLocator{projectsRoot: sanitizer.Sanitize(projectsRoot)}
}

// ProjectsRoot returns the sanitized projects root the locator searches.
func (locator *ComposeFileLocator) ProjectsRoot() string {
	if locator == nil {
		return DefaultProjectsRoot
	}
	return locator.projectsRoot
}

// Resolve renders the compose file path for the project without touching the filesystem.
func (locator *ComposeFileLocator) Resolve(project ProjectFolder) string {
	return fmt.Sprintf(composeFilePathTemplateConstant, locator.ProjectsRoot(), project, composeFileNameConstant)
}

// Require resolves the compose file path and verifies the file exists before any command is spawned.
func (locator *ComposeFileLocator) Require(project ProjectFolder) (string, error) {
	composeFilePath := locator.Resolve(project)

	fileInformation, statError := os.Stat(composeFilePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", ComposeFileMissingError{Project: project, Path: composeFilePath}
		}
		return "", fmt.Errorf(composeFileStatErrorTemplateConstant, composeFilePath, statError)
	}
	if fileInformation.IsDir() {
		return "", ComposeFileMissingError{Project: project, Path: composeFilePath}
	}

	return composeFilePath, nil
}
