package scenarios

import (
	"errors"
	"fmt"
	"strings"
)

const (
	projectFolder01Constant ProjectFolder = "project_01"
	projectFolder02Constant ProjectFolder = "project_02"
	projectFolder03Constant ProjectFolder = "project_03"
	projectFolder04Constant ProjectFolder = "project_04"
	projectFolder05Constant ProjectFolder = "project_05"

	projectNotSelectedMessageConstant = "project must be provided via --project, the WEAGLE_PROJECT environment variable, or configuration"
	unknownProjectTemplateConstant    = "unknown project %q (supported: %s)"
	projectNameJoinSeparatorConstant  = ", "
)

// ProjectFolder enumerates the predefined project folders managed by the CLI.
type ProjectFolder string

// ProjectFolder01 identifies the first predefined project folder.
const ProjectFolder01 ProjectFolder = projectFolder01Constant

// ProjectFolder02 identifies the second predefined project folder.
const ProjectFolder02 ProjectFolder = projectFolder02Constant

// ProjectFolder03 identifies the third predefined project folder.
const ProjectFolder03 ProjectFolder = projectFolder03Constant

// ProjectFolder04 identifies the fourth predefined project folder.
const ProjectFolder04 ProjectFolder = projectFolder04Constant

// ProjectFolder05 identifies the fifth predefined project folder.
const ProjectFolder05 ProjectFolder = projectFolder05Constant

// ErrProjectNotSelected reports that no project selector was supplied.
var ErrProjectNotSelected = errors.New(projectNotSelectedMessageConstant)

// UnknownProjectError reports a project selector outside the predefined set.
type UnknownProjectError struct {
	Value string
}

// Error describes the unsupported project selector.
func (unknownProjectError UnknownProjectError) Error() string {
	return fmt.Sprintf(unknownProjectTemplateConstant, unknownProjectError.Value, strings.Join(SupportedProjectFolderNames(), projectNameJoinSeparatorConstant))
}

// AllProjectFolders returns the predefined project folders in listing order.
func AllProjectFolders() []ProjectFolder {
	return []ProjectFolder{
		ProjectFolder01,
		ProjectFolder02,
		ProjectFolder03,
		ProjectFolder04,
		ProjectFolder05,
	}
}

// SupportedProjectFolderNames returns the textual names of the predefined project folders.
func SupportedProjectFolderNames() []string {
	projectFolders := AllProjectFolders()
	projectFolderNames := make([]string, 0, len(projectFolders))
	for _, projectFolder := range projectFolders {
		projectFolderNames = append(projectFolderNames, string(projectFolder))
	}
	return projectFolderNames
}

// ParseProjectFolder normalizes textual project selectors.
func ParseProjectFolder(projectValue string) (ProjectFolder, error) {
	trimmedValue := strings.TrimSpace(projectValue)
	if len(trimmedValue) == 0 {
		return "", ErrProjectNotSelected
	}

	loweredValue := strings.ToLower(trimmedValue)
	for _, projectFolder := range AllProjectFolders() {
		if ProjectFolder(loweredValue) == projectFolder {
			return projectFolder, nil
		}
	}

	return "", UnknownProjectError{Value: projectValue}
}

// String returns the folder name of the project.
func (projectFolder ProjectFolder) String() string {
	return string(projectFolder)
}
