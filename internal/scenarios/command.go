package scenarios

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	projectsCommandUseConstant              = "projects"
	projectsCommandShortDescriptionConstant = "List predefined project folders and their compose services"
	projectsCommandLongDescriptionConstant  = "projects lists every predefined project folder together with the services declared in its docker-compose file."
	projectsListLineTemplateConstant        = "%-12s %s\n"
	projectsMissingFileTemplateConstant     = "(no compose file at %s)"
	projectsParseFailureTemplateConstant    = "(unreadable compose file: %v)"
	projectsNoServicesLabelConstant         = "(no services declared)"
	projectsServiceJoinSeparatorConstant    = ", "
	unexpectedProjectsArgumentsMessage      = "projects does not accept positional arguments"
	projectsListingDebugMessageConstant     = "Listing project folders"
	projectsRootFieldNameConstant           = "projects_root"
)

var errUnexpectedProjectsArguments = errors.New(unexpectedProjectsArgumentsMessage)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ProjectsRootProvider supplies the configured projects root directory.
type ProjectsRootProvider func() string

// ProjectsCommandBuilder assembles the Cobra command listing predefined projects.
type ProjectsCommandBuilder struct {
	LoggerProvider       LoggerProvider
	ProjectsRootProvider ProjectsRootProvider
}

// Build constructs the projects command.
func (builder *ProjectsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   projectsCommandUseConstant,
		Short: projectsCommandShortDescriptionConstant,
		Long:  projectsCommandLongDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *ProjectsCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedProjectsArguments
	}

	locator := NewComposeFileLocator(builder.resolveProjectsRoot())
	inventory := NewServiceInventory()
	outputWriter := command.OutOrStdout()

	logger := builder.resolveLogger()
	logger.Debug(projectsListingDebugMessageConstant, zap.String(projectsRootFieldNameConstant, locator.ProjectsRoot()))

	for _, projectFolder := range AllProjectFolders() {
		composeFilePath, requireError := locator.Require(projectFolder)
		if requireError != nil {
			fmt.Fprintf(outputWriter, projectsListLineTemplateConstant, projectFolder, fmt.Sprintf(projectsMissingFileTemplateConstant, locator.Resolve(projectFolder)))
			continue
		}

		serviceNames, inventoryError := inventory.ListServices(composeFilePath)
		if inventoryError != nil {
			fmt.Fprintf(outputWriter, projectsListLineTemplateConstant, projectFolder, fmt.Sprintf(projectsParseFailureTemplateConstant, inventoryError))
			continue
		}

		servicesLabel := projectsNoServicesLabelConstant
		if len(serviceNames) > 0 {
			servicesLabel = strings.Join(serviceNames, projectsServiceJoinSeparatorConstant)
		}
		fmt.Fprintf(outputWriter, projectsListLineTemplateConstant, projectFolder, servicesLabel)
	}

	return nil
}

func (builder *ProjectsCommandBuilder) resolveProjectsRoot() string {
	if builder.ProjectsRootProvider == nil {
		return DefaultProjectsRoot
	}
	return builder.ProjectsRootProvider()
}

func (builder *ProjectsCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}
