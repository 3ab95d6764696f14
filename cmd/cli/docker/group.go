package docker

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/weagle/weagle/internal/network"
	"github.com/weagle/weagle/internal/scenarios"
	"github.com/weagle/weagle/internal/stack"
)

const (
	groupUseConstant      = "docker"
	groupShortDescription = "Manage docker compose projects and the shared network"
	groupLongDescription  = "docker groups the lifecycle commands for predefined compose projects together with network management."
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the docker tools configuration resolved by the root command.
type ConfigurationProvider func() ToolsConfiguration

// HumanReadableLoggingProvider reports whether console logging is active.
type HumanReadableLoggingProvider func() bool

// CommandGroupBuilder assembles the docker command group.
type CommandGroupBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
}

// Build constructs the docker command hierarchy: one lifecycle command per
// action definition, the network command, and the projects listing.
func (builder *CommandGroupBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescription,
		Long:  groupLongDescription,
	}

	for _, definition := range stack.ActionDefinitions() {
		stackBuilder := stack.CommandBuilder{
			Definition:                   definition,
			LoggerProvider:               stack.LoggerProvider(builder.LoggerProvider),
			ConfigurationProvider:        builder.stackConfiguration,
			HumanReadableLoggingProvider: stack.HumanReadableLoggingProvider(builder.HumanReadableLoggingProvider),
		}
		stackCommand, stackBuildError := stackBuilder.Build()
		if stackBuildError != nil {
			return nil, stackBuildError
		}
		command.AddCommand(stackCommand)
	}

	networkBuilder := network.CommandBuilder{
		LoggerProvider:               network.LoggerProvider(builder.LoggerProvider),
		ConfigurationProvider:        builder.networkConfiguration,
		HumanReadableLoggingProvider: network.HumanReadableLoggingProvider(builder.HumanReadableLoggingProvider),
	}
	networkCommand, networkBuildError := networkBuilder.Build()
	if networkBuildError != nil {
		return nil, networkBuildError
	}
	command.AddCommand(networkCommand)

	projectsBuilder := scenarios.ProjectsCommandBuilder{
		LoggerProvider:       scenarios.LoggerProvider(builder.LoggerProvider),
		ProjectsRootProvider: builder.projectsRoot,
	}
	projectsCommand, projectsBuildError := projectsBuilder.Build()
	if projectsBuildError != nil {
		return nil, projectsBuildError
	}
	command.AddCommand(projectsCommand)

	return command, nil
}

func (builder *CommandGroupBuilder) resolveConfiguration() ToolsConfiguration {
	if builder.ConfigurationProvider == nil {
		return ToolsConfiguration{
			Stack:   stack.DefaultConfiguration(),
			Network: network.DefaultConfiguration(),
		}
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandGroupBuilder) stackConfiguration() stack.Configuration {
	return builder.resolveConfiguration().Stack
}

func (builder *CommandGroupBuilder) networkConfiguration() network.Configuration {
	return builder.resolveConfiguration().Network
}

func (builder *CommandGroupBuilder) projectsRoot() string {
	return builder.stackConfiguration().Sanitize().ProjectsRoot
}
