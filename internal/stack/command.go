package stack

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/weagle/weagle/internal/dockercli"
	"github.com/weagle/weagle/internal/execshell"
	"github.com/weagle/weagle/internal/scenarios"
	"github.com/weagle/weagle/internal/ui"
	flagutils "github.com/weagle/weagle/internal/utils/flags"
)

const (
	projectSelectorEnvironmentVariableConstant = "WEAGLE_PROJECT"

	detachFlagNameConstant       = "detach"
	detachFlagShorthandConstant  = "d"
	detachFlagUsageConstant      = "Run containers in the background"
	volumesFlagNameConstant      = "volumes"
	volumesFlagShorthandConstant = "v"
	volumesFlagUsageConstant     = "Remove volumes together with containers"
	forceFlagNameConstant        = "force"
	forceFlagShorthandConstant   = "f"
	forceFlagUsageConstant       = "Remove containers without confirmation"
	followFlagNameConstant       = "follow"
	followFlagShorthandConstant  = "f"
	followFlagUsageConstant      = "Stream log output until interrupted"
	tailFlagNameConstant         = "tail"
	tailFlagShorthandConstant    = "t"
	tailFlagUsageConstant        = "Limit log output to the final N lines"

	serviceArgumentRequiredMessageConstant = "exec requires a service name as its first argument"
	commandExecutionErrorTemplateConstant  = "docker %s failed: %w"
)

var errServiceArgumentRequired = errors.New(serviceArgumentRequiredMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the stack configuration resolved by the root command.
type ConfigurationProvider func() Configuration

// HumanReadableLoggingProvider reports whether console logging is active.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles one lifecycle Cobra command from its action definition.
type CommandBuilder struct {
	Definition                   ActionDefinition
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	ComposeRunner                ComposeRunner
}

// Build constructs the Cobra command for the builder's action definition.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	definition := builder.Definition
	if _, definitionKnown := FindActionDefinition(definition.Action); !definitionKnown {
		return nil, UnsupportedActionError{Action: definition.Action}
	}

	command := &cobra.Command{
		Use:   definition.Use,
		Short: definition.ShortDescription,
		Long:  definition.LongDescription,
		RunE:  builder.run,
	}

	flagutils.BindProjectFlag(command, flagutils.ProjectFlagValues{}, flagutils.ProjectFlagDefinition{
		Name:      flagutils.DefaultProjectFlagName,
		Shorthand: flagutils.DefaultProjectFlagShorthand,
		Usage:     flagutils.DefaultProjectFlagUsage,
		Enabled:   true,
	})
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.DefaultExecutionFlagDefinitions())

	flagSet := command.Flags()
	if definition.AcceptsCommand {
		// Tokens after the service name belong to the container command, so
		// flag parsing must stop at the first positional argument.
		flagSet.SetInterspersed(false)
	}
	if definition.SupportsDetached {
		var detachedValue bool
		flagutils.AddToggleFlag(flagSet, &detachedValue, detachFlagNameConstant, detachFlagShorthandConstant, definition.DetachedDefault, detachFlagUsageConstant)
	}
	if definition.SupportsFollow {
		var followValue bool
		flagutils.AddToggleFlag(flagSet, &followValue, followFlagNameConstant, followFlagShorthandConstant, false, followFlagUsageConstant)
	}
	if definition.SupportsTail {
		flagSet.IntP(tailFlagNameConstant, tailFlagShorthandConstant, 0, tailFlagUsageConstant)
	}
	if definition.SupportsVolumes {
		var volumesValue bool
		flagutils.AddToggleFlag(flagSet, &volumesValue, volumesFlagNameConstant, volumesFlagShorthandConstant, false, volumesFlagUsageConstant)
	}
	if definition.SupportsForce {
		var forceValue bool
		flagutils.AddToggleFlag(flagSet, &forceValue, forceFlagNameConstant, forceFlagShorthandConstant, false, forceFlagUsageConstant)
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	task, taskError := builder.parseTask(command, arguments, configuration)
	if taskError != nil {
		return taskError
	}

	logger := builder.resolveLogger()
	composeRunner, runnerError := builder.resolveComposeRunner(logger, command)
	if runnerError != nil {
		return runnerError
	}

	service, serviceError := NewService(Dependencies{Logger: logger, ComposeRunner: composeRunner}, configuration)
	if serviceError != nil {
		return serviceError
	}

	_, runError := service.Run(command.Context(), task)
	if runError != nil {
		var commandFailed execshell.CommandFailedError
		if errors.As(runError, &commandFailed) {
			// Failure details were already reported through the executor; the
			// caller only needs the error to mirror the child's exit code.
			return runError
		}
		return fmt.Errorf(commandExecutionErrorTemplateConstant, builder.Definition.Action, runError)
	}

	return nil
}

func (builder *CommandBuilder) parseTask(command *cobra.Command, arguments []string, configuration Configuration) (StackTask, error) {
	definition := builder.Definition

	projectSelector, _ := command.Flags().GetString(flagutils.DefaultProjectFlagName)
	if len(strings.TrimSpace(projectSelector)) == 0 {
		projectSelector = os.Getenv(projectSelectorEnvironmentVariableConstant)
	}
	if len(strings.TrimSpace(projectSelector)) == 0 {
		projectSelector = configuration.Project
	}

	projectFolder, projectParseError := scenarios.ParseProjectFolder(projectSelector)
	if projectParseError != nil {
		return StackTask{}, projectParseError
	}

	services := arguments
	var trailingCommand []string
	if definition.RequiresService {
		if len(arguments) == 0 {
			return StackTask{}, errServiceArgumentRequired
		}
		services = arguments[:1]
		trailingCommand = arguments[1:]
	}

	verboseValue, _ := command.Flags().GetBool(flagutils.VerboseFlagName)
	dryRunValue, _ := command.Flags().GetBool(flagutils.DryRunFlagName)

	task := StackTask{
		Action:   definition.Action,
		Project:  projectFolder,
		Services: services,
		Command:  trailingCommand,
		Verbose:  verboseValue,
		DryRun:   dryRunValue,
	}

	if definition.SupportsDetached {
		task.Detached, _ = command.Flags().GetBool(detachFlagNameConstant)
	}
	if definition.SupportsFollow {
		task.FollowLogs, _ = command.Flags().GetBool(followFlagNameConstant)
	}
	if definition.SupportsTail {
		task.TailLines, _ = command.Flags().GetInt(tailFlagNameConstant)
	}
	if definition.SupportsVolumes {
		volumesValue, _ := command.Flags().GetBool(volumesFlagNameConstant)
		if !command.Flags().Changed(volumesFlagNameConstant) {
			volumesValue = configuration.RemoveVolumes
		}
		task.RemoveVolumes = volumesValue
	}
	if definition.SupportsForce {
		task.ForceRemoval, _ = command.Flags().GetBool(forceFlagNameConstant)
	}

	return task, nil
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveComposeRunner(logger *zap.Logger, command *cobra.Command) (ComposeRunner, error) {
	if builder.ComposeRunner != nil {
		return builder.ComposeRunner, nil
	}

	commandRunner := execshell.NewOSCommandRunner()

	var eventObserver execshell.CommandEventObserver
	if builder.humanReadableLoggingEnabled() {
		eventObserver = ui.NewConsoleCommandEventLogger(logger)
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, eventObserver)
	if executorError != nil {
		return nil, executorError
	}

	dockerClient, clientError := dockercli.NewClient(shellExecutor, command.ErrOrStderr())
	if clientError != nil {
		return nil, clientError
	}

	return dockerClient, nil
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}
