package network

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/weagle/weagle/internal/dockercli"
	"github.com/weagle/weagle/internal/execshell"
	"github.com/weagle/weagle/internal/ui"
	flagutils "github.com/weagle/weagle/internal/utils/flags"
)

const (
	commandUseConstant              = "network ACTION"
	commandShortDescriptionConstant = "Manage the shared docker network"
	commandLongTemplateConstant     = "network wraps docker network management actions (%s)."
	actionNameJoinSeparatorConstant = ", "

	driverFlagNameConstant  = "driver"
	driverFlagUsageConstant = "Network driver used when creating the network"
	subnetFlagNameConstant  = "subnet"
	subnetFlagUsageConstant = "Subnet in CIDR form used when creating the network"

	networkExecutionErrorTemplateConstant = "docker network %s failed: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the network configuration resolved by the root command.
type ConfigurationProvider func() Configuration

// HumanReadableLoggingProvider reports whether console logging is active.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the docker network Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	NetworkRunner                NetworkRunner
}

// Build constructs the network command with its action argument and flags.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  fmt.Sprintf(commandLongTemplateConstant, strings.Join(dockercli.SupportedNetworkActionNames(), actionNameJoinSeparatorConstant)),
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	flagutils.BindNetworkNameFlag(command, flagutils.NetworkNameFlagValues{}, flagutils.NetworkNameFlagDefinition{
		Name:      flagutils.NetworkNameFlagName,
		Shorthand: flagutils.NetworkNameFlagShorthand,
		Usage:     flagutils.NetworkNameFlagUsage,
		Enabled:   true,
	})
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.DefaultExecutionFlagDefinitions())

	flagSet := command.Flags()
	flagSet.String(driverFlagNameConstant, "", driverFlagUsageConstant)
	flagSet.String(subnetFlagNameConstant, "", subnetFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	action, actionParseError := dockercli.ParseNetworkAction(arguments[0])
	if actionParseError != nil {
		return actionParseError
	}

	nameValue, _ := command.Flags().GetString(flagutils.NetworkNameFlagName)
	driverValue, _ := command.Flags().GetString(driverFlagNameConstant)
	subnetValue, _ := command.Flags().GetString(subnetFlagNameConstant)
	dryRunValue, _ := command.Flags().GetBool(flagutils.DryRunFlagName)

	task := NetworkTask{
		Action: action,
		Name:   strings.TrimSpace(nameValue),
		Driver: strings.TrimSpace(driverValue),
		Subnet: strings.TrimSpace(subnetValue),
		DryRun: dryRunValue,
	}

	logger := builder.resolveLogger()
	networkRunner, runnerError := builder.resolveNetworkRunner(logger, command)
	if runnerError != nil {
		return runnerError
	}

	service, serviceError := NewService(Dependencies{Logger: logger, NetworkRunner: networkRunner}, builder.resolveConfiguration())
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
		return fmt.Errorf(networkExecutionErrorTemplateConstant, action, runError)
	}

	return nil
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

func (builder *CommandBuilder) resolveNetworkRunner(logger *zap.Logger, command *cobra.Command) (NetworkRunner, error) {
	if builder.NetworkRunner != nil {
		return builder.NetworkRunner, nil
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
