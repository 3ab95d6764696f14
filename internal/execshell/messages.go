package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running command: %s"
	genericSuccessTemplateConstant          = "%s completed successfully"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelSegmentTemplateConstant     = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	allServicesLabelConstant                = "all services"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	composeSubcommandNameConstant       = "compose"
	composeProjectNameFlagConstant      = "--project-name"
	composeFileFlagConstant             = "-f"
	composeVerboseFlagConstant          = "--verbose"
	composeUpActionNameConstant         = "up"
	composeDownActionNameConstant       = "down"
	composeStopActionNameConstant       = "stop"
	composeRestartActionNameConstant    = "restart"
	composeBuildActionNameConstant      = "build"
	composeLogsActionNameConstant       = "logs"
	composePsActionNameConstant         = "ps"
	composeExecActionNameConstant       = "exec"
	composeRemoveActionNameConstant     = "rm"
	networkSubcommandNameConstant       = "network"
	networkCreateActionNameConstant     = "create"
	networkRemoveActionNameConstant     = "rm"
	networkListActionNameConstant       = "ls"
	networkPruneActionNameConstant      = "prune"
	networkInspectActionNameConstant    = "inspect"
	networkConnectActionNameConstant    = "connect"
	networkDisconnectActionNameConstant = "disconnect"
	networkDriverFlagConstant           = "--driver"
	networkSubnetFlagConstant           = "--subnet"
)

const (
	composeUpStartTemplateConstant            = "Starting %s from %s"
	composeUpSuccessTemplateConstant          = "Started %s from %s"
	composeUpFailureTemplateConstant          = "Failed to start %s from %s (exit code %d%s)"
	composeUpExecutionFailureTemplateConstant = "Unable to start %s from %s: %s"

	composeDownStartTemplateConstant            = "Tearing down stack defined by %s"
	composeDownSuccessTemplateConstant          = "Tore down stack defined by %s"
	composeDownFailureTemplateConstant          = "Failed to tear down stack defined by %s (exit code %d%s)"
	composeDownExecutionFailureTemplateConstant = "Unable to tear down stack defined by %s: %s"

	composeStopStartTemplateConstant            = "Stopping %s from %s"
	composeStopSuccessTemplateConstant          = "Stopped %s from %s"
	composeStopFailureTemplateConstant          = "Failed to stop %s from %s (exit code %d%s)"
	composeStopExecutionFailureTemplateConstant = "Unable to stop %s from %s: %s"

	composeRestartStartTemplateConstant            = "Restarting %s from %s"
	composeRestartSuccessTemplateConstant          = "Restarted %s from %s"
	composeRestartFailureTemplateConstant          = "Failed to restart %s from %s (exit code %d%s)"
	composeRestartExecutionFailureTemplateConstant = "Unable to restart %s from %s: %s"

	composeBuildStartTemplateConstant            = "Building %s from %s"
	composeBuildSuccessTemplateConstant          = "Built %s from %s"
	composeBuildFailureTemplateConstant          = "Failed to build %s from %s (exit code %d%s)"
	composeBuildExecutionFailureTemplateConstant = "Unable to build %s from %s: %s"

	composeLogsStartTemplateConstant            = "Collecting logs for %s from %s"
	composeLogsSuccessTemplateConstant          = "Collected logs for %s from %s"
	composeLogsFailureTemplateConstant          = "Failed to collect logs for %s from %s (exit code %d%s)"
	composeLogsExecutionFailureTemplateConstant = "Unable to collect logs for %s from %s: %s"

	composePsStartTemplateConstant            = "Listing containers for %s from %s"
	composePsSuccessTemplateConstant          = "Listed containers for %s from %s"
	composePsFailureTemplateConstant          = "Failed to list containers for %s from %s (exit code %d%s)"
	composePsExecutionFailureTemplateConstant = "Unable to list containers for %s from %s: %s"

	composeExecStartTemplateConstant            = "Executing %s in %s"
	composeExecSuccessTemplateConstant          = "Executed %s in %s"
	composeExecFailureTemplateConstant          = "Failed to execute %s in %s (exit code %d%s)"
	composeExecExecutionFailureTemplateConstant = "Unable to execute %s in %s: %s"

	composeRemoveStartTemplateConstant            = "Removing containers for %s from %s"
	composeRemoveSuccessTemplateConstant          = "Removed containers for %s from %s"
	composeRemoveFailureTemplateConstant          = "Failed to remove containers for %s from %s (exit code %d%s)"
	composeRemoveExecutionFailureTemplateConstant = "Unable to remove containers for %s from %s: %s"

	networkCreateStartTemplateConstant            = "Creating network %s"
	networkCreateSuccessTemplateConstant          = "Created network %s"
	networkCreateFailureTemplateConstant          = "Failed to create network %s (exit code %d%s)"
	networkCreateExecutionFailureTemplateConstant = "Unable to create network %s: %s"

	networkRemoveStartTemplateConstant            = "Removing network %s"
	networkRemoveSuccessTemplateConstant          = "Removed network %s"
	networkRemoveFailureTemplateConstant          = "Failed to remove network %s (exit code %d%s)"
	networkRemoveExecutionFailureTemplateConstant = "Unable to remove network %s: %s"

	networkGenericStartTemplateConstant            = "Running network %s"
	networkGenericSuccessTemplateConstant          = "Completed network %s"
	networkGenericFailureTemplateConstant          = "Network %s failed (exit code %d%s)"
	networkGenericExecutionFailureTemplateConstant = "Network %s failed: %s"
)

// CommandMessageFormatter renders human-readable lifecycle messages for docker
// and docker compose invocations.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage describes a command that completed with exit code zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage describes a command that completed with a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage describes a command that could not be executed.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if formatter.isComposeCommand(command) {
		if message := formatter.describeComposeMessage(command, result, failure, stage); len(message) > 0 {
			return message
		}
	}
	if formatter.isNetworkCommand(command) {
		if message := formatter.describeNetworkMessage(command, result, failure, stage); len(message) > 0 {
			return message
		}
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) isComposeCommand(command ShellCommand) bool {
	if command.Name == CommandDockerCompose {
		return true
	}
	return command.Name == CommandDocker && formatter.argumentAtIndex(command.Details.Arguments, 0) == composeSubcommandNameConstant
}

func (formatter CommandMessageFormatter) isNetworkCommand(command ShellCommand) bool {
	return command.Name == CommandDocker && formatter.argumentAtIndex(command.Details.Arguments, 0) == networkSubcommandNameConstant
}

func (formatter CommandMessageFormatter) describeComposeMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	composeArguments := formatter.composeArguments(command)
	composeAction, remainingArguments := formatter.resolveComposeAction(composeArguments)
	composeFile := formatter.ensureValue(findFlagValue(composeArguments, composeFileFlagConstant))
	serviceLabel := formatter.describeServices(composeAction, remainingArguments)

	switch composeAction {
	case composeUpActionNameConstant:
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(composeUpStartTemplateConstant, serviceLabel, composeFile),
			fmt.Sprintf(composeUpSuccessTemplateConstant, serviceLabel, composeFile),
			composeUpFailureTemplateConstant, composeUpExecutionFailureTemplateConstant,
			serviceLabel, composeFile)
	case composeDownActionNameConstant:
		return formatter.renderSingleSubjectStage(stage, result, failure,
			composeDownStartTemplateConstant, composeDownSuccessTemplateConstant,
			composeDownFailureTemplateConstant, composeDownExecutionFailureTemplateConstant,
			composeFile)
	case composeStopActionNameConstant:
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(composeStopStartTemplateConstant, serviceLabel, composeFile),
			fmt.Sprintf(composeStopSuccessTemplateConstant, serviceLabel, composeFile),
			composeStopFailureTemplateConstant, composeStopExecutionFailureTemplateConstant,
			serviceLabel, composeFile)
	case composeRestartActionNameConstant:
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(composeRestartStartTemplateConstant, serviceLabel, composeFile),
			fmt.Sprintf(composeRestartSuccessTemplateConstant, serviceLabel, composeFile),
			composeRestartFailureTemplateConstant, composeRestartExecutionFailureTemplateConstant,
			serviceLabel, composeFile)
	case composeBuildActionNameConstant:
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(composeBuildStartTemplateConstant, serviceLabel, composeFile),
			fmt.Sprintf(composeBuildSuccessTemplateConstant, serviceLabel, composeFile),
			composeBuildFailureTemplateConstant, composeBuildExecutionFailureTemplateConstant,
			serviceLabel, composeFile)
	case composeLogsActionNameConstant:
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(composeLogsStartTemplateConstant, serviceLabel, composeFile),
			fmt.Sprintf(composeLogsSuccessTemplateConstant, serviceLabel, composeFile),
			composeLogsFailureTemplateConstant, composeLogsExecutionFailureTemplateConstant,
			serviceLabel, composeFile)
	case composePsActionNameConstant:
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(composePsStartTemplateConstant, serviceLabel, composeFile),
			fmt.Sprintf(composePsSuccessTemplateConstant, serviceLabel, composeFile),
			composePsFailureTemplateConstant, composePsExecutionFailureTemplateConstant,
			serviceLabel, composeFile)
	case composeExecActionNameConstant:
		executedCommand, serviceName := formatter.resolveExecTarget(remainingArguments)
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(composeExecStartTemplateConstant, executedCommand, serviceName),
			fmt.Sprintf(composeExecSuccessTemplateConstant, executedCommand, serviceName),
			composeExecFailureTemplateConstant, composeExecExecutionFailureTemplateConstant,
			executedCommand, serviceName)
	case composeRemoveActionNameConstant:
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(composeRemoveStartTemplateConstant, serviceLabel, composeFile),
			fmt.Sprintf(composeRemoveSuccessTemplateConstant, serviceLabel, composeFile),
			composeRemoveFailureTemplateConstant, composeRemoveExecutionFailureTemplateConstant,
			serviceLabel, composeFile)
	}

	return emptyStringConstant
}

func (formatter CommandMessageFormatter) describeNetworkMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	networkAction := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
	networkName := formatter.extractNetworkName(arguments)

	switch networkAction {
	case networkCreateActionNameConstant:
		return formatter.renderSingleSubjectStage(stage, result, failure,
			networkCreateStartTemplateConstant, networkCreateSuccessTemplateConstant,
			networkCreateFailureTemplateConstant, networkCreateExecutionFailureTemplateConstant,
			networkName)
	case networkRemoveActionNameConstant:
		return formatter.renderSingleSubjectStage(stage, result, failure,
			networkRemoveStartTemplateConstant, networkRemoveSuccessTemplateConstant,
			networkRemoveFailureTemplateConstant, networkRemoveExecutionFailureTemplateConstant,
			networkName)
	case networkListActionNameConstant, networkPruneActionNameConstant,
		networkInspectActionNameConstant, networkConnectActionNameConstant,
		networkDisconnectActionNameConstant:
		subject := networkAction
		if networkName != fallbackUnknownValueLabelConstant {
			subject = networkAction + commandArgumentsJoinSeparatorConstant + networkName
		}
		return formatter.renderSingleSubjectStage(stage, result, failure,
			networkGenericStartTemplateConstant, networkGenericSuccessTemplateConstant,
			networkGenericFailureTemplateConstant, networkGenericExecutionFailureTemplateConstant,
			subject)
	}

	return emptyStringConstant
}

func (formatter CommandMessageFormatter) renderStage(stage messageStage, result ExecutionResult, failure error, startMessage string, successMessage string, failureTemplate string, executionFailureTemplate string, firstSubject string, secondSubject string) string {
	switch stage {
	case messageStageStart:
		return startMessage
	case messageStageSuccess:
		return successMessage
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, firstSubject, secondSubject, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, firstSubject, secondSubject, formatter.describeFailure(failure))
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) renderSingleSubjectStage(stage messageStage, result ExecutionResult, failure error, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string, subject string) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, subject)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, subject)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, subject, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, subject, formatter.describeFailure(failure))
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
	return emptyStringConstant
}

// composeArguments strips the leading compose subcommand token when the docker
// binary is used, yielding a uniform argument view for both binaries.
func (formatter CommandMessageFormatter) composeArguments(command ShellCommand) []string {
	arguments := command.Details.Arguments
	if command.Name == CommandDocker && formatter.argumentAtIndex(arguments, 0) == composeSubcommandNameConstant {
		return arguments[1:]
	}
	return arguments
}

// resolveComposeAction returns the compose action token and the arguments trailing it.
// Base tokens before the action follow a fixed order: --project-name NAME -f FILE [--verbose].
func (formatter CommandMessageFormatter) resolveComposeAction(arguments []string) (string, []string) {
	argumentIndex := 0
	for argumentIndex < len(arguments) {
		currentArgument := arguments[argumentIndex]
		switch currentArgument {
		case composeProjectNameFlagConstant, composeFileFlagConstant:
			argumentIndex += 2
		case composeVerboseFlagConstant:
			argumentIndex++
		default:
			return currentArgument, arguments[argumentIndex+1:]
		}
	}
	return emptyStringConstant, nil
}

func (formatter CommandMessageFormatter) describeServices(composeAction string, trailingArguments []string) string {
	serviceNames := make([]string, 0, len(trailingArguments))
	for _, trailingArgument := range trailingArguments {
		if strings.HasPrefix(trailingArgument, "-") {
			continue
		}
		serviceNames = append(serviceNames, trailingArgument)
	}
	if composeAction == composeExecActionNameConstant && len(serviceNames) > 0 {
		serviceNames = serviceNames[:1]
	}
	if len(serviceNames) == 0 {
		return allServicesLabelConstant
	}
	return strings.Join(serviceNames, commandArgumentsJoinSeparatorConstant)
}

// resolveExecTarget extracts the service name and the executed command from
// arguments trailing the exec action.
func (formatter CommandMessageFormatter) resolveExecTarget(trailingArguments []string) (string, string) {
	positionalArguments := make([]string, 0, len(trailingArguments))
	for _, trailingArgument := range trailingArguments {
		if strings.HasPrefix(trailingArgument, "-") {
			continue
		}
		positionalArguments = append(positionalArguments, trailingArgument)
	}

	serviceName := fallbackUnknownValueLabelConstant
	executedCommand := fallbackUnknownValueLabelConstant
	if len(positionalArguments) > 0 {
		serviceName = positionalArguments[0]
	}
	if len(positionalArguments) > 1 {
		executedCommand = strings.Join(positionalArguments[1:], commandArgumentsJoinSeparatorConstant)
	}
	return executedCommand, serviceName
}

func (formatter CommandMessageFormatter) extractNetworkName(arguments []string) string {
	argumentIndex := 2
	for argumentIndex < len(arguments) {
		currentArgument := arguments[argumentIndex]
		switch currentArgument {
		case networkDriverFlagConstant, networkSubnetFlagConstant:
			argumentIndex += 2
		default:
			return currentArgument
		}
	}
	return fallbackUnknownValueLabelConstant
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	return fmt.Sprintf(commandLabelSegmentTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return emptyStringConstant
	}
	return arguments[index]
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return value
}

// describeCommand renders a command as a single display line for error messages.
func describeCommand(command ShellCommand) string {
	if len(command.Details.Arguments) == 0 {
		return string(command.Name)
	}
	return string(command.Name) + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
}

func findFlagValue(arguments []string, flag string) string {
	for argumentIndex, argument := range arguments {
		if argument != flag {
			continue
		}
		if argumentIndex+1 < len(arguments) {
			return arguments[argumentIndex+1]
		}
		return emptyStringConstant
	}
	return emptyStringConstant
}
