package execshell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	dockerToolNameConstant                     = "docker"
	dockerComposeLegacyToolNameConstant        = "docker-compose"
	loggerNotConfiguredMessageConstant         = "logger not configured"
	commandRunnerNotConfiguredMessageConstant  = "command runner not configured"
	commandFailedErrorTemplateConstant         = "%s exited with code %d"
	commandExecutionErrorTemplateConstant      = "%s could not be executed: %v"
	commandTimedOutErrorTemplateConstant       = "%s timed out after %s"
	logFieldCommandNameConstant                = "command_name"
	logFieldCommandArgumentsConstant           = "command_arguments"
	logFieldWorkingDirectoryConstant           = "working_directory"
	logFieldExitCodeConstant                   = "exit_code"
	logFieldTimeoutConstant                    = "timeout"
	commandTimeoutDisabledDurationZeroConstant = time.Duration(0)
)

// CommandName identifies an external executable supported by the executor.
type CommandName string

// Supported external executables.
const (
	// CommandDocker invokes the docker binary, including docker compose subcommands.
	CommandDocker CommandName = CommandName(dockerToolNameConstant)
	// CommandDockerCompose invokes the legacy standalone docker-compose binary.
	CommandDockerCompose CommandName = CommandName(dockerComposeLegacyToolNameConstant)
)

// CommandDetails captures the inputs required to run an external command.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
	Timeout              time.Duration
	ForwardOutput        bool
}

// ShellCommand couples an executable name with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner abstracts process execution so tests can substitute recordings.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Sentinel errors reported during executor construction.
var (
	// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the non-zero exit.
func (failedError CommandFailedError) Error() string {
	return fmt.Sprintf(commandFailedErrorTemplateConstant, describeCommand(failedError.Command), failedError.Result.ExitCode)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, describeCommand(executionError.Command), executionError.Cause)
}

// Unwrap exposes the underlying cause.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// CommandTimedOutError reports a command terminated at its wall-clock deadline.
type CommandTimedOutError struct {
	Command ShellCommand
	Timeout time.Duration
}

// Error describes the timeout.
func (timedOutError CommandTimedOutError) Error() string {
	return fmt.Sprintf(commandTimedOutErrorTemplateConstant, describeCommand(timedOutError.Command), timedOutError.Timeout)
}

// ShellExecutor coordinates structured execution of external commands.
type ShellExecutor struct {
	logger           *zap.Logger
	commandRunner    CommandRunner
	eventObserver    CommandEventObserver
	messageFormatter CommandMessageFormatter
}

// NewShellExecutor validates dependencies and constructs a ShellExecutor. A nil
// observer silently discards command lifecycle events.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, eventObserver CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if eventObserver == nil {
		eventObserver = noopCommandEventObserver{}
	}

	return &ShellExecutor{
		logger:           logger,
		commandRunner:    commandRunner,
		eventObserver:    eventObserver,
		messageFormatter: CommandMessageFormatter{},
	}, nil
}

// ExecuteDocker runs the docker binary with the provided details.
func (executor *ShellExecutor) ExecuteDocker(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandDocker, Details: details})
}

// ExecuteDockerCompose runs the legacy standalone docker-compose binary with the provided details.
func (executor *ShellExecutor) ExecuteDockerCompose(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandDockerCompose, Details: details})
}

// Execute runs the supplied command, logging lifecycle events and classifying the
// outcome. Non-zero exits return the result together with a CommandFailedError so
// callers decide whether to propagate.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.eventObserver.CommandStarted(command)
	executor.logger.Debug(
		executor.messageFormatter.BuildStartedMessage(command),
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)

	commandContext := executionContext
	if command.Details.Timeout > commandTimeoutDisabledDurationZeroConstant {
		timeoutContext, cancelTimeout := context.WithTimeout(executionContext, command.Details.Timeout)
		defer cancelTimeout()
		commandContext = timeoutContext
	}

	executionResult, runnerError := executor.commandRunner.Run(commandContext, command)

	if errors.Is(commandContext.Err(), context.DeadlineExceeded) {
		timeoutError := CommandTimedOutError{Command: command, Timeout: command.Details.Timeout}
		executor.logger.Error(
			executor.messageFormatter.BuildExecutionFailureMessage(command, timeoutError),
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Duration(logFieldTimeoutConstant, command.Details.Timeout),
		)
		executor.eventObserver.CommandExecutionFailed(command, timeoutError)
		return ExecutionResult{}, timeoutError
	}

	if runnerError != nil {
		executionError := CommandExecutionError{Command: command, Cause: runnerError}
		executor.logger.Error(
			executor.messageFormatter.BuildExecutionFailureMessage(command, runnerError),
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		)
		executor.eventObserver.CommandExecutionFailed(command, executionError)
		return ExecutionResult{}, executionError
	}

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(
			executor.messageFormatter.BuildFailureMessage(command, executionResult),
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
		)
		executor.eventObserver.CommandCompleted(command, executionResult)
		return executionResult, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(
		executor.messageFormatter.BuildSuccessMessage(command),
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)
	executor.eventObserver.CommandCompleted(command, executionResult)

	return executionResult, nil
}
