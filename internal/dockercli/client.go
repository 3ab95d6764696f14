package dockercli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/weagle/weagle/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant    = "docker executor not configured"
	requiredValueMessageConstant            = "value required"
	actionFieldNameConstant                 = "action"
	composeFileFieldNameConstant            = "compose_file"
	projectNameFieldNameConstant            = "project_name"
	serviceFieldNameConstant                = "service"
	networkNameFieldNameConstant            = "network_name"
	invalidInputErrorTemplateConstant       = "%s: %s"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	dryRunLineTemplateConstant              = "+ %s\n"
	composeOperationNameConstant            = OperationName("RunCompose")
	networkOperationNameConstant            = OperationName("RunNetwork")
)

// OperationName describes a named docker workflow supported by the client.
type OperationName string

// DockerCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type DockerCommandExecutor interface {
	ExecuteDocker(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteDockerCompose(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ExecutionSettings carries per-invocation process controls resolved by callers.
type ExecutionSettings struct {
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	Timeout              time.Duration
	ForwardOutput        bool
	DryRun               bool
}

// Client coordinates docker and docker compose invocations through execshell.
type Client struct {
	executor     DockerCommandExecutor
	dryRunWriter io.Writer
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for docker operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// NewClient constructs a docker CLI client. A nil dryRunWriter falls back to
// standard error, matching where docker itself reports diagnostics.
func NewClient(executor DockerCommandExecutor, dryRunWriter io.Writer) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if dryRunWriter == nil {
		dryRunWriter = os.Stderr
	}
	return &Client{executor: executor, dryRunWriter: dryRunWriter}, nil
}

// RunCompose validates and executes a docker compose invocation. Non-zero exits
// surface as an OperationError wrapping execshell.CommandFailedError together
// with the captured execution result so callers can mirror the exit code.
func (client *Client) RunCompose(executionContext context.Context, invocation ComposeInvocation, settings ExecutionSettings) (execshell.ExecutionResult, error) {
	if len(strings.TrimSpace(string(invocation.Action))) == 0 {
		return execshell.ExecutionResult{}, InvalidInputError{FieldName: actionFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(invocation.ComposeFilePath)) == 0 {
		return execshell.ExecutionResult{}, InvalidInputError{FieldName: composeFileFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(invocation.ProjectName)) == 0 {
		return execshell.ExecutionResult{}, InvalidInputError{FieldName: projectNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if invocation.Action == ComposeActionExec && len(invocation.Services) == 0 {
		return execshell.ExecutionResult{}, InvalidInputError{FieldName: serviceFieldNameConstant, Message: requiredValueMessageConstant}
	}

	if settings.DryRun {
		fmt.Fprintf(client.dryRunWriter, dryRunLineTemplateConstant, invocation.CommandLine())
		return execshell.ExecutionResult{}, nil
	}

	commandDetails := execshell.CommandDetails{
		Arguments:            invocation.Arguments(),
		WorkingDirectory:     settings.WorkingDirectory,
		EnvironmentVariables: settings.EnvironmentVariables,
		Timeout:              settings.Timeout,
		ForwardOutput:        settings.ForwardOutput,
	}

	executionResult, executionError := client.executeComposeBinary(executionContext, invocation.LegacyBinary, commandDetails)
	if executionError != nil {
		return executionResult, OperationError{Operation: composeOperationNameConstant, Cause: executionError}
	}
	return executionResult, nil
}

// RunNetwork validates and executes a docker network invocation.
func (client *Client) RunNetwork(executionContext context.Context, invocation NetworkInvocation, settings ExecutionSettings) (execshell.ExecutionResult, error) {
	parsedAction, parseError := ParseNetworkAction(string(invocation.Action))
	if parseError != nil {
		return execshell.ExecutionResult{}, InvalidInputError{FieldName: actionFieldNameConstant, Message: parseError.Error()}
	}
	invocation.Action = parsedAction

	if parsedAction.RequiresName() && len(strings.TrimSpace(invocation.Name)) == 0 {
		return execshell.ExecutionResult{}, InvalidInputError{FieldName: networkNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	if settings.DryRun {
		fmt.Fprintf(client.dryRunWriter, dryRunLineTemplateConstant, invocation.CommandLine())
		return execshell.ExecutionResult{}, nil
	}

	commandDetails := execshell.CommandDetails{
		Arguments:            invocation.Arguments(),
		WorkingDirectory:     settings.WorkingDirectory,
		EnvironmentVariables: settings.EnvironmentVariables,
		Timeout:              settings.Timeout,
		ForwardOutput:        settings.ForwardOutput,
	}

	executionResult, executionError := client.executor.ExecuteDocker(executionContext, commandDetails)
	if executionError != nil {
		return executionResult, OperationError{Operation: networkOperationNameConstant, Cause: executionError}
	}
	return executionResult, nil
}

func (client *Client) executeComposeBinary(executionContext context.Context, legacyBinary bool, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	if legacyBinary {
		return client.executor.ExecuteDockerCompose(executionContext, details)
	}
	return client.executor.ExecuteDocker(executionContext, details)
}
