package stack

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/weagle/weagle/internal/dockercli"
	"github.com/weagle/weagle/internal/execshell"
	"github.com/weagle/weagle/internal/scenarios"
)

const (
	composeRunnerNotConfiguredMessageConstant = "compose runner not configured"
	projectLogFieldNameConstant               = "project"
	servicesLogFieldNameConstant              = "services"
	composeFileLogFieldNameConstant           = "compose_file"
	legacyBinaryLogFieldNameConstant          = "legacy_binary"
)

// ErrComposeRunnerNotConfigured indicates the service was constructed without a compose runner.
var ErrComposeRunnerNotConfigured = errors.New(composeRunnerNotConfiguredMessageConstant)

// ComposeRunner abstracts the docker CLI client used for compose invocations.
type ComposeRunner interface {
	RunCompose(executionContext context.Context, invocation dockercli.ComposeInvocation, settings dockercli.ExecutionSettings) (execshell.ExecutionResult, error)
}

// Dependencies holds collaborators required by the stack service.
type Dependencies struct {
	Logger        *zap.Logger
	ComposeRunner ComposeRunner
	Locator       *scenarios.ComposeFileLocator
	Environment   *EnvironmentLoader
}

// StackTask describes one lifecycle operation resolved from CLI input.
type StackTask struct {
	Action        StackAction
	Project       scenarios.ProjectFolder
	Services      []string
	Command       []string
	Verbose       bool
	DryRun        bool
	Detached      bool
	FollowLogs    bool
	TailLines     int
	RemoveVolumes bool
	ForceRemoval  bool
}

// Service orchestrates docker compose lifecycle operations for predefined projects.
type Service struct {
	logger        *zap.Logger
	composeRunner ComposeRunner
	locator       *scenarios.ComposeFileLocator
	environment   *EnvironmentLoader
	configuration Configuration
}

// NewService validates dependencies and constructs a stack Service.
func NewService(dependencies Dependencies, configuration Configuration) (*Service, error) {
	if dependencies.ComposeRunner == nil {
		return nil, ErrComposeRunnerNotConfigured
	}

	sanitizedConfiguration := configuration.Sanitize()

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	locator := dependencies.Locator
	if locator == nil {
		locator = scenarios.NewComposeFileLocator(sanitizedConfiguration.ProjectsRoot)
	}

	environment := dependencies.Environment
	if environment == nil {
		environment = NewEnvironmentLoader(sanitizedConfiguration.EnvironmentFiles)
	}

	return &Service{
		logger:        logger,
		composeRunner: dependencies.ComposeRunner,
		locator:       locator,
		environment:   environment,
		configuration: sanitizedConfiguration,
	}, nil
}

// Run resolves the compose file and environment for the task, then executes the
// rendered compose invocation. Configuration problems abort before any process
// is spawned; non-zero exits come back as the result paired with the execution
// error so callers can mirror the child's exit code.
func (service *Service) Run(executionContext context.Context, task StackTask) (execshell.ExecutionResult, error) {
	definition, definitionFound := FindActionDefinition(task.Action)
	if !definitionFound {
		return execshell.ExecutionResult{}, UnsupportedActionError{Action: task.Action}
	}

	composeFilePath, composeFileError := service.locator.Require(task.Project)
	if composeFileError != nil {
		return execshell.ExecutionResult{}, composeFileError
	}

	loadedEnvironment, environmentError := service.environment.Load()
	if environmentError != nil {
		return execshell.ExecutionResult{}, environmentError
	}

	legacyBinary := service.configuration.LegacyCompose || loadedEnvironment.LegacyCompose

	trailingCommand := task.Command
	if definition.AcceptsCommand && len(trailingCommand) == 0 {
		trailingCommand = []string{DefaultExecCommand}
	}
	if !definition.AcceptsCommand {
		trailingCommand = nil
	}

	invocation := dockercli.ComposeInvocation{
		Action:          definition.ComposeAction,
		ComposeFilePath: composeFilePath,
		ProjectName:     service.configuration.ProjectName,
		Services:        task.Services,
		SubCommand:      trailingCommand,
		ExtraOptions:    composeExtraOptions(definition, task),
		Verbose:         task.Verbose,
		LegacyBinary:    legacyBinary,
	}

	settings := dockercli.ExecutionSettings{
		EnvironmentVariables: loadedEnvironment.Variables,
		Timeout:              time.Duration(service.configuration.TimeoutSeconds) * time.Second,
		ForwardOutput:        true,
		DryRun:               task.DryRun,
	}

	service.logger.Info(definition.StatusMessage,
		zap.String(projectLogFieldNameConstant, task.Project.String()),
		zap.Strings(servicesLogFieldNameConstant, task.Services),
		zap.String(composeFileLogFieldNameConstant, composeFilePath),
		zap.Bool(legacyBinaryLogFieldNameConstant, legacyBinary),
	)

	return service.composeRunner.RunCompose(executionContext, invocation, settings)
}
