package network

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/weagle/weagle/internal/dockercli"
	"github.com/weagle/weagle/internal/execshell"
)

const (
	networkRunnerNotConfiguredMessageConstant = "network runner not configured"
	networkStatusMessageConstant              = "Managing docker network"
	actionLogFieldNameConstant                = "action"
	networkLogFieldNameConstant               = "network"
)

// ErrNetworkRunnerNotConfigured indicates the service was constructed without a network runner.
var ErrNetworkRunnerNotConfigured = errors.New(networkRunnerNotConfiguredMessageConstant)

// NetworkRunner abstracts the docker CLI client used for network invocations.
type NetworkRunner interface {
	RunNetwork(executionContext context.Context, invocation dockercli.NetworkInvocation, settings dockercli.ExecutionSettings) (execshell.ExecutionResult, error)
}

// Dependencies holds collaborators required by the network service.
type Dependencies struct {
	Logger        *zap.Logger
	NetworkRunner NetworkRunner
}

// NetworkTask describes one network operation resolved from CLI input. Empty
// Name, Driver, and Subnet values fall back to the configured defaults.
type NetworkTask struct {
	Action dockercli.NetworkAction
	Name   string
	Driver string
	Subnet string
	DryRun bool
}

// Service executes docker network operations against configured defaults.
type Service struct {
	logger        *zap.Logger
	networkRunner NetworkRunner
	configuration Configuration
}

// NewService validates dependencies and constructs a network Service.
func NewService(dependencies Dependencies, configuration Configuration) (*Service, error) {
	if dependencies.NetworkRunner == nil {
		return nil, ErrNetworkRunnerNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:        logger,
		networkRunner: dependencies.NetworkRunner,
		configuration: configuration.Sanitize(),
	}, nil
}

// Run renders the network invocation for the task and executes it.
func (service *Service) Run(executionContext context.Context, task NetworkTask) (execshell.ExecutionResult, error) {
	invocation := dockercli.NetworkInvocation{
		Action: task.Action,
		Name:   resolveValue(task.Name, service.configuration.Name),
		Driver: resolveValue(task.Driver, service.configuration.Driver),
		Subnet: resolveValue(task.Subnet, service.configuration.Subnet),
	}

	settings := dockercli.ExecutionSettings{
		ForwardOutput: true,
		DryRun:        task.DryRun,
	}

	service.logger.Info(networkStatusMessageConstant,
		zap.String(actionLogFieldNameConstant, string(task.Action)),
		zap.String(networkLogFieldNameConstant, invocation.Name),
	)

	return service.networkRunner.RunNetwork(executionContext, invocation, settings)
}

func resolveValue(candidateValue string, fallbackValue string) string {
	if len(candidateValue) == 0 {
		return fallbackValue
	}
	return candidateValue
}
