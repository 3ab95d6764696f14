package stack_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/weagle/weagle/internal/dockercli"
	"github.com/weagle/weagle/internal/execshell"
	"github.com/weagle/weagle/internal/scenarios"
	"github.com/weagle/weagle/internal/stack"
)

const (
	testProjectFlagTokenConstant   = "--project"
	testProjectSelectorEnvConstant = "WEAGLE_PROJECT"
)

func testStackConfiguration(projectsRoot string) stack.Configuration {
	return stack.Configuration{
		ProjectsRoot:     projectsRoot,
		EnvironmentFiles: []string{" "},
	}
}

func buildStackCommand(testInstance *testing.T, action stack.StackAction, stubRunner *composeRunnerStub, configuration stack.Configuration) *cobra.Command {
	testInstance.Helper()

	definition, definitionFound := stack.FindActionDefinition(action)
	require.True(testInstance, definitionFound)

	builder := &stack.CommandBuilder{
		Definition:            definition,
		ConfigurationProvider: func() stack.Configuration { return configuration },
		ComposeRunner:         stubRunner,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	return command
}

func TestStackCommandBuildRegistersFlagsPerDefinition(testInstance *testing.T) {
	for _, definition := range stack.ActionDefinitions() {
		definition := definition
		testInstance.Run(string(definition.Action), func(testInstance *testing.T) {
			builder := &stack.CommandBuilder{Definition: definition}
			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			require.Equal(testInstance, definition.Use, command.Use)
			require.Equal(testInstance, definition.ShortDescription, command.Short)
			require.NotNil(testInstance, command.Flags().Lookup("project"))
			require.NotNil(testInstance, command.Flags().Lookup("verbose"))
			require.NotNil(testInstance, command.Flags().Lookup("dry-run"))
			require.Equal(testInstance, definition.SupportsDetached, command.Flags().Lookup("detach") != nil)
			require.Equal(testInstance, definition.SupportsFollow, command.Flags().Lookup("follow") != nil)
			require.Equal(testInstance, definition.SupportsTail, command.Flags().Lookup("tail") != nil)
			require.Equal(testInstance, definition.SupportsVolumes, command.Flags().Lookup("volumes") != nil)
			require.Equal(testInstance, definition.SupportsForce, command.Flags().Lookup("force") != nil)
		})
	}
}

func TestStackCommandRendersCanonicalStartArguments(testInstance *testing.T) {
	projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01)
	stubRunner := &composeRunnerStub{}
	command := buildStackCommand(testInstance, stack.StackActionStart, stubRunner, testStackConfiguration(projectsRoot))

	command.SetArgs([]string{testProjectFlagTokenConstant, "project_01", "--verbose", "web"})
	require.NoError(testInstance, command.Execute())
	require.Len(testInstance, stubRunner.recordedInvocations, 1)

	expectedArguments := []string{
		"compose",
		"--project-name", "weagle",
		"-f", expectedComposeFilePath(projectsRoot, scenarios.ProjectFolder01),
		"--verbose",
		"up", "-d", "--remove-orphans",
		"web",
	}
	require.Equal(testInstance, expectedArguments, stubRunner.recordedInvocations[0].Arguments())
}

func TestStackCommandProjectSelectorPrecedence(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		arguments            []string
		environmentSelector  string
		configurationProject string
		expectedProject      scenarios.ProjectFolder
	}{
		{
			name:                 "flag_wins_over_environment_and_configuration",
			arguments:            []string{testProjectFlagTokenConstant, "project_01"},
			environmentSelector:  "project_02",
			configurationProject: "project_03",
			expectedProject:      scenarios.ProjectFolder01,
		},
		{
			name:                 "environment_wins_over_configuration",
			environmentSelector:  "project_02",
			configurationProject: "project_03",
			expectedProject:      scenarios.ProjectFolder02,
		},
		{
			name:                 "configuration_is_final_fallback",
			configurationProject: "project_03",
			expectedProject:      scenarios.ProjectFolder03,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01, scenarios.ProjectFolder02, scenarios.ProjectFolder03)
			testInstance.Setenv(testProjectSelectorEnvConstant, testCase.environmentSelector)

			configuration := testStackConfiguration(projectsRoot)
			configuration.Project = testCase.configurationProject

			commandArguments := testCase.arguments
			if commandArguments == nil {
				commandArguments = []string{}
			}

			stubRunner := &composeRunnerStub{}
			command := buildStackCommand(testInstance, stack.StackActionPs, stubRunner, configuration)
			command.SetArgs(commandArguments)

			require.NoError(testInstance, command.Execute())
			require.Len(testInstance, stubRunner.recordedInvocations, 1)
			require.Equal(testInstance,
				expectedComposeFilePath(projectsRoot, testCase.expectedProject),
				stubRunner.recordedInvocations[0].ComposeFilePath)
		})
	}
}

func TestStackCommandRejectsMissingProjectSelector(testInstance *testing.T) {
	projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01)
	testInstance.Setenv(testProjectSelectorEnvConstant, "")

	stubRunner := &composeRunnerStub{}
	command := buildStackCommand(testInstance, stack.StackActionPs, stubRunner, testStackConfiguration(projectsRoot))
	command.SetArgs([]string{})

	executeError := command.Execute()
	require.ErrorIs(testInstance, executeError, scenarios.ErrProjectNotSelected)
	require.Empty(testInstance, stubRunner.recordedInvocations)
}

func TestStackCommandRejectsUnknownProjectSelector(testInstance *testing.T) {
	projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01)
	stubRunner := &composeRunnerStub{}
	command := buildStackCommand(testInstance, stack.StackActionPs, stubRunner, testStackConfiguration(projectsRoot))
	command.SetArgs([]string{testProjectFlagTokenConstant, "project_09"})

	executeError := command.Execute()

	var unknownError scenarios.UnknownProjectError
	require.ErrorAs(testInstance, executeError, &unknownError)
	require.Equal(testInstance, "project_09", unknownError.Value)
	require.Empty(testInstance, stubRunner.recordedInvocations)
}

func TestStackCommandExecRequiresServiceArgument(testInstance *testing.T) {
	projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01)
	stubRunner := &composeRunnerStub{}
	command := buildStackCommand(testInstance, stack.StackActionExec, stubRunner, testStackConfiguration(projectsRoot))
	command.SetArgs([]string{testProjectFlagTokenConstant, "project_01"})

	executeError := command.Execute()
	require.EqualError(testInstance, executeError, "exec requires a service name as its first argument")
	require.Empty(testInstance, stubRunner.recordedInvocations)
}

func TestStackCommandExecForwardsTrailingCommand(testInstance *testing.T) {
	projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01)
	stubRunner := &composeRunnerStub{}
	command := buildStackCommand(testInstance, stack.StackActionExec, stubRunner, testStackConfiguration(projectsRoot))
	command.SetArgs([]string{testProjectFlagTokenConstant, "project_01", "web", "sh", "-c", "env"})

	require.NoError(testInstance, command.Execute())
	require.Len(testInstance, stubRunner.recordedInvocations, 1)
	require.Equal(testInstance, []string{"web"}, stubRunner.recordedInvocations[0].Services)
	require.Equal(testInstance, []string{"sh", "-c", "env"}, stubRunner.recordedInvocations[0].SubCommand)
}

func TestStackCommandExecDefaultsToBash(testInstance *testing.T) {
	projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01)
	stubRunner := &composeRunnerStub{}
	command := buildStackCommand(testInstance, stack.StackActionExec, stubRunner, testStackConfiguration(projectsRoot))
	command.SetArgs([]string{testProjectFlagTokenConstant, "project_01", "web"})

	require.NoError(testInstance, command.Execute())
	require.Len(testInstance, stubRunner.recordedInvocations, 1)
	require.Equal(testInstance, []string{stack.DefaultExecCommand}, stubRunner.recordedInvocations[0].SubCommand)
}

func TestStackCommandVolumesFlagFallsBackToConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		arguments            []string
		configurationVolumes bool
		expectedExtraOptions []string
	}{
		{
			name:                 "configuration_enables_volume_removal",
			arguments:            []string{testProjectFlagTokenConstant, "project_01"},
			configurationVolumes: true,
			expectedExtraOptions: []string{"--volumes", "--remove-orphans"},
		},
		{
			name:                 "explicit_flag_overrides_configuration",
			arguments:            []string{testProjectFlagTokenConstant, "project_01", "--volumes=false"},
			configurationVolumes: true,
			expectedExtraOptions: []string{"--remove-orphans"},
		},
		{
			name:                 "flag_enables_volume_removal",
			arguments:            []string{testProjectFlagTokenConstant, "project_01", "--volumes"},
			expectedExtraOptions: []string{"--volumes", "--remove-orphans"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01)
			configuration := testStackConfiguration(projectsRoot)
			configuration.RemoveVolumes = testCase.configurationVolumes

			stubRunner := &composeRunnerStub{}
			command := buildStackCommand(testInstance, stack.StackActionDestroy, stubRunner, configuration)
			command.SetArgs(testCase.arguments)

			require.NoError(testInstance, command.Execute())
			require.Len(testInstance, stubRunner.recordedInvocations, 1)
			require.Equal(testInstance, testCase.expectedExtraOptions, stubRunner.recordedInvocations[0].ExtraOptions)
		})
	}
}

func TestStackCommandLogsFlagsRenderOptions(testInstance *testing.T) {
	projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01)
	stubRunner := &composeRunnerStub{}
	command := buildStackCommand(testInstance, stack.StackActionLogs, stubRunner, testStackConfiguration(projectsRoot))
	command.SetArgs([]string{testProjectFlagTokenConstant, "project_01", "--follow", "--tail", "12", "web"})

	require.NoError(testInstance, command.Execute())
	require.Len(testInstance, stubRunner.recordedInvocations, 1)
	require.Equal(testInstance, []string{"--follow", "--tail=12"}, stubRunner.recordedInvocations[0].ExtraOptions)
	require.Equal(testInstance, []string{"web"}, stubRunner.recordedInvocations[0].Services)
}

func TestStackCommandDryRunForwardedToSettings(testInstance *testing.T) {
	projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01)
	stubRunner := &composeRunnerStub{}
	command := buildStackCommand(testInstance, stack.StackActionStop, stubRunner, testStackConfiguration(projectsRoot))
	command.SetArgs([]string{testProjectFlagTokenConstant, "project_01", "--dry-run"})

	require.NoError(testInstance, command.Execute())
	require.Len(testInstance, stubRunner.recordedSettings, 1)
	require.True(testInstance, stubRunner.recordedSettings[0].DryRun)
}

func TestStackCommandReturnsCommandFailureUnwrapped(testInstance *testing.T) {
	projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01)
	failure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandDocker},
		Result:  execshell.ExecutionResult{ExitCode: 3},
	}
	stubRunner := &composeRunnerStub{
		runComposeFunc: func(context.Context, dockercli.ComposeInvocation, dockercli.ExecutionSettings) (execshell.ExecutionResult, error) {
			return execshell.ExecutionResult{ExitCode: 3}, failure
		},
	}
	command := buildStackCommand(testInstance, stack.StackActionStart, stubRunner, testStackConfiguration(projectsRoot))
	command.SetArgs([]string{testProjectFlagTokenConstant, "project_01"})

	executeError := command.Execute()

	var failedError execshell.CommandFailedError
	require.ErrorAs(testInstance, executeError, &failedError)
	require.Equal(testInstance, 3, failedError.Result.ExitCode)
}

func TestStackCommandWrapsOtherRunnerErrors(testInstance *testing.T) {
	projectsRoot := createProjectsRoot(testInstance, scenarios.ProjectFolder01)
	rootCause := errors.New("socket unavailable")
	stubRunner := &composeRunnerStub{
		runComposeFunc: func(context.Context, dockercli.ComposeInvocation, dockercli.ExecutionSettings) (execshell.ExecutionResult, error) {
			return execshell.ExecutionResult{}, rootCause
		},
	}
	command := buildStackCommand(testInstance, stack.StackActionStart, stubRunner, testStackConfiguration(projectsRoot))
	command.SetArgs([]string{testProjectFlagTokenConstant, "project_01"})

	executeError := command.Execute()
	require.Error(testInstance, executeError)
	require.Equal(testInstance, fmt.Sprintf("docker %s failed: %s", stack.StackActionStart, rootCause), executeError.Error())
	require.ErrorIs(testInstance, executeError, rootCause)
}
