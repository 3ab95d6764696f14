package tests

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationCommandTimeout            = 30 * time.Second
	integrationSubtestNameTemplate       = "%d_%s"
	integrationEnvironmentPairTemplate   = "%s=%s"
	integrationProjectsDirectoryConstant = "projects"
	integrationComposeFileNameConstant   = "docker-compose.yml"
	integrationComposeFileContent        = "services:\n  web:\n    image: nginx:alpine\n  database:\n    image: postgres:16-alpine\n"
	integrationStubLogFileNameConstant   = "docker_invocations.log"
	integrationStubLogEnvironmentName    = "DOCKER_STUB_LOG"
	integrationStubExitCodeEnvironment   = "DOCKER_STUB_EXIT_CODE"
	integrationPathEnvironmentName       = "PATH"
	integrationDockerBinaryName          = "docker"
	integrationLegacyComposeBinaryName   = "docker-compose"
	integrationStubScriptContent         = "#!/bin/sh\nprintf '%s %s\\n' \"$(basename \"$0\")\" \"$*\" >> \"$DOCKER_STUB_LOG\"\nexit \"${DOCKER_STUB_EXIT_CODE:-0}\"\n"
	integrationStubScriptPermissions     = 0o755
	integrationDirectoryPermissions      = 0o755
	integrationFilePermissions           = 0o600
)

// runIntegrationBinary executes the compiled CLI inside workingDirectory and
// returns the combined output together with the process exit code.
func runIntegrationBinary(testInstance *testing.T, workingDirectory string, environmentOverrides map[string]string, arguments []string) (string, int) {
	testInstance.Helper()
	require.NotEmpty(testInstance, integrationBinaryPath)

	executionContext, cancelExecution := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancelExecution()

	command := exec.CommandContext(executionContext, integrationBinaryPath, arguments...)
	command.Dir = workingDirectory

	environment := append([]string{}, os.Environ()...)
	for environmentName, environmentValue := range environmentOverrides {
		environment = append(environment, fmt.Sprintf(integrationEnvironmentPairTemplate, environmentName, environmentValue))
	}
	command.Env = environment

	outputBytes, runError := command.CombinedOutput()
	outputText := string(outputBytes)
	if runError == nil {
		return outputText, 0
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		return outputText, exitError.ExitCode()
	}

	testInstance.Fatalf("command failed without exit code: %v\n%s", runError, outputText)
	return outputText, -1
}

// prepareDockerStubEnvironment installs docker and docker-compose stand-ins on
// PATH that append their invocation to a log file instead of touching docker.
func prepareDockerStubEnvironment(testInstance *testing.T) (string, map[string]string) {
	testInstance.Helper()

	stubDirectory := testInstance.TempDir()
	writeExecutableStub(testInstance, stubDirectory, integrationDockerBinaryName)
	writeExecutableStub(testInstance, stubDirectory, integrationLegacyComposeBinaryName)

	stubLogPath := filepath.Join(stubDirectory, integrationStubLogFileNameConstant)
	environmentOverrides := map[string]string{
		integrationPathEnvironmentName:    stubDirectory + string(os.PathListSeparator) + os.Getenv(integrationPathEnvironmentName),
		integrationStubLogEnvironmentName: stubLogPath,
	}

	return stubLogPath, environmentOverrides
}

func writeExecutableStub(testInstance *testing.T, stubDirectory string, binaryName string) {
	testInstance.Helper()

	stubPath := filepath.Join(stubDirectory, binaryName)
	writeError := os.WriteFile(stubPath, []byte(integrationStubScriptContent), integrationStubScriptPermissions)
	require.NoError(testInstance, writeError)
}

// recordedStubInvocations returns one line per recorded docker invocation, or
// nil when the stub never ran.
func recordedStubInvocations(testInstance *testing.T, stubLogPath string) []string {
	testInstance.Helper()

	logBytes, readError := os.ReadFile(stubLogPath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil
		}
		testInstance.Fatalf("unable to read stub log: %v", readError)
	}

	var invocationLines []string
	for _, logLine := range strings.Split(string(logBytes), "\n") {
		trimmedLine := strings.TrimSpace(logLine)
		if len(trimmedLine) == 0 {
			continue
		}
		invocationLines = append(invocationLines, trimmedLine)
	}

	return invocationLines
}

// createProjectWorkspace lays out a working directory containing compose files
// for the requested project folders beneath the default projects root.
func createProjectWorkspace(testInstance *testing.T, projectNames ...string) string {
	testInstance.Helper()

	workspaceDirectory := testInstance.TempDir()
	for _, projectName := range projectNames {
		writeProjectComposeFile(testInstance, workspaceDirectory, integrationProjectsDirectoryConstant, projectName, integrationComposeFileContent)
	}

	return workspaceDirectory
}

func writeProjectComposeFile(testInstance *testing.T, workspaceDirectory string, projectsRootName string, projectName string, composeContent string) {
	testInstance.Helper()

	projectDirectory := filepath.Join(workspaceDirectory, projectsRootName, projectName)
	require.NoError(testInstance, os.MkdirAll(projectDirectory, integrationDirectoryPermissions))

	composeFilePath := filepath.Join(projectDirectory, integrationComposeFileNameConstant)
	require.NoError(testInstance, os.WriteFile(composeFilePath, []byte(composeContent), integrationFilePermissions))
}

func writeWorkspaceFile(testInstance *testing.T, workspaceDirectory string, fileName string, fileContent string) string {
	testInstance.Helper()

	filePath := filepath.Join(workspaceDirectory, fileName)
	require.NoError(testInstance, os.WriteFile(filePath, []byte(fileContent), integrationFilePermissions))
	return filePath
}
