package scenarios_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weagle/weagle/internal/scenarios"
)

func TestProjectsCommandListsFoldersAndServices(testInstance *testing.T) {
	projectsRoot := testInstance.TempDir()

	firstProjectDirectory := filepath.Join(projectsRoot, "project_01")
	require.NoError(testInstance, os.MkdirAll(firstProjectDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(
		filepath.Join(firstProjectDirectory, "docker-compose.yml"),
		[]byte("services:\n  web:\n    image: nginx\n  grafana:\n    image: grafana/grafana\n"),
		0o600,
	))

	thirdProjectDirectory := filepath.Join(projectsRoot, "project_03")
	require.NoError(testInstance, os.MkdirAll(thirdProjectDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(
		filepath.Join(thirdProjectDirectory, "docker-compose.yml"),
		[]byte("services: {}\n"),
		0o600,
	))

	builder := scenarios.ProjectsCommandBuilder{
		LoggerProvider:       func() *zap.Logger { return zap.NewNop() },
		ProjectsRootProvider: func() string { return projectsRoot },
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetArgs([]string{})

	require.NoError(testInstance, command.Execute())

	commandOutput := outputBuffer.String()
	require.Contains(testInstance, commandOutput, "project_01")
	require.Contains(testInstance, commandOutput, "grafana, web")
	require.Contains(testInstance, commandOutput, "project_02")
	require.Contains(testInstance, commandOutput, "(no compose file at "+projectsRoot+"/project_02/docker-compose.yml)")
	require.Contains(testInstance, commandOutput, "(no services declared)")
	require.Contains(testInstance, commandOutput, "project_05")
}

func TestProjectsCommandRejectsPositionalArguments(testInstance *testing.T) {
	builder := scenarios.ProjectsCommandBuilder{}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{"project_01"})

	require.Error(testInstance, command.Execute())
}
