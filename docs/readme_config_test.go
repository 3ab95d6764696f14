package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/weagle/weagle/cmd/cli"
	"github.com/weagle/weagle/internal/dockercli"
	"github.com/weagle/weagle/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	spawnLinePrefixConstant          = "# spawns: "
	readmeSnippetTemporaryPattern    = "readme-config-*.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	defaultTempDirectoryRootConstant = ""
	readmeConfigurationNameConstant  = "config"
	readmeConfigurationTypeConstant  = "yaml"
	readmeEnvironmentPrefixConstant  = "WEAGLE"
	expectedSpawnLineCountConstant   = 2
)

type readmeStackConfiguration struct {
	Project          string   `yaml:"project"`
	ProjectsRoot     string   `yaml:"projects_root"`
	ProjectName      string   `yaml:"project_name"`
	EnvironmentFiles []string `yaml:"environment_files"`
	LegacyCompose    bool     `yaml:"legacy_compose"`
	TimeoutSeconds   int      `yaml:"timeout_seconds"`
	RemoveVolumes    bool     `yaml:"remove_volumes"`
}

type readmeNetworkConfiguration struct {
	Name   string `yaml:"name"`
	Driver string `yaml:"driver"`
	Subnet string `yaml:"subnet"`
}

type readmeDockerConfiguration struct {
	Stack   readmeStackConfiguration   `yaml:"stack"`
	Network readmeNetworkConfiguration `yaml:"network"`
}

type readmeApplicationConfiguration struct {
	Common struct {
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"common"`
	Tools struct {
		Docker readmeDockerConfiguration `yaml:"docker"`
	} `yaml:"tools"`
}

func TestReadmeConfigurationExampleLoads(testInstance *testing.T) {
	snippetContent := extractConfigurationSnippet(testInstance)

	var readmeConfiguration readmeApplicationConfiguration
	unmarshalError := yaml.Unmarshal([]byte(snippetContent), &readmeConfiguration)
	require.NoError(testInstance, unmarshalError)

	assertions := require.New(testInstance)
	assertions.Equal("info", readmeConfiguration.Common.LogLevel)
	assertions.Equal("structured", readmeConfiguration.Common.LogFormat)
	assertions.Equal("project_01", readmeConfiguration.Tools.Docker.Stack.Project)
	assertions.Equal("./projects", readmeConfiguration.Tools.Docker.Stack.ProjectsRoot)
	assertions.Equal("weagle", readmeConfiguration.Tools.Docker.Stack.ProjectName)
	assertions.Equal([]string{".env", ".setup.env"}, readmeConfiguration.Tools.Docker.Stack.EnvironmentFiles)
	assertions.Equal("weagle-network", readmeConfiguration.Tools.Docker.Network.Name)
	assertions.Equal("bridge", readmeConfiguration.Tools.Docker.Network.Driver)
	assertions.Equal("192.168.1.0/24", readmeConfiguration.Tools.Docker.Network.Subnet)

	tempFile, tempFileError := os.CreateTemp(defaultTempDirectoryRootConstant, readmeSnippetTemporaryPattern)
	require.NoError(testInstance, tempFileError)
	testInstance.Cleanup(func() {
		require.NoError(testInstance, os.Remove(tempFile.Name()))
	})

	_, writeError := tempFile.WriteString(snippetContent)
	require.NoError(testInstance, writeError)
	require.NoError(testInstance, tempFile.Close())

	configurationLoader := utils.NewConfigurationLoader(
		readmeConfigurationNameConstant,
		readmeConfigurationTypeConstant,
		readmeEnvironmentPrefixConstant,
		nil,
	)

	var applicationConfiguration cli.ApplicationConfiguration
	loadedConfiguration, loadError := configurationLoader.LoadConfiguration(tempFile.Name(), map[string]any{}, &applicationConfiguration)
	require.NoError(testInstance, loadError)

	assertions.Equal(tempFile.Name(), loadedConfiguration.ConfigFileUsed)
	assertions.Equal("project_01", applicationConfiguration.Tools.Docker.Stack.Project)
	assertions.Equal("weagle", applicationConfiguration.Tools.Docker.Stack.ProjectName)
	assertions.Equal("weagle-network", applicationConfiguration.Tools.Docker.Network.Name)
}

func TestReadmeSpawnLinesMatchCommandRenderers(testInstance *testing.T) {
	readmeContent := readReadmeContent(testInstance)

	var spawnLines []string
	for _, readmeLine := range strings.Split(readmeContent, "\n") {
		if strings.HasPrefix(readmeLine, spawnLinePrefixConstant) {
			spawnLines = append(spawnLines, strings.TrimPrefix(readmeLine, spawnLinePrefixConstant))
		}
	}
	require.Len(testInstance, spawnLines, expectedSpawnLineCountConstant)

	composeInvocation := dockercli.ComposeInvocation{
		Action:          dockercli.ComposeActionUp,
		ComposeFilePath: "./projects/project_01/docker-compose.yml",
		ProjectName:     "weagle",
		Services:        []string{"web"},
		ExtraOptions:    []string{"-d", "--remove-orphans"},
	}
	require.Equal(testInstance, composeInvocation.CommandLine(), spawnLines[0])

	networkInvocation := dockercli.NetworkInvocation{
		Action: dockercli.NetworkActionCreate,
		Name:   "weagle-network",
		Driver: "bridge",
		Subnet: "192.168.1.0/24",
	}
	require.Equal(testInstance, networkInvocation.CommandLine(), spawnLines[1])
}

func readReadmeContent(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	return string(contentBytes)
}

func extractConfigurationSnippet(testInstance *testing.T) string {
	testInstance.Helper()

	contentText := readReadmeContent(testInstance)

	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])
}
