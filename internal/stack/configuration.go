package stack

import (
	"fmt"
	"strings"

	"github.com/weagle/weagle/internal/scenarios"
	pathutils "github.com/weagle/weagle/internal/utils/path"
)

const (
	defaultComposeProjectNameConstant = "weagle"

	projectConfigurationKeyConstant          = "project"
	projectsRootConfigurationKeyConstant     = "projects_root"
	projectNameConfigurationKeyConstant      = "project_name"
	environmentFilesConfigurationKeyConstant = "environment_files"
	legacyComposeConfigurationKeyConstant    = "legacy_compose"
	timeoutSecondsConfigurationKeyConstant   = "timeout_seconds"
	removeVolumesConfigurationKeyConstant    = "remove_volumes"
	configurationKeyTemplateConstant         = "%s.%s"
)

var stackConfigurationProjectsRootSanitizer = pathutils.NewProjectsRootSanitizer(scenarios.DefaultProjectsRoot)

// Configuration aggregates settings for docker stack commands.
type Configuration struct {
	Project          string   `mapstructure:"project"`
	ProjectsRoot     string   `mapstructure:"projects_root"`
	ProjectName      string   `mapstructure:"project_name"`
	EnvironmentFiles []string `mapstructure:"environment_files"`
	LegacyCompose    bool     `mapstructure:"legacy_compose"`
	TimeoutSeconds   int      `mapstructure:"timeout_seconds"`
	RemoveVolumes    bool     `mapstructure:"remove_volumes"`
}

// DefaultConfiguration supplies baseline values for stack commands.
func DefaultConfiguration() Configuration {
	return Configuration{
		ProjectsRoot:     scenarios.DefaultProjectsRoot,
		ProjectName:      defaultComposeProjectNameConstant,
		EnvironmentFiles: DefaultEnvironmentFiles(),
	}
}

// DefaultConfigurationValues exposes stack defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		prefixedConfigurationKey(configurationKeyPrefix, projectConfigurationKeyConstant):          defaults.Project,
		prefixedConfigurationKey(configurationKeyPrefix, projectsRootConfigurationKeyConstant):     defaults.ProjectsRoot,
		prefixedConfigurationKey(configurationKeyPrefix, projectNameConfigurationKeyConstant):      defaults.ProjectName,
		prefixedConfigurationKey(configurationKeyPrefix, environmentFilesConfigurationKeyConstant): defaults.EnvironmentFiles,
		prefixedConfigurationKey(configurationKeyPrefix, legacyComposeConfigurationKeyConstant):    defaults.LegacyCompose,
		prefixedConfigurationKey(configurationKeyPrefix, timeoutSecondsConfigurationKeyConstant):   defaults.TimeoutSeconds,
		prefixedConfigurationKey(configurationKeyPrefix, removeVolumesConfigurationKeyConstant):    defaults.RemoveVolumes,
	}
}

// Sanitize trims configured values and falls back to defaults for empty entries.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.Project = strings.TrimSpace(configuration.Project)
	sanitized.ProjectsRoot = stackConfigurationProjectsRootSanitizer.Sanitize(configuration.ProjectsRoot)

	sanitized.ProjectName = strings.TrimSpace(configuration.ProjectName)
	if len(sanitized.ProjectName) == 0 {
		sanitized.ProjectName = defaultComposeProjectNameConstant
	}

	sanitized.EnvironmentFiles = sanitizeEnvironmentFiles(configuration.EnvironmentFiles)
	if sanitized.TimeoutSeconds < 0 {
		sanitized.TimeoutSeconds = 0
	}

	return sanitized
}

func sanitizeEnvironmentFiles(candidateFiles []string) []string {
	if candidateFiles == nil {
		return DefaultEnvironmentFiles()
	}

	sanitizedFiles := make([]string, 0, len(candidateFiles))
	for _, candidateFile := range candidateFiles {
		trimmedFile := strings.TrimSpace(candidateFile)
		if len(trimmedFile) == 0 {
			continue
		}
		sanitizedFiles = append(sanitizedFiles, trimmedFile)
	}
	if len(sanitizedFiles) == 0 {
		return nil
	}
	return sanitizedFiles
}

func prefixedConfigurationKey(configurationKeyPrefix string, configurationKey string) string {
	if len(configurationKeyPrefix) == 0 {
		return configurationKey
	}
	return fmt.Sprintf(configurationKeyTemplateConstant, configurationKeyPrefix, configurationKey)
}
