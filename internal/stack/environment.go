package stack

import (
	"fmt"
	"os"

	"github.com/subosito/gotenv"

	flagutils "github.com/weagle/weagle/internal/utils/flags"
)

const (
	// LegacyComposeEnvironmentVariable switches execution to the standalone
	// docker-compose binary when set to a truthy literal.
	LegacyComposeEnvironmentVariable = "DOCKER_COMPOSE_WITH_HASH"

	defaultEnvironmentFileNameConstant    = ".env"
	setupEnvironmentFileNameConstant      = ".setup.env"
	environmentFileReadErrorTemplate      = "unable to read environment file %s: %w"
	environmentToggleParseErrorTemplate   = "environment variable %s has invalid boolean value %q: %w"
	emptyEnvironmentVariableValueConstant = ""
)

// DefaultEnvironmentFiles lists the dotenv files merged before every stack command.
func DefaultEnvironmentFiles() []string {
	return []string{defaultEnvironmentFileNameConstant, setupEnvironmentFileNameConstant}
}

// ProcessEnvironmentLookup resolves a variable from the process environment.
type ProcessEnvironmentLookup func(variableName string) (string, bool)

// LoadedEnvironment carries dotenv variables plus toggles derived from them.
// Variables excludes keys already present in the process environment, so the
// process always wins when both define the same key.
type LoadedEnvironment struct {
	Variables     map[string]string
	LegacyCompose bool
}

// EnvironmentLoader merges dotenv files with the process environment. Later
// files override earlier ones; missing files are skipped silently.
type EnvironmentLoader struct {
	environmentFiles []string
	processLookup    ProcessEnvironmentLookup
}

// NewEnvironmentLoader constructs a loader reading the provided dotenv files in order.
func NewEnvironmentLoader(environmentFiles []string) *EnvironmentLoader {
	return NewEnvironmentLoaderWithLookup(environmentFiles, os.LookupEnv)
}

// NewEnvironmentLoaderWithLookup constructs a loader with a custom process environment lookup.
func NewEnvironmentLoaderWithLookup(environmentFiles []string, processLookup ProcessEnvironmentLookup) *EnvironmentLoader {
	duplicatedFiles := make([]string, len(environmentFiles))
	copy(duplicatedFiles, environmentFiles)

	if processLookup == nil {
		processLookup = os.LookupEnv
	}

	return &EnvironmentLoader{
		environmentFiles: duplicatedFiles,
		processLookup:    processLookup,
	}
}

// Load reads the configured dotenv files and derives the legacy compose toggle.
func (loader *EnvironmentLoader) Load() (LoadedEnvironment, error) {
	mergedVariables := map[string]string{}

	for _, environmentFile := range loader.environmentFiles {
		fileVariables, readError := gotenv.Read(environmentFile)
		if readError != nil {
			if os.IsNotExist(readError) {
				continue
			}
			return LoadedEnvironment{}, fmt.Errorf(environmentFileReadErrorTemplate, environmentFile, readError)
		}

		for variableName, variableValue := range fileVariables {
			mergedVariables[variableName] = variableValue
		}
	}

	legacyCompose, legacyComposeError := loader.resolveLegacyComposeToggle(mergedVariables)
	if legacyComposeError != nil {
		return LoadedEnvironment{}, legacyComposeError
	}

	for variableName := range mergedVariables {
		if _, definedByProcess := loader.processLookup(variableName); definedByProcess {
			delete(mergedVariables, variableName)
		}
	}

	return LoadedEnvironment{Variables: mergedVariables, LegacyCompose: legacyCompose}, nil
}

// resolveLegacyComposeToggle prefers the process environment over dotenv files.
// Unset or empty values resolve to false.
func (loader *EnvironmentLoader) resolveLegacyComposeToggle(fileVariables map[string]string) (bool, error) {
	toggleValue, toggleFound := loader.processLookup(LegacyComposeEnvironmentVariable)
	if !toggleFound {
		toggleValue, toggleFound = fileVariables[LegacyComposeEnvironmentVariable]
	}
	if !toggleFound || toggleValue == emptyEnvironmentVariableValueConstant {
		return false, nil
	}

	parsedToggle, parseError := flagutils.ParseToggleLiteral(toggleValue)
	if parseError != nil {
		return false, fmt.Errorf(environmentToggleParseErrorTemplate, LegacyComposeEnvironmentVariable, toggleValue, parseError)
	}
	return parsedToggle, nil
}
