package docker

import (
	"fmt"

	"github.com/weagle/weagle/internal/network"
	"github.com/weagle/weagle/internal/stack"
)

const (
	stackConfigurationKeyConstant    = "stack"
	networkConfigurationKeyConstant  = "network"
	configurationKeyTemplateConstant = "%s.%s"
)

// ToolsConfiguration aggregates docker command configuration decoded from the
// tools.docker configuration tree.
type ToolsConfiguration struct {
	Stack   stack.Configuration   `mapstructure:"stack"`
	Network network.Configuration `mapstructure:"network"`
}

// DefaultConfigurationValues exposes docker defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := map[string]any{}
	for configurationKey, configurationValue := range stack.DefaultConfigurationValues(prefixedConfigurationKey(configurationKeyPrefix, stackConfigurationKeyConstant)) {
		defaults[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range network.DefaultConfigurationValues(prefixedConfigurationKey(configurationKeyPrefix, networkConfigurationKeyConstant)) {
		defaults[configurationKey] = configurationValue
	}
	return defaults
}

func prefixedConfigurationKey(configurationKeyPrefix string, configurationKey string) string {
	if len(configurationKeyPrefix) == 0 {
		return configurationKey
	}
	return fmt.Sprintf(configurationKeyTemplateConstant, configurationKeyPrefix, configurationKey)
}
