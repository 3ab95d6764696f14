package network

import (
	"fmt"
	"strings"
)

const (
	defaultNetworkNameConstant   = "weagle-network"
	defaultNetworkDriverConstant = "bridge"
	defaultNetworkSubnetConstant = "192.168.1.0/24"

	nameConfigurationKeyConstant     = "name"
	driverConfigurationKeyConstant   = "driver"
	subnetConfigurationKeyConstant   = "subnet"
	configurationKeyTemplateConstant = "%s.%s"
)

// Configuration carries defaults for docker network invocations.
type Configuration struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	Subnet string `mapstructure:"subnet"`
}

// DefaultConfiguration supplies the shared project network defaults.
func DefaultConfiguration() Configuration {
	return Configuration{
		Name:   defaultNetworkNameConstant,
		Driver: defaultNetworkDriverConstant,
		Subnet: defaultNetworkSubnetConstant,
	}
}

// DefaultConfigurationValues exposes network defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		prefixedConfigurationKey(configurationKeyPrefix, nameConfigurationKeyConstant):   defaults.Name,
		prefixedConfigurationKey(configurationKeyPrefix, driverConfigurationKeyConstant): defaults.Driver,
		prefixedConfigurationKey(configurationKeyPrefix, subnetConfigurationKeyConstant): defaults.Subnet,
	}
}

// Sanitize trims configured values and restores defaults for empty entries.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()

	sanitized := configuration
	sanitized.Name = strings.TrimSpace(configuration.Name)
	if len(sanitized.Name) == 0 {
		sanitized.Name = defaults.Name
	}

	sanitized.Driver = strings.TrimSpace(configuration.Driver)
	if len(sanitized.Driver) == 0 {
		sanitized.Driver = defaults.Driver
	}

	sanitized.Subnet = strings.TrimSpace(configuration.Subnet)
	if len(sanitized.Subnet) == 0 {
		sanitized.Subnet = defaults.Subnet
	}

	return sanitized
}

func prefixedConfigurationKey(configurationKeyPrefix string, configurationKey string) string {
	if len(configurationKeyPrefix) == 0 {
		return configurationKey
	}
	return fmt.Sprintf(configurationKeyTemplateConstant, configurationKeyPrefix, configurationKey)
}
