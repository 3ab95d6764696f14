package flags

import "github.com/spf13/cobra"

const (
	// DefaultProjectFlagName exposes the shared project selector flag name.
	DefaultProjectFlagName = "project"
	// DefaultProjectFlagShorthand provides the shorthand for the project selector flag.
	DefaultProjectFlagShorthand = "p"
	// DefaultProjectFlagUsage describes the shared project selector flag purpose.
	DefaultProjectFlagUsage = "Project folder to operate on"
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Print the docker command line without executing it"
	// VerboseFlagName exposes the shared verbose flag name.
	VerboseFlagName = "verbose"
	// VerboseFlagUsage describes the shared verbose flag purpose.
	VerboseFlagUsage = "Pass --verbose to the underlying docker invocation"
	// NetworkNameFlagName exposes the shared network name flag name.
	NetworkNameFlagName = "name"
	// NetworkNameFlagShorthand provides the shorthand for the network name flag.
	NetworkNameFlagShorthand = "n"
	// NetworkNameFlagUsage describes the shared network name flag purpose.
	NetworkNameFlagUsage = "Network name to target"
)

// ProjectFlagDefinition captures configuration for the project selector flag.
type ProjectFlagDefinition struct {
	Name      string
	Shorthand string
	Usage     string
	Enabled   bool
}

// ProjectFlagValues stores the resolved project selector flag value.
type ProjectFlagValues struct {
	Name string
}

// BindProjectFlag attaches the project selector flag to the provided command.
func BindProjectFlag(command *cobra.Command, defaults ProjectFlagValues, definition ProjectFlagDefinition) *ProjectFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled {
		return &values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = DefaultProjectFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = DefaultProjectFlagUsage
	}

	flagSet := command.Flags()
	if flagSet.Lookup(flagName) != nil {
		return &values
	}

	if len(definition.Shorthand) > 0 {
		flagSet.StringVarP(&values.Name, flagName, definition.Shorthand, defaults.Name, flagUsage)
		return &values
	}

	flagSet.StringVar(&values.Name, flagName, defaults.Name, flagUsage)
	return &values
}

// NetworkNameFlagDefinition captures configuration for the network name flag.
type NetworkNameFlagDefinition struct {
	Name      string
	Shorthand string
	Usage     string
	Enabled   bool
}

// NetworkNameFlagValues stores the resolved network name flag value.
type NetworkNameFlagValues struct {
	Name string
}

// BindNetworkNameFlag attaches the network name flag to the provided command.
func BindNetworkNameFlag(command *cobra.Command, defaults NetworkNameFlagValues, definition NetworkNameFlagDefinition) *NetworkNameFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled {
		return &values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = NetworkNameFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = NetworkNameFlagUsage
	}

	flagSet := command.Flags()
	if flagSet.Lookup(flagName) != nil {
		return &values
	}

	if len(definition.Shorthand) > 0 {
		flagSet.StringVarP(&values.Name, flagName, definition.Shorthand, defaults.Name, flagUsage)
		return &values
	}

	flagSet.StringVar(&values.Name, flagName, defaults.Name, flagUsage)
	return &values
}
