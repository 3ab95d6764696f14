package dockercli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/weagle/weagle/internal/execshell"
)

const (
	composeSubcommandConstant              = "compose"
	projectNameFlagConstant                = "--project-name"
	composeFileFlagConstant                = "-f"
	verboseFlagConstant                    = "--verbose"
	networkSubcommandConstant              = "network"
	networkDriverFlagConstant              = "--driver"
	networkSubnetFlagConstant              = "--subnet"
	commandLineJoinSeparatorConstant       = " "
	actionNameJoinSeparatorConstant        = ", "
	networkActionEmptyErrorMessageConstant = "network action must be provided"
	networkActionInvalidTemplateConstant   = "network action %q is not supported (supported: %s)"
)

// ErrNetworkActionNotProvided indicates an empty network action value.
var ErrNetworkActionNotProvided = errors.New(networkActionEmptyErrorMessageConstant)

// UnsupportedNetworkActionError reports a network action outside the supported set.
type UnsupportedNetworkActionError struct {
	Value string
}

// Error describes the unsupported network action.
func (unsupportedError UnsupportedNetworkActionError) Error() string {
	return fmt.Sprintf(networkActionInvalidTemplateConstant, unsupportedError.Value, strings.Join(SupportedNetworkActionNames(), actionNameJoinSeparatorConstant))
}

// ComposeAction enumerates the docker compose actions rendered by the client.
type ComposeAction string

// Compose actions produced by stack lifecycle operations.
const (
	ComposeActionBuild   ComposeAction = "build"
	ComposeActionUp      ComposeAction = "up"
	ComposeActionStop    ComposeAction = "stop"
	ComposeActionRestart ComposeAction = "restart"
	ComposeActionDown    ComposeAction = "down"
	ComposeActionRemove  ComposeAction = "rm"
	ComposeActionLogs    ComposeAction = "logs"
	ComposeActionPs      ComposeAction = "ps"
	ComposeActionExec    ComposeAction = "exec"
)

// NetworkAction enumerates the docker network actions accepted by the client.
type NetworkAction string

// Supported docker network actions.
const (
	NetworkActionConnect    NetworkAction = "connect"
	NetworkActionCreate     NetworkAction = "create"
	NetworkActionDisconnect NetworkAction = "disconnect"
	NetworkActionInspect    NetworkAction = "inspect"
	NetworkActionList       NetworkAction = "ls"
	NetworkActionPrune      NetworkAction = "prune"
	NetworkActionRemove     NetworkAction = "rm"
)

// ParseNetworkAction normalizes textual network action values.
func ParseNetworkAction(actionValue string) (NetworkAction, error) {
	trimmedValue := strings.TrimSpace(actionValue)
	if len(trimmedValue) == 0 {
		return "", ErrNetworkActionNotProvided
	}

	lowerCasedValue := strings.ToLower(trimmedValue)
	switch NetworkAction(lowerCasedValue) {
	case NetworkActionConnect, NetworkActionCreate, NetworkActionDisconnect,
		NetworkActionInspect, NetworkActionList, NetworkActionPrune, NetworkActionRemove:
		return NetworkAction(lowerCasedValue), nil
	default:
		return "", UnsupportedNetworkActionError{Value: actionValue}
	}
}

// SupportedNetworkActionNames lists accepted network action spellings in display order.
func SupportedNetworkActionNames() []string {
	return []string{
		string(NetworkActionConnect),
		string(NetworkActionCreate),
		string(NetworkActionDisconnect),
		string(NetworkActionInspect),
		string(NetworkActionList),
		string(NetworkActionPrune),
		string(NetworkActionRemove),
	}
}

// RequiresName reports whether the action operates on a named network. Listing
// and pruning are the only actions that take no network name.
func (action NetworkAction) RequiresName() bool {
	return action != NetworkActionList && action != NetworkActionPrune
}

// ComposeInvocation describes a single docker compose command. Rendering follows
// a fixed token order so produced command lines stay predictable: project name,
// compose file, optional verbose flag, action, action options, services, and the
// trailing command for exec.
type ComposeInvocation struct {
	Action          ComposeAction
	ComposeFilePath string
	ProjectName     string
	Services        []string
	SubCommand      []string
	ExtraOptions    []string
	Verbose         bool
	LegacyBinary    bool
}

// BinaryName resolves which executable carries the invocation.
func (invocation ComposeInvocation) BinaryName() execshell.CommandName {
	if invocation.LegacyBinary {
		return execshell.CommandDockerCompose
	}
	return execshell.CommandDocker
}

// Arguments renders the argument vector passed to the selected binary. The
// modern docker binary receives a leading compose subcommand token which the
// legacy standalone binary does not need.
func (invocation ComposeInvocation) Arguments() []string {
	arguments := make([]string, 0, 8+len(invocation.ExtraOptions)+len(invocation.Services)+len(invocation.SubCommand))
	if !invocation.LegacyBinary {
		arguments = append(arguments, composeSubcommandConstant)
	}
	arguments = append(arguments, projectNameFlagConstant, invocation.ProjectName)
	arguments = append(arguments, composeFileFlagConstant, invocation.ComposeFilePath)
	if invocation.Verbose {
		arguments = append(arguments, verboseFlagConstant)
	}
	arguments = append(arguments, string(invocation.Action))
	arguments = append(arguments, invocation.ExtraOptions...)
	arguments = append(arguments, invocation.Services...)
	arguments = append(arguments, invocation.SubCommand...)
	return arguments
}

// CommandLine renders the complete command for display and dry runs.
func (invocation ComposeInvocation) CommandLine() string {
	commandTokens := append([]string{string(invocation.BinaryName())}, invocation.Arguments()...)
	return strings.Join(commandTokens, commandLineJoinSeparatorConstant)
}

// NetworkInvocation describes a single docker network command.
type NetworkInvocation struct {
	Action NetworkAction
	Name   string
	Driver string
	Subnet string
}

// Arguments renders the argument vector passed to the docker binary. Driver and
// subnet apply to network creation only, and the network name is appended for
// every action that addresses a named network.
func (invocation NetworkInvocation) Arguments() []string {
	arguments := []string{networkSubcommandConstant, string(invocation.Action)}
	if invocation.Action == NetworkActionCreate {
		arguments = append(arguments, networkDriverFlagConstant, invocation.Driver, networkSubnetFlagConstant, invocation.Subnet)
	}
	if invocation.Action.RequiresName() {
		arguments = append(arguments, invocation.Name)
	}
	return arguments
}

// CommandLine renders the complete command for display and dry runs.
func (invocation NetworkInvocation) CommandLine() string {
	commandTokens := append([]string{string(execshell.CommandDocker)}, invocation.Arguments()...)
	return strings.Join(commandTokens, commandLineJoinSeparatorConstant)
}
