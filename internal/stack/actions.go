package stack

import (
	"fmt"

	"github.com/weagle/weagle/internal/dockercli"
)

const (
	detachedOptionConstant      = "-d"
	removeOrphansOptionConstant = "--remove-orphans"
	volumesOptionConstant       = "--volumes"
	stopOptionConstant          = "--stop"
	forceOptionConstant         = "--force"
	followOptionConstant        = "--follow"
	tailOptionTemplateConstant  = "--tail=%d"

	// DefaultExecCommand runs inside the target container when exec receives no command.
	DefaultExecCommand = "bash"
)

// StackAction identifies a lifecycle operation on a project stack.
type StackAction string

// Lifecycle actions exposed as CLI commands.
const (
	StackActionBuild   StackAction = "build"
	StackActionStart   StackAction = "start"
	StackActionStop    StackAction = "stop"
	StackActionRestart StackAction = "restart"
	StackActionDebug   StackAction = "debug"
	StackActionDestroy StackAction = "destroy"
	StackActionRemove  StackAction = "rm"
	StackActionLogs    StackAction = "logs"
	StackActionPs      StackAction = "ps"
	StackActionExec    StackAction = "exec"
)

// UnsupportedActionError reports a stack action without a definition.
type UnsupportedActionError struct {
	Action StackAction
}

// Error describes the unsupported action.
func (unsupportedError UnsupportedActionError) Error() string {
	return fmt.Sprintf("stack action %q is not supported", string(unsupportedError.Action))
}

// ActionDefinition describes how one CLI action maps onto docker compose.
type ActionDefinition struct {
	Action           StackAction
	Use              string
	ShortDescription string
	LongDescription  string
	ComposeAction    dockercli.ComposeAction
	StatusMessage    string
	SupportsDetached bool
	DetachedDefault  bool
	SupportsFollow   bool
	SupportsTail     bool
	SupportsVolumes  bool
	SupportsForce    bool
	RequiresService  bool
	AcceptsCommand   bool
}

// ActionDefinitions lists every lifecycle action in CLI display order.
func ActionDefinitions() []ActionDefinition {
	return []ActionDefinition{
		{
			Action:           StackActionBuild,
			Use:              "build [service...]",
			ShortDescription: "Build images for the selected project",
			LongDescription:  "build runs docker compose build for the selected project folder.",
			ComposeAction:    dockercli.ComposeActionBuild,
			StatusMessage:    "Building project",
		},
		{
			Action:           StackActionStart,
			Use:              "start [service...]",
			ShortDescription: "Start the selected project",
			LongDescription:  "start runs docker compose up with orphan removal, detached by default.",
			ComposeAction:    dockercli.ComposeActionUp,
			StatusMessage:    "Starting project",
			SupportsDetached: true,
			DetachedDefault:  true,
		},
		{
			Action:           StackActionStop,
			Use:              "stop [service...]",
			ShortDescription: "Stop the selected project",
			LongDescription:  "stop runs docker compose stop for the selected project folder.",
			ComposeAction:    dockercli.ComposeActionStop,
			StatusMessage:    "Stopping project",
		},
		{
			Action:           StackActionRestart,
			Use:              "restart [service...]",
			ShortDescription: "Restart the selected project",
			LongDescription:  "restart runs docker compose restart for the selected project folder.",
			ComposeAction:    dockercli.ComposeActionRestart,
			StatusMessage:    "Restarting project",
		},
		{
			Action:           StackActionDebug,
			Use:              "debug [service...]",
			ShortDescription: "Start the selected project in the foreground",
			LongDescription:  "debug runs docker compose up attached to the terminal so service output stays visible.",
			ComposeAction:    dockercli.ComposeActionUp,
			StatusMessage:    "Debugging project",
		},
		{
			Action:           StackActionDestroy,
			Use:              "destroy [service...]",
			ShortDescription: "Tear down the selected project",
			LongDescription:  "destroy runs docker compose down with orphan removal and optionally deletes volumes.",
			ComposeAction:    dockercli.ComposeActionDown,
			StatusMessage:    "Destroying project",
			SupportsVolumes:  true,
		},
		{
			Action:           StackActionRemove,
			Use:              "rm [service...]",
			ShortDescription: "Remove stopped containers for the selected project",
			LongDescription:  "rm stops and removes project containers, optionally forcing removal and deleting anonymous volumes.",
			ComposeAction:    dockercli.ComposeActionRemove,
			StatusMessage:    "Removing project containers",
			SupportsVolumes:  true,
			SupportsForce:    true,
		},
		{
			Action:           StackActionLogs,
			Use:              "logs [service...]",
			ShortDescription: "Show logs for the selected project",
			LongDescription:  "logs prints service logs, optionally following output or limiting the tail length.",
			ComposeAction:    dockercli.ComposeActionLogs,
			StatusMessage:    "Collecting project logs",
			SupportsFollow:   true,
			SupportsTail:     true,
		},
		{
			Action:           StackActionPs,
			Use:              "ps [service...]",
			ShortDescription: "List containers for the selected project",
			LongDescription:  "ps lists containers belonging to the selected project folder.",
			ComposeAction:    dockercli.ComposeActionPs,
			StatusMessage:    "Listing project containers",
		},
		{
			Action:           StackActionExec,
			Use:              "exec SERVICE [command...]",
			ShortDescription: "Execute a command inside a project service",
			LongDescription:  "exec opens a command inside the named service container, defaulting to bash.",
			ComposeAction:    dockercli.ComposeActionExec,
			StatusMessage:    "Executing command in project service",
			RequiresService:  true,
			AcceptsCommand:   true,
		},
	}
}

// FindActionDefinition resolves the definition for the provided action.
func FindActionDefinition(action StackAction) (ActionDefinition, bool) {
	for _, definition := range ActionDefinitions() {
		if definition.Action == action {
			return definition, true
		}
	}
	return ActionDefinition{}, false
}

// composeExtraOptions renders the fixed per-action compose options. Option
// ordering is stable so rendered command lines stay predictable.
func composeExtraOptions(definition ActionDefinition, task StackTask) []string {
	extraOptions := []string{}

	switch definition.Action {
	case StackActionStart:
		if task.Detached {
			extraOptions = append(extraOptions, detachedOptionConstant)
		}
		extraOptions = append(extraOptions, removeOrphansOptionConstant)
	case StackActionDebug:
		extraOptions = append(extraOptions, removeOrphansOptionConstant)
	case StackActionDestroy:
		if task.RemoveVolumes {
			extraOptions = append(extraOptions, volumesOptionConstant)
		}
		extraOptions = append(extraOptions, removeOrphansOptionConstant)
	case StackActionRemove:
		extraOptions = append(extraOptions, stopOptionConstant)
		if task.ForceRemoval {
			extraOptions = append(extraOptions, forceOptionConstant)
		}
		if task.RemoveVolumes {
			extraOptions = append(extraOptions, volumesOptionConstant)
		}
	case StackActionLogs:
		if task.FollowLogs {
			extraOptions = append(extraOptions, followOptionConstant)
		}
		if task.TailLines > 0 {
			extraOptions = append(extraOptions, fmt.Sprintf(tailOptionTemplateConstant, task.TailLines))
		}
	}

	if len(extraOptions) == 0 {
		return nil
	}
	return extraOptions
}
