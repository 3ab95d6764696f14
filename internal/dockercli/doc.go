// Package dockercli wraps the docker and docker-compose binaries for weagle
// workflows.
//
// It models compose and network invocations as typed structures with a fixed
// argument rendering order, routes execution between the modern docker binary
// and the legacy standalone docker-compose binary, and integrates with
// execshell so interactions with docker can be mocked during testing.
package dockercli
