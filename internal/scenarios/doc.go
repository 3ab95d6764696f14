// Package scenarios models the predefined project folders the CLI can operate
// on, resolves their docker-compose files, and lists the services they define.
package scenarios
