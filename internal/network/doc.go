// Package network exposes docker network management as a CLI command backed by
// configured defaults for the shared project network.
package network
