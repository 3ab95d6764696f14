// Package stack maps lifecycle commands for predefined project folders onto
// docker compose invocations. It resolves compose files, merges dotenv files
// with the process environment, and renders one canonical command line per
// action.
package stack
