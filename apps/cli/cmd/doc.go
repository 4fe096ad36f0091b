// Package cmd implements the domspec CLI commands using Cobra.
//
// Available commands:
//   - run: Execute checks from scenario files against a driver
//   - validate: Check scenario files against the schema without running
//   - list: Display all checks defined in scenario files
//   - history: Show recent runs from a history database
//   - init: Create a new domspec project with example files
//   - version: Show domspec version information
//
// The CLI supports flags for driver selection, output formatting,
// issuance pacing, and watch mode for development workflows.
package cmd
