package cmd

// Exit codes for the domspec CLI
const (
	// ExitSuccess indicates every check passed
	ExitSuccess = 0

	// ExitCheckFailure indicates one or more checks failed
	ExitCheckFailure = 1

	// ExitScenarioError indicates a scenario could not be parsed or bound
	ExitScenarioError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitDriverError indicates a driver connection error
	ExitDriverError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
