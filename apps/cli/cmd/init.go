package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new domspec project",
	Long: `Initialize a new domspec project in the current directory.

This creates:
  - .domspec.yaml  - Configuration file
  - example.yaml   - Example scenario with canned responses

Examples:
  domspec init
  domspec init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, ".domspec.yaml")
	exampleFile := filepath.Join(cwd, "example.yaml")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	configContent := map[string]any{
		"driver":       "replay",
		"output":       "console",
		"settleMillis": 30000,
	}

	configYAML, _ := yaml.Marshal(configContent)
	if err := os.WriteFile(configFile, configYAML, 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	exampleContent := `name: example
checks:
  - kind: title
    expected: Example Domain
    message: landing page title
  - kind: exists
    selector: "#main"
    message: main content present
  - kind: numberOfElements
    selector: "p"
    message: paragraph count
    attach:
      - op: between
        expected: [1, 5]
        message: one to five paragraphs

# Canned answers so the scenario runs without a live driver.
# Delete this block and pass --driver ws://... to go live.
responses:
  - key: title
    value: Example Domain
  - key: exists
    selector: "#main"
    value: "true"
  - key: numberOfElements
    selector: "p"
    value: 2
`

	if err := os.WriteFile(exampleFile, []byte(exampleContent), 0644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\ndomspec project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'domspec run example.yaml' to execute the example scenario.\n")

	return nil
}
