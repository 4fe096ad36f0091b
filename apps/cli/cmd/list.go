package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abdul-hamid-achik/domspec/packages/scenario"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>",
	Short: "List all checks in scenario files",
	Long: `List all checks defined in scenario YAML files.

Examples:
  domspec list smoke.yaml
  domspec list ./scenarios/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectScenarios(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no .yaml or .yml scenario files found")
	}

	for _, file := range files {
		sc, err := scenario.Load(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error parsing %s: %v\n", file, err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s (%s):\n", file, sc.Name)
		listSteps(cmd.OutOrStdout(), sc.Checks, "  ")
	}

	return nil
}

func listSteps(out io.Writer, steps []scenario.Step, indent string) {
	for _, st := range steps {
		if st.Query != nil {
			fmt.Fprintf(out, "%s- query %s:\n", indent, st.Query.Selector)
			listSteps(out, st.Query.Checks, indent+"  ")
			continue
		}

		line := st.Kind
		if st.Selector != "" {
			line += " " + st.Selector
		}
		fmt.Fprintf(out, "%s- %s\n", indent, line)
		if len(st.Attach) > 0 {
			ops := make([]string, 0, len(st.Attach))
			for _, at := range st.Attach {
				ops = append(ops, at.Op)
			}
			fmt.Fprintf(out, "%s  attach: %s\n", indent, strings.Join(ops, ", "))
		}
	}
}
