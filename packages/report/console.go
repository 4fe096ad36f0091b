package report

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// formatValue formats a value for display, truncating long strings
// and summarizing composite values
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case nil:
		return "(absent)"
	case []any:
		if len(val) == 2 {
			return fmt.Sprintf("[%v, %v]", val[0], val[1])
		}
		return fmt.Sprintf("[array with %d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("{object with %d keys}", len(val))
	}
	str := fmt.Sprintf("%v", v)
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}

// Console writes one line per event, with failure details indented
// under the failing line.
type Console struct {
	mu      sync.Mutex
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*Console)

func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.noColor {
		color.NoColor = true
	}
	return c
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		c.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(c *Console) {
		c.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(c *Console) {
		c.noColor = nc
	}
}

func (c *Console) Report(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	symbol := green("✓")
	if !e.Success {
		symbol = red("✗")
	}

	label := e.Message
	if label == "" {
		label = e.Type
	} else {
		label = fmt.Sprintf("%s %s", label, cyan("("+e.Type+")"))
	}
	fmt.Fprintf(c.writer, "  %s %s\n", symbol, label)

	if !e.Success || c.verbose {
		fmt.Fprintf(c.writer, "      Expected: %s\n", formatValue(e.Expected, 100))
		fmt.Fprintf(c.writer, "      Actual:   %s\n", formatValue(e.Value, 100))
	}
}

// Header prints the tool banner before a run.
func (c *Console) Header(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(c.writer, "%s %s\n", bold("domspec"), version)
}

// Section prints a scenario name before its events.
func (c *Console) Section(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(c.writer, "\n%s\n\n", bold("Running: "+name))
}

// Summary prints run totals once all events are in.
func (c *Console) Summary(expectations, failures int, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(c.writer, "\nExpectations: ")
	passed := expectations - failures
	if passed > 0 {
		fmt.Fprintf(c.writer, "%s, ", green(fmt.Sprintf("%d passed", passed)))
	}
	if failures > 0 {
		fmt.Fprintf(c.writer, "%s, ", red(fmt.Sprintf("%d failed", failures)))
	}
	fmt.Fprintf(c.writer, "%d total\n", expectations)
	fmt.Fprintf(c.writer, "Time:  %dms\n\n", elapsed.Milliseconds())
}

// Error prints an infrastructure failure (driver unreachable, bad
// scenario file). Assertion failures never travel this path.
func (c *Console) Error(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(c.writer, "%s %v\n", red("Error:"), err)
}
