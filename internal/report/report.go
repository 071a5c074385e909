package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Report aggregates the changes made by one full sync run.
// Paths keep the order they were synced in: skills in manifest order,
// files in remote listing order.
type Report struct {
	// Updated lists local paths that were written.
	Updated []string
	// Removed lists local paths that were pruned as stale.
	Removed []string
	// Skills lists the names of skills with at least one change.
	Skills []string
}

// Changed reports whether the run modified anything.
func (r Report) Changed() bool {
	return len(r.Updated) > 0 || len(r.Removed) > 0
}

// Sinks names the optional output files a run reports into.
// An empty path disables that sink.
type Sinks struct {
	// Output receives machine-readable key=value lines (GITHUB_OUTPUT).
	Output string
	// Summary receives a human-readable markdown section (GITHUB_STEP_SUMMARY).
	Summary string
}

// SinksFromEnv reads the sink paths from the environment once.
// Only the CLI layer calls this; everything below receives the value.
func SinksFromEnv() Sinks {
	return Sinks{
		Output:  os.Getenv("GITHUB_OUTPUT"),
		Summary: os.Getenv("GITHUB_STEP_SUMMARY"),
	}
}

// WriteConsole prints the final summary: updated files as green "+" lines,
// removed files as red "-" lines, or an up-to-date message.
func (r Report) WriteConsole(w io.Writer) {
	fmt.Fprintln(w)

	if !r.Changed() {
		fmt.Fprintln(w, "All skills are up to date.")
		return
	}

	if len(r.Updated) > 0 {
		fmt.Fprintf(w, "Updated %d file(s):\n", len(r.Updated))
		for _, p := range r.Updated {
			fmt.Fprintf(w, "  %s %s\n", color.GreenString("+"), p)
		}
	}
	if len(r.Removed) > 0 {
		fmt.Fprintf(w, "Removed %d file(s):\n", len(r.Removed))
		for _, p := range r.Removed {
			fmt.Fprintf(w, "  %s %s\n", color.RedString("-"), p)
		}
	}
}

// WriteOutput appends the machine-readable result lines to path.
// The skills line is only present when something changed, so consumers can
// key on its existence.
func (r Report) WriteOutput(path string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "updated=%t\n", r.Changed())
	if r.Changed() {
		fmt.Fprintf(&b, "skills=%s\n", strings.Join(r.Skills, ", "))
	}
	return appendFile(path, b.String())
}

// WriteSummary appends a markdown report section to path.
func (r Report) WriteSummary(path string) error {
	var b strings.Builder
	b.WriteString("## Skill Sync\n\n")

	if !r.Changed() {
		b.WriteString("All skills are up to date.\n")
		return appendFile(path, b.String())
	}

	b.WriteString("Changed skills: ")
	for i, name := range r.Skills {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "`%s`", name)
	}
	b.WriteString("\n")

	if len(r.Updated) > 0 {
		fmt.Fprintf(&b, "\n### Updated files (%d)\n\n", len(r.Updated))
		for _, p := range r.Updated {
			fmt.Fprintf(&b, "- `%s`\n", p)
		}
	}
	if len(r.Removed) > 0 {
		fmt.Fprintf(&b, "\n### Removed files (%d)\n\n", len(r.Removed))
		for _, p := range r.Removed {
			fmt.Fprintf(&b, "- `%s`\n", p)
		}
	}

	return appendFile(path, b.String())
}

// Emit writes the report to the console and to each configured sink.
func (r Report) Emit(console io.Writer, sinks Sinks) error {
	r.WriteConsole(console)

	if sinks.Output != "" {
		if err := r.WriteOutput(sinks.Output); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
	}
	if sinks.Summary != "" {
		if err := r.WriteSummary(sinks.Summary); err != nil {
			return fmt.Errorf("writing summary file: %w", err)
		}
	}
	return nil
}

// appendFile appends content to the file at path, creating it if needed.
func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
