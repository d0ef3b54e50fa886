package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headingStyle = lipgloss.NewStyle().Bold(true)
)

// printer writes human-readable reports to stdout and per-file errors to
// stderr.
type printer struct {
	w     io.Writer
	errw  io.Writer
	color bool
}

func newPrinter(cmd *cobra.Command, noColor bool) *printer {
	return &printer{
		w:     cmd.OutOrStdout(),
		errw:  cmd.ErrOrStderr(),
		color: !noColor && os.Getenv("NO_COLOR") == "",
	}
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// mark renders a pass/fail check mark.
func (p *printer) mark(ok bool) string {
	if ok {
		return p.render(passStyle, "✓")
	}
	return p.render(failStyle, "✗")
}

func (p *printer) heading(s string) string {
	return p.render(headingStyle, s)
}

func (p *printer) warn(s string) string {
	return p.render(warnStyle, s)
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) fileError(path, msg string) {
	fmt.Fprintf(p.errw, "Error processing %s: %s\n", path, msg)
}

// jsonReport wraps every machine-readable result with a run identifier.
type jsonReport struct {
	RunID   string `json:"run_id"`
	Command string `json:"command"`
	Clean   bool   `json:"clean"`
	Result  any    `json:"result"`
}

func writeJSON(w io.Writer, command string, clean bool, result any) error {
	output, err := json.MarshalIndent(jsonReport{
		RunID:   uuid.NewString(),
		Command: command,
		Clean:   clean,
		Result:  result,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Fprintln(w, string(output))
	return nil
}

// percent formats a ratio as a percentage with two decimals.
func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
}

// number formats a rounded metric without trailing zeros.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
