// Package presenter provides consistent CLI output for user-facing
// messages: success, error, warning, and informational lines with color
// support and a quiet mode. The hook command bypasses it entirely so that
// stdout carries only the injected context block.
package presenter

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ColorMode controls colored output.
type ColorMode int

const (
	// ColorAuto enables color when stdout is a terminal.
	ColorAuto ColorMode = iota
	// ColorAlways forces color.
	ColorAlways
	// ColorNever disables color.
	ColorNever
)

// Presenter writes user-facing CLI output.
type Presenter struct {
	output      io.Writer
	errorOutput io.Writer
	quiet       bool
}

// New creates a presenter on stdout/stderr with auto-detected color.
func New() *Presenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a presenter with explicit outputs and color mode.
func NewWithOptions(output, errorOutput io.Writer, mode ColorMode) *Presenter {
	switch mode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	}
	return &Presenter{output: output, errorOutput: errorOutput}
}

// detectColorMode honors NO_COLOR; otherwise the color package's own
// terminal detection applies.
func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}
	return ColorAuto
}

// SetQuiet suppresses success/info/section output. Errors and warnings
// still print.
func (p *Presenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// Error prints an error with optional context to the error output.
func (p *Presenter) Error(err error, context string) {
	if context != "" {
		fmt.Fprintf(p.errorOutput, "%s %s: %v\n", color.RedString("Error:"), context, err)
		return
	}
	fmt.Fprintf(p.errorOutput, "%s %v\n", color.RedString("Error:"), err)
}

// Success prints a success message.
func (p *Presenter) Success(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.output, "%s %s\n", color.GreenString("✓"), message)
}

// Warning prints a warning message to the error output.
func (p *Presenter) Warning(message string) {
	fmt.Fprintf(p.errorOutput, "%s %s\n", color.YellowString("Warning:"), message)
}

// Info prints an informational message.
func (p *Presenter) Info(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.output, message)
}

// Section prints a titled section divider.
func (p *Presenter) Section(title string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.output, "\n%s\n", color.CyanString("== %s ==", title))
}
