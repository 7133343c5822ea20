// Package cli provides the driver-facing entry points: running the
// front-end over an already-desugared program and rendering its
// diagnostics.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/pipeline"
)

// Reporter renders diagnostics. Color is applied only when the output
// is a terminal and NO_COLOR is unset.
type Reporter struct {
	out      io.Writer
	useColor bool
}

// NewReporter builds a reporter for w, detecting terminal capability
// when w is an *os.File.
func NewReporter(w io.Writer) *Reporter {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if os.Getenv("NO_COLOR") != "" {
		useColor = false
	}
	return &Reporter{out: w, useColor: useColor}
}

// Error renders a type error. The message text is the engine's
// contractual error string; only the prefix is decorated.
func (r *Reporter) Error(err error) {
	prefix := "error:"
	if r.useColor {
		prefix = color.New(color.FgRed, color.Bold).Sprint(prefix)
	}
	fmt.Fprintf(r.out, "%s %s\n", prefix, err)
}

// Infof prints a status line.
func (r *Reporter) Infof(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Check runs the front-end over a desugared program, materializes
// node types on success, and reports the first error otherwise. It
// returns true when the program type-checks.
func Check(prog *ast.Program, r *Reporter) bool {
	return CheckWithOptions(prog, r, pipeline.Options{})
}

// CheckWithOptions is Check with an explicit pipeline configuration
// (extern config path, host version).
func CheckWithOptions(prog *ast.Program, r *Reporter, opts pipeline.Options) bool {
	if _, err := pipeline.Run(prog, opts); err != nil {
		r.Error(err)
		return false
	}
	return true
}
