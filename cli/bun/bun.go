package bun

// bun.go contains utilities for building `bun build --compile` command
// arguments for ahead-of-time compilation of the application entry point.

import (
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// CompileOptions contains options for a bun compile invocation.
type CompileOptions struct {
	Entry     string // Entry point file to compile
	Target    string // Cross-compilation target (empty for the host default)
	Outfile   string // Output executable path
	Minify    bool   // Minify the bundled sources
	Sourcemap bool   // Embed a sourcemap into the executable
}

// BuildCompileArgs builds the bun command arguments for one compilation.
func BuildCompileArgs(opts CompileOptions) []string {
	args := []string{"build", opts.Entry, "--compile"}

	if opts.Target != "" {
		args = append(args, "--target="+opts.Target)
	}
	if opts.Minify {
		args = append(args, "--minify")
	}
	if opts.Sourcemap {
		args = append(args, "--sourcemap")
	}

	args = append(args, "--outfile", opts.Outfile)
	return args
}

// BuildCompileCommand builds the full compile command as a display string
// with proper shell escaping.
func BuildCompileCommand(opts CompileOptions) string {
	args := BuildCompileArgs(opts)

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, "bun")

	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}

	return strings.Join(parts, " ")
}
