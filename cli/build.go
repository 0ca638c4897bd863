package cli

// This file contains the single-platform build workflow: invoking the bun
// compiler for one target and reporting the produced artifact.

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/prefdoctor/prefbuild/cli/bun"
	"github.com/prefdoctor/prefbuild/model"
	"github.com/prefdoctor/prefbuild/platform"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Compiler abstracts the external ahead-of-time compiler so orchestration
// can be tested without a bun installation.
type Compiler interface {
	Compile(opts bun.CompileOptions) error
}

// bunCompiler runs bun as a subprocess. Any invocation error (tool missing,
// non-zero exit) is reported as a plain error; classification happens in the
// caller, which turns it into a failed outcome.
type bunCompiler struct {
	logger   zerolog.Logger
	progress bool
}

func (c *bunCompiler) Compile(opts bun.CompileOptions) error {
	args := bun.BuildCompileArgs(opts)

	c.logger.Debug().
		Str("command", bun.BuildCompileCommand(opts)).
		Msg("Invoking bun")

	cmd := exec.Command("bun", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var done chan bool
	if c.progress {
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Compiling "+filepath.Base(opts.Outfile)),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
		done = make(chan bool)
		go func() {
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					bar.Finish()
					fmt.Fprintln(os.Stderr)
					return
				case <-ticker.C:
					bar.Add(1)
				}
			}
		}()
	}

	err := cmd.Run()
	if done != nil {
		done <- true
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("bun exited with code %d (stderr: %s)", exitErr.ExitCode(), stderr.String())
		}
		return fmt.Errorf("failed to invoke bun: %w", err)
	}

	c.logger.Debug().Str("stdout", stdout.String()).Msg("bun completed")
	return nil
}

// artifactPath returns the deterministic output path for a build. Targeted
// builds are decorated with `-<os>-<arch><suffix>`; the bare fallback build
// (nil descriptor) uses the undecorated base name.
func artifactPath(desc *platform.Descriptor, opts buildOptions) string {
	if desc == nil {
		return filepath.Join(opts.OutDir, opts.Name)
	}
	return filepath.Join(opts.OutDir, fmt.Sprintf("%s-%s-%s%s", opts.Name, desc.OS, desc.Arch, desc.Suffix))
}

// buildPlatform performs one build and converts every failure into a failed
// outcome; it never returns an error. A nil descriptor requests the bare
// untargeted build used when host detection fails.
func (a *App) buildPlatform(logger zerolog.Logger, desc *platform.Descriptor, opts buildOptions) model.Outcome {
	outcome := model.Outcome{
		Platform: desc,
		Artifact: artifactPath(desc, opts),
	}

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		outcome.Err = fmt.Errorf("failed to create output directory %s: %w", opts.OutDir, err)
		logger.Error().Err(outcome.Err).Msg("Build failed")
		return outcome
	}

	compileOpts := bun.CompileOptions{
		Entry:     opts.Entry,
		Outfile:   outcome.Artifact,
		Minify:    opts.Minify,
		Sourcemap: opts.Sourcemap,
	}
	logEvent := logger.Info().Str("artifact", outcome.Artifact)
	if desc != nil {
		compileOpts.Target = desc.Target
		logEvent = logEvent.Str("platform", desc.String()).Str("target", desc.Target)
	}
	logEvent.Msg("Building")

	if err := a.compiler.Compile(compileOpts); err != nil {
		outcome.Err = err
		logger.Error().Err(err).Str("artifact", outcome.Artifact).Msg("Build failed")
		return outcome
	}

	outcome.Success = true

	// Size reporting is best-effort: a success exit with a missing artifact
	// is logged but does not downgrade the result.
	if info, err := os.Stat(outcome.Artifact); err == nil {
		size := uint64(info.Size())
		outcome.Size = &size
		logger.Info().
			Str("artifact", outcome.Artifact).
			Uint64("size_bytes", size).
			Msg("Build succeeded")
	} else {
		logger.Warn().
			Str("artifact", outcome.Artifact).
			Msg("Build succeeded but artifact size could not be read")
	}

	return outcome
}
