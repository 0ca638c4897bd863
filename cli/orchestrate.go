package cli

// This file contains the run modes: current-host build, full-matrix build,
// single named platform, catalog listing and artifact cleanup.

import (
	"fmt"
	"os"
	"runtime"

	"github.com/prefdoctor/prefbuild/model"
	"github.com/prefdoctor/prefbuild/platform"
	"github.com/rs/zerolog"
)

// buildCurrent builds for the detected host platform.
func (a *App) buildCurrent(logger zerolog.Logger, opts buildOptions) error {
	return a.buildHost(logger, runtime.GOOS, runtime.GOARCH, opts)
}

// buildHost resolves the host-reported identifiers against the catalog. When
// the host is not in the supported matrix the build falls back to a bare
// untargeted compilation instead of aborting; the compiler itself can target
// hosts the catalog does not enumerate.
func (a *App) buildHost(logger zerolog.Logger, rawOS, rawArch string, opts buildOptions) error {
	desc, ok := platform.Detect(rawOS, rawArch)
	if !ok {
		logger.Warn().
			Str("os", rawOS).
			Str("arch", rawArch).
			Msg("Host platform not in the supported matrix, building without a target")
		return outcomeErr(a.buildPlatform(logger, nil, opts))
	}

	logger.Info().
		Str("platform", desc.String()).
		Msg("Detected host platform")

	return outcomeErr(a.buildPlatform(logger, &desc, opts))
}

// buildAll builds every catalog platform sequentially in declaration order.
// Individual failures do not stop the remaining matrix; the run fails iff
// any platform failed, and the tally is always printed.
func (a *App) buildAll(logger zerolog.Logger, opts buildOptions) error {
	var summary model.Summary

	for _, desc := range platform.Catalog {
		summary.Record(a.buildPlatform(logger, &desc, opts))
	}

	fmt.Printf("\n%d/%d platforms built successfully\n", summary.Succeeded, summary.Attempted)

	if !summary.AllSucceeded() {
		return fmt.Errorf("%d of %d platform builds failed", summary.Attempted-summary.Succeeded, summary.Attempted)
	}
	return nil
}

// buildOne builds the single platform named by an `<os>-<arch>` specifier.
// An unknown specifier fails before any build is attempted.
func (a *App) buildOne(logger zerolog.Logger, spec string, opts buildOptions) error {
	desc, err := platform.ParseSpecifier(spec)
	if err != nil {
		return err
	}
	return outcomeErr(a.buildPlatform(logger, &desc, opts))
}

// listPlatforms prints the catalog. No builds, no filesystem writes.
func (a *App) listPlatforms() error {
	fmt.Printf("Supported platforms (%d):\n", len(platform.Catalog))
	for _, desc := range platform.Catalog {
		fmt.Printf("  %-16s target=%s\n", desc.String(), desc.Target)
	}
	return nil
}

// clean removes the output directory tree. Best-effort: a missing directory
// is fine and removal failures are downgraded to warnings, since a partially
// cleaned tree is simply recreated by the next build.
func (a *App) clean(logger zerolog.Logger, outDir string) error {
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		logger.Info().Str("dir", outDir).Msg("Output directory already absent")
		return nil
	}

	if err := os.RemoveAll(outDir); err != nil {
		logger.Warn().Err(err).Str("dir", outDir).Msg("Failed to remove output directory")
		return nil
	}

	logger.Info().Str("dir", outDir).Msg("Output directory removed")
	return nil
}

// outcomeErr converts a single-build outcome into the run result.
func outcomeErr(o model.Outcome) error {
	if o.Success {
		return nil
	}
	if o.Platform != nil {
		return fmt.Errorf("build failed for %s: %w", o.Platform, o.Err)
	}
	return fmt.Errorf("build failed: %w", o.Err)
}
