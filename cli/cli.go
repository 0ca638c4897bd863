package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	ucli "github.com/urfave/cli/v2"
)

const AppName = "prefbuild"

// Defaults for the pref-doctor repository layout. All three are overridable
// through flags.
const (
	defaultEntry   = "src/index.ts"
	defaultOutDir  = "build"
	defaultBinName = "pref-doctor"
)

type App struct {
	logger   zerolog.Logger
	cli      *ucli.App
	compiler Compiler
}

// buildOptions carries the flag values shared by every build mode.
type buildOptions struct {
	Entry     string
	OutDir    string
	Name      string
	Minify    bool
	Sourcemap bool
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
	}
	app.compiler = &bunCompiler{logger: logger, progress: true}
	app.cli = &ucli.App{
		Name:  AppName,
		Usage: "Compile pref-doctor into standalone native executables",
		Flags: []ucli.Flag{
			&ucli.BoolFlag{
				Name:    "current",
				Aliases: []string{"c"},
				Usage:   "Build for the current host platform (default)",
			},
			&ucli.BoolFlag{
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   "Build for every supported platform",
			},
			&ucli.StringFlag{
				Name:    "platform",
				Aliases: []string{"p"},
				Usage:   "Build for exactly one platform given as `OS-ARCH` (e.g. linux-x64)",
			},
			&ucli.BoolFlag{
				Name:  "clean",
				Usage: "Remove the build output directory and exit",
			},
			&ucli.BoolFlag{
				Name:  "list",
				Usage: "List the supported platforms and exit",
			},
			&ucli.BoolFlag{
				Name:  "watch",
				Usage: "Rebuild the current platform whenever the entry point changes",
			},
			&ucli.StringFlag{
				Name:  "entry",
				Usage: "Application entry point to compile",
				Value: defaultEntry,
			},
			&ucli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output root directory for build artifacts",
				Value:   defaultOutDir,
			},
			&ucli.StringFlag{
				Name:  "name",
				Usage: "Base name of the produced executables",
				Value: defaultBinName,
			},
			&ucli.BoolFlag{
				Name:  "minify",
				Usage: "Minify bundled sources before compilation",
				Value: true,
			},
			&ucli.BoolFlag{
				Name:  "sourcemap",
				Usage: "Embed a sourcemap into the executable",
			},
			&ucli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose (debug) logging",
			},
		},
		Before: func(ctx *ucli.Context) error {
			if ctx.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				// The compiler's own output replaces the spinner in
				// verbose mode.
				if c, ok := app.compiler.(*bunCompiler); ok {
					c.progress = false
				}
			}
			return nil
		},
		Action: app.dispatch,
	}
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}

// dispatch selects exactly one run mode from the parsed flags. Modes are
// mutually exclusive; when several are given the first in priority order
// (list, clean, platform, all, watch, current) wins.
func (a *App) dispatch(ctx *ucli.Context) error {
	if ctx.Args().Present() {
		_ = ucli.ShowAppHelp(ctx)
		return fmt.Errorf("unrecognized argument %q", ctx.Args().First())
	}

	runID := uuid.NewString()
	logger := a.logger.With().Str("run", runID[:8]).Logger()

	opts := buildOptions{
		Entry:     ctx.String("entry"),
		OutDir:    ctx.String("output"),
		Name:      ctx.String("name"),
		Minify:    ctx.Bool("minify"),
		Sourcemap: ctx.Bool("sourcemap"),
	}

	switch {
	case ctx.Bool("list"):
		return a.listPlatforms()
	case ctx.Bool("clean"):
		return a.clean(logger, opts.OutDir)
	case ctx.IsSet("platform"):
		return a.buildOne(logger, ctx.String("platform"), opts)
	case ctx.Bool("all"):
		return a.buildAll(logger, opts)
	case ctx.Bool("watch"):
		return a.watch(logger, opts)
	default:
		// Covers both --current and no mode flag at all.
		return a.buildCurrent(logger, opts)
	}
}
