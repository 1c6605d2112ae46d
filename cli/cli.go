package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "mzbench"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
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
		cli: &cli.App{
			Name:  AppName,
			Usage: "Benchmark constraint models against an external MiniZinc solver",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}

	matrixFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the benchmark configuration file",
		},
		&cli.StringSliceFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "Model to benchmark (can be specified multiple times, overrides config)",
		},
		&cli.StringSliceFlag{
			Name:    "instance",
			Aliases: []string{"i"},
			Usage:   "Problem instance to benchmark (can be specified multiple times, overrides config)",
		},
		&cli.IntFlag{
			Name:    "repetitions",
			Aliases: []string{"r"},
			Usage:   "Repetitions per model-instance pair (overrides config)",
		},
	}

	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "run",
		Usage:  "Run the full benchmark matrix",
		Action: app.run,
		Flags: append(matrixFlags,
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "Wall-clock limit per run in seconds (overrides config)",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Maximum solver processes in flight at once (overrides config)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Result file path (default: timestamped file under the results directory)",
			},
			&cli.StringFlag{
				Name:  "solver",
				Usage: "Solver executable (overrides config)",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Solver backend passed via --solver (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "solver-arg",
				Usage: "Extra argument passed to every solver invocation (can be specified multiple times)",
			},
		),
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "plan",
		Usage:  "Print the enumerated run matrix without executing it",
		Action: app.plan,
		Flags:  matrixFlags,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "summary",
		Usage:     "Summarize a previously written result file",
		ArgsUsage: "RESULTS.csv",
		Action:    app.summary,
	})

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
