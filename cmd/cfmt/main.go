// Command cfmt exposes the cfmt formatter, scanner and tokenizer on the
// command line.
//
//	cfmt printf '%-8s|%+06d\n' name -42
//	ps -eo pid,comm | cfmt --output json scanf '%d %s'
//	cfmt tokens ',;' < data.txt
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/bjaus/cfmt/internal/render"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "cfmt:", err)
		os.Exit(1)
	}
}

// runner carries the state the subcommands share once flags and config
// have been resolved.
type runner struct {
	cfg *Config
	log zerolog.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	r := &runner{log: zerolog.Nop()}
	return &cli.App{
		Name:      "cfmt",
		Usage:     "format and scan text with printf/scanf directives",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a cfmt.yaml config file",
			},
			&cli.IntFlag{
				Name:  "capacity",
				Usage: "maximum printf output size in bytes",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   fmt.Sprintf("scanf record format %v", render.Formats()),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "scan numbers strictly, skipping only whitespace before them",
			},
		},
		Before: r.setup,
		Commands: []*cli.Command{
			printfCommand(r),
			scanfCommand(r),
			tokensCommand(r),
		},
	}
}

// setup loads config, applies flag overrides and builds the logger.
func (r *runner) setup(c *cli.Context) error {
	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("capacity") {
		cfg.Capacity = c.Int("capacity")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	r.cfg = cfg
	r.log = zerolog.New(zerolog.ConsoleWriter{Out: c.App.ErrWriter, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
	r.log.Debug().
		Int("capacity", cfg.Capacity).
		Str("output", cfg.Output).
		Bool("strict", cfg.Strict).
		Msg("config loaded")
	return nil
}
