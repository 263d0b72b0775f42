package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/bjaus/cfmt"
)

const defaultDelims = " \t"

func tokensCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "split standard input into tokens, one per output line",
		UsageText: "cfmt tokens [DELIMS]",
		Action:    r.tokens,
	}
}

func (r *runner) tokens(c *cli.Context) error {
	delims := defaultDelims
	if c.NArg() > 0 {
		delims = unescape(c.Args().First())
	}
	count := 0
	for line, err := range cfmt.Lines(c.App.Reader) {
		if err != nil {
			return fmt.Errorf("tokens: %w", err)
		}
		for tok := range cfmt.Tokens(line, delims) {
			count++
			if _, err := fmt.Fprintln(c.App.Writer, tok); err != nil {
				return err
			}
		}
	}
	r.log.Debug().Int("tokens", count).Msg("split complete")
	return nil
}
