// Package run implements the merge-tool command line interface: the
// minimal form of the merge job, driven entirely by positional druids.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/sdr-ops/dormerge"
	"github.com/sdr-ops/dormerge/config"
	"github.com/sdr-ops/dormerge/dorhttp"
	"github.com/sdr-ops/dormerge/logging"
)

type cliFlags struct {
	Environment string   `name:"environment" short:"e" default:"development" help:"Environment profile supplying DOR service connection settings"`
	Config      string   `name:"config" short:"c" optional:"" help:"Path to the configuration file (default: $HOME/${config_file})"`
	Parent      string   `arg:"" name:"parent" help:"Druid of the primary object"`
	Children    []string `arg:"" name:"children" help:"Druids of secondary objects to merge into the primary"`
}

// CLI parses args and merges the listed secondary objects into the
// primary. Progress is logged to stderr.
func CLI(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cli cliFlags
	parser, err := kong.New(&cli,
		kong.Name("merge-tool"),
		kong.Writers(stdout, stderr),
		kong.Description("merge secondary objects into a primary object"),
		kong.Vars{"config_file": config.DefaultFile},
	)
	if err != nil {
		fmt.Fprintln(stderr, "in kong configuration:", err.Error())
		return err
	}
	if _, err := parser.Parse(args[1:]); err != nil {
		fmt.Fprintln(stderr, err.Error())
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Context.PrintUsage(true)
		}
		return err
	}
	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return err
	}
	env, err := cfg.Env(cli.Environment)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return err
	}
	merge := &dormerge.Merge{
		Repo:   dorhttp.New(env),
		Logger: logging.New(stderr, slog.LevelInfo),
	}
	report, err := merge.Run(ctx, cli.Parent, cli.Children)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return err
	}
	for _, c := range report.Merged() {
		fmt.Fprintf(stdout, "merged %s into %s (%d resources)\n", c.Druid, report.Primary, c.Resources)
	}
	for _, c := range report.Failed() {
		fmt.Fprintln(stdout, "failed:", c.Err.Error())
	}
	return nil
}
