// Package run implements the virtual-merge command line interface.
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
	"github.com/sdr-ops/dormerge/internal/ids"
	"github.com/sdr-ops/dormerge/logging"
)

type cliFlags struct {
	Environment string   `name:"environment" short:"e" default:"development" help:"Environment profile supplying DOR service connection settings"`
	Config      string   `name:"config" short:"c" optional:"" help:"Path to the configuration file (default: $HOME/${config_file})"`
	Input       string   `name:"input" short:"i" optional:"" help:"File listing child druids, one per line ('-' reads standard input)"`
	Log         *string  `name:"log" short:"l" optional:"" help:"Log destination: a file path, or '-' for standard output (default: standard error)"`
	Debug       *bool    `name:"debug" optional:"" help:"Enable debug logging"`
	Purge       *bool    `name:"purge" optional:"" help:"Discard the parent's existing content metadata before merging"`
	Parent      string   `arg:"" name:"parent" help:"Druid of the parent object"`
	Children    []string `arg:"" optional:"" name:"children" help:"Druids of child objects (omit when using --input)"`
}

// CLI parses args and runs the virtual merge. It returns a non-nil error
// for usage errors, configuration errors, and fatal merge failures;
// individual child failures are reported in the summary, not through the
// return value.
func CLI(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli cliFlags
	parser, err := kong.New(&cli,
		kong.Name("virtual-merge"),
		kong.Writers(stdout, stderr),
		kong.Description("attach child objects to a parent object as virtual resources"),
		kong.Vars{"config_file": config.DefaultFile},
	)
	if err != nil {
		fmt.Fprintln(stderr, "in kong configuration:", err.Error())
		return err
	}
	kongCtx, err := parser.Parse(args[1:])
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Context.PrintUsage(true)
		}
		return err
	}
	if cli.Input == "" && len(cli.Children) == 0 {
		err := errors.New("no child druids given: list druids as arguments or use --input")
		fmt.Fprintln(stderr, err.Error())
		kongCtx.PrintUsage(true)
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
	settings := cfg.Settings(config.Overrides{Log: cli.Log, Debug: cli.Debug, Purge: cli.Purge})
	children := cli.Children
	if cli.Input != "" {
		children, err = ids.Read(cli.Input, stdin)
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return err
		}
	}
	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	var log *slog.Logger
	switch settings.Log {
	case "":
		log = logging.New(stderr, level)
	case logging.Stdout:
		log = logging.New(stdout, level)
	default:
		var closeLog func() error
		log, closeLog, err = logging.Open(settings.Log, level)
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return err
		}
		defer closeLog()
	}
	merge := &dormerge.Merge{
		Repo:   dorhttp.New(env),
		Purge:  settings.Purge,
		Logger: log,
	}
	report, err := merge.Run(ctx, cli.Parent, children)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return err
	}
	writeSummary(stdout, report)
	return nil
}
