package main

import (
	"context"
	"fmt"
	"os"

	"github.com/deepch/ebml/format/saz"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:      "sazdump",
		Usage:     "List the blocks of a WebM response or the segment index of an MP4 response in a session archive",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "archive", Aliases: []string{"a"}, Usage: "path to .saz archive", Required: true},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "TOML config file"},
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "media kind: video or audio", Value: "video"},
			&cli.IntFlag{Name: "index", Aliases: []string{"n"}, Usage: "0-based position among matching media"},
			&cli.StringFlag{Name: "index-page", Usage: "archive entry holding the session table", Value: saz.IndexPage},
			&cli.BoolFlag{Name: "json", Usage: "print the report as JSON"},
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	cfg := defaultConfig()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = loadConfig(path, cfg); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}
	if cmd.IsSet("kind") {
		cfg.Kind = cmd.String("kind")
	}
	if cmd.IsSet("index") {
		cfg.Index = cmd.Int("index")
	}
	if cmd.IsSet("index-page") {
		cfg.IndexPage = cmd.String("index-page")
	}
	if cmd.IsSet("json") {
		cfg.JSON = cmd.Bool("json")
	}
	if cmd.IsSet("verbose") {
		cfg.Verbose = cmd.Bool("verbose")
	}

	kind, err := cfg.validate()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	runID := uuid.NewString()
	logger := initLogger("sazdump", runID, cfg.Verbose)

	path := cmd.String("archive")
	a, err := saz.Open(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer func() { _ = a.Close() }()

	report, err := dump(a, kind, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Str("archive", path).Msg("dump failed")
		return cli.Exit(err.Error(), 1)
	}
	report.RunID = runID
	report.Archive = path

	if cfg.JSON {
		return report.writeJSON(os.Stdout)
	}
	report.writeText(os.Stdout)
	return nil
}
