package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/graph"
	"git.home.luguber.info/inful/sitebuilder/internal/linkdb"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/paths"
	"git.home.luguber.info/inful/sitebuilder/internal/rewrite"
	"git.home.luguber.info/inful/sitebuilder/internal/server"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct{} `cmd:"" help:"Build the site into the configured output directory"`

	Serve struct{} `cmd:"" help:"Build, then serve the site with rebuild-on-change"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Graph struct {
		Output string `short:"o" help:"SQLite database path" default:"links.sqlite"`
	} `cmd:"" help:"Export documents and the link graph to a SQLite database"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	buildID := uuid.NewString()
	slog.Debug("Starting", logfields.BuildID(buildID))

	// Execute command
	switch ctx.Command() {
	case "build":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		if err := runBuild(cfg, buildID); err != nil {
			slog.Error("Build failed", logfields.BuildID(buildID), logfields.Error(err))
			os.Exit(1)
		}
	case "serve":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		if err := runServe(cfg); err != nil {
			slog.Error("Serve failed", logfields.Error(err))
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", logfields.Error(err))
			os.Exit(1)
		}
		slog.Info("Configuration written", logfields.Path(CLI.Config))
	case "graph":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		if err := runGraph(cfg, CLI.Graph.Output); err != nil {
			slog.Error("Graph export failed", logfields.Error(err))
			os.Exit(1)
		}
	}
}

func runBuild(cfg *config.Config, buildID string) error {
	slog.Info("Building site", logfields.BuildID(buildID), logfields.Path(cfg.Output.Directory))
	builder := site.NewBuilder(cfg, metrics.NoopRecorder{})
	return builder.Build(context.Background())
}

func runServe(cfg *config.Config) error {
	reg := prom.NewRegistry()
	builder := site.NewBuilder(cfg, metrics.NewPrometheusRecorder(reg))
	srv := server.New(cfg, builder, reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func runGraph(cfg *config.Config, dbPath string) error {
	docs, err := content.LoadTree(cfg.Content.Dir)
	if err != nil {
		return err
	}
	rw := rewrite.New(paths.NewResolver(paths.NewIndex(cfg.Content.Dir)))
	g := graph.Collect(docs, rw)

	if err := linkdb.Export(dbPath, docs, g); err != nil {
		return err
	}
	slog.Info("Link graph exported", logfields.Path(dbPath), logfields.Count(g.Len()))
	return nil
}
