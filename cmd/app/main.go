package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/dagaz/internal"
	pkgconfig "github.com/starford/dagaz/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runRun(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunOnce(ctx, cmd.Bool("force"), cmd.Bool("dry-run"), internal.WithConfig(cfg))
}

func runDaemon(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Run(ctx, internal.WithConfig(cfg))
}

func runInit(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.InitRepo(ctx, internal.WithConfig(cfg))
}

func runStatus(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	info, err := internal.Status(ctx, internal.WithConfig(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("Repo:  %s\n", info.RepoPath)
	fmt.Printf("Index: %s\n", info.IndexFile)
	fmt.Printf("Notes: %d\n", info.NoteCount)
	if len(info.RecentRuns) == 0 {
		fmt.Println("Runs:  none recorded")
		return nil
	}
	fmt.Println("Recent runs:")
	for _, r := range info.RecentRuns {
		fmt.Printf("  %s  %-10s %-12s %s\n", r.Date, r.Status, r.Category, r.Title)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "dagaz",
		Usage: "Daily AI-generated learning notes with a categorized repository index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "config/config.yaml",
				Sources: cli.EnvVars("DAGAZ_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Execute one generation run",
				Action: runRun,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Run even when the ledger already has a row for today",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Generate and classify without writing anything",
					},
				},
			},
			{
				Name:   "daemon",
				Usage:  "Run on the configured cron schedule until interrupted",
				Action: runDaemon,
			},
			{
				Name:   "init",
				Usage:  "Scaffold the notes repository and seeded index document",
				Action: runInit,
			},
			{
				Name:   "status",
				Usage:  "Show note count and recent runs",
				Action: runStatus,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
