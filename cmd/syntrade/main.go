package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/syntrade-lab/syntrade/internal/api"
	"github.com/syntrade-lab/syntrade/internal/config"
	"github.com/syntrade-lab/syntrade/internal/engine"
	"github.com/syntrade-lab/syntrade/internal/logger"
	"github.com/syntrade-lab/syntrade/internal/store"
	"github.com/syntrade-lab/syntrade/internal/types"
	"github.com/urfave/cli/v3"
)

// loadConfig reads the config file when given, otherwise falls back to the
// built-in demo setup.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.Load(path)
	}

	return config.Default(), nil
}

// runAction generates, simulates, and analyzes every configured symbol.
func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	zapLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer zapLogger.Sync()

	eng := engine.NewEngine(zapLogger, cfg.Fee())
	eng.ShowProgress = true

	runs := cfg.Runs()

	results, err := eng.RunAll(runs)
	if err != nil {
		return err
	}

	for _, result := range results {
		fmt.Println(renderReport(result))
	}

	if output := cmd.String("output"); output != "" {
		reports := make([]types.MetricsReport, 0, len(results))
		for i, result := range results {
			reports = append(reports, result.Report(runs[i]))
		}

		if err := types.WriteMetricsReport(output, reports); err != nil {
			return err
		}

		fmt.Printf("Metrics report written to %s\n", output)
	}

	if exportDir := cmd.String("export"); exportDir != "" {
		if err := exportResults(zapLogger, results, exportDir); err != nil {
			return err
		}

		fmt.Printf("Artifacts exported to %s\n", exportDir)
	}

	return nil
}

// exportResults writes all run artifacts to parquet files via the store.
func exportResults(log *logger.Logger, results []*engine.Result, dir string) error {
	resultStore, err := store.NewResultStore(log)
	if err != nil {
		return err
	}
	defer resultStore.Close()

	for _, result := range results {
		if err := resultStore.SaveResult(result); err != nil {
			return err
		}
	}

	for _, table := range []string{"bars", "equity", "trades"} {
		if err := resultStore.ExportParquet(table, filepath.Join(dir, table+".parquet")); err != nil {
			return err
		}
	}

	return nil
}

// serveAction runs the HTTP service with memoized results.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	zapLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer zapLogger.Sync()

	eng := engine.NewEngine(zapLogger, cfg.Fee())
	cache := engine.NewResultCache(eng)

	return api.NewServer(cache, zapLogger).ListenAndServe(cmd.String("addr"))
}

// schemaAction prints the JSON schema of the run config.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	schema, err := (&config.Config{}).GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "syntrade",
		Usage: "Deterministic synthetic backtesting engine",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the pipeline for every configured symbol",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the run config yaml. Defaults to the built-in demo setup.",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write the yaml metrics report",
					},
					&cli.StringFlag{
						Name:    "export",
						Aliases: []string{"e"},
						Usage:   "Directory to export bar/equity/trade parquet artifacts",
					},
				},
				Action: runAction,
			},
			{
				Name:  "serve",
				Usage: "Serve the pipeline over HTTP with memoized results",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the run config yaml (selects the commission model)",
					},
				},
				Action: serveAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema for the run config",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
