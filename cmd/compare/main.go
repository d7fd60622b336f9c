package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/halcyon-lab/halcyon-trading/internal/backtest"
	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/loader"
	"github.com/halcyon-lab/halcyon-trading/internal/logger"
	"github.com/halcyon-lab/halcyon-trading/internal/strategy"
)

// compareAction runs every strategy of the run configuration over one
// dataset, prints a ranked table and optionally persists a results file.
func compareAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadRunConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	registry := strategy.DefaultRegistry()

	strategies := make([]strategy.Strategy, len(cfg.Strategies))
	for i, sc := range cfg.Strategies {
		strategies[i], err = registry.Create(strategy.Kind(sc.Kind), sc.Params, settings)
		if err != nil {
			return err
		}
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	barLoader, err := loader.NewLoader(appLogger)
	if err != nil {
		return err
	}
	defer barLoader.Close()

	bars, err := barLoader.Load(cfg.DataPath)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(strategies),
		progressbar.OptionSetDescription("Comparing strategies"),
		progressbar.OptionShowCount(),
	)

	outcomes := backtest.Compare(ctx, strategies, bars, backtest.CompareOptions{
		InitialBalance: cfg.InitialBalance,
		BarsPerSession: cfg.BarsPerSession,
		Parallelism:    cfg.Parallelism,
		OnProgress: optional.Some(func(completed, total int) {
			_ = bar.Set(completed)
		}),
	})

	_ = bar.Finish()
	fmt.Println()

	results := backtest.NewResultsFile(cfg.DataPath, settings.Granularity, len(bars), outcomes)
	results.SortByTotalReturn()

	printRanking(results)

	if cfg.ResultsPath != "" {
		if err := results.Save(cfg.ResultsPath); err != nil {
			return err
		}

		log.Printf("Results written to %s", cfg.ResultsPath)
	}

	return nil
}

// printRanking writes the ranked comparison table to stdout.
func printRanking(results *backtest.ResultsFile) {
	fmt.Printf("%-4s %-45s %12s %10s %10s %10s\n",
		"#", "Strategy", "Return", "Sharpe", "Trades", "Win rate")

	for i, result := range results.Results {
		if result.Report == nil {
			fmt.Printf("%-4d %-45s failed: %s\n", i+1, result.Strategy, result.Error)

			continue
		}

		fmt.Printf("%-4d %-45s %11.2f%% %10.2f %10d %9.2f%%\n",
			i+1,
			result.Strategy,
			result.Report.TotalReturn*100,
			result.Report.SharpeRatio,
			result.Report.TotalTrades,
			result.Report.WinRate*100,
		)
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "compare",
		Usage: "Run many strategies over one dataset and rank the results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the YAML run configuration",
				Required: true,
			},
		},
		Action: compareAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
