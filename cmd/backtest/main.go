package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/halcyon-lab/halcyon-trading/internal/backtest"
	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/loader"
	"github.com/halcyon-lab/halcyon-trading/internal/logger"
	"github.com/halcyon-lab/halcyon-trading/internal/strategy"
	"github.com/halcyon-lab/halcyon-trading/internal/tradelog"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// backtestAction runs the single strategy named by the run configuration
// over its dataset and prints the performance report.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadRunConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	if len(cfg.Strategies) != 1 {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"backtest takes exactly one strategy, got %d (use the compare command for batches)",
			len(cfg.Strategies))
	}

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	strat, err := strategy.DefaultRegistry().Create(
		strategy.Kind(cfg.Strategies[0].Kind), cfg.Strategies[0].Params, settings)
	if err != nil {
		return err
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

	signals, err := strat.GenerateSignals(bars)
	if err != nil {
		return err
	}

	result, err := backtest.Run(bars, signals, backtest.Options{
		InitialBalance: cfg.InitialBalance,
		Costs:          strat.Costs(),
		Granularity:    settings.Granularity,
		BarsPerSession: cfg.BarsPerSession,
		Strategy:       strat.Name(),
	})
	if err != nil {
		return err
	}

	printReport(result)

	if cfg.TradeLogPath != "" {
		if err := exportTradeLog(ctx, appLogger, cfg, result); err != nil {
			return err
		}

		log.Printf("Trade ledger exported to %s", cfg.TradeLogPath)
	}

	return nil
}

// printReport writes the performance summary to stdout.
func printReport(result *backtest.Result) {
	report := result.Report

	fmt.Printf("Strategy:          %s\n", report.Strategy)
	fmt.Printf("Final balance:     %.2f\n", report.FinalBalance)
	fmt.Printf("Total return:      %.2f%%\n", report.TotalReturn*100)
	fmt.Printf("Annualized return: %.2f%%\n", report.AnnualizedReturn*100)
	fmt.Printf("Total trades:      %d\n", report.TotalTrades)
	fmt.Printf("Win rate:          %.2f%%\n", report.WinRate*100)
	fmt.Printf("Profit factor:     %.2f\n", report.ProfitFactor)
	fmt.Printf("Sharpe ratio:      %.2f\n", report.SharpeRatio)
	fmt.Printf("Max drawdown:      %.2f%%\n", report.MaxDrawdown*100)
}

// exportTradeLog records the run in a ledger and exports it under the
// configured directory.
func exportTradeLog(ctx context.Context, appLogger *logger.Logger, cfg *config.RunConfig, result *backtest.Result) error {
	granularity, err := cfg.Settings()
	if err != nil {
		return err
	}

	ledger, err := tradelog.NewLedger(appLogger)
	if err != nil {
		return err
	}
	defer ledger.Close()

	if err := ledger.Initialize(); err != nil {
		return err
	}

	record := tradelog.RunRecord{
		Strategy:       result.Report.Strategy,
		Granularity:    granularity.Granularity,
		InitialBalance: cfg.InitialBalance,
		FinalBalance:   result.Report.FinalBalance,
		TotalReturn:    result.Report.TotalReturn,
		TotalTrades:    result.Report.TotalTrades,
	}

	if _, err := ledger.RecordRun(ctx, record, result.Trades); err != nil {
		return err
	}

	return ledger.Export(ctx, cfg.TradeLogPath)
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Run one strategy over a historical dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the YAML run configuration",
				Required: true,
			},
		},
		Action: backtestAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
