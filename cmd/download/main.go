package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/halcyon-lab/halcyon-trading/pkg/marketdata"
)

// downloadAction parses the flags, builds the market data client and runs
// the download.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	ticker := cmd.String("ticker")
	startDate := cmd.Timestamp("start")
	endDate := cmd.Timestamp("end")
	providerFlag := cmd.String("provider")
	writerFlag := cmd.String("writer")
	dataPath := cmd.String("data")

	timespan, err := marketdata.ParseTimespan(cmd.String("interval"))
	if err != nil {
		return err
	}

	clientConfig := marketdata.ClientConfig{
		ProviderType:    marketdata.ProviderType(providerFlag),
		WriterType:      marketdata.WriterType(writerFlag),
		DataPath:        dataPath,
		PolygonAPIKey:   os.Getenv("POLYGON_API_KEY"),
		AlpacaAPIKey:    os.Getenv("ALPACA_API_KEY"),
		AlpacaAPISecret: os.Getenv("ALPACA_API_SECRET"),
	}

	client, err := marketdata.NewClient(clientConfig, nil)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	downloadParams := marketdata.DownloadParams{
		Ticker:      ticker,
		StartDate:   startDate,
		EndDate:     endDate,
		Granularity: timespan.Granularity(),
	}

	log.Printf("Starting download for %s from %s to %s using %s provider and %s writer...",
		ticker, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), providerFlag, writerFlag)

	outputPath, err := client.Download(ctx, downloadParams)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	log.Printf("Download completed: %s", outputPath)

	return nil
}

func main() {
	// .env carries the vendor API keys during development; missing is fine.
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "download",
		Usage: "Download historical market data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "ticker",
				Aliases:  []string{"t"},
				Usage:    "Ticker or trading pair symbol",
				Required: true,
			},
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start date in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
				Required: true,
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date in `YYYY-MM-DD` format. Defaults to today.",
				Value:   time.Now(),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage: fmt.Sprintf("Bar interval (%s or %s)",
					marketdata.TimespanOneDay, marketdata.TimespanOneMinute),
				Value: string(marketdata.TimespanOneDay),
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage: fmt.Sprintf("Data provider to use (e.g., %s, %s, %s)",
					marketdata.ProviderPolygon, marketdata.ProviderBinance, marketdata.ProviderAlpaca),
				Value: string(marketdata.ProviderPolygon),
			},
			&cli.StringFlag{
				Name:    "writer",
				Aliases: []string{"w"},
				Usage: fmt.Sprintf("Data writer format (%s or %s)",
					marketdata.WriterDuckDB, marketdata.WriterParquet),
				Value: string(marketdata.WriterDuckDB),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the data output directory",
				Value:   "data",
			},
		},
		Action: downloadAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
