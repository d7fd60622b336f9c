package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/halcyon-lab/halcyon-trading/internal/api"
	"github.com/halcyon-lab/halcyon-trading/internal/logger"
	"github.com/halcyon-lab/halcyon-trading/internal/strategy"
)

// serveAction starts the HTTP API.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	server, err := api.NewServer(appLogger, strategy.DefaultRegistry())
	if err != nil {
		return err
	}
	defer server.Close()

	addr := fmt.Sprintf(":%d", cmd.Int("port"))
	appLogger.Info("starting API server", zap.String("addr", addr))

	return server.Router.Run(addr)
}

func main() {
	cmd := &cli.Command{
		Name:  "serve",
		Usage: "Serve the backtesting HTTP API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
				Value:   8080,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable gin debug mode",
			},
		},
		Action: serveAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
