package main

import (
	"context"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/halcyon-lab/halcyon-trading/internal/backtest"
)

// resultsAction loads a results file and starts the browser TUI.
func resultsAction(ctx context.Context, cmd *cli.Command) error {
	file, err := backtest.LoadResultsFile(cmd.String("file"))
	if err != nil {
		return err
	}

	program := tea.NewProgram(NewModel(file), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "results",
		Usage: "Browse a strategy comparison results file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the results YAML written by the compare command",
				Required: true,
			},
		},
		Action: resultsAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
