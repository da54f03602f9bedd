package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nleclerc/dockhand/internal/compose"
	"github.com/nleclerc/dockhand/internal/config"
	"github.com/nleclerc/dockhand/internal/logger"
	"github.com/nleclerc/dockhand/internal/status"
	"github.com/nleclerc/dockhand/internal/ui"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show normalized status for the project's services",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusFormat, "format", "", "source format hint: json, table")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'dockhand init' to create a config file"))
		return err
	}

	runner, err := compose.NewRunner(cfg.TopologyFile, cfg.ComposeBin)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Compose not available", err.Error(), "install Docker with the compose plugin"))
		return err
	}

	raw, hint, err := runner.PS(cmd.Context())
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Status query failed", err.Error(), ""))
		return err
	}

	if statusFormat != "" {
		hint = status.FormatHint(statusFormat)
	}

	records := status.Normalize(raw, hint)
	logger.L().Debug("status normalized", logger.Int("records", len(records)), logger.String("hint", string(hint)))

	fmt.Print(ui.StatusTable(records))
	return nil
}
