package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nleclerc/dockhand/internal/compose"
	"github.com/nleclerc/dockhand/internal/config"
	"github.com/nleclerc/dockhand/internal/ui"
)

// Thin delegation verbs. dockhand adds nothing here beyond the
// configured topology file and service-name validation; lifecycle
// semantics stay with the compose binary.

var upDetach bool

var upCmd = &cobra.Command{
	Use:   "up [services...]",
	Short: "Start services via the compose binary",
	RunE: func(cmd *cobra.Command, args []string) error {
		composeArgs := []string{"up"}
		if upDetach {
			composeArgs = append(composeArgs, "-d")
		}
		return delegate(cmd, append(composeArgs, args...))
	},
}

var downCmd = &cobra.Command{
	Use:   "down [services...]",
	Short: "Stop services via the compose binary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return delegate(cmd, append([]string{"down"}, args...))
	},
}

var logsFollow bool

var logsCmd = &cobra.Command{
	Use:   "logs [services...]",
	Short: "Show service logs via the compose binary",
	RunE: func(cmd *cobra.Command, args []string) error {
		composeArgs := []string{"logs"}
		if logsFollow {
			composeArgs = append(composeArgs, "-f")
		}
		return delegate(cmd, append(composeArgs, args...))
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart [services...]",
	Short: "Restart services via the compose binary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return delegate(cmd, append([]string{"restart"}, args...))
	},
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd, logsCmd, restartCmd)
	upCmd.Flags().BoolVarP(&upDetach, "detach", "d", true, "run containers in the background")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output")
}

func delegate(cmd *cobra.Command, composeArgs []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'dockhand init' to create a config file"))
		return err
	}

	if err := validateServiceArgs(cfg, composeArgs[1:]); err != nil {
		return err
	}

	runner, err := compose.NewRunner(cfg.TopologyFile, cfg.ComposeBin)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Compose not available", err.Error(), "install Docker with the compose plugin"))
		return err
	}

	return runner.RunAttached(cmd.Context(), composeArgs...)
}

// validateServiceArgs warns about service names absent from the
// reconciled inventory before the compose binary rejects them.
func validateServiceArgs(cfg *config.Config, names []string) error {
	inv, err := config.LoadInventory(cfg.InventoryFile)
	if err != nil || len(inv) == 0 {
		return nil // nothing persisted yet; let the compose binary decide
	}
	for _, name := range names {
		if len(name) > 0 && name[0] == '-' {
			continue
		}
		if _, ok := inv[name]; !ok {
			ui.Warn(fmt.Sprintf("service %q is not in the reconciled inventory (run 'dockhand scan'?)", name))
		}
	}
	return nil
}
