package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nleclerc/dockhand/internal/config"
	"github.com/nleclerc/dockhand/internal/discover"
	"github.com/nleclerc/dockhand/internal/logger"
	"github.com/nleclerc/dockhand/internal/reconcile"
	"github.com/nleclerc/dockhand/internal/topology"
	"github.com/nleclerc/dockhand/internal/ui"
)

var (
	scanRoot     string
	scanMaxDepth int
	scanExclude  []string
	scanPolicy   string
	scanSelect   int
	scanDryRun   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover compose files and reconcile the service inventory",
	Long: `Search the project root for compose topology files, rank them, parse
the best (or selected) one, and fold the detected services into the
persisted inventory under the chosen policy.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanRoot, "root", "", "directory to search (default: configured root)")
	scanCmd.Flags().IntVar(&scanMaxDepth, "max-depth", -1, "maximum directory depth to descend")
	scanCmd.Flags().StringSliceVar(&scanExclude, "exclude", nil, "additional directory names to skip")
	scanCmd.Flags().StringVar(&scanPolicy, "policy", "", "reconciliation policy: merge, replace")
	scanCmd.Flags().IntVar(&scanSelect, "select", 0, "pick the Nth ranked candidate (1-based, default: best)")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "report changes without persisting them")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'dockhand init' to create a config file"))
		return err
	}
	applyScanOverrides(cfg)

	fmt.Println(ui.Bold(fmt.Sprintf("Scanning %s (depth %d)...", cfg.Root, cfg.MaxDepth)))

	paths, err := discover.Walk(cfg.Root, cfg.MaxDepth, cfg.Exclude)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Scan failed", err.Error(), "check that the root directory exists and is readable"))
		return err
	}

	candidates := discover.Classify(cfg.Root, paths)
	if len(candidates) == 0 {
		fmt.Println(ui.Hint("No compose files found."))
		return nil
	}

	for i, c := range candidates {
		fmt.Println(ui.CandidateLine(i+1, c.RelativePath, c.IsPrimary, len(c.ServiceNames)))
	}

	chosen := candidates[0]
	if scanSelect > 0 {
		if scanSelect > len(candidates) {
			return fmt.Errorf("--select %d out of range: only %d candidates", scanSelect, len(candidates))
		}
		chosen = candidates[scanSelect-1]
	}
	fmt.Printf("Using %s\n", ui.Bold(chosen.RelativePath))

	if len(chosen.ServiceNames) == 0 {
		ui.Warn("selected file declares no services; it may be malformed")
	}

	detected, err := topology.ParseFile(chosen.Path)
	if err != nil {
		logger.L().Debug("topology parse failed", logger.String("path", chosen.Path), logger.Err(err))
		detected = nil
	}

	current, err := config.LoadInventory(cfg.InventoryFile)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load inventory", err.Error(), ""))
		return err
	}

	result := reconcile.Reconcile(current, detected, reconcile.Policy(cfg.Policy))

	switch {
	case result.NothingDetected:
		fmt.Println(ui.Hint("No services detected; inventory left unchanged."))
		return nil
	case result.InSync():
		fmt.Println(ui.Hint("Inventory already in sync."))
		return nil
	}

	if scanDryRun {
		ui.Success(fmt.Sprintf("Would apply: %d added, %d updated, %d replaced, %d removed (dry run)",
			result.Added, result.Updated, result.Replaced, result.Removed))
		return nil
	}

	if err := config.SaveInventory(cfg.InventoryFile, result.Merged); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to save inventory", err.Error(), ""))
		return err
	}

	ui.Success(fmt.Sprintf("Reconciled %d services: %d added, %d updated, %d replaced, %d removed",
		len(result.Merged), result.Added, result.Updated, result.Replaced, result.Removed))
	return nil
}

func applyScanOverrides(cfg *config.Config) {
	if scanRoot != "" {
		cfg.Root = scanRoot
	}
	if scanMaxDepth >= 0 {
		cfg.MaxDepth = scanMaxDepth
	}
	cfg.Exclude = append(cfg.Exclude, scanExclude...)
	if scanPolicy != "" {
		cfg.Policy = scanPolicy
	}
}
