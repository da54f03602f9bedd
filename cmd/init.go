package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nleclerc/dockhand/internal/ui"
	"github.com/nleclerc/dockhand/internal/wizard"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a dockhand.yml config file interactively",
	Long: `Scan the current directory for compose topology files and generate a
config file through an interactive wizard.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := "dockhand.yml"

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("%s already exists.\n", configPath)
		fmt.Print("Overwrite? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	fmt.Println(ui.Bold("Scanning environment..."))
	detection := wizard.Detect(nil, ".", 3)

	if !detection.ComposePlugin && !detection.ComposeStandalone {
		ui.Warn("no compose binary found on PATH; commands will fail until Docker is installed")
	}
	if len(detection.Candidates) == 0 {
		ui.Warn("no compose files found under the current directory")
	}

	answers, err := wizard.Run(detection, ".")
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	content, err := wizard.GenerateConfig(*answers)
	if err != nil {
		return fmt.Errorf("generating config: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	ui.Success(fmt.Sprintf("Created %s", configPath))
	fmt.Println()
	fmt.Printf("Next step: %s\n", ui.Bold("dockhand scan"))
	fmt.Printf("           %s\n", ui.Hint("then 'dockhand up' to start your services"))

	return nil
}
