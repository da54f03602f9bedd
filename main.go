package main

import (
	"os"

	"github.com/nleclerc/dockhand/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
