package main

import (
	"os"

	"github.com/bootsplash/splashgen/cmd/splashgen"
	"github.com/bootsplash/splashgen/pkg/ui"
)

func main() {
	rootCmd := splashgen.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		ui.Errorf(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
