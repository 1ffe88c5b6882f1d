// Package splashgen wires the command-line interface for the
// boot-splash asset assembler.
package splashgen

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bootsplash/splashgen/internal/version"
	"github.com/bootsplash/splashgen/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "splashgen",
		Short: "Boot-splash asset assembler",
		Long: `splashgen assembles the boot-splash daemon's asset trees from a single
theme selection: it resolves inter-theme dependencies, rewrites embedded
build-store paths, produces both the full-system and the early-boot
destination trees, and declares how the daemon's units map onto init
targets.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the selection file (default: $SPLASHGEN_CONFIG, then ./splashgen.toml)")

	rootCmd.AddCommand(newBuildCmd(&configPath))
	rootCmd.AddCommand(newResolveCmd(&configPath))
	rootCmd.AddCommand(newGenconfigCmd(&configPath))
	rootCmd.AddCommand(newWireupCmd(&configPath))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
