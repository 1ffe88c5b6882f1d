package splashgen

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bootsplash/splashgen/internal/version"
	"github.com/bootsplash/splashgen/pkg/build"
	"github.com/bootsplash/splashgen/pkg/config"
	"github.com/bootsplash/splashgen/pkg/daemonconf"
	"github.com/bootsplash/splashgen/pkg/filesystem"
	"github.com/bootsplash/splashgen/pkg/lifecycle"
	"github.com/bootsplash/splashgen/pkg/repository"
	"github.com/bootsplash/splashgen/pkg/resolver"
	"github.com/bootsplash/splashgen/pkg/types"
	"github.com/bootsplash/splashgen/pkg/ui"
)

// parseEnvs turns the --env flag into the list of assembly passes
func parseEnvs(flag string) ([]types.TargetEnvironment, error) {
	if flag == "both" {
		return []types.TargetEnvironment{types.EnvFull, types.EnvMinimal}, nil
	}
	env, err := types.ParseEnvironment(flag)
	if err != nil {
		return nil, err
	}
	return []types.TargetEnvironment{env}, nil
}

func newBuildCmd(configPath *string) *cobra.Command {
	var envFlag string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble the destination tree(s) for the selected theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			envs, err := parseEnvs(envFlag)
			if err != nil {
				return err
			}

			result, err := build.Run(build.Request{
				Config: cfg,
				FS:     filesystem.NewOS(),
				Envs:   envs,
			})
			if err != nil {
				return err
			}

			for _, missing := range result.Missing {
				ui.Warningf(os.Stderr, "theme %q referenced by %q is not in the repository; the assembled tree keeps a dangling reference",
					missing.Theme, missing.ReferencedBy)
			}
			for _, env := range envs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s tree assembled at %s\n", env, result.Roots[env])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&envFlag, "env", "both", "Target environment to assemble (full, minimal or both)")
	return cmd
}

func newResolveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [theme]",
		Short: "Print the theme closure a selection resolves to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			theme := cfg.Splash.Theme
			if len(args) == 1 {
				theme = args[0]
			}

			fsys := filesystem.NewOS()
			ctx := cfg.BuildContext(fsys)
			ix, err := repository.Build(fsys, ctx.ThemesDir, cfg.Splash.ThemePackages...)
			if err != nil {
				return err
			}
			result, err := resolver.Resolve(ctx, ix, theme)
			if err != nil {
				return err
			}

			for _, missing := range result.Missing {
				ui.Warningf(os.Stderr, "theme %q referenced by %q is not in the repository",
					missing.Theme, missing.ReferencedBy)
			}
			for _, name := range result.Set.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newGenconfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: "Render the daemon configuration for the current selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(daemonconf.Render(cfg.Options()))
			return err
		},
	}
}

func newWireupCmd(configPath *string) *cobra.Command {
	var envFlag string

	cmd := &cobra.Command{
		Use:   "wireup",
		Short: "Print the lifecycle manifest for an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			env, err := types.ParseEnvironment(envFlag)
			if err != nil {
				return err
			}

			ctx := cfg.BuildContext(filesystem.NewOS())
			data, err := lifecycle.BuildManifest(ctx, env).Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&envFlag, "env", "full", "Target environment (full or minimal)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "splashgen %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
