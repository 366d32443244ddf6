package libtour

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/libtour/libtour/internal/version"
	"github.com/libtour/libtour/pkg/config"
	"github.com/libtour/libtour/pkg/demos"
	"github.com/libtour/libtour/pkg/logging"
	"github.com/libtour/libtour/pkg/resource"
	"github.com/libtour/libtour/pkg/singleton"
	"github.com/libtour/libtour/pkg/ui"
)

const shutdownTimeout = 5 * time.Second

// app carries what commands share: global flag values and the
// process-level collaborators tests replace.
type app struct {
	verbosity  int
	configFile string
	color      string

	fs             afero.Fs
	workDir        string
	skipUserConfig bool
	noLogFile      bool
	// resources returns the registry the singleton demo uses
	resources func(resource.RegistryOptions) *singleton.Registry[resource.Resource]
}

func defaultApp() *app {
	return &app{
		fs: afero.NewOsFs(),
		resources: func(opts resource.RegistryOptions) *singleton.Registry[resource.Resource] {
			resource.Configure(opts)
			return resource.Default()
		},
	}
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultApp())
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "libtour",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(logging.Options{
				Verbosity: a.verbosity,
				Console:   cmd.ErrOrStderr(),
				NoFile:    a.noLogFile,
			})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			if cmd.Flags().Changed("color") {
				if _, err := ui.ParseColorMode(a.color); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemos(cmd, nil)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.color, "color", "auto", MsgFlagColor)

	rootCmd.AddGroup(&cobra.Group{ID: "demos", Title: "DEMOS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	for _, cmd := range newDemoCmds(a) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newAboutCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newGenConfigCmd(a))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

func (a *app) configOptions(overrides map[string]interface{}) config.Options {
	return config.Options{
		File:           a.configFile,
		WorkDir:        a.workDir,
		SkipUserConfig: a.skipUserConfig,
		Overrides:      overrides,
	}
}

// env loads configuration and assembles what the demos run against.
func (a *app) env(cmd *cobra.Command, overrides map[string]interface{}) (*demos.Env, error) {
	cfg, err := config.Load(a.configOptions(overrides))
	if err != nil {
		return nil, err
	}

	out, err := a.printer(cmd, cfg)
	if err != nil {
		return nil, err
	}

	return &demos.Env{
		Out:    out,
		Config: cfg,
		FS:     a.fs,
		Build:  demos.Build{Version: version.Version, Commit: version.Commit, Date: version.Date},
		Resources: a.resources(resource.RegistryOptions{
			Trace: out,
			Delay: cfg.Singleton.Delay,
		}),
	}, nil
}

// printer honors --color over output.color.
func (a *app) printer(cmd *cobra.Command, cfg *config.Config) (*ui.Printer, error) {
	setting := cfg.Output.Color
	if cmd.Flags().Changed("color") {
		setting = a.color
	}
	mode, err := ui.ParseColorMode(setting)
	if err != nil {
		return nil, err
	}

	w := cmd.OutOrStdout()
	out := ui.NewPrinter(w, ui.Configure(mode, w))
	out.MarkdownStyle = cfg.Output.Style
	return out, nil
}

func (a *app) runDemos(cmd *cobra.Command, overrides map[string]interface{}, names ...string) error {
	env, err := a.env(cmd, overrides)
	if err != nil {
		return err
	}

	defer logging.LogDuration(time.Now(), "tour")

	ctx := cmd.Context()
	runErr := demos.Run(ctx, env, names...)

	// the singleton demo shuts the registry down itself; this covers early exits
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := env.Resources.Shutdown(shutdownCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// flagOverrides maps every flag the user set on cmd to its config key.
func flagOverrides(flags *pflag.FlagSet, keys map[string]string) map[string]interface{} {
	overrides := make(map[string]interface{})
	flags.VisitAll(func(f *pflag.Flag) {
		if key, ok := keys[f.Name]; ok && f.Changed {
			overrides[key] = f.Value.String()
		}
	})
	return overrides
}
