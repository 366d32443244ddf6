package libtour

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/libtour/libtour/internal/version"
	"github.com/libtour/libtour/pkg/config"
	"github.com/libtour/libtour/pkg/demos"
	"github.com/libtour/libtour/pkg/errors"
)

// demoFlags declares a demo's flags with defaults from d and returns the
// config key of each flag.
type demoFlags func(cmd *cobra.Command, d *config.Config) map[string]string

func newDemoCmds(a *app) []*cobra.Command {
	flags := map[string]demoFlags{
		"random":    randomFlags,
		"serialize": serializeFlags,
		"singleton": singletonFlags,
	}
	defaults := config.Default()

	var cmds []*cobra.Command
	for _, d := range demos.Ordered() {
		name := d.Name
		cmd := &cobra.Command{
			Use:     name,
			Short:   d.Summary,
			GroupID: "demos",
			Args:    cobra.NoArgs,
		}
		var keys map[string]string
		if declare, ok := flags[name]; ok {
			keys = declare(cmd, defaults)
		}
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			return a.runDemos(cmd, flagOverrides(cmd.Flags(), keys), name)
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func randomFlags(cmd *cobra.Command, d *config.Config) map[string]string {
	f := cmd.Flags()
	f.Uint64("seed", d.Random.Seed, MsgFlagSeed)
	f.Int("count", d.Random.Count, MsgFlagCount)
	f.String("distribution", d.Random.Distribution, MsgFlagDistribution)
	f.Float64("mean", d.Random.Mean, MsgFlagMean)
	f.Float64("stddev", d.Random.StdDev, MsgFlagStdDev)
	f.Int("min", d.Random.Min, MsgFlagMin)
	f.Int("max", d.Random.Max, MsgFlagMax)
	return map[string]string{
		"seed":         "random.seed",
		"count":        "random.count",
		"distribution": "random.distribution",
		"mean":         "random.mean",
		"stddev":       "random.stddev",
		"min":          "random.min",
		"max":          "random.max",
	}
}

func serializeFlags(cmd *cobra.Command, d *config.Config) map[string]string {
	f := cmd.Flags()
	f.String("file", d.Archive.Path, MsgFlagFile)
	f.String("format", d.Archive.Format, MsgFlagFormat)
	return map[string]string{
		"file":   "archive.path",
		"format": "archive.format",
	}
}

func singletonFlags(cmd *cobra.Command, d *config.Config) map[string]string {
	f := cmd.Flags()
	f.Int("workers", d.Singleton.Workers, MsgFlagWorkers)
	f.Int("iterations", d.Singleton.Iterations, MsgFlagIterations)
	f.Duration("interval", d.Singleton.Interval, MsgFlagInterval)
	f.Duration("delay", d.Singleton.Delay, MsgFlagDelay)
	return map[string]string{
		"workers":    "singleton.workers",
		"iterations": "singleton.iterations",
		"interval":   "singleton.interval",
		"delay":      "singleton.delay",
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configOptions(nil))
			if err != nil {
				return err
			}
			out, err := a.printer(cmd, cfg)
			if err != nil {
				return err
			}

			var rows [][]string
			for i, d := range demos.Ordered() {
				rows = append(rows, []string{strconv.Itoa(i + 1), d.Name, d.Summary})
			}
			return out.Table([]string{"#", "demo", "summary"}, rows)
		},
	}
}

func newAboutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "about",
		Short:   MsgAboutShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configOptions(nil))
			if err != nil {
				return err
			}
			out, err := a.printer(cmd, cfg)
			if err != nil {
				return err
			}
			return out.Markdown(MsgAbout)
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := config.LoadKoanf(a.configOptions(nil))
			if err != nil {
				return err
			}
			// reject what the demos would reject before printing it
			if _, err := config.Unmarshal(k); err != nil {
				return err
			}
			rendered, err := config.Render(k, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(rendered)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", MsgFlagConfigFormat)
	return cmd
}

func newGenConfigCmd(a *app) *cobra.Command {
	var write, force bool
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.DefaultContent()
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			path := filepath.Join(a.workDir, config.ProjectFileName)
			exists, err := afero.Exists(a.fs, path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileRead, "cannot check %s", path)
			}
			if exists && !force {
				return errors.Newf(errors.ErrAlreadyExists, "%s already exists, use --force to overwrite", path).
					WithDetail("path", path)
			}
			if err := afero.WriteFile(a.fs, path, []byte(content), 0o644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgWroteConfig, path)
			return err
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
}

// ManHeader is shared by `libtour man` and the libtour-manpage tool.
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "LIBTOUR",
		Section: "1",
		Source:  "libtour " + version.Version,
		Manual:  "libtour manual",
	}
}
