package demos

import (
	"context"

	"github.com/libtour/libtour/pkg/buildinfo"
)

func init() {
	Register(Demo{
		Name:    "version",
		Summary: "Report libtour, Go and library versions",
		Order:   10,
		Run:     runVersion,
	})
}

func runVersion(_ context.Context, env *Env) error {
	report := buildinfo.Collect(env.Build.Version, env.Build.Commit, env.Build.Date)
	out := env.Out

	out.Header("Versions")
	out.Field("libtour", report.Tool)
	out.Field("commit", report.Commit)
	out.Field("built", report.Date)
	if report.Go != nil {
		out.Line("Using Go %d.%d.%d", report.Go.Major, report.Go.Minor, report.Go.Patch)
	} else {
		out.Line("Using Go %s", report.GoVersion)
	}

	if len(report.Modules) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(report.Modules))
	for _, m := range report.Modules {
		parsed := "-"
		if m.Parsed != nil {
			parsed = m.Parsed.String()
		}
		rows = append(rows, []string{m.Path, m.Version, parsed})
	}
	return out.Table([]string{"module", "version", "semver"}, rows)
}
