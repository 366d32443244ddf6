package libtour

import (
	_ "embed"
)

//go:embed about.md
var MsgAbout string

const (
	MsgRootShort = "A tour of library features"
	MsgRootLong  = `libtour demonstrates version reporting, serialization, seeded random numbers,
shared ownership and a process-wide singleton under contention.

Run without a command to take the whole tour.`

	MsgListShort      = "List demos in tour order"
	MsgAboutShort     = "Describe the tour"
	MsgConfigShort    = "Print the effective configuration"
	MsgGenConfigShort = "Print or write the default configuration"
	MsgManShort       = "Generate man page"

	MsgCompletionShort = "Generate shell completion script"
	MsgCompletionLong  = `To load completions:

Bash:
  $ source <(libtour completion bash)

Zsh:
  $ libtour completion zsh > "${fpath[1]}/_libtour"

Fish:
  $ libtour completion fish | source

PowerShell:
  PS> libtour completion powershell | Out-String | Invoke-Expression
`

	MsgGenConfigExample = `  libtour genconfig        # Output to stdout
  libtour genconfig -w     # Write to ./libtour.toml`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default ./libtour.toml if present)"
	MsgFlagColor   = "Color output: auto, always or never"

	MsgFlagSeed         = "Random seed"
	MsgFlagCount        = "Number of samples"
	MsgFlagDistribution = "Distribution: normal or uniform"
	MsgFlagMean         = "Mean of the normal distribution"
	MsgFlagStdDev       = "Standard deviation of the normal distribution"
	MsgFlagMin          = "Lower bound of the uniform distribution"
	MsgFlagMax          = "Upper bound of the uniform distribution"

	MsgFlagFile   = "Archive file path"
	MsgFlagFormat = "Archive format: binary, text or xml"

	MsgFlagWorkers    = "Worker goroutines contending with main"
	MsgFlagIterations = "Acquisitions per goroutine"
	MsgFlagInterval   = "Pause before each acquisition"
	MsgFlagDelay      = "Time the constructor takes"

	MsgFlagConfigFormat = "Output format: toml or yaml"
	MsgFlagWrite        = "Write to ./libtour.toml instead of stdout"
	MsgFlagForce        = "Overwrite an existing file"

	MsgWroteConfig = "Wrote %s\n"
)
