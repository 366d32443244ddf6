package libtour

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/libtour/libtour/pkg/errors"
)

// GenCompletion writes the completion script for shell.
func GenCompletion(root *cobra.Command, shell string, w io.Writer) error {
	var err error
	switch shell {
	case "bash":
		err = root.GenBashCompletionV2(w, true)
	case "zsh":
		err = root.GenZshCompletion(w)
	case "fish":
		err = root.GenFishCompletion(w, true)
	case "powershell":
		err = root.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell %q", shell).
			WithDetail("supported", []string{"bash", "zsh", "fish", "powershell"})
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to generate %s completion", shell)
	}
	return nil
}
