// Package paths locates libtour's files. Directories follow the XDG Base
// Directory specification through github.com/adrg/xdg:
//
//   - config: $XDG_CONFIG_HOME/libtour (config.toml)
//   - state:  $XDG_STATE_HOME/libtour (libtour.log)
//
// xdg reads the environment once; call xdg.Reload after changing it.
package paths
