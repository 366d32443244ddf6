// Package config loads libtour's configuration.
//
// Sources are merged in order, later ones winning: the embedded defaults,
// the user file under the XDG config directory, the project file
// (libtour.toml or an explicit path), LIBTOUR_ environment variables and
// finally explicit flag overrides.
package config
