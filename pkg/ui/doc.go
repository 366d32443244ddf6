// Package ui renders libtour's terminal output: section headers, labelled
// values, tables and markdown. Colors follow the --color mode and the
// terminal's capabilities; styles are defined in styles.yaml.
package ui
