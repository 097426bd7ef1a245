// Package config loads the valveflow YAML configuration file.
//
// Every field is optional; Load applies per-mode defaults (30 minutes and
// prune rate 0.74 for one agent, 26 minutes and 0.89 for two) and then
// validates. Command-line flags override file values.
package config
