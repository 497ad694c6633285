// Package config handles configuration management for homebrew-automation.
//
// Values are layered, later sources winning:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. a config file, TOML or YAML
//  3. HOMEBREW_AUTOMATION_* environment variables
//  4. command-line flags the user set explicitly
package config
