// Package configs embeds the configuration templates written by
// `wordrank config init`.
//
// Template files:
//   - user-config.example.yaml: machine-wide settings, written to
//     ~/.config/wordrank/config.yaml
//   - project-config.example.yaml: per-directory settings, written to
//     .wordrank.yaml with --project
//
// Both must decode cleanly into internal/config.Config; the config package
// tests load them.
package configs

import _ "embed"

// UserConfigTemplate is the template for the user configuration file.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is the template for .wordrank.yaml.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
