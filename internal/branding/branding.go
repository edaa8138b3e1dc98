// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only has to edit that one file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	DefaultTemplate string `yaml:"default_template"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:         "krepel-new",
			DisplayName:     "krepel",
			Description:     "Create a new project that uses the krepel engine",
			HomeDir:         ".krepel",
			EnvPrefix:       "KREPEL",
			DefaultTemplate: "project",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "krepel-new").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable engine name (e.g., "krepel").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".krepel").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "KREPEL").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DefaultTemplate returns the template set used when none is requested.
func DefaultTemplate() string { load(); return defaults.DefaultTemplate }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("dir") → "KREPEL_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
