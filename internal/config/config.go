package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/krepel-labs/krepel-new/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyKrepelDir = "krepel_dir"
	KeyTemplate  = "template"
)

var knownKeys = []string{KeyKrepelDir, KeyTemplate}

// Dir returns the path to the config directory (~/.krepel/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.krepel/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// It may be called more than once; each call starts from a clean slate.
func Load() {
	viper.Reset()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// KREPEL_DIR predates the config file, keep the short name.
	_ = viper.BindEnv(KeyKrepelDir, branding.EnvVar("dir"))
	viper.SetDefault(KeyTemplate, branding.DefaultTemplate())

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// KrepelDir returns the configured template source root, if any.
func KrepelDir() string {
	return viper.GetString(KeyKrepelDir)
}

// Template returns the configured default template set name.
func Template() string {
	return viper.GetString(KeyTemplate)
}

// IsKnownKey reports whether key is a setting this tool reads.
func IsKnownKey(key string) bool {
	return slices.Contains(knownKeys, key)
}

// Keys returns the recognized configuration keys.
func Keys() []string {
	return slices.Clone(knownKeys)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %v)", key, knownKeys)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
