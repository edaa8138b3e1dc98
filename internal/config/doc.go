// Package config manages user-level settings stored at ~/.krepel/config.yaml.
// It resolves the template source root and default template set, layering the
// config file under environment variables such as KREPEL_DIR.
package config
