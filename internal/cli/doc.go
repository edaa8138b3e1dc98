// Package cli defines the Cobra command tree for the krepel-new CLI. The root
// command creates a project; the version and config subcommands report build
// info and manage user settings. Commands only parse flags, format output, and
// map errors to exit behavior; the work happens in internal/scaffold.
package cli
