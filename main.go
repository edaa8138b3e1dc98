package main

import (
	"fmt"
	"os"

	"github.com/krepel-labs/krepel-new/internal/cli"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := cli.Execute(version, commit, date); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
