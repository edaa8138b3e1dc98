package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/krepel-labs/krepel-new/internal/branding"
	"github.com/krepel-labs/krepel-new/internal/config"
	"github.com/krepel-labs/krepel-new/internal/scaffold"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbosity int

	createName      string
	createForce     bool
	createKrepelDir string
	createTemplate  string
	createVars      []string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <dest-dir>",
	Short: branding.Description(),
	Long: `Create a new project that uses the ` + branding.DisplayName() + ` engine.

The project is generated from a template set below <krepel-dir>/templates.
Every file's contents and relative path may contain placeholders such as
~friendly_name, ~cmake_name, ~krepel_dir, ~template_dir and ~dest_dir
(or ~{name} when followed by identifier characters; ~~ is a literal tilde).

If the destination exists you are asked before it is deleted and recreated.

Examples:
  ` + branding.CLIName() + ` ../space-game
  ` + branding.CLIName() + ` ./out --name "Space Game" -k /opt/krepel
  ` + branding.CLIName() + ` ./out --force --template library --set engine_lib=krEngine`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbosity == 1 {
			level = zerolog.DebugLevel
		} else if verbosity >= 2 {
			level = zerolog.TraceLevel
		}
		log.Logger = log.Logger.Level(level)
	},
	RunE: runCreate,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "verbose output (repeat for more)")

	f := rootCmd.Flags()
	f.StringVar(&createName, "name", "", "Friendly name for the project (default: base name of <dest-dir>)")
	f.BoolVar(&createForce, "force", false, "Overwrite an existing destination without asking")
	f.StringVarP(&createKrepelDir, "krepel-dir", "k", "", "Template source root (default: $"+branding.EnvVar("dir")+")")
	f.StringVarP(&createTemplate, "template", "t", "", "Template set below <krepel-dir>/templates (default: "+branding.DefaultTemplate()+")")
	f.StringArrayVar(&createVars, "set", nil, "Extra placeholder value as key=value (repeatable; the value may contain commas)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return run()
}

// run executes the command tree. With -v the full error chain, stack traces
// included, is logged before the error is handed back for printing.
func run() error {
	err := rootCmd.Execute()
	if ev := log.Debug(); err != nil && ev.Enabled() {
		ev.Msg(errorDetail(err))
	}
	return err
}

// errorDetail renders err with every wrapping layer and any stack trace
// recorded along the chain.
func errorDetail(err error) string {
	return fmt.Sprintf("%+v", errors.Formattable(err))
}

// parseVars turns repeated key=value flags into a mapping. Only the first
// "=" separates key from value.
func parseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set value %q: want key=value", pair)
		}
		vars[key] = value
	}
	return vars, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	config.Load()
	out := cmd.OutOrStdout()

	dest := args[0]
	name := createName
	if name == "" {
		abs, err := filepath.Abs(dest)
		if err != nil {
			return fmt.Errorf("resolving destination %s: %w", dest, err)
		}
		name = filepath.Base(abs)
	}
	if _, _, err := scaffold.DeriveNames(name); err != nil {
		return err
	}
	vars, err := parseVars(createVars)
	if err != nil {
		return err
	}

	krepelDir := createKrepelDir
	if krepelDir == "" {
		krepelDir = config.KrepelDir()
	}
	if krepelDir == "" {
		return fmt.Errorf("%w: pass --krepel-dir or set %s", scaffold.ErrNoTemplateSource, branding.EnvVar("dir"))
	}
	template := createTemplate
	if template == "" {
		template = config.Template()
	}

	fmt.Fprintf(out, "Creating project %s\n", name)
	log.Debug().Str("krepel_dir", krepelDir).Str("template", template).Str("dest", dest).Msg("resolved inputs")

	result, err := scaffold.Generate(scaffold.Options{
		DestDir:   dest,
		Name:      name,
		Force:     createForce,
		KrepelDir: krepelDir,
		Template:  template,
		Variables: vars,
		Version:   buildVersion,
		In:        cmd.InOrStdin(),
		Out:       out,
	})
	switch {
	case errors.Is(err, scaffold.ErrDestinationIsFile):
		fmt.Fprintln(out, "Destination dir already exists and is a file! Aborting.")
		return nil
	case errors.Is(err, scaffold.ErrOverwriteDeclined):
		return nil
	case err != nil:
		return err
	}

	printResult(cmd, result)
	return nil
}

func printResult(cmd *cobra.Command, result *scaffold.Result) {
	out := cmd.OutOrStdout()
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	color.New(color.FgGreen).Fprintln(out, "Your project has been created.")
	fmt.Fprintln(out, "Please use CMake to generate a build system for your new project.")
	fmt.Fprintf(out, "Full path: %s\n", filepath.ToSlash(result.DestDir))
}
