package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/krepel-labs/krepel-new/internal/manifest"
	"github.com/krepel-labs/krepel-new/internal/platform"
	"github.com/krepel-labs/krepel-new/internal/prompt"
	"github.com/krepel-labs/krepel-new/internal/substitute"
	"github.com/krepel-labs/krepel-new/internal/tree"
	"github.com/rs/zerolog/log"
)

// Built-in placeholder names.
const (
	KeyFriendlyName = "friendly_name"
	KeyCMakeName    = "cmake_name"
	KeyKrepelDir    = "krepel_dir"
	KeyTemplateDir  = "template_dir"
	KeyDestDir      = "dest_dir"
)

var builtinKeys = []string{KeyFriendlyName, KeyCMakeName, KeyKrepelDir, KeyTemplateDir, KeyDestDir}

// TemplatesDir is the directory below the template source root that holds
// one subdirectory per template set.
const TemplatesDir = "templates"

// DefaultTemplate is the template set used when Options.Template is empty.
const DefaultTemplate = "project"

// OverwriteQuestion is asked before an existing destination is removed.
const OverwriteQuestion = "Destination already exists. Overwrite?"

// Options configures a single Generate run.
type Options struct {
	DestDir   string            // Required.
	Name      string            // Friendly name; defaults to the base name of DestDir.
	Force     bool              // Overwrite an existing destination without asking.
	KrepelDir string            // Template source root.
	Template  string            // Template set below KrepelDir/templates.
	Variables map[string]string // Extra placeholders; override manifest variables.
	Version   string            // CLI version, checked against the manifest's min_version.

	In  io.Reader // Answers to the overwrite prompt.
	Out io.Writer // Where the overwrite prompt is written.
}

// Result holds the outcome of a successful Generate.
type Result struct {
	DestDir      string
	TemplateDir  string
	FriendlyName string
	CMakeName    string
	Manifest     *manifest.TemplateManifest // nil when the set has no manifest
	Files        []string                   // slash-separated, relative to DestDir
}

// renderedFile is a template file expanded in memory, ready to be written.
type renderedFile struct {
	rel     string
	content []byte
	perm    fs.FileMode
}

// Generate creates a project at opts.DestDir from a template set.
//
// Every template file is read and expanded before the destination is
// touched, so a template with an unknown placeholder fails without removing
// an existing directory. Once writing starts a failure leaves the
// destination partially populated.
func Generate(opts Options) (*Result, error) {
	if opts.DestDir == "" {
		return nil, errors.New("destination directory is required")
	}
	dest, err := filepath.Abs(opts.DestDir)
	if err != nil {
		return nil, fmt.Errorf("resolving destination %s: %w", opts.DestDir, err)
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(dest)
	}
	friendly, cmake, err := DeriveNames(name)
	if err != nil {
		return nil, err
	}

	destInfo, err := os.Stat(dest)
	switch {
	case err == nil && !destInfo.IsDir():
		return nil, fmt.Errorf("%s: %w", dest, ErrDestinationIsFile)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("checking destination %s: %w", dest, err)
	}
	destExists := err == nil

	krepelDir, templateDir, err := ResolveTemplate(opts.KrepelDir, opts.Template)
	if err != nil {
		return nil, err
	}
	if within(dest, templateDir) || within(templateDir, dest) {
		return nil, fmt.Errorf("destination %s overlaps template %s", dest, templateDir)
	}

	m, err := manifest.Load(templateDir)
	if err != nil {
		return nil, err
	}
	if err := m.CheckVersion(opts.Version); err != nil {
		return nil, err
	}

	mapping, err := BuildMapping(friendly, cmake, krepelDir, templateDir, dest, manifestVariables(m), opts.Variables)
	if err != nil {
		return nil, err
	}

	files, err := render(templateDir, m, mapping)
	if err != nil {
		return nil, err
	}

	if destExists {
		if !opts.Force && !confirmOverwrite(opts.In, opts.Out) {
			return nil, ErrOverwriteDeclined
		}
		log.Debug().Str("dest", dest).Msg("removing existing destination")
		if err := platform.RemoveTree(dest); err != nil {
			return nil, fmt.Errorf("removing existing destination: %w", err)
		}
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("creating destination %s: %w", dest, err)
	}

	result := &Result{
		DestDir:      dest,
		TemplateDir:  templateDir,
		FriendlyName: friendly,
		CMakeName:    cmake,
		Manifest:     m,
	}

	for _, f := range files {
		outPath := filepath.Join(dest, filepath.FromSlash(f.rel))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return result, fmt.Errorf("creating directory for %s: %w", f.rel, err)
		}
		if err := platform.WriteFile(outPath, f.content, f.perm); err != nil {
			return result, fmt.Errorf("generating %s: %w", f.rel, err)
		}
		log.Debug().Str("file", f.rel).Int("bytes", len(f.content)).Msg("wrote")
		result.Files = append(result.Files, f.rel)
	}
	sort.Strings(result.Files)

	return result, nil
}

// confirmOverwrite asks before an existing destination is removed. With no
// input attached the answer is no.
func confirmOverwrite(in io.Reader, out io.Writer) bool {
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	return prompt.Confirm(in, out, OverwriteQuestion, prompt.DefaultAttempts)
}

// ResolveTemplate returns the absolute template source root and the
// directory of the named template set inside it.
func ResolveTemplate(krepelDir, set string) (root, templateDir string, err error) {
	if krepelDir == "" {
		return "", "", ErrNoTemplateSource
	}
	if set == "" {
		set = DefaultTemplate
	}
	if strings.ContainsAny(set, `/\`) || !filepath.IsLocal(set) {
		return "", "", fmt.Errorf("invalid template set name %q", set)
	}

	root, err = filepath.Abs(krepelDir)
	if err != nil {
		return "", "", fmt.Errorf("resolving template source %s: %w", krepelDir, err)
	}
	if err := requireDir(root); err != nil {
		return "", "", err
	}

	templateDir = filepath.Join(root, TemplatesDir, set)
	if err := requireDir(templateDir); err != nil {
		return "", "", err
	}
	return root, templateDir, nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", dir, ErrTemplateNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", dir, ErrTemplateNotFound)
	}
	return nil
}

// BuildMapping assembles the placeholder values for a run. Directory values
// are absolute and slash-separated so they can be pasted into CMake files on
// any platform. Extra variables may not shadow a built-in name; overrides
// win over manifest variables.
func BuildMapping(friendly, cmake, krepelDir, templateDir, destDir string, manifestVars, overrides map[string]string) (substitute.Mapping, error) {
	m := substitute.Mapping{
		KeyFriendlyName: friendly,
		KeyCMakeName:    cmake,
		KeyKrepelDir:    filepath.ToSlash(krepelDir),
		KeyTemplateDir:  filepath.ToSlash(templateDir),
		KeyDestDir:      filepath.ToSlash(destDir),
	}

	for _, extra := range []map[string]string{manifestVars, overrides} {
		for k, v := range extra {
			if !substitute.IsIdentifier(k) {
				return nil, fmt.Errorf("variable name %q is not a valid placeholder name", k)
			}
			if isBuiltin(k) {
				return nil, fmt.Errorf("%q: %w", k, ErrReservedVariable)
			}
			m[k] = v
		}
	}
	return m, nil
}

// within reports whether child is parent or lies below it.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	return err == nil && filepath.IsLocal(rel)
}

func isBuiltin(key string) bool {
	for _, k := range builtinKeys {
		if k == key {
			return true
		}
	}
	return false
}

func manifestVariables(m *manifest.TemplateManifest) map[string]string {
	if m == nil {
		return nil
	}
	return m.Variables
}

// render reads and expands every file of the template set.
func render(templateDir string, m *manifest.TemplateManifest, mapping substitute.Mapping) ([]renderedFile, error) {
	excludes := append([]string{manifest.FileName}, tree.DefaultExcludes...)
	var verbatim []string
	if m != nil {
		if err := tree.ValidatePatterns(m.Exclude); err != nil {
			return nil, fmt.Errorf("template %q: %w", m.Name, err)
		}
		if err := tree.ValidatePatterns(m.Verbatim); err != nil {
			return nil, fmt.Errorf("template %q: %w", m.Name, err)
		}
		excludes = append(excludes, m.Exclude...)
		verbatim = m.Verbatim
	}

	rels, err := tree.ListFiles(templateDir, excludes)
	if err != nil {
		return nil, err
	}

	files := make([]renderedFile, 0, len(rels))
	seen := make(map[string]string, len(rels))
	for _, rel := range rels {
		outRel, err := substitute.Substitute(rel, mapping)
		if err != nil {
			return nil, fmt.Errorf("expanding path %s: %w", rel, err)
		}
		outRel = path.Clean(outRel)
		if outRel == "." || !filepath.IsLocal(filepath.FromSlash(outRel)) {
			return nil, fmt.Errorf("%s expands to %s: %w", rel, outRel, ErrPathEscapesDestination)
		}
		if prev, ok := seen[outRel]; ok {
			return nil, fmt.Errorf("%s and %s both expand to %s: %w", prev, rel, outRel, ErrDuplicateOutput)
		}
		seen[outRel] = rel

		src := filepath.Join(templateDir, filepath.FromSlash(rel))
		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", rel, err)
		}
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", rel, err)
		}

		if !tree.Excluded(rel, verbatim) {
			expanded, err := substitute.Substitute(string(data), mapping)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", rel, err)
			}
			data = []byte(expanded)
		}

		files = append(files, renderedFile{rel: outRel, content: data, perm: info.Mode().Perm()})
	}
	return files, nil
}
