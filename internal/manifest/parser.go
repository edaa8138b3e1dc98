package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Parse reads a manifest file without validating it.
func Parse(path string) (*TemplateManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	root, err := parseNode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return decode(path, root)
}

// Load reads, validates and decodes the manifest in templateDir. A template
// set without a manifest is valid: Load returns nil, nil.
func Load(templateDir string) (*TemplateManifest, error) {
	path := filepath.Join(templateDir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode validates the manifest bytes read from path and decodes them. The
// YAML is parsed once and the same node tree is validated and decoded.
func Decode(path string, data []byte) (*TemplateManifest, error) {
	root, err := parseNode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	issues, err := validateNode(root)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if len(issues) > 0 {
		return nil, &InvalidError{Path: path, Issues: issues}
	}
	return decode(path, root)
}

func decode(path string, root *yaml.Node) (*TemplateManifest, error) {
	var m TemplateManifest
	if root.Kind == 0 {
		return &m, nil
	}
	if err := root.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return &m, nil
}

// InvalidError is returned when a manifest fails schema validation.
type InvalidError struct {
	Path   string
	Issues []Issue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return fmt.Sprintf("invalid manifest %s: %s", e.Path, strings.Join(msgs, "; "))
}
