package manifest

// FileName is the manifest file looked up at the root of a template set.
// It is metadata only and never copied into a generated project.
const FileName = "krepel-template.yaml"

// TemplateManifest describes a template set.
type TemplateManifest struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	MinVersion  string            `yaml:"min_version,omitempty" json:"min_version,omitempty"`
	Exclude     []string          `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Verbatim    []string          `yaml:"verbatim,omitempty" json:"verbatim,omitempty"`
	Variables   map[string]string `yaml:"variables,omitempty" json:"variables,omitempty"`
}
