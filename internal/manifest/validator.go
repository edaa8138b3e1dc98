package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/template.schema.json
var schemaBytes []byte

const schemaURL = "krepel-template.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
	printer    = message.NewPrinter(language.English)
)

// Issue is one schema violation in a manifest. Field is the top-level key it
// concerns; inside exclude, verbatim and variables, Entry names the list index
// or variable.
type Issue struct {
	Field   string // e.g. "name", "variables"; empty for the document itself
	Entry   string
	Line    int    // 1-based line in the manifest, 0 when unknown
	Keyword string // failing schema keyword
	Message string
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", i.Line)
	}
	switch {
	case i.Field != "" && i.Entry != "":
		fmt.Fprintf(&b, "%s[%s]: ", i.Field, i.Entry)
	case i.Field != "":
		b.WriteString(i.Field + ": ")
	}
	b.WriteString(i.Message)
	return b.String()
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			schemaErr = fmt.Errorf("decoding manifest schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("adding manifest schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compiling manifest schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// Validate checks manifest YAML against the manifest schema. Violations are
// returned as issues; the error is for YAML that does not parse.
func Validate(data []byte) ([]Issue, error) {
	root, err := parseNode(data)
	if err != nil {
		return nil, err
	}
	return validateNode(root)
}

// parseNode returns the top node of the YAML document, or a zero node for an
// empty file.
func parseNode(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0], nil
	}
	return &doc, nil
}

func validateNode(root *yaml.Node) ([]Issue, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	inst, err := instance(root)
	if err != nil {
		return nil, err
	}

	err = sch.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}

	var issues []Issue
	collectIssues(ve, nil, &issues)
	if len(issues) == 0 {
		issues = append(issues, Issue{Message: ve.Error()})
	}
	for i := range issues {
		issues[i].Line = lineOf(root, issues[i].Field, issues[i].Entry)
	}
	return tidy(issues), nil
}

// instance converts a YAML node into the value shapes the schema validator
// accepts. Mapping keys are always strings and non-core scalars, such as
// timestamps, stay strings.
func instance(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return instance(n.Content[0])
	case yaml.AliasNode:
		return instance(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind == yaml.AliasNode {
				key = key.Alias
			}
			v, err := instance(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[key.Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		a := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := instance(c)
			if err != nil {
				return nil, err
			}
			a = append(a, v)
		}
		return a, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool", "!!int", "!!float":
			var v any
			if err := n.Decode(&v); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return v, nil
		}
		return n.Value, nil
	}
	return nil, nil
}

// collectIssues flattens the validator's error tree. parent is the instance
// location of the enclosing error, which propertyNames failures do not carry.
func collectIssues(ve *jsonschema.ValidationError, parent []string, issues *[]Issue) {
	loc := ve.InstanceLocation
	if len(loc) == 0 {
		loc = parent
	}

	switch k := ve.ErrorKind.(type) {
	case *kind.Required:
		for _, name := range k.Missing {
			field, entry := locate(loc, name)
			*issues = append(*issues, Issue{Field: field, Entry: entry, Keyword: "required", Message: "is required"})
		}
		return
	case *kind.AdditionalProperties:
		for _, name := range k.Properties {
			field, entry := locate(loc, name)
			*issues = append(*issues, Issue{Field: field, Entry: entry, Keyword: "additionalProperties", Message: "is not a manifest field"})
		}
		return
	case *kind.PropertyNames:
		field, _ := locate(loc)
		*issues = append(*issues, Issue{
			Field:   field,
			Entry:   k.Property,
			Keyword: "propertyNames",
			Message: "is not a placeholder name (letters, digits and underscores, not starting with a digit)",
		})
		return
	}

	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, loc, issues)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	keyword := ""
	if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
		keyword = kw[len(kw)-1]
	}
	field, entry := locate(loc)
	*issues = append(*issues, Issue{
		Field:   field,
		Entry:   entry,
		Keyword: keyword,
		Message: ve.ErrorKind.LocalizedString(printer),
	})
}

// locate splits an instance path into the top-level field and the rest.
func locate(loc []string, more ...string) (field, entry string) {
	path := make([]string, 0, len(loc)+len(more))
	path = append(append(path, loc...), more...)
	if len(path) == 0 {
		return "", ""
	}
	return path[0], strings.Join(path[1:], "/")
}

// lineOf finds where field, and entry within it, is written in the manifest.
func lineOf(root *yaml.Node, field, entry string) int {
	if field == "" || root.Kind != yaml.MappingNode {
		return 0
	}
	key, value := lookup(root, field)
	if key == nil {
		return 0
	}
	if entry == "" {
		return key.Line
	}
	first, _, _ := strings.Cut(entry, "/")
	switch value.Kind {
	case yaml.MappingNode:
		if k, _ := lookup(value, first); k != nil {
			return k.Line
		}
	case yaml.SequenceNode:
		if i, err := strconv.Atoi(first); err == nil && i >= 0 && i < len(value.Content) {
			return value.Content[i].Line
		}
	}
	return key.Line
}

func lookup(m *yaml.Node, name string) (key, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == name {
			return m.Content[i], m.Content[i+1]
		}
	}
	return nil, nil
}

// tidy drops repeated issues and orders the rest as they appear in the file.
func tidy(issues []Issue) []Issue {
	seen := make(map[Issue]bool, len(issues))
	out := issues[:0]
	for _, issue := range issues {
		if !seen[issue] {
			seen[issue] = true
			out = append(out, issue)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		if out[i].Field != out[j].Field {
			return out[i].Field < out[j].Field
		}
		return out[i].Entry < out[j].Entry
	})
	return out
}
