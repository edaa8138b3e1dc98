// Package manifest handles the optional krepel-template.yaml file at the root
// of a template set. The manifest names the set, can require a minimum CLI
// version, exclude paths from generation, mark files that are copied without
// substitution, and contribute extra placeholder values. It is validated
// against an embedded JSON Schema before use.
package manifest
