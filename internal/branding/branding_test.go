package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "krepel-new" {
		t.Errorf("CLIName() = %q, want %q", got, "krepel-new")
	}
	if got := HomeDir(); got != ".krepel" {
		t.Errorf("HomeDir() = %q, want %q", got, ".krepel")
	}
	if got := DefaultTemplate(); got != "project" {
		t.Errorf("DefaultTemplate() = %q, want %q", got, "project")
	}
}

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"dir", "KREPEL_DIR"},
		{"DIR", "KREPEL_DIR"},
		{"template", "KREPEL_TEMPLATE"},
	}
	for _, tt := range tests {
		if got := EnvVar(tt.suffix); got != tt.want {
			t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
		}
	}
}
