package util

import "testing"

func TestJoinOrDefault(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		def   string
		want  string
	}{
		{"empty uses default", nil, "(none)", "(none)"},
		{"single item", []string{"a"}, "(none)", "a"},
		{"multiple items", []string{"a", "b", "c"}, "(none)", "a, b, c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinOrDefault(tt.items, tt.def); got != tt.want {
				t.Errorf("JoinOrDefault() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize(1, "session", "sessions"); got != "session" {
		t.Errorf("Pluralize(1) = %q", got)
	}
	if got := Pluralize(2, "session", "sessions"); got != "sessions" {
		t.Errorf("Pluralize(2) = %q", got)
	}
	if got := Pluralize(0, "session", "sessions"); got != "sessions" {
		t.Errorf("Pluralize(0) = %q", got)
	}
}
