package logtail

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want Level
	}{
		{"[ERROR] something failed", LevelError},
		{"fatal: disk gone", LevelError},
		{"Upload failed for file", LevelError},
		{"[WARN] cpu hot", LevelWarn},
		{"warning: deprecated flag", LevelWarn},
		{"INFO started", LevelInfo},
		{"debug: cache miss", LevelDebug},
		{"job completed", LevelSuccess},
		{"plain message", LevelPlain},
		{"terror is not a level", LevelPlain},
		{"", LevelPlain},
	}
	for _, tt := range tests {
		if got := Classify(tt.line); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestColorizeLine_KeepsText(t *testing.T) {
	if got := ColorizeLine(""); got != "" {
		t.Fatalf("ColorizeLine(\"\") = %q, want empty", got)
	}
	in := "ERROR disk full"
	if got := ColorizeLine(in); !strings.Contains(got, in) {
		t.Fatalf("ColorizeLine(%q) = %q, want text preserved", in, got)
	}
}

func TestColorizeLines(t *testing.T) {
	got := ColorizeLines([]string{"a", "b"})
	if len(got) != 2 {
		t.Fatalf("ColorizeLines len = %d, want 2", len(got))
	}
}
