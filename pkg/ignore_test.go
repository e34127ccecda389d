package folderhash

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShouldExclude(t *testing.T) {
	em, err := NewExcludeMatcher([]string{"**/.git", "*.log", "build/**", "node_modules"})
	if err != nil {
		t.Fatalf("NewExcludeMatcher failed: %v", err)
	}

	testCases := []struct {
		path string
		want bool
	}{
		{".git", true},
		{"sub/.git", true},
		{"app.log", true},
		{"deep/nested/app.log", true},
		{"build/out.bin", true},
		{"build/x/y", true},
		{"node_modules", true},
		{"pkg/node_modules", true},
		{"main.go", false},
		{"logs", false},
		{"src/build.go", false},
		{"./app.log", true},
	}

	for _, tc := range testCases {
		if got := em.ShouldExclude(tc.path); got != tc.want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestEmptyMatcher(t *testing.T) {
	em, err := NewExcludeMatcher(nil)
	if err != nil {
		t.Fatal(err)
	}
	if em.HasPatterns() || em.ShouldExclude("anything") {
		t.Error("Empty matcher should exclude nothing")
	}
}

func TestValidatePattern(t *testing.T) {
	for _, pattern := range []string{"*.txt", "**/.*", "a/{b,c}", "[abc].go"} {
		if err := ValidatePattern(pattern); err != nil {
			t.Errorf("ValidatePattern(%q) failed: %v", pattern, err)
		}
	}
	for _, pattern := range []string{"", "   ", "[", "a/{b"} {
		if err := ValidatePattern(pattern); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("ValidatePattern(%q) = %v, want ErrInvalidOption", pattern, err)
		}
	}
}

func TestGetPatterns(t *testing.T) {
	em, _ := NewExcludeMatcher([]string{"*.tmp", "**/.git"})
	if !em.HasPatterns() {
		t.Error("HasPatterns should be true")
	}
	patterns := em.GetPatterns()
	patterns[0] = "changed"
	if diff := cmp.Diff([]string{"*.tmp", "**/.git"}, em.GetPatterns()); diff != "" {
		t.Errorf("GetPatterns mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadExcludeFile(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"/.folderhashignore": "# comment\n\n**/.git\n  *.log  \nnode_modules\n",
		"/bad":               "ok\n[\n",
	})

	patterns, err := LoadExcludeFile(fs, "/.folderhashignore")
	if err != nil {
		t.Fatalf("LoadExcludeFile failed: %v", err)
	}
	if diff := cmp.Diff([]string{"**/.git", "*.log", "node_modules"}, patterns); diff != "" {
		t.Errorf("Patterns mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadExcludeFile(fs, "/bad"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("Expected ErrInvalidOption for a bad pattern, got %v", err)
	}
	if _, err := LoadExcludeFile(fs, "/missing"); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
