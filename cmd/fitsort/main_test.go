package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutDir(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	abs := filepath.Join(t.TempDir(), "sorted")

	tests := []struct {
		arg  string
		want string
	}{
		{"", filepath.Join(wd, "output")},
		{"rel", filepath.Join(wd, "rel")},
		{filepath.Join("a", "..", "b"), filepath.Join(wd, "b")},
		{abs, abs},
	}
	for _, tc := range tests {
		got, err := outDir(tc.arg)
		if err != nil {
			t.Fatalf("outDir(%q): %v", tc.arg, err)
		}
		if got != tc.want {
			t.Errorf("outDir(%q) = %q, want %q", tc.arg, got, tc.want)
		}
	}
}

// TestUsage re-runs the test binary as fitsort with no arguments.
func TestUsage(t *testing.T) {
	if os.Getenv("FITSORT_MAIN") == "1" {
		os.Args = []string{"fitsort"}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestUsage$")
	cmd.Env = append(os.Environ(), "FITSORT_MAIN=1")
	out, err := cmd.CombinedOutput()

	var ee *exec.ExitError
	if !errors.As(err, &ee) || ee.ExitCode() != 2 {
		t.Fatalf("fitsort with no args: err = %v, want exit status 2\n%s", err, out)
	}
	if !strings.Contains(string(out), "usage: fitsort") {
		t.Errorf("output does not contain usage:\n%s", out)
	}
}
