package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the grou binary and checks its exit codes and output.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	tmpDir := t.TempDir()
	binName := "grou"
	if runtime.GOOS == "windows" {
		binName = "grou.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs with the package directory as working directory.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/grou")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build grou: %v", err)
	}

	profile := filepath.Join(tmpDir, "profile.json")

	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{"Multiply", []string{"-expr", "0xffffffffffffffff * 0xffffffffffffffff"}, "", "[1 18446744073709551614]", 0},
		{"Quiet Add", []string{"-quiet", "-expr", "18446744073709551615 + 1"}, "", "[0 1]", 0},
		{"Verify", []string{"-verify", "-quiet", "-expr", "99999999999999999999999 * 12345678901234567890"}, "", "[", 0},
		{"Compare", []string{"-quiet", "-expr", "0b101 <=> 5"}, "", "0", 0},
		{"Underflow", []string{"-expr", "1 - 2"}, "", "underflow", 1},
		{"Bad Operator", []string{"-expr", "1 ^ 2"}, "", "unknown operator", 4},
		{"Sequential Only", []string{"-parallel-threshold", "-1", "-quiet", "-expr", "0xffffffffffffffff * 0xffffffffffffffff"}, "", "[1 18446744073709551614]", 0},
		{"Negative Threshold", []string{"-threshold", "-5"}, "", "must be non-negative", 4},
		{"Help", []string{"-h"}, "", "usage", 0},
		{"Version Flag", []string{"--version"}, "", "grou", 0},
		{"REPL", []string{"-repl"}, "parse 0x10000000000000001\n7 * 6\nexit\n", "[42]", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-calibration-profile", profile}, tt.args...)
			if tt.name == "Version Flag" {
				args = tt.args
			}
			cmd := exec.Command(binPath, args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			cmd.Stdin = strings.NewReader(tt.stdin)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running grou: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
