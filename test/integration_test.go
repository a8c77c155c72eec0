// ABOUTME: Integration tests for femfit CLI.
// ABOUTME: Builds the binary and runs the profile, screening, and generate workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	binDir := t.TempDir()
	femfitBinary := filepath.Join(binDir, "femfit")

	buildCmd := exec.Command("go", "build", "-o", femfitBinary, "./cmd/femfit")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	// Use temp data and config directories
	tmpDir := t.TempDir()
	env := append(os.Environ(),
		"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
	)

	run := func(args ...string) (string, error) {
		cmd := exec.Command(femfitBinary, args...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	lastPeriod := time.Now().AddDate(0, 0, -10).Format("2006-01-02")

	// Create a profile; it becomes the default user
	output, err := run("--user", "ana", "profile", "init", "--dob", "1996-01-01", "--last-period", lastPeriod)
	if err != nil {
		t.Fatalf("Failed to init profile: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Created profile ana") {
		t.Errorf("Expected 'Created profile ana' in output, got: %s", output)
	}

	// Phase from the stored profile
	output, err = run("phase")
	if err != nil {
		t.Fatalf("Failed to show phase: %v\n%s", err, output)
	}
	if !strings.Contains(output, "follicular phase, day 11 of 28") {
		t.Errorf("Expected follicular day 11 in output, got: %s", output)
	}

	// Screening sets the pelvic flag
	output, err = run("screen", "answer", "pelvic-1=yes", "bone-1=no")
	if err != nil {
		t.Fatalf("Failed to answer screening: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Pelvic floor risk: yes") {
		t.Errorf("Expected pelvic risk in output, got: %s", output)
	}

	// Generate and save a plan
	output, err = run("generate", "--seed", "5", "--equipment", "home_gym")
	if err != nil {
		t.Fatalf("Failed to generate: %v\n%s", err, output)
	}
	if !strings.Contains(output, "# Cycle Sync Workout") {
		t.Errorf("Expected plan heading in output, got: %s", output)
	}
	if !strings.Contains(output, "pelvic floor safety") {
		t.Errorf("Expected pelvic warning in output, got: %s", output)
	}
	if !strings.Contains(output, "Saved plan") {
		t.Errorf("Expected 'Saved plan' in output, got: %s", output)
	}

	// History lists the plan
	output, err = run("history", "list")
	if err != nil {
		t.Fatalf("Failed to list history: %v\n%s", err, output)
	}
	if !strings.Contains(output, "cycle_sync") {
		t.Errorf("Expected 'cycle_sync' in history, got: %s", output)
	}

	// Catalog browsing
	output, err = run("catalog", "list", "--pattern", "squat")
	if err != nil {
		t.Fatalf("Failed to list catalog: %v\n%s", err, output)
	}
	if !strings.Contains(output, "goblet-squat") {
		t.Errorf("Expected 'goblet-squat' in catalog, got: %s", output)
	}
}
