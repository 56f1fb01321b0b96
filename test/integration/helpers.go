package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnv holds the test environment
type TestEnv struct {
	T           *testing.T
	TmpDir      string
	BinaryPath  string
	ConfigDir   string
	ListsPath   string
	HistoryPath string
}

// Setup creates a fresh test environment
func Setup(t *testing.T) *TestEnv {
	t.Helper()

	// Find binary (assume it's built in project root)
	binaryPath := findBinary(t)

	// Create temp directory for this test
	tmpDir, err := os.MkdirTemp("", "strmatch-integration-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	configDir := filepath.Join(tmpDir, "config")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	env := &TestEnv{
		T:           t,
		TmpDir:      tmpDir,
		BinaryPath:  binaryPath,
		ConfigDir:   configDir,
		ListsPath:   filepath.Join(configDir, "lists.toml"),
		HistoryPath: filepath.Join(configDir, "strmatch_history"),
	}

	return env
}

// Cleanup removes the test environment
func (e *TestEnv) Cleanup() {
	os.RemoveAll(e.TmpDir)
}

// Run executes strmatch-bin with args and returns stdout, stderr, exit code
func (e *TestEnv) Run(args ...string) (stdout, stderr string, exitCode int) {
	return e.RunWithStdin("", args...)
}

// RunWithStdin executes strmatch-bin feeding the given input on stdin
func (e *TestEnv) RunWithStdin(stdin string, args ...string) (stdout, stderr string, exitCode int) {
	cmd := exec.Command(e.BinaryPath, args...)
	cmd.Env = append(os.Environ(), "STRMATCH_DB="+e.ListsPath)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	exitCode = 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		e.T.Fatalf("Failed to run command: %v", err)
	}

	return strings.TrimSpace(outBuf.String()), strings.TrimSpace(errBuf.String()), exitCode
}

// MustRun executes and fails test if exit code != 0
func (e *TestEnv) MustRun(args ...string) string {
	stdout, stderr, exitCode := e.Run(args...)
	if exitCode != 0 {
		e.T.Fatalf("Command failed: strmatch %v\nstdout: %s\nstderr: %s\nexit: %d",
			args, stdout, stderr, exitCode)
	}
	return stdout
}

// WriteWordFile creates a candidate file in the temp folder
func (e *TestEnv) WriteWordFile(name string, words ...string) string {
	path := filepath.Join(e.TmpDir, name)
	content := strings.Join(words, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write word file: %v", err)
	}
	return path
}

func findBinary(t *testing.T) string {
	// Look for binary relative to test location
	candidates := []string{
		"../../strmatch-bin",
		"../strmatch-bin",
		"./strmatch-bin",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}
	t.Fatal("strmatch-bin not found. Build it with 'go build -o strmatch-bin ./cmd/strmatch' first.")
	return ""
}
