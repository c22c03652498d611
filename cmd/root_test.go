package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcelines/internal/languages"
	"sourcelines/internal/model"
)

// executeCommand 以独立的根命令执行一次调用，返回 stdout 与 stderr。
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd("test", languages.NewRegistry())
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// prepareProject 在隔离的 HOME 下创建一个小工程，避免读到真实用户配置。
func prepareProject(t *testing.T) string {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	files := map[string]string{
		"main.go":        "package main\n// comment\nfunc main() {}\n",
		"tool.py":        "x = 1\n# c\n",
		"build/out.go":   "package out\n",
		"docs/notes.txt": "hello\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func outputLines(output string) []string {
	return strings.Split(strings.TrimSuffix(output, "\n"), "\n")
}

func TestScanFileWithSum(t *testing.T) {
	root := prepareProject(t)
	path := filepath.Join(root, "main.go")

	stdout, _, err := executeCommand(t, "-lRsv", path)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"       2        3 <go> " + path,
		"       2        3 <*> (sum)",
	}, outputLines(stdout))
}

func TestScanSumOnlyHidesEntries(t *testing.T) {
	root := prepareProject(t)

	stdout, _, err := executeCommand(t, "-rs", "-l", root)
	require.NoError(t, err)

	// build 目录被默认排除。
	assert.Equal(t, []string{"       4 <*> (sum)"}, outputLines(stdout))
}

// TestScanWithoutArgsDefaultsToRecursiveVerbose 验证不带路径时等价于 -rv .。
func TestScanWithoutArgsDefaultsToRecursiveVerbose(t *testing.T) {
	root := prepareProject(t)
	t.Chdir(root)

	stdout, _, err := executeCommand(t, "-l")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"       4 <*> .",
		"       2 <go>",
		"       1 <python>",
		"       1 <text>",
	}, outputLines(stdout))
}

func TestScanNonRecursiveDirectory(t *testing.T) {
	root := prepareProject(t)

	stdout, _, err := executeCommand(t, "-l", root)
	require.NoError(t, err)
	assert.Equal(t, []string{"       3 <*> " + root}, outputLines(stdout))
}

func TestScanIncludeAndExclude(t *testing.T) {
	root := prepareProject(t)

	stdout, _, err := executeCommand(t, "-rs", "-l", "--include", "build", "--exclude", "*.py", root)
	require.NoError(t, err)
	assert.Equal(t, []string{"       4 <*> (sum)"}, outputLines(stdout))
}

func TestScanJSONOutput(t *testing.T) {
	root := prepareProject(t)
	exportPath := filepath.Join(t.TempDir(), "out", "result.json")

	stdout, stderr, err := executeCommand(t, "-r", "--format", "json", "--output", exportPath, root)
	require.NoError(t, err)

	var result model.ScanResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, int64(3), result.Total.Files)
	assert.Equal(t, int64(4), result.Total.ActualLOC)
	assert.Contains(t, stderr, exportPath)

	content, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"actual_loc": 4`)
}

func TestScanRejectsUnknownFormat(t *testing.T) {
	root := prepareProject(t)

	_, _, err := executeCommand(t, "--format", "xml", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestScanRejectsNonPositiveWorkers(t *testing.T) {
	root := prepareProject(t)

	_, _, err := executeCommand(t, "--workers", "0", root)
	require.Error(t, err)
}

func TestScanColor(t *testing.T) {
	root := prepareProject(t)

	stdout, _, err := executeCommand(t, "-C", filepath.Join(root, "main.go"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "\x1b[")
}

func TestScanConfigFile(t *testing.T) {
	root := prepareProject(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("exclude:\n  - \"*.txt\"\n"), 0o644))

	stdout, _, err := executeCommand(t, "--config", configPath, "-rs", "-R", root)
	require.NoError(t, err)
	// main.go 3 行，tool.py 2 行。
	assert.Equal(t, []string{"       5 <*> (sum)"}, outputLines(stdout))

	_, _, err = executeCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), root)
	require.Error(t, err)
}

func TestLanguageCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	stdout, _, err := executeCommand(t, "language")
	require.NoError(t, err)

	lines := outputLines(stdout)
	assert.True(t, strings.HasPrefix(lines[0], "LANGUAGE"))
	assert.Contains(t, stdout, ".py, .python")
	assert.Contains(t, stdout, "<!-- -->")
	assert.Contains(t, stdout, "(inferred)")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sourcelines version test\n", stdout)
}

func TestTrackCommand(t *testing.T) {
	root := prepareProject(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	stdout, _, err := executeCommand(t, "track", root, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "snapshot #1")
	assert.Contains(t, stdout, "(first snapshot)")
	assert.Contains(t, stdout, "▲ +2")

	require.NoError(t, os.WriteFile(filepath.Join(root, "extra.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(root, "tool.py")))

	stdout, _, err = executeCommand(t, "track", root, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "snapshot #2")
	assert.Contains(t, stdout, "compared with #1")
	assert.Contains(t, stdout, "▼ -1")
	assert.Contains(t, stdout, "python")

	stdout, _, err = executeCommand(t, "track", root, "--db", dbPath, "--list")
	require.NoError(t, err)
	lines := outputLines(stdout)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.True(t, strings.HasPrefix(lines[1], "2 "))
	assert.True(t, strings.HasPrefix(lines[2], "1 "))
}

func TestTrackListEmpty(t *testing.T) {
	root := prepareProject(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	stdout, _, err := executeCommand(t, "track", root, "--db", dbPath, "--list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no snapshots for")
}
