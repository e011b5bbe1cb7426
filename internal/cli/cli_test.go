package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "DATABASE_PATH=" + filepath.Join(dir, "cli.db") + "\nLOG_LEVEL=error\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	return envFile
}

func run(t *testing.T, envFile string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", envFile}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestMigrateCommands(t *testing.T) {
	envFile := writeEnvFile(t)

	assert.Equal(t, "0\n", run(t, envFile, "migrate", "version"))

	run(t, envFile, "migrate", "up")
	assert.Equal(t, "3\n", run(t, envFile, "migrate", "version"))

	status := run(t, envFile, "migrate", "status")
	assert.Contains(t, status, "VERSION")
	assert.Equal(t, 3, strings.Count(status, "applied"))

	run(t, envFile, "migrate", "down")
	assert.Equal(t, "2\n", run(t, envFile, "migrate", "version"))
	status = run(t, envFile, "migrate", "status")
	assert.Equal(t, 1, strings.Count(status, "pending"))

	run(t, envFile, "migrate", "reset")
	assert.Equal(t, "0\n", run(t, envFile, "migrate", "version"))
}

func TestSeedCommand(t *testing.T) {
	envFile := writeEnvFile(t)

	assert.Equal(t, "Inserted 10 users and 5 books\n", run(t, envFile, "seed"))
	assert.Equal(t, "Inserted 0 users and 0 books\n", run(t, envFile, "seed"))
}

func TestSeedCommand_WithoutSchema(t *testing.T) {
	envFile := writeEnvFile(t)

	cmd := NewRootCommand("test")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--env-file", envFile, "seed", "--migrate=false"})
	assert.Error(t, cmd.Execute())
}

func TestRootCommand_Version(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand("1.2.3")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=loud\n"), 0o600))

	cmd := NewRootCommand("test")
	cmd.SetArgs([]string{"--env-file", envFile, "migrate", "version"})
	assert.Error(t, cmd.Execute())
}
