package splashgen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeSelection(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "splashgen.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenconfigCmd(t *testing.T) {
	path := writeSelection(t, `
[splash]
theme = "spinner"
device_timeout = 8
extra_config = ["ExtraOpt=1"]
`)

	out, err := execute(t, "--config", path, "genconfig")
	require.NoError(t, err)
	assert.Equal(t, "[Daemon]\nShowDelay=0\nDeviceTimeout=8\nTheme=spinner\nExtraOpt=1\n", out)
}

func TestWireupCmd(t *testing.T) {
	out, err := execute(t, "wireup", "--env", "minimal")
	require.NoError(t, err)
	assert.Contains(t, out, "plymouth-start.service")
	assert.Contains(t, out, "sysinit.target")
	assert.Contains(t, out, "runtime_links:")

	out, err = execute(t, "wireup", "--env", "full")
	require.NoError(t, err)
	assert.NotContains(t, out, "runtime_links:")
}

func TestWireupCmd_BadEnv(t *testing.T) {
	_, err := execute(t, "wireup", "--env", "sideways")
	assert.Error(t, err)
}

func TestBuildCmd_MissingThemeFails(t *testing.T) {
	dir := t.TempDir()
	path := writeSelection(t, `
[splash]
theme = "bgrt"

[trees]
themes_dir = "`+filepath.Join(dir, "themes")+`"
full_root = "`+filepath.Join(dir, "full")+`"
minimal_root = "`+filepath.Join(dir, "minimal")+`"
`)

	_, err := execute(t, "--config", path, "build")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "splashgen")
}
