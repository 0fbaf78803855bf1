package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLines_PositionalArgsOnly(t *testing.T) {
	flagConfigFile = ""
	defer func() { flagConfigFile = "" }()

	lines, err := configLines([]string{"interface eth0", "no shutdown"})
	require.NoError(t, err)
	assert.Equal(t, []string{"interface eth0", "no shutdown"}, lines)
}

func TestConfigLines_FileSkipsBlankLinesAndAppendsPositionalArgs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lines.txt")
	require.NoError(t, os.WriteFile(path, []byte("interface eth0\n\nno shutdown\n"), 0o644))

	flagConfigFile = path
	defer func() { flagConfigFile = "" }()

	lines, err := configLines([]string{"end"})
	require.NoError(t, err)
	assert.Equal(t, []string{"interface eth0", "no shutdown", "end"}, lines)
}

func TestConfigLines_MissingFileErrors(t *testing.T) {
	flagConfigFile = filepath.Join(t.TempDir(), "does-not-exist.txt")
	defer func() { flagConfigFile = "" }()

	_, err := configLines(nil)
	assert.Error(t, err)
}
