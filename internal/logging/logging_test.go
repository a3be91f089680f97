package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Writer(t *testing.T) {
	var buf bytes.Buffer

	logger, closeFn, err := Setup(Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	logger.Debug().Str("component", "test").Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"component":"test"`)
	assert.Contains(t, out, `"message":"hello"`)
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer

	logger, _, err := Setup(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestSetup_InvalidLevel(t *testing.T) {
	_, _, err := Setup(Options{Level: "chatty", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "supportchat.log")

	logger, closeFn, err := Setup(Options{File: path})
	require.NoError(t, err)

	logger.Info().Msg("written to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "written to file"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSetup_NoDestination(t *testing.T) {
	_, _, err := Setup(Options{})
	require.Error(t, err)
}
