package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	t.Parallel()
	c, err := decodeConfig(strings.NewReader("format: text\nsortable: true\nborder: ascii\nwrap: 20\n"))
	require.NoError(t, err)
	assert.Equal(t, Config{Format: "text", Sortable: true, Border: "ascii", Wrap: 20}, c)
}

func TestDecodeConfigEmpty(t *testing.T) {
	t.Parallel()
	c, err := decodeConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Config{}, c)
}

func TestDecodeConfigUnknownKey(t *testing.T) {
	t.Parallel()
	_, err := decodeConfig(strings.NewReader("colour: red\n"))
	assert.ErrorContains(t, err, "config:")
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "flattable.yaml")
	require.NoError(t, os.WriteFile(path, []byte("html: true\n"), 0o600))
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{HTML: true}, c)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOverride(t *testing.T) {
	t.Parallel()
	base := Config{Format: "text", Sortable: true, Border: "heavy", Wrap: 5}
	assert.Equal(t, base, base.Override(Config{}))
	assert.Equal(t,
		Config{Format: "csv", Sortable: true, HTML: true, Border: "none", Wrap: 9},
		base.Override(Config{Format: "csv", HTML: true, Border: "none", Wrap: 9}))
}
