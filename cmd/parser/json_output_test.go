package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokervr-matchlog/internal/parser"
)

func TestWriteHandsJSONEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "match.json")

	require.NoError(t, writeHandsJSON(nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var hands []parser.Hand
	require.NoError(t, json.Unmarshal(data, &hands))
	assert.Empty(t, hands)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteHandJSONMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "match.json")
	err := writeHandJSON(&parser.Hand{}, path)
	assert.ErrorContains(t, err, "failed to create output file")
}
