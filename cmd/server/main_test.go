package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	params, err := parseParams(`{"path": "/a", "content": "x"}`, []string{"path=/b", "extra=k=v"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"path": "/b", "content": "x", "extra": "k=v"}, params)

	params, err = parseParams("", nil)
	require.NoError(t, err)
	assert.Empty(t, params)

	_, err = parseParams("", []string{"novalue"})
	assert.Error(t, err)

	_, err = parseParams("", []string{"=value"})
	assert.Error(t, err)

	_, err = parseParams("{bad", nil)
	assert.ErrorContains(t, err, "invalid --params")
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["invoke"])
	assert.True(t, names["commands"])
}
