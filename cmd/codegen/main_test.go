package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMatchesCommittedHelpers(t *testing.T) {
	want, err := os.ReadFile("../../reactive/derive_gen.go")
	require.NoError(t, err)

	got, err := render(4)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestRenderRejectsZero(t *testing.T) {
	_, err := render(0)
	assert.ErrorContains(t, err, "at least 1")
}
