package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpers(t *testing.T) {
	assert.Equal(t, "", prefixedStrings("A", 0))
	assert.Equal(t, "A0, A1, A2", prefixedStrings("A", 3))
	assert.Equal(t, "a0 Reader[A0], a1 Reader[A1]", readerParams(2))
	assert.Equal(t, "a0.Get()", getCalls(1))
}

func TestDeriveGen(t *testing.T) {
	out := DeriveGen(2)

	assert.True(t, strings.HasPrefix(out, "// Code generated by cmd/codegen. DO NOT EDIT.\n\npackage reactive\n"))
	assert.Contains(t, out, "// Derive1 creates a memo computed from 1 explicit dependency.\n")
	assert.Contains(t, out, "// Derive2 creates a memo computed from 2 explicit dependencies.\n")
	assert.Contains(t, out, "func Derive2[A0, A1, O any](rt *Runtime, a0 Reader[A0], a1 Reader[A1], fn func(A0, A1) O) *ReadonlySignal[O] {")
	assert.Contains(t, out, "return fn(a0.Get(), a1.Get())")
	assert.NotContains(t, out, "Derive3")
}
