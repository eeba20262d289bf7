package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("abc123"))
	assert.True(t, ValidID("f47ac10b-58cc-4372-a567-0e02b2c3d479"))

	assert.False(t, ValidID(""))
	assert.False(t, ValidID("."))
	assert.False(t, ValidID(".."))
	assert.False(t, ValidID("a/b"))
	assert.False(t, ValidID("__reserved__"))
	assert.False(t, ValidID(strings.Repeat("x", 1501)))
}
