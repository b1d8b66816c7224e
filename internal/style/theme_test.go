package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init(false)
	assert.False(t, Enabled)

	Init(true)
	assert.True(t, Enabled)
}

func TestHint(t *testing.T) {
	Init(false)
	defer Init(true)

	assert.Equal(t, "→ run sync", Hint("run sync"))
}
