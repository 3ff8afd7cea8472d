package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("unknown mode", From("unknown mode"))
	assert.Equal("register SF: 0E", From("register %s: %02X", "SF", 14))
}
