package pcm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadMP3Empty(t *testing.T) {
	clip, err := ReadMP3(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrMP3Decode)
	assert.Nil(t, clip)
}
