package bitops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBits(t *testing.T) {
	set := make([]byte, SetSize(26))
	assert.Len(t, set, 4)

	SetBit(set, 0)
	SetBit(set, 9)
	SetBit(set, 25)
	assert.True(t, GetBit(set, 0))
	assert.True(t, GetBit(set, 9))
	assert.True(t, GetBit(set, 25))
	assert.False(t, GetBit(set, 8))
	assert.Equal(t, []byte{0x01, 0x02, 0x00, 0x02}, set)
}
