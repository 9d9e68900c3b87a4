package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLast(t *testing.T) {
	assert.Equal(t, byte(0b0000_0001), Last(0b0000_1111, I1))
	assert.Equal(t, byte(0b0000_0011), Last(0b0000_1111, I2))
	assert.Equal(t, byte(0b0000_0111), Last(0b0000_1111, I3))
	assert.Equal(t, byte(0b0000_1111), Last(0b0000_1111, I4))

	assert.Equal(t, byte(0b0000_0001), Last(0b1000_1111, I1))
	assert.Equal(t, byte(0b0000_0010), Last(0b0000_1010, I2))
}

func TestFirst(t *testing.T) {
	assert.Equal(t, byte(0b0000_0001), First(0b1111_1111, 1))
	assert.Equal(t, byte(0b0000_1010), First(0b1010_1111, 4))
}

func TestRange(t *testing.T) {
	assert.Equal(t, byte(0b0000_0011), Range(0b1101_1000, I1, I2))
	assert.Equal(t, byte(0b0000_0101), Range(0b1101_1000, I2, I4))
	assert.Equal(t, byte(0b0000_0011), Range(0b1101_1000, I4, I5))
	assert.Equal(t, byte(0b0000_1000), Range(0b1101_1000, I5, I8))
}

func TestIsSet(t *testing.T) {
	assert.True(t, IsSet(0b1101_1000, I1))
	assert.True(t, IsSet(0b1101_1000, I2))
	assert.False(t, IsSet(0b1101_1000, I3))
	assert.True(t, IsSet(0b1101_1000, I4))
}

func TestSet(t *testing.T) {
	assert.Equal(t, byte(0b1000_0000), Set(0b0000_0000, I1, 0b0000_0010))
	assert.Equal(t, byte(0b1010_0000), Set(0b0000_0000, I1, 0b0000_0101))
}

func TestUnset(t *testing.T) {
	assert.Equal(t, byte(0b1000_1000), Unset(0b1101_1000, I2, I3))
}
