package peripheral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAMZeroInitialized(t *testing.T) {
	r := NewRAM(16)
	for addr := 0; addr < 16; addr++ {
		assert.Equal(t, byte(0), r.Read(uint16(addr)))
	}
}

func TestRAMReadWriteRoundTrip(t *testing.T) {
	r := NewRAM(256)
	r.Write(0x10, 0xab)
	assert.Equal(t, byte(0xab), r.Read(0x10))
	assert.Equal(t, byte(0), r.Read(0x11))
}

func TestRAMLen(t *testing.T) {
	r := NewRAM(0x10000)
	assert.Equal(t, 0x10000, r.Len())
}
