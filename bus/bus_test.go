package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"byte6502/peripheral"
)

func TestAttachRejectsOverlap(t *testing.T) {
	b := New()
	assert.NoError(t, b.Attach(0x0000, 0x00ff, peripheral.NewRAM(256)))

	err := b.Attach(0x00f0, 0x01ff, peripheral.NewRAM(0x110))
	assert.Error(t, err)
	var overlap OverlappingRange
	assert.ErrorAs(t, err, &overlap)

	assert.NoError(t, b.Attach(0x0100, 0x01ff, peripheral.NewRAM(256)))
}

func TestReadWriteRoutesToAttachedPeripheral(t *testing.T) {
	b := New()
	require := assert.New(t)
	require.NoError(b.Attach(0x8000, 0x80ff, peripheral.NewRAM(256)))

	b.Write(0x8010, 0x42)
	require.Equal(byte(0x42), b.Read(0x8010))

	// A second attachment is independently addressable from local 0.
	require.NoError(b.Attach(0x9000, 0x90ff, peripheral.NewRAM(256)))
	b.Write(0x9000, 0x7)
	require.Equal(byte(0x7), b.Read(0x9000))
	require.Equal(byte(0x42), b.Read(0x8010))
}

func TestUnmappedReadsReturnZero(t *testing.T) {
	b := New()
	assert.Equal(t, byte(0), b.Read(0x1234))
}

func TestUnmappedWritesStillRecordInShadow(t *testing.T) {
	b := New()
	b.Write(0x1234, 0x99)
	region := b.GetMemoryRegion(0x1234, 1)
	assert.Equal(t, byte(0x99), region[0])
	assert.Equal(t, byte(0), b.Read(0x1234))
}

func TestReadU16LittleEndian(t *testing.T) {
	b := New()
	assert.NoError(t, b.Attach(0x0000, 0xffff, peripheral.NewRAM(0x10000)))
	b.Write(0x10, 0xcd)
	b.Write(0x11, 0xab)
	assert.Equal(t, uint16(0xabcd), b.ReadU16(0x10))
}

func TestWriteU16WritesLowThenHigh(t *testing.T) {
	b := New()
	assert.NoError(t, b.Attach(0x0000, 0xffff, peripheral.NewRAM(0x10000)))
	b.WriteU16(0x20, 0xabcd)
	assert.Equal(t, byte(0xcd), b.Read(0x20))
	assert.Equal(t, byte(0xab), b.Read(0x21))
}

func TestShadowConsistencyForAllWrites(t *testing.T) {
	b := New()
	for addr := 0; addr < 0x200; addr += 7 {
		b.Write(uint16(addr), byte(addr))
		region := b.GetMemoryRegion(uint16(addr), 1)
		assert.Equal(t, byte(addr), region[0])
	}
}

func TestGetMemoryRegionClampsToAddressSpace(t *testing.T) {
	b := New()
	region := b.GetMemoryRegion(0xfff0, 0x100)
	assert.Len(t, region, 0x10)
}

func TestLoadFetchRoundTrip(t *testing.T) {
	b := New()
	assert.NoError(t, b.Attach(0x0000, 0xffff, peripheral.NewRAM(0x10000)))

	prog := []byte{0xa9, 0x01, 0x8d, 0x00, 0x02}
	base := uint16(0x8000)
	for i, v := range prog {
		b.Write(base+uint16(i), v)
	}
	for i, v := range prog {
		assert.Equal(t, v, b.Read(base+uint16(i)))
	}
}
