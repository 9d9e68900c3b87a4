// Package bus implements the 16-bit address bus: a range-keyed router from
// addresses to peripherals, with a mirrored shadow of every write for fast
// contiguous inspection (used by the console's MemoryRegion and by
// memory-monitor style tooling).
package bus

import "byte6502/peripheral"

// OverlappingRange is returned by Attach when the proposed range intersects
// an attachment already on the bus.
type OverlappingRange struct {
	NewLo, NewHi           uint16
	ExistingLo, ExistingHi uint16
}

func (e OverlappingRange) Error() string {
	return "bus: overlapping range [" + hex16(e.NewLo) + ":" + hex16(e.NewHi) +
		"] collides with existing [" + hex16(e.ExistingLo) + ":" + hex16(e.ExistingHi) + "]"
}

func hex16(w uint16) string {
	const digits = "0123456789abcdef"
	return string([]byte{
		digits[(w>>12)&0xf],
		digits[(w>>8)&0xf],
		digits[(w>>4)&0xf],
		digits[w&0xf],
	})
}

type attachment struct {
	lo, hi     uint16
	peripheral peripheral.Peripheral
}

func (a attachment) handles(addr uint16) bool {
	return addr >= a.lo && addr <= a.hi
}

func (a attachment) overlaps(lo, hi uint16) bool {
	return lo <= a.hi && hi >= a.lo
}

// Bus routes reads and writes to whichever peripheral was attached to cover
// a given address, and mirrors every write into a shadow array so that
// contiguous regions can be inspected without going through per-peripheral
// indirection.
type Bus struct {
	attachments []attachment
	shadow      [1 << 16]byte
}

// New returns an empty Bus with no peripherals attached.
func New() *Bus {
	return &Bus{}
}

// Attach registers p as the handler for the inclusive range [lo, hi]. It
// fails with OverlappingRange if the proposed range intersects any
// attachment already on the bus; attachment ranges must be pairwise
// disjoint, never silently masked.
func (b *Bus) Attach(lo, hi uint16, p peripheral.Peripheral) error {
	for _, a := range b.attachments {
		if a.overlaps(lo, hi) {
			return OverlappingRange{NewLo: lo, NewHi: hi, ExistingLo: a.lo, ExistingHi: a.hi}
		}
	}
	b.attachments = append(b.attachments, attachment{lo: lo, hi: hi, peripheral: p})
	return nil
}

// find locates the attachment (if any) handling addr, returning it and the
// address translated into the peripheral's local address space.
func (b *Bus) find(addr uint16) (peripheral.Peripheral, uint16, bool) {
	for _, a := range b.attachments {
		if a.handles(addr) {
			return a.peripheral, addr - a.lo, true
		}
	}
	return nil, 0, false
}

// Read returns the byte at addr from whichever peripheral covers it, or
// 0x00 if the address is unmapped. Unmapped reads are never an error: real
// 6502 buses float to whatever was last driven on the data lines, which we
// model as zero.
func (b *Bus) Read(addr uint16) byte {
	if p, local, ok := b.find(addr); ok {
		return p.Read(local)
	}
	return 0x00
}

// Write stores value at addr. The shadow mirror always records the write;
// additionally, if a peripheral covers addr, the write is forwarded to it.
// A write to an unmapped address is dropped from the peripheral path but
// still lands in the shadow, matching how a floating bus behaves.
func (b *Bus) Write(addr uint16, value byte) {
	b.shadow[addr] = value

	if p, local, ok := b.find(addr); ok {
		p.Write(local, value)
	}
}

// ReadU16 reads a little-endian word: the low byte from addr, the high
// byte from addr+1. If no peripheral covers addr, it returns 0.
func (b *Bus) ReadU16(addr uint16) uint16 {
	if _, _, ok := b.find(addr); !ok {
		return 0
	}
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return hi<<8 | lo
}

// WriteU16 writes a little-endian word: low byte first, then high byte,
// each through the full Write path (peripheral + shadow).
func (b *Bus) WriteU16(addr uint16, value uint16) {
	b.Write(addr, byte(value&0xff))
	b.Write(addr+1, byte(value>>8))
}

// GetMemoryRegion returns a contiguous view into the write shadow, clamped
// to the 64KiB address space. It reflects the most recent write to every
// address in range regardless of which peripheral (if any) currently
// covers it.
func (b *Bus) GetMemoryRegion(start uint16, length int) []byte {
	lo := int(start)
	hi := lo + length
	if hi > len(b.shadow) {
		hi = len(b.shadow)
	}
	if lo > hi {
		lo = hi
	}
	return b.shadow[lo:hi]
}
