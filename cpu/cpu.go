// Package cpu implements the MOS Technology 6502 microprocessor: registers,
// the 13 addressing modes, the full documented instruction set, and the
// four interrupt sources (RST, IRQ, NMI, BRK).
package cpu

import "byte6502/bus"

const (
	StackBase = 0x0100

	NMIVector = 0xfffa
	RSTVector = 0xfffc
	IRQVector = 0xfffe
)

// Flag bits of the P (status) register.
//
//	7654 3210
//	NV1B DIZC
const (
	FlagNegative  = uint8(0x80)
	FlagOverflow  = uint8(0x40)
	FlagUnused    = uint8(0x20) // always read back as 1
	FlagBreak     = uint8(0x10) // only meaningful in the byte pushed to the stack
	FlagDecimal   = uint8(0x08)
	FlagInterrupt = uint8(0x04)
	FlagZero      = uint8(0x02)
	FlagCarry     = uint8(0x01)
)

// Registers holds the 6502's full programmer-visible state.
type Registers struct {
	PC uint16
	SP uint8

	A uint8
	X uint8
	Y uint8
	P uint8
}

// Interrupt identifies which of the four interrupt sources is being raised.
type Interrupt int

const (
	IRQ Interrupt = iota
	NMI
	BRK
	RST
)

// Operand is the result of resolving an instruction's addressing mode: either
// the accumulator itself, or a bus address to read from/write to.
type Operand struct {
	Accumulator bool
	Address     uint16
}

// CPU is a MOS 6502 wired to a Bus. It has no memory of its own beyond the
// register file; every read and write goes through Bus.
type CPU struct {
	Bus *bus.Bus
	Reg Registers

	// Cycle is the running count of clock cycles consumed since the CPU
	// was created (RST adds its 7 cycles rather than clearing it), shown
	// in the host's status line and used by tests to check instruction
	// timing, including page-crossing and branch-taken penalties.
	Cycle uint64

	// nmiPending latches an edge-triggered NMI request raised by RaiseNMI.
	// Unlike IRQ, which a caller re-asserts every time it wants servicing,
	// NMI fires exactly once per RaiseNMI call: Step consumes and clears
	// the latch at the next instruction boundary.
	nmiPending bool
}

// RaiseNMI latches a non-maskable interrupt request. The CPU services it at
// the start of the next Step call, regardless of the Interrupt-disable flag,
// then clears the latch; calling RaiseNMI again is required to trigger a
// second NMI.
func (c *CPU) RaiseNMI() {
	c.nmiPending = true
}

// New returns a CPU wired to the given bus. The register file starts zeroed;
// callers normally follow with LoadProgram and Interrupt(RST).
func New(b *bus.Bus) *CPU {
	return &CPU{Bus: b}
}

// LoadProgram copies program into the bus starting at start. It does not
// itself reset the CPU; callers typically follow with Interrupt(RST) to
// load the PC from the reset vector.
func (c *CPU) LoadProgram(program []byte, start uint16) {
	for i, b := range program {
		c.Bus.Write(start+uint16(i), b)
	}
}

// SetFlag sets or clears a single bit of the P register.
func (c *CPU) SetFlag(flag uint8, set bool) {
	if set {
		c.Reg.P |= flag
	} else {
		c.Reg.P &^= flag
	}
}

// FlagSet reports whether a single bit of the P register is set.
func (c *CPU) FlagSet(flag uint8) bool {
	return c.Reg.P&flag != 0
}

func (c *CPU) updateNZ(value uint8) {
	c.SetFlag(FlagZero, value == 0)
	c.SetFlag(FlagNegative, value&0x80 != 0)
}

// StackPush pushes a single byte onto the stack at $0100+SP and decrements SP.
func (c *CPU) StackPush(value uint8) {
	c.Bus.Write(StackBase+uint16(c.Reg.SP), value)
	c.Reg.SP--
}

// StackPushU16 pushes a 16-bit value high byte first, matching how RTS/RTI
// expect to pull it back with StackPullU16.
func (c *CPU) StackPushU16(value uint16) {
	c.StackPush(uint8(value >> 8))
	c.StackPush(uint8(value))
}

// StackPull increments SP and pulls the byte now on top of the stack.
func (c *CPU) StackPull() uint8 {
	c.Reg.SP++
	return c.Bus.Read(StackBase + uint16(c.Reg.SP))
}

// StackPullU16 pulls a little-endian 16-bit value: low byte first, then high.
func (c *CPU) StackPullU16() uint16 {
	lo := uint16(c.StackPull())
	hi := uint16(c.StackPull())
	return hi<<8 | lo
}

// Interrupt services one of the four interrupt sources. RST only loads PC
// from the reset vector and costs 7 cycles; IRQ, NMI, and BRK additionally
// push PC and P (with the Break/Unused overlay appropriate to the source)
// before loading PC from their respective vectors.
//
// Unlike a real 6502, IRQ here is not gated on the Interrupt-disable flag:
// the caller (the console, once per frame) decides when an IRQ happens.
func (c *CPU) Interrupt(kind Interrupt) {
	var pushPC uint16
	var vector uint16

	switch kind {
	case BRK:
		pushPC = c.Reg.PC + 1
		vector = IRQVector
	case IRQ:
		pushPC = c.Reg.PC
		vector = IRQVector
	case NMI:
		pushPC = c.Reg.PC
		vector = NMIVector
	case RST:
		vector = RSTVector
	}

	if kind != RST {
		p := c.Reg.P | FlagUnused
		if kind == BRK {
			p |= FlagBreak
		} else {
			p &^= FlagBreak
		}

		c.StackPushU16(pushPC)
		c.StackPush(p)
		c.SetFlag(FlagInterrupt, true)
	}

	c.Reg.PC = c.Bus.ReadU16(vector)
	c.Cycle += 7
}

// UnrecognizedOpcode is returned by Step when the byte at PC has no entry in
// the opcode table.
type UnrecognizedOpcode struct {
	Code byte
	PC   uint16
}

func (e UnrecognizedOpcode) Error() string {
	return "cpu: unrecognized opcode " + hexByte(e.Code) + " at " + hexWord(e.PC)
}

func hexByte(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{'$', digits[b>>4], digits[b&0xf]})
}

func hexWord(w uint16) string {
	const digits = "0123456789abcdef"
	return string([]byte{
		'$',
		digits[(w>>12)&0xf], digits[(w>>8)&0xf],
		digits[(w>>4)&0xf], digits[w&0xf],
	})
}
