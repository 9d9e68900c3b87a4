package cpu

import (
	"byte6502/internal/mask"
	"byte6502/internal/opcode"
)

// shiftLeft, shiftRight, rotateLeft and rotateRight implement the four
// bit-shuffling instructions' core byte transform, shared between their
// accumulator and memory-operand forms.

func (c *CPU) shiftLeft(value uint8) uint8 {
	c.SetFlag(FlagCarry, value>>7 == 1)
	result := value << 1
	c.updateNZ(result)
	return result
}

func (c *CPU) shiftRight(value uint8) uint8 {
	c.SetFlag(FlagCarry, value&0x1 != 0)
	result := value >> 1
	c.SetFlag(FlagZero, value == 0)
	c.SetFlag(FlagNegative, false)
	return result
}

func (c *CPU) rotateLeft(value uint8) uint8 {
	carryIn := uint8(0)
	if c.FlagSet(FlagCarry) {
		carryIn = 1
	}
	result := value<<1&0xfe | carryIn

	c.SetFlag(FlagCarry, value&0x80 != 0)
	c.updateNZ(result)
	return result
}

func (c *CPU) rotateRight(value uint8) uint8 {
	carryIn := uint8(0)
	if c.FlagSet(FlagCarry) {
		carryIn = 1
	}
	result := value>>1&0x7f | carryIn<<7

	c.SetFlag(FlagCarry, value&0x1 != 0)
	c.updateNZ(result)
	return result
}

func (c *CPU) adc(op *opcode.Opcode) {
	m := uint16(c.Reg.A)
	carry := uint16(0)
	if c.FlagSet(FlagCarry) {
		carry = 1
	}

	operand := c.getOperand(op)
	n := uint16(c.Bus.Read(operand.Address))

	if c.FlagSet(FlagDecimal) {
		// Nibble-wise decimal correction. The low nibble is masked with
		// mask.Last (it stays in place, unlike mask.First which would
		// shift the high nibble down and break the positional math
		// below), the high nibble with a plain &0xf0 to keep it in
		// position for the carry-into-bit-7 overflow check.
		l := uint16(mask.Last(byte(m), mask.I4)) + uint16(mask.Last(byte(n), mask.I4)) + carry
		h := (m & 0xf0) + (n & 0xf0)

		if l > 0x09 {
			l = (l + 0x06) & 0x0f
			h += 0x10
		}
		c.SetFlag(FlagOverflow, ^(m^n)&(m^h)&0x80 != 0)
		if h > 0x90 {
			h += 0x60
		}
		c.SetFlag(FlagCarry, h>>8 > 0)

		c.Reg.A = uint8(h | l)
	} else {
		s := m + n + carry

		c.SetFlag(FlagCarry, s > 0xff)
		c.SetFlag(FlagOverflow, ^(m^n)&(m^s)&0x80 != 0)

		c.Reg.A = uint8(s)
	}

	c.updateNZ(c.Reg.A)
}

func (c *CPU) sbc(op *opcode.Opcode) {
	m := c.Reg.A
	carry := uint8(0)
	if c.FlagSet(FlagCarry) {
		carry = 1
	}

	operand := c.getOperand(op)
	n := c.Bus.Read(operand.Address)

	s := uint16(m) + uint16(^n) + uint16(carry)

	c.updateNZ(uint8(s))
	c.SetFlag(FlagCarry, s > 0xff)
	c.SetFlag(FlagOverflow, (m^n)&(m^uint8(s))&0x80 != 0)

	if c.FlagSet(FlagDecimal) {
		l := int16(mask.Last(m, mask.I4)) - int16(mask.Last(n, mask.I4)) + int16(carry) - 1
		h := int16(m&0xf0) - int16(n&0xf0)

		if l < 0x00 {
			l = (l - 0x06) & 0x0f
			h -= 0x10
		}
		if h < 0x00 {
			h = (h - 0x60) & 0xf0
		}

		s = uint16(h | l)
	}

	c.Reg.A = uint8(s)
	c.updateNZ(c.Reg.A)
}

func (c *CPU) and(op *opcode.Opcode) {
	operand := c.getOperand(op)
	c.Reg.A &= c.Bus.Read(operand.Address)
	c.updateNZ(c.Reg.A)
}

func (c *CPU) asl(op *opcode.Opcode) {
	operand := c.getOperand(op)
	if operand.Accumulator {
		c.Reg.A = c.shiftLeft(c.Reg.A)
		return
	}
	c.Bus.Write(operand.Address, c.shiftLeft(c.Bus.Read(operand.Address)))
}

func (c *CPU) lsr(op *opcode.Opcode) {
	operand := c.getOperand(op)
	if operand.Accumulator {
		c.Reg.A = c.shiftRight(c.Reg.A)
		return
	}
	c.Bus.Write(operand.Address, c.shiftRight(c.Bus.Read(operand.Address)))
}

func (c *CPU) rol(op *opcode.Opcode) {
	operand := c.getOperand(op)
	if operand.Accumulator {
		c.Reg.A = c.rotateLeft(c.Reg.A)
		return
	}
	c.Bus.Write(operand.Address, c.rotateLeft(c.Bus.Read(operand.Address)))
}

func (c *CPU) ror(op *opcode.Opcode) {
	operand := c.getOperand(op)
	if operand.Accumulator {
		c.Reg.A = c.rotateRight(c.Reg.A)
		return
	}
	c.Bus.Write(operand.Address, c.rotateRight(c.Bus.Read(operand.Address)))
}

func (c *CPU) bit(op *opcode.Opcode) {
	operand := c.getOperand(op)
	value := c.Bus.Read(operand.Address)
	result := c.Reg.A & value

	c.updateNZ(result)
	c.SetFlag(FlagNegative, value&0x80 != 0)
	c.SetFlag(FlagOverflow, value&0x40 != 0)
}

// branch implements every conditional branch: condition is the already
// evaluated flag test (true means take the branch). Taking a branch costs an
// extra cycle, and a further one if it lands on a different page.
func (c *CPU) branch(op *opcode.Opcode, condition bool) {
	if !condition {
		return
	}

	c.Cycle++

	operand := c.getOperand(op)
	offset := int8(c.Bus.Read(operand.Address))
	page := c.Reg.PC >> 8

	c.Reg.PC = c.Reg.PC + 1 + uint16(offset)

	if page != c.Reg.PC>>8 {
		c.Cycle++
	}
}

func (c *CPU) cmp(op *opcode.Opcode, reg uint8) {
	operand := c.getOperand(op)
	value := c.Bus.Read(operand.Address)

	c.SetFlag(FlagZero, reg == value)
	c.SetFlag(FlagCarry, reg >= value)
	c.SetFlag(FlagNegative, (reg-value)&0x80 != 0)
}

func (c *CPU) dec(op *opcode.Opcode) {
	operand := c.getOperand(op)
	value := c.Bus.Read(operand.Address) - 1
	c.Bus.Write(operand.Address, value)
	c.updateNZ(value)
}

func (c *CPU) inc(op *opcode.Opcode) {
	operand := c.getOperand(op)
	value := c.Bus.Read(operand.Address) + 1
	c.Bus.Write(operand.Address, value)
	c.updateNZ(value)
}

func (c *CPU) eor(op *opcode.Opcode) {
	operand := c.getOperand(op)
	c.Reg.A ^= c.Bus.Read(operand.Address)
	c.updateNZ(c.Reg.A)
}

func (c *CPU) ora(op *opcode.Opcode) {
	operand := c.getOperand(op)
	c.Reg.A |= c.Bus.Read(operand.Address)
	c.updateNZ(c.Reg.A)
}

// jmp implements both the absolute and indirect forms, including the
// famous page-wrap hardware bug: when the indirect pointer's low byte is
// $FF, the high byte of the target is fetched from the start of the SAME
// page rather than the next one.
func (c *CPU) jmp(op *opcode.Opcode) {
	pointer := c.Bus.ReadU16(c.Reg.PC)

	if op.Code != 0x6c {
		c.Reg.PC = pointer
		return
	}

	if pointer&0xff != 0xff {
		c.Reg.PC = c.Bus.ReadU16(pointer)
		return
	}

	lo := uint16(c.Bus.Read(pointer))
	hi := uint16(c.Bus.Read(pointer & 0xff00))
	c.Reg.PC = hi<<8 | lo
}

func (c *CPU) jsr(op *opcode.Opcode) {
	operand := c.getOperand(op)
	c.StackPushU16(c.Reg.PC + 1)
	c.Reg.PC = operand.Address
}

func (c *CPU) lda(op *opcode.Opcode) {
	operand := c.getOperand(op)
	c.Reg.A = c.Bus.Read(operand.Address)
	c.updateNZ(c.Reg.A)
}

func (c *CPU) ldx(op *opcode.Opcode) {
	operand := c.getOperand(op)
	c.Reg.X = c.Bus.Read(operand.Address)
	c.updateNZ(c.Reg.X)
}

func (c *CPU) ldy(op *opcode.Opcode) {
	operand := c.getOperand(op)
	c.Reg.Y = c.Bus.Read(operand.Address)
	c.updateNZ(c.Reg.Y)
}

func (c *CPU) str(op *opcode.Opcode, reg uint8) {
	operand := c.getOperand(op)
	c.Bus.Write(operand.Address, reg)
}
