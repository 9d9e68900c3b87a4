package cpu

import "byte6502/internal/opcode"

// Step fetches, decodes, and fully executes exactly one instruction: it
// never returns mid-instruction. It returns UnrecognizedOpcode if the byte
// at PC has no entry in the opcode table, in which case PC has already
// advanced past the bad byte but no further work is done.
func (c *CPU) Step() error {
	if c.nmiPending {
		c.nmiPending = false
		c.Interrupt(NMI)
		return nil
	}

	code := c.Bus.Read(c.Reg.PC)
	c.Reg.PC++
	pcAfterFetch := c.Reg.PC

	op := opcode.Table[code]
	if op == nil {
		return UnrecognizedOpcode{Code: code, PC: c.Reg.PC - 1}
	}

	// BRK folds entirely into Interrupt, which accounts for its own
	// cycles and PC; running the generic post-dispatch bookkeeping below
	// would double-count both.
	if op.Mnemonic == "BRK" {
		c.Interrupt(BRK)
		return nil
	}

	c.execute(op)

	if c.Reg.PC == pcAfterFetch {
		c.Reg.PC += uint16(op.Size - 1)
	}
	c.Cycle += uint64(op.BaseCycles)

	return nil
}

// onTickModifier resolves the common "base + index, plus a cycle if that
// crosses a page boundary" shape shared by AbsoluteX/Y and IndirectY.
func (c *CPU) onTickModifier(lo, hi, index byte) Operand {
	base := uint16(hi)<<8 | uint16(lo)
	addr := base + uint16(index)

	if hi != byte(addr>>8) {
		c.Cycle++
	}

	return Operand{Address: addr}
}

// getOperand resolves op's addressing mode against the current PC (which
// points at the first operand byte, i.e. just past the opcode byte itself)
// into either the accumulator or a bus address.
func (c *CPU) getOperand(op *opcode.Opcode) Operand {
	switch op.Mode {
	case opcode.Relative, opcode.Immediate:
		return Operand{Address: c.Reg.PC}
	case opcode.Accumulator:
		return Operand{Accumulator: true}

	case opcode.ZeroPage:
		return Operand{Address: uint16(c.Bus.Read(c.Reg.PC))}
	case opcode.ZeroPageX:
		return Operand{Address: uint16(c.Bus.Read(c.Reg.PC) + c.Reg.X)}
	case opcode.ZeroPageY:
		return Operand{Address: uint16(c.Bus.Read(c.Reg.PC) + c.Reg.Y)}

	case opcode.Absolute:
		return Operand{Address: c.Bus.ReadU16(c.Reg.PC)}
	case opcode.AbsoluteX:
		if op.TickModifier != opcode.NoModifier {
			lo := c.Bus.Read(c.Reg.PC)
			hi := c.Bus.Read(c.Reg.PC + 1)
			return c.onTickModifier(lo, hi, c.Reg.X)
		}
		return Operand{Address: c.Bus.ReadU16(c.Reg.PC) + uint16(c.Reg.X)}
	case opcode.AbsoluteY:
		if op.TickModifier != opcode.NoModifier {
			lo := c.Bus.Read(c.Reg.PC)
			hi := c.Bus.Read(c.Reg.PC + 1)
			return c.onTickModifier(lo, hi, c.Reg.Y)
		}
		return Operand{Address: c.Bus.ReadU16(c.Reg.PC) + uint16(c.Reg.Y)}

	case opcode.Indirect:
		return Operand{Address: c.Bus.ReadU16(c.Bus.ReadU16(c.Reg.PC))}
	case opcode.IndirectX:
		ptr := c.Bus.Read(c.Reg.PC) + c.Reg.X
		return Operand{Address: c.Bus.ReadU16(uint16(ptr))}
	case opcode.IndirectY:
		ptr := uint16(c.Bus.Read(c.Reg.PC))
		if op.TickModifier != opcode.NoModifier {
			lo := c.Bus.Read(ptr)
			hi := c.Bus.Read(ptr + 1)
			return c.onTickModifier(lo, hi, c.Reg.Y)
		}
		return Operand{Address: c.Bus.ReadU16(ptr) + uint16(c.Reg.Y)}
	}

	panic("cpu: unhandled addressing mode")
}

// execute dispatches op to its instruction implementation, with cases grouped
// by instruction family.
func (c *CPU) execute(op *opcode.Opcode) {
	switch op.Mnemonic {
	case "ADC":
		c.adc(op)
	case "AND":
		c.and(op)
	case "ASL":
		c.asl(op)
	case "BIT":
		c.bit(op)
	case "CMP":
		c.cmp(op, c.Reg.A)
	case "CPX":
		c.cmp(op, c.Reg.X)
	case "CPY":
		c.cmp(op, c.Reg.Y)
	case "DEC":
		c.dec(op)
	case "EOR":
		c.eor(op)
	case "INC":
		c.inc(op)
	case "JMP":
		c.jmp(op)
	case "LDA":
		c.lda(op)
	case "LDX":
		c.ldx(op)
	case "LDY":
		c.ldy(op)
	case "LSR":
		c.lsr(op)
	case "ORA":
		c.ora(op)
	case "ROL":
		c.rol(op)
	case "ROR":
		c.ror(op)
	case "SBC":
		c.sbc(op)
	case "STA":
		c.str(op, c.Reg.A)
	case "STX":
		c.str(op, c.Reg.X)
	case "STY":
		c.str(op, c.Reg.Y)

	case "BCC":
		c.branch(op, !c.FlagSet(FlagCarry))
	case "BCS":
		c.branch(op, c.FlagSet(FlagCarry))
	case "BEQ":
		c.branch(op, c.FlagSet(FlagZero))
	case "BNE":
		c.branch(op, !c.FlagSet(FlagZero))
	case "BPL":
		c.branch(op, !c.FlagSet(FlagNegative))
	case "BMI":
		c.branch(op, c.FlagSet(FlagNegative))
	case "BVC":
		c.branch(op, !c.FlagSet(FlagOverflow))
	case "BVS":
		c.branch(op, c.FlagSet(FlagOverflow))

	case "DEX":
		c.Reg.X--
		c.updateNZ(c.Reg.X)
	case "DEY":
		c.Reg.Y--
		c.updateNZ(c.Reg.Y)
	case "INX":
		c.Reg.X++
		c.updateNZ(c.Reg.X)
	case "INY":
		c.Reg.Y++
		c.updateNZ(c.Reg.Y)

	case "CLC":
		c.SetFlag(FlagCarry, false)
	case "CLD":
		c.SetFlag(FlagDecimal, false)
	case "CLI":
		c.SetFlag(FlagInterrupt, false)
	case "CLV":
		c.SetFlag(FlagOverflow, false)
	case "SEC":
		c.SetFlag(FlagCarry, true)
	case "SED":
		c.SetFlag(FlagDecimal, true)
	case "SEI":
		c.SetFlag(FlagInterrupt, true)

	case "PHA":
		c.StackPush(c.Reg.A)
	case "PHP":
		c.StackPush(c.Reg.P | FlagUnused | FlagBreak)
	case "PLA":
		c.Reg.A = c.StackPull()
		c.updateNZ(c.Reg.A)
	case "PLP":
		// The Break bit has no physical flip-flop on real hardware; it
		// only ever exists in the byte pushed to the stack. Pulling it
		// back always reads as set, matching PHP's own push.
		c.Reg.P = c.StackPull() | FlagUnused | FlagBreak

	case "RTI":
		c.Reg.P = c.StackPull() | FlagUnused | FlagBreak
		c.Reg.PC = c.StackPullU16()
	case "RTS":
		c.Reg.PC = c.StackPullU16() + 1
	case "JSR":
		c.jsr(op)

	case "TAX":
		c.Reg.X = c.Reg.A
		c.updateNZ(c.Reg.X)
	case "TAY":
		c.Reg.Y = c.Reg.A
		c.updateNZ(c.Reg.Y)
	case "TSX":
		c.Reg.X = c.Reg.SP
		c.updateNZ(c.Reg.X)
	case "TXA":
		c.Reg.A = c.Reg.X
		c.updateNZ(c.Reg.A)
	case "TXS":
		c.Reg.SP = c.Reg.X
	case "TYA":
		c.Reg.A = c.Reg.Y
		c.updateNZ(c.Reg.A)

	case "NOP":
		// no operation

	default:
		panic("cpu: opcode table entry with unhandled mnemonic " + op.Mnemonic)
	}
}
