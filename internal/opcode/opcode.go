// Package opcode holds the static, read-only metadata for every documented
// MOS 6502 instruction: its size in bytes, base cycle count, addressing
// mode, and any cycle modifier (page-crossing or taken-branch).
//
// The table is built once, at package init, from an embedded JSON file
// (see instructions.json) produced the way a build-time code generator
// would: one record per opcode byte, with holes left for the 105
// unofficial/undocumented byte values this emulator does not implement.
package opcode

import (
	"encoding/json"
	"fmt"
)

// AddressingMode names one of the 13 ways a 6502 instruction can locate its
// operand.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	Relative
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

var modeNames = map[string]AddressingMode{
	"Implied":     Implied,
	"Accumulator": Accumulator,
	"Immediate":   Immediate,
	"Relative":    Relative,
	"ZeroPage":    ZeroPage,
	"ZeroPageX":   ZeroPageX,
	"ZeroPageY":   ZeroPageY,
	"Absolute":    Absolute,
	"AbsoluteX":   AbsoluteX,
	"AbsoluteY":   AbsoluteY,
	"Indirect":    Indirect,
	"IndirectX":   IndirectX,
	"IndirectY":   IndirectY,
}

func (m AddressingMode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return "Unknown"
}

// TickModifier is an extra cycle-cost rule layered on top of an opcode's
// base cycle count.
type TickModifier int

const (
	// NoModifier means the base cycle count is always correct.
	NoModifier TickModifier = iota
	// Branch means the cycle count grows by 1 if the branch is taken, and
	// by another 1 if the branch target crosses a page boundary.
	Branch
	// PageCrossed means the cycle count grows by 1 if the addressing
	// mode's effective-address computation crosses a page boundary.
	PageCrossed
)

var modifierNames = map[string]TickModifier{
	"Branch":      Branch,
	"PageCrossed": PageCrossed,
}

// Opcode is the immutable descriptor for one documented opcode byte.
type Opcode struct {
	Code         byte
	Size         byte
	BaseCycles   byte
	Mnemonic     string
	Mode         AddressingMode
	TickModifier TickModifier
}

type rawOpcode struct {
	Code         byte    `json:"code"`
	Size         byte    `json:"size"`
	Tick         byte    `json:"tick"`
	Name         string  `json:"name"`
	Mode         string  `json:"mode"`
	TickModifier *string `json:"tick_modifier"`
}

// Table is the static, 256-slot opcode table, indexed by opcode byte.
// Undocumented byte values hold a nil entry.
var Table [256]*Opcode

func init() {
	var raw []rawOpcode
	if err := json.Unmarshal(instructionsJSON, &raw); err != nil {
		panic(fmt.Sprintf("opcode: failed to parse embedded instruction table: %v", err))
	}

	for _, r := range raw {
		mode, ok := modeNames[r.Mode]
		if !ok {
			panic(fmt.Sprintf("opcode: unknown addressing mode %q for opcode 0x%02x", r.Mode, r.Code))
		}

		modifier := NoModifier
		if r.TickModifier != nil {
			m, ok := modifierNames[*r.TickModifier]
			if !ok {
				panic(fmt.Sprintf("opcode: unknown tick modifier %q for opcode 0x%02x", *r.TickModifier, r.Code))
			}
			modifier = m
		}

		Table[r.Code] = &Opcode{
			Code:         r.Code,
			Size:         r.Size,
			BaseCycles:   r.Tick,
			Mnemonic:     r.Name,
			Mode:         mode,
			TickModifier: modifier,
		}
	}
}
