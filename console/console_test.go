package console

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"byte6502/cpu"
	"byte6502/internal/entropy"
)

func TestLoadProgramIssuesRST(t *testing.T) {
	c := New(1)
	c.CPU.Bus.WriteU16(cpu.RSTVector, 0x9000)

	c.LoadProgram([]byte{0xa9, 0x42}, 0x9000) // LDA #$42
	assert.Equal(t, uint16(0x9000), c.CPU.Reg.PC)
}

func TestStepWritesInputMaskAndAdvancesEntropy(t *testing.T) {
	c := New(1)
	c.CPU.Bus.WriteU16(cpu.RSTVector, 0x8000)
	// LDA $FF; STA $00; LDA $FE; STA $01; then spin: JMP $8006
	c.LoadProgram([]byte{
		0xad, 0xff, 0x00, // LDA $00FF
		0x8d, 0x00, 0x00, // STA $0000
		0xad, 0xfe, 0x00, // LDA $00FE
		0x8d, 0x01, 0x00, // STA $0001
		0x4c, 0x06, 0x80, // JMP $8006
	}, 0x8000)

	c.Step(0b1010_0101)

	assert.Equal(t, byte(0b1010_0101), c.CPU.Bus.Read(0x0000))
	// Each of the frame's InstructionsPerFrame steps is preceded by a fresh
	// entropy byte and nothing else writes $FE, so the register ends the
	// frame holding the last byte drawn from a generator with the same seed.
	want := entropy.New(1)
	var last byte
	for i := 0; i < InstructionsPerFrame; i++ {
		last = want.NextByte()
	}
	assert.Equal(t, last, c.CPU.Bus.Read(RegRand))
}

func TestStepLogsAndContinuesPastUnrecognizedOpcode(t *testing.T) {
	c := New(1)
	c.CPU.Bus.WriteU16(cpu.RSTVector, 0x8000)
	c.LoadProgram([]byte{0x02, 0x02, 0x02}, 0x8000) // three unrecognized bytes, then floor noise

	var logged bytes.Buffer
	c.Logger = log.New(&logged, "", 0)

	assert.NotPanics(t, func() { c.Step(0) })
	assert.Contains(t, logged.String(), "cpu: unrecognized opcode $02 at $8000")
}

func TestFramebufferReadsSelectedVideoPage(t *testing.T) {
	c := New(1)

	c.CPU.Bus.Write(RegVideo, 0x02) // page 2 -> base $2000
	for i := 0; i < FramebufferSize; i++ {
		c.CPU.Bus.Write(0x2000+uint16(i), byte(i&0x0f))
	}

	frame := c.Framebuffer()
	for i := 0; i < FramebufferSize; i++ {
		assert.Equal(t, c.Palette[i&0x0f], frame[i])
	}
}

func TestMemoryRegionDelegatesToBusShadow(t *testing.T) {
	c := New(1)
	c.CPU.Bus.Write(0x10, 0x99)
	region := c.MemoryRegion(0x10, 1)
	assert.Equal(t, byte(0x99), region[0])
}
