// Package console wires a CPU and a single flat RAM bank into the
// fantasy-console platform: program loading, the per-frame drive loop, the
// memory-mapped input/entropy/video registers, and framebuffer readout.
package console

import (
	"log"

	"byte6502/bus"
	"byte6502/cpu"
	"byte6502/internal/entropy"
	"byte6502/peripheral"
)

const (
	RAMSize = 0x10000

	RegVideo = 0x00fd
	RegRand  = 0x00fe
	RegInput = 0x00ff

	FramebufferWidth  = 64
	FramebufferHeight = 64
	FramebufferSize   = FramebufferWidth * FramebufferHeight

	// InstructionsPerFrame approximates a ~6MHz 6502 at 60 frames/second.
	InstructionsPerFrame = 6_400_000 / 60
)

// Console is the top-level orchestrator: one CPU, one 64KiB RAM bank
// covering the entire address space, and a deterministic entropy source.
type Console struct {
	CPU     *cpu.CPU
	rand    *entropy.Source
	Palette [16]uint32

	Logger *log.Logger
}

// New constructs a Console with a freshly attached 64KiB RAM bank and an
// entropy source seeded from seed. The CPU is not yet reset; call
// LoadProgram to load a program image and issue RST.
func New(seed uint32) *Console {
	b := bus.New()
	if err := b.Attach(0x0000, 0xffff, peripheral.NewRAM(RAMSize)); err != nil {
		// Attaching a single full-range bank to a freshly constructed
		// bus can never collide with anything.
		panic(err)
	}

	return &Console{
		CPU:     cpu.New(b),
		rand:    entropy.New(seed),
		Palette: DefaultPalette,
		Logger:  log.Default(),
	}
}

// LoadProgram writes program into the bus starting at start, then issues an
// RST interrupt so PC is reseeded from whatever reset vector the image (or
// the caller) has placed at $FFFC/$FFFD.
func (c *Console) LoadProgram(program []byte, start uint16) {
	c.CPU.LoadProgram(program, start)
	c.CPU.Interrupt(cpu.RST)
}

// Step runs one frame's worth of constant per-frame work: latches the input
// mask, drives InstructionsPerFrame CPU steps each preceded by a fresh
// entropy byte, and signals the frame boundary with an IRQ. An
// UnrecognizedOpcode from any single step is logged and the loop continues;
// PC has already advanced past the offending byte.
func (c *Console) Step(inputState byte) {
	c.CPU.Bus.Write(RegInput, inputState)

	for i := 0; i < InstructionsPerFrame; i++ {
		c.CPU.Bus.Write(RegRand, c.rand.NextByte())

		if err := c.CPU.Step(); err != nil {
			if c.Logger != nil {
				c.Logger.Print(err)
			}
		}
	}

	c.CPU.Interrupt(cpu.IRQ)
}

// Framebuffer materializes the 64x64 indexed-color video page currently
// selected by $FD into RGBA pixels via the active palette.
func (c *Console) Framebuffer() [FramebufferSize]uint32 {
	page := uint16(c.CPU.Bus.Read(RegVideo) & 0x0f)
	base := page << 12

	var frame [FramebufferSize]uint32
	for i := range frame {
		index := c.CPU.Bus.Read(base+uint16(i)) & 0x0f
		frame[i] = c.Palette[index]
	}
	return frame
}

// MemoryRegion delegates to the bus's write shadow, clamped to the address
// space.
func (c *Console) MemoryRegion(start uint16, length int) []byte {
	return c.CPU.Bus.GetMemoryRegion(start, length)
}
