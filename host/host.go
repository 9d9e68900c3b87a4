// Package host adapts a console.Console to bubbletea, driving one frame per
// tick and rendering the framebuffer as a lipgloss-styled character grid.
package host

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"byte6502/console"
)

// FrameRate is the display's nominal refresh rate; one tickMsg fires at
// this rate and drives exactly one Console.Step.
const FrameRate = 60

// Input bit assignments, per the console's $FF register.
const (
	InputRight  = 0b0000_0001
	InputLeft   = 0b0000_0010
	InputDown   = 0b0000_0100
	InputUp     = 0b0000_1000
	InputStart  = 0b0001_0000
	InputSelect = 0b0010_0000
	InputB      = 0b0100_0000
	InputA      = 0b1000_0000
)

var keyBits = map[string]byte{
	"right": InputRight,
	"left":  InputLeft,
	"down":  InputDown,
	"up":    InputUp,
	"enter": InputStart,
	" ":     InputSelect,
	"z":     InputB,
	"x":     InputA,
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/FrameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Adapter is a tea.Model wrapping a Console: the program image and its load
// address, the held-key set for the current frame, and a debug-dump toggle.
type Adapter struct {
	console *console.Console
	program []byte
	start   uint16

	held  map[string]bool
	debug bool
}

// New returns an Adapter ready to load program at start once the bubbletea
// program starts running.
func New(c *console.Console, program []byte, start uint16) Adapter {
	return Adapter{console: c, program: program, start: start, held: map[string]bool{}}
}

// Init loads the program and schedules the first frame tick.
func (a Adapter) Init() tea.Cmd {
	a.console.LoadProgram(a.program, a.start)
	return tick()
}

// Update handles key presses (updating the held-key set) and frame ticks
// (advancing the console by exactly one frame).
func (a Adapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		s := msg.String()
		switch s {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "ctrl+d":
			a.debug = !a.debug
			return a, nil
		}
		a.held[s] = true
		return a, nil

	case tickMsg:
		a.console.Step(a.inputMask())
		// Held keys are level-triggered for exactly one frame; bubbletea
		// doesn't deliver key-up events, so the mask is cleared each
		// frame and rebuilt from whatever key messages arrive next.
		a.held = map[string]bool{}
		return a, tick()
	}

	return a, nil
}

func (a Adapter) inputMask() byte {
	var mask byte
	for key, held := range a.held {
		if !held {
			continue
		}
		if bit, ok := keyBits[key]; ok {
			mask |= bit
		}
	}
	return mask
}

// View renders the current framebuffer as a grid of lipgloss-styled cells,
// a one-line register/cycle status line, and (when toggled with Ctrl+D) a
// go-spew dump of the CPU registers for debugging.
func (a Adapter) View() string {
	frame := a.console.Framebuffer()

	var rows []string
	for y := 0; y < console.FramebufferHeight; y++ {
		var row strings.Builder
		for x := 0; x < console.FramebufferWidth; x++ {
			color := frame[y*console.FramebufferWidth+x]
			style := lipgloss.NewStyle().Background(lipgloss.Color(fmt.Sprintf("#%06x", color>>8)))
			row.WriteString(style.Render("  "))
		}
		rows = append(rows, row.String())
	}

	status := fmt.Sprintf(
		"PC:%04x A:%02x X:%02x Y:%02x SP:%02x P:%02x cycle:%d",
		a.console.CPU.Reg.PC, a.console.CPU.Reg.A, a.console.CPU.Reg.X,
		a.console.CPU.Reg.Y, a.console.CPU.Reg.SP, a.console.CPU.Reg.P,
		a.console.CPU.Cycle,
	)

	view := lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n"), status)
	if a.debug {
		view = lipgloss.JoinVertical(lipgloss.Left, view, spew.Sdump(a.console.CPU.Reg))
	}
	return view
}
