// Command byte6502 runs a raw 6502 binary image against the fantasy-console
// platform in an interactive terminal UI.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"byte6502/console"
	"byte6502/host"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [program.bin]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	var program []byte
	if flag.NArg() == 1 {
		var err error
		program, err = os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "byte6502: %v\n", err)
			os.Exit(1)
		}
	}

	c := console.New(uint32(os.Getpid()))
	adapter := host.New(c, program, 0x0000)

	p := tea.NewProgram(adapter)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "byte6502: %v\n", err)
		os.Exit(1)
	}
}
