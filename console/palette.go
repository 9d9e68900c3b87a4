package console

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// DefaultPalette is the console's built-in 16-color indexed palette, each
// entry packed as 0xRRGGBBAA. Entries 13 and 14 are intentionally the same
// color (both colornames.Dodgerblue) rather than two lovingly distinguished
// shades of blue; that single repeated slot predates this codebase and
// nothing in a 4-bit color index depends on all 16 entries being distinct.
var DefaultPalette = [16]uint32{
	pack(colornames.Black),
	pack(colornames.White),
	pack(colornames.Firebrick),
	pack(colornames.Paleturquoise),
	pack(colornames.Orchid),
	pack(colornames.Mediumseagreen),
	pack(colornames.Darkblue),
	pack(colornames.Khaki),
	pack(colornames.Saddlebrown),
	pack(colornames.Lightcoral),
	pack(colornames.Dimgray),
	pack(colornames.Gray),
	pack(colornames.Yellowgreen),
	pack(colornames.Dodgerblue),
	pack(colornames.Dodgerblue),
	pack(colornames.Silver),
}

func pack(c color.Color) uint32 {
	r, g, b, a := c.RGBA()
	return uint32(r>>8)<<24 | uint32(g>>8)<<16 | uint32(b>>8)<<8 | uint32(a>>8)
}
