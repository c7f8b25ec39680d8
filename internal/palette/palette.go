// Package palette holds the ANSI color sets behind the built-in themes.
package palette

import "strconv"

// SGR attributes.
const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Faint     = "\x1b[2m"
	Italic    = "\x1b[3m"
	Underline = "\x1b[4m"
)

// Palette assigns a foreground color to each part of an event dump.
type Palette struct {
	Offset    string
	Container string
	Atom      string
	Str       string
	Text      string
	Verbatim  string
}

// FG returns the 24-bit foreground sequence for an 0xRRGGBB color.
func FG(rgb uint32) string {
	return "\x1b[38;2;" +
		strconv.Itoa(int(rgb>>16&0xff)) + ";" +
		strconv.Itoa(int(rgb>>8&0xff)) + ";" +
		strconv.Itoa(int(rgb&0xff)) + "m"
}

var (
	PaletteDefault = Palette{
		Offset:    FG(0x6c7086),
		Container: FG(0x89b4fa),
		Atom:      FG(0xf9e2af),
		Str:       FG(0xa6adc8),
		Text:      FG(0xcdd6f4),
		Verbatim:  FG(0xa6e3a1),
	}
	PaletteGruvbox = Palette{
		Offset:    FG(0x928374),
		Container: FG(0x83a598),
		Atom:      FG(0xfabd2f),
		Str:       FG(0xa89984),
		Text:      FG(0xebdbb2),
		Verbatim:  FG(0xb8bb26),
	}
	PaletteGruvboxLight = Palette{
		Offset:    FG(0x928374),
		Container: FG(0x076678),
		Atom:      FG(0xb57614),
		Str:       FG(0x7c6f64),
		Text:      FG(0x3c3836),
		Verbatim:  FG(0x79740e),
	}
	PaletteDracula = Palette{
		Offset:    FG(0x6272a4),
		Container: FG(0xbd93f9),
		Atom:      FG(0xffb86c),
		Str:       FG(0x8be9fd),
		Text:      FG(0xf8f8f2),
		Verbatim:  FG(0x50fa7b),
	}
	PaletteNord = Palette{
		Offset:    FG(0x4c566a),
		Container: FG(0x81a1c1),
		Atom:      FG(0xebcb8b),
		Str:       FG(0x88c0d0),
		Text:      FG(0xeceff4),
		Verbatim:  FG(0xa3be8c),
	}
	PaletteTokyoNight = Palette{
		Offset:    FG(0x565f89),
		Container: FG(0x7aa2f7),
		Atom:      FG(0xe0af68),
		Str:       FG(0x7dcfff),
		Text:      FG(0xc0caf5),
		Verbatim:  FG(0x9ece6a),
	}
	PaletteSolarizedDark = Palette{
		Offset:    FG(0x586e75),
		Container: FG(0x268bd2),
		Atom:      FG(0xb58900),
		Str:       FG(0x2aa198),
		Text:      FG(0x93a1a1),
		Verbatim:  FG(0x859900),
	}
	PaletteSolarizedLight = Palette{
		Offset:    FG(0x93a1a1),
		Container: FG(0x268bd2),
		Atom:      FG(0xb58900),
		Str:       FG(0x2aa198),
		Text:      FG(0x586e75),
		Verbatim:  FG(0x859900),
	}
	PaletteGithubDark = Palette{
		Offset:    FG(0x8b949e),
		Container: FG(0x79c0ff),
		Atom:      FG(0xffa657),
		Str:       FG(0xa5d6ff),
		Text:      FG(0xc9d1d9),
		Verbatim:  FG(0x7ee787),
	}
	PaletteGithubLight = Palette{
		Offset:    FG(0x6e7781),
		Container: FG(0x0550ae),
		Atom:      FG(0x953800),
		Str:       FG(0x0a3069),
		Text:      FG(0x24292f),
		Verbatim:  FG(0x116329),
	}
	PaletteRosePine = Palette{
		Offset:    FG(0x6e6a86),
		Container: FG(0xc4a7e7),
		Atom:      FG(0xf6c177),
		Str:       FG(0x9ccfd8),
		Text:      FG(0xe0def4),
		Verbatim:  FG(0x31748f),
	}
	PaletteKanagawa = Palette{
		Offset:    FG(0x727169),
		Container: FG(0x7e9cd8),
		Atom:      FG(0xe6c384),
		Str:       FG(0x7fb4ca),
		Text:      FG(0xdcd7ba),
		Verbatim:  FG(0x98bb6c),
	}
)
