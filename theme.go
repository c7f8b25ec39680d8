package jot

import (
	"sort"
	"strings"

	"pkt.systems/jot/inline"
	"pkt.systems/jot/internal/palette"
)

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Render wraps s in the style, resetting attributes afterwards.
func (s Style) Render(text string) string {
	if s.Prefix == "" || text == "" {
		return text
	}
	return s.Prefix + text + palette.Reset
}

// Styles groups the styles used by the tree dump.
type Styles struct {
	Offset Style
	Enter  Style
	Exit   Style
	Atom   Style
	Str    Style
	Text   Style
	// Mode styles Enter and Exit of verbatim, math and raw format containers.
	Mode Style
}

// Theme provides named styles for event dumps.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func style(prefixes ...string) Style {
	var b strings.Builder
	for _, p := range prefixes {
		b.WriteString(p)
	}
	return Style{Prefix: b.String()}
}

func stylesFromPalette(p palette.Palette) Styles {
	return Styles{
		Offset: style(palette.Faint, p.Offset),
		Enter:  style(palette.Bold, p.Container),
		Exit:   style(p.Container),
		Atom:   style(palette.Italic, p.Atom),
		Str:    style(p.Str),
		Text:   style(p.Text),
		Mode:   style(palette.Bold, p.Verbatim),
	}
}

// styleFor picks the style of an event's kind column.
func (s Styles) styleFor(ev inline.Event) Style {
	switch ev.Kind {
	case inline.KindEnter, inline.KindExit:
		if ev.Container.IsVerbatim() {
			return s.Mode
		}
		if ev.Kind == inline.KindEnter {
			return s.Enter
		}
		return s.Exit
	case inline.KindAtom:
		return s.Atom
	}
	return s.Str
}

var builtinThemes = map[string]Theme{
	"default":         theme{name: "default", styles: stylesFromPalette(palette.PaletteDefault)},
	"gruvbox":         theme{name: "gruvbox", styles: stylesFromPalette(palette.PaletteGruvbox)},
	"gruvbox-light":   theme{name: "gruvbox-light", styles: stylesFromPalette(palette.PaletteGruvboxLight)},
	"dracula":         theme{name: "dracula", styles: stylesFromPalette(palette.PaletteDracula)},
	"nord":            theme{name: "nord", styles: stylesFromPalette(palette.PaletteNord)},
	"tokyo-night":     theme{name: "tokyo-night", styles: stylesFromPalette(palette.PaletteTokyoNight)},
	"solarized-dark":  theme{name: "solarized-dark", styles: stylesFromPalette(palette.PaletteSolarizedDark)},
	"solarized-light": theme{name: "solarized-light", styles: stylesFromPalette(palette.PaletteSolarizedLight)},
	"github-dark":     theme{name: "github-dark", styles: stylesFromPalette(palette.PaletteGithubDark)},
	"github-light":    theme{name: "github-light", styles: stylesFromPalette(palette.PaletteGithubLight)},
	"rose-pine":       theme{name: "rose-pine", styles: stylesFromPalette(palette.PaletteRosePine)},
	"kanagawa":        theme{name: "kanagawa", styles: stylesFromPalette(palette.PaletteKanagawa)},
	"plain":           theme{name: "plain"},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}
