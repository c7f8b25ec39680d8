package inline

import "pkt.systems/jot/span"

// Atom is a single, non-nestable inline marker.
type Atom uint8

const (
	Softbreak Atom = iota
	Hardbreak
	Escape
	Nbsp
	Ellipsis
	EnDash
	EmDash
)

var atomNames = [...]string{
	Softbreak: "Softbreak",
	Hardbreak: "Hardbreak",
	Escape:    "Escape",
	Nbsp:      "Nbsp",
	Ellipsis:  "Ellipsis",
	EnDash:    "EnDash",
	EmDash:    "EmDash",
}

func (a Atom) String() string {
	if int(a) < len(atomNames) {
		return atomNames[a]
	}
	return "Atom?"
}

// Container is a nestable inline span kind delimited by Enter and Exit events.
type Container uint8

const (
	Span Container = iota
	// typesetting
	Subscript
	Superscript
	Insert
	Delete
	Emphasis
	Strong
	Mark
	// smart quoting
	SingleQuoted
	DoubleQuoted
	// verbatim
	Verbatim
	RawFormat
	InlineMath
	DisplayMath
	// links, never produced by this package
	ReferenceLink
	InlineLink
	AutoLink
)

var containerNames = [...]string{
	Span:          "Span",
	Subscript:     "Subscript",
	Superscript:   "Superscript",
	Insert:        "Insert",
	Delete:        "Delete",
	Emphasis:      "Emphasis",
	Strong:        "Strong",
	Mark:          "Mark",
	SingleQuoted:  "SingleQuoted",
	DoubleQuoted:  "DoubleQuoted",
	Verbatim:      "Verbatim",
	RawFormat:     "RawFormat",
	InlineMath:    "InlineMath",
	DisplayMath:   "DisplayMath",
	ReferenceLink: "ReferenceLink",
	InlineLink:    "InlineLink",
	AutoLink:      "AutoLink",
}

func (c Container) String() string {
	if int(c) < len(containerNames) {
		return containerNames[c]
	}
	return "Container?"
}

// IsVerbatim reports whether the container holds opaque content.
func (c Container) IsVerbatim() bool {
	switch c {
	case Verbatim, RawFormat, InlineMath, DisplayMath:
		return true
	}
	return false
}

// EventKind discriminates Event.
type EventKind uint8

const (
	KindStr EventKind = iota
	KindEnter
	KindExit
	KindAtom
	// KindAttributes is reserved for attribute lists and never produced.
	KindAttributes
)

// Event is one element of the flat inline event stream. Container is set for
// KindEnter and KindExit, Atom for KindAtom.
type Event struct {
	Kind      EventKind
	Container Container
	Atom      Atom
	Span      span.Span
}

// Enter returns the kind part of an Enter(c) event.
func Enter(c Container) Event { return Event{Kind: KindEnter, Container: c} }

// Exit returns the kind part of an Exit(c) event.
func Exit(c Container) Event { return Event{Kind: KindExit, Container: c} }

// AtomEvent returns the kind part of an Atom(a) event.
func AtomEvent(a Atom) Event { return Event{Kind: KindAtom, Atom: a} }

// Str returns the kind part of a Str event.
func Str() Event { return Event{Kind: KindStr} }

// At returns e with its span replaced.
func (e Event) At(s span.Span) Event {
	e.Span = s
	return e
}

// SameKind reports whether e and other differ at most in their spans.
func (e Event) SameKind(other Event) bool {
	return e.Kind == other.Kind && e.Container == other.Container && e.Atom == other.Atom
}

// KindString describes the event without its span, e.g. "Enter(Strong)".
func (e Event) KindString() string {
	switch e.Kind {
	case KindEnter:
		return "Enter(" + e.Container.String() + ")"
	case KindExit:
		return "Exit(" + e.Container.String() + ")"
	case KindAtom:
		return "Atom(" + e.Atom.String() + ")"
	case KindAttributes:
		return "Attributes"
	}
	return "Str"
}

func (e Event) String() string {
	return e.KindString() + "@" + e.Span.String()
}
