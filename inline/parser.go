// Package inline parses the inline content of a single block into a flat
// stream of events: container Enter/Exit pairs, atoms and literal Str runs.
//
// Input may arrive in several chunks. Events are only yielded once they can
// no longer change, so the stream is the same whether the source is given at
// once or split at token boundaries. Unmatched markup degrades to Str; the
// parser never reports a parse error.
//
// A typical driver:
//
//	p := inline.NewParser()
//	for i, chunk := range chunks {
//		p.Parse(chunk, i == len(chunks)-1)
//		for {
//			ev, ok := p.Next()
//			if !ok {
//				break
//			}
//			handle(ev)
//		}
//	}
package inline

import (
	"fmt"
	"strings"
	"unicode"

	"pkt.systems/jot/internal/lex"
	"pkt.systems/jot/span"
)

// Parser is an incremental inline event parser. The zero value is not ready
// for use; call NewParser.
type Parser struct {
	openers []opener
	events  eventQueue
	// span of the token(s) of the event being parsed; its end is the
	// cumulative offset into the logical source.
	span  span.Span
	lexer lex.Lexer
	state state
	last  bool
}

// NewParser returns a parser positioned at offset zero.
func NewParser() *Parser {
	return &Parser{}
}

// Reset returns p to its freshly constructed state, keeping allocated
// buffers.
func (p *Parser) Reset() {
	p.openers = p.openers[:0]
	p.events.reset()
	p.span = span.Span{}
	p.lexer.Reset("")
	p.state = state{}
	p.last = false
}

// Parse supplies the next chunk of source. last marks the final chunk; no
// chunk may follow it. The previous chunk must have been drained with Next
// until it returned false.
func (p *Parser) Parse(src string, last bool) {
	if p.last {
		panic("inline: chunk supplied after the final chunk")
	}
	if _, pending := p.lexer.Peek(); pending {
		panic("inline: chunk supplied before the previous one was consumed")
	}
	p.lexer.Reset(src)
	p.last = last
}

// Offset returns the cumulative number of source bytes consumed so far.
func (p *Parser) Offset() int {
	return p.span.End
}

// Next returns the next finished event. It returns false when more input is
// needed before another event can be determined, or when the final chunk
// has been fully drained.
func (p *Parser) Next() (Event, bool) {
	needMore := false
	for p.undecided() {
		ev, ok := p.parseEvent()
		if !ok {
			needMore = true
			break
		}
		p.events.push(ev)
	}
	if needMore && !p.last {
		return Event{}, false
	}

	ev, ok := p.events.pop()
	if !ok {
		if c, _, _, ok := p.state.verbatim(); ok {
			p.state = state{}
			return Exit(c).At(span.EmptyAt(p.span.End)), true
		}
		return Event{}, false
	}
	if ev.Kind == KindStr {
		for {
			next, ok := p.events.front()
			if !ok || next.Kind != KindStr {
				break
			}
			if ev.Span.End != next.Span.Start {
				panic(fmt.Sprintf("inline: discontinuous str spans %v and %v", ev.Span, next.Span))
			}
			ev.Span = ev.Span.Union(next.Span)
			p.events.pop()
		}
	}
	return ev, true
}

// Done reports whether the final chunk has been supplied and every event,
// including a synthesized verbatim close, has been returned.
func (p *Parser) Done() bool {
	if !p.last || p.events.len() > 0 || p.state.active() {
		return false
	}
	_, more := p.lexer.Peek()
	return !more
}

// undecided reports whether the queued events may still change, or there
// are none.
func (p *Parser) undecided() bool {
	if p.events.len() == 0 || len(p.openers) > 0 || p.state.active() {
		return true
	}
	back, _ := p.events.back()
	return back.Kind == KindStr
}

func (p *Parser) eat() (lex.Token, bool) {
	tok, ok := p.lexer.Next()
	if ok {
		p.span = p.span.Extend(tok.Len)
	}
	return tok, ok
}

func (p *Parser) resetSpan() {
	p.span = span.EmptyAt(p.span.End)
}

func (p *Parser) parseEvent() (Event, bool) {
	p.resetSpan()
	first, ok := p.eat()
	if !ok {
		return Event{}, false
	}
	if ev, ok := p.parseVerbatim(first); ok {
		return ev, true
	}
	if p.state.active() {
		// attribute, URL and reference tag content stays opaque
		return Str().At(p.span), true
	}
	if ev, ok := p.parseContainer(first); ok {
		return ev, true
	}
	if ev, ok := p.parseAtom(first); ok {
		return ev, true
	}
	return Str().At(p.span), true
}

func (p *Parser) parseAtom(first lex.Token) (Event, bool) {
	var a Atom
	switch {
	case first.Kind == lex.Newline:
		a = Softbreak
	case first.Kind == lex.Hardbreak:
		a = Hardbreak
	case first.Kind == lex.Escape:
		a = Escape
	case first.Kind == lex.Nbsp:
		a = Nbsp
	case first.IsSeq(lex.Period) && first.Len == 3:
		a = Ellipsis
	case first.IsSeq(lex.Hyphen) && first.Len == 2:
		a = EnDash
	case first.IsSeq(lex.Hyphen) && first.Len == 3:
		a = EmDash
	default:
		return Event{}, false
	}
	return AtomEvent(a).At(p.span), true
}

func (p *Parser) parseVerbatim(first lex.Token) (Event, bool) {
	if kind, openerLen, openerEvent, ok := p.state.verbatim(); ok {
		if !first.IsSeq(lex.Backtick) || first.Len != openerLen {
			return Str().At(p.span), true
		}
		p.state = state{}
		if kind == Verbatim {
			if n, ok := rawFormatLen(p.lexer.Ahead()); ok {
				format := span.ByLen(p.span.End+len("{="), n)
				enter := p.events.at(openerEvent)
				enter.Container = RawFormat
				enter.Span = format
				ev := Exit(RawFormat).At(p.span)
				p.lexer.Skip(len("{=") + n + len("}"))
				p.span = span.EmptyAt(format.End + len("}"))
				return ev, true
			}
		}
		return Exit(kind).At(p.span), true
	}

	var (
		kind      Container
		openerLen int
	)
	switch {
	case first.IsSeq(lex.Dollar):
		if first.Len > 2 {
			return Event{}, false
		}
		next, ok := p.lexer.Peek()
		if !ok || !next.IsSeq(lex.Backtick) {
			return Event{}, false
		}
		p.eat()
		kind = InlineMath
		if first.Len == 2 {
			kind = DisplayMath
		}
		openerLen = next.Len
	case first.IsSeq(lex.Backtick):
		kind, openerLen = Verbatim, first.Len
	default:
		return Event{}, false
	}
	p.state = verbatimState(kind, openerLen, p.events.end())
	return Enter(kind).At(p.span), true
}

// rawFormatLen returns the byte length of the format name when ahead starts
// with a raw format annotation such as "{=html}".
func rawFormatLen(ahead string) (int, bool) {
	rest, ok := strings.CutPrefix(ahead, "{=")
	if !ok {
		return 0, false
	}
	n := strings.IndexFunc(rest, func(r rune) bool {
		return unicode.IsSpace(r) || r == '{' || r == '}'
	})
	if n <= 0 || rest[n] != '}' {
		return 0, false
	}
	return n, true
}

type direction uint8

const (
	dirOpen direction = iota
	dirClose
	dirBoth
)

func containerOf(tok lex.Token) (Container, direction, bool) {
	switch tok.Kind {
	case lex.Sym:
		switch tok.Sym {
		case lex.Asterisk:
			return Strong, dirBoth, true
		case lex.Underscore:
			return Emphasis, dirBoth, true
		case lex.Caret:
			return Superscript, dirBoth, true
		case lex.Tilde:
			return Subscript, dirBoth, true
		case lex.Quote1:
			return SingleQuoted, dirBoth, true
		case lex.Quote2:
			return DoubleQuoted, dirBoth, true
		}
	case lex.Open, lex.Close:
		dir := dirOpen
		if tok.Kind == lex.Close {
			dir = dirClose
		}
		switch tok.Delim {
		case lex.Bracket:
			return Span, dir, true
		case lex.BraceAsterisk:
			return Strong, dir, true
		case lex.BraceCaret:
			return Superscript, dir, true
		case lex.BraceEqual:
			return Mark, dir, true
		case lex.BraceHyphen:
			return Delete, dir, true
		case lex.BracePlus:
			return Insert, dir, true
		case lex.BraceTilde:
			return Subscript, dir, true
		case lex.BraceUnderscore:
			return Emphasis, dir, true
		}
	}
	return 0, 0, false
}

func (p *Parser) parseContainer(first lex.Token) (Event, bool) {
	c, dir, ok := containerOf(first)
	if !ok {
		return Event{}, false
	}
	if dir != dirOpen {
		for o := len(p.openers) - 1; o >= 0; o-- {
			if p.openers[o].container != c {
				continue
			}
			placeholder := p.events.at(p.openers[o].event)
			placeholder.Kind = KindEnter
			placeholder.Container = c
			// openers above o are left as literal text
			p.openers = p.openers[:o]
			return Exit(c).At(p.span), true
		}
		if dir == dirClose {
			return Str().At(p.span), true
		}
	}
	// Str for now, rewritten if a closer turns up
	p.openers = append(p.openers, opener{container: c, event: p.events.end()})
	return Str().At(p.span), true
}

// ParseString parses src as a single final chunk and returns all events.
func ParseString(src string) []Event {
	p := NewParser()
	p.Parse(src, true)
	var out []Event
	for {
		ev, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}
