// Package lex splits one chunk of inline source into typed tokens.
//
// The lexer only ever sees the chunk it was created with: Peek and Ahead never
// look past the end of it.
package lex

import "strings"

// Kind classifies a token.
type Kind uint8

const (
	Text Kind = iota
	Whitespace
	Newline
	Nbsp
	Hardbreak
	Escape
	Open
	Close
	Sym
	Seq
)

// Delimiter qualifies Open and Close tokens.
type Delimiter uint8

const (
	Brace Delimiter = iota
	BraceAsterisk
	BraceCaret
	BraceEqual
	BraceHyphen
	BracePlus
	BraceTilde
	BraceUnderscore
	Bracket
	Paren
)

// Symbol qualifies Sym tokens.
type Symbol uint8

const (
	Asterisk Symbol = iota
	Caret
	Underscore
	Tilde
	Quote1
	Quote2
	Exclaim
	Lt
	Gt
	Percent
)

// Sequence qualifies Seq tokens, runs of one repeated character.
type Sequence uint8

const (
	Backtick Sequence = iota
	Dollar
	Hash
	Hyphen
	Period
)

// Token is a lexical element. Len is its size in bytes.
type Token struct {
	Kind  Kind
	Delim Delimiter
	Sym   Symbol
	Seq   Sequence
	Len   int
}

// IsSeq reports whether t is a run of the given sequence character.
func (t Token) IsSeq(s Sequence) bool {
	return t.Kind == Seq && t.Seq == s
}

// IsOpen reports whether t opens the given delimiter.
func (t Token) IsOpen(d Delimiter) bool {
	return t.Kind == Open && t.Delim == d
}

// IsClose reports whether t closes the given delimiter.
func (t Token) IsClose(d Delimiter) bool {
	return t.Kind == Close && t.Delim == d
}

// IsSym reports whether t is the given symbol.
func (t Token) IsSym(s Symbol) bool {
	return t.Kind == Sym && t.Sym == s
}

// Lexer produces tokens from a single chunk.
type Lexer struct {
	src    string
	pos    int
	escape bool

	peeked     bool
	next       Token
	nextEscape bool
}

// New returns a lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Reset points the lexer at a new chunk.
func (l *Lexer) Reset(src string) {
	*l = Lexer{src: src}
}

// Next consumes and returns the next token. ok is false once the chunk is
// exhausted.
func (l *Lexer) Next() (tok Token, ok bool) {
	if !l.peeked {
		if tok, ok = l.Peek(); !ok {
			return Token{}, false
		}
	}
	l.peeked = false
	l.pos += l.next.Len
	l.escape = l.nextEscape
	return l.next, true
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, bool) {
	if l.peeked {
		return l.next, true
	}
	tok, esc, ok := scan(l.src, l.pos, l.escape)
	if !ok {
		return Token{}, false
	}
	l.peeked = true
	l.next = tok
	l.nextEscape = esc
	return tok, true
}

// Ahead returns the unconsumed remainder of the chunk. A peeked token is
// not consumed.
func (l *Lexer) Ahead() string {
	return l.src[l.pos:]
}

// Skip discards the next n bytes of the remainder and resumes scanning after
// them.
func (l *Lexer) Skip(n int) {
	if n < 0 || l.pos+n > len(l.src) {
		panic("lex: skip out of range")
	}
	l.pos += n
	l.peeked = false
	l.escape = false
}

const special = "\\\n \t{}[]()*^_~=+-`$#.'\"!<>%"

func scan(src string, pos int, escape bool) (Token, bool, bool) {
	if pos >= len(src) {
		return Token{}, false, false
	}
	if escape {
		return Token{Kind: Text, Len: runeLen(src[pos:])}, false, true
	}
	c := src[pos]
	nb := byteAt(src, pos+1)
	switch c {
	case '\\':
		switch {
		case nb == '\n':
			return Token{Kind: Hardbreak, Len: 2}, false, true
		case nb == ' ':
			return Token{Kind: Nbsp, Len: 2}, false, true
		case isASCIIPunct(nb):
			return Token{Kind: Escape, Len: 1}, true, true
		}
		return Token{Kind: Text, Len: 1}, false, true
	case '\n':
		return Token{Kind: Newline, Len: 1}, false, true
	case ' ', '\t':
		n := 1
		for pos+n < len(src) && (src[pos+n] == ' ' || src[pos+n] == '\t') {
			n++
		}
		return Token{Kind: Whitespace, Len: n}, false, true
	case '{':
		if d, ok := braceDelim(nb); ok {
			return Token{Kind: Open, Delim: d, Len: 2}, false, true
		}
		return Token{Kind: Open, Delim: Brace, Len: 1}, false, true
	case '}':
		return Token{Kind: Close, Delim: Brace, Len: 1}, false, true
	case '[':
		return Token{Kind: Open, Delim: Bracket, Len: 1}, false, true
	case ']':
		return Token{Kind: Close, Delim: Bracket, Len: 1}, false, true
	case '(':
		return Token{Kind: Open, Delim: Paren, Len: 1}, false, true
	case ')':
		return Token{Kind: Close, Delim: Paren, Len: 1}, false, true
	case '-':
		if nb == '}' {
			return Token{Kind: Close, Delim: BraceHyphen, Len: 2}, false, true
		}
		n := 1
		for pos+n < len(src) && src[pos+n] == '-' && byteAt(src, pos+n+1) != '}' {
			n++
		}
		return Token{Kind: Seq, Seq: Hyphen, Len: n}, false, true
	case '*', '^', '_', '~', '=', '+':
		if nb == '}' {
			d, _ := braceDelim(c)
			return Token{Kind: Close, Delim: d, Len: 2}, false, true
		}
		switch c {
		case '*':
			return Token{Kind: Sym, Sym: Asterisk, Len: 1}, false, true
		case '^':
			return Token{Kind: Sym, Sym: Caret, Len: 1}, false, true
		case '_':
			return Token{Kind: Sym, Sym: Underscore, Len: 1}, false, true
		case '~':
			return Token{Kind: Sym, Sym: Tilde, Len: 1}, false, true
		}
		return Token{Kind: Text, Len: 1}, false, true
	case '`', '$', '#', '.':
		n := 1
		for pos+n < len(src) && src[pos+n] == c {
			n++
		}
		return Token{Kind: Seq, Seq: sequenceOf(c), Len: n}, false, true
	case '\'':
		return Token{Kind: Sym, Sym: Quote1, Len: 1}, false, true
	case '"':
		return Token{Kind: Sym, Sym: Quote2, Len: 1}, false, true
	case '!':
		return Token{Kind: Sym, Sym: Exclaim, Len: 1}, false, true
	case '<':
		return Token{Kind: Sym, Sym: Lt, Len: 1}, false, true
	case '>':
		return Token{Kind: Sym, Sym: Gt, Len: 1}, false, true
	case '%':
		return Token{Kind: Sym, Sym: Percent, Len: 1}, false, true
	}
	n := 1
	for pos+n < len(src) && strings.IndexByte(special, src[pos+n]) < 0 {
		n++
	}
	return Token{Kind: Text, Len: n}, false, true
}

func braceDelim(c byte) (Delimiter, bool) {
	switch c {
	case '*':
		return BraceAsterisk, true
	case '^':
		return BraceCaret, true
	case '=':
		return BraceEqual, true
	case '-':
		return BraceHyphen, true
	case '+':
		return BracePlus, true
	case '~':
		return BraceTilde, true
	case '_':
		return BraceUnderscore, true
	}
	return Brace, false
}

func sequenceOf(c byte) Sequence {
	switch c {
	case '`':
		return Backtick
	case '$':
		return Dollar
	case '#':
		return Hash
	case '-':
		return Hyphen
	}
	return Period
}

func byteAt(src string, i int) byte {
	if i < len(src) {
		return src[i]
	}
	return 0
}

func runeLen(s string) int {
	for i := range s {
		if i > 0 {
			return i
		}
	}
	return len(s)
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
