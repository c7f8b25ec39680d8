package lex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lexAll(src string) []Token {
	l := New(src)
	var out []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func TestLexerTokens(t *testing.T) {
	cases := []struct {
		src  string
		want []Token
	}{
		{"abc def", []Token{
			{Kind: Text, Len: 3},
			{Kind: Whitespace, Len: 1},
			{Kind: Text, Len: 3},
		}},
		{"{*a*}", []Token{
			{Kind: Open, Delim: BraceAsterisk, Len: 2},
			{Kind: Text, Len: 1},
			{Kind: Close, Delim: BraceAsterisk, Len: 2},
		}},
		{"*_x_*", []Token{
			{Kind: Sym, Sym: Asterisk, Len: 1},
			{Kind: Sym, Sym: Underscore, Len: 1},
			{Kind: Text, Len: 1},
			{Kind: Sym, Sym: Underscore, Len: 1},
			{Kind: Sym, Sym: Asterisk, Len: 1},
		}},
		{"$$``x", []Token{
			{Kind: Seq, Seq: Dollar, Len: 2},
			{Kind: Seq, Seq: Backtick, Len: 2},
			{Kind: Text, Len: 1},
		}},
		{"a---b...", []Token{
			{Kind: Text, Len: 1},
			{Kind: Seq, Seq: Hyphen, Len: 3},
			{Kind: Text, Len: 1},
			{Kind: Seq, Seq: Period, Len: 3},
		}},
		{"--}", []Token{
			{Kind: Seq, Seq: Hyphen, Len: 1},
			{Kind: Close, Delim: BraceHyphen, Len: 2},
		}},
		{"a\\\nb\\ c", []Token{
			{Kind: Text, Len: 1},
			{Kind: Hardbreak, Len: 2},
			{Kind: Text, Len: 1},
			{Kind: Nbsp, Len: 2},
			{Kind: Text, Len: 1},
		}},
		{"\\*x", []Token{
			{Kind: Escape, Len: 1},
			{Kind: Text, Len: 1},
			{Kind: Text, Len: 1},
		}},
		{"[a](b)\n", []Token{
			{Kind: Open, Delim: Bracket, Len: 1},
			{Kind: Text, Len: 1},
			{Kind: Close, Delim: Bracket, Len: 1},
			{Kind: Open, Delim: Paren, Len: 1},
			{Kind: Text, Len: 1},
			{Kind: Close, Delim: Paren, Len: 1},
			{Kind: Newline, Len: 1},
		}},
		{"a=b+}", []Token{
			{Kind: Text, Len: 1},
			{Kind: Text, Len: 1},
			{Kind: Text, Len: 1},
			{Kind: Close, Delim: BracePlus, Len: 2},
		}},
		{"'\"{}", []Token{
			{Kind: Sym, Sym: Quote1, Len: 1},
			{Kind: Sym, Sym: Quote2, Len: 1},
			{Kind: Open, Delim: Brace, Len: 1},
			{Kind: Close, Delim: Brace, Len: 1},
		}},
	}
	for _, tc := range cases {
		got := lexAll(tc.src)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("lex %q mismatch (-want +got):\n%s", tc.src, diff)
		}
	}
}

func TestLexerEscapedMultibyteRune(t *testing.T) {
	got := lexAll("\\*é")
	want := []Token{{Kind: Escape, Len: 1}, {Kind: Text, Len: 1}, {Kind: Text, Len: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New("`{=html}")
	tok, ok := l.Peek()
	if !ok || !tok.IsSeq(Backtick) {
		t.Fatalf("peek: got %+v ok=%v", tok, ok)
	}
	if l.Ahead() != "`{=html}" {
		t.Fatalf("ahead after peek: %q", l.Ahead())
	}
	if tok, _ = l.Next(); !tok.IsSeq(Backtick) {
		t.Fatalf("next: got %+v", tok)
	}
	if l.Ahead() != "{=html}" {
		t.Fatalf("ahead after next: %q", l.Ahead())
	}
	l.Skip(len("{=html}"))
	if _, ok := l.Next(); ok {
		t.Fatalf("expected exhausted lexer after skip")
	}
}

func TestLexerSkipClearsPeek(t *testing.T) {
	l := New("ab cd")
	if _, ok := l.Peek(); !ok {
		t.Fatalf("peek failed")
	}
	l.Skip(3)
	tok, ok := l.Next()
	if !ok || tok.Kind != Text || tok.Len != 2 {
		t.Fatalf("after skip: got %+v ok=%v", tok, ok)
	}
}

func TestLexerTrailingBackslashIsText(t *testing.T) {
	l := New("a\\")
	_, _ = l.Next()
	if tok, _ := l.Next(); tok.Kind != Text || tok.Len != 1 {
		t.Fatalf("trailing backslash should be text, got %+v", tok)
	}
}
