package jot

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"gopkg.in/yaml.v3"

	"pkt.systems/jot/inline"
	"pkt.systems/jot/internal/palette"
)

// Format selects the Dump output.
type Format string

const (
	// FormatTree prints one indented, optionally colored line per event.
	FormatTree Format = "tree"
	// FormatYAML prints a YAML list of EventRecord.
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name. The empty name selects FormatTree.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatTree:
		return FormatTree, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q", name)
	}
}

const (
	offsetColumn = 11
	indentStep   = 2
	ellipsis     = "…"
)

// TreeSink writes a human readable event tree. Container contents are
// indented one step deeper than their Enter and Exit lines.
type TreeSink struct {
	w       *bufio.Writer
	width   int
	styles  Styles
	offsets bool
	color   bool
	depth   int
}

// NewTreeSink returns a TreeSink writing to w. A width of zero or less
// disables truncation. A nil theme selects DefaultTheme.
func NewTreeSink(w io.Writer, width int, theme Theme, opts ...DumpOption) *TreeSink {
	cfg := newDumpConfig(opts)
	if theme == nil {
		theme = DefaultTheme()
	}
	s := &TreeSink{
		w:       bufio.NewWriter(w),
		width:   width,
		offsets: !cfg.hideOffsets,
		color:   !cfg.noColor,
	}
	if s.color {
		s.styles = theme.Styles()
	}
	return s
}

// WriteRecord prints one line for rec.
func (s *TreeSink) WriteRecord(rec Record) error {
	ev := rec.Event
	if ev.Kind == inline.KindExit && s.depth > 0 {
		s.depth--
	}
	line := s.line(rec)
	if ev.Kind == inline.KindEnter {
		s.depth++
	}
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

func (s *TreeSink) line(rec Record) string {
	var b strings.Builder
	if s.offsets {
		b.WriteString(padding.String(s.styles.Offset.Render(rec.Event.Span.String()), offsetColumn))
		b.WriteByte(' ')
	}
	body := s.styles.styleFor(rec.Event).Render(rec.Event.KindString())
	if rec.Text != "" {
		body += " " + s.styles.Text.Render(strconv.Quote(rec.Text))
	}
	b.WriteString(indent.String(body, uint(s.depth*indentStep)))
	line := b.String()
	if s.width <= 0 || ansi.PrintableRuneWidth(line) <= s.width {
		return line
	}
	line = truncate.StringWithTail(line, uint(s.width), ellipsis)
	if s.color {
		line += palette.Reset
	}
	return line
}

// Flush writes buffered output.
func (s *TreeSink) Flush() error {
	return s.w.Flush()
}

// EventRecord is the serialized form of a Record.
type EventRecord struct {
	Kind  string `yaml:"kind"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
	Text  string `yaml:"text,omitempty"`
}

// NewEventRecord converts a Record.
func NewEventRecord(rec Record) EventRecord {
	return EventRecord{
		Kind:  rec.Event.KindString(),
		Start: rec.Event.Span.Start,
		End:   rec.Event.Span.End,
		Text:  rec.Text,
	}
}

// YAMLSink collects records and encodes them as one YAML document on Flush.
type YAMLSink struct {
	w       io.Writer
	Records []EventRecord
}

// NewYAMLSink returns a YAMLSink writing to w.
func NewYAMLSink(w io.Writer) *YAMLSink {
	return &YAMLSink{w: w}
}

// WriteRecord buffers rec.
func (s *YAMLSink) WriteRecord(rec Record) error {
	s.Records = append(s.Records, NewEventRecord(rec))
	return nil
}

// Flush encodes the buffered records.
func (s *YAMLSink) Flush() error {
	records := s.Records
	if records == nil {
		records = []EventRecord{}
	}
	enc := yaml.NewEncoder(s.w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

// DumpRequest configures Dump.
type DumpRequest struct {
	Reader       io.Reader
	Writer       io.Writer
	Width        int
	Theme        Theme
	Format       Format
	Options      []DumpOption
	ParseOptions []ParseOption
}

// Dump parses one inline region and prints its events.
func Dump(req DumpRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("dump: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("dump: writer is nil")
	}
	sink, err := newDumpSink(req.Writer, req.Width, req.Theme, req.Format, req.Options)
	if err != nil {
		return err
	}
	return Parse(ParseRequest{
		Reader:  req.Reader,
		Sink:    sink,
		Options: req.ParseOptions,
	})
}

func newDumpSink(w io.Writer, width int, theme Theme, format Format, opts []DumpOption) (Sink, error) {
	switch format {
	case "", FormatTree:
		return NewTreeSink(w, width, theme, opts...), nil
	case FormatYAML:
		return NewYAMLSink(w), nil
	}
	return nil, fmt.Errorf("dump: unknown format %q", format)
}
