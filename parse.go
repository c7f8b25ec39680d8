package jot

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"pkt.systems/jot/inline"
)

const maxPooledSource = 1 << 20

var driverPool = sync.Pool{
	New: func() any {
		return &driver{parser: inline.NewParser()}
	},
}

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, defaultChunkSize)
	},
}

var configPool = sync.Pool{
	New: func() any {
		return &parseConfig{}
	},
}

// ParseRequest configures Parse.
type ParseRequest struct {
	Reader  io.Reader
	Sink    Sink
	Options []ParseOption
}

// Parse reads one inline region from Reader and writes its events to Sink as
// they become final. Invalid UTF-8 and control characters are dropped unless
// WithStrict is set. Sink is flushed once the input is exhausted.
func Parse(req ParseRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("parse: reader is nil")
	}
	if req.Sink == nil {
		return fmt.Errorf("parse: sink is nil")
	}
	cfg := newParseConfig(req.Options)
	d := driverPool.Get().(*driver)
	reader := readerPool.Get().(*bufio.Reader)
	d.reset(req.Sink, cfg)
	reader.Reset(req.Reader)
	err := d.run(reader)
	d.reset(nil, parseConfig{})
	driverPool.Put(d)
	reader.Reset(nil)
	readerPool.Put(reader)
	return err
}

// driver feeds an inline.Parser from a byte stream. It only hands over
// chunks that end on a token boundary and keeps the whole logical source so
// that every span can be resolved to text.
type driver struct {
	parser      *inline.Parser
	sink        Sink
	cfg         parseConfig
	frontMatter frontMatterFilter
	validator   validator
	reported    bool

	source []byte
	fed    int
	tail   []byte
	work   []byte
	clean  []byte

	readBufArr [defaultChunkSize]byte
}

func (d *driver) reset(sink Sink, cfg parseConfig) {
	d.parser.Reset()
	d.sink = sink
	d.cfg = cfg
	d.frontMatter.reset()
	d.validator.reset()
	d.reported = false
	if cap(d.source) > maxPooledSource {
		d.source = nil
	}
	d.source = d.source[:0]
	d.fed = 0
	d.tail = d.tail[:0]
	d.work = d.work[:0]
}

func (d *driver) readBuf() []byte {
	if d.cfg.chunkSize <= len(d.readBufArr) {
		return d.readBufArr[:d.cfg.chunkSize]
	}
	return make([]byte, d.cfg.chunkSize)
}

func (d *driver) run(r io.Reader) error {
	buf := d.readBuf()
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if ferr := d.feed(buf[:n]); ferr != nil {
				return fmt.Errorf("parse: %w", ferr)
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("parse: read: %w", err)
		}
	}
	if err := d.finish(); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := d.sink.Flush(); err != nil {
		return fmt.Errorf("parse: flush: %w", err)
	}
	return nil
}

// feed cleans raw input, carrying an incomplete trailing rune to the next
// call.
func (d *driver) feed(raw []byte) error {
	d.work = append(append(d.work[:0], d.tail...), raw...)
	complete := d.work
	if d.cfg.strict {
		rest, err := d.validator.addBytes(d.work)
		if err != nil {
			return err
		}
		complete = d.work[:len(d.work)-len(rest)]
	}
	if cap(d.clean) < len(complete) {
		d.clean = make([]byte, len(complete))
	}
	clean, rest := sanitizeBytes(d.clean[:len(complete)], complete)
	rest = d.work[len(complete)-len(rest):]
	d.tail = append(d.tail[:0], rest...)
	return d.accept(clean)
}

func (d *driver) accept(clean []byte) error {
	if d.cfg.frontMatter != nil {
		clean = d.frontMatter.process(clean)
		if err := d.reportFrontMatter(); err != nil {
			return err
		}
	}
	d.source = append(d.source, clean...)
	cut := chunkBoundary(d.source[d.fed:])
	if cut == 0 {
		return nil
	}
	d.parser.Parse(string(d.source[d.fed:d.fed+cut]), false)
	d.fed += cut
	return d.drain()
}

func (d *driver) finish() error {
	if len(d.tail) > 0 {
		if d.cfg.strict {
			return &ValidationError{Offset: d.validator.offset, Err: ErrInvalidUTF8}
		}
		d.tail = d.tail[:0]
	}
	if d.cfg.frontMatter != nil {
		d.source = append(d.source, d.frontMatter.finish()...)
		if err := d.reportFrontMatter(); err != nil {
			return err
		}
	}
	d.parser.Parse(string(d.source[d.fed:]), true)
	d.fed = len(d.source)
	return d.drain()
}

func (d *driver) reportFrontMatter() error {
	if d.reported {
		return nil
	}
	fm, ok := d.frontMatter.frontMatter()
	if !ok {
		return nil
	}
	d.reported = true
	if err := d.cfg.frontMatter(fm); err != nil {
		return fmt.Errorf("front matter: %w", err)
	}
	return nil
}

func (d *driver) drain() error {
	for {
		ev, ok := d.parser.Next()
		if !ok {
			return nil
		}
		rec := Record{Event: ev, Text: string(d.source[ev.Span.Start:ev.Span.End])}
		if err := d.sink.WriteRecord(rec); err != nil {
			return err
		}
	}
}

// chunkBoundary returns the length of the longest prefix of b that ends on a
// whitespace token boundary, or zero. No token spans such a boundary, so the
// parser sees the same tokens however the input is split.
func chunkBoundary(b []byte) int {
	for i := len(b) - 1; i >= 0; i-- {
		switch b[i] {
		case '\n':
			return i + 1
		case ' ', '\t':
			if i+1 < len(b) && b[i+1] != ' ' && b[i+1] != '\t' {
				return i + 1
			}
		}
	}
	return 0
}
