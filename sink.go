package jot

import "pkt.systems/jot/inline"

// Record is an inline event together with the source text its span covers.
type Record struct {
	Event inline.Event
	Text  string
}

// Sink receives records from the streaming parser in event order.
type Sink interface {
	WriteRecord(Record) error
	Flush() error
}

// SinkFunc adapts a function to a Sink with a no-op Flush.
type SinkFunc func(Record) error

// WriteRecord calls f(rec).
func (f SinkFunc) WriteRecord(rec Record) error { return f(rec) }

// Flush does nothing.
func (f SinkFunc) Flush() error { return nil }

// Collect is a Sink that keeps every record in memory.
type Collect struct {
	Records []Record
	Flushed bool
}

// WriteRecord appends rec.
func (c *Collect) WriteRecord(rec Record) error {
	c.Records = append(c.Records, rec)
	return nil
}

// Flush marks c as flushed.
func (c *Collect) Flush() error {
	c.Flushed = true
	return nil
}

// Events returns the collected events without their text.
func (c *Collect) Events() []inline.Event {
	out := make([]inline.Event, len(c.Records))
	for i, rec := range c.Records {
		out[i] = rec.Event
	}
	return out
}
