package jot

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSimulateMatchesParse(t *testing.T) {
	for name, src := range sampleInputs(t) {
		want := eventRecords(parseRecords(t, string(src)))
		for _, size := range []int{1, 2, 5, 64} {
			var sink Collect
			if err := Simulate(SimulateRequest{
				Reader:    bytes.NewReader(src),
				Sink:      &sink,
				ChunkSize: size,
			}); err != nil {
				t.Fatalf("%s size %d: %v", name, size, err)
			}
			if diff := cmp.Diff(want, eventRecords(sink.Records)); diff != "" {
				t.Fatalf("%s size %d mismatch (-parse +simulate):\n%s", name, size, diff)
			}
		}
	}
}

func TestSimulateDelaysReads(t *testing.T) {
	start := time.Now()
	err := Simulate(SimulateRequest{
		Reader:    strings.NewReader("abcd"),
		Sink:      &Collect{},
		ChunkSize: 2,
		Delay:     5 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("expected at least two delayed reads, took %v", elapsed)
	}
}

func TestSimulateYieldsBeforeEOF(t *testing.T) {
	var seenAt []int
	r := &countingReader{r: strings.NewReader("*a* b c d e f")}
	err := Simulate(SimulateRequest{
		Reader:    r,
		ChunkSize: 1,
		Sink: SinkFunc(func(rec Record) error {
			seenAt = append(seenAt, r.n)
			return nil
		}),
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(seenAt) == 0 || seenAt[0] >= len("*a* b c d e f") {
		t.Fatalf("expected the first record before the whole input was read, got %v", seenAt)
	}
}

func TestSimulateValidatesRequest(t *testing.T) {
	cases := []struct {
		req  SimulateRequest
		want string
	}{
		{SimulateRequest{Sink: &Collect{}, ChunkSize: 1}, "simulate: reader is nil"},
		{SimulateRequest{Reader: strings.NewReader(""), ChunkSize: 1}, "simulate: sink is nil"},
		{SimulateRequest{Reader: strings.NewReader(""), Sink: &Collect{}}, "simulate: chunk size must be > 0"},
	}
	for _, tc := range cases {
		if err := Simulate(tc.req); err == nil || err.Error() != tc.want {
			t.Fatalf("expected %q, got %v", tc.want, err)
		}
	}
}

type countingReader struct {
	r *strings.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}
