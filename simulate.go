package jot

import (
	"fmt"
	"io"
	"time"
)

// SimulateRequest configures Simulate.
type SimulateRequest struct {
	Reader    io.Reader
	Sink      Sink
	ChunkSize int
	Delay     time.Duration
	Options   []ParseOption
}

// Simulate parses Reader as if it arrived over a slow connection: at most
// ChunkSize bytes per read, with Delay before each read returns. Records reach
// Sink as soon as the parser can commit to them.
func Simulate(req SimulateRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("simulate: reader is nil")
	}
	if req.Sink == nil {
		return fmt.Errorf("simulate: sink is nil")
	}
	if req.ChunkSize <= 0 {
		return fmt.Errorf("simulate: chunk size must be > 0")
	}
	opts := make([]ParseOption, 0, len(req.Options)+1)
	opts = append(opts, req.Options...)
	opts = append(opts, WithChunkSize(req.ChunkSize))
	return Parse(ParseRequest{
		Reader:  &slowReader{r: req.Reader, delay: req.Delay, maxChunk: req.ChunkSize},
		Sink:    req.Sink,
		Options: opts,
	})
}

type slowReader struct {
	r        io.Reader
	delay    time.Duration
	maxChunk int
}

func (s *slowReader) Read(p []byte) (int, error) {
	if s.maxChunk > 0 && len(p) > s.maxChunk {
		p = p[:s.maxChunk]
	}
	n, err := s.r.Read(p)
	if n > 0 && s.delay > 0 {
		time.Sleep(s.delay)
	}
	return n, err
}
