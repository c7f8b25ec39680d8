package jot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// parseRecords runs Parse over src with the given options and returns the
// records written to the sink.
func parseRecords(t *testing.T, src string, opts ...ParseOption) []Record {
	t.Helper()
	var sink Collect
	if err := Parse(ParseRequest{
		Reader:  strings.NewReader(src),
		Sink:    &sink,
		Options: opts,
	}); err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	if !sink.Flushed {
		t.Fatalf("parse %q: sink not flushed", src)
	}
	return sink.Records
}

func eventRecords(recs []Record) []EventRecord {
	out := make([]EventRecord, len(recs))
	for i, rec := range recs {
		out[i] = NewEventRecord(rec)
	}
	return out
}

func sampleInputs(t testing.TB) map[string][]byte {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join("testdata", "*.dj"))
	if err != nil {
		t.Fatalf("glob testdata: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no inputs under testdata")
	}
	out := make(map[string][]byte, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		out[strings.TrimSuffix(filepath.Base(path), ".dj")] = data
	}
	return out
}

// largeSample concatenates the testdata inputs until the result is at least
// n bytes.
func largeSample(t testing.TB, n int) []byte {
	t.Helper()
	var buf bytes.Buffer
	samples := sampleInputs(t)
	for buf.Len() < n {
		for _, name := range []string{"atoms", "emphasis", "math", "unmatched", "verbatim"} {
			buf.Write(samples[name])
		}
	}
	return buf.Bytes()
}

// limitedReader returns at most n bytes per Read.
type limitedReader struct {
	data []byte
	n    int
}

func (r *limitedReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	if len(p) > r.n {
		p = p[:r.n]
	}
	k := copy(p, r.data)
	r.data = r.data[k:]
	return k, nil
}

func firstDiffContext(want string, got string, ctx int) string {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")
	lines := max(len(wantLines), len(gotLines))
	diffAt := -1
	for i := 0; i < lines; i++ {
		var w, g string
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if w != g {
			diffAt = i
			break
		}
	}
	if diffAt == -1 {
		return "---want---\n" + want + "\n---got---\n" + got
	}
	start := max(diffAt-ctx, 0)
	end := min(diffAt+ctx, lines-1)
	var b strings.Builder
	fmt.Fprintf(&b, "first difference at line %d\n", diffAt+1)
	for _, side := range []struct {
		label string
		lines []string
	}{{"want", wantLines}, {"got", gotLines}} {
		fmt.Fprintf(&b, "---%s---\n", side.label)
		for i := start; i <= end; i++ {
			line := ""
			if i < len(side.lines) {
				line = side.lines[i]
			}
			fmt.Fprintf(&b, "%5d | %s\n", i+1, line)
		}
	}
	return b.String()
}
