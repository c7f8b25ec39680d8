package jot

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"pkt.systems/jot/inline"
)

func BenchmarkParseSample(b *testing.B) {
	data := largeSample(b, 64*1024)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	reader := bytes.NewReader(data)
	sink := SinkFunc(func(Record) error { return nil })
	for i := 0; i < b.N; i++ {
		reader.Reset(data)
		if err := Parse(ParseRequest{Reader: reader, Sink: sink}); err != nil {
			b.Fatalf("parse: %v", err)
		}
	}
}

func BenchmarkParseChunkSizes(b *testing.B) {
	data := largeSample(b, 16*1024)
	sink := SinkFunc(func(Record) error { return nil })
	for _, size := range []int{16, 256, 4096} {
		b.Run("c"+strconv.Itoa(size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			reader := bytes.NewReader(data)
			for i := 0; i < b.N; i++ {
				reader.Reset(data)
				if err := Parse(ParseRequest{
					Reader:  reader,
					Sink:    sink,
					Options: []ParseOption{WithChunkSize(size)},
				}); err != nil {
					b.Fatalf("parse: %v", err)
				}
			}
		})
	}
}

func BenchmarkInlineParserReuse(b *testing.B) {
	data := string(largeSample(b, 64*1024))
	p := inline.NewParser()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		p.Reset()
		p.Parse(data, true)
		for {
			if _, ok := p.Next(); !ok {
				break
			}
		}
	}
}

func BenchmarkDumpTree(b *testing.B) {
	data := largeSample(b, 16*1024)
	b.ReportAllocs()
	reader := bytes.NewReader(data)
	for i := 0; i < b.N; i++ {
		reader.Reset(data)
		if err := Dump(DumpRequest{
			Reader: reader,
			Writer: io.Discard,
			Width:  80,
			Theme:  DefaultTheme(),
		}); err != nil {
			b.Fatalf("dump: %v", err)
		}
	}
}

func BenchmarkHTTPDump(b *testing.B) {
	data := largeSample(b, 16*1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	defer server.Close()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := HTTPDump(context.Background(), HTTPDumpRequest{
			URL:    server.URL,
			Writer: io.Discard,
			Format: FormatYAML,
		}); err != nil {
			b.Fatalf("http dump: %v", err)
		}
	}
}
