package jot

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPDumpRequest configures HTTPDump.
type HTTPDumpRequest struct {
	URL    string
	Client *http.Client
	Writer io.Writer
	Width  int
	Theme  Theme
	Format Format
	// MaxBytes caps how much of the body is parsed; zero means no limit.
	MaxBytes     int64
	Options      []DumpOption
	ParseOptions []ParseOption
}

// HTTPDump fetches a document over HTTP(S) and dumps its inline events as the
// body streams in.
func HTTPDump(ctx context.Context, req HTTPDumpRequest) error {
	if req.URL == "" {
		return fmt.Errorf("http dump: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("http dump: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("http dump: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return fmt.Errorf("http dump: unsupported scheme %q", httpReq.URL.Scheme)
	}
	httpReq.Header.Set("Accept", "text/plain, text/*;q=0.9, */*;q=0.1")
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http dump: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("http dump: status %s", resp.Status)
	}
	var body io.Reader = resp.Body
	if req.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, req.MaxBytes)
	}
	return Dump(DumpRequest{
		Reader:       body,
		Writer:       req.Writer,
		Width:        req.Width,
		Theme:        req.Theme,
		Format:       req.Format,
		Options:      req.Options,
		ParseOptions: req.ParseOptions,
	})
}
