// Package jot turns inline markup into a stream of parse events.
//
// This package is built for streaming: it reads incrementally from an
// io.Reader and hands every event to a Sink as soon as the parser has
// decided it. Events carry byte spans into the source, so a consumer can
// rebuild or annotate the input without a syntax tree in between.
//
// Core properties:
//   - Streaming-first parsing from io.Reader
//   - Identical events regardless of how the input is chunked
//   - Low allocations in hot paths
//   - Theme-driven tree dumps and YAML event listings
//
// Example:
//
//	reader := strings.NewReader("*strong* and `code`\n")
//	err := jot.Dump(jot.DumpRequest{
//		Reader: reader,
//		Writer: os.Stdout,
//		Width:  80,
//		Theme:  jot.DefaultTheme(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The incremental parser itself lives in package inline and can be driven
// directly when the caller owns the input buffer.
package jot
