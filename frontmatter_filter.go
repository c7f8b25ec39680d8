package jot

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const maxFrontMatterProbeBytes = 64 * 1024

// ErrUnsupportedFrontMatter reports front matter in a format that cannot be
// decoded.
var ErrUnsupportedFrontMatter = errors.New("unsupported front matter format")

// FrontMatter is a metadata block found at the very start of the input.
type FrontMatter struct {
	// Format is "yaml", "toml" or "json", derived from the delimiter.
	Format string
	// Raw holds the lines between the delimiters.
	Raw []byte
}

// Decode parses YAML or JSON front matter into a map.
func (fm FrontMatter) Decode() (map[string]any, error) {
	switch fm.Format {
	case "yaml", "json":
	default:
		return nil, fmt.Errorf("front matter %s: %w", fm.Format, ErrUnsupportedFrontMatter)
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(fm.Raw, &out); err != nil {
		return nil, fmt.Errorf("front matter %s: %w", fm.Format, err)
	}
	return out, nil
}

// frontMatterFilter holds back the start of the stream until it is known
// whether it opens a front matter block, then strips the block.
type frontMatterFilter struct {
	passthrough bool
	found       bool
	meta        FrontMatter
	probe       []byte
	probeArr    [4096]byte
}

func (f *frontMatterFilter) reset() {
	f.passthrough = false
	f.found = false
	f.meta = FrontMatter{}
	f.probe = f.probeArr[:0]
}

// process returns the bytes that are decided to be inline content.
func (f *frontMatterFilter) process(chunk []byte) []byte {
	if f.passthrough || len(chunk) == 0 {
		return chunk
	}
	f.probe = append(f.probe, chunk...)
	out, decided := f.decide(false)
	if !decided && len(f.probe) > maxFrontMatterProbeBytes {
		out = f.probe
		f.passthrough = true
		f.probe = f.probe[:0]
		decided = true
	}
	if decided {
		return out
	}
	return nil
}

func (f *frontMatterFilter) finish() []byte {
	if f.passthrough || len(f.probe) == 0 {
		return nil
	}
	out, _ := f.decide(true)
	return out
}

// frontMatter returns the stripped block, if one was found.
func (f *frontMatterFilter) frontMatter() (FrontMatter, bool) {
	return f.meta, f.found
}

func (f *frontMatterFilter) decide(eof bool) ([]byte, bool) {
	openLine, openNext, ok := nextLine(f.probe, 0, eof)
	if !ok {
		return nil, false
	}
	format, isFrontMatter := parseOpeningFrontMatterDelimiter(openLine)
	if !isFrontMatter {
		return f.giveUp(), true
	}

	secondLine, _, ok := nextLine(f.probe, openNext, eof)
	if !ok {
		return nil, false
	}
	if !frontMatterMetadataLikely(secondLine) {
		return f.giveUp(), true
	}

	closeStart, closeNext, found := findClosingFrontMatterDelimiter(f.probe, openNext, bytes.TrimSpace(trimBOM(openLine)), eof)
	if !found {
		if eof {
			return f.giveUp(), true
		}
		return nil, false
	}
	f.found = true
	f.meta = FrontMatter{
		Format: format,
		Raw:    append([]byte(nil), f.probe[openNext:closeStart]...),
	}
	out := f.probe[closeNext:]
	f.passthrough = true
	f.probe = f.probe[:0]
	return out, true
}

func (f *frontMatterFilter) giveUp() []byte {
	out := f.probe
	f.passthrough = true
	f.probe = f.probe[:0]
	return out
}

func nextLine(src []byte, start int, eof bool) ([]byte, int, bool) {
	if start > len(src) {
		return nil, 0, false
	}
	if start == len(src) {
		if eof {
			return src[start:], start, true
		}
		return nil, 0, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		if !eof {
			return nil, 0, false
		}
		return trimCR(src[start:]), len(src), true
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1, true
}

func parseOpeningFrontMatterDelimiter(line []byte) (string, bool) {
	switch string(bytes.TrimSpace(trimBOM(line))) {
	case "---":
		return "yaml", true
	case "+++":
		return "toml", true
	case ";;;":
		return "json", true
	}
	return "", false
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return true
	}
	return bytes.ContainsAny(trimmed, ":=")
}

// findClosingFrontMatterDelimiter returns the start of the closing delimiter
// line and the offset just past it.
func findClosingFrontMatterDelimiter(src []byte, start int, delim []byte, eof bool) (int, int, bool) {
	for idx := start; idx <= len(src); {
		line, next, ok := nextLine(src, idx, eof)
		if !ok {
			return 0, 0, false
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return idx, next, true
		}
		if next == idx {
			return 0, 0, false
		}
		idx = next
		if idx == len(src) && !eof {
			return 0, 0, false
		}
	}
	return 0, 0, false
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
