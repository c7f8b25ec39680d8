package jot

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	chunkSize   int
	strict      bool
	frontMatter func(FrontMatter) error
}

const defaultChunkSize = 4096

// WithChunkSize sets the size of each read from the input. Values below one
// fall back to the default.
func WithChunkSize(n int) ParseOption {
	return func(cfg *parseConfig) {
		cfg.chunkSize = n
	}
}

// WithStrict makes Parse fail on invalid UTF-8 or binary input instead of
// dropping the offending bytes.
func WithStrict(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.strict = enabled
	}
}

// WithFrontMatter strips a leading front matter block from the input and
// hands it to fn before any record is written. Offsets are relative to the
// content after the block. An error from fn aborts parsing.
func WithFrontMatter(fn func(FrontMatter) error) ParseOption {
	return func(cfg *parseConfig) {
		cfg.frontMatter = fn
	}
}

// DumpOption configures Dump.
type DumpOption func(*dumpConfig)

type dumpConfig struct {
	noColor     bool
	hideOffsets bool
}

// WithColor enables or disables theme colors in tree output.
func WithColor(enabled bool) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.noColor = !enabled
	}
}

// WithOffsets enables or disables the byte range column in tree output.
func WithOffsets(enabled bool) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.hideOffsets = !enabled
	}
}

func newParseConfig(opts []ParseOption) parseConfig {
	cfg := configPool.Get().(*parseConfig)
	*cfg = parseConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	val := *cfg
	*cfg = parseConfig{}
	configPool.Put(cfg)
	if val.chunkSize < 1 {
		val.chunkSize = defaultChunkSize
	}
	return val
}

func newDumpConfig(opts []DumpOption) dumpConfig {
	var cfg dumpConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
