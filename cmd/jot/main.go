package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"k8s.io/klog/v2"
	"pkt.systems/jot"
	"pkt.systems/version"
)

const (
	defaultThemeName = "default"
	defaultChunkSize = 3
	defaultDelay     = 20 * time.Millisecond
)

func init() {
	version.SetDefaultModule("pkt.systems/jot")
}

func main() {
	code := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	klog.Flush()
	os.Exit(code)
}

type settings struct {
	simulate     bool
	simChunkSize int
	simDelay     time.Duration
	themeName    string
	width        int
	format       string
	outPath      string
	boring       bool
	offsets      bool
	listThemes   bool
	frontMatter  bool
	strict       bool
	showVersion  bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var s settings
	flags := pflag.NewFlagSet("jot", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&s.simulate, "simulate", false, "Stream simulator (use default delay and chunk size)")
	flags.IntVar(&s.simChunkSize, "simulate-chunk", defaultChunkSize, "Max bytes per stream chunk")
	flags.DurationVar(&s.simDelay, "simulate-delay", defaultDelay, "Delay per stream chunk")
	flags.StringVarP(&s.themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.IntVarP(&s.width, "width", "w", 0, "Truncate tree lines to this width (0 uses terminal width if available)")
	flags.StringVarP(&s.format, "format", "f", string(jot.FormatTree), "Output format: tree|yaml")
	flags.StringVarP(&s.outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&s.boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVar(&s.offsets, "offsets", true, "Show byte ranges in tree output")
	flags.BoolVar(&s.listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&s.frontMatter, "front-matter", false, "Strip leading front matter and report its keys")
	flags.BoolVar(&s.strict, "strict", false, "Fail on invalid UTF-8 or binary input instead of dropping bytes")
	flags.BoolVar(&s.showVersion, "version", false, "Print version and exit")

	goflags := flag.NewFlagSet("jot", flag.ContinueOnError)
	klog.InitFlags(goflags)
	flags.AddGoFlagSet(goflags)

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: jot [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nEach input is parsed as one inline region. If no input is provided, stdin is read.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if s.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if s.listThemes {
		printThemes(stdout)
		return 0
	}

	format, err := jot.ParseFormat(s.format)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --format: %v\n", err)
		return 2
	}
	theme, ok := jot.ThemeByName(s.themeName)
	if !ok {
		fmt.Fprintf(stderr, "unknown theme %q\n\n", s.themeName)
		printThemes(stderr)
		return 2
	}
	if s.simulate && s.simChunkSize <= 0 {
		fmt.Fprintf(stderr, "invalid --simulate-chunk %d: must be > 0\n", s.simChunkSize)
		return 2
	}

	inputs, err := makeInputs(flags.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}

	writer, closeOut, err := resolveOutput(s.outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	d := dumper{
		settings: s,
		w:        writer,
		width:    resolveWidth(s.width, writer),
		theme:    theme,
		format:   format,
		color:    !s.boring && isTerminal(writer) && jot.DetectColorSupport(),
	}
	var errs *multierror.Error
	for i, in := range inputs {
		if len(inputs) > 1 {
			d.separator(i, in.name)
		}
		if err := d.dump(in); err != nil {
			klog.V(2).Infof("%s: failed: %v", in.name, err)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", in.name, err))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		fmt.Fprintf(stderr, "jot: %v\n", err)
		return 1
	}
	return 0
}

// dumper writes the event dump of each input to w.
type dumper struct {
	settings
	w      io.Writer
	width  int
	theme  jot.Theme
	format jot.Format
	color  bool
}

func (d *dumper) separator(i int, name string) {
	switch d.format {
	case jot.FormatYAML:
		fmt.Fprintf(d.w, "--- # %s\n", name)
	default:
		if i > 0 {
			fmt.Fprintln(d.w)
		}
		fmt.Fprintf(d.w, "== %s\n", name)
	}
}

func (d *dumper) dumpOptions() []jot.DumpOption {
	return []jot.DumpOption{jot.WithColor(d.color), jot.WithOffsets(d.offsets)}
}

func (d *dumper) parseOptions(name string) []jot.ParseOption {
	opts := []jot.ParseOption{jot.WithStrict(d.strict)}
	if d.frontMatter {
		opts = append(opts, jot.WithFrontMatter(func(fm jot.FrontMatter) error {
			return d.reportFrontMatter(name, fm)
		}))
	}
	return opts
}

// reportFrontMatter writes a comment line listing the front matter keys. It
// runs before the first record of the input is written.
func (d *dumper) reportFrontMatter(name string, fm jot.FrontMatter) error {
	meta, err := fm.Decode()
	if errors.Is(err, jot.ErrUnsupportedFrontMatter) {
		klog.Warningf("%s: %v", name, err)
		_, err = fmt.Fprintf(d.w, "# front matter (%s): %d bytes\n", fm.Format, len(fm.Raw))
		return err
	}
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	klog.V(1).Infof("%s: front matter %s with %d keys", name, fm.Format, len(keys))
	_, err = fmt.Fprintf(d.w, "# front matter (%s): %s\n", fm.Format, strings.Join(keys, ", "))
	return err
}

func (d *dumper) dump(in input) error {
	start := time.Now()
	if in.url != "" && !d.simulate {
		err := jot.HTTPDump(context.Background(), jot.HTTPDumpRequest{
			URL:          in.url,
			Writer:       d.w,
			Width:        d.width,
			Theme:        d.theme,
			Format:       d.format,
			Options:      d.dumpOptions(),
			ParseOptions: d.parseOptions(in.name),
		})
		klog.V(2).Infof("%s: fetched and dumped in %v", in.name, time.Since(start))
		return err
	}

	reader, closer, err := in.open()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	sink := &countingSink{name: in.name, next: d.newSink()}
	if d.simulate {
		err = jot.Simulate(jot.SimulateRequest{
			Reader:    reader,
			Sink:      sink,
			ChunkSize: d.simChunkSize,
			Delay:     d.simDelay,
			Options:   d.parseOptions(in.name),
		})
	} else {
		err = jot.Parse(jot.ParseRequest{
			Reader:  reader,
			Sink:    sink,
			Options: d.parseOptions(in.name),
		})
	}
	klog.V(2).Infof("%s: %d events, %d bytes in %v", in.name, sink.events, sink.bytes, time.Since(start))
	return err
}

func (d *dumper) newSink() jot.Sink {
	if d.format == jot.FormatYAML {
		return jot.NewYAMLSink(d.w)
	}
	return jot.NewTreeSink(d.w, d.width, d.theme, d.dumpOptions()...)
}

// countingSink forwards records and keeps statistics for verbose logging.
type countingSink struct {
	name   string
	next   jot.Sink
	events int
	bytes  int
}

func (c *countingSink) WriteRecord(rec jot.Record) error {
	c.events++
	c.bytes += len(rec.Text)
	if klog.V(4).Enabled() {
		klog.Infof("%s: %v %q", c.name, rec.Event, rec.Text)
	}
	return c.next.WriteRecord(rec)
}

func (c *countingSink) Flush() error {
	return c.next.Flush()
}

func printThemes(w io.Writer) {
	for _, name := range jot.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
		if value := os.Getenv("COLUMNS"); value != "" {
			if cols, err := strconv.Atoi(value); err == nil && cols > 0 {
				return cols
			}
		}
	}
	return 0
}

type input struct {
	name string
	// url is set for http(s) inputs.
	url  string
	open func() (io.Reader, io.Closer, error)
}

func makeInputs(args []string, stdin io.Reader) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	inputs := make([]input, 0, len(args))
	for _, raw := range args {
		in, err := makeInput(raw, stdin)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func makeInput(raw string, stdin io.Reader) (input, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return input{}, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return input{name: "<stdin>", open: func() (io.Reader, io.Closer, error) {
			return stdin, nil, nil
		}}, nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return input{name: raw, url: raw, open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return input{name: raw, open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return input{name: raw, open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
