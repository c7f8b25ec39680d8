// Command gen-golden regenerates the event goldens under testdata.
//
// Every testdata/*.dj input gets a <name>.golden.yaml event list. Tree dumps
// are regenerated for each <name>.wN.golden that already exists.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pkt.systems/jot"
)

const inputExt = ".dj"

func main() {
	root := "testdata"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	var paths []string
	widthsByBase := map[string][]int{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, inputExt) {
			paths = append(paths, path)
			return nil
		}
		if base, width, ok := parseGoldenWidth(root, path); ok {
			widthsByBase[base] = append(widthsByBase[base], width)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no %s files found under %s", inputExt, root)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		base := goldenBase(root, path)
		var out bytes.Buffer
		if err := jot.Dump(jot.DumpRequest{
			Reader: bytes.NewReader(src),
			Writer: &out,
			Format: jot.FormatYAML,
		}); err != nil {
			fatalf("dump %s: %v", path, err)
		}
		writeGolden(filepath.Join(root, base+".golden.yaml"), out.Bytes())
		for _, width := range widthsByBase[base] {
			out.Reset()
			if err := jot.Dump(jot.DumpRequest{
				Reader:  bytes.NewReader(src),
				Writer:  &out,
				Width:   width,
				Format:  jot.FormatTree,
				Options: []jot.DumpOption{jot.WithColor(false)},
			}); err != nil {
				fatalf("dump %s width %d: %v", path, width, err)
			}
			writeGolden(filepath.Join(root, fmt.Sprintf("%s.w%d.golden", base, width)), out.Bytes())
		}
	}
}

func writeGolden(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fatalf("write %s: %v", path, err)
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", path)
}

func goldenBase(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	name := strings.TrimSuffix(rel, inputExt)
	return strings.ReplaceAll(filepath.ToSlash(name), "/", "__")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func parseGoldenWidth(root, goldenPath string) (string, int, bool) {
	rel, err := filepath.Rel(root, goldenPath)
	if err != nil {
		return "", 0, false
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasSuffix(rel, ".golden") {
		return "", 0, false
	}
	name := strings.TrimSuffix(rel, ".golden")
	idx := strings.LastIndex(name, ".w")
	if idx == -1 {
		return "", 0, false
	}
	width, err := strconv.Atoi(name[idx+2:])
	if err != nil || width <= 0 {
		return "", 0, false
	}
	return name[:idx], width, true
}
