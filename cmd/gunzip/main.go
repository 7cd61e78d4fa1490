// Command gunzip decompresses gzip members from the command line. It is
// a thin driver over internal/gzip: single-file, glob-batch, and stdin
// modes, all funneled through the same Decompress call.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mras0/deflate/internal/gzip"
)

func main() {
	glob := flag.String("glob", "", "batch-decompress every file matching this doublestar glob, rooted at -root")
	root := flag.String("root", ".", "root directory for -glob")
	mmap := flag.Bool("mmap", false, "memory-map input files instead of reading them into memory (single-file mode only)")
	out := flag.String("o", "", "output path for single-file mode; defaults to the input path with .gz stripped")
	flag.Parse()

	if *glob != "" {
		if err := runBatch(*root, *glob); err != nil {
			log.Fatal(err)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		if err := runStdin(); err != nil {
			log.Fatal(err)
		}
		return
	}
	if len(args) != 1 {
		log.Fatal("gunzip: exactly one input file, or -glob for batch mode")
	}
	if err := runFile(args[0], *out, *mmap); err != nil {
		log.Fatal(err)
	}
}

func runStdin() error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("gunzip: reading stdin: %w", err)
	}
	out, _, err := gzip.Decompress(data)
	if err != nil {
		return fmt.Errorf("gunzip: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runFile(path, outPath string, useMmap bool) error {
	data, closeInput, err := readInput(path, useMmap)
	if err != nil {
		return fmt.Errorf("gunzip: %s: %w", path, err)
	}
	defer closeInput()

	out, _, err := gzip.Decompress(data)
	if err != nil {
		return fmt.Errorf("gunzip: %s: %w", path, err)
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(path, ".gz")
		if outPath == path {
			outPath = path + ".out"
		}
	}
	return os.WriteFile(outPath, out, 0644)
}

// runBatch decompresses every file under root matching pattern in place,
// writing each member's output alongside it with ".gz" stripped. One
// failing member is reported and skipped rather than aborting the whole
// run.
func runBatch(root, pattern string) error {
	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("gunzip: bad glob %q: %w", pattern, err)
	}

	failed := 0
	for _, rel := range matches {
		path := filepath.Join(root, rel)
		if err := runFile(path, "", false); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			failed++
			continue
		}
	}
	if failed > 0 {
		return fmt.Errorf("gunzip: %d of %d files failed", failed, len(matches))
	}
	return nil
}
