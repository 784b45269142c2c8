// Command subix is an illustrative front end over the core index and
// query engine: build an on-disk index for a text file, then query it.
// Neither this file nor anything it does (flag parsing, file I/O,
// terminal output) is part of the core design; it exists to exercise
// the library end to end.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/ashgrove-labs/subix/codec"
	"github.com/ashgrove-labs/subix/multidoc"
)

const indexSuffix = ".subix-index"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "index":
		err = runIndex(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "subix:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: subix index <file> [-i path] [-b MB] [-d delim]")
	fmt.Fprintln(os.Stderr, "       subix search <file> [-i path] -q query [-n nhits] [-c]")
}

func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	indexPath := fs.String("i", "", "index output path (default: <file>"+indexSuffix+")")
	blockMB := fs.Int("b", 0, "block size in MiB (default: unbounded)")
	delim := fs.String("d", "\n", "document delimiter (single code point)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("index: expected exactly one file argument")
	}
	file := fs.Arg(0)
	if *indexPath == "" {
		*indexPath = file + indexSuffix
	}

	text, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	delimRunes := []rune(*delim)
	if len(delimRunes) != 1 {
		return fmt.Errorf("index: delimiter must be exactly one code point, got %q", *delim)
	}

	opts := []multidoc.Option{multidoc.WithDelimiter(delimRunes[0])}
	if *blockMB > 0 {
		opts = append(opts, multidoc.WithBlockSize(uint32(*blockMB)<<20))
	}

	m, err := multidoc.BuildFromText(text, opts...)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	out, err := os.Create(*indexPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", *indexPath, err)
	}
	defer out.Close()

	bw := bufio.NewWriter(out)
	if err := codec.WriteMultiDoc(bw, m, binary.NativeEndian); err != nil {
		return fmt.Errorf("write %s: %w", *indexPath, err)
	}
	return bw.Flush()
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	indexPath := fs.String("i", "", "index path (default: <file>"+indexSuffix+")")
	query := fs.String("q", "", "substring to search for")
	nhits := fs.Int("n", 0, "limit printed hits (0 = all)")
	countOnly := fs.Bool("c", false, "print only the match count")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("search: expected exactly one file argument")
	}
	if *query == "" {
		return fmt.Errorf("search: -q is required")
	}
	file := fs.Arg(0)
	if *indexPath == "" {
		*indexPath = file + indexSuffix
	}

	text, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	raw, err := os.ReadFile(*indexPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", *indexPath, err)
	}

	m, err := codec.DecodeMultiDoc(text, raw, binary.NativeEndian)
	if err != nil {
		return fmt.Errorf("decode %s: %w", *indexPath, err)
	}

	q := []byte(*query)
	if *countOnly {
		fmt.Println(m.Freq(q))
		return nil
	}

	n := 0
	for doc, pos := range m.DocPositions(q) {
		if *nhits > 0 && n >= *nhits {
			break
		}
		fmt.Printf("doc %d @ %d\n", doc, pos)
		n++
	}
	return nil
}
