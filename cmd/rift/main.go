// Command rift is a grep-like line filter built on package rift: it reads
// one or more files (or standard input) and prints the lines matching a
// Rift pattern, optionally highlighting the matched span.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/riftlang/rift"
	"github.com/riftlang/rift/flags"
)

var version = "0.1.0"

func main() {
	var stdin io.Reader
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		stdin = os.Stdin
	}
	if err := run(os.Args, stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("rift", flag.ContinueOnError)
	fs.SetOutput(stderr)

	ignoreCase := fs.BoolP("ignore-case", "i", false, "force case-insensitive matching")
	invert := fs.BoolP("invert-match", "v", false, "print lines that do NOT match")
	count := fs.BoolP("count", "c", false, "print only a count of matching lines")
	lineNumber := fs.BoolP("line-number", "n", false, "prefix each line with its 1-based line number")
	onlyMatching := fs.BoolP("only-matching", "o", false, "print only the matched span, one per line")
	multiline := fs.Bool("multiline", false, "^ and $ also match at internal newlines")
	dotAll := fs.Bool("dotall", false, "'.' also matches newline")
	verbose := fs.Bool("verbose", false, "allow whitespace and '#' comments in the pattern")
	color := fs.String("color", "auto", "highlight matches: auto, always, never")
	showVersion := fs.BoolP("version", "V", false, "print the version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "rift - search files with a Rift-flavored regular expression\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  rift [flags] PATTERN [FILE...]\n")
		fmt.Fprintf(stderr, "  echo 'text' | rift [flags] PATTERN\n\n")
		fmt.Fprintf(stderr, "PATTERN may be a bare pattern or a \"pattern/flags\" flavor string\n")
		fmt.Fprintf(stderr, "(e.g. 'foo/i'); see --ignore-case and friends for the flag equivalents.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "rift version %s\n", version)
		return nil
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("no pattern provided")
	}
	pattern, files := rest[0], rest[1:]

	fl := flags.Default()
	fl.Multiline = *multiline
	fl.DotAll = *dotAll
	fl.Verbose = *verbose
	if *ignoreCase {
		fl.Case = flags.CaseInsensitive
	}

	var re *rift.Regexp
	var err error
	if strings.Contains(pattern, "/") {
		re, err = rift.CompileFlavor(pattern)
		if err == nil && *ignoreCase {
			fl2 := re.Flags()
			fl2.Case = flags.CaseInsensitive
			re, err = rift.Compile(re.String(), fl2)
		}
	} else {
		re, err = rift.Compile(pattern, fl)
	}
	if err != nil {
		fmt.Fprintf(stderr, "rift: %v\n", err)
		return err
	}

	useColor := shouldColorize(*color, stdout)
	opts := printOptions{
		invert:       *invert,
		count:        *count,
		lineNumber:   *lineNumber,
		onlyMatching: *onlyMatching,
		color:        useColor,
	}

	if len(files) == 0 {
		if stdin == nil {
			fs.Usage()
			return fmt.Errorf("no input: pass a file or pipe data on stdin")
		}
		return searchReader("", stdin, re, opts, stdout, stderr)
	}

	var firstErr error
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(stderr, "rift: %s: %v\n", name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		label := ""
		if len(files) > 1 {
			label = name
		}
		if err := searchReader(label, f, re, opts, stdout, stderr); err != nil && firstErr == nil {
			firstErr = err
		}
		f.Close()
	}
	return firstErr
}

type printOptions struct {
	invert       bool
	count        bool
	lineNumber   bool
	onlyMatching bool
	color        bool
}

var matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff6b6b"))

func searchReader(label string, r io.Reader, re *rift.Regexp, opts printOptions, stdout, stderr io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	matches := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		span, ok := re.Find(line)
		if ok == opts.invert {
			continue
		}
		matches++
		if opts.count {
			continue
		}
		writeMatch(stdout, label, lineNo, line, span, ok, opts)
	}

	if opts.count {
		if label != "" {
			fmt.Fprintf(stdout, "%s:%d\n", label, matches)
		} else {
			fmt.Fprintf(stdout, "%d\n", matches)
		}
	}
	return scanner.Err()
}

func writeMatch(w io.Writer, label string, lineNo int, line string, span rift.Span, matched bool, opts printOptions) {
	var prefix strings.Builder
	if label != "" {
		prefix.WriteString(label)
		prefix.WriteByte(':')
	}
	if opts.lineNumber {
		prefix.WriteString(strconv.Itoa(lineNo))
		prefix.WriteByte(':')
	}

	if opts.onlyMatching {
		if matched {
			fmt.Fprintf(w, "%s%s\n", prefix.String(), highlight(span.Slice(line), opts.color))
		}
		return
	}

	if !matched || !opts.color {
		fmt.Fprintf(w, "%s%s\n", prefix.String(), line)
		return
	}
	fmt.Fprintf(w, "%s%s%s%s\n", prefix.String(), line[:span.Start], matchStyle.Render(line[span.Start:span.End]), line[span.End:])
}

func highlight(s string, useColor bool) string {
	if !useColor {
		return s
	}
	return matchStyle.Render(s)
}

func shouldColorize(mode string, stdout io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
