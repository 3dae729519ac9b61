// Package main is bx, the batch byte-manipulation tool: find, slice,
// replace, patch, info, and conv subcommands over stdin or a file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/bytestorm/internal/binutil"
	"github.com/dshills/bytestorm/internal/config"
	"github.com/dshills/bytestorm/internal/engine"
	"github.com/dshills/bytestorm/internal/engine/buffer"
	"github.com/dshills/bytestorm/internal/engine/search"
	"github.com/dshills/bytestorm/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "-h", "-help", "--help", "help":
		usage()
		return 0
	case "-v", "-version", "--version", "version":
		fmt.Printf("bx %s (%s)\n", version, commit)
		return 0
	}

	c, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "bx: unknown command %q\n\n", cmd)
		usage()
		return 2
	}
	return c.run(args)
}

// command is one subcommand: its flag set, shared options, and handler.
type command struct {
	name     string
	synopsis string
	handler  func(*cmdContext, []string) error
}

var commands = map[string]*command{}

func register(c *command) { commands[c.name] = c }

func init() {
	register(&command{"find", "find [-dec|-both] PATTERN", cmdFind})
	register(&command{"slice", "slice [-hex] START:END", cmdSlice})
	register(&command{"replace", "replace [-all] FROM TO", cmdReplace})
	register(&command{"patch", "patch OFFSET=HEX [OFFSET=HEX...]", cmdPatch})
	register(&command{"info", "info", cmdInfo})
	register(&command{"conv", "conv [-width N] bin2hex|hex2bin", cmdConv})
}

func usage() {
	fmt.Fprintf(os.Stderr, "bx - byte manipulation for pipes\n\n")
	fmt.Fprintf(os.Stderr, "Usage: bx <command> [options] [args]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	for _, name := range []string{"find", "slice", "replace", "patch", "info", "conv"} {
		fmt.Fprintf(os.Stderr, "  bx %s\n", commands[name].synopsis)
	}
	fmt.Fprintf(os.Stderr, "\nCommon options:\n")
	fmt.Fprintf(os.Stderr, "  -input PATH   read from PATH instead of stdin\n")
	fmt.Fprintf(os.Stderr, "  -config PATH  config file location\n\n")
	fmt.Fprintf(os.Stderr, "Examples:\n")
	fmt.Fprintf(os.Stderr, "  bx find DEADBEEF < firmware.bin\n")
	fmt.Fprintf(os.Stderr, "  bx slice -hex 0x100:0x140 -input firmware.bin\n")
	fmt.Fprintf(os.Stderr, "  bx replace -all \"DE AD\" \"00 00\" < in.bin > out.bin\n")
	fmt.Fprintf(os.Stderr, "  bx conv bin2hex < data.bin\n")
}

// cmdContext carries what every handler needs: parsed common flags, the
// loaded config, a logger, and the output stream.
type cmdContext struct {
	fs    *flag.FlagSet
	cfg   config.Config
	log   *logging.Logger
	input string
	out   io.Writer
}

// run parses common flags, loads config, and invokes the handler.
func (c *command) run(args []string) int {
	ctx := &cmdContext{out: os.Stdout}
	var configPath, logLevel string

	ctx.fs = flag.NewFlagSet("bx "+c.name, flag.ContinueOnError)
	ctx.fs.StringVar(&ctx.input, "input", "", "read from file instead of stdin")
	ctx.fs.StringVar(&configPath, "config", "", "config file location")
	ctx.fs.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	ctx.fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bx %s\n\nOptions:\n", c.synopsis)
		ctx.fs.PrintDefaults()
	}

	registerFlags(c.name, ctx)

	if err := ctx.fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bx: %v\n", err)
		return 1
	}
	ctx.cfg = cfg
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	ctx.log = logging.New(logging.Config{
		Level:  logging.ParseLevel(logLevel),
		Prefix: "bx",
	}).WithComponent(c.name)

	if err := c.handler(ctx, ctx.fs.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "bx %s: %v\n", c.name, err)
		return 1
	}
	return 0
}

// registerFlags adds subcommand-specific flags to the shared flag set.
func registerFlags(name string, ctx *cmdContext) {
	switch name {
	case "find":
		ctx.fs.BoolVar(&findDec, "dec", false, "print offsets in decimal")
		ctx.fs.BoolVar(&findBoth, "both", false, "print offsets in hex and decimal")
	case "slice":
		ctx.fs.BoolVar(&sliceHex, "hex", false, "hex dump with offsets instead of raw bytes")
	case "replace":
		ctx.fs.BoolVar(&replaceAll, "all", false, "replace every occurrence")
	case "conv":
		ctx.fs.IntVar(&convWidth, "width", 0, "bytes per output line (default from config)")
	}
}

// Subcommand flag targets. One process runs one subcommand, so package
// scope is fine here.
var (
	findDec    bool
	findBoth   bool
	sliceHex   bool
	replaceAll bool
	convWidth  int
)

// openInput returns the input stream: the -input file or stdin.
func (ctx *cmdContext) openInput() (io.ReadCloser, error) {
	if ctx.input == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(ctx.input)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

// loadDocument reads the whole input into a document.
func (ctx *cmdContext) loadDocument() (*engine.Document, error) {
	in, err := ctx.openInput()
	if err != nil {
		return nil, err
	}
	defer in.Close()

	d, err := engine.NewFromReader(in,
		engine.WithEncoding(ctx.cfg.DefaultEncoding()),
		engine.WithMaxUndoEntries(ctx.cfg.MaxUndoEntries),
	)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	ctx.log.Debug("loaded %d bytes", d.Len())
	return d, nil
}

func cmdFind(ctx *cmdContext, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("want exactly one hex pattern, got %d args", len(args))
	}
	pat, err := binutil.ParseHex(args[0])
	if err != nil {
		return err
	}
	if len(pat) == 0 {
		return fmt.Errorf("empty pattern")
	}

	d, err := ctx.loadDocument()
	if err != nil {
		return err
	}
	matches, err := search.FindAll(d.Snapshot(), pat)
	if err != nil {
		return err
	}
	// No matches prints nothing and exits clean, so pipelines can branch
	// on grep-style output emptiness.
	if len(matches) == 0 {
		ctx.log.Debug("no matches")
		return nil
	}

	for _, m := range matches {
		switch {
		case findBoth:
			fmt.Fprintf(ctx.out, "0x%08X (%d)\n", m.Start, m.Start)
		case findDec:
			fmt.Fprintf(ctx.out, "%d\n", m.Start)
		default:
			fmt.Fprintf(ctx.out, "0x%08X\n", m.Start)
		}
	}
	ctx.log.Debug("%d matches", len(matches))
	return nil
}

func cmdSlice(ctx *cmdContext, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("want exactly one START:END range, got %d args", len(args))
	}
	d, err := ctx.loadDocument()
	if err != nil {
		return err
	}
	start, end, err := binutil.ParseRange(args[0], d.Len())
	if err != nil {
		return err
	}
	if start >= d.Len() {
		return fmt.Errorf("start %#x past end of %d-byte input", start, d.Len())
	}

	data, err := d.Read(start, end)
	if err != nil {
		return err
	}
	if sliceHex {
		return binutil.Dump(ctx.out, data, start)
	}
	_, err = ctx.out.Write(data)
	return err
}

func cmdReplace(ctx *cmdContext, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("want FROM and TO hex patterns, got %d args", len(args))
	}
	from, err := binutil.ParseHex(args[0])
	if err != nil {
		return err
	}
	if len(from) == 0 {
		return fmt.Errorf("empty pattern")
	}
	to, err := binutil.ParseHex(args[1])
	if err != nil {
		return err
	}

	in, err := ctx.openInput()
	if err != nil {
		return err
	}
	defer in.Close()
	buf, err := buffer.NewBufferFromReader(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	matches, err := search.FindAll(buf.Snapshot(), from)
	if err != nil {
		return err
	}
	// No matches passes the input through unchanged; the pipeline still
	// gets its bytes.
	if len(matches) == 0 {
		ctx.log.Debug("no matches, passing input through")
		_, err = ctx.out.Write(buf.Bytes())
		return err
	}
	if !replaceAll {
		matches = matches[:1]
	}

	// Batched back to front so earlier offsets stay valid.
	edits := make([]buffer.Edit, 0, len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		edits = append(edits, buffer.NewEdit(matches[i], to))
	}
	if err := buf.ApplyEdits(edits); err != nil {
		return err
	}
	ctx.log.Info("replaced %d occurrence(s)", len(matches))

	_, err = ctx.out.Write(buf.Bytes())
	return err
}

func cmdPatch(ctx *cmdContext, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("want at least one OFFSET=HEX patch")
	}
	patches := make([]binutil.Patch, 0, len(args))
	for _, a := range args {
		p, err := binutil.ParsePatch(a)
		if err != nil {
			return err
		}
		patches = append(patches, p)
	}

	in, err := ctx.openInput()
	if err != nil {
		return err
	}
	defer in.Close()
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if err := binutil.ApplyPatches(data, patches); err != nil {
		return err
	}
	ctx.log.Info("applied %d patch(es)", len(patches))

	_, err = ctx.out.Write(data)
	return err
}

func cmdInfo(ctx *cmdContext, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("info takes no arguments")
	}
	in, err := ctx.openInput()
	if err != nil {
		return err
	}
	defer in.Close()

	s, err := binutil.Scan(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Fprintf(ctx.out, "Size: %d bytes (0x%X)\n", s.Size, s.Size)
	fmt.Fprintf(ctx.out, "Entropy: %.4f bits/byte\n", s.Entropy)
	fmt.Fprintf(ctx.out, "Null bytes: %d (%.1f%%)\n", s.Nulls, s.NullPercent())
	fmt.Fprintf(ctx.out, "Printable ASCII: %d (%.1f%%)\n", s.Printable, s.PrintablePercent())
	return nil
}

func cmdConv(ctx *cmdContext, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("want one mode: bin2hex or hex2bin")
	}
	in, err := ctx.openInput()
	if err != nil {
		return err
	}
	defer in.Close()

	width := convWidth
	if width <= 0 {
		width = ctx.cfg.DumpWidth
	}

	switch args[0] {
	case "bin2hex", "b2h":
		return binutil.Bin2Hex(ctx.out, in, width)
	case "hex2bin", "h2b":
		return binutil.Hex2Bin(ctx.out, in)
	default:
		return fmt.Errorf("unknown mode %q", args[0])
	}
}
