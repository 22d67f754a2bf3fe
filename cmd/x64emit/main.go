// Command x64emit reads a textual MIR fixture, runs it through the emit
// package's single-pass encoder, and dumps the resulting bytes as hex plus
// the relocation table any external symbol or GOT reference produced.
// It exists to exercise the encoder from the command line without a full
// compiler front end sitting in front of it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/xyproto/env/v2"

	"github.com/xyproto/x64emit/diag"
	"github.com/xyproto/x64emit/emit"
	"github.com/xyproto/x64emit/reloc"
	"tlog.app/go/tlog"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "x64emit:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("x64emit", flag.ContinueOnError)
	backend := fs.String("backend", env.Str("X64EMIT_BACKEND", "macho"), "relocation backend: macho, elf, pe")
	verbose := fs.Bool("v", env.Bool("X64EMIT_VERBOSE"), "log every emitted instruction")
	file := fs.String("file", "", "source location recorded on diagnostics")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: x64emit [flags] <fixture-file>")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	prog, err := parseFixture(f)
	if err != nil {
		return err
	}

	sink, err := sinkFor(*backend)
	if err != nil {
		return err
	}

	opts := []emit.Option{
		emit.WithSink(sink),
		emit.WithLocation(diag.SourceLocation{File: *file}),
	}
	if *verbose {
		opts = append(opts, emit.WithLogger(tlog.DefaultLogger))
	}
	e := emit.New(opts...)

	if err := e.Emit(prog); err != nil {
		return err
	}

	dumpHex(os.Stdout, e.Bytes())
	dumpRelocs(os.Stdout, sink)
	return nil
}

func sinkFor(name string) (reloc.Sink, error) {
	switch name {
	case "macho":
		return reloc.NewMachOSink(), nil
	case "elf":
		return reloc.ELFSink{}, nil
	case "pe":
		return reloc.PESink{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func dumpHex(w io.Writer, code []byte) {
	fmt.Fprintf(w, "; %d bytes\n", len(code))
	for i := 0; i < len(code); i += 16 {
		end := i + 16
		if end > len(code) {
			end = len(code)
		}
		fmt.Fprintf(w, "%04x  % x\n", i, code[i:end])
	}
}

func dumpRelocs(w io.Writer, sink reloc.Sink) {
	m, ok := sink.(*reloc.MachOSink)
	if !ok || len(m.Relocations) == 0 {
		return
	}
	fmt.Fprintln(w, "; relocations")
	for _, r := range m.Relocations {
		fmt.Fprintf(w, ";   addr=%d symbol=%d pcrel=%v length=%d external=%v type=%d\n",
			r.Address, r.SymbolNum, r.PCRel, r.Length, r.External, r.RelocType)
	}
}
