// Package netlist parses the declarative net description format consumed by
// the lvlroute CLI and applies it to a reference device.
//
// The format is brace-delimited; whitespace, including line breaks, is not
// significant, so a net may also be written on a single line:
//
//	-- clock distribution
//	net "clk" {
//	  source X0Y0
//	  sink X3Y2 budget 100
//	  sink X1Y4 budget 50
//	}
//
//	net "gnd" {
//	  source X7Y7
//	  sink X6Y7
//	  global
//	}
//
// "--" starts a comment running to end of line. The budget clause is
// optional and defaults to zero. The global flag marks nets the router must
// leave untouched.
package netlist

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/katalvlaran/lvlroute/device"
	"github.com/katalvlaran/lvlroute/griddev"
)

// ErrParse indicates malformed netlist input.
var ErrParse = errors.New("netlist: parse error")

// File is the parsed form of a netlist file.
type File struct {
	Nets []NetDecl `parser:"@@*"`
}

// NetDecl declares one net: a quoted name, a source wire, one or more
// sinks, and an optional global flag.
type NetDecl struct {
	Name   string     `parser:"'net' @String '{'"`
	Source string     `parser:"'source' @Ident"`
	Sinks  []SinkDecl `parser:"@@+"`
	Global bool       `parser:"@'global'? '}'"`
}

// SinkDecl declares one sink wire with an optional timing budget.
type SinkDecl struct {
	Wire   string       `parser:"'sink' @Ident"`
	Budget device.Delay `parser:"('budget' @Int)?"`
}

var netlistLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\n\r]+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[{}]`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(netlistLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
)

// Parse reads a netlist from r.
func Parse(r io.Reader) (*File, error) {
	f, err := parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return f, nil
}

// ParseString parses a netlist from a string.
func ParseString(input string) (*File, error) {
	f, err := parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return f, nil
}

// ParseFile parses a netlist from a file on disk.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netlist: open %s: %w", path, err)
	}
	defer fh.Close()

	return Parse(fh)
}

// Apply registers every declared net on dev, resolving wire names through
// the device's name table.
func Apply(dev *griddev.Device, f *File) error {
	for i := range f.Nets {
		decl := &f.Nets[i]

		src, ok := dev.WireByName(decl.Source)
		if !ok {
			return fmt.Errorf("%w: net %q source %q", griddev.ErrUnknownWire, decl.Name, decl.Source)
		}

		n, err := dev.AddNet(decl.Name, src)
		if err != nil {
			return fmt.Errorf("netlist: net %q: %w", decl.Name, err)
		}

		for _, sink := range decl.Sinks {
			w, ok := dev.WireByName(sink.Wire)
			if !ok {
				return fmt.Errorf("%w: net %q sink %q", griddev.ErrUnknownWire, decl.Name, sink.Wire)
			}
			if err = dev.AddSink(n, w, sink.Budget); err != nil {
				return fmt.Errorf("netlist: net %q sink %q: %w", decl.Name, sink.Wire, err)
			}
		}

		if decl.Global {
			if err = dev.SetGlobal(n); err != nil {
				return fmt.Errorf("netlist: net %q: %w", decl.Name, err)
			}
		}
	}

	return nil
}
