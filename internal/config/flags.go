package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/user-none/chipegg/emu"
)

const (
	defaultScale = 10
	maxScale     = 40
)

var errMissingROM = errors.New("no ROM file given")

// Play contains the options of the direct play window.
type Play struct {
	ROM    string
	Cycles int
	Modern bool
	Scale  int
	Debug  bool
	Quiet  bool
}

// Disasm contains the options of the disassembler command.
type Disasm struct {
	Input  string
	Output string
	Base   uint
	Debug  bool
	Quiet  bool
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	err   error
}

func (e *UsageError) Error() string {
	return e.err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// ShowUsage prints the usage line and flag defaults to stdout.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s\n\n", e.usage)
	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
}

// ParsePlayFlags parses the flags of the direct play window.
func ParsePlayFlags(args []string) (Play, error) {
	flags := flag.NewFlagSet("chipegg", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Play
	flags.StringVar(&opts.ROM, "rom", "", "path to ROM file (.ch8, .c8 or an archive containing one)")
	flags.IntVar(&opts.Cycles, "cycles", emu.DefaultCyclesPerFrame, "instructions executed per frame")
	flags.BoolVar(&opts.Modern, "modern", false, "use CHIP-48/SUPER-CHIP instruction quirks")
	flags.IntVar(&opts.Scale, "scale", defaultScale, "window scale factor")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")

	usage := "chipegg -rom <romfile> [options]"
	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, usage: usage, err: err}
	}
	if opts.ROM == "" && flags.NArg() > 0 {
		opts.ROM = flags.Arg(0)
	}
	if opts.ROM == "" {
		return opts, &UsageError{flags: flags, usage: usage, err: errMissingROM}
	}

	if opts.Cycles < 1 || opts.Cycles > emu.MaxCyclesPerFrame {
		return opts, fmt.Errorf("cycles %d out of range 1-%d", opts.Cycles, emu.MaxCyclesPerFrame)
	}
	if opts.Scale < 1 || opts.Scale > maxScale {
		return opts, fmt.Errorf("scale %d out of range 1-%d", opts.Scale, maxScale)
	}
	return opts, nil
}

// MachineConfig returns the machine configuration selected by the options.
func (p Play) MachineConfig() emu.Config {
	cfg := emu.DefaultConfig()
	if p.Modern {
		cfg.Quirks = emu.ModernQuirks()
	}
	return cfg
}

// ParseDisasmFlags parses the flags of the disassembler command. The input
// file is the last positional argument.
func ParseDisasmFlags(args []string) (Disasm, error) {
	flags := flag.NewFlagSet("chip8dis", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Disasm
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.UintVar(&opts.Base, "base", emu.ProgramStart, "address of the first ROM byte")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	usage := "chip8dis [options] <file to disassemble>"
	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, usage: usage, err: err}
	}
	if flags.NArg() != 1 {
		return opts, &UsageError{flags: flags, usage: usage, err: errMissingROM}
	}
	opts.Input = flags.Arg(0)

	if opts.Base > emu.AddressMask {
		return opts, fmt.Errorf("base address $%X outside the 12-bit address space", opts.Base)
	}
	return opts, nil
}
