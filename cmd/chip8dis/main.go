// Package main implements a linear disassembler for CHIP-8 ROMs.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/user-none/chipegg/disasm"
	"github.com/user-none/chipegg/internal/config"
	"github.com/user-none/chipegg/romloader"
)

func main() {
	ctx := app.Context()

	opts, err := config.ParseDisasmFlags(os.Args[1:])
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
			os.Exit(1)
		}
		logger.Fatal(err.Error())
	}

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Disassembling failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts config.Disasm) error {
	rom, name, err := romloader.LoadROM(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	logger.Info("Processing Chip-8 ROM",
		log.String("name", name),
		log.Int("size", len(rom)),
		log.Hex("base", uint16(opts.Base)))

	var out io.Writer = os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Error("Closing output file failed", log.Err(err))
			}
		}()
		out = f
	}

	return write(ctx, out, name, disasm.Disassemble(rom, uint16(opts.Base)))
}

func write(ctx context.Context, out io.Writer, name string, lines []disasm.Line) error {
	w := bufio.NewWriter(out)
	if _, err := fmt.Fprintf(w, "; %s\n\n", name); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}
