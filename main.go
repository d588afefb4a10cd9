//go:build !libretro

// Package main runs a CHIP-8 ROM directly in a window, without the library UI.
package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrogolib/log"
	ebitenbridge "github.com/user-none/chipegg/bridge/ebiten"
	"github.com/user-none/chipegg/cli"
	"github.com/user-none/chipegg/emu"
	"github.com/user-none/chipegg/internal/config"
	"github.com/user-none/chipegg/romloader"
)

func main() {
	opts, err := config.ParsePlayFlags(os.Args[1:])
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
			os.Exit(1)
		}
		logger.Fatal(err.Error())
	}

	romData, name, err := romloader.LoadROM(opts.ROM)
	if err != nil {
		logger.Fatal("Failed to load ROM", log.String("path", opts.ROM), log.Err(err))
	}
	logger.Info("Loaded ROM",
		log.String("name", name),
		log.Int("size", len(romData)),
		log.Int("cycles_per_frame", opts.Cycles))

	e, err := ebitenbridge.NewEmulator(romData, emu.RegionNTSC, opts.MachineConfig(), logger)
	if err != nil {
		logger.Fatal("Failed to create emulator", log.Err(err))
	}
	e.SetCyclesPerFrame(opts.Cycles)

	ebiten.SetWindowSize(emu.ScreenWidth*opts.Scale, emu.MaxScreenHeight*opts.Scale)
	ebiten.SetWindowTitle("chipegg - " + filepath.Base(name))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(e.GetTiming().FPS)

	if err := ebiten.RunGame(cli.NewRunner(e, logger)); err != nil {
		logger.Fatal("Run failed", log.Err(err))
	}
}
