//go:build !libretro && !ios

package main

import (
	"flag"

	"github.com/retroenv/retrogolib/log"
	"github.com/user-none/chipegg/adapter"
	"github.com/user-none/chipegg/internal/config"
	"github.com/user-none/eblitui/standalone"
)

// modernOptions are the core option values matching emu.ModernQuirks.
var modernOptions = map[string]string{
	"quirk_shift":                "false",
	"quirk_jump":                 "true",
	"quirk_load_store":           "false",
	"quirk_load_store_increment": "false",
	"quirk_index_overflow":       "false",
	"quirk_logic_vf":             "false",
}

func main() {
	romPath := flag.String("rom", "", "path to ROM file (opens UI if not provided)")
	regionFlag := flag.String("region", "ntsc", "frame rate: ntsc (60 Hz) or pal (50 Hz)")
	modern := flag.Bool("modern", false, "use CHIP-48/SUPER-CHIP instruction quirks")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := config.CreateLogger(*debug, false)
	factory := &adapter.Factory{}

	if *romPath != "" {
		options := map[string]string{}
		if *modern {
			options = modernOptions
		}
		logger.Debug("Starting direct play", log.String("rom", *romPath), log.String("region", *regionFlag))
		if err := standalone.RunDirect(factory, *romPath, *regionFlag, options); err != nil {
			logger.Fatal("Direct play failed", log.Err(err))
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		logger.Fatal("UI failed", log.Err(err))
	}
}
