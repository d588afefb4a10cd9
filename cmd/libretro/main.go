package main

import (
	libretro "github.com/user-none/eblitui/libretro"
	"github.com/user-none/chipegg/adapter"
	"github.com/user-none/chipegg/emu"
)

func init() {
	libretro.RegisterFactory(&adapter.Factory{}, []libretro.RetropadMapping{
		{RetroID: libretro.JoypadA, BitID: emu.KeyButtonBase + 0x5},     // Key 5: fire in most games
		{RetroID: libretro.JoypadB, BitID: emu.KeyButtonBase + 0x4},     // Key 4
		{RetroID: libretro.JoypadStart, BitID: emu.KeyButtonBase + 0xF}, // Key F
	})
}

func main() {}
