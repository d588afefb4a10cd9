// Package emuios provides a gomobile-compatible interface to the emulator.
package emuios

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/user-none/chipegg/emu"
	"github.com/user-none/chipegg/internal/config"
	"github.com/user-none/chipegg/romloader"
)

// ExtractResult contains the result of ROM extraction
type ExtractResult struct {
	Crc32    string // Hex string, e.g., "AABBCCDD"
	Filename string // Original filename from archive, e.g., "PONG.ch8"
}

// currentEmu holds the emulator state (unexported)
var currentEmu *emulatorState

type emulatorState struct {
	emu       emu.Emulator
	buttons   uint32
	frameData []byte
	audioData []byte
}

// InitFromPath creates an emulator from a ROM file path.
// Automatically extracts from ZIP/7z/gzip/RAR if needed.
// regionCode: 0=NTSC, 1=PAL
// Returns true on success, false on error.
func InitFromPath(path string, regionCode int) bool {
	rom, _, err := romloader.LoadROM(path)
	if err != nil {
		return false
	}

	region := emu.RegionNTSC
	if regionCode == 1 {
		region = emu.RegionPAL
	}

	e, err := emu.NewEmulatorWithConfig(rom, region, emu.DefaultConfig(), config.CreateLogger(false, true))
	if err != nil {
		return false
	}
	currentEmu = &emulatorState{emu: e}
	return true
}

// Close releases the emulator.
func Close() {
	currentEmu = nil
}

// Reset restarts the loaded program.
func Reset() {
	if currentEmu != nil {
		currentEmu.emu.Reset()
	}
}

// RunFrame executes one frame of emulation.
func RunFrame() {
	if currentEmu == nil {
		return
	}
	currentEmu.emu.SetInput(0, currentEmu.buttons)
	currentEmu.emu.RunFrame()

	currentEmu.frameData = currentEmu.emu.GetFramebuffer()

	// Convert audio samples to little-endian bytes
	samples := currentEmu.emu.GetAudioSamples()
	if len(currentEmu.audioData) != len(samples)*2 {
		currentEmu.audioData = make([]byte, len(samples)*2)
	}
	for i, s := range samples {
		currentEmu.audioData[i*2] = byte(s)
		currentEmu.audioData[i*2+1] = byte(s >> 8)
	}
}

// FrameWidth returns the display width in pixels.
func FrameWidth() int {
	if currentEmu == nil {
		return emu.ScreenWidth
	}
	return currentEmu.emu.GetFramebufferStride() / 4
}

// FrameHeight returns the display height in pixels.
func FrameHeight() int {
	if currentEmu == nil {
		return emu.MaxScreenHeight
	}
	return currentEmu.emu.GetActiveHeight()
}

// GetFrameData returns the RGBA frame buffer.
func GetFrameData() []byte {
	if currentEmu == nil {
		return nil
	}
	return currentEmu.frameData
}

// GetAudioData returns one frame of 16-bit stereo PCM.
func GetAudioData() []byte {
	if currentEmu == nil {
		return nil
	}
	return currentEmu.audioData
}

// SetKey sets the state of hex key 0-F. Applied on the next RunFrame.
func SetKey(key int, pressed bool) {
	if currentEmu == nil || key < 0 || key >= emu.KeyCount {
		return
	}
	if pressed {
		currentEmu.buttons |= emu.KeyBit(key)
	} else {
		currentEmu.buttons &^= emu.KeyBit(key)
	}
}

// SoundActive reports whether the buzzer should sound. The host plays the
// tone itself.
func SoundActive() bool {
	if currentEmu == nil {
		return false
	}
	return currentEmu.emu.SoundActive()
}

// Halted reports whether the program stopped on an error.
func Halted() bool {
	if currentEmu == nil {
		return false
	}
	return currentEmu.emu.Halted()
}

// SetOption applies a core option, e.g. "quirk_jump" = "true".
func SetOption(key, value string) {
	if currentEmu != nil {
		currentEmu.emu.SetOption(key, value)
	}
}

// Region returns the current region (0=NTSC, 1=PAL).
func Region() int {
	if currentEmu == nil {
		return 0
	}
	if currentEmu.emu.GetRegion() == emu.RegionPAL {
		return 1
	}
	return 0
}

// GetFPS returns the target FPS for a region code.
func GetFPS(regionCode int) int {
	if regionCode == 1 {
		return emu.PALTiming.FPS
	}
	return emu.NTSCTiming.FPS
}

// GetCRC32FromPath calculates the CRC32 checksum of a ROM file.
// Automatically extracts from ZIP/7z/gzip/RAR if needed.
// Returns -1 on error.
func GetCRC32FromPath(path string) int64 {
	rom, _, err := romloader.LoadROM(path)
	if err != nil {
		return -1
	}

	return int64(crc32.ChecksumIEEE(rom))
}

// ExtractAndStoreROM extracts a ROM from an archive (or copies a raw ROM),
// calculates its CRC32, and stores it as {destDir}/{CRC32}.ch8.
// If a file with the same CRC32 already exists, it skips writing.
func ExtractAndStoreROM(srcPath, destDir string) (*ExtractResult, error) {
	rom, filename, err := romloader.LoadROM(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ROM: %w", err)
	}

	crcHex := fmt.Sprintf("%08X", crc32.ChecksumIEEE(rom))
	destPath := filepath.Join(destDir, crcHex+".ch8")

	// Same CRC = same content
	if _, err := os.Stat(destPath); err == nil {
		return &ExtractResult{Crc32: crcHex, Filename: filename}, nil
	}

	if err := os.WriteFile(destPath, rom, 0644); err != nil {
		return nil, fmt.Errorf("failed to write ROM: %w", err)
	}

	return &ExtractResult{Crc32: crcHex, Filename: filename}, nil
}
