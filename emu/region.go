package emu

import (
	"time"

	emucore "github.com/user-none/eblitui/api"
)

// Region is an alias for emucore.Region so internal code compiles unchanged.
type Region = emucore.Region

const (
	RegionNTSC = emucore.RegionNTSC
	RegionPAL  = emucore.RegionPAL
)

// RegionTiming holds the frame rate the frontend drives RunFrame at.
// CHIP-8 has no video standard of its own; the region only selects how much
// emulated time passes per frame.
type RegionTiming struct {
	FPS int
}

var NTSCTiming = RegionTiming{FPS: 60}

var PALTiming = RegionTiming{FPS: 50}

// FrameDuration returns the emulated time covered by one frame.
func (t RegionTiming) FrameDuration() time.Duration {
	return time.Second / time.Duration(t.FPS)
}

// GetTimingForRegion returns the appropriate timing constants
func GetTimingForRegion(r Region) RegionTiming {
	if r == RegionPAL {
		return PALTiming
	}
	return NTSCTiming
}

// DetectRegionFromROM always reports NTSC: CHIP-8 programs carry no header
// and were written for 60 Hz timers.
func DetectRegionFromROM(rom []byte) (Region, bool) {
	return RegionNTSC, false
}
