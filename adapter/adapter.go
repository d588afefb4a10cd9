package adapter

import (
	"strconv"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/chipegg/emu"
)

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// Factory implements emucore.CoreFactory for the CHIP-8 interpreter.
type Factory struct{}

// keypad lists the hex keys in COSMAC VIP layout order with the host keys
// conventionally mapped to them. Hex key k is input bit emu.KeyButtonBase+k:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var keypad = []emucore.Button{
	{Name: "1", ID: emu.KeyButtonBase + 0x1, DefaultKey: "1"},
	{Name: "2", ID: emu.KeyButtonBase + 0x2, DefaultKey: "2"},
	{Name: "3", ID: emu.KeyButtonBase + 0x3, DefaultKey: "3"},
	{Name: "C", ID: emu.KeyButtonBase + 0xC, DefaultKey: "4"},
	{Name: "4", ID: emu.KeyButtonBase + 0x4, DefaultKey: "Q", DefaultPad: "B"},
	{Name: "5", ID: emu.KeyButtonBase + 0x5, DefaultKey: "W", DefaultPad: "A"},
	{Name: "6", ID: emu.KeyButtonBase + 0x6, DefaultKey: "E"},
	{Name: "D", ID: emu.KeyButtonBase + 0xD, DefaultKey: "R"},
	{Name: "7", ID: emu.KeyButtonBase + 0x7, DefaultKey: "A"},
	{Name: "8", ID: emu.KeyButtonBase + 0x8, DefaultKey: "S"},
	{Name: "9", ID: emu.KeyButtonBase + 0x9, DefaultKey: "D"},
	{Name: "E", ID: emu.KeyButtonBase + 0xE, DefaultKey: "F"},
	{Name: "A", ID: emu.KeyButtonBase + 0xA, DefaultKey: "Z"},
	{Name: "0", ID: emu.KeyButtonBase + 0x0, DefaultKey: "X"},
	{Name: "B", ID: emu.KeyButtonBase + 0xB, DefaultKey: "C"},
	{Name: "F", ID: emu.KeyButtonBase + 0xF, DefaultKey: "V", DefaultPad: "Start"},
}

func boolOption(key, label, description, def string) emucore.CoreOption {
	return emucore.CoreOption{
		Key:         key,
		Label:       label,
		Description: description,
		Type:        emucore.CoreOptionBool,
		Default:     def,
		Category:    emucore.CoreOptionCategoryCore,
	}
}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            "chipegg",
		ConsoleName:     "CHIP-8",
		Extensions:      []string{".ch8", ".c8"},
		ScreenWidth:     emu.ScreenWidth,
		MaxScreenHeight: emu.MaxScreenHeight,
		AspectRatio:     2.0,
		SampleRate:      48000,
		Buttons:         keypad,
		Players:         1,
		CoreOptions: []emucore.CoreOption{
			{
				Key:         "cycles_per_frame",
				Label:       "Cycles Per Frame",
				Description: "Instructions executed each frame",
				Type:        emucore.CoreOptionRange,
				Default:     strconv.Itoa(emu.DefaultCyclesPerFrame),
				Min:         1,
				Max:         emu.MaxCyclesPerFrame,
				Step:        1,
				Category:    emucore.CoreOptionCategoryCore,
			},
			boolOption("quirk_shift", "Shift Uses VY", "8XY6/8XYE shift VY into VX (COSMAC VIP)", "true"),
			boolOption("quirk_jump", "Jump Uses VX", "BXNN jumps to XNN+VX instead of NNN+V0", "false"),
			boolOption("quirk_load_store", "Transfer All Registers", "FX55/FX65 move all 16 registers", "true"),
			boolOption("quirk_load_store_increment", "Transfer Increments I", "FX55/FX65 advance I", "false"),
			boolOption("quirk_index_overflow", "Index Overflow Flag", "FX1E sets VF when I passes $FFF", "true"),
			boolOption("quirk_logic_vf", "Logic Resets VF", "8XY1/8XY2/8XY3 clear VF", "false"),
			boolOption("halt_on_error", "Halt On Error", "Stop on stack overflow, underflow or running off memory", "true"),
		},
		DataDirName: "chipegg",
		CoreName:    emu.Name,
		CoreVersion: emu.Version,
	}
}

// CreateEmulator creates a new emulator instance with the given ROM and region.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	e, err := emu.NewEmulator(rom, region)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DetectRegion auto-detects the region from ROM data.
// The bool return indicates whether the region was found in the database.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	return emu.DetectRegionFromROM(rom)
}
