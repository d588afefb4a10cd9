package emu

// Core identification reported to frontends.
const (
	Name    = "chipegg"
	Version = "0.3.0"
)
