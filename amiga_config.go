// amiga_config.go - machine configuration, timing constants and diagnostics

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import "fmt"

// Model identifies the emulated machine. Only the A500-class OCS/ECS
// configuration named in scope is implemented.
type Model int

const (
	ModelA500 Model = iota
)

// Chipset selects the register-set revision. ECS adds a handful of extra
// bits (e.g. to DIWHIGH/BPLCON3) that this core does not model; the
// revision is carried purely so callers can express intent.
type Chipset int

const (
	ChipsetOCS Chipset = iota
	ChipsetECS
)

const (
	MasterClockPAL  = 28375160
	MasterClockNTSC = 28636360

	CCKPeriod    = 8
	CPUPeriod    = 4
	EClockPeriod = 40

	HposCountPAL  = 228 // hpos 0..227
	VposCountPAL  = 312
	VposCountNTSC = 262

	TicksPerLinePAL  = HposCountPAL * CCKPeriod
	TicksPerFramePAL = TicksPerLinePAL * VposCountPAL

	ChipMemAddrMask = 0x1FFFFF // 2 MiB addressable range
	ChipRAMSize     = 512 * 1024

	DefaultAudioSampleRate = 48000

	FramebufferLoResWidth  = 320
	FramebufferHiResWidth  = 640
	FramebufferHeight      = 256
)

// MachineConfig is the construction-time configuration for a Machine. Host
// CLI argument handling is out of scope; callers build this struct directly.
type MachineConfig struct {
	Model      Model
	Chipset    Chipset
	ROM        []byte
	PAL        bool
	SampleRate int
	Verbose    bool
}

func (c MachineConfig) sampleRate() int {
	if c.SampleRate <= 0 {
		return DefaultAudioSampleRate
	}
	return c.SampleRate
}

// amigaLogf is the diagnostic sink for the whole core: a direct fmt.Printf
// gated by a Verbose flag, matching the donor's own bare host-side print
// convention rather than pulling in a logging library it never used.
func amigaLogf(verbose bool, format string, args ...any) {
	if !verbose {
		return
	}
	fmt.Printf(format+"\n", args...)
}
