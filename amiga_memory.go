// amiga_memory.go - chip memory, boot overlay and address-space decode

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

// ChipMemory owns chip RAM and ROM bytes and implements the boot-time
// overlay described in spec §4.2: while overlay is set, reads below the
// 512 KiB chip-RAM boundary return ROM bytes instead, and writes there
// still land in RAM underneath (so clearing overlay later exposes
// whatever the CPU wrote during the overlay window).
type ChipMemory struct {
	ram     []byte
	rom     []byte
	overlay bool
}

func NewChipMemory(rom []byte) *ChipMemory {
	return &ChipMemory{
		ram:     make([]byte, ChipRAMSize),
		rom:     rom,
		overlay: true,
	}
}

func (m *ChipMemory) SetOverlay(v bool) { m.overlay = v }
func (m *ChipMemory) Overlay() bool     { return m.overlay }

func (m *ChipMemory) romByte(off uint32) byte {
	if len(m.rom) == 0 {
		return 0xFF
	}
	return m.rom[int(off)%len(m.rom)]
}

// ReadByte masks addr to the 24-bit CPU address space and resolves chip
// RAM, the overlay window, and the top-of-map ROM mirror.
func (m *ChipMemory) ReadByte(addr uint32) byte {
	addr &= 0xFFFFFF
	switch {
	case addr < ChipRAMSize:
		if m.overlay {
			return m.romByte(addr)
		}
		return m.ram[addr]
	case addr >= 0xFC0000:
		return m.romByte(addr - 0xFC0000)
	default:
		return 0xFF
	}
}

// WriteByte writes to chip RAM only. A write below ChipRAMSize lands in
// RAM whatever the overlay state, including while the overlay maps those
// addresses to ROM for reads; writes to any other address, the ROM range
// included, are discarded.
func (m *ChipMemory) WriteByte(addr uint32, v byte) {
	addr &= 0xFFFFFF
	if addr < ChipRAMSize {
		m.ram[addr] = v
	}
	// ROM range writes are no-ops.
}

func (m *ChipMemory) ReadWord(addr uint32) uint16 {
	return uint16(m.ReadByte(addr))<<8 | uint16(m.ReadByte(addr+1))
}

func (m *ChipMemory) WriteWord(addr uint32, v uint16) {
	m.WriteByte(addr, byte(v>>8))
	m.WriteByte(addr+1, byte(v))
}

func (m *ChipMemory) ReadLong(addr uint32) uint32 {
	return uint32(m.ReadWord(addr))<<16 | uint32(m.ReadWord(addr+2))
}

func (m *ChipMemory) WriteLong(addr uint32, v uint32) {
	m.WriteWord(addr, uint16(v>>16))
	m.WriteWord(addr+2, uint16(v))
}
