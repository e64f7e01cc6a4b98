// amiga_memory_test.go - chip memory and boot overlay

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

import "testing"

func TestChipMemoryOverlayRoutesLowAddressesToROM(t *testing.T) {
	rom := make([]byte, 8)
	rom[0], rom[1], rom[2], rom[3] = 0x00, 0x04, 0x00, 0x00
	mem := NewChipMemory(rom)

	if !mem.Overlay() {
		t.Fatalf("expected overlay to be mapped on construction")
	}
	if got := mem.ReadLong(0); got != 0x00040000 {
		t.Errorf("ReadLong(0) under overlay = %#x, want %#x", got, 0x00040000)
	}
}

func TestChipMemoryWritesUnderOverlayLandInRAM(t *testing.T) {
	mem := NewChipMemory(make([]byte, 8))
	mem.WriteByte(0x100, 0xAB)
	if mem.ram[0x100] != 0xAB {
		t.Fatalf("write under overlay did not reach RAM")
	}
	mem.SetOverlay(false)
	if got := mem.ReadByte(0x100); got != 0xAB {
		t.Errorf("after clearing overlay ReadByte(0x100) = %#x, want 0xAB", got)
	}
}

func TestChipMemoryROMMirrorAtTopOfMap(t *testing.T) {
	rom := []byte{0x11, 0x22, 0x33, 0x44}
	mem := NewChipMemory(rom)
	mem.SetOverlay(false)
	if got := mem.ReadByte(0xFC0000); got != 0x11 {
		t.Errorf("ReadByte(0xFC0000) = %#x, want 0x11", got)
	}
	if got := mem.ReadByte(0xFC0002); got != 0x33 {
		t.Errorf("ReadByte(0xFC0002) = %#x, want 0x33", got)
	}
}

func TestChipMemoryWordAndLongRoundTrip(t *testing.T) {
	mem := NewChipMemory(nil)
	mem.SetOverlay(false)
	mem.WriteWord(0x200, 0xBEEF)
	if got := mem.ReadWord(0x200); got != 0xBEEF {
		t.Errorf("ReadWord after WriteWord = %#x, want 0xBEEF", got)
	}
	mem.WriteLong(0x300, 0xCAFEBABE)
	if got := mem.ReadLong(0x300); got != 0xCAFEBABE {
		t.Errorf("ReadLong after WriteLong = %#x, want 0xCAFEBABE", got)
	}
}
