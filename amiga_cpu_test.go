// amiga_cpu_test.go - 68000-class CPU core recipe subset

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

func TestCPUResetLoadsSSPAndPCFromVectorTable(t *testing.T) {
	mem := NewChipMemory(nil)
	mem.SetOverlay(false)
	mem.WriteLong(0, 0x00040000)
	mem.WriteLong(4, 0x00FC00D2)

	c := NewCPU(mem)
	if c.A[7] != 0x00040000 {
		t.Errorf("SSP = %#x, want %#x", c.A[7], 0x00040000)
	}
	if c.PC != 0x00FC00D2 {
		t.Errorf("PC = %#x, want %#x", c.PC, 0x00FC00D2)
	}
	if c.SR&srSup == 0 {
		t.Errorf("reset did not enter supervisor mode")
	}
}

func TestCPUStepMoveImmediateToDataRegister(t *testing.T) {
	mem := NewChipMemory(nil)
	mem.SetOverlay(false)
	mem.WriteWord(0, 0x303C) // MOVE.W #imm,D0
	mem.WriteWord(2, 0x1234)

	c := NewCPU(mem)
	c.PC = 0
	c.Step()

	if c.D[0] != 0x1234 {
		t.Errorf("D0 after MOVE = %#x, want 0x1234", c.D[0])
	}
	if c.PC != 4 {
		t.Errorf("PC after MOVE = %#x, want 4", c.PC)
	}
	if c.SR&srZ != 0 {
		t.Errorf("Z flag set for a non-zero MOVE result")
	}
}

func TestCPUStepMoveWordToOddAddressRaisesAddressError(t *testing.T) {
	mem := NewChipMemory(nil)
	mem.SetOverlay(false)
	mem.WriteWord(0, 0x3280) // MOVE.W D0,(A1)
	mem.WriteLong(12, 0x00FF0000)

	c := NewCPU(mem)
	c.PC = 0
	c.D[0] = 0xABCD
	c.A[1] = 0x1001 // odd destination address

	var gotAddr uint32
	var gotWrite bool
	c.OnAddressError = func(addr uint32, write bool) { gotAddr, gotWrite = addr, write }

	c.Step()

	if gotAddr != 0x1001 || !gotWrite {
		t.Errorf("OnAddressError(addr=%#x, write=%v), want addr=0x1001 write=true", gotAddr, gotWrite)
	}
	if c.PC != 0x00FF0000 {
		t.Errorf("PC after address error = %#x, want vector-3 target 0x00FF0000", c.PC)
	}
}

func TestCPURaiseAutovectorUsesLevelPlus24Vector(t *testing.T) {
	mem := NewChipMemory(nil)
	mem.SetOverlay(false)
	mem.WriteLong(27*4, 0x00F80100) // vector 24+3

	c := NewCPU(mem)
	c.PC = 0x1000
	c.state = CPUStopped

	c.RaiseAutovector(3)

	if c.PC != 0x00F80100 {
		t.Errorf("PC after RaiseAutovector(3) = %#x, want 0x00F80100", c.PC)
	}
	if c.IPLMask() != 3 {
		t.Errorf("IPLMask after RaiseAutovector(3) = %d, want 3", c.IPLMask())
	}
	if c.state != CPUIdle {
		t.Errorf("a STOPped CPU should return to idle once an autovector is taken")
	}
}

func TestCPUStepNopAdvancesPCOnly(t *testing.T) {
	mem := NewChipMemory(nil)
	mem.SetOverlay(false)
	mem.WriteWord(0, 0x4E71) // NOP

	c := NewCPU(mem)
	c.PC = 0
	c.Step()
	if c.PC != 2 {
		t.Errorf("PC after NOP = %#x, want 2", c.PC)
	}
}
