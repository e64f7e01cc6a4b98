// amiga_copper.go - copper display-list coprocessor

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

// copperDangerThreshold is the lowest register offset writable by MOVE
// without the danger bit set.
const copperDangerThreshold = 0x40

// Copper implements the three-instruction display-list coprocessor:
// MOVE writes a data word to the custom register space; WAIT blocks
// until the beam position (masked) compares at or past a target; SKIP
// conditionally skips the following instruction. All three instructions
// are encoded as two 16-bit words read from the instruction pointer.
type Copper struct {
	pc     uint32
	list1  uint32
	list2  uint32
	danger bool
}

func NewCopper() *Copper { return &Copper{} }

func (c *Copper) SetList1(addr uint32) { c.list1 = addr }
func (c *Copper) SetList2(addr uint32) { c.list2 = addr }
func (c *Copper) SetDanger(d bool)     { c.danger = d }
func (c *Copper) PC() uint32           { return c.pc }

// RestartFromList1 re-latches the instruction pointer from COP1LC; the
// machine calls this at vertical blank when copper DMA is enabled.
func (c *Copper) RestartFromList1() { c.pc = c.list1 }

// RestartFromList2 re-latches from COP2LC, used by a strobe write to
// COPJMP2.
func (c *Copper) RestartFromList2() { c.pc = c.list2 }

// Step executes one instruction if the copper is granted this CCK.
// writeReg dispatches a MOVE's data word into the custom register space.
// Returns true when the step executed a MOVE, whether or not the danger
// bit let its register write through, and false for WAIT and SKIP.
// Agnus discards the result; no audio return-latency policy is modeled.
func (c *Copper) Step(mem *ChipMemory, writeReg func(offset uint16, data uint16), vpos, hpos int) bool {
	ir1 := mem.ReadWord(c.pc)
	ir2 := mem.ReadWord(c.pc + 2)

	if ir1&1 == 0 {
		// MOVE: bits 8-1 of IR1 give the register offset (always even).
		offset := ir1 & 0x01FE
		c.pc += 4
		if offset >= copperDangerThreshold || c.danger {
			writeReg(offset, ir2)
		}
		return true
	}

	matched := c.compareBeam(ir1, ir2, vpos, hpos)
	if ir2&1 == 0 {
		// WAIT: park on this instruction until the comparison holds.
		if matched {
			c.pc += 4
		}
		return false
	}

	// SKIP
	c.pc += 4
	if matched {
		c.pc += 4
	}
	return false
}

func (c *Copper) compareBeam(ir1, ir2 uint16, vpos, hpos int) bool {
	vp := int(ir1 >> 8)
	hp := int((ir1>>1)&0x7F) * 2
	ve := int(ir2 >> 8)
	he := int((ir2>>1)&0x7F) * 2

	maskedVP := vpos & ve
	maskedHP := (hpos &^ 1) & he

	if maskedVP != vp {
		return maskedVP > vp
	}
	return maskedHP >= hp
}
