// amiga_machine.go - top-level machine: bus decode, register dispatch, master clock

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

// MemoryBus is the interface the CPU issues all bus cycles through;
// ChipMemory satisfies it directly for DMA clients that never see CIA
// or custom register space, while AmigaBus additionally decodes those
// ranges for the CPU.
type MemoryBus interface {
	ReadByte(addr uint32) byte
	WriteByte(addr uint32, v byte)
	ReadWord(addr uint32) uint16
	WriteWord(addr uint32, v uint16)
	ReadLong(addr uint32) uint32
	WriteLong(addr uint32, v uint32)
}

// Real Amiga custom chip register offsets from $DFF000, used by both
// the CPU-facing bus decode and the copper's MOVE instruction.
const (
	regDMACONR = 0x002
	regVPOSR   = 0x004
	regVHPOSR  = 0x006
	regDSKPTH  = 0x020
	regDSKPTL  = 0x022
	regDSKLEN  = 0x024
	regDSKSYNC = 0x07E
	regDMACON  = 0x096
	regINTENA  = 0x09A
	regINTENAR = 0x01C
	regINTREQ  = 0x09C
	regINTREQR = 0x01E
	regADKCON  = 0x09E
	regBLTCON0 = 0x040
	regBLTCON1 = 0x042
	regBLTAFWM = 0x044
	regBLTALWM = 0x046
	regBLTCPTH = 0x048
	regBLTCPTL = 0x04A
	regBLTBPTH = 0x04C
	regBLTBPTL = 0x04E
	regBLTAPTH = 0x050
	regBLTAPTL = 0x052
	regBLTDPTH = 0x054
	regBLTDPTL = 0x056
	regBLTSIZE = 0x058
	regBLTAMOD = 0x064
	regBLTBMOD = 0x066
	regBLTCMOD = 0x068
	regBLTDMOD = 0x06C
	regCOP1LCH = 0x080
	regCOP1LCL = 0x082
	regCOP2LCH = 0x084
	regCOP2LCL = 0x086
	regCOPJMP1 = 0x088
	regCOPJMP2 = 0x08A
	regDIWSTRT = 0x08E
	regDIWSTOP = 0x090
	regDDFSTRT = 0x092
	regDDFSTOP = 0x094
	regBPL1PTH = 0x0E0
	regBPLCON0 = 0x100
	regBPLCON1 = 0x102
	regBPLCON2 = 0x104
	regBPL1MOD = 0x108
	regBPL2MOD = 0x10A
	regCOLOR00 = 0x180
	regAUD0LCH = 0x0A0
	regCLXDAT  = 0x00E
	regCLXCON  = 0x098
)

const audioChannelStride = 0x10

// AmigaBus is the CPU's view of the 24-bit address space: chip
// RAM/ROM (including the boot overlay) below $C00000, the two CIAs
// decoded onto opposite byte lanes at $BFD000/$BFE000, and the custom
// chip registers at $DFF000-$DFF1FF.
type AmigaBus struct {
	mem  *ChipMemory
	ciaA *CIA
	ciaB *CIA

	writeCustomReg func(offset uint16, data uint16)
	readCustomReg  func(offset uint16) uint16
}

func (b *AmigaBus) ReadByte(addr uint32) byte {
	addr &= 0xFFFFFF
	switch {
	case addr >= 0xBFD000 && addr <= 0xBFDFFF:
		if addr%2 == 0 {
			return b.ciaB.ReadRegister(int(addr>>8) & 0x0F)
		}
		return 0xFF
	case addr >= 0xBFE000 && addr <= 0xBFEFFF:
		if addr%2 == 1 {
			return b.ciaA.ReadRegister(int(addr>>8) & 0x0F)
		}
		return 0xFF
	case addr >= 0xDFF000 && addr <= 0xDFF1FF:
		off := uint16(addr-0xDFF000) &^ 1
		w := b.readCustomReg(off)
		if addr%2 == 0 {
			return byte(w >> 8)
		}
		return byte(w)
	default:
		return b.mem.ReadByte(addr)
	}
}

func (b *AmigaBus) WriteByte(addr uint32, v byte) {
	addr &= 0xFFFFFF
	switch {
	case addr >= 0xBFD000 && addr <= 0xBFDFFF:
		if addr%2 == 0 {
			b.ciaB.WriteRegister(int(addr>>8)&0x0F, v)
		}
	case addr >= 0xBFE000 && addr <= 0xBFEFFF:
		if addr%2 == 1 {
			b.ciaA.WriteRegister(int(addr>>8)&0x0F, v)
		}
	case addr >= 0xDFF000 && addr <= 0xDFF1FF:
		off := uint16(addr-0xDFF000) &^ 1
		cur := b.readCustomReg(off)
		if addr%2 == 0 {
			cur = (cur & 0x00FF) | uint16(v)<<8
		} else {
			cur = (cur & 0xFF00) | uint16(v)
		}
		b.writeCustomReg(off, cur)
	default:
		b.mem.WriteByte(addr, v)
	}
}

func (b *AmigaBus) ReadWord(addr uint32) uint16 {
	addr &= 0xFFFFFF
	if addr >= 0xDFF000 && addr <= 0xDFF1FF {
		return b.readCustomReg(uint16(addr-0xDFF000) &^ 1)
	}
	return uint16(b.ReadByte(addr))<<8 | uint16(b.ReadByte(addr+1))
}

func (b *AmigaBus) WriteWord(addr uint32, v uint16) {
	addr &= 0xFFFFFF
	if addr >= 0xDFF000 && addr <= 0xDFF1FF {
		b.writeCustomReg(uint16(addr-0xDFF000)&^1, v)
		return
	}
	b.WriteByte(addr, byte(v>>8))
	b.WriteByte(addr+1, byte(v))
}

func (b *AmigaBus) ReadLong(addr uint32) uint32 {
	return uint32(b.ReadWord(addr))<<16 | uint32(b.ReadWord(addr+2))
}

func (b *AmigaBus) WriteLong(addr uint32, v uint32) {
	b.WriteWord(addr, uint16(v>>16))
	b.WriteWord(addr+2, uint16(v))
}

// Machine wires every chipset component to the shared master clock and
// owns the custom-register address decode that Agnus's copper and the
// CPU's bus both write through.
type Machine struct {
	Config MachineConfig

	Mem     *ChipMemory
	Bus     *AmigaBus
	CPU     *CPU
	Agnus   *Agnus
	Denise  *Denise
	Copper  *Copper
	Blitter *Blitter
	Paula   *Paula
	CIAA    *CIA
	CIAB    *CIA
	Keyboard *Keyboard
	Disk    *DiskController

	cop1lcHi, cop2lcHi             uint16
	bltCHi, bltBHi, bltAHi, bltDHi uint16
	bltAFWM, bltALWM               uint16
	bltAMod, bltBMod, bltCMod, bltDMod int32
	oddModHold, evenModHold        int32
	bplptHi                        [maxBitplanes]uint16
	bplptLo                        [maxBitplanes]uint16

	ticks uint64

	// cpuConsumedCCK tracks whether the CPU has already used this CCK's
	// bus transaction, enforcing the "at most one chip-bus transaction
	// per CCK" rule across the two CPU-period polls that fall inside it.
	cpuConsumedCCK bool
}

func NewMachine(cfg MachineConfig) *Machine {
	m := &Machine{Config: cfg}

	m.Mem = NewChipMemory(cfg.ROM)
	m.CIAA = NewCIA()
	m.CIAB = NewCIA()
	m.Keyboard = NewKeyboard(m.CIAA)
	m.Disk = NewDiskController()
	m.Copper = NewCopper()
	m.Blitter = NewBlitter()
	m.Denise = NewDenise()
	m.Paula = NewPaula()
	m.Agnus = NewAgnus(cfg.PAL, m.Mem, m.Copper, m.Blitter, m.Denise, m.Paula, m.Disk)
	m.Agnus.SetCustomRegWriter(m.writeCustomReg)

	m.Bus = &AmigaBus{mem: m.Mem, ciaA: m.CIAA, ciaB: m.CIAB, writeCustomReg: m.writeCustomReg, readCustomReg: m.readCustomReg}
	m.CPU = NewCPU(m.Bus)

	m.CIAA.OnIRQ = func() { m.Paula.RequestInterrupt(IntPORTS) }
	m.CIAB.OnIRQ = func() { m.Paula.RequestInterrupt(IntEXTER) }
	m.CIAA.OnSerialByte = func() { m.Keyboard.KeyboardHandshake() }
	m.CIAA.OnPortAChange = func(v byte) { m.Mem.SetOverlay(v&1 != 0) } // PRA bit 0: OVL
	m.Disk.OnInterrupt = func() { m.Paula.RequestInterrupt(IntDSKBLK) }
	m.Blitter.OnDone = func() { m.Paula.RequestInterrupt(IntBLIT) }

	m.Agnus.OnVerticalBlank = func() {
		m.CIAA.PulseTOD()
		m.Paula.RequestInterrupt(IntVERTB)
		m.latchBitplanePointers()
	}
	m.Agnus.OnHorizontalSync = func() { m.CIAB.PulseTOD() }

	return m
}

func (m *Machine) latchBitplanePointers() {
	for p := 0; p < maxBitplanes; p++ {
		m.Agnus.WriteBPLPT(p, uint32(m.bplptHi[p])<<16|uint32(m.bplptLo[p]))
	}
}

// HardReset re-runs the CPU's /RESET sequence and re-arms the boot
// overlay, matching a user-initiated Ctrl-Amiga-Amiga reset.
func (m *Machine) HardReset() {
	m.Mem.SetOverlay(true)
	m.CPU.Reset()
}

// Tick advances every component by one master crystal cycle: Agnus on
// every CCK boundary, the CPU on every CPU-period boundary, both CIAs
// on every E-clock boundary, in that fixed order.
func (m *Machine) Tick() {
	m.ticks++
	if m.ticks%CCKPeriod == 0 {
		m.Agnus.Tick()
		m.cpuConsumedCCK = false
	}
	if m.ticks%CPUPeriod == 0 {
		m.serviceCPU()
	}
	if m.ticks%EClockPeriod == 0 {
		m.CIAA.TickEClock()
		m.CIAB.TickEClock()
	}
}

// serviceCPU polls the CPU once per CPU-period tick. An autovectored
// interrupt is only taken when the CPU reports AtIdle(), matching the
// spec's rule that a pending interrupt is accepted at the next
// instruction boundary and never mid bus-cycle or micro-op. Otherwise
// the CPU is polled with whatever bus grant Agnus computed for this
// CCK, withheld a second time if the CPU already consumed its one
// transaction for the CCK.
func (m *Machine) serviceCPU() {
	if level := m.Paula.IPL(); level > m.CPU.IPLMask() && m.CPU.AtIdle() {
		m.CPU.RaiseAutovector(level)
		m.Paula.AckLevel(level)
		return
	}
	granted := m.Agnus.CPUBusGranted() && !m.cpuConsumedCCK
	if m.CPU.Poll(granted) {
		m.cpuConsumedCCK = true
	}
}

// RunFrame advances the machine by exactly one video field.
func (m *Machine) RunFrame() {
	vposCount := VposCountPAL
	if !m.Config.PAL {
		vposCount = VposCountNTSC
	}
	total := HposCountPAL * CCKPeriod * vposCount
	for i := 0; i < total; i++ {
		m.Tick()
	}
}

// writeCustomReg dispatches a word write into the $DFF000-$DFF1FF
// register space, the single entry point shared by the CPU's bus and
// the copper's MOVE instruction.
func (m *Machine) writeCustomReg(offset uint16, data uint16) {
	switch offset {
	case regDMACON:
		m.Agnus.WriteDMACON(data)
	case regINTENA:
		m.Paula.WriteINTENA(data)
	case regINTREQ:
		m.Paula.WriteINTREQ(data)
	case regADKCON:
		m.Paula.WriteADKCON(data)
	case regDSKPTH:
		m.Disk.WriteDSKPTH(data)
	case regDSKPTL:
		m.Disk.WriteDSKPTL(data)
	case regDSKLEN:
		m.Disk.WriteDSKLEN(data)
	case regDSKSYNC:
		m.Disk.WriteDSKSYNC(data)
	case regCOP1LCH:
		m.cop1lcHi = data
	case regCOP1LCL:
		m.Copper.SetList1(uint32(m.cop1lcHi)<<16 | uint32(data))
	case regCOP2LCH:
		m.cop2lcHi = data
	case regCOP2LCL:
		m.Copper.SetList2(uint32(m.cop2lcHi)<<16 | uint32(data))
	case regCOPJMP1:
		m.Copper.RestartFromList1()
	case regCOPJMP2:
		m.Copper.RestartFromList2()
	case regDDFSTRT:
		m.Agnus.WriteDDFSTRT(data)
	case regDDFSTOP:
		m.Agnus.WriteDDFSTOP(data)
	case regBPLCON0:
		m.Denise.WriteBPLCON0(data)
		m.Agnus.SetActivePlanes(int((data >> 12) & 0x7))
	case regBPLCON1:
		m.Denise.WriteBPLCON1(data)
	case regBPLCON2:
		m.Denise.WriteBPLCON2(data)
	case regBPL1MOD:
		m.oddModHold = int32(int16(data))
		m.Agnus.WriteBPLMod(m.oddModHold, m.evenModHold)
	case regBPL2MOD:
		m.evenModHold = int32(int16(data))
		m.Agnus.WriteBPLMod(m.oddModHold, m.evenModHold)
	case regCLXCON:
		m.Denise.WriteCLXCON(data)
	case regBLTCON0:
		m.writeBLTCON0(data)
	case regBLTCON1:
		m.writeBLTCON1(data)
	case regBLTAFWM:
		m.bltAFWM = data
		m.Blitter.SetFirstLastWordMask(m.bltAFWM, m.bltALWM)
	case regBLTALWM:
		m.bltALWM = data
		m.Blitter.SetFirstLastWordMask(m.bltAFWM, m.bltALWM)
	case regBLTCPTH:
		m.bltCHi = data
	case regBLTCPTL:
		m.Blitter.SetCPT(uint32(m.bltCHi)<<16 | uint32(data))
	case regBLTBPTH:
		m.bltBHi = data
	case regBLTBPTL:
		m.Blitter.SetBPT(uint32(m.bltBHi)<<16 | uint32(data))
	case regBLTAPTH:
		m.bltAHi = data
	case regBLTAPTL:
		m.Blitter.SetAPT(uint32(m.bltAHi)<<16 | uint32(data))
	case regBLTDPTH:
		m.bltDHi = data
	case regBLTDPTL:
		m.Blitter.SetDPT(uint32(m.bltDHi)<<16 | uint32(data))
	case regBLTAMOD:
		m.bltAMod = int32(int16(data))
	case regBLTBMOD:
		m.bltBMod = int32(int16(data))
	case regBLTCMOD:
		m.bltCMod = int32(int16(data))
	case regBLTDMOD:
		m.bltDMod = int32(int16(data))
	case regBLTSIZE:
		m.Blitter.SetModulos(m.bltAMod, m.bltBMod, m.bltCMod, m.bltDMod)
		if m.Blitter.LineMode() {
			length := int(data >> 6)
			if length == 0 {
				length = 1024
			}
			m.Blitter.StartSize(1, length)
			return
		}
		width := int(data & 0x3F)
		if width == 0 {
			width = 64
		}
		height := int(data >> 6)
		if height == 0 {
			height = 1024
		}
		m.Blitter.StartSize(width, height)
	default:
		m.dispatchPlaneOrSprite(offset, data)
	}
}

func (m *Machine) dispatchPlaneOrSprite(offset, data uint16) {
	if offset >= regBPL1PTH && offset < regBPL1PTH+uint16(maxBitplanes)*4 {
		rel := offset - regBPL1PTH
		plane := int(rel / 4)
		if rel%4 == 0 {
			m.bplptHi[plane] = data
		} else {
			m.bplptLo[plane] = data
			m.Agnus.WriteBPLPT(plane, uint32(m.bplptHi[plane])<<16|uint32(data))
		}
		return
	}
	if offset >= regCOLOR00 && offset < regCOLOR00+32*2 {
		idx := int(offset-regCOLOR00) / 2
		m.Denise.WriteColor(idx, data)
		return
	}
	if offset >= regAUD0LCH && offset < regAUD0LCH+4*audioChannelStride {
		ch := int(offset-regAUD0LCH) / audioChannelStride
		sub := (offset - regAUD0LCH) % audioChannelStride
		switch sub {
		case 0x0:
			m.Paula.WriteAUDLCH(ch, data)
		case 0x2:
			m.Paula.WriteAUDLCL(ch, data)
		case 0x4:
			m.Paula.WriteAUDLEN(ch, data)
		case 0x6:
			m.Paula.WriteAUDPER(ch, data)
		case 0x8:
			m.Paula.WriteAUDVOL(ch, data)
		}
		return
	}
}

func (m *Machine) writeBLTCON0(data uint16) {
	useA := data&(1<<11) != 0
	useB := data&(1<<10) != 0
	useC := data&(1<<9) != 0
	useD := data&(1<<8) != 0
	minterm := byte(data & 0xFF)
	ash := uint(data>>12) & 0xF
	m.Blitter.WriteCON0(useA, useB, useC, useD, minterm, ash)
}

func (m *Machine) writeBLTCON1(data uint16) {
	bsh := uint(data>>12) & 0xF
	lineMode := data&1 != 0
	descending := data&(1<<1) != 0 && !lineMode
	fillEnable := data&(1<<1) != 0 && !lineMode
	fillXOR := data&(1<<2) != 0
	octant := int(data>>2) & 0x7
	single := data&(1<<7) != 0
	m.Blitter.WriteCON1(bsh, descending, fillEnable, fillXOR, lineMode, octant, single)
}

// readCustomReg answers the small set of custom registers that are
// readable by the CPU; all others (write-only on real hardware) read
// back as zero.
func (m *Machine) readCustomReg(offset uint16) uint16 {
	switch offset {
	case regDMACONR:
		return m.Agnus.DMACON()
	case regINTENAR:
		return m.Paula.ReadINTENAR()
	case regINTREQR:
		return m.Paula.ReadINTREQR()
	case regVPOSR:
		return uint16(m.Agnus.Vpos() >> 8)
	case regVHPOSR:
		return uint16(m.Agnus.Vpos()<<8) | uint16(m.Agnus.Hpos())
	case regCLXDAT:
		return m.Denise.ReadCLXDAT()
	default:
		return 0
	}
}
