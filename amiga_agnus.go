// amiga_agnus.go - master clock dispatcher and DMA slot arbiter

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

// SlotOwner names which DMA client, if any, is granted a given CCK.
type SlotOwner int

const (
	SlotFree SlotOwner = iota
	SlotRefresh
	SlotDisk
	SlotAudio0
	SlotAudio1
	SlotAudio2
	SlotAudio3
	SlotSprite
	SlotBitplane
	SlotCopper
	SlotBlitter
	SlotCPU
)

// CckBusPlan is the arbitration outcome for one CCK: which fixed-owner
// category this hpos belongs to, plus (for the variable window) which
// of bitplane/copper/blitter/CPU actually won it.
type CckBusPlan struct {
	Hpos  int
	Vpos  int
	Owner SlotOwner
}

const (
	dmaconBLTPRI = 1 << 10
	dmaconDMAEN = 1 << 9
	dmaconBPLEN = 1 << 8
	dmaconCOPEN = 1 << 7
	dmaconBLTEN = 1 << 6
	dmaconSPREN = 1 << 5
	dmaconDSKEN = 1 << 4
	dmaconAUD0  = 1 << 0
	dmaconAUD1  = 1 << 1
	dmaconAUD2  = 1 << 2
	dmaconAUD3  = 1 << 3
)

// Agnus drives the shared CCK tick: it advances the beam, grants each
// cycle to exactly one DMA client per the fixed hardware slot map, and
// fires the vertical-blank restart of the copper and the
// OnHorizontalSync/OnVerticalBlank hooks.
type Agnus struct {
	hpos, vpos int
	pal        bool
	vposCount  int

	dmacon uint16

	ddfstrt, ddfstop uint16
	bplpt            [maxBitplanes]uint32
	bplmodOdd        int32
	bplmodEven       int32
	activePlanes     int

	mem     *ChipMemory
	copper  *Copper
	blitter *Blitter
	denise  *Denise
	paula   *Paula
	disk    *DiskController

	writeCustomReg func(offset uint16, data uint16)

	// cpuBusGranted is this CCK's cpu_chip_bus_granted signal, computed
	// once per Tick. A fixed slot grants the CPU only when the channel
	// it belongs to isn't itself claiming the cycle; sprite slots always
	// grant the CPU (no sprite DMA fetch is performed); refresh never
	// grants it; the variable window grants it when
	// serviceVariableWindow falls through every claimant, or when the
	// blitter takes the cycle with BLTPRI clear.
	cpuBusGranted bool

	OnVerticalBlank func()
	OnHorizontalSync func()
}

func NewAgnus(pal bool, mem *ChipMemory, copper *Copper, blitter *Blitter, denise *Denise, paula *Paula, disk *DiskController) *Agnus {
	a := &Agnus{pal: pal, mem: mem, copper: copper, blitter: blitter, denise: denise, paula: paula, disk: disk}
	if pal {
		a.vposCount = VposCountPAL
	} else {
		a.vposCount = VposCountNTSC
	}
	return a
}

func (a *Agnus) SetCustomRegWriter(fn func(offset uint16, data uint16)) { a.writeCustomReg = fn }

func (a *Agnus) WriteDMACON(v uint16) {
	if v&0x8000 != 0 {
		a.dmacon |= v & 0x7FFF
	} else {
		a.dmacon &^= v & 0x7FFF
	}
}
func (a *Agnus) DMACON() uint16 { return a.dmacon }

func (a *Agnus) WriteDDFSTRT(v uint16) { a.ddfstrt = v }
func (a *Agnus) WriteDDFSTOP(v uint16) { a.ddfstop = v }
func (a *Agnus) SetActivePlanes(n int) { a.activePlanes = n }
func (a *Agnus) WriteBPLMod(oddMod, evenMod int32) { a.bplmodOdd, a.bplmodEven = oddMod, evenMod }
func (a *Agnus) WriteBPLPT(plane int, addr uint32) {
	if plane >= 0 && plane < maxBitplanes {
		a.bplpt[plane] = addr
	}
}

func (a *Agnus) Hpos() int { return a.hpos }
func (a *Agnus) Vpos() int { return a.vpos }

// CPUBusGranted reports this CCK's cpu_chip_bus_granted signal, as
// computed by the most recent Tick.
func (a *Agnus) CPUBusGranted() bool { return a.cpuBusGranted }

func slotOwnerForHpos(hpos int) SlotOwner {
	switch {
	case hpos == 0x1B || (hpos >= 0x01 && hpos <= 0x03):
		return SlotRefresh
	case hpos >= 0x04 && hpos <= 0x06:
		return SlotDisk
	case hpos >= 0x07 && hpos <= 0x0A:
		return SlotAudio0 + SlotOwner(hpos-0x07)
	case hpos >= 0x0B && hpos <= 0x1A:
		return SlotSprite
	default:
		return SlotFree // variable window: resolved dynamically
	}
}

// bitplaneSlotLoRes and bitplaneSlotHiRes are the §4.4 variable-window
// group tables: position-in-group (hpos-ddfstrt mod group_len) maps to
// the plane index fetched that CCK, or -1 for a free slot. Plane 0 is
// always the final slot of its group.
var bitplaneSlotLoRes = [8]int{-1, 3, 5, 1, -1, 2, 4, 0}
var bitplaneSlotHiRes = [4]int{3, 1, 2, 0}

// bitplaneSlotPlane returns which plane (if any) owns the current CCK
// inside the DDF window, per the fixed-slot group table. ok is false
// for a free slot: outside the window, DMA disabled, or the mapped
// plane index is beyond the active plane count.
func (a *Agnus) bitplaneSlotPlane() (plane int, ok bool) {
	if a.dmacon&dmaconDMAEN == 0 || a.dmacon&dmaconBPLEN == 0 || a.activePlanes <= 0 {
		return 0, false
	}
	if uint16(a.hpos) < a.ddfstrt || uint16(a.hpos) > a.ddfstop {
		return 0, false
	}
	groupLen := 8
	table := bitplaneSlotLoRes[:]
	if a.denise.Hires() {
		groupLen = 4
		table = bitplaneSlotHiRes[:]
	}
	pos := (a.hpos - int(a.ddfstrt)) % groupLen
	if pos < 0 {
		pos += groupLen
	}
	p := table[pos]
	if p < 0 || p >= a.activePlanes {
		return 0, false
	}
	return p, true
}

// Tick advances the beam by one CCK and services whichever DMA client
// owns this cycle. Pixel output for the beam position runs first, so
// it reflects the serializer state left over from the previous CCK -
// any shift-register load triggered by this CCK's own fetch can only
// affect the pixel output of CCK+1.
func (a *Agnus) Tick() {
	a.denise.OutputPixel(a.vpos, a.hpos, a.ddfstrt)

	masterEnabled := a.dmacon&dmaconDMAEN != 0

	a.cpuBusGranted = false

	owner := slotOwnerForHpos(a.hpos)
	switch owner {
	case SlotRefresh:
		// Refresh never yields its cycle to the CPU.
	case SlotDisk:
		diskClaims := masterEnabled && a.dmacon&dmaconDSKEN != 0
		if diskClaims {
			a.disk.ServiceSlot(a.mem)
		}
		a.cpuBusGranted = !diskClaims
	case SlotAudio0, SlotAudio1, SlotAudio2, SlotAudio3:
		ch := int(owner - SlotAudio0)
		audioClaims := masterEnabled && a.dmacon&(dmaconAUD0<<uint(ch)) != 0
		if audioClaims {
			a.paula.ServiceChannel(ch, a.mem)
		}
		a.cpuBusGranted = !audioClaims
	case SlotSprite:
		// No sprite DMA fetch is performed (Denise's sprite state is set
		// only through LatchSprite/WriteSpriteData), so the bus is free
		// for the CPU on every sprite-window cycle.
		a.cpuBusGranted = true
	case SlotFree:
		a.cpuBusGranted = a.serviceVariableWindow(masterEnabled)
	}

	a.advanceBeam()
}

// serviceVariableWindow grants the shared $1C-$E2 cycles in priority
// order: the bitplane group table first (one plane's word per CCK),
// then the copper, then the blitter. It reports the CPU's
// cpu_chip_bus_granted signal for this CCK: true when the cycle fell
// through every claimant, and also when the blitter progressed on it
// with DMACON's BLTPRI bit clear (only BLTPRI lets the blitter steal
// the CPU's cycle). A slot the bitplane table marks free -
// including every CCK inside the DDF window that isn't this group's
// turn - falls through to the rest of the priority chain, so the
// copper and CPU keep getting cycles while bitplane DMA is running.
func (a *Agnus) serviceVariableWindow(masterEnabled bool) bool {
	if masterEnabled {
		if plane, ok := a.bitplaneSlotPlane(); ok {
			a.fetchBitplaneWord(plane)
			return false
		}
	}
	if masterEnabled && a.dmacon&dmaconCOPEN != 0 && a.hpos%2 == 0 {
		a.copper.Step(a.mem, a.writeCustomReg, a.vpos, a.hpos)
		return false
	}
	if masterEnabled && a.dmacon&dmaconBLTEN != 0 && a.blitter.Busy() {
		a.blitter.Service(a.mem)
		return a.dmacon&dmaconBLTPRI == 0
	}
	return true
}

// fetchBitplaneWord reads the one word the group table assigned to
// this CCK into Denise's holding latch. Plane 0 is always the last
// slot of its group, so its fetch also triggers the shift-register
// parallel load for the whole group.
func (a *Agnus) fetchBitplaneWord(plane int) {
	word := a.mem.ReadWord(a.bplpt[plane])
	a.denise.WritePlaneWord(plane, word)
	a.bplpt[plane] += 2
	if plane == 0 {
		a.denise.TriggerShiftLoad(a.vpos)
	}
}

func (a *Agnus) advanceBeam() {
	a.hpos++
	if a.hpos >= HposCountPAL {
		a.hpos = 0
		if a.OnHorizontalSync != nil {
			a.OnHorizontalSync()
		}
		a.vpos++
		if a.vpos >= a.vposCount {
			a.vpos = 0
			for p := range a.bplpt {
				// line-modulo applied by the machine via WriteBPLMod
				// callers; base pointers are re-latched at the start of
				// each field from BPLxPT by the machine's vblank hook.
				_ = p
			}
			if a.dmacon&dmaconDMAEN != 0 && a.dmacon&dmaconCOPEN != 0 {
				a.copper.RestartFromList1()
			}
			if a.OnVerticalBlank != nil {
				a.OnVerticalBlank()
			}
		} else if a.vpos > 0 {
			for p := 0; p < a.activePlanes && p < maxBitplanes; p++ {
				if p%2 == 0 {
					a.bplpt[p] = uint32(int32(a.bplpt[p]) + a.bplmodEven)
				} else {
					a.bplpt[p] = uint32(int32(a.bplpt[p]) + a.bplmodOdd)
				}
			}
		}
	}
}
