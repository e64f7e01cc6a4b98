// amiga_paula.go - interrupt controller and audio DMA

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

// Interrupt request/enable bit assignments, shared by INTENA/INTENAR
// and INTREQ/INTREQR.
const (
	IntTBE = 1 << iota
	IntDSKBLK
	IntSOFT
	IntPORTS
	IntCOPER
	IntVERTB
	IntBLIT
	IntAUD0
	IntAUD1
	IntAUD2
	IntAUD3
	IntRBF
	IntDSKSYNC
	IntEXTER
	IntMaster // INTENA bit 14, overall enable
)

// intLevel maps each request bit to its autovectored priority level
// (1-6), matching the real chipset's interrupt wiring.
var intLevel = map[uint16]int{
	IntTBE:     1,
	IntDSKBLK:  1,
	IntSOFT:    1,
	IntPORTS:   2,
	IntCOPER:   3,
	IntVERTB:   3,
	IntBLIT:    3,
	IntAUD0:    4,
	IntAUD1:    4,
	IntAUD2:    4,
	IntAUD3:    4,
	IntRBF:     5,
	IntDSKSYNC: 5,
	IntEXTER:   6,
}

// AudioChannel is one Paula DMA voice: a sample pointer/length pair
// reloaded at the start of each block, a period divider that paces
// one-byte-per-tick fetches, and a volume register (0-64).
type AudioChannel struct {
	lc        uint32
	lenWords  uint16
	period    uint16
	volume    uint16

	pointer        uint32
	wordsRemaining uint16
	periodCounter  int
	sample         int8
	dmaEnabled     bool
}

func (a *AudioChannel) reload() {
	a.pointer = a.lc
	a.wordsRemaining = a.lenWords
	a.periodCounter = int(a.period)
}

// service is called once per CCK; returns true on a byte fetch tick
// (ServiceChannel uses it to raise the channel's audio interrupt).
func (a *AudioChannel) service(mem *ChipMemory) bool {
	if !a.dmaEnabled {
		return false
	}
	if a.periodCounter > 0 {
		a.periodCounter--
		return false
	}
	if a.wordsRemaining == 0 {
		a.reload()
	}
	if a.wordsRemaining == 0 {
		return false
	}
	a.sample = int8(mem.ReadByte(a.pointer))
	a.pointer++
	a.wordsRemaining--
	a.periodCounter = int(a.period)
	return true
}

// Paula is the interrupt controller and four-channel audio DMA engine.
type Paula struct {
	channels [4]AudioChannel

	intena uint16
	intreq uint16
	adkcon uint16

	OnIPLChange func(level int)

	lastIPL int
}

func NewPaula() *Paula { return &Paula{} }

// writeSetClear applies the set/clear convention shared by INTENA and
// INTREQ: bit 15 set means OR the low 15 bits in, clear means AND them
// out.
func writeSetClear(reg *uint16, v uint16) {
	bits := v & 0x7FFF
	if v&0x8000 != 0 {
		*reg |= bits
	} else {
		*reg &^= bits
	}
}

func (p *Paula) WriteINTENA(v uint16) {
	writeSetClear(&p.intena, v)
	p.recomputeIPL()
}

func (p *Paula) WriteINTREQ(v uint16) {
	writeSetClear(&p.intreq, v)
	p.recomputeIPL()
}

func (p *Paula) ReadINTENAR() uint16 { return p.intena }
func (p *Paula) ReadINTREQR() uint16 { return p.intreq }
func (p *Paula) WriteADKCON(v uint16) {
	if v&0x8000 != 0 {
		p.adkcon |= v & 0x7FFF
	} else {
		p.adkcon &^= v & 0x7FFF
	}
}

// RequestInterrupt sets one INTREQ bit, as a hardware source (CIA
// PORTS/EXTER passthrough, disk block done, vertical blank) would.
func (p *Paula) RequestInterrupt(bit uint16) {
	p.intreq |= bit
	p.recomputeIPL()
}

func (p *Paula) recomputeIPL() {
	active := p.intreq & p.intena
	level := 0
	if p.intena&IntMaster != 0 {
		for bit, lv := range intLevel {
			if active&bit != 0 && lv > level {
				level = lv
			}
		}
	}
	if level != p.lastIPL {
		p.lastIPL = level
		if p.OnIPLChange != nil {
			p.OnIPLChange(level)
		}
	}
}

func (p *Paula) IPL() int { return p.lastIPL }

// AckLevel clears INTREQ bits belonging to the given level once the
// CPU has taken the autovectored exception, mirroring how real
// interrupt-acknowledge cycles are modeled as an INTREQ clear for
// edge-triggered sources (vertical blank, copper, blitter-done).
func (p *Paula) AckLevel(level int) {
	var mask uint16
	for bit, lv := range intLevel {
		if lv == level {
			mask |= bit
		}
	}
	p.intreq &^= mask
	p.recomputeIPL()
}

func (p *Paula) Channel(n int) *AudioChannel {
	if n < 0 || n >= 4 {
		return nil
	}
	return &p.channels[n]
}

func (p *Paula) WriteAUDLCH(ch int, v uint16) {
	c := p.Channel(ch)
	if c != nil {
		c.lc = (c.lc &^ 0xFFFF0000) | uint32(v)<<16
	}
}
func (p *Paula) WriteAUDLCL(ch int, v uint16) {
	c := p.Channel(ch)
	if c != nil {
		c.lc = (c.lc &^ 0x0000FFFF) | uint32(v)
	}
}
func (p *Paula) WriteAUDLEN(ch int, v uint16) {
	if c := p.Channel(ch); c != nil {
		c.lenWords = v
	}
}
func (p *Paula) WriteAUDPER(ch int, v uint16) {
	if c := p.Channel(ch); c != nil {
		c.period = v
	}
}
func (p *Paula) WriteAUDVOL(ch int, v uint16) {
	if c := p.Channel(ch); c != nil {
		c.volume = v & 0x7F
	}
}
func (p *Paula) SetChannelDMA(ch int, enabled bool) {
	c := p.Channel(ch)
	if c == nil {
		return
	}
	c.dmaEnabled = enabled
	if enabled {
		c.reload()
	}
}

// ServiceChannel ticks one audio channel by one CCK when it holds the
// audio DMA slot; fires AUDn's interrupt request on every byte fetch.
func (p *Paula) ServiceChannel(ch int, mem *ChipMemory) bool {
	c := p.Channel(ch)
	if c == nil {
		return false
	}
	fetched := c.service(mem)
	if fetched {
		p.RequestInterrupt(IntAUD0 << uint(ch))
	}
	return fetched
}

func scaleSample(s int8, volume uint16) float32 {
	v := volume
	if v > 64 {
		v = 64
	}
	return float32(s) / 128 * (float32(v) / 64)
}

// NextStereoSample mixes the four channels' currently-held samples,
// following the real hardware's fixed left/right pairing (0 and 3 to
// the left, 1 and 2 to the right), for one host audio frame.
func (p *Paula) NextStereoSample() (float32, float32) {
	left := scaleSample(p.channels[0].sample, p.channels[0].volume) +
		scaleSample(p.channels[3].sample, p.channels[3].volume)
	right := scaleSample(p.channels[1].sample, p.channels[1].volume) +
		scaleSample(p.channels[2].sample, p.channels[2].volume)

	left /= 2
	right /= 2
	if left > 1 {
		left = 1
	} else if left < -1 {
		left = -1
	}
	if right > 1 {
		right = 1
	} else if right < -1 {
		right = -1
	}
	return left, right
}
