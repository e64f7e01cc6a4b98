// amiga_cpu.go - 68000-class CPU core (representative recipe subset)

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

// CPUState is the reactive bus state the core is parked in. Idle means
// the micro-op queue is empty and a pending interrupt may be accepted;
// Internal means a micro-op completed and more are queued but none are
// currently blocked; BusCycle means the head of the queue needs
// cpu_chip_bus_granted and didn't get it on the last poll.
type CPUState int

const (
	CPUIdle CPUState = iota
	CPUInternal
	CPUBusCycle
	CPUHalted
	CPUStopped
)

// microOpKind names one step of the micro-op queue that Poll drains at
// most one of per call. busOp ops need cpu_chip_bus_granted before they
// run - this includes opFetchOpcode, which also decodes the fetched
// word; the rest (opExecute's flag-setting) are instant, matching the
// Execute/PromoteIRC split of the reference bus state machine.
type microOpKind int

const (
	opFetchOpcode microOpKind = iota
	opReadSrc
	opExecute
	opWriteDst
	opStopImmediate
	opAEPushStatus
	opAEPushAddr
	opAEPushIR
	opAEPushPC
	opAEPushSR
	opAEFetchVector
)

type microOp struct {
	kind  microOpKind
	busOp bool
}

const (
	srTrace = 1 << 15
	srSup   = 1 << 13
	srIPL   = 7 << 8
	srX     = 1 << 4
	srN     = 1 << 3
	srZ     = 1 << 2
	srV     = 1 << 1
	srC     = 1 << 0
)

// addressErrorSignal unwinds a bus-access-in-progress instruction back
// to runOp, which starts the address-error sequence, when an odd address
// is presented to a word or long transfer.
type addressErrorSignal struct {
	addr  uint32
	write bool
}

func (e addressErrorSignal) Error() string {
	return fmt.Sprintf("address error at %#x write=%v", e.addr, e.write)
}

// CPU implements the subset of the 68000 instruction set exercised by
// this machine's boot and runtime recipes: MOVE in its common
// addressing-mode combinations, NOP, and the exception entry sequences
// (group-0 address error, group-1/2 autovectored interrupt).
// Unrecognised opcodes are treated as a single-word NOP, matching a
// representative rather than exhaustive core.
type CPU struct {
	D [8]uint32
	A [8]uint32

	PC    uint32
	SR    uint16
	state CPUState
	queue []microOp

	// in-flight instruction scratch, populated by the opFetchOpcode
	// decode step and consumed by the later phases of the same
	// instruction's micro-op sequence.
	ir      uint16
	startPC uint32
	size    int
	srcEA   eaOperand
	dstEA   eaOperand
	dstMode int
	srcVal  uint32

	// in-flight address-error exception scratch.
	aeAddr    uint32
	aeWrite   bool
	aeFaultIR uint16
	aeOldSR   uint16

	mem MemoryBus

	OnAddressError func(addr uint32, write bool)
}

func NewCPU(mem MemoryBus) *CPU {
	c := &CPU{mem: mem}
	c.Reset()
	return c
}

// Reset fetches the initial supervisor stack pointer and program
// counter from the first two long words of the address space, exactly
// as the real chipset's /RESET sequence does while the boot overlay is
// still mapping those bytes to ROM.
func (c *CPU) Reset() {
	c.SR = srSup | srIPL
	c.A[7] = c.mem.ReadLong(0)
	c.PC = c.mem.ReadLong(4)
	c.state = CPUIdle
	c.queue = nil
}

func (c *CPU) Halted() bool  { return c.state == CPUHalted }
func (c *CPU) Stopped() bool { return c.state == CPUStopped }

// AtIdle reports whether the CPU is at an instruction boundary (or
// parked in STOP) and may accept a pending interrupt. The spec's
// interrupt-latency rule is that an autovector is only taken at this
// transition, never mid bus cycle or micro-op.
func (c *CPU) AtIdle() bool { return c.state == CPUIdle || c.state == CPUStopped }

func (c *CPU) flagsFromResult(size int, v uint32) {
	c.SR &^= srN | srZ | srV | srC
	var sign uint32
	switch size {
	case 1:
		sign = 0x80
	case 2:
		sign = 0x8000
	default:
		sign = 0x80000000
	}
	masked := v & sizeMask(size)
	if masked == 0 {
		c.SR |= srZ
	}
	if masked&sign != 0 {
		c.SR |= srN
	}
}

func sizeMask(size int) uint32 {
	switch size {
	case 1:
		return 0xFF
	case 2:
		return 0xFFFF
	default:
		return 0xFFFFFFFF
	}
}

// eaOperand names where an effective-address operand resolved to: a
// data or address register, or a memory location.
type eaOperand struct {
	memory    bool
	addr      uint32
	reg       int
	addrReg   bool
	immediate bool
	imm       uint32
}

// decodeEA resolves one of the common 68000 addressing modes, advancing
// PC past any extension words it consumes (an immediate operand is read
// here too). Mode 5 (displacement), mode 6 (indexed) and the PC-relative
// forms of mode 7 are outside this representative subset.
func (c *CPU) decodeEA(mode, reg, size int) (eaOperand, error) {
	switch mode {
	case 0:
		return eaOperand{reg: reg}, nil
	case 1:
		return eaOperand{reg: reg, addrReg: true}, nil
	case 2:
		return eaOperand{memory: true, addr: c.A[reg]}, nil
	case 3:
		addr := c.A[reg]
		c.A[reg] += uint32(size)
		return eaOperand{memory: true, addr: addr}, nil
	case 4:
		c.A[reg] -= uint32(size)
		return eaOperand{memory: true, addr: c.A[reg]}, nil
	case 7:
		switch reg {
		case 0:
			w := c.mem.ReadWord(c.PC)
			c.PC += 2
			addr := uint32(int32(int16(w)))
			return eaOperand{memory: true, addr: addr & 0xFFFFFF}, nil
		case 1:
			addr := c.mem.ReadLong(c.PC)
			c.PC += 4
			return eaOperand{memory: true, addr: addr & 0xFFFFFF}, nil
		case 4:
			return eaOperand{immediate: true, imm: c.readImmediate(size)}, nil
		}
	}
	return eaOperand{}, fmt.Errorf("unsupported addressing mode %d reg %d", mode, reg)
}

func (c *CPU) readImmediate(size int) uint32 {
	switch size {
	case 1:
		v := c.mem.ReadWord(c.PC) & 0xFF
		c.PC += 2
		return uint32(v)
	case 2:
		v := c.mem.ReadWord(c.PC)
		c.PC += 2
		return uint32(v)
	default:
		v := c.mem.ReadLong(c.PC)
		c.PC += 4
		return v
	}
}

func (c *CPU) readOperand(ea eaOperand, size int) (uint32, error) {
	if ea.immediate {
		return ea.imm, nil
	}
	if !ea.memory {
		if ea.addrReg {
			return c.A[ea.reg] & sizeMask(size), nil
		}
		return c.D[ea.reg] & sizeMask(size), nil
	}
	if size >= 2 && ea.addr%2 != 0 {
		return 0, addressErrorSignal{addr: ea.addr, write: false}
	}
	switch size {
	case 1:
		return uint32(c.mem.ReadByte(ea.addr)), nil
	case 2:
		return uint32(c.mem.ReadWord(ea.addr)), nil
	default:
		return c.mem.ReadLong(ea.addr), nil
	}
}

func (c *CPU) writeOperand(ea eaOperand, size int, v uint32) error {
	if !ea.memory {
		mask := sizeMask(size)
		if ea.addrReg {
			c.A[ea.reg] = (c.A[ea.reg] &^ mask) | (v & mask)
		} else {
			c.D[ea.reg] = (c.D[ea.reg] &^ mask) | (v & mask)
		}
		return nil
	}
	if size >= 2 && ea.addr%2 != 0 {
		return addressErrorSignal{addr: ea.addr, write: true}
	}
	switch size {
	case 1:
		c.mem.WriteByte(ea.addr, byte(v))
	case 2:
		c.mem.WriteWord(ea.addr, uint16(v))
	default:
		c.mem.WriteLong(ea.addr, v)
	}
	return nil
}

func (c *CPU) pushLong(v uint32) {
	c.A[7] -= 4
	c.mem.WriteLong(c.A[7], v)
}

func (c *CPU) pushWord(v uint16) {
	c.A[7] -= 2
	c.mem.WriteWord(c.A[7], v)
}

// RaiseAutovector builds the 6-byte group-1/2 exception frame (PC, SR)
// for an autovectored interrupt at the given priority level (1-7) and
// transfers control through vector 24+level. Called by the machine
// only when CPU.AtIdle(), per the spec's interrupt-latency rule.
func (c *CPU) RaiseAutovector(level int) {
	oldSR := c.SR
	c.SR |= srSup
	c.SR = (c.SR &^ srIPL) | uint16(level&7)<<8

	c.pushLong(c.PC)
	c.pushWord(oldSR)

	vector := 24 + level
	c.PC = c.mem.ReadLong(uint32(vector) * 4)
	if c.state == CPUStopped {
		c.state = CPUIdle
	}
}

// IPLMask returns the processor's current interrupt priority mask.
func (c *CPU) IPLMask() int { return int(c.SR&srIPL) >> 8 }

// Poll drains at most one micro-op from the queue and reports whether
// it consumed a chip-bus transaction this call. When the head of the
// queue needs the bus and busGranted is false, the CPU parks in
// CPUBusCycle and makes no progress - this is the WAIT status the
// arbiter imposes by withholding cpu_chip_bus_granted on non-CPU
// slots. The machine calls Poll once per CPUPeriod tick, which is the
// four-crystal-tick bus-ack poll the real chipset runs.
func (c *CPU) Poll(busGranted bool) bool {
	if c.state == CPUHalted || c.state == CPUStopped {
		return false
	}
	if len(c.queue) == 0 {
		c.queue = append(c.queue, microOp{kind: opFetchOpcode, busOp: true})
	}
	op := c.queue[0]
	if op.busOp && !busGranted {
		c.state = CPUBusCycle
		return false
	}
	c.queue = c.queue[1:]
	c.runOp(op)

	switch c.state {
	case CPUHalted, CPUStopped:
	case CPUIdle, CPUInternal, CPUBusCycle:
		if len(c.queue) == 0 {
			c.state = CPUIdle
		} else {
			c.state = CPUInternal
		}
	}
	return true
}

// Step runs the CPU forward, granting the bus unconditionally, until
// the in-flight instruction (or exception sequence) completes. It is
// a free-running convenience for tests and debug tooling that aren't
// modeling bus contention; the machine's normal run loop drives the
// CPU through Poll instead, which respects the arbiter's grant.
func (c *CPU) Step() {
	if c.state == CPUHalted || c.state == CPUStopped {
		return
	}
	c.Poll(true)
	for len(c.queue) > 0 {
		c.Poll(true)
	}
}

// runOp executes one micro-op. Flag-setting (opExecute) is instant,
// matching the reference state machine's Execute/PromoteIRC split; the
// rest, including the opcode fetch that also decodes, are chip-bus
// transactions.
func (c *CPU) runOp(op microOp) {
	switch op.kind {
	case opFetchOpcode:
		c.startPC = c.PC
		c.ir = c.mem.ReadWord(c.PC)
		c.PC += 2
		c.decodeIR()
	case opReadSrc:
		val, err := c.readOperand(c.srcEA, c.size)
		if ae, ok := err.(addressErrorSignal); ok {
			c.beginAddressError(ae)
			return
		}
		c.srcVal = val
	case opExecute:
		if c.dstMode != 1 { // MOVEA does not affect condition codes
			c.flagsFromResult(c.size, c.srcVal)
		}
	case opWriteDst:
		if err := c.writeOperand(c.dstEA, c.size, c.srcVal); err != nil {
			if ae, ok := err.(addressErrorSignal); ok {
				c.beginAddressError(ae)
			}
		}
	case opStopImmediate:
		c.PC += 2 // STOP #imm: immediate word ignored by this recipe subset
		c.state = CPUStopped
	case opAEPushStatus:
		var status uint16
		if !c.aeWrite {
			status |= 1 << 4 // R/W: set = read
		}
		c.pushWord(status)
	case opAEPushAddr:
		c.pushLong(c.aeAddr)
	case opAEPushIR:
		c.pushWord(c.aeFaultIR)
	case opAEPushPC:
		c.pushLong(c.PC)
	case opAEPushSR:
		c.pushWord(c.aeOldSR)
	case opAEFetchVector:
		c.PC = c.mem.ReadLong(3 * 4)
		if c.OnAddressError != nil {
			c.OnAddressError(c.aeAddr, c.aeWrite)
		}
	}
}

// decodeIR recognizes the current opcode and queues the bus
// transactions it still needs. Unrecognised opcodes are treated as a
// one-word NOP; the full instruction set is outside this representative
// core's scope (spec.md §12 narrows the opcode set, not this timing
// model).
func (c *CPU) decodeIR() {
	ir := c.ir
	switch {
	case ir == 0x4E71: // NOP
	case ir == 0x4E72: // STOP #imm
		c.queue = append(c.queue, microOp{kind: opStopImmediate, busOp: true})
	case ir&0xC000 == 0x0000 && (ir>>12)&0x3 != 0:
		c.beginMove(ir)
	}
}

// moveSizeFromBits decodes the MOVE opcode's two-bit size field:
// 01=byte, 11=word, 10=long.
func moveSizeFromBits(bits uint16) (int, bool) {
	switch bits {
	case 1:
		return 1, true
	case 3:
		return 2, true
	case 2:
		return 4, true
	}
	return 0, false
}

// beginMove resolves both operands' effective addresses - its
// destination encoded in reverse order (mode then register) from its
// source - and queues the read/execute/write phases that carry out the
// transfer. EA extension words are still fetched inline here rather
// than as their own bus-gated phases: a documented coarsening of the
// real 68000's word-at-a-time prefetch, matching the representative
// scope spec.md §12 allows.
func (c *CPU) beginMove(ir uint16) {
	sizeBits := (ir >> 12) & 0x3
	size, ok := moveSizeFromBits(sizeBits)
	if !ok {
		return
	}
	srcMode := int((ir >> 3) & 0x7)
	srcReg := int(ir & 0x7)
	dstReg := int((ir >> 9) & 0x7)
	dstMode := int((ir >> 6) & 0x7)

	srcEA, err := c.decodeEA(srcMode, srcReg, size)
	if err != nil {
		return
	}
	dstEA, err := c.decodeEA(dstMode, dstReg, size)
	if err != nil {
		return
	}

	c.size = size
	c.srcEA = srcEA
	c.dstEA = dstEA
	c.dstMode = dstMode
	c.queue = append(c.queue,
		microOp{kind: opReadSrc, busOp: true},
		microOp{kind: opExecute},
		microOp{kind: opWriteDst, busOp: true},
	)
}

// beginAddressError abandons the in-flight instruction and queues the
// 14-byte group-0 exception frame push and vector 3 transfer as
// discrete bus-gated phases, one push per CCK the arbiter grants. The
// pushes run PC, SR, IR, access address, status word, so the finished
// frame reads upward from SSP as status word, access address (SSP+2),
// faulting instruction register (SSP+6), SR (SSP+8), PC (SSP+10).
func (c *CPU) beginAddressError(ae addressErrorSignal) {
	c.queue = nil
	c.PC = c.startPC
	c.aeAddr = ae.addr
	c.aeWrite = ae.write
	c.aeFaultIR = c.ir
	c.aeOldSR = c.SR
	c.SR |= srSup
	c.SR &^= srTrace

	c.queue = append(c.queue,
		microOp{kind: opAEPushPC, busOp: true},
		microOp{kind: opAEPushSR, busOp: true},
		microOp{kind: opAEPushIR, busOp: true},
		microOp{kind: opAEPushAddr, busOp: true},
		microOp{kind: opAEPushStatus, busOp: true},
		microOp{kind: opAEFetchVector, busOp: true},
	)
}
