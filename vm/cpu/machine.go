/*
 * CRISP-32 - Machine: register file, privilege state, and the step/run cycle.
 *
 * Copyright 2026, CRISP-32 project contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package cpu implements the CRISP-32 Machine: the register file, program
// counter, privilege/paging state, and the fetch/decode/execute pipeline
// (spec §3, §4.5, §4.6). The Machine is single-threaded and cooperative:
// a call to Step runs to completion without yielding, and Run is a tight
// blocking loop (spec §5).
package cpu

import (
	"github.com/rcornwell/crisp32/vm/decoder"
	"github.com/rcornwell/crisp32/vm/interrupt"
	"github.com/rcornwell/crisp32/vm/memory"
	"github.com/rcornwell/crisp32/vm/mmu"
)

// NumRegisters is the number of general-purpose registers, including the
// hardwired zero register R0.
const NumRegisters = 32

// Machine is the VM's entire architectural state. The caller owns the
// backing memory buffer for the Machine's lifetime and must not access it
// concurrently with a running Machine (spec §5).
type Machine struct {
	Regs [NumRegisters]uint32
	PC   uint32

	KernelMode    bool
	PagingEnabled bool
	PTBR          uint32
	NumPages      uint32

	Interrupt interrupt.Subsystem
	Running   bool

	Mem *memory.Memory

	table      [256]opFunc
	haltReason string
}

// opFunc executes one decoded instruction. It returns nil on success, or
// a *trap describing the interrupt to raise and whether that trap is
// synchronously fatal (halts the machine this cycle).
type opFunc func(m *Machine, ins decoder.Instruction) *trap

// trap is an internal fault/halt signal produced by an opcode handler.
// It is not exported: callers observe faults only through Raised
// interrupts and the Running flag, per spec §7.
type trap struct {
	vector int
	halt   bool
}

// StepOutcome reports what happened during one call to Step.
type StepOutcome struct {
	Halted bool
	Reason string
}

// New builds a machine bound to mem and resets it to its initial state,
// matching the spec's `init(memory, size)` lifecycle entry point.
func New(mem *memory.Memory) *Machine {
	m := &Machine{Mem: mem}
	m.buildTable()
	m.Reset()
	return m
}

// Reset clears registers, PC, privilege and paging state to their initial
// values (spec §3 "Lifecycle"). Memory and the interrupt subsystem are
// left untouched.
func (m *Machine) Reset() {
	m.Regs = [NumRegisters]uint32{}
	m.PC = 0
	m.KernelMode = true
	m.PagingEnabled = false
	m.PTBR = 0
	m.NumPages = 0
}

// LoadImage copies a raw program image into memory at addr and points PC
// at it, mirroring the host loader contract of spec §6: "no headers, no
// relocations, no entry-point record."
func (m *Machine) LoadImage(addr uint32, image []byte) *memory.Fault {
	if f := m.Mem.LoadImage(addr, image); f != nil {
		return f
	}
	m.PC = addr
	return nil
}

// SetHandler installs a handler address in IVT entry n (spec §4.3 "Set
// handler", the host utility).
func (m *Machine) SetHandler(n int, addr uint32) *memory.Fault {
	return interrupt.SetHandler(m.Mem, n, addr)
}

// mmuState snapshots the fields the translator needs.
func (m *Machine) mmuState() mmu.State {
	return mmu.State{
		KernelMode:    m.KernelMode,
		PagingEnabled: m.PagingEnabled,
		PTBR:          m.PTBR,
		NumPages:      m.NumPages,
	}
}

// setReg writes a register, silently discarding writes to R0 (spec §3).
func (m *Machine) setReg(n uint8, v uint32) {
	if n == 0 {
		return
	}
	m.Regs[n] = v
}

// Step runs exactly one cycle: interrupt-check, alignment-check, fetch,
// decode, execute (spec §4.5's state machine). It returns a zero
// StepOutcome unless a halting condition (spec §4.6) was hit, in which
// case Running is cleared and the reason is reported.
func (m *Machine) Step() StepOutcome {
	dispatch := m.Interrupt.Dispatch(m.Mem, &m.Regs, m.PC, &m.KernelMode)
	if dispatch.Fatal {
		m.Running = false
		return StepOutcome{Halted: true, Reason: dispatch.Reason}
	}
	if dispatch.Dispatched {
		m.PC = dispatch.NewPC
		m.Regs[0] = 0
		return StepOutcome{}
	}

	if m.PC%decoder.Size != 0 {
		m.Interrupt.Raise(interrupt.MemFault)
		m.Running = false
		return StepOutcome{Halted: true, Reason: "misaligned program counter"}
	}

	word, halted, reason := m.fetch()
	if halted {
		m.Running = false
		return StepOutcome{Halted: true, Reason: reason}
	}

	ins := decoder.Decode(word[:])
	m.haltReason = ""
	m.execute(ins)
	m.Regs[0] = 0

	if m.haltReason != "" {
		return StepOutcome{Halted: true, Reason: m.haltReason}
	}
	return StepOutcome{}
}

// fetch translates PC for execution and reads the 8-byte instruction
// word. Any failure here is a halting condition per spec §4.6: there is
// no "next instruction" to recover to.
func (m *Machine) fetch() (word [8]byte, halted bool, reason string) {
	res := mmu.Translate(m.Mem, m.mmuState(), m.PC, false, true)
	if res.Fault {
		m.Interrupt.Raise(interrupt.PageFault)
		return word, true, "page fault on instruction fetch"
	}
	word, f := m.Mem.Read8Bytes(res.Physical)
	if f != nil {
		m.Interrupt.Raise(interrupt.MemFault)
		return word, true, "instruction fetch out of bounds"
	}
	return word, false, ""
}

// Run sets Running and loops Step until it clears or reports a halt.
func (m *Machine) Run() StepOutcome {
	m.Running = true
	for m.Running {
		if out := m.Step(); out.Halted {
			return out
		}
	}
	return StepOutcome{Halted: true, Reason: "stopped by host"}
}
