/*
 * CRISP-32 - Load and store instructions.
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

package cpu

import (
	"github.com/rcornwell/crisp32/vm/decoder"
	"github.com/rcornwell/crisp32/vm/mmu"
)

// effectiveAddr computes rs + imm, the addressing mode for every load and
// store (spec §4.5).
func effectiveAddr(m *Machine, ins decoder.Instruction) uint32 {
	return m.Regs[ins.Rs] + ins.Imm
}

// translateData runs the MMU for a data access and reports the physical
// address. A translation fault here is never halting: it aborts only the
// current instruction (spec §7).
func translateData(m *Machine, vaddr uint32, isWrite bool) (uint32, *trap) {
	res := mmu.Translate(m.Mem, m.mmuState(), vaddr, isWrite, false)
	if res.Fault {
		return 0, pageFault()
	}
	return res.Physical, nil
}

func opLW(m *Machine, ins decoder.Instruction) *trap {
	phys, t := translateData(m, effectiveAddr(m, ins), false)
	if t != nil {
		return t
	}
	v, f := m.Mem.ReadU32(phys)
	if f != nil {
		return memFaultTrap()
	}
	m.setReg(ins.Rt, v)
	return nil
}

func opLH(m *Machine, ins decoder.Instruction) *trap {
	phys, t := translateData(m, effectiveAddr(m, ins), false)
	if t != nil {
		return t
	}
	v, f := m.Mem.ReadU16(phys)
	if f != nil {
		return memFaultTrap()
	}
	m.setReg(ins.Rt, uint32(int32(int16(v))))
	return nil
}

func opLHU(m *Machine, ins decoder.Instruction) *trap {
	phys, t := translateData(m, effectiveAddr(m, ins), false)
	if t != nil {
		return t
	}
	v, f := m.Mem.ReadU16(phys)
	if f != nil {
		return memFaultTrap()
	}
	m.setReg(ins.Rt, uint32(v))
	return nil
}

func opLB(m *Machine, ins decoder.Instruction) *trap {
	phys, t := translateData(m, effectiveAddr(m, ins), false)
	if t != nil {
		return t
	}
	v, f := m.Mem.ReadU8(phys)
	if f != nil {
		return memFaultTrap()
	}
	m.setReg(ins.Rt, uint32(int32(int8(v))))
	return nil
}

func opLBU(m *Machine, ins decoder.Instruction) *trap {
	phys, t := translateData(m, effectiveAddr(m, ins), false)
	if t != nil {
		return t
	}
	v, f := m.Mem.ReadU8(phys)
	if f != nil {
		return memFaultTrap()
	}
	m.setReg(ins.Rt, uint32(v))
	return nil
}

func opSW(m *Machine, ins decoder.Instruction) *trap {
	phys, t := translateData(m, effectiveAddr(m, ins), true)
	if t != nil {
		return t
	}
	if f := m.Mem.WriteU32(phys, m.Regs[ins.Rt]); f != nil {
		return memFaultTrap()
	}
	return nil
}

func opSH(m *Machine, ins decoder.Instruction) *trap {
	phys, t := translateData(m, effectiveAddr(m, ins), true)
	if t != nil {
		return t
	}
	if f := m.Mem.WriteU16(phys, uint16(m.Regs[ins.Rt])); f != nil {
		return memFaultTrap()
	}
	return nil
}

func opSB(m *Machine, ins decoder.Instruction) *trap {
	phys, t := translateData(m, effectiveAddr(m, ins), true)
	if t != nil {
		return t
	}
	if f := m.Mem.WriteU8(phys, uint8(m.Regs[ins.Rt])); f != nil {
		return memFaultTrap()
	}
	return nil
}
