/*
 * CRISP-32 - System, privilege and interrupt-control instructions.
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
	"github.com/rcornwell/crisp32/vm/interrupt"
)

func opNOP(m *Machine, ins decoder.Instruction) *trap {
	return nil
}

func opSYSCALL(m *Machine, ins decoder.Instruction) *trap {
	return syscallTrap()
}

func opBREAK(m *Machine, ins decoder.Instruction) *trap {
	return breakTrap()
}

func opEI(m *Machine, ins decoder.Instruction) *trap {
	if t := m.requirePrivileged(); t != nil {
		return t
	}
	m.Interrupt.Enabled = true
	return nil
}

func opDI(m *Machine, ins decoder.Instruction) *trap {
	if t := m.requirePrivileged(); t != nil {
		return t
	}
	m.Interrupt.Enabled = false
	return nil
}

// opIRET restores the saved register snapshot and returns control to the
// interrupted context (spec §4.3 "Return"). A fault while reading the
// snapshot means the save frame itself is corrupt or out of bounds: there
// is no sane context to resume, so the machine halts.
func opIRET(m *Machine, ins decoder.Instruction) *trap {
	if t := m.requirePrivileged(); t != nil {
		return t
	}
	newPC, f := m.Interrupt.Return(m.Mem, &m.Regs)
	if f != nil {
		return &trap{vector: interrupt.MemFault, halt: true}
	}
	m.PC = newPC
	return nil
}

// opRAISE lets unprivileged code signal a software interrupt on the
// vector named by imm. This does not require kernel mode: it is the
// guest's syscall-gate mechanism (spec §4.3).
func opRAISE(m *Machine, ins decoder.Instruction) *trap {
	m.Interrupt.Raise(int(ins.Imm & 0xFF))
	return nil
}

// opGETPC exposes the PC the interrupt subsystem saved at the most
// recent dispatch (spec §4.5 "GETPC rd: regs[rd] := saved_pc"), letting a
// handler recover where the interrupted instruction was.
func opGETPC(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.Interrupt.SavedPC)
	return nil
}

func opENABLE_PAGING(m *Machine, ins decoder.Instruction) *trap {
	if t := m.requirePrivileged(); t != nil {
		return t
	}
	m.PagingEnabled = true
	return nil
}

func opDISABLE_PAGING(m *Machine, ins decoder.Instruction) *trap {
	if t := m.requirePrivileged(); t != nil {
		return t
	}
	m.PagingEnabled = false
	return nil
}

// opSET_PTBR installs the page table base (Rd) and page count (Rt). Both
// change together so a partially-updated table is never visible (spec
// §4.2, §4.5: "ptbr := regs[rd]; num_pages := regs[rt]").
func opSET_PTBR(m *Machine, ins decoder.Instruction) *trap {
	if t := m.requirePrivileged(); t != nil {
		return t
	}
	m.PTBR = m.Regs[ins.Rd]
	m.NumPages = m.Regs[ins.Rt]
	return nil
}

// opENTER_USER drops the machine to user mode. It is itself a privileged
// instruction: only kernel code can give up privilege deliberately.
func opENTER_USER(m *Machine, ins decoder.Instruction) *trap {
	if t := m.requirePrivileged(); t != nil {
		return t
	}
	m.KernelMode = false
	return nil
}

func opGETMODE(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, boolToWord(m.KernelMode))
	return nil
}
