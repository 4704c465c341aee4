/*
 * CRISP-32 - Executor: opcode dispatch and fault propagation.
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

// execute advances PC past the instruction (per the cycle contract of
// spec §4.5: branches and jumps compute their target from the already-
// post-incremented PC) and then dispatches to the opcode handler.
func (m *Machine) execute(ins decoder.Instruction) {
	m.PC += decoder.Size

	t := m.table[ins.Opcode](m, ins)
	if t == nil {
		return
	}
	m.Interrupt.Raise(t.vector)
	if t.halt {
		m.Running = false
		m.haltReason = haltReason(t.vector)
	}
}

func haltReason(vector int) string {
	switch vector {
	case interrupt.IllegalOp:
		return "illegal opcode"
	case interrupt.MemFault:
		return "memory fault"
	case interrupt.Syscall:
		return "syscall"
	case interrupt.Break:
		return "break"
	default:
		return "halt"
	}
}

// illegalOp, syscallTrap and breakTrap are synchronous fatal faults: they
// raise their vector and halt the machine this cycle (spec §7).
func illegalOp() *trap { return &trap{vector: interrupt.IllegalOp, halt: true} }
func syscallTrap() *trap {
	return &trap{vector: interrupt.Syscall, halt: true}
}
func breakTrap() *trap { return &trap{vector: interrupt.Break, halt: true} }

// privilegeViolation raises PRIVILEGE_VIOLATION without halting: the
// offending instruction is simply a no-op and execution continues (spec
// §8 scenario 6).
func privilegeViolation() *trap {
	return &trap{vector: interrupt.PrivilegeViolation}
}

// pageFault raises PAGE_FAULT without halting: a data-access fault aborts
// only the current instruction (spec §7).
func pageFault() *trap {
	return &trap{vector: interrupt.PageFault}
}

// memFaultTrap raises MEM_FAULT without halting, for a load or store whose
// address passed MMU translation but still lands outside physical memory
// (spec §7 distinguishes this from the always-halting instruction-fetch
// case handled directly in fetch()).
func memFaultTrap() *trap {
	return &trap{vector: interrupt.MemFault}
}

// requirePrivileged returns a PRIVILEGE_VIOLATION trap unless the machine
// is in kernel mode.
func (m *Machine) requirePrivileged() *trap {
	if !m.KernelMode {
		return privilegeViolation()
	}
	return nil
}
