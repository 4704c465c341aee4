/*
 * CRISP-32 - Jump instructions.
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

import "github.com/rcornwell/crisp32/vm/decoder"

// opJ jumps to the absolute address carried in imm (spec §4.5: the 32-bit
// immediate field leaves no room for ambiguity about region bits, unlike
// the classic 26-bit pseudo-direct MIPS encoding).
func opJ(m *Machine, ins decoder.Instruction) *trap {
	m.PC = ins.Imm
	return nil
}

// opJAL links the return address (the already-advanced PC) into Rd, then
// jumps to imm.
func opJAL(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.PC)
	m.PC = ins.Imm
	return nil
}

func opJR(m *Machine, ins decoder.Instruction) *trap {
	m.PC = m.Regs[ins.Rs]
	return nil
}

func opJALR(m *Machine, ins decoder.Instruction) *trap {
	target := m.Regs[ins.Rs]
	m.setReg(ins.Rd, m.PC)
	m.PC = target
	return nil
}
