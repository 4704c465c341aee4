/*
 * CRISP-32 - Branch instructions.
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

// branchTarget computes PC + imm. PC has already been advanced past the
// branch instruction by execute(), so imm is relative to the delay-free
// next instruction (spec §4.5).
func branchTarget(m *Machine, ins decoder.Instruction) uint32 {
	return m.PC + ins.Imm
}

func opBEQ(m *Machine, ins decoder.Instruction) *trap {
	if m.Regs[ins.Rs] == m.Regs[ins.Rt] {
		m.PC = branchTarget(m, ins)
	}
	return nil
}

func opBNE(m *Machine, ins decoder.Instruction) *trap {
	if m.Regs[ins.Rs] != m.Regs[ins.Rt] {
		m.PC = branchTarget(m, ins)
	}
	return nil
}

func opBLEZ(m *Machine, ins decoder.Instruction) *trap {
	if int32(m.Regs[ins.Rs]) <= 0 {
		m.PC = branchTarget(m, ins)
	}
	return nil
}

func opBGTZ(m *Machine, ins decoder.Instruction) *trap {
	if int32(m.Regs[ins.Rs]) > 0 {
		m.PC = branchTarget(m, ins)
	}
	return nil
}

func opBLTZ(m *Machine, ins decoder.Instruction) *trap {
	if int32(m.Regs[ins.Rs]) < 0 {
		m.PC = branchTarget(m, ins)
	}
	return nil
}

func opBGEZ(m *Machine, ins decoder.Instruction) *trap {
	if int32(m.Regs[ins.Rs]) >= 0 {
		m.PC = branchTarget(m, ins)
	}
	return nil
}
