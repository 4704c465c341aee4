/*
 * CRISP-32 - Arithmetic, logical, shift, multiply and divide instructions.
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

func opADD(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.Regs[ins.Rs]+m.Regs[ins.Rt])
	return nil
}

func opSUB(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.Regs[ins.Rs]-m.Regs[ins.Rt])
	return nil
}

// opADDI implements both ADDI and ADDIU: the instruction word's imm field
// is already a full 32-bit value, so wraparound makes the signed and
// unsigned forms identical (spec §4.5).
func opADDI(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rt, m.Regs[ins.Rs]+ins.Imm)
	return nil
}

func opAND(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.Regs[ins.Rs]&m.Regs[ins.Rt])
	return nil
}

func opOR(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.Regs[ins.Rs]|m.Regs[ins.Rt])
	return nil
}

func opXOR(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.Regs[ins.Rs]^m.Regs[ins.Rt])
	return nil
}

func opNOR(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, ^(m.Regs[ins.Rs] | m.Regs[ins.Rt]))
	return nil
}

func opANDI(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rt, m.Regs[ins.Rs]&ins.Imm)
	return nil
}

func opORI(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rt, m.Regs[ins.Rs]|ins.Imm)
	return nil
}

func opXORI(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rt, m.Regs[ins.Rs]^ins.Imm)
	return nil
}

func opLUI(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rt, ins.Imm<<16)
	return nil
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func opSLT(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, boolToWord(int32(m.Regs[ins.Rs]) < int32(m.Regs[ins.Rt])))
	return nil
}

func opSLTU(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, boolToWord(m.Regs[ins.Rs] < m.Regs[ins.Rt]))
	return nil
}

func opSLTI(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rt, boolToWord(int32(m.Regs[ins.Rs]) < int32(ins.Imm)))
	return nil
}

func opSLTIU(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rt, boolToWord(m.Regs[ins.Rs] < ins.Imm))
	return nil
}

func opSLL(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.Regs[ins.Rt]<<(ins.Imm&0x1F))
	return nil
}

func opSRL(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.Regs[ins.Rt]>>(ins.Imm&0x1F))
	return nil
}

func opSRA(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, uint32(int32(m.Regs[ins.Rt])>>(ins.Imm&0x1F)))
	return nil
}

func opSLLV(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.Regs[ins.Rt]<<(m.Regs[ins.Rs]&0x1F))
	return nil
}

func opSRLV(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.Regs[ins.Rt]>>(m.Regs[ins.Rs]&0x1F))
	return nil
}

func opSRAV(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, uint32(int32(m.Regs[ins.Rt])>>(m.Regs[ins.Rs]&0x1F)))
	return nil
}

func opMUL(m *Machine, ins decoder.Instruction) *trap {
	m.setReg(ins.Rd, m.Regs[ins.Rs]*m.Regs[ins.Rt])
	return nil
}

// opMULH returns the upper 32 bits of the signed 64-bit product. Unlike
// the source project (which returns 0 as a C89 workaround, see spec §9
// open question 2), Go's native 64-bit integers let this be the real
// contract.
func opMULH(m *Machine, ins decoder.Instruction) *trap {
	product := int64(int32(m.Regs[ins.Rs])) * int64(int32(m.Regs[ins.Rt]))
	m.setReg(ins.Rd, uint32(uint64(product)>>32))
	return nil
}

func opMULHU(m *Machine, ins decoder.Instruction) *trap {
	product := uint64(m.Regs[ins.Rs]) * uint64(m.Regs[ins.Rt])
	m.setReg(ins.Rd, uint32(product>>32))
	return nil
}

func opDIV(m *Machine, ins decoder.Instruction) *trap {
	a, b := int32(m.Regs[ins.Rs]), int32(m.Regs[ins.Rt])
	switch {
	case b == 0:
		m.setReg(ins.Rd, 0)
	case a == -(1<<31) && b == -1:
		// INT32_MIN / -1 overflows; defined to return INT32_MIN (spec §4.5).
		m.setReg(ins.Rd, uint32(a))
	default:
		m.setReg(ins.Rd, uint32(a/b))
	}
	return nil
}

func opDIVU(m *Machine, ins decoder.Instruction) *trap {
	a, b := m.Regs[ins.Rs], m.Regs[ins.Rt]
	if b == 0 {
		m.setReg(ins.Rd, 0)
		return nil
	}
	m.setReg(ins.Rd, a/b)
	return nil
}

func opREM(m *Machine, ins decoder.Instruction) *trap {
	a, b := int32(m.Regs[ins.Rs]), int32(m.Regs[ins.Rt])
	switch {
	case b == 0:
		m.setReg(ins.Rd, 0)
	case a == -(1<<31) && b == -1:
		m.setReg(ins.Rd, 0)
	default:
		m.setReg(ins.Rd, uint32(a%b))
	}
	return nil
}

func opREMU(m *Machine, ins decoder.Instruction) *trap {
	a, b := m.Regs[ins.Rs], m.Regs[ins.Rt]
	if b == 0 {
		m.setReg(ins.Rd, 0)
		return nil
	}
	m.setReg(ins.Rd, a%b)
	return nil
}
