/*
 * CRISP-32 - Machine end-to-end tests.
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
	"testing"

	"github.com/rcornwell/crisp32/vm/decoder"
	"github.com/rcornwell/crisp32/vm/memory"
)

func assemble(program ...decoder.Instruction) []byte {
	buf := make([]byte, 0, len(program)*decoder.Size)
	for _, ins := range program {
		word := decoder.Encode(ins)
		buf = append(buf, word[:]...)
	}
	return buf
}

func newMachine(t *testing.T, size uint32, program []byte) *Machine {
	t.Helper()
	mem := memory.New(make([]byte, size))
	m := New(mem)
	if f := m.LoadImage(0, program); f != nil {
		t.Fatalf("load image: %v", f)
	}
	return m
}

func TestArithmeticSequence(t *testing.T) {
	prog := assemble(
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 1, Imm: 5},
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 2, Imm: 7},
		decoder.Instruction{Opcode: OpADD, Rs: 1, Rt: 2, Rd: 3},
	)
	m := newMachine(t, 256, prog)
	for i := 0; i < 3; i++ {
		if out := m.Step(); out.Halted {
			t.Fatalf("unexpected halt at step %d: %s", i, out.Reason)
		}
	}
	if m.Regs[3] != 12 {
		t.Fatalf("r3 = %d, want 12", m.Regs[3])
	}
}

func TestBranchTaken(t *testing.T) {
	prog := assemble(
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 1, Imm: 5},
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 2, Imm: 5},
		decoder.Instruction{Opcode: OpBEQ, Rs: 1, Rt: 2, Imm: 8}, // skip next instruction
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 3, Imm: 99},
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 4, Imm: 1},
	)
	m := newMachine(t, 256, prog)
	for i := 0; i < 4; i++ {
		if out := m.Step(); out.Halted {
			t.Fatalf("unexpected halt at step %d: %s", i, out.Reason)
		}
	}
	if m.Regs[3] != 0 {
		t.Fatalf("r3 = %d, want 0 (branch should have skipped its write)", m.Regs[3])
	}
	if m.Regs[4] != 1 {
		t.Fatalf("r4 = %d, want 1", m.Regs[4])
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	prog := assemble(
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 1, Imm: 0x1234},
		decoder.Instruction{Opcode: OpSW, Rs: 0, Rt: 1, Imm: 64},
		decoder.Instruction{Opcode: OpLW, Rs: 0, Rt: 2, Imm: 64},
	)
	m := newMachine(t, 256, prog)
	for i := 0; i < 3; i++ {
		if out := m.Step(); out.Halted {
			t.Fatalf("unexpected halt at step %d: %s", i, out.Reason)
		}
	}
	if m.Regs[2] != 0x1234 {
		t.Fatalf("r2 = 0x%x, want 0x1234", m.Regs[2])
	}
}

func TestJalJrRoundTrip(t *testing.T) {
	// 0:  JAL r31, 16
	// 8:  ADDI r5, r0, 111   (skipped by the jump)
	// 16: ADDI r1, r0, 42
	// 24: JR r31             (returns to 8)
	prog := assemble(
		decoder.Instruction{Opcode: OpJAL, Rd: 31, Imm: 16},
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 5, Imm: 111},
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 1, Imm: 42},
		decoder.Instruction{Opcode: OpJR, Rs: 31},
	)
	m := newMachine(t, 256, prog)
	for i := 0; i < 3; i++ {
		if out := m.Step(); out.Halted {
			t.Fatalf("unexpected halt at step %d: %s", i, out.Reason)
		}
	}
	if m.Regs[31] != 8 {
		t.Fatalf("r31 (link) = %d, want 8", m.Regs[31])
	}
	if m.PC != 8 {
		t.Fatalf("PC after JR = %d, want 8", m.PC)
	}
	if m.Regs[5] != 0 {
		t.Fatalf("r5 = %d, want 0 (jump must have skipped it)", m.Regs[5])
	}
}

func TestDivisionAndRemainder(t *testing.T) {
	prog := assemble(
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 1, Imm: 17},
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 2, Imm: 5},
		decoder.Instruction{Opcode: OpDIV, Rs: 1, Rt: 2, Rd: 3},
		decoder.Instruction{Opcode: OpREM, Rs: 1, Rt: 2, Rd: 4},
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 6, Imm: 0},
		decoder.Instruction{Opcode: OpDIV, Rs: 1, Rt: 6, Rd: 7},
	)
	m := newMachine(t, 256, prog)
	for i := 0; i < 6; i++ {
		if out := m.Step(); out.Halted {
			t.Fatalf("unexpected halt at step %d: %s", i, out.Reason)
		}
	}
	if m.Regs[3] != 3 {
		t.Fatalf("17/5 = %d, want 3", m.Regs[3])
	}
	if m.Regs[4] != 2 {
		t.Fatalf("17%%5 = %d, want 2", m.Regs[4])
	}
	if m.Regs[7] != 0 {
		t.Fatalf("divide by zero = %d, want 0", m.Regs[7])
	}
}

func TestDivideOverflowReturnsMinInt(t *testing.T) {
	prog := assemble(
		decoder.Instruction{Opcode: OpLUI, Rt: 1, Imm: 0x8000},
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 2, Imm: 0xFFFFFFFF},
		decoder.Instruction{Opcode: OpDIV, Rs: 1, Rt: 2, Rd: 3},
	)
	m := newMachine(t, 256, prog)
	for i := 0; i < 3; i++ {
		if out := m.Step(); out.Halted {
			t.Fatalf("unexpected halt at step %d: %s", i, out.Reason)
		}
	}
	if int32(m.Regs[3]) != int32(-1<<31) {
		t.Fatalf("INT32_MIN / -1 = %d, want %d", int32(m.Regs[3]), int32(-1<<31))
	}
}

func TestPrivilegeViolationIsNonFatal(t *testing.T) {
	prog := assemble(
		decoder.Instruction{Opcode: OpEI},
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 1, Imm: 1},
	)
	m := newMachine(t, 256, prog)
	m.KernelMode = false

	if out := m.Step(); out.Halted {
		t.Fatalf("EI in user mode halted: %s", out.Reason)
	}
	if !m.Interrupt.IsPending(7) {
		t.Fatalf("PRIVILEGE_VIOLATION was not raised")
	}
	if out := m.Step(); out.Halted {
		t.Fatalf("unexpected halt on second instruction: %s", out.Reason)
	}
	if m.Regs[1] != 1 {
		t.Fatalf("r1 = %d, want 1 (execution must continue past the trap)", m.Regs[1])
	}
}

func TestMulhSignedHighWord(t *testing.T) {
	prog := assemble(
		decoder.Instruction{Opcode: OpLUI, Rt: 1, Imm: 0xFFFF},
		decoder.Instruction{Opcode: OpLUI, Rt: 2, Imm: 0xFFFF},
		decoder.Instruction{Opcode: OpMULH, Rs: 1, Rt: 2, Rd: 3},
	)
	m := newMachine(t, 256, prog)
	for i := 0; i < 3; i++ {
		if out := m.Step(); out.Halted {
			t.Fatalf("unexpected halt at step %d: %s", i, out.Reason)
		}
	}
	// 0xFFFF0000 as int32 is -65536; (-65536)*(-65536) = 4294967296 = 1<<32,
	// whose upper 32 bits are 1.
	if m.Regs[3] != 1 {
		t.Fatalf("MULH high word = %d, want 1", m.Regs[3])
	}
}

func TestShiftAmountIsMasked(t *testing.T) {
	prog := assemble(
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 1, Imm: 1},
		decoder.Instruction{Opcode: OpSLL, Rt: 1, Rd: 2, Imm: 33}, // masked to 1
	)
	m := newMachine(t, 256, prog)
	for i := 0; i < 2; i++ {
		if out := m.Step(); out.Halted {
			t.Fatalf("unexpected halt at step %d: %s", i, out.Reason)
		}
	}
	if m.Regs[2] != 2 {
		t.Fatalf("1 << (33 & 0x1F) = %d, want 2", m.Regs[2])
	}
}

func TestRegisterZeroIsHardwired(t *testing.T) {
	prog := assemble(
		decoder.Instruction{Opcode: OpADDI, Rs: 0, Rt: 0, Imm: 77},
	)
	m := newMachine(t, 256, prog)
	if out := m.Step(); out.Halted {
		t.Fatalf("unexpected halt: %s", out.Reason)
	}
	if m.Regs[0] != 0 {
		t.Fatalf("r0 = %d, want 0", m.Regs[0])
	}
}
