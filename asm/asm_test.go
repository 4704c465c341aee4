/*
 * CRISP-32 Assembler Test routines.
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

package asm

import (
	"testing"

	"github.com/rcornwell/crisp32/vm/cpu"
	"github.com/rcornwell/crisp32/vm/decoder"
)

func TestAssembleUndefinedOpcode(t *testing.T) {
	_, err := Assemble("FROBNICATE r1, r2, r3")
	if err == nil {
		t.Fatal("expected an error for an undefined opcode")
	}
}

func TestAssembleSimpleSequence(t *testing.T) {
	src := `
		ADDI r1, r0, 5
		ADDI r2, r0, 7
		ADD  r3, r1, r2
	`
	out, err := Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(out) != 3*decoder.Size {
		t.Fatalf("len(out) = %d, want %d", len(out), 3*decoder.Size)
	}
	ins := decoder.Decode(out[2*decoder.Size:])
	if ins.Opcode != cpu.OpADD || ins.Rd != 3 || ins.Rs != 1 || ins.Rt != 2 {
		t.Fatalf("third instruction decoded wrong: %+v", ins)
	}
}

func TestAssembleForwardLabelReference(t *testing.T) {
	src := `
		J skip
		ADDI r1, r0, 111
	skip:
		ADDI r2, r0, 1
	`
	out, err := Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	j := decoder.Decode(out[:decoder.Size])
	if j.Opcode != cpu.OpJ || j.Imm != 2*uint32(decoder.Size) {
		t.Fatalf("J target = %d, want %d", j.Imm, 2*decoder.Size)
	}
}

func TestAssembleBackwardBranchLabel(t *testing.T) {
	src := `
	loop:
		ADDI r1, r1, 1
		BNE  r1, r0, loop
	`
	out, err := Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	bne := decoder.Decode(out[decoder.Size:])
	// loop is at address 0; BNE sits at address 8, and branch targets are
	// PC-relative to the already-advanced PC (16), so the displacement
	// back to 0 is -16.
	want := ^uint32(16) + 1 // -16 in two's complement
	if bne.Opcode != cpu.OpBNE || bne.Imm != want {
		t.Fatalf("BNE displacement = 0x%x, want 0x%x", bne.Imm, want)
	}
}

func TestAssembleMemoryOperand(t *testing.T) {
	out, err := Assemble("LW r2, 0x40(r1)")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	ins := decoder.Decode(out)
	if ins.Opcode != cpu.OpLW || ins.Rt != 2 || ins.Rs != 1 || ins.Imm != 0x40 {
		t.Fatalf("decoded wrong: %+v", ins)
	}
}

func TestAssembleWordDirective(t *testing.T) {
	out, err := Assemble(".word 0xdeadbeef")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("len(out) = %d, want 4", len(out))
	}
	v := uint32(out[0]) | uint32(out[1])<<8 | uint32(out[2])<<16 | uint32(out[3])<<24
	if v != 0xdeadbeef {
		t.Fatalf("word = 0x%x, want 0xdeadbeef", v)
	}
}

func TestAssembleWrongOperandCount(t *testing.T) {
	_, err := Assemble("ADD r1, r2")
	if err == nil {
		t.Fatal("expected an error for a missing operand")
	}
}

func TestAssembleInvalidRegister(t *testing.T) {
	_, err := Assemble("ADD r1, r2, r99")
	if err == nil {
		t.Fatal("expected an error for an out-of-range register")
	}
}
