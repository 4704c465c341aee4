/*
 * CRISP-32 Disassembler
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

// Package disasm turns a decoded CRISP-32 instruction back into assembler
// text, one mnemonic table away from the encoder in package asm.
package disasm

import (
	"fmt"

	"github.com/rcornwell/crisp32/vm/cpu"
	"github.com/rcornwell/crisp32/vm/decoder"
)

const (
	fmtR = 1 + iota // op rd, rs, rt
	fmtI            // op rt, rs, imm
	fmtShift        // op rd, rt, imm
	fmtShiftV       // op rd, rt, rs
	fmtMem          // op rt, imm(rs)
	fmtBranch       // op rs, rt, imm
	fmtBranchZ      // op rs, imm
	fmtJ            // op imm
	fmtJAL          // op rd, imm
	fmtJR           // op rs
	fmtJALR         // op rd, rs
	fmtRd           // op rd
	fmtImmOnly      // op imm
	fmtPtbr         // op rd, rt
	fmtNone         // op
)

type opcode struct {
	name   string
	format int
}

var opMap = map[uint8]opcode{
	cpu.OpNOP: {"NOP", fmtNone},

	cpu.OpADD:   {"ADD", fmtR},
	cpu.OpADDU:  {"ADDU", fmtR},
	cpu.OpSUB:   {"SUB", fmtR},
	cpu.OpSUBU:  {"SUBU", fmtR},
	cpu.OpADDI:  {"ADDI", fmtI},
	cpu.OpADDIU: {"ADDIU", fmtI},

	cpu.OpAND:  {"AND", fmtR},
	cpu.OpOR:   {"OR", fmtR},
	cpu.OpXOR:  {"XOR", fmtR},
	cpu.OpNOR:  {"NOR", fmtR},
	cpu.OpANDI: {"ANDI", fmtI},
	cpu.OpORI:  {"ORI", fmtI},
	cpu.OpXORI: {"XORI", fmtI},
	cpu.OpLUI:  {"LUI", fmtI},

	cpu.OpSLT:   {"SLT", fmtR},
	cpu.OpSLTU:  {"SLTU", fmtR},
	cpu.OpSLTI:  {"SLTI", fmtI},
	cpu.OpSLTIU: {"SLTIU", fmtI},

	cpu.OpSLL:  {"SLL", fmtShift},
	cpu.OpSRL:  {"SRL", fmtShift},
	cpu.OpSRA:  {"SRA", fmtShift},
	cpu.OpSLLV: {"SLLV", fmtShiftV},
	cpu.OpSRLV: {"SRLV", fmtShiftV},
	cpu.OpSRAV: {"SRAV", fmtShiftV},

	cpu.OpMUL:   {"MUL", fmtR},
	cpu.OpMULH:  {"MULH", fmtR},
	cpu.OpMULHU: {"MULHU", fmtR},
	cpu.OpDIV:   {"DIV", fmtR},
	cpu.OpDIVU:  {"DIVU", fmtR},
	cpu.OpREM:   {"REM", fmtR},
	cpu.OpREMU:  {"REMU", fmtR},

	cpu.OpLW:  {"LW", fmtMem},
	cpu.OpLH:  {"LH", fmtMem},
	cpu.OpLHU: {"LHU", fmtMem},
	cpu.OpLB:  {"LB", fmtMem},
	cpu.OpLBU: {"LBU", fmtMem},
	cpu.OpSW:  {"SW", fmtMem},
	cpu.OpSH:  {"SH", fmtMem},
	cpu.OpSB:  {"SB", fmtMem},

	cpu.OpBEQ:  {"BEQ", fmtBranch},
	cpu.OpBNE:  {"BNE", fmtBranch},
	cpu.OpBLEZ: {"BLEZ", fmtBranchZ},
	cpu.OpBGTZ: {"BGTZ", fmtBranchZ},
	cpu.OpBLTZ: {"BLTZ", fmtBranchZ},
	cpu.OpBGEZ: {"BGEZ", fmtBranchZ},

	cpu.OpJ:    {"J", fmtJ},
	cpu.OpJAL:  {"JAL", fmtJAL},
	cpu.OpJR:   {"JR", fmtJR},
	cpu.OpJALR: {"JALR", fmtJALR},

	cpu.OpSYSCALL: {"SYSCALL", fmtNone},
	cpu.OpBREAK:   {"BREAK", fmtNone},

	cpu.OpEI:    {"EI", fmtNone},
	cpu.OpDI:    {"DI", fmtNone},
	cpu.OpIRET:  {"IRET", fmtNone},
	cpu.OpRAISE: {"RAISE", fmtImmOnly},
	cpu.OpGETPC: {"GETPC", fmtRd},

	cpu.OpENABLE_PAGING:  {"ENABLE_PAGING", fmtNone},
	cpu.OpDISABLE_PAGING: {"DISABLE_PAGING", fmtNone},
	cpu.OpSET_PTBR:       {"SET_PTBR", fmtPtbr},
	cpu.OpENTER_USER:     {"ENTER_USER", fmtNone},
	cpu.OpGETMODE:        {"GETMODE", fmtRd},
}

func reg(n uint8) string {
	return fmt.Sprintf("r%d", n)
}

// Instruction renders one decoded instruction as assembler text. Unknown
// opcodes are rendered as a raw DATA word rather than an error: a
// disassembler must never fail on garbage, since it is as often pointed
// at arbitrary memory as at real code.
func Instruction(ins decoder.Instruction) string {
	oc, ok := opMap[ins.Opcode]
	if !ok {
		return fmt.Sprintf("DATA 0x%02x,0x%02x,0x%02x,0x%02x,0x%08x",
			ins.Opcode, ins.Rs, ins.Rt, ins.Rd, ins.Imm)
	}
	switch oc.format {
	case fmtR:
		return fmt.Sprintf("%-8s%s, %s, %s", oc.name, reg(ins.Rd), reg(ins.Rs), reg(ins.Rt))
	case fmtI:
		return fmt.Sprintf("%-8s%s, %s, 0x%x", oc.name, reg(ins.Rt), reg(ins.Rs), ins.Imm)
	case fmtShift:
		return fmt.Sprintf("%-8s%s, %s, %d", oc.name, reg(ins.Rd), reg(ins.Rt), ins.Imm&0x1F)
	case fmtShiftV:
		return fmt.Sprintf("%-8s%s, %s, %s", oc.name, reg(ins.Rd), reg(ins.Rt), reg(ins.Rs))
	case fmtMem:
		return fmt.Sprintf("%-8s%s, 0x%x(%s)", oc.name, reg(ins.Rt), ins.Imm, reg(ins.Rs))
	case fmtBranch:
		return fmt.Sprintf("%-8s%s, %s, 0x%x", oc.name, reg(ins.Rs), reg(ins.Rt), ins.Imm)
	case fmtBranchZ:
		return fmt.Sprintf("%-8s%s, 0x%x", oc.name, reg(ins.Rs), ins.Imm)
	case fmtJ:
		return fmt.Sprintf("%-8s0x%x", oc.name, ins.Imm)
	case fmtJAL:
		return fmt.Sprintf("%-8s%s, 0x%x", oc.name, reg(ins.Rd), ins.Imm)
	case fmtJR:
		return fmt.Sprintf("%-8s%s", oc.name, reg(ins.Rs))
	case fmtJALR:
		return fmt.Sprintf("%-8s%s, %s", oc.name, reg(ins.Rd), reg(ins.Rs))
	case fmtRd:
		return fmt.Sprintf("%-8s%s", oc.name, reg(ins.Rd))
	case fmtImmOnly:
		return fmt.Sprintf("%-8s0x%x", oc.name, ins.Imm)
	case fmtPtbr:
		return fmt.Sprintf("%-8s%s, %s", oc.name, reg(ins.Rd), reg(ins.Rt))
	default:
		return oc.name
	}
}

// Word decodes and disassembles one 8-byte instruction word.
func Word(word []byte) string {
	return Instruction(decoder.Decode(word))
}
