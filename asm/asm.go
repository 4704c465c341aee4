/*
 * CRISP-32 Assembler
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

// Package asm is a two-pass assembler for CRISP-32 text programs: pass
// one walks the source collecting label addresses, pass two encodes each
// statement now that every label is known (spec §4.5, §6).
package asm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rcornwell/crisp32/vm/cpu"
	"github.com/rcornwell/crisp32/vm/decoder"
)

const (
	fmtR = 1 + iota // op rd, rs, rt
	fmtI            // op rt, rs, imm
	fmtShift        // op rd, rt, shamt
	fmtShiftV       // op rd, rt, rs
	fmtMem          // op rt, imm(rs)
	fmtBranch       // op rs, rt, label
	fmtBranchZ      // op rs, label
	fmtJ            // op label
	fmtJAL          // op rd, label
	fmtJR           // op rs
	fmtJALR         // op rd, rs
	fmtRd           // op rd
	fmtImmOnly      // op imm
	fmtPtbr         // op rd, rt
	fmtNone         // op
)

type opcode struct {
	code   uint8
	format int
}

var opMap = map[string]opcode{
	"NOP": {cpu.OpNOP, fmtNone},

	"ADD":   {cpu.OpADD, fmtR},
	"ADDU":  {cpu.OpADDU, fmtR},
	"SUB":   {cpu.OpSUB, fmtR},
	"SUBU":  {cpu.OpSUBU, fmtR},
	"ADDI":  {cpu.OpADDI, fmtI},
	"ADDIU": {cpu.OpADDIU, fmtI},

	"AND":  {cpu.OpAND, fmtR},
	"OR":   {cpu.OpOR, fmtR},
	"XOR":  {cpu.OpXOR, fmtR},
	"NOR":  {cpu.OpNOR, fmtR},
	"ANDI": {cpu.OpANDI, fmtI},
	"ORI":  {cpu.OpORI, fmtI},
	"XORI": {cpu.OpXORI, fmtI},
	"LUI":  {cpu.OpLUI, fmtI},

	"SLT":   {cpu.OpSLT, fmtR},
	"SLTU":  {cpu.OpSLTU, fmtR},
	"SLTI":  {cpu.OpSLTI, fmtI},
	"SLTIU": {cpu.OpSLTIU, fmtI},

	"SLL":  {cpu.OpSLL, fmtShift},
	"SRL":  {cpu.OpSRL, fmtShift},
	"SRA":  {cpu.OpSRA, fmtShift},
	"SLLV": {cpu.OpSLLV, fmtShiftV},
	"SRLV": {cpu.OpSRLV, fmtShiftV},
	"SRAV": {cpu.OpSRAV, fmtShiftV},

	"MUL":   {cpu.OpMUL, fmtR},
	"MULH":  {cpu.OpMULH, fmtR},
	"MULHU": {cpu.OpMULHU, fmtR},
	"DIV":   {cpu.OpDIV, fmtR},
	"DIVU":  {cpu.OpDIVU, fmtR},
	"REM":   {cpu.OpREM, fmtR},
	"REMU":  {cpu.OpREMU, fmtR},

	"LW":  {cpu.OpLW, fmtMem},
	"LH":  {cpu.OpLH, fmtMem},
	"LHU": {cpu.OpLHU, fmtMem},
	"LB":  {cpu.OpLB, fmtMem},
	"LBU": {cpu.OpLBU, fmtMem},
	"SW":  {cpu.OpSW, fmtMem},
	"SH":  {cpu.OpSH, fmtMem},
	"SB":  {cpu.OpSB, fmtMem},

	"BEQ":  {cpu.OpBEQ, fmtBranch},
	"BNE":  {cpu.OpBNE, fmtBranch},
	"BLEZ": {cpu.OpBLEZ, fmtBranchZ},
	"BGTZ": {cpu.OpBGTZ, fmtBranchZ},
	"BLTZ": {cpu.OpBLTZ, fmtBranchZ},
	"BGEZ": {cpu.OpBGEZ, fmtBranchZ},

	"J":    {cpu.OpJ, fmtJ},
	"JAL":  {cpu.OpJAL, fmtJAL},
	"JR":   {cpu.OpJR, fmtJR},
	"JALR": {cpu.OpJALR, fmtJALR},

	"SYSCALL": {cpu.OpSYSCALL, fmtNone},
	"BREAK":   {cpu.OpBREAK, fmtNone},

	"EI":    {cpu.OpEI, fmtNone},
	"DI":    {cpu.OpDI, fmtNone},
	"IRET":  {cpu.OpIRET, fmtNone},
	"RAISE": {cpu.OpRAISE, fmtImmOnly},
	"GETPC": {cpu.OpGETPC, fmtRd},

	"ENABLE_PAGING":  {cpu.OpENABLE_PAGING, fmtNone},
	"DISABLE_PAGING": {cpu.OpDISABLE_PAGING, fmtNone},
	"SET_PTBR":       {cpu.OpSET_PTBR, fmtPtbr},
	"ENTER_USER":     {cpu.OpENTER_USER, fmtNone},
	"GETMODE":        {cpu.OpGETMODE, fmtRd},
}

// statement is one line of source after comment-stripping, label
// extraction and tokenization. Directives and instructions alike carry
// their comma-separated operand tokens in args, trimmed but not yet
// parsed.
type statement struct {
	lineno int
	label  string
	addr   uint32
	isData bool   // .word / .byte
	isOrg  bool   // .org
	width  uint32 // 4 for .word, 1 for .byte
	mnem   string
	args   []string
}

// Assemble turns CRISP-32 source text into a flat binary image. Assembly
// starts at address 0 unless the source's first statement is a ".org",
// which may also open gaps later on (the image is zero-filled up to the
// highest address used). Labels may be referenced before they are
// defined.
func Assemble(src string) ([]byte, error) {
	statements, err := scan(src)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]uint32)
	var pc, end uint32
	for i := range statements {
		st := &statements[i]
		if st.isOrg {
			org, err := parseImm(st.args[0], nil)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", st.lineno, err)
			}
			pc = org
		}
		st.addr = pc
		if st.label != "" {
			labels[st.label] = pc
		}
		if st.mnem == "" || st.isOrg {
			continue
		}
		if st.isData {
			pc += st.width
		} else {
			pc += decoder.Size
		}
		if pc > end {
			end = pc
		}
	}

	out := make([]byte, end)
	for _, st := range statements {
		if st.mnem == "" || st.isOrg {
			continue
		}
		if st.isData {
			if err := encodeData(out, st); err != nil {
				return nil, fmt.Errorf("line %d: %w", st.lineno, err)
			}
			continue
		}
		ins, err := encodeStatement(st, labels)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", st.lineno, err)
		}
		word := decoder.Encode(ins)
		copy(out[st.addr:], word[:])
	}
	return out, nil
}

// scan splits src into statements, stripping comments (';' to end of
// line) and blank lines, and peeling off a leading "label:" if present.
func scan(src string) ([]statement, error) {
	var statements []statement
	for lineno, raw := range strings.Split(src, "\n") {
		line := raw
		if idx := strings.IndexByte(line, ';'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var label string
		if idx := strings.IndexByte(line, ':'); idx >= 0 {
			label = strings.TrimSpace(line[:idx])
			if label == "" {
				return nil, fmt.Errorf("line %d: empty label", lineno+1)
			}
			line = strings.TrimSpace(line[idx+1:])
		}

		if line == "" {
			statements = append(statements, statement{lineno: lineno + 1, label: label})
			continue
		}

		fields := strings.SplitN(line, " ", 2)
		mnem := strings.ToUpper(fields[0])
		var argStr string
		if len(fields) == 2 {
			argStr = fields[1]
		}
		args := splitArgs(argStr)

		st := statement{lineno: lineno + 1, label: label, mnem: mnem, args: args}
		switch mnem {
		case ".WORD":
			st.isData, st.width = true, 4
		case ".BYTE":
			st.isData, st.width = true, 1
		case ".ORG":
			st.isOrg = true
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: .org takes exactly one operand", lineno+1)
			}
		}
		statements = append(statements, st)
	}
	return statements, nil
}

// splitArgs splits a comma-separated operand list, trimming whitespace
// and tolerating a trailing comment already stripped by the caller.
func splitArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func encodeData(out []byte, st statement) error {
	if len(st.args) != 1 {
		return fmt.Errorf("%s takes exactly one operand", st.mnem)
	}
	v, err := parseImm(st.args[0], nil)
	if err != nil {
		return err
	}
	switch st.width {
	case 4:
		out[st.addr] = byte(v)
		out[st.addr+1] = byte(v >> 8)
		out[st.addr+2] = byte(v >> 16)
		out[st.addr+3] = byte(v >> 24)
	case 1:
		out[st.addr] = byte(v)
	}
	return nil
}

func encodeStatement(st statement, labels map[string]uint32) (decoder.Instruction, error) {
	oc, ok := opMap[st.mnem]
	if !ok {
		return decoder.Instruction{}, fmt.Errorf("undefined opcode %s", st.mnem)
	}
	ins := decoder.Instruction{Opcode: oc.code}

	need := func(n int) error {
		if len(st.args) != n {
			return fmt.Errorf("%s takes %d operand(s), got %d", st.mnem, n, len(st.args))
		}
		return nil
	}

	switch oc.format {
	case fmtNone:
		return ins, need(0)

	case fmtR:
		if err := need(3); err != nil {
			return ins, err
		}
		rd, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		rs, err := parseReg(st.args[1])
		if err != nil {
			return ins, err
		}
		rt, err := parseReg(st.args[2])
		if err != nil {
			return ins, err
		}
		ins.Rd, ins.Rs, ins.Rt = rd, rs, rt

	case fmtI:
		if err := need(3); err != nil {
			return ins, err
		}
		rt, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		rs, err := parseReg(st.args[1])
		if err != nil {
			return ins, err
		}
		imm, err := parseImm(st.args[2], labels)
		if err != nil {
			return ins, err
		}
		ins.Rt, ins.Rs, ins.Imm = rt, rs, imm

	case fmtShift:
		if err := need(3); err != nil {
			return ins, err
		}
		rd, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		rt, err := parseReg(st.args[1])
		if err != nil {
			return ins, err
		}
		imm, err := parseImm(st.args[2], nil)
		if err != nil {
			return ins, err
		}
		ins.Rd, ins.Rt, ins.Imm = rd, rt, imm

	case fmtShiftV:
		if err := need(3); err != nil {
			return ins, err
		}
		rd, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		rt, err := parseReg(st.args[1])
		if err != nil {
			return ins, err
		}
		rs, err := parseReg(st.args[2])
		if err != nil {
			return ins, err
		}
		ins.Rd, ins.Rt, ins.Rs = rd, rt, rs

	case fmtMem:
		if err := need(2); err != nil {
			return ins, err
		}
		rt, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		imm, rs, err := parseMemOperand(st.args[1])
		if err != nil {
			return ins, err
		}
		ins.Rt, ins.Rs, ins.Imm = rt, rs, imm

	case fmtBranch:
		if err := need(3); err != nil {
			return ins, err
		}
		rs, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		rt, err := parseReg(st.args[1])
		if err != nil {
			return ins, err
		}
		imm, err := resolveBranchOperand(st, st.args[2], labels)
		if err != nil {
			return ins, err
		}
		ins.Rs, ins.Rt, ins.Imm = rs, rt, imm

	case fmtBranchZ:
		if err := need(2); err != nil {
			return ins, err
		}
		rs, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		imm, err := resolveBranchOperand(st, st.args[1], labels)
		if err != nil {
			return ins, err
		}
		ins.Rs, ins.Imm = rs, imm

	case fmtJ:
		if err := need(1); err != nil {
			return ins, err
		}
		imm, err := parseImm(st.args[0], labels)
		if err != nil {
			return ins, err
		}
		ins.Imm = imm

	case fmtJAL:
		if err := need(2); err != nil {
			return ins, err
		}
		rd, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		imm, err := parseImm(st.args[1], labels)
		if err != nil {
			return ins, err
		}
		ins.Rd, ins.Imm = rd, imm

	case fmtJR:
		if err := need(1); err != nil {
			return ins, err
		}
		rs, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		ins.Rs = rs

	case fmtJALR:
		if err := need(2); err != nil {
			return ins, err
		}
		rd, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		rs, err := parseReg(st.args[1])
		if err != nil {
			return ins, err
		}
		ins.Rd, ins.Rs = rd, rs

	case fmtRd:
		if err := need(1); err != nil {
			return ins, err
		}
		rd, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		ins.Rd = rd

	case fmtImmOnly:
		if err := need(1); err != nil {
			return ins, err
		}
		imm, err := parseImm(st.args[0], labels)
		if err != nil {
			return ins, err
		}
		ins.Imm = imm

	case fmtPtbr:
		if err := need(2); err != nil {
			return ins, err
		}
		rd, err := parseReg(st.args[0])
		if err != nil {
			return ins, err
		}
		rt, err := parseReg(st.args[1])
		if err != nil {
			return ins, err
		}
		ins.Rd, ins.Rt = rd, rt
	}
	return ins, nil
}

// parseReg accepts "r0".."r31" (case-insensitive).
func parseReg(tok string) (uint8, error) {
	tok = strings.TrimSpace(tok)
	if len(tok) < 2 || (tok[0] != 'r' && tok[0] != 'R') {
		return 0, fmt.Errorf("invalid register %q", tok)
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil || n < 0 || n > 31 {
		return 0, fmt.Errorf("invalid register %q", tok)
	}
	return uint8(n), nil
}

// parseMemOperand parses the "imm(rs)" addressing form used by loads and
// stores.
func parseMemOperand(tok string) (imm uint32, rs uint8, err error) {
	open := strings.IndexByte(tok, '(')
	if open < 0 || !strings.HasSuffix(tok, ")") {
		return 0, 0, fmt.Errorf("invalid memory operand %q, want imm(rs)", tok)
	}
	imm, err = parseImm(tok[:open], nil)
	if err != nil {
		return 0, 0, err
	}
	rs, err = parseReg(tok[open+1 : len(tok)-1])
	if err != nil {
		return 0, 0, err
	}
	return imm, rs, nil
}

// resolveBranchOperand turns a branch's target operand into the
// PC-relative displacement the executor expects (spec §4.5: branch
// targets are PC + imm, where PC is already past the branch word). A
// label operand is converted from its absolute address; a literal
// operand is taken as an already-relative displacement.
func resolveBranchOperand(st statement, tok string, labels map[string]uint32) (uint32, error) {
	tok = strings.TrimSpace(tok)
	if target, ok := labels[tok]; ok {
		return target - (st.addr + decoder.Size), nil
	}
	return parseImm(tok, nil)
}

// parseImm accepts decimal, "0x"-prefixed hex, or (when labels is
// non-nil) a bare label name.
func parseImm(tok string, labels map[string]uint32) (uint32, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, errors.New("missing immediate")
	}
	if v, ok := labels[tok]; ok {
		return v, nil
	}
	neg := false
	if strings.HasPrefix(tok, "-") {
		neg = true
		tok = tok[1:]
	}
	v, err := strconv.ParseUint(tok, 0, 32)
	if err != nil {
		if labels != nil {
			return 0, fmt.Errorf("undefined label or bad immediate %q", tok)
		}
		return 0, fmt.Errorf("bad immediate %q", tok)
	}
	if neg {
		return uint32(-int64(v)), nil
	}
	return uint32(v), nil
}
