/*
 * CRISP-32 - Instruction decoder.
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

// Package decoder splits the fixed 8-byte CRISP-32 instruction word into
// its fields. There is no opcode table here — that lookup belongs to the
// executor — the decoder only knows the wire layout (spec §4.4, §6).
package decoder

// Size is the width in bytes of one instruction word.
const Size = 8

// Instruction is the decoded form of one 8-byte instruction word.
type Instruction struct {
	Opcode uint8
	Rs     uint8
	Rt     uint8
	Rd     uint8
	Imm    uint32
}

// Decode splits an 8-byte slice into its fields. word must be at least
// Size bytes long; the caller (the fetch stage) is responsible for
// bounds-checking the read that produced it.
func Decode(word []byte) Instruction {
	return Instruction{
		Opcode: word[0],
		Rs:     word[1],
		Rt:     word[2],
		Rd:     word[3],
		Imm: uint32(word[4]) | uint32(word[5])<<8 |
			uint32(word[6])<<16 | uint32(word[7])<<24,
	}
}

// Encode produces the 8-byte wire form of an instruction — the inverse of
// Decode, used by the assembler and by tests asserting the encode/decode
// round trip (spec §8).
func Encode(ins Instruction) [Size]byte {
	var w [Size]byte
	w[0] = ins.Opcode
	w[1] = ins.Rs
	w[2] = ins.Rt
	w[3] = ins.Rd
	w[4] = byte(ins.Imm)
	w[5] = byte(ins.Imm >> 8)
	w[6] = byte(ins.Imm >> 16)
	w[7] = byte(ins.Imm >> 24)
	return w
}
