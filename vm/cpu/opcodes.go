/*
 * CRISP-32 - Opcode assignments.
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

// Opcode assignments. Field conventions follow the MIPS-like layout
// implied by spec §4.5: R-type ops write Rd from Rs/Rt; I-type ops write
// Rt from Rs and Imm; LUI writes Rt from Imm alone; GETMODE/GETPC write
// Rd alone; JAL/JALR link into Rd.
const (
	OpNOP = uint8(iota)

	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpADDI
	OpADDIU

	OpAND
	OpOR
	OpXOR
	OpNOR
	OpANDI
	OpORI
	OpXORI
	OpLUI

	OpSLT
	OpSLTU
	OpSLTI
	OpSLTIU

	OpSLL
	OpSRL
	OpSRA
	OpSLLV
	OpSRLV
	OpSRAV

	OpMUL
	OpMULH
	OpMULHU
	OpDIV
	OpDIVU
	OpREM
	OpREMU

	OpLW
	OpLH
	OpLHU
	OpLB
	OpLBU
	OpSW
	OpSH
	OpSB

	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ
	OpBLTZ
	OpBGEZ

	OpJ
	OpJAL
	OpJR
	OpJALR

	OpSYSCALL
	OpBREAK

	OpEI
	OpDI
	OpIRET
	OpRAISE
	OpGETPC

	OpENABLE_PAGING
	OpDISABLE_PAGING
	OpSET_PTBR
	OpENTER_USER
	OpGETMODE
)
