/*
 * CRISP-32 - Dispatch table construction.
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

func opIllegal(m *Machine, ins decoder.Instruction) *trap {
	return illegalOp()
}

// buildTable fills the 256-entry dispatch array, following the teacher's
// createTable layout: every slot is bound once at construction, and any
// opcode not assigned falls through to opIllegal.
func (m *Machine) buildTable() {
	for i := range m.table {
		m.table[i] = opIllegal
	}

	m.table[OpNOP] = opNOP

	m.table[OpADD] = opADD
	m.table[OpADDU] = opADD
	m.table[OpSUB] = opSUB
	m.table[OpSUBU] = opSUB
	m.table[OpADDI] = opADDI
	m.table[OpADDIU] = opADDI

	m.table[OpAND] = opAND
	m.table[OpOR] = opOR
	m.table[OpXOR] = opXOR
	m.table[OpNOR] = opNOR
	m.table[OpANDI] = opANDI
	m.table[OpORI] = opORI
	m.table[OpXORI] = opXORI
	m.table[OpLUI] = opLUI

	m.table[OpSLT] = opSLT
	m.table[OpSLTU] = opSLTU
	m.table[OpSLTI] = opSLTI
	m.table[OpSLTIU] = opSLTIU

	m.table[OpSLL] = opSLL
	m.table[OpSRL] = opSRL
	m.table[OpSRA] = opSRA
	m.table[OpSLLV] = opSLLV
	m.table[OpSRLV] = opSRLV
	m.table[OpSRAV] = opSRAV

	m.table[OpMUL] = opMUL
	m.table[OpMULH] = opMULH
	m.table[OpMULHU] = opMULHU
	m.table[OpDIV] = opDIV
	m.table[OpDIVU] = opDIVU
	m.table[OpREM] = opREM
	m.table[OpREMU] = opREMU

	m.table[OpLW] = opLW
	m.table[OpLH] = opLH
	m.table[OpLHU] = opLHU
	m.table[OpLB] = opLB
	m.table[OpLBU] = opLBU
	m.table[OpSW] = opSW
	m.table[OpSH] = opSH
	m.table[OpSB] = opSB

	m.table[OpBEQ] = opBEQ
	m.table[OpBNE] = opBNE
	m.table[OpBLEZ] = opBLEZ
	m.table[OpBGTZ] = opBGTZ
	m.table[OpBLTZ] = opBLTZ
	m.table[OpBGEZ] = opBGEZ

	m.table[OpJ] = opJ
	m.table[OpJAL] = opJAL
	m.table[OpJR] = opJR
	m.table[OpJALR] = opJALR

	m.table[OpSYSCALL] = opSYSCALL
	m.table[OpBREAK] = opBREAK

	m.table[OpEI] = opEI
	m.table[OpDI] = opDI
	m.table[OpIRET] = opIRET
	m.table[OpRAISE] = opRAISE
	m.table[OpGETPC] = opGETPC

	m.table[OpENABLE_PAGING] = opENABLE_PAGING
	m.table[OpDISABLE_PAGING] = opDISABLE_PAGING
	m.table[OpSET_PTBR] = opSET_PTBR
	m.table[OpENTER_USER] = opENTER_USER
	m.table[OpGETMODE] = opGETMODE
}
