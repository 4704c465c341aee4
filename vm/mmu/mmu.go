/*
 * CRISP-32 - MMU translator: virtual-to-physical address translation.
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

// Package mmu implements the single-level page table translator of spec
// §4.2. Kernel mode always bypasses paging: there is no "kernel with
// paging" in this architecture, so the kernel and physical address spaces
// are identical and page-table writes by the guest take effect
// immediately (no TLB).
package mmu

import "github.com/rcornwell/crisp32/vm/memory"

const (
	pageShift = 12
	pageMask  = 0xFFF

	pteValidBit = 1 << 0
	pteWriteBit = 1 << 1
	pteExecBit  = 1 << 2
	pteUserBit  = 1 << 3
	ptePPNMask  = 0xFFFFF000
)

// PageFaultVector is the interrupt raised when translation is denied.
const PageFaultVector = 8

// State is the subset of Machine state the translator reads. Paging and
// privilege are supplied by value each call rather than captured, since
// both can change between instructions.
type State struct {
	KernelMode    bool
	PagingEnabled bool
	PTBR          uint32
	NumPages      uint32
}

// Result is a raised-or-not outcome: translation either succeeds with a
// physical address, or raises PageFault (the caller is responsible for
// actually invoking the interrupt subsystem's Raise — mmu has no
// dependency on interrupt to avoid an import cycle and to keep the
// translator a pure function of memory and State).
type Result struct {
	Physical uint32
	Fault    bool
}

// Translate implements spec §4.2's six-step algorithm. is_write and
// is_exec select the access-right check required of the PTE.
func Translate(mem *memory.Memory, st State, vaddr uint32, isWrite, isExec bool) Result {
	if st.KernelMode || !st.PagingEnabled {
		return Result{Physical: vaddr}
	}

	vpn := vaddr >> pageShift
	off := vaddr & pageMask

	if vpn >= st.NumPages {
		return Result{Fault: true}
	}

	pteAddr := st.PTBR + 4*vpn
	if uint64(pteAddr)+4 > uint64(mem.Size()) {
		return Result{Fault: true}
	}

	// Page-table reads always bypass translation: they are physical by
	// definition (spec §4.2 step 5).
	pte, f := mem.ReadU32(pteAddr)
	if f != nil {
		return Result{Fault: true}
	}

	ppn := pte & ptePPNMask
	valid := pte&pteValidBit != 0
	user := pte&pteUserBit != 0
	exec := pte&pteExecBit != 0
	write := pte&pteWriteBit != 0

	switch {
	case !valid:
		return Result{Fault: true}
	case !user:
		return Result{Fault: true}
	case isWrite && !write:
		return Result{Fault: true}
	case isExec && !exec:
		return Result{Fault: true}
	}

	return Result{Physical: ppn | off}
}
