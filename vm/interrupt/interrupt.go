/*
 * CRISP-32 - Interrupt subsystem: pending bitmap, IVT, dispatch and return.
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

// Package interrupt implements the CRISP-32 interrupt subsystem: a 256-bit
// pending bitmap, the 256-entry IVT at guest physical 0x0000..0x07FF,
// priority dispatch (lowest index wins, 255 reserved), and the context
// save/restore pair that moves the register file to and from the guest
// stack. See spec §4.3.
package interrupt

import "github.com/rcornwell/crisp32/vm/memory"

const (
	// IVTBase is the guest physical base address of the interrupt vector table.
	IVTBase = 0x0000
	// IVTEntrySize is the size in bytes of one IVT entry (handler addr + reserved).
	IVTEntrySize = 8
	// NumVectors is the number of interrupt vectors.
	NumVectors = 256
	// saveFrameSize is the size in bytes of a register-file snapshot.
	saveFrameSize = 128

	// Well-known vectors from spec §7.
	IllegalOp           = 1
	MemFault            = 2
	Syscall             = 4
	Break               = 5
	PrivilegeViolation  = 7
	PageFault           = 8
	reservedTopVector   = 255
	scanLimit           = 255 // scan covers 0..254
)

// Subsystem holds the interrupt controller's mutable state. It is owned
// exclusively by the Machine that embeds it.
type Subsystem struct {
	Enabled       bool
	pending       [NumVectors / 8]byte
	SavedPC       uint32
	SavedRegsAddr uint32
}

// Raise sets interrupt n pending. Idempotent; callable from any component,
// including mid-instruction on a fault.
func (s *Subsystem) Raise(n int) {
	if n < 0 || n >= NumVectors {
		return
	}
	s.pending[n/8] |= 1 << uint(n%8)
}

// IsPending reports whether interrupt n is currently pending.
func (s *Subsystem) IsPending(n int) bool {
	if n < 0 || n >= NumVectors {
		return false
	}
	return s.pending[n/8]&(1<<uint(n%8)) != 0
}

func (s *Subsystem) clear(n int) {
	s.pending[n/8] &^= 1 << uint(n%8)
}

// lowestPending scans vectors 0..254 (255 is reserved, spec §9 open
// question 3) and returns the lowest pending index.
func (s *Subsystem) lowestPending() (int, bool) {
	for n := 0; n < scanLimit; n++ {
		if s.IsPending(n) {
			return n, true
		}
	}
	return 0, false
}

// SetHandler writes a handler address into IVT entry n (host utility;
// spec §4.3 "Set handler").
func SetHandler(mem *memory.Memory, n int, addr uint32) *memory.Fault {
	return mem.WriteU32(IVTBase+uint32(n)*IVTEntrySize, addr)
}

// readHandler reads IVT entry n's handler address.
func readHandler(mem *memory.Memory, n int) (uint32, *memory.Fault) {
	return mem.ReadU32(IVTBase + uint32(n)*IVTEntrySize)
}

// DispatchResult reports the outcome of one dispatch attempt.
type DispatchResult struct {
	Dispatched bool   // an interrupt was taken this cycle
	NewPC      uint32 // PC to resume at, valid only if Dispatched
	Fatal      bool   // dispatch hit an unrecoverable condition; caller must halt
	Reason     string // human-readable halt reason, valid only if Fatal
}

// Dispatch runs the priority scan and, if enabled and something is
// pending, performs the save/dispatch sequence of spec §4.3 steps 1-10.
// regs is the live 32-word register file; pc is the PC of the
// about-to-execute (pending) instruction. kernelMode is set to true as
// part of dispatch. regs[29] is decremented by 128 to build the save
// frame; the post-decrement value is what gets snapshotted, matching the
// source's literal (if bug-flavored-elsewhere) behavior.
func (s *Subsystem) Dispatch(mem *memory.Memory, regs *[32]uint32, pc uint32, kernelMode *bool) DispatchResult {
	if !s.Enabled {
		return DispatchResult{}
	}
	n, ok := s.lowestPending()
	if !ok {
		return DispatchResult{}
	}
	s.clear(n)

	s.SavedPC = pc
	*kernelMode = true

	regs[29] -= saveFrameSize
	s.SavedRegsAddr = regs[29]
	if uint64(s.SavedRegsAddr)+saveFrameSize > uint64(mem.Size()) {
		return DispatchResult{Fatal: true, Reason: "interrupt dispatch: register snapshot would exceed memory bounds"}
	}

	for i := 0; i < 32; i++ {
		// WriteU32 cannot fault here: the bounds check above already
		// covers the full 128-byte frame.
		_ = mem.WriteU32(s.SavedRegsAddr+uint32(4*i), regs[i])
	}

	s.Enabled = false
	regs[4] = uint32(n)

	handler, f := readHandler(mem, n)
	if f != nil {
		return DispatchResult{Fatal: true, Reason: "interrupt dispatch: IVT entry unreadable"}
	}
	return DispatchResult{Dispatched: true, NewPC: handler}
}

// Return implements IRET (spec §4.3 "Return"): restores PC and all 32
// registers from the save frame and re-enables interrupts. Privilege
// (kernel_mode) is deliberately left untouched — see spec §9 open
// question 1. Because IRET is itself privileged, it only completes in
// kernel mode, so the interrupted context always resumes in kernel mode;
// an IRET issued after ENTER_USER raises PRIVILEGE_VIOLATION instead.
func (s *Subsystem) Return(mem *memory.Memory, regs *[32]uint32) (newPC uint32, fault *memory.Fault) {
	var snapshot [32]uint32
	for i := 0; i < 32; i++ {
		v, f := mem.ReadU32(s.SavedRegsAddr + uint32(4*i))
		if f != nil {
			return 0, f
		}
		snapshot[i] = v
	}
	*regs = snapshot
	s.Enabled = true
	return s.SavedPC, nil
}
