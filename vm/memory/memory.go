/*
 * CRISP-32 - Guest physical memory window.
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

// Package memory implements the byte-addressable guest physical memory
// window: a bounds-checked, little-endian-on-the-guest buffer shared by
// every other VM component. No component outside this package touches
// raw bytes for a multi-byte value.
package memory

import "fmt"

// Fault is returned whenever an access would read or write outside the
// buffer. Width-1 accesses are always "aligned"; widths 2 and 4 are not
// enforced for alignment, only for bounds.
type Fault struct {
	Addr  uint32
	Width uint32
	Size  uint32
}

func (f *Fault) Error() string {
	return fmt.Sprintf("memory: access at 0x%08x width %d exceeds size 0x%08x", f.Addr, f.Width, f.Size)
}

// Memory is the guest's physical address space: a flat byte buffer the
// Machine owns for the duration of a run. The caller supplies the backing
// slice at construction and must not touch it concurrently with a running
// Machine (see spec §5).
type Memory struct {
	buf []byte
}

// New wraps buf as the guest physical memory window. The slice's lifetime
// must outlive the Memory.
func New(buf []byte) *Memory {
	return &Memory{buf: buf}
}

// Size returns the memory window's size in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.buf))
}

func (m *Memory) checkBounds(addr, width uint32) *Fault {
	if uint64(addr)+uint64(width) > uint64(len(m.buf)) {
		return &Fault{Addr: addr, Width: width, Size: m.Size()}
	}
	return nil
}

// ReadU8 reads a single byte.
func (m *Memory) ReadU8(addr uint32) (uint8, *Fault) {
	if f := m.checkBounds(addr, 1); f != nil {
		return 0, f
	}
	return m.buf[addr], nil
}

// WriteU8 writes a single byte.
func (m *Memory) WriteU8(addr uint32, v uint8) *Fault {
	if f := m.checkBounds(addr, 1); f != nil {
		return f
	}
	m.buf[addr] = v
	return nil
}

// ReadU16 reads a little-endian 16-bit value. Misaligned addresses are
// not rejected; the two bytes at [addr, addr+2) are concatenated
// little-endian regardless of host alignment (spec §4.1).
func (m *Memory) ReadU16(addr uint32) (uint16, *Fault) {
	if f := m.checkBounds(addr, 2); f != nil {
		return 0, f
	}
	return uint16(m.buf[addr]) | uint16(m.buf[addr+1])<<8, nil
}

// WriteU16 writes a little-endian 16-bit value.
func (m *Memory) WriteU16(addr uint32, v uint16) *Fault {
	if f := m.checkBounds(addr, 2); f != nil {
		return f
	}
	m.buf[addr] = byte(v)
	m.buf[addr+1] = byte(v >> 8)
	return nil
}

// Read8Bytes reads the 8-byte instruction word at addr (the fetch
// stage's primitive, named after the spec's data-flow diagram).
func (m *Memory) Read8Bytes(addr uint32) ([8]byte, *Fault) {
	var w [8]byte
	if f := m.checkBounds(addr, 8); f != nil {
		return w, f
	}
	copy(w[:], m.buf[addr:addr+8])
	return w, nil
}

// ReadU32 reads a little-endian 32-bit value.
func (m *Memory) ReadU32(addr uint32) (uint32, *Fault) {
	if f := m.checkBounds(addr, 4); f != nil {
		return 0, f
	}
	return uint32(m.buf[addr]) | uint32(m.buf[addr+1])<<8 |
		uint32(m.buf[addr+2])<<16 | uint32(m.buf[addr+3])<<24, nil
}

// WriteU32 writes a little-endian 32-bit value.
func (m *Memory) WriteU32(addr uint32, v uint32) *Fault {
	if f := m.checkBounds(addr, 4); f != nil {
		return f
	}
	m.buf[addr] = byte(v)
	m.buf[addr+1] = byte(v >> 8)
	m.buf[addr+2] = byte(v >> 16)
	m.buf[addr+3] = byte(v >> 24)
	return nil
}

// LoadImage copies a raw program image into the buffer starting at addr.
// Used by the host CLI and by tests; bypasses translation since the
// address is already physical.
func (m *Memory) LoadImage(addr uint32, image []byte) *Fault {
	if f := m.checkBounds(addr, uint32(len(image))); f != nil {
		return f
	}
	copy(m.buf[addr:], image)
	return nil
}

// Bytes exposes the raw buffer for host inspection (e.g. the monitor's
// "mem" command, or a test asserting on a store's effect). The caller
// must not retain and mutate it concurrently with a running Machine.
func (m *Memory) Bytes() []byte {
	return m.buf
}
