/*
 * CRISP-32 - Core: asynchronous run loop wrapping the synchronous Machine.
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

// Package core runs a cpu.Machine on its own goroutine so a host (the
// monitor, a future remote console) can start, stop, single-step and set
// breakpoints without blocking on the Machine's own tight Run loop. The
// Machine itself stays synchronous and single-threaded (spec §5); this is
// purely a host convenience, grounded on the teacher's emu/core run loop.
package core

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/crisp32/vm/cpu"
)

type command int

const (
	cmdRun command = iota
	cmdStep
	cmdStop
	cmdBreak
	cmdUnbreak
)

type ctrlMsg struct {
	cmd  command
	addr uint32
}

// Event reports why the core stopped running.
type Event struct {
	Reason string
	PC     uint32
}

// Core wraps a Machine with a control channel and an event feed. All
// access to the Machine outside of Core's own goroutine must go through
// Core's methods.
type Core struct {
	wg      sync.WaitGroup
	done    chan struct{}
	control chan ctrlMsg
	events  chan Event

	machine *cpu.Machine
	running bool
	breaks  map[uint32]bool
}

// New wraps m. The caller must not call m.Step or m.Run directly once the
// Core's goroutine has started.
func New(m *cpu.Machine) *Core {
	return &Core{
		machine: m,
		done:    make(chan struct{}),
		control: make(chan ctrlMsg),
		events:  make(chan Event, 1),
		breaks:  make(map[uint32]bool),
	}
}

// Events returns the channel the host should drain for stop notifications.
func (c *Core) Events() <-chan Event {
	return c.events
}

// Machine exposes the underlying Machine for inspection (registers,
// memory) by a host such as the monitor. The host must only read or write
// it while the core is paused; a running core owns it exclusively.
func (c *Core) Machine() *cpu.Machine {
	return c.machine
}

// Start runs the goroutine loop. It returns once Stop is called.
func (c *Core) Start() {
	c.wg.Add(1)
	defer c.wg.Done()
	for {
		if c.running {
			select {
			case <-c.done:
				slog.Info("core stopped")
				return
			case msg := <-c.control:
				c.handle(msg)
			default:
				c.runOneStep()
			}
		} else {
			select {
			case <-c.done:
				slog.Info("core stopped")
				return
			case msg := <-c.control:
				c.handle(msg)
			}
		}
	}
}

func (c *Core) runOneStep() {
	if c.breaks[c.machine.PC] {
		c.running = false
		c.emit(Event{Reason: "breakpoint", PC: c.machine.PC})
		return
	}
	out := c.machine.Step()
	if out.Halted {
		c.running = false
		c.emit(Event{Reason: out.Reason, PC: c.machine.PC})
	}
}

func (c *Core) handle(msg ctrlMsg) {
	switch msg.cmd {
	case cmdRun:
		c.running = true
	case cmdStep:
		c.runOneStep()
	case cmdStop:
		c.running = false
	case cmdBreak:
		c.breaks[msg.addr] = true
	case cmdUnbreak:
		delete(c.breaks, msg.addr)
	}
}

func (c *Core) emit(e Event) {
	select {
	case c.events <- e:
	default:
		// Drop if the host hasn't drained the last event; the host can
		// always re-read Machine state directly.
	}
}

// Run asks the core to start stepping continuously.
func (c *Core) Run() {
	c.control <- ctrlMsg{cmd: cmdRun}
}

// Step asks the core to execute exactly one instruction.
func (c *Core) Step() {
	c.control <- ctrlMsg{cmd: cmdStep}
}

// Pause asks the core to stop stepping without tearing down the goroutine.
func (c *Core) Pause() {
	c.control <- ctrlMsg{cmd: cmdStop}
}

// SetBreak installs a breakpoint at addr.
func (c *Core) SetBreak(addr uint32) {
	c.control <- ctrlMsg{cmd: cmdBreak, addr: addr}
}

// ClearBreak removes a breakpoint at addr.
func (c *Core) ClearBreak(addr uint32) {
	c.control <- ctrlMsg{cmd: cmdUnbreak, addr: addr}
}

// Stop shuts down the goroutine, waiting up to one second before giving up.
func (c *Core) Stop() {
	close(c.done)
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		slog.Warn("timed out waiting for core to stop")
	}
}
