/*
 * CRISP-32 - Command parser.
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

// Package parser implements the monitor's command line: a small set of
// abbreviation-matched verbs (step, continue, regs, mem, break, ...)
// operating on a *core.Core. Commands may be typed to their shortest
// unambiguous prefix, the same convention the rest of the tree's command
// dispatchers use.
package parser

import (
	"errors"
	"strconv"
	"unicode"

	"github.com/rcornwell/crisp32/command/command"
	"github.com/rcornwell/crisp32/vm/core"
)

type cmd struct {
	name     string // Command name.
	min      int    // Minimum match length.
	args     []command.Arg
	process  func(*cmdLine, *core.Core) (bool, error)
	complete func(*cmdLine) []string
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

var cmdList = []cmd{
	{name: "step", min: 1, process: step},
	{name: "continue", min: 1, process: cont},
	{name: "stop", min: 3, process: stop},
	{name: "regs", min: 1, process: regs},
	{name: "mem", min: 1, process: mem, complete: memComplete,
		args: []command.Arg{{Name: "addr", Desc: "starting address"}, {Name: "count", Desc: "number of words, default 16"}}},
	{name: "deposit", min: 1, process: deposit,
		args: []command.Arg{{Name: "addr", Desc: "target address"}, {Name: "value", Desc: "word to store"}}},
	{name: "break", min: 2, process: setBreak,
		args: []command.Arg{{Name: "addr", Desc: "address to stop at"}}},
	{name: "unbreak", min: 3, process: clearBreak,
		args: []command.Arg{{Name: "addr", Desc: "breakpoint to remove"}}},
	{name: "load", min: 1, process: load, complete: loadComplete,
		args: []command.Arg{{Name: "file", Desc: "raw image to load"}, {Name: "addr", Desc: "load address, default 0"}}},
	{name: "raise", min: 1, process: raise,
		args: []command.Arg{{Name: "vector", Desc: "interrupt vector to raise"}}},
	{name: "reset", min: 3, process: reset},
	{name: "debug", min: 1, process: debug,
		args: []command.Arg{{Name: "flag...", Desc: "debug categories to enable"}}},
	{name: "help", min: 1, process: help},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand executes one line of input against core. It returns true
// if the monitor should exit.
func ProcessCommand(commandLine string, core *core.Core) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	if len(match) == 0 {
		return false, errors.New("command not found: " + name)
	}
	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + name)
	}
	return match[0].process(&line, core)
}

// CompleteCmd returns tab-completion candidates for the partial line
// given, for use by a line editor.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	if !line.isEOL() && line.pos > 0 && commandLine[line.pos-1] == ' ' {
		match := matchList(name)
		if len(match) != 1 || match[0].complete == nil {
			return nil
		}
		return match[0].complete(&line)
	}

	match := matchList(name)
	out := make([]string, len(match))
	for i, m := range match {
		out[i] = m.name
	}
	return out
}

// matchList returns every command whose name has name as a prefix of at
// least its minimum match length.
func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var out []cmd
	for _, c := range cmdList {
		if matchCommand(c, name) {
			out = append(out, c)
		}
	}
	return out
}

func matchCommand(c cmd, name string) bool {
	if len(name) > len(c.name) || len(name) < c.min {
		return false
	}
	return c.name[:len(name)] == name
}

func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

func (line *cmdLine) isEOL() bool {
	return line.pos >= len(line.line) || line.line[line.pos] == '#'
}

// getWord reads a run of letters (a command name).
func (line *cmdLine) getWord() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}
	start := line.pos
	for line.pos < len(line.line) && unicode.IsLetter(rune(line.line[line.pos])) {
		line.pos++
	}
	return line.line[start:line.pos]
}

// getToken reads a run of non-space characters (a numeric or file
// argument).
func (line *cmdLine) getToken() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}
	start := line.pos
	for line.pos < len(line.line) && !unicode.IsSpace(rune(line.line[line.pos])) && line.line[line.pos] != '#' {
		line.pos++
	}
	return line.line[start:line.pos]
}

// getNumber parses the next token as a decimal or 0x-prefixed hex
// unsigned 32-bit integer.
func (line *cmdLine) getNumber() (uint32, error) {
	tok := line.getToken()
	if tok == "" {
		return 0, errors.New("expected a number")
	}
	v, err := strconv.ParseUint(tok, 0, 32)
	if err != nil {
		return 0, errors.New("invalid number: " + tok)
	}
	return uint32(v), nil
}
