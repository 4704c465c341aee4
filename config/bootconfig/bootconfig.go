/*
 * CRISP-32 - Boot-time configuration directives.
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

// Package bootconfig registers the directives that shape a CRISP-32
// session before the machine is built: "memory", "load", "logfile",
// "log", "handler" and "breakpoint". Each directive just records what it
// was told into the package-level Boot value; main applies it once the
// whole file has been read, the same two-phase split the teacher's
// device directives use (register during config load, act afterward).
package bootconfig

import (
	"errors"
	"strconv"
	"strings"

	config "github.com/rcornwell/crisp32/config/configparser"
)

// Handler is one pre-populated IVT entry requested by a "handler" line.
type Handler struct {
	Vector int
	Addr   uint32
}

// Config accumulates every boot directive seen while a config file is
// loaded.
type Config struct {
	MemorySize    uint64
	LoadAddr      uint32
	LoadAddrSet   bool
	LogFile       string
	LogCategories []string
	Handlers      []Handler
	Breakpoints   []uint32
}

// Boot accumulates the directives seen by every LoadConfigFile call; it
// is not reset between calls. main reads it after parsing completes.
var Boot Config

func init() {
	config.RegisterDirective("memory", setMemory)
	config.RegisterDirective("load", setLoad)
	config.RegisterDirective("logfile", setLogFile)
	config.RegisterDirective("log", setLog)
	config.RegisterDirective("handler", setHandler)
	config.RegisterDirective("breakpoint", setBreakpoint)
}

func parseHex(tok string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(tok), 0, 32)
	if err != nil {
		return 0, errors.New("invalid address: " + tok)
	}
	return uint32(v), nil
}

func setMemory(first string, _ []config.Option) error {
	size, err := config.ParseSize(first)
	if err != nil {
		return err
	}
	Boot.MemorySize = size
	return nil
}

func setLoad(first string, _ []config.Option) error {
	addr, err := parseHex(first)
	if err != nil {
		return err
	}
	Boot.LoadAddr, Boot.LoadAddrSet = addr, true
	return nil
}

func setLogFile(first string, _ []config.Option) error {
	Boot.LogFile = strings.Trim(first, `"`)
	return nil
}

func setLog(first string, options []config.Option) error {
	Boot.LogCategories = append(Boot.LogCategories, strings.ToUpper(first))
	for _, opt := range options {
		Boot.LogCategories = append(Boot.LogCategories, strings.ToUpper(opt.Name))
	}
	return nil
}

func setHandler(first string, options []config.Option) error {
	n, err := strconv.Atoi(first)
	if err != nil || n < 0 || n > 255 {
		return errors.New("invalid handler vector: " + first)
	}
	if len(options) == 0 {
		return errors.New("handler requires a target address")
	}
	addr, err := parseHex(options[0].Name)
	if err != nil {
		return err
	}
	Boot.Handlers = append(Boot.Handlers, Handler{Vector: n, Addr: addr})
	return nil
}

func setBreakpoint(first string, _ []config.Option) error {
	addr, err := parseHex(first)
	if err != nil {
		return err
	}
	Boot.Breakpoints = append(Boot.Breakpoints, addr)
	return nil
}
