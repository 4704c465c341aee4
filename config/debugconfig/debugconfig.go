/*
 * CRISP-32 - Debug option configuration.
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

// Package debugconfig registers the "debug" configuration directive (e.g.
// "debug cpu,mmu"), which sets the per-component flags held in Flags. No
// package reads Flags, so setting them produces no trace output.
package debugconfig

import (
	"errors"
	"strings"

	config "github.com/rcornwell/crisp32/config/configparser"
)

// Flags records which components have had tracing requested. The
// monitor's "debug" command sets it through Set.
var Flags = struct {
	CPU       bool
	MMU       bool
	Interrupt bool
	Asm       bool
}{}

func init() {
	config.RegisterDirective("debug", setDebug)
}

func setDebug(first string, options []config.Option) error {
	names := []string{first}
	for _, opt := range options {
		names = append(names, opt.Name)
	}
	for _, name := range names {
		if err := Set(strings.ToUpper(name)); err != nil {
			return err
		}
	}
	return nil
}

// Set enables tracing for the named component. It is exported so the
// monitor's "debug" command can share this logic with config file loading.
func Set(name string) error {
	switch name {
	case "CPU":
		Flags.CPU = true
	case "MMU":
		Flags.MMU = true
	case "INTERRUPT":
		Flags.Interrupt = true
	case "ASM":
		Flags.Asm = true
	default:
		return errors.New("debug option invalid: " + name)
	}
	return nil
}
