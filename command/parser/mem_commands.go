/*
 * CRISP-32 - Memory dump and deposit commands.
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

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcornwell/crisp32/util/hex"
	"github.com/rcornwell/crisp32/vm/core"
)

// mem dumps count words of memory starting at addr: "mem <addr> [count]".
func mem(line *cmdLine, c *core.Core) (bool, error) {
	addr, err := line.getNumber()
	if err != nil {
		return false, err
	}
	count := uint32(16)
	if tok := line.getToken(); tok != "" {
		v, err := strconv.ParseUint(tok, 0, 32)
		if err != nil {
			return false, fmt.Errorf("invalid count: %s", tok)
		}
		count = uint32(v)
	}

	m := c.Machine()
	var b strings.Builder
	for row := uint32(0); row < count; row += 4 {
		fmt.Fprintf(&b, "%08x: ", addr+row*4)
		words := make([]uint32, 0, 4)
		for i := uint32(0); i < 4 && row+i < count; i++ {
			word, f := m.Mem.ReadU32(addr + (row+i)*4)
			if f != nil {
				fmt.Fprintf(&b, "<fault at 0x%08x> ", addr+(row+i)*4)
				continue
			}
			words = append(words, word)
		}
		hex.FormatWord(&b, words)
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
	return false, nil
}

func memComplete(_ *cmdLine) []string {
	return nil
}

// deposit writes a single word to memory: "deposit <addr> <value>".
func deposit(line *cmdLine, c *core.Core) (bool, error) {
	addr, err := line.getNumber()
	if err != nil {
		return false, err
	}
	value, err := line.getNumber()
	if err != nil {
		return false, err
	}
	if f := c.Machine().Mem.WriteU32(addr, value); f != nil {
		return false, fmt.Errorf("deposit failed: %s", f.Error())
	}
	return false, nil
}
