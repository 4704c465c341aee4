/*
 * CRISP-32 - Monitor command implementations.
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
	"os"
	"strings"

	"github.com/rcornwell/crisp32/config/debugconfig"
	"github.com/rcornwell/crisp32/disasm"
	"github.com/rcornwell/crisp32/util/hex"
	"github.com/rcornwell/crisp32/vm/core"
)

func step(_ *cmdLine, c *core.Core) (bool, error) {
	c.Step()
	printPC(c)
	return false, nil
}

func cont(_ *cmdLine, c *core.Core) (bool, error) {
	c.Run()
	return false, nil
}

func stop(_ *cmdLine, c *core.Core) (bool, error) {
	c.Pause()
	printPC(c)
	return false, nil
}

func printPC(c *core.Core) {
	m := c.Machine()
	word, f := m.Mem.Read8Bytes(m.PC)
	if f != nil {
		fmt.Printf("PC=0x%08x\n", m.PC)
		return
	}
	fmt.Printf("PC=0x%08x  %s\n", m.PC, disasm.Word(word[:]))
}

func regs(_ *cmdLine, c *core.Core) (bool, error) {
	m := c.Machine()
	var b strings.Builder
	for i := 0; i < len(m.Regs); i += 4 {
		for j := i; j < i+4 && j < len(m.Regs); j++ {
			fmt.Fprintf(&b, "r%-2d=", j)
			hex.FormatWord(&b, m.Regs[j:j+1])
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "pc=0x%08x  kernel=%v  paging=%v\n", m.PC, m.KernelMode, m.PagingEnabled)
	fmt.Print(b.String())
	return false, nil
}

func setBreak(line *cmdLine, c *core.Core) (bool, error) {
	addr, err := line.getNumber()
	if err != nil {
		return false, err
	}
	c.SetBreak(addr)
	return false, nil
}

func clearBreak(line *cmdLine, c *core.Core) (bool, error) {
	addr, err := line.getNumber()
	if err != nil {
		return false, err
	}
	c.ClearBreak(addr)
	return false, nil
}

func loadComplete(line *cmdLine) []string {
	return completeFile(line.getToken())
}

func load(line *cmdLine, c *core.Core) (bool, error) {
	path := line.getToken()
	if path == "" {
		return false, fmt.Errorf("load requires a file name")
	}
	addr, err := line.getNumber()
	if err != nil {
		addr = 0
	}
	image, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if f := c.Machine().LoadImage(addr, image); f != nil {
		return false, fmt.Errorf("load failed: %s", f.Error())
	}
	return false, nil
}

func raise(line *cmdLine, c *core.Core) (bool, error) {
	vec, err := line.getNumber()
	if err != nil {
		return false, err
	}
	c.Machine().Interrupt.Raise(int(vec))
	return false, nil
}

func reset(_ *cmdLine, c *core.Core) (bool, error) {
	c.Pause()
	c.Machine().Reset()
	return false, nil
}

func debug(line *cmdLine, _ *core.Core) (bool, error) {
	for {
		tok := line.getToken()
		if tok == "" {
			break
		}
		if err := debugconfig.Set(strings.ToUpper(tok)); err != nil {
			return false, err
		}
	}
	return false, nil
}

func quit(_ *cmdLine, c *core.Core) (bool, error) {
	c.Stop()
	return true, nil
}

// help lists every monitor command and its arguments.
func help(_ *cmdLine, _ *core.Core) (bool, error) {
	for _, c := range cmdList {
		fmt.Printf("%s", c.name)
		for _, a := range c.args {
			fmt.Printf(" %s", a.Name)
		}
		fmt.Println()
		for _, a := range c.args {
			fmt.Printf("    %-8s %s\n", a.Name, a.Desc)
		}
	}
	return false, nil
}
