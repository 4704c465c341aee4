/*
 * CRISP-32 - Boot configuration directive tests.
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

package bootconfig

import (
	"os"
	"testing"

	config "github.com/rcornwell/crisp32/config/configparser"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "crisp32-*.cfg")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(body); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	return f.Name()
}

func TestBootDirectives(t *testing.T) {
	Boot = Config{}
	name := writeConfig(t, ""+
		"memory 64K\n"+
		"load 0x1000\n"+
		"logfile \"crisp32.log\"\n"+
		"log fault,irq\n"+
		"handler 8 0x2000\n"+
		"breakpoint 0x1100\n")

	if err := config.LoadConfigFile(name); err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	if Boot.MemorySize != 64*1024 {
		t.Errorf("MemorySize = %d, want %d", Boot.MemorySize, 64*1024)
	}
	if !Boot.LoadAddrSet || Boot.LoadAddr != 0x1000 {
		t.Errorf("LoadAddr = %#x (set=%v), want 0x1000", Boot.LoadAddr, Boot.LoadAddrSet)
	}
	if Boot.LogFile != "crisp32.log" {
		t.Errorf("LogFile = %q, want crisp32.log", Boot.LogFile)
	}
	if len(Boot.LogCategories) != 2 || Boot.LogCategories[0] != "FAULT" || Boot.LogCategories[1] != "IRQ" {
		t.Errorf("LogCategories = %v", Boot.LogCategories)
	}
	if len(Boot.Handlers) != 1 || Boot.Handlers[0].Vector != 8 || Boot.Handlers[0].Addr != 0x2000 {
		t.Errorf("Handlers = %+v", Boot.Handlers)
	}
	if len(Boot.Breakpoints) != 1 || Boot.Breakpoints[0] != 0x1100 {
		t.Errorf("Breakpoints = %v", Boot.Breakpoints)
	}
}

func TestSetHandlerRejectsOutOfRangeVector(t *testing.T) {
	Boot = Config{}
	name := writeConfig(t, "handler 300 0x2000\n")
	if err := config.LoadConfigFile(name); err == nil {
		t.Fatal("expected an error for an out-of-range vector")
	}
}
