/*
 * CRISP-32 - Main process.
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

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	getopt "github.com/pborman/getopt/v2"

	reader "github.com/rcornwell/crisp32/command/reader"
	bootconfig "github.com/rcornwell/crisp32/config/bootconfig"
	config "github.com/rcornwell/crisp32/config/configparser"
	_ "github.com/rcornwell/crisp32/config/debugconfig"
	logger "github.com/rcornwell/crisp32/util/logger"
	"github.com/rcornwell/crisp32/vm/core"
	"github.com/rcornwell/crisp32/vm/cpu"
	"github.com/rcornwell/crisp32/vm/memory"
)

// defaultMemorySize is used when neither a config file nor the CLI sets
// one explicitly.
const defaultMemorySize = 1 << 20 // 1 MiB

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optImage := getopt.StringLong("image", 'i', "", "Raw program image to load")
	optLoad := getopt.StringLong("load", 'L', "", "Load address override (hex)")
	optMonitor := getopt.BoolLong("monitor", 'm', "Drop into the interactive monitor instead of free-running")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	if *optConfig != "" {
		if err := config.LoadConfigFile(*optConfig); err != nil {
			fmt.Fprintln(os.Stderr, "crisp32: "+err.Error())
			os.Exit(1)
		}
	}

	logPath := bootconfig.Boot.LogFile
	if *optLogFile != "" {
		logPath = *optLogFile
	}
	var logFile *os.File
	if logPath != "" {
		var err error
		logFile, err = os.Create(logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "crisp32: can't create log file: "+err.Error())
			os.Exit(1)
		}
	}
	debugLog := len(bootconfig.Boot.LogCategories) > 0
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	handler := logger.NewHandler(logFile, &slog.HandlerOptions{Level: programLevel}, &debugLog)
	slog.SetDefault(slog.New(handler))

	slog.Info("crisp32 started")

	memSize := bootconfig.Boot.MemorySize
	if memSize == 0 {
		memSize = defaultMemorySize
	}

	mem := memory.New(make([]byte, memSize))
	machine := cpu.New(mem)

	for _, h := range bootconfig.Boot.Handlers {
		if f := machine.SetHandler(h.Vector, h.Addr); f != nil {
			slog.Error("installing handler", "vector", h.Vector, "error", f.Error())
			os.Exit(1)
		}
	}

	if *optImage != "" {
		image, err := os.ReadFile(*optImage)
		if err != nil {
			fmt.Fprintln(os.Stderr, "crisp32: "+err.Error())
			os.Exit(1)
		}
		addr := bootconfig.Boot.LoadAddr
		if *optLoad != "" {
			v, err := strconv.ParseUint(*optLoad, 0, 32)
			if err != nil {
				fmt.Fprintln(os.Stderr, "crisp32: invalid --load address: "+*optLoad)
				os.Exit(1)
			}
			addr = uint32(v)
		}
		if f := machine.LoadImage(addr, image); f != nil {
			fmt.Fprintln(os.Stderr, "crisp32: loading image: "+f.Error())
			os.Exit(1)
		}
	}

	vm := core.New(machine)
	for _, addr := range bootconfig.Boot.Breakpoints {
		vm.SetBreak(addr)
	}

	if *optMonitor {
		go vm.Start()
		reader.ConsoleReader(vm)
		vm.Stop()
		return
	}

	out := machine.Run()
	slog.Info("halted", "reason", out.Reason, "pc", fmt.Sprintf("0x%08x", machine.PC))
	printRegisters(machine)
}

func printRegisters(m *cpu.Machine) {
	for i := 0; i < len(m.Regs); i += 4 {
		for j := i; j < i+4 && j < len(m.Regs); j++ {
			fmt.Printf("r%-2d=%08x ", j, m.Regs[j])
		}
		fmt.Println()
	}
	fmt.Printf("pc=%08x  kernel=%v  paging=%v\n", m.PC, m.KernelMode, m.PagingEnabled)
}
