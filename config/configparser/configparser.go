/*
 * CRISP-32 - Configuration file parser.
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

// Package configparser reads a startup file for the monitor: one directive
// per line, driving memory sizing, image loading, logging and interrupt
// handler installation before the console takes over. Directives register
// themselves from init() the same way the rest of the ambient stack wires
// itself together, so new directives never require editing this file.
package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Option is one name[=value] token following a directive on a line.
type Option struct {
	Name     string // Name of option.
	EqualOpt string // Value of string after =.
}

type directiveDef struct {
	create func(first string, options []Option) error
}

var directives = map[string]directiveDef{}

var lineNumber int

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <directive> <whitespace> <arg> *(<whitespace> <option>)
 * <directive> := <string>
 * <arg> := <string> | <hexnumber> | <number><K|M>
 * <option> := <name> ['=' <value>]
 */

// RegisterDirective should be called from an init function to make name
// available as a configuration file directive. first is the directive's
// first (mandatory) argument; options holds any trailing name[=value]
// tokens.
func RegisterDirective(name string, fn func(first string, options []Option) error) {
	name = strings.ToUpper(name)
	directives[name] = directiveDef{create: fn}
}

// LoadConfigFile reads and applies every directive in name, in order.
func LoadConfigFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	lineNumber = 0
	reader := bufio.NewReader(file)
	for {
		line := optionLine{}
		var err error
		line.line, err = reader.ReadString('\n')
		lineNumber++
		if len(line.line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if parseErr := line.parseLine(); parseErr != nil {
			return parseErr
		}
		if err != nil && errors.Is(err, io.EOF) {
			break
		}
	}
	return nil
}

// ParseSize accepts a plain decimal byte count, or one suffixed with K or
// M (binary multiples), as used for the "memory" directive and similar
// byte-count arguments.
func ParseSize(tok string) (uint64, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, errors.New("empty size")
	}
	mult := uint64(1)
	switch tok[len(tok)-1] {
	case 'k', 'K':
		mult = 1024
		tok = tok[:len(tok)-1]
	case 'm', 'M':
		mult = 1024 * 1024
		tok = tok[:len(tok)-1]
	}
	v, err := strconv.ParseUint(tok, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", tok, err)
	}
	return v * mult, nil
}

type optionLine struct {
	line string
	pos  int
}

func (line *optionLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

func (line *optionLine) isEOL() bool {
	return line.pos >= len(line.line) || line.line[line.pos] == '#'
}

// getToken reads a run of non-space, non-comma characters.
func (line *optionLine) getToken() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}
	start := line.pos
	for line.pos < len(line.line) {
		by := line.line[line.pos]
		if unicode.IsSpace(rune(by)) || by == '#' || by == ',' {
			break
		}
		line.pos++
	}
	return line.line[start:line.pos]
}

func (line *optionLine) parseLine() error {
	name := line.getToken()
	if name == "" {
		return nil
	}
	directive, ok := directives[strings.ToUpper(name)]
	if !ok {
		return fmt.Errorf("unknown directive %q on line %d", name, lineNumber)
	}

	first := line.getToken()

	options := []Option{}
	for {
		line.skipSpace()
		if !line.isEOL() && line.line[line.pos] == ',' {
			line.pos++
		}
		tok := line.getToken()
		if tok == "" {
			break
		}
		opt := Option{Name: tok}
		if idx := strings.IndexByte(tok, '='); idx >= 0 {
			opt.Name = tok[:idx]
			opt.EqualOpt = tok[idx+1:]
		}
		options = append(options, opt)
	}

	return directive.create(first, options)
}
