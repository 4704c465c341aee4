/*
 * CRISP-32 - Configuration file parser test set.
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

package configparser

import (
	"os"
	"testing"
)

func resetDirectives() {
	directives = map[string]directiveDef{}
}

func writeTempConfig(t *testing.T, body string) string {
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

func TestRegisterAndDispatchDirective(t *testing.T) {
	resetDirectives()
	var gotFirst string
	var gotOpts []Option
	RegisterDirective("load", func(first string, options []Option) error {
		gotFirst = first
		gotOpts = options
		return nil
	})

	name := writeTempConfig(t, "load prog.bin addr=0x1000, verify\n")
	if err := LoadConfigFile(name); err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if gotFirst != "prog.bin" {
		t.Fatalf("first = %q, want prog.bin", gotFirst)
	}
	if len(gotOpts) != 2 || gotOpts[0].Name != "addr" || gotOpts[0].EqualOpt != "0x1000" || gotOpts[1].Name != "verify" {
		t.Fatalf("options = %+v", gotOpts)
	}
}

func TestCommentsAndBlankLinesIgnored(t *testing.T) {
	resetDirectives()
	calls := 0
	RegisterDirective("log", func(first string, options []Option) error {
		calls++
		return nil
	})

	name := writeTempConfig(t, "# a comment\n\nlog cpu # trailing comment\n")
	if err := LoadConfigFile(name); err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestUnknownDirectiveIsAnError(t *testing.T) {
	resetDirectives()
	name := writeTempConfig(t, "frobnicate 1\n")
	if err := LoadConfigFile(name); err == nil {
		t.Fatal("expected an error for an unknown directive")
	}
}

func TestParseSizeSuffixes(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"1024", 1024},
		{"1K", 1024},
		{"1k", 1024},
		{"4M", 4 * 1024 * 1024},
		{"0x100", 256},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if err != nil {
			t.Fatalf("ParseSize(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseSizeRejectsGarbage(t *testing.T) {
	if _, err := ParseSize("not-a-number"); err == nil {
		t.Fatal("expected an error for a non-numeric size")
	}
}
