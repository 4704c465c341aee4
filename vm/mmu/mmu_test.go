package mmu

import (
	"testing"

	"github.com/rcornwell/crisp32/vm/memory"
)

func pte(ppn uint32, u, x, w, v bool) uint32 {
	p := ppn &^ 0xFFF
	if u {
		p |= 1 << 3
	}
	if x {
		p |= 1 << 2
	}
	if w {
		p |= 1 << 1
	}
	if v {
		p |= 1 << 0
	}
	return p
}

func TestKernelModeBypassesPaging(t *testing.T) {
	mem := memory.New(make([]byte, 4096))
	st := State{KernelMode: true, PagingEnabled: true, NumPages: 1}
	r := Translate(mem, st, 0x12345, false, false)
	if r.Fault || r.Physical != 0x12345 {
		t.Fatalf("kernel mode must bypass paging, got %+v", r)
	}
}

func TestPagingDisabledBypasses(t *testing.T) {
	mem := memory.New(make([]byte, 4096))
	st := State{KernelMode: false, PagingEnabled: false}
	r := Translate(mem, st, 0xabc, false, false)
	if r.Fault || r.Physical != 0xabc {
		t.Fatalf("paging disabled must bypass translation, got %+v", r)
	}
}

func TestBoundaryVPNEqualsNumPagesFaults(t *testing.T) {
	mem := memory.New(make([]byte, 4096))
	st := State{PagingEnabled: true, NumPages: 2, PTBR: 0}
	_ = mem.WriteU32(4, pte(0x1000, true, true, true, true)) // page 1
	r := Translate(mem, st, 2<<12, false, false)             // vpn == NumPages
	if !r.Fault {
		t.Fatal("vpn == num_pages must fault")
	}
}

func TestBoundaryLastValidPageSucceeds(t *testing.T) {
	mem := memory.New(make([]byte, 4096))
	st := State{PagingEnabled: true, NumPages: 2, PTBR: 0}
	_ = mem.WriteU32(4, pte(0x3000, true, true, true, true)) // vpn 1
	r := Translate(mem, st, (1<<12)|0x55, false, false)
	if r.Fault {
		t.Fatal("last valid page must not fault")
	}
	if r.Physical != 0x3000|0x55 {
		t.Errorf("got %#x want %#x", r.Physical, 0x3000|0x55)
	}
}

func TestInvalidPTEFaults(t *testing.T) {
	mem := memory.New(make([]byte, 4096))
	st := State{PagingEnabled: true, NumPages: 1, PTBR: 0}
	_ = mem.WriteU32(0, pte(0x1000, true, true, true, false)) // V=0
	if r := Translate(mem, st, 0, false, false); !r.Fault {
		t.Fatal("V=0 must fault")
	}
}

func TestKernelOnlyPageDeniesUser(t *testing.T) {
	mem := memory.New(make([]byte, 4096))
	st := State{PagingEnabled: true, NumPages: 1, PTBR: 0}
	_ = mem.WriteU32(0, pte(0x1000, false, true, true, true)) // U=0
	if r := Translate(mem, st, 0, false, false); !r.Fault {
		t.Fatal("U=0 must deny user access")
	}
}

func TestWriteDeniedWithoutW(t *testing.T) {
	mem := memory.New(make([]byte, 4096))
	st := State{PagingEnabled: true, NumPages: 1, PTBR: 0}
	_ = mem.WriteU32(0, pte(0x1000, true, true, false, true))
	if r := Translate(mem, st, 0, true, false); !r.Fault {
		t.Fatal("write without W must fault")
	}
	if r := Translate(mem, st, 0, false, false); r.Fault {
		t.Fatal("read without write request must succeed")
	}
}

func TestExecDeniedWithoutX(t *testing.T) {
	mem := memory.New(make([]byte, 4096))
	st := State{PagingEnabled: true, NumPages: 1, PTBR: 0}
	_ = mem.WriteU32(0, pte(0x1000, true, false, true, true))
	if r := Translate(mem, st, 0, false, true); !r.Fault {
		t.Fatal("exec without X must fault")
	}
}

func TestPTEAddressOutOfBoundsFaults(t *testing.T) {
	mem := memory.New(make([]byte, 8))
	st := State{PagingEnabled: true, NumPages: 4, PTBR: 4}
	// vpn=1 -> pteAddr = 4 + 4 = 8, +4 > size(8)
	if r := Translate(mem, st, 1<<12, false, false); !r.Fault {
		t.Fatal("out of bounds PTE address must fault")
	}
}
