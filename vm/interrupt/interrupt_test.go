package interrupt

import (
	"testing"

	"github.com/rcornwell/crisp32/vm/memory"
)

func TestRaiseIsIdempotent(t *testing.T) {
	var s Subsystem
	s.Raise(5)
	s.Raise(5)
	if !s.IsPending(5) {
		t.Fatal("expected vector 5 pending")
	}
}

func TestPriorityScanLowestWins(t *testing.T) {
	var s Subsystem
	s.Raise(20)
	s.Raise(3)
	s.Raise(100)
	n, ok := s.lowestPending()
	if !ok || n != 3 {
		t.Fatalf("got (%d, %v) want (3, true)", n, ok)
	}
}

func TestVector255NotDispatched(t *testing.T) {
	var s Subsystem
	s.Raise(255)
	if _, ok := s.lowestPending(); ok {
		t.Fatal("vector 255 must not be returned by the priority scan")
	}
}

func TestDispatchNoopWhenDisabled(t *testing.T) {
	var s Subsystem
	s.Raise(1)
	mem := memory.New(make([]byte, 4096))
	var regs [32]uint32
	kernel := false
	res := s.Dispatch(mem, &regs, 0x1000, &kernel)
	if res.Dispatched {
		t.Fatal("dispatch must no-op when interrupts are globally disabled")
	}
	if kernel {
		t.Fatal("kernel mode must not change on a no-op dispatch")
	}
}

func TestDispatchSaveRestoreRoundTrip(t *testing.T) {
	var s Subsystem
	s.Enabled = true
	s.Raise(7)

	mem := memory.New(make([]byte, 8192))
	_ = SetHandler(mem, 7, 0x2000)

	var regs [32]uint32
	for i := range regs {
		regs[i] = uint32(i * 11)
	}
	regs[29] = 0x1000 // stack pointer before dispatch
	kernel := false
	preDispatchPC := uint32(0x500)

	res := s.Dispatch(mem, &regs, preDispatchPC, &kernel)
	if !res.Dispatched {
		t.Fatalf("expected dispatch, got %+v", res)
	}
	if res.NewPC != 0x2000 {
		t.Errorf("got handler %#x want %#x", res.NewPC, 0x2000)
	}
	if !kernel {
		t.Error("dispatch must force kernel mode")
	}
	if s.Enabled {
		t.Error("dispatch must clear the global enable flag")
	}
	if regs[4] != 7 {
		t.Errorf("R4 = %d, want vector number 7", regs[4])
	}
	if s.IsPending(7) {
		t.Error("dispatched vector must be cleared from pending")
	}
	if regs[29] != 0x1000-128 {
		t.Errorf("R29 = %#x, want decremented by 128", regs[29])
	}

	// Mutate a few registers inside the "handler" before returning.
	regs[4] = 0xdead
	regs[10] = 0xbeef

	newPC, fault := s.Return(mem, &regs)
	if fault != nil {
		t.Fatalf("unexpected fault on IRET: %v", fault)
	}
	if newPC != preDispatchPC {
		t.Errorf("PC after IRET = %#x want %#x", newPC, preDispatchPC)
	}
	for i := 0; i < 32; i++ {
		want := uint32(i * 11)
		if i == 29 {
			want = 0x1000 - 128 // R29 snapshot records the post-push pointer
		}
		if regs[i] != want {
			t.Errorf("reg[%d] after IRET = %d want %d", i, regs[i], want)
		}
	}
	if !s.Enabled {
		t.Error("IRET must re-enable interrupts")
	}
}

func TestDispatchFatalOnStackOverflow(t *testing.T) {
	var s Subsystem
	s.Enabled = true
	s.Raise(1)
	mem := memory.New(make([]byte, 64))
	var regs [32]uint32
	regs[29] = 32 // decrementing by 128 goes deeply negative (wraps) and out of bounds
	kernel := false
	res := s.Dispatch(mem, &regs, 0, &kernel)
	if !res.Fatal {
		t.Fatal("expected fatal dispatch when save frame exceeds memory bounds")
	}
}

func TestDispatchFatalOnUnreadableIVT(t *testing.T) {
	var s Subsystem
	s.Enabled = true
	s.Raise(200) // IVT entry 200 lives at offset 1600, past the buffer below
	mem := memory.New(make([]byte, 200))
	var regs [32]uint32
	regs[29] = 200 // save frame [72,200) fits; the IVT read does not
	kernel := false
	res := s.Dispatch(mem, &regs, 0, &kernel)
	if res.Dispatched || !res.Fatal {
		t.Fatalf("expected fatal dispatch from an out-of-bounds IVT read: %+v", res)
	}
}
