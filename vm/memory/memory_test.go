package memory

import "testing"

func TestReadWriteU8(t *testing.T) {
	m := New(make([]byte, 16))
	if f := m.WriteU8(4, 0x7f); f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	v, f := m.ReadU8(4)
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if v != 0x7f {
		t.Errorf("got %x want %x", v, 0x7f)
	}
}

func TestEndianRoundTripU32(t *testing.T) {
	for _, addr := range []uint32{0, 1, 2, 3, 12} {
		m := New(make([]byte, 16))
		const want = uint32(0x12345678)
		if f := m.WriteU32(addr, want); f != nil {
			t.Fatalf("addr %d: unexpected fault: %v", addr, f)
		}
		got, f := m.ReadU32(addr)
		if f != nil {
			t.Fatalf("addr %d: unexpected fault: %v", addr, f)
		}
		if got != want {
			t.Errorf("addr %d: got %#x want %#x", addr, got, want)
		}
	}
}

func TestEndianRoundTripU16(t *testing.T) {
	m := New(make([]byte, 8))
	const want = uint16(0xbeef)
	if f := m.WriteU16(2, want); f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	got, f := m.ReadU16(2)
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if got != want {
		t.Errorf("got %#x want %#x", got, want)
	}
}

func TestLittleEndianByteOrder(t *testing.T) {
	m := New(make([]byte, 8))
	_ = m.WriteU32(0, 0x12345678)
	raw := m.Bytes()
	want := []byte{0x78, 0x56, 0x34, 0x12}
	for i, b := range want {
		if raw[i] != b {
			t.Errorf("byte %d: got %#x want %#x", i, raw[i], b)
		}
	}
}

func TestBoundsFault(t *testing.T) {
	m := New(make([]byte, 8))
	if _, f := m.ReadU8(8); f == nil {
		t.Error("expected fault reading at size boundary")
	}
	if _, f := m.ReadU32(5); f == nil {
		t.Error("expected fault for u32 straddling end of buffer")
	}
	if f := m.WriteU32(5, 1); f == nil {
		t.Error("expected fault writing u32 straddling end of buffer")
	}
	if _, f := m.ReadU32(4); f != nil {
		t.Errorf("unexpected fault at exact last word: %v", f)
	}
}

func TestLoadImage(t *testing.T) {
	m := New(make([]byte, 16))
	img := []byte{1, 2, 3, 4}
	if f := m.LoadImage(4, img); f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	for i, b := range img {
		got, _ := m.ReadU8(uint32(4 + i))
		if got != b {
			t.Errorf("byte %d: got %#x want %#x", i, got, b)
		}
	}
}

func TestLoadImageBounds(t *testing.T) {
	m := New(make([]byte, 4))
	if f := m.LoadImage(2, []byte{1, 2, 3}); f == nil {
		t.Error("expected fault loading image past end of buffer")
	}
}
