package decoder

import (
	"math/rand"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		want := Instruction{
			Opcode: uint8(r.Intn(256)),
			Rs:     uint8(r.Intn(32)),
			Rt:     uint8(r.Intn(32)),
			Rd:     uint8(r.Intn(32)),
			Imm:    r.Uint32(),
		}
		wire := Encode(want)
		got := Decode(wire[:])
		if got != want {
			t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
		}
	}
}

func TestFieldOffsets(t *testing.T) {
	wire := []byte{0x11, 0x02, 0x03, 0x04, 0x78, 0x56, 0x34, 0x12}
	got := Decode(wire)
	want := Instruction{Opcode: 0x11, Rs: 2, Rt: 3, Rd: 4, Imm: 0x12345678}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}
