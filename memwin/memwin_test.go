// Copyright 2026 Yigithan Sonmez. All rights reserved.

package memwin

import "testing"

func TestFlatWindowWord(t *testing.T) {
	mem := make([]byte, 64)
	for i := range mem {
		mem[i] = byte(i)
	}
	w := NewFlat(0x1000, mem)

	if got := w.Word(0x1000); got == 0 {
		t.Fatalf("Word(base): unexpected zero value")
	}
	want := w.Word(0x1000)
	mem[0] = mem[0] // no-op, just documents that reads see live memory
	if got := w.Word(0x1000); got != want {
		t.Fatalf("Word(base): got %#x, want %#x", got, want)
	}
}

func TestFlatWindowOutOfRange(t *testing.T) {
	w := NewFlat(0x2000, make([]byte, 16))

	if got := w.Word(0x1000); got != 0 {
		t.Fatalf("Word(before base): got %#x, want 0", got)
	}
	if got := w.Word(0x2000 + 9); got != 0 {
		t.Fatalf("Word(past end): got %#x, want 0", got)
	}
	if got := w.Word(0x2000 + 8); got != 0 {
		t.Fatalf("Word(exactly at tail, zero-filled): got %#x, want 0", got)
	}
}

func TestMMapWindowRoundTrip(t *testing.T) {
	w, err := NewMMap(0x10000, 4096)
	if err != nil {
		t.Fatalf("NewMMap: %v", err)
	}
	defer w.Close()

	b := w.Bytes()
	b[16], b[17], b[18], b[19] = 0xEF, 0xBE, 0xAD, 0xDE
	if got, want := w.Word(0x10000+16), uint64(0xDEADBEEF); got != want {
		t.Fatalf("Word: got %#x, want %#x", got, want)
	}
}
