package memory

import "testing"

// Round-trip: write_word(a, v); read_word(a) == v for all a, v.
func TestReadWriteRoundTrip(t *testing.T) {
	var m Memory
	cases := []struct {
		addr uint16
		val  uint16
	}{
		{0, 0},
		{1, 0xFFFF},
		{100, 0x0048},
		{65535, 0x1234},
	}
	for _, c := range cases {
		m.WriteWord(c.addr, c.val)
		if got := m.ReadWord(c.addr); got != c.val {
			t.Errorf("ReadWord(%d) = %#04x, want %#04x", c.addr, got, c.val)
		}
	}
}

func TestLoadBytesBigEndian(t *testing.T) {
	var m Memory
	// 0x0102 0x0304 as big-endian bytes.
	m.LoadBytes([]byte{0x01, 0x02, 0x03, 0x04})
	if got := m.ReadWord(0); got != 0x0102 {
		t.Errorf("word 0 = %#04x, want 0x0102", got)
	}
	if got := m.ReadWord(1); got != 0x0304 {
		t.Errorf("word 1 = %#04x, want 0x0304", got)
	}
}

func TestRawSliceRoundTrip(t *testing.T) {
	var m Memory
	m.WriteWord(5, 0xBEEF)
	raw := m.RawSlice()
	var m2 Memory
	m2.LoadBytes(raw)
	if got := m2.ReadWord(5); got != 0xBEEF {
		t.Errorf("round trip through RawSlice/LoadBytes: word 5 = %#04x, want 0xBEEF", got)
	}
}
