package cpu

import (
	"testing"

	"github.com/b-irb/sigma16-emulator/isa"
)

// regs[0] == 0 for every reachable state.
func TestR0AlwaysZero(t *testing.T) {
	var s State
	s.WriteReg(0, 0xFFFF)
	if got := s.ReadReg(0); got != 0 {
		t.Errorf("R0 = %#04x after write, want 0", got)
	}
	if s.Regs[0] != 0 {
		t.Errorf("underlying Regs[0] = %#04x, want 0 (write must be discarded)", s.Regs[0])
	}
}

func TestSetFlagPreservesOtherBits(t *testing.T) {
	var s State
	s.Regs[15] = 0x00FF // low byte set, no flags
	s.SetFlag(isa.FlagEqual, true)
	if s.Regs[15]&0x00FF != 0x00FF {
		t.Errorf("low byte disturbed: R15 = %#04x", s.Regs[15])
	}
	if !s.Flag(isa.FlagEqual) {
		t.Errorf("FlagEqual not set after SetFlag(true)")
	}
}

func TestClearFlagsLeavesLowByte(t *testing.T) {
	var s State
	s.Regs[15] = 0xFFFF
	s.ClearFlags()
	if s.Regs[15] != 0x00FF {
		t.Errorf("ClearFlags: R15 = %#04x, want 0x00ff", s.Regs[15])
	}
	f := s.Flags()
	for _, fl := range isa.AllFlags {
		if f[fl] {
			t.Errorf("flag %s still set after ClearFlags", fl.Letter())
		}
	}
}

func TestFlagBitIndexMatchesJumpcOrdering(t *testing.T) {
	// jumpc1 5 must select Equal: bit(5) = R15 >> (15-5) & 1 = bit 10.
	if isa.FlagEqual.BitIndex() != 10 {
		t.Errorf("FlagEqual.BitIndex() = %d, want 10", isa.FlagEqual.BitIndex())
	}
	if isa.Flag(5) != isa.FlagEqual {
		t.Errorf("isa.Flag(5) = %v, want FlagEqual", isa.Flag(5))
	}
}
