package engine

import (
	"fmt"

	"github.com/b-irb/sigma16-emulator/isa"
)

// execRRR dispatches one 16-bit register/register/register instruction.
// Every RRR form advances PC by one word, except a trap that halts or fails.
func (e *Engine) execRRR(in isa.Instruction) (halted bool, err error) {
	sa := e.CPU.ReadReg(in.SA)
	sb := e.CPU.ReadReg(in.SB)

	if in.Op == isa.OpTrap {
		halted, err = e.execTrap(in)
		if !halted && err == nil {
			e.advance(1)
		}
		return halted, err
	}

	switch in.Op {
	case isa.OpAdd:
		result := sa + sb
		e.CPU.WriteReg(in.D, result)
		e.setAddFlags(sa, sb, result)

	case isa.OpSub:
		e.CPU.WriteReg(in.D, sa-sb)

	case isa.OpMul:
		e.CPU.WriteReg(in.D, sa*sb)

	case isa.OpDiv:
		if sb != 0 {
			e.CPU.WriteReg(in.D, sa/sb)
			if in.D != 15 {
				e.CPU.WriteReg(15, sa%sb)
			}
		}
		// sb == 0: silent no-op, not a fatal error.

	case isa.OpCmp:
		e.CPU.ClearFlags()
		e.setCompareFlags(sa, sb)

	case isa.OpCmplt:
		e.CPU.ClearFlags()
		e.CPU.WriteReg(in.D, boolWord(int16(sa) < int16(sb)))

	case isa.OpCmpeq:
		e.CPU.ClearFlags()
		e.CPU.WriteReg(in.D, boolWord(sa == sb))

	case isa.OpCmpgt:
		e.CPU.ClearFlags()
		e.CPU.WriteReg(in.D, boolWord(int16(sa) > int16(sb)))

	case isa.OpInv:
		e.CPU.ClearFlags()
		e.CPU.WriteReg(in.D, ^sa)

	case isa.OpAnd:
		e.CPU.ClearFlags()
		e.CPU.WriteReg(in.D, sa&sb)

	case isa.OpOr:
		e.CPU.ClearFlags()
		e.CPU.WriteReg(in.D, sa|sb)

	case isa.OpXor:
		e.CPU.ClearFlags()
		e.CPU.WriteReg(in.D, sa^sb)

	case isa.OpNop:
		e.CPU.ClearFlags()

	default:
		return true, fmt.Errorf("%w: RRR opcode %#x", ErrFatal, in.Op)
	}
	e.advance(1)
	return false, nil
}

func boolWord(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// setCompareFlags implements cmp's flag semantics: E <-> a==b; G <-> a>b
// (unsigned); g <-> a>b (signed); L <-> a<b (unsigned); l <-> a<b (signed).
// R15 must already be cleared by the caller.
func (e *Engine) setCompareFlags(a, b uint16) {
	e.CPU.SetFlag(isa.FlagEqual, a == b)
	e.CPU.SetFlag(isa.FlagGreaterUnsigned, a > b)
	e.CPU.SetFlag(isa.FlagGreaterSigned, int16(a) > int16(b))
	e.CPU.SetFlag(isa.FlagLessUnsigned, a < b)
	e.CPU.SetFlag(isa.FlagLessSigned, int16(a) < int16(b))
}

// setAddFlags implements add's flag policy: G/g/E/L/l compare the result
// against zero; C/V/v come from the addition itself.
func (e *Engine) setAddFlags(a, b, result uint16) {
	e.CPU.SetFlag(isa.FlagEqual, result == 0)
	e.CPU.SetFlag(isa.FlagGreaterUnsigned, result != 0)
	e.CPU.SetFlag(isa.FlagGreaterSigned, int16(result) > 0)
	e.CPU.SetFlag(isa.FlagLessUnsigned, false)
	e.CPU.SetFlag(isa.FlagLessSigned, int16(result) < 0)

	sum32 := uint32(a) + uint32(b)
	carry := sum32 > 0xFFFF
	e.CPU.SetFlag(isa.FlagCarry, carry)
	e.CPU.SetFlag(isa.FlagOverflowUnsigned, carry)

	sameSign := (a>>15) == (b>>15)
	signedOverflow := sameSign && (a>>15) != (result>>15)
	e.CPU.SetFlag(isa.FlagOverflowSigned, signedOverflow)
}

// execTrap dispatches on the value in R[d].
func (e *Engine) execTrap(in isa.Instruction) (halted bool, err error) {
	code := e.CPU.ReadReg(in.D)
	switch code {
	case isa.TrapHalt:
		return true, nil

	case isa.TrapWrite:
		addr := e.CPU.ReadReg(in.SA)
		count := e.CPU.ReadReg(in.SB)
		for i := uint16(0); i < count; i++ {
			w := e.Mem.ReadWord(addr + i)
			if e.Out != nil {
				_, _ = e.Out.Write([]byte{byte(w)})
			}
		}
		return false, nil

	default:
		return true, fmt.Errorf("%w: unknown trap code %d", ErrFatal, code)
	}
}
