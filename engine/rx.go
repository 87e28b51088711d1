package engine

import (
	"fmt"

	"github.com/b-irb/sigma16-emulator/isa"
)

// execRX dispatches one 32-bit register-plus-displacement instruction.
// Non-branching RX forms advance PC by two words; branches that are taken
// set PC to the effective address instead.
func (e *Engine) execRX(in isa.Instruction) (halted bool, err error) {
	eaddr := e.CPU.ReadReg(in.SA) + in.Disp
	e.CPU.ADR = eaddr

	switch in.SubOp {
	case isa.RXLea:
		e.CPU.WriteReg(in.D, eaddr)
		e.advance(2)

	case isa.RXLoad:
		v := e.Mem.ReadWord(eaddr)
		e.CPU.WriteReg(in.D, v)
		e.CPU.DAT = v
		e.advance(2)

	case isa.RXStore:
		e.Mem.WriteWord(eaddr, e.CPU.ReadReg(in.D))
		e.advance(2)

	case isa.RXJump:
		e.CPU.PC = eaddr

	case isa.RXJumpc0:
		if e.flagAt(in.D) {
			e.advance(2)
		} else {
			e.CPU.PC = eaddr
		}

	case isa.RXJumpc1:
		if e.flagAt(in.D) {
			e.CPU.PC = eaddr
		} else {
			e.advance(2)
		}

	case isa.RXJumpf:
		if e.CPU.ReadReg(in.D) == 0 {
			e.CPU.PC = eaddr
		} else {
			e.advance(2)
		}

	case isa.RXJumpt:
		if e.CPU.ReadReg(in.D) != 0 {
			e.CPU.PC = eaddr
		} else {
			e.advance(2)
		}

	case isa.RXJal:
		ret := e.CPU.PC + 2
		e.CPU.PC = eaddr
		e.CPU.WriteReg(in.D, ret)

	default:
		return true, fmt.Errorf("%w: RX sub-opcode %#x", ErrFatal, in.SubOp)
	}
	return false, nil
}

// flagAt reads the condition-code bit at flag index d: bit(d) = (R15 >> (15-d)) & 1.
func (e *Engine) flagAt(d uint8) bool {
	return e.CPU.Flag(isa.Flag(d))
}

// execEXP0 dispatches the single in-scope EXP0 sub-operation, rfi, which
// advances PC by two words and has no other effect.
func (e *Engine) execEXP0(in isa.Instruction) (halted bool, err error) {
	switch in.SubOp {
	case isa.EXP0Rfi:
		e.advance(2)
		return false, nil
	default:
		return true, fmt.Errorf("%w: EXP sub-operation %#x", ErrFatal, in.SubOp)
	}
}
