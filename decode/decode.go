// Package decode maps the word at PC to a fully decoded isa.Instruction.
// It never advances PC; that is the execution engine's job.
package decode

import (
	"errors"
	"fmt"

	"github.com/b-irb/sigma16-emulator/isa"
	"github.com/b-irb/sigma16-emulator/memory"
)

// ErrUnknownOpcode is returned for an RRR opcode or RX sub-opcode with no
// handler, or an EXP sub-operation other than rfi.
var ErrUnknownOpcode = errors.New("decode: unknown opcode")

// Decode fetches the word at pc and splits it into an isa.Instruction. RX
// and EXP0 forms additionally fetch the word at pc+1.
func Decode(mem *memory.Memory, pc uint16) (isa.Instruction, error) {
	w := mem.ReadWord(pc)
	op := uint8(w>>12) & 0xF
	d := uint8(w>>8) & 0xF
	sa := uint8(w>>4) & 0xF
	sb := uint8(w) & 0xF

	switch {
	case op < isa.OpExp:
		if _, ok := isa.RRRMnemonic[op]; !ok {
			return isa.Instruction{}, fmt.Errorf("%w: RRR opcode %#x", ErrUnknownOpcode, op)
		}
		return isa.Instruction{
			Format: isa.FormatRRR,
			Op:     op,
			D:      d,
			SA:     sa,
			SB:     sb,
			Words:  1,
		}, nil

	case op == isa.OpExp:
		ab := uint8(mem.ReadWord(pc + 1))
		if _, ok := isa.EXP0Mnemonic[ab]; !ok {
			return isa.Instruction{}, fmt.Errorf("%w: EXP sub-operation %#x", ErrUnknownOpcode, ab)
		}
		return isa.Instruction{
			Format: isa.FormatEXP0,
			Op:     op,
			D:      d,
			SubOp:  ab,
			Words:  2,
		}, nil

	default: // op == isa.OpRX
		disp := mem.ReadWord(pc + 1)
		if _, ok := isa.RXMnemonic[sb]; !ok {
			return isa.Instruction{}, fmt.Errorf("%w: RX sub-opcode %#x", ErrUnknownOpcode, sb)
		}
		return isa.Instruction{
			Format: isa.FormatRX,
			Op:     op,
			D:      d,
			SA:     sa,
			SB:     sb,
			Disp:   disp,
			SubOp:  sb,
			Words:  2,
		}, nil
	}
}
