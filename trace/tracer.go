// Package trace implements the text tracer: an observer.Subscriber that
// formats each executed instruction as a single line, and nothing else.
package trace

import (
	"fmt"
	"io"

	"github.com/b-irb/sigma16-emulator/isa"
	"github.com/b-irb/sigma16-emulator/observer"
)

// Tracer writes one line per Inst event plus a sentinel line at ExecStart
// and ExecEnd. It never reaches through the observer.View to mutate state.
type Tracer struct {
	Out io.Writer
}

// New returns a Tracer writing to out.
func New(out io.Writer) *Tracer {
	return &Tracer{Out: out}
}

// OnEvent implements observer.Subscriber.
func (tr *Tracer) OnEvent(view *observer.View, ev observer.Event) {
	switch ev.Kind {
	case observer.ExecStart:
		fmt.Fprintln(tr.Out, "--- exec start ---")
	case observer.ExecEnd:
		fmt.Fprintln(tr.Out, "--- exec end ---")
	case observer.Inst:
		fmt.Fprintf(tr.Out, "[%04X]\t%s\t%s\n", view.CPU.PC, ev.Instruction.Mnemonic(), operands(ev.Instruction))
	}
}

// operands renders the operand field of a trace line, per instruction format.
func operands(in isa.Instruction) string {
	switch in.Format {
	case isa.FormatRRR:
		return rrrOperands(in)
	case isa.FormatRX:
		return rxOperands(in)
	case isa.FormatEXP0:
		return ""
	default:
		return ""
	}
}

func rrrOperands(in isa.Instruction) string {
	if in.Op == isa.OpNop {
		return ""
	}
	return fmt.Sprintf("R%d,R%d,R%d", in.D, in.SA, in.SB)
}

// rxOperands renders an RX operand list as Rd,HHHH[Rsa] (register
// destination), d,HHHH[Rsa] (jumpc0/jumpc1's bare flag index), or
// HHHH[Rsa] alone (jump, which has no d at all).
func rxOperands(in isa.Instruction) string {
	addr := fmt.Sprintf("%04X[R%d]", in.Disp, in.SA)
	switch isa.RXDField[in.SubOp] {
	case isa.DRegister:
		return fmt.Sprintf("R%d,%s", in.D, addr)
	case isa.DFlagIndex:
		return fmt.Sprintf("%d,%s", in.D, addr)
	default: // isa.DNone
		return addr
	}
}
