// Package engine implements the Sigma16 threaded-dispatch execution loop:
// decode, emit an observation event, mutate registers/memory/flags, advance
// PC.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/b-irb/sigma16-emulator/cpu"
	"github.com/b-irb/sigma16-emulator/decode"
	"github.com/b-irb/sigma16-emulator/isa"
	"github.com/b-irb/sigma16-emulator/memory"
	"github.com/b-irb/sigma16-emulator/observer"
)

// ErrFatal wraps an unrecoverable decode or trap error: invalid opcode,
// invalid RX sub-opcode, or an unknown trap selector.
var ErrFatal = errors.New("engine: fatal error")

// Engine owns the single-threaded dispatch loop over a CPU and Memory.
type Engine struct {
	Mem *memory.Memory
	CPU *cpu.State
	Out io.Writer // sink for the trap 2 string-write handler

	Sub observer.Subscriber // optional; nil is a valid "no observer" value
}

// New builds an Engine ready to execute from cpu.PC (normally 0).
func New(mem *memory.Memory, state *cpu.State, out io.Writer) *Engine {
	return &Engine{Mem: mem, CPU: state, Out: out}
}

func (e *Engine) emit(ev observer.Event) {
	if e.Sub == nil {
		return
	}
	e.Sub.OnEvent(&observer.View{CPU: e.CPU, Mem: e.Mem}, ev)
}

// Run executes instructions until trap 0 (halt) or a fatal error: trap 0
// returns nil, anything undecodable returns an error wrapping ErrFatal.
func (e *Engine) Run() error {
	e.emit(observer.Event{Kind: observer.ExecStart})
	for {
		halted, err := e.Step()
		if err != nil {
			return err
		}
		if halted {
			e.emit(observer.Event{Kind: observer.ExecEnd})
			return nil
		}
	}
}

// Step decodes and executes exactly one instruction. It reports halted=true
// when the instruction was trap 0. Step emits one Inst event for an
// instruction that decodes (none when decoding fails); it does not emit
// ExecStart/ExecEnd (Run does, at the boundaries of a full run).
func (e *Engine) Step() (halted bool, err error) {
	in, derr := decode.Decode(e.Mem, e.CPU.PC)
	if derr != nil {
		e.CPU.Halted = true
		e.CPU.LastError = fmt.Errorf("%w: %v", ErrFatal, derr)
		return true, e.CPU.LastError
	}
	e.CPU.IR = in
	e.emit(observer.Event{Kind: observer.Inst, Instruction: in})

	halted, err = e.dispatch(in)
	if err != nil {
		e.CPU.Halted = true
		e.CPU.LastError = err
		return true, err
	}
	if halted {
		e.CPU.Halted = true
	}
	return halted, nil
}

// advance moves PC past a non-branching instruction of the given word count.
func (e *Engine) advance(words uint16) {
	e.CPU.PC += words
}

func (e *Engine) dispatch(in isa.Instruction) (halted bool, err error) {
	switch in.Format {
	case isa.FormatRRR:
		return e.execRRR(in)
	case isa.FormatRX:
		return e.execRX(in)
	case isa.FormatEXP0:
		return e.execEXP0(in)
	default:
		return true, fmt.Errorf("%w: unknown instruction format %v", ErrFatal, in.Format)
	}
}
