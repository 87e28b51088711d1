// Package observer defines the execution engine's single outbound callback
// channel: a synchronous, borrowed-view event stream consumed by the tracer
// and the debugger.
package observer

import (
	"github.com/b-irb/sigma16-emulator/cpu"
	"github.com/b-irb/sigma16-emulator/isa"
	"github.com/b-irb/sigma16-emulator/memory"
)

// Kind distinguishes the three event shapes the engine emits.
type Kind int

const (
	ExecStart Kind = iota // once, before the first dispatch
	Inst                  // once per instruction, after decode and before mutation
	ExecEnd               // once, before a successful return
)

// Event carries the decoded instruction for Inst events; Instruction is the
// zero value for ExecStart/ExecEnd.
type Event struct {
	Kind        Kind
	Instruction isa.Instruction
}

// View is the engine state lent to a subscriber for the duration of one
// OnEvent call. The subscriber must not retain it past the call returning;
// the engine re-reads state afterward rather than caching anything observed
// through View.
type View struct {
	CPU *cpu.State
	Mem *memory.Memory
}

// Subscriber is the engine's single observation port. OnEvent is called
// synchronously, on the engine's own goroutine; it may block (e.g. the
// debugger reading a terminal line) and may mutate state through view.
type Subscriber interface {
	OnEvent(view *View, ev Event)
}

// Multi fans one event stream out to an ordered list of subscribers, so a
// tracer and a debugger can both observe the same run.
type Multi []Subscriber

// OnEvent delivers ev to every subscriber in order.
func (m Multi) OnEvent(view *View, ev Event) {
	for _, s := range m {
		if s != nil {
			s.OnEvent(view, ev)
		}
	}
}
