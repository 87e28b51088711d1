package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/b-irb/sigma16-emulator/cpu"
	"github.com/b-irb/sigma16-emulator/isa"
	"github.com/b-irb/sigma16-emulator/memory"
	"github.com/b-irb/sigma16-emulator/observer"
)

func TestOnEventInst(t *testing.T) {
	tests := []struct {
		name string
		in   isa.Instruction
		want string
	}{
		{
			name: "rrr add",
			in:   isa.Instruction{Format: isa.FormatRRR, Op: isa.OpAdd, D: 3, SA: 1, SB: 2, Words: 1},
			want: "add\tR3,R1,R2",
		},
		{
			name: "rrr nop has no operands",
			in:   isa.Instruction{Format: isa.FormatRRR, Op: isa.OpNop, Words: 1},
			want: "nop\t",
		},
		{
			name: "rx lea renders a destination register",
			in:   isa.Instruction{Format: isa.FormatRX, SubOp: isa.RXLea, D: 1, SA: 0, Disp: 5, Words: 2},
			want: "lea\tR1,0005[R0]",
		},
		{
			name: "rx jumpc1 renders a bare flag index",
			in:   isa.Instruction{Format: isa.FormatRX, SubOp: isa.RXJumpc1, D: 5, SA: 0, Disp: 7, Words: 2},
			want: "jumpc1\t5,0007[R0]",
		},
		{
			name: "rx jump has no d at all",
			in:   isa.Instruction{Format: isa.FormatRX, SubOp: isa.RXJump, SA: 2, Disp: 100, Words: 2},
			want: "jump\t0064[R2]",
		},
		{
			name: "exp0 rfi has no operands",
			in:   isa.Instruction{Format: isa.FormatEXP0, SubOp: isa.EXP0Rfi, Words: 2},
			want: "rfi\t",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			tr := New(&out)
			view := &observer.View{CPU: &cpu.State{PC: 0x10}, Mem: &memory.Memory{}}
			tr.OnEvent(view, observer.Event{Kind: observer.Inst, Instruction: tc.in})

			line := strings.TrimRight(out.String(), "\n")
			want := "[0010]\t" + tc.want
			if line != want {
				t.Errorf("line = %q, want %q", line, want)
			}
		})
	}
}

func TestOnEventSentinels(t *testing.T) {
	var out bytes.Buffer
	tr := New(&out)
	view := &observer.View{CPU: &cpu.State{}, Mem: &memory.Memory{}}

	tr.OnEvent(view, observer.Event{Kind: observer.ExecStart})
	tr.OnEvent(view, observer.Event{Kind: observer.ExecEnd})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out.String())
	}
	if lines[0] != "--- exec start ---" || lines[1] != "--- exec end ---" {
		t.Errorf("sentinel lines = %v", lines)
	}
}

func TestOnEventNeverMutatesState(t *testing.T) {
	var out bytes.Buffer
	tr := New(&out)
	state := &cpu.State{PC: 4}
	mem := &memory.Memory{}
	mem.WriteWord(4, 0xC000)
	view := &observer.View{CPU: state, Mem: mem}

	tr.OnEvent(view, observer.Event{Kind: observer.Inst, Instruction: isa.Instruction{Format: isa.FormatRRR, Op: isa.OpNop, Words: 1}})

	if state.PC != 4 {
		t.Errorf("PC = %d, want 4 (tracer must not mutate state)", state.PC)
	}
	if mem.ReadWord(4) != 0xC000 {
		t.Errorf("mem[4] changed, tracer must not mutate state")
	}
}
