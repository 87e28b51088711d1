// Package debugger implements the interactive REPL subscriber: a step
// counter, a trace-enable toggle, and a breakpoint list, driven by a
// peterh/liner prompt loop.
package debugger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/b-irb/sigma16-emulator/isa"
	"github.com/b-irb/sigma16-emulator/observer"
	"github.com/b-irb/sigma16-emulator/trace"
)

// Breakpoint records an address at which the debugger forces a prompt.
type Breakpoint struct {
	ID   int
	Addr uint16
}

// Debugger owns the step counter (-1 means unlimited), the trace-enable
// toggle, and the breakpoint list. It implements observer.Subscriber.
type Debugger struct {
	Out io.Writer

	steps      int // remaining steps before the next forced prompt; -1 = unlimited
	tracing    bool
	breakpoints []Breakpoint
	nextBPID   int

	tracer *trace.Tracer
	line   *liner.State
	view   *observer.View // valid only for the duration of the current OnEvent call
}

// New builds a Debugger that starts in single-step mode (one prompt per
// instruction) with tracing off, prompting on its own *liner.State.
func New(out io.Writer) *Debugger {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	d := &Debugger{Out: out, steps: 1, tracer: trace.New(out), line: l}
	l.SetCompleter(func(line string) []string { return completions(line) })
	return d
}

// Close releases the underlying line editor; callers should defer it after
// New.
func (d *Debugger) Close() error {
	return d.line.Close()
}

var commandNames = []string{"n", "c", "b", "i", "o", "t", "d", "m", "?", "e"}

func completions(line string) []string {
	var out []string
	for _, c := range commandNames {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

// OnEvent implements observer.Subscriber.
func (d *Debugger) OnEvent(view *observer.View, ev observer.Event) {
	d.view = view
	defer func() { d.view = nil }()

	switch ev.Kind {
	case observer.ExecStart, observer.ExecEnd:
		d.prompt()
		return
	}

	if d.tracing {
		d.tracer.OnEvent(view, ev)
	}

	forcePrompt := false
	if d.steps > 0 {
		d.steps--
		if d.steps == 0 {
			forcePrompt = true
		}
	}
	for _, bp := range d.breakpoints {
		if bp.Addr == view.CPU.PC {
			forcePrompt = true
			break
		}
	}
	if forcePrompt {
		d.prompt()
	}
}

// prompt runs the REPL until a command hands control back to the engine
// (n or c), or the line editor reports EOF/interrupt.
func (d *Debugger) prompt() {
	for {
		input, err := d.line.Prompt("sigma16> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, "error reading command:", err)
			return
		}
		d.line.AppendHistory(input)

		resume, err := d.dispatch(input)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if resume {
			return
		}
	}
}

// dispatch executes one command line. resume reports whether control
// should return to the engine (n, c); every other command loops back to
// the prompt.
func (d *Debugger) dispatch(line string) (resume bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "n":
		n := 1
		if len(args) > 0 {
			n, err = parseInt(args[0])
			if err != nil {
				return false, err
			}
		}
		d.steps = n
		return true, nil

	case "c":
		d.steps = -1
		return true, nil

	case "b":
		if len(args) != 1 {
			return false, fmt.Errorf("b: want one address argument")
		}
		addr, err := parseInt(args[0])
		if err != nil {
			return false, err
		}
		d.nextBPID++
		d.breakpoints = append(d.breakpoints, Breakpoint{ID: d.nextBPID, Addr: uint16(addr)})
		fmt.Fprintf(d.Out, "breakpoint %d at %#04x\n", d.nextBPID, uint16(addr))
		return false, nil

	case "i":
		if len(args) != 2 {
			return false, fmt.Errorf("i: want REG and VAL arguments")
		}
		reg, err := parseInt(args[0])
		if err != nil {
			return false, err
		}
		val, err := parseInt(args[1])
		if err != nil {
			return false, err
		}
		d.view.CPU.WriteReg(uint8(reg), uint16(val))
		return false, nil

	case "o":
		if len(args) != 1 {
			return false, fmt.Errorf("o: want one REG argument")
		}
		reg, err := parseInt(args[0])
		if err != nil {
			return false, err
		}
		fmt.Fprintf(d.Out, "R%d = %#04x\n", reg, d.view.CPU.ReadReg(uint8(reg)))
		return false, nil

	case "t":
		d.tracing = !d.tracing
		fmt.Fprintf(d.Out, "tracing %s\n", onOff(d.tracing))
		return false, nil

	case "d":
		d.dumpState()
		return false, nil

	case "m":
		end, start := 0x100, 0
		var perr error
		if len(args) > 0 {
			end, perr = parseInt(args[0])
			if perr != nil {
				return false, perr
			}
		}
		if len(args) > 1 {
			start, perr = parseInt(args[1])
			if perr != nil {
				return false, perr
			}
		}
		d.dumpMemory(uint16(start), uint16(end))
		return false, nil

	case "?":
		d.help()
		return false, nil

	case "e":
		os.Exit(0)
		return false, nil

	default:
		return false, fmt.Errorf("unknown command: %s", cmd)
	}
}

func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed integer %q: %w", s, err)
	}
	return int(n), nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (d *Debugger) dumpState() {
	cpu := d.view.CPU
	fmt.Fprintf(d.Out, "PC=%#04x\n", cpu.PC)
	for i := 0; i < 16; i += 4 {
		fmt.Fprintf(d.Out, "R%-2d=%#04x  R%-2d=%#04x  R%-2d=%#04x  R%-2d=%#04x\n",
			i, cpu.Regs[i], i+1, cpu.Regs[i+1], i+2, cpu.Regs[i+2], i+3, cpu.Regs[i+3])
	}
	f := cpu.Flags()
	fmt.Fprint(d.Out, "flags:")
	for i, v := range f {
		if v {
			fmt.Fprintf(d.Out, " %s", isa.Flag(i).Letter())
		}
	}
	fmt.Fprintln(d.Out)
}

func (d *Debugger) dumpMemory(start, end uint16) {
	for addr := start; addr < end; addr++ {
		if (addr-start)%8 == 0 {
			if addr != start {
				fmt.Fprintln(d.Out)
			}
			fmt.Fprintf(d.Out, "%#04x:", addr)
		}
		fmt.Fprintf(d.Out, " %04x", d.view.Mem.ReadWord(addr))
	}
	fmt.Fprintln(d.Out)
}

func (d *Debugger) help() {
	fmt.Fprintln(d.Out, `n [N=1]        run N steps, then prompt
c              run until trap 0 or breakpoint
b ADDR         append breakpoint
i REG VAL      write VAL to R[REG]
o REG          print R[REG]
t              toggle tracing
d              dump CPU state
m [END] [START]  dump memory [START, END)
?              this help
e              exit process`)
}
