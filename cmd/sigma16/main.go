// Command sigma16 loads a flat word image and executes it, optionally under
// a trace and/or the interactive debugger.
//
//	sigma16 [-t] [-d] [-o logfile] <image>
package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/b-irb/sigma16-emulator/cpu"
	"github.com/b-irb/sigma16-emulator/debugger"
	"github.com/b-irb/sigma16-emulator/engine"
	"github.com/b-irb/sigma16-emulator/loader"
	"github.com/b-irb/sigma16-emulator/observer"
	"github.com/b-irb/sigma16-emulator/trace"
	"github.com/b-irb/sigma16-emulator/util/logger"
)

func main() {
	optTrace := getopt.BoolLong("trace", 't', "Enable instruction tracing")
	optDebug := getopt.BoolLong("debug", 'd', "Attach the interactive debugger")
	optLogFile := getopt.StringLong("log", 'o', "", "Structured log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) != 1 {
		getopt.Usage()
		os.Exit(1)
	}
	imagePath := args[0]

	var logFile *os.File
	if *optLogFile != "" {
		var err error
		logFile, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("failed to create log file", "path", *optLogFile, "error", err)
			os.Exit(1)
		}
	}
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	log := slog.New(logger.NewHandler(logFile, &slog.HandlerOptions{Level: level}, false))
	slog.SetDefault(log)

	log.Info("sigma16 starting", "image", imagePath)

	mem, err := loader.LoadImage(imagePath)
	if err != nil {
		log.Error("failed to load image", "error", err)
		os.Exit(1)
	}

	state := &cpu.State{}
	eng := engine.New(mem, state, os.Stdout)

	var subs observer.Multi
	if *optTrace {
		subs = append(subs, trace.New(os.Stdout))
	}
	if *optDebug {
		dbg := debugger.New(os.Stdout)
		defer dbg.Close()
		subs = append(subs, dbg)
	}
	if len(subs) > 0 {
		eng.Sub = subs
	}

	if err := eng.Run(); err != nil {
		log.Error("execution failed", "error", err)
		os.Exit(1)
	}

	log.Info("sigma16 halted", "pc", state.PC)
}
