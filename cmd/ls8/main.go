// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

// logger is the verbose-mode diagnostic logger, if any.
var logger *zap.Logger

// logFatalf reports a fatal error and exits.
var logFatalf = log.Fatalf

// fatalf flushes buffered log output before exiting.
func fatalf(format string, args ...any) {
	if logger != nil {
		_ = logger.Sync()
	}
	logFatalf(format, args...)
}

// programPath adds the default extension to a program name without one.
func programPath(name string, assemble bool) string {
	if len(filepath.Ext(name)) != 0 {
		return name
	}

	if assemble {
		return name + ".asm"
	}

	return name + ".ls8"
}

func main() {
	var assemble bool
	var listing bool
	var skip bool
	var verbose bool

	flag.BoolVar(&assemble, "a", false, "Assemble mnemonic source")
	flag.BoolVar(&listing, "l", false, "Print the .ls8 listing, do not execute")
	flag.BoolVar(&skip, "k", false, "Skip invalid opcodes instead of halting")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		fatalf("%v: usage: %v [-a] [-l] [-k] [-v] PROGRAM", os.Args[0], os.Args[0])
	}

	name := flag.Arg(0)

	inf, err := os.Open(programPath(name, assemble))
	if errors.Is(err, fs.ErrNotExist) {
		fatalf("%v: %v file was not found", os.Args[0], name)
	}
	if err != nil {
		fatalf("%v: %v", name, err)
	}
	defer inf.Close()

	opts := []cpu.CpuOpt{cpu.SkipInvalidOpt(skip)}
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			fatalf("%v: %v", os.Args[0], err)
		}
		defer logger.Sync()
		opts = append(opts, cpu.LoggerOpt(logger))
	}

	emu := emulator.NewEmulator(opts...)
	emu.Verbose = verbose

	var prog *cpu.Program
	if assemble {
		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
	} else {
		prog, err = cpu.Load(inf)
	}
	if err != nil {
		fatalf("%v: %v", name, err)
	}

	if listing {
		err = prog.Listing(os.Stdout)
		if err != nil {
			fatalf("%v: %v", name, err)
		}
		return
	}

	emu.Program = prog
	emu.Cpu.Output = os.Stdout
	emu.Trace = os.Stderr

	err = emu.Reset()
	if err != nil {
		fatalf("%v: %v", name, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx)
	if err != nil {
		fatalf("%v: %v", name, err)
	}
}
