// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/translate"
)

func main() {
	var size uint
	var strict bool
	var limit int
	var verbose bool
	var lang string
	defines := map[string]string{}

	flag.UintVar(&size, "m", cpu.MEMORY_SIZE, "Memory size, in bytes")
	flag.BoolVar(&strict, "strict", false, "Fail on unknown opcodes and unparseable lines")
	flag.IntVar(&limit, "limit", 0, "Maximum instructions to execute, 0 for no limit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Message language, as a BCP 47 tag (default: system locale)")
	flag.Func("D", "Define NAME=VALUE for $(...) expressions", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return cpu.ErrParseExpression(arg)
		}
		defines[name] = value
		return nil
	})

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: %v [options] program.ls8", os.Args[0], os.Args[0])
	}
	program := flag.Arg(0)

	if len(lang) != 0 {
		err := translate.SetLanguage(lang)
		if err != nil {
			log.Fatalf("%v: -lang %v: %v", os.Args[0], lang, err)
		}
	}

	emu, err := emulator.NewEmulator(size)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.Verbose = verbose
	emu.Strict = strict
	emu.StepLimit = limit
	emu.Tape.Output = os.Stdout
	for name, value := range defines {
		emu.Predefine(name, value)
	}

	inf, err := os.Open(program)
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}
	defer inf.Close()

	err = emu.LoadProgram(inf)
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}
}
