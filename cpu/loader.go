// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"maps"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Loader reads LS-8 program text.
//
// Each line holds one value, written as a binary literal. Text after '#'
// is a comment, and blank lines are ignored. A line of the form $(expr)
// is evaluated at load time, with the machine equates (LDI, R0, SP, ...)
// and any predefines in scope.
type Loader struct {
	Verbose bool // If set, verbosely logs the loader actions.
	Strict  bool // If set, a line that is not a value is an error.

	predefine map[string]string
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (ld *Loader) Predefine(equ string, value string) {
	if ld.predefine == nil {
		ld.predefine = map[string]string{equ: value}
	} else {
		ld.predefine[equ] = value
	}
}

// valueOf returns the value of a binary literal.
// An optional 0b prefix and '_' digit separators are allowed.
func (ld *Loader) valueOf(word string) (value uint64, err error) {
	digits := word
	if len(digits) > 2 && (digits[:2] == "0b" || digits[:2] == "0B") {
		digits = digits[2:]
	}
	digits = strings.ReplaceAll(digits, "_", "")

	value, err = strconv.ParseUint(digits, 2, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does load-time $(...) evaluations.
func (ld *Loader) parenEval(expr string) (value uint64, err error) {
	thread := starlark.Thread{Name: "ls8"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range ld.Equate {
		var v64 int64
		v64, err = strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint64(st_int64)
	return
}

// parseLine returns the value of a comment-free, trimmed line.
func (ld *Loader) parseLine(line string) (value uint64, err error) {
	if strings.HasPrefix(line, "$(") && strings.HasSuffix(line, ")") {
		return ld.parenEval(line[2 : len(line)-1])
	}

	return ld.valueOf(line)
}

// Parse parses an input stream into a Program, with values placed at
// consecutive addresses starting at 0.
func (ld *Loader) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	ld.Equate = maps.Clone(_cpu_defines)
	for attr, val := range ld.predefine {
		ld.Equate[attr] = val
	}

	prog = &Program{}

	var address int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if ld.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.SplitN(text, "#", 2)
		line = strings.TrimSpace(text_comment[0])
		if len(line) == 0 {
			continue
		}

		var value uint64
		value, err = ld.parseLine(line)
		if err != nil {
			if ld.Strict {
				return
			}
			if ld.Verbose {
				log.Printf("%v: skipped: %v", lineno, err)
			}
			err = nil
			continue
		}

		prog.Lines = append(prog.Lines, Line{
			LineNo:  lineno,
			Address: address,
			Text:    line,
			Value:   uint8(value & 0xff),
		})
		address++
	}

	line = ""
	err = scanner.Err()

	return
}
