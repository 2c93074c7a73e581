// exa_parser.go - EXA script text to instruction sequence

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░           ░       ░  ░           ░    ░  ░

(c) 2024 - 2025 Zayn Otley
https://github.com/IntuitionAmiga/ExaEngine
License: GPLv3 or later
*/

/*
exa_parser.go - Script Parser

Turns EXA assembly text into the instruction sequence the VM consumes.
Keywords are case-insensitive and register names come out lowercased.
The preprocessor strips surrounding whitespace, ';' comments, NOTE
comments (case-insensitive, from the word to end of line) and blank
lines, and expands @REP N ... @END blocks, substituting each
@{start,step} with start + step*i for repetition i.

Validation: literals must lie in [-9999, 9999] and an instruction may
reference the M register at most once.
*/

package main

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseScript parses a whole script into instructions, MARK and DATA
// pseudo-instructions included; spawn-time extraction removes those.
func ParseScript(text string) ([]Instruction, error) {
	lines, err := preprocessScript(text)
	if err != nil {
		return nil, err
	}

	insts := make([]Instruction, 0, len(lines))
	for _, line := range lines {
		inst, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", line, err)
		}
		insts = append(insts, inst)
	}

	for i := range insts {
		if err := validateOperands(&insts[i]); err != nil {
			return nil, err
		}
	}
	return insts, nil
}

func preprocessScript(text string) ([]string, error) {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := raw
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		if idx := strings.Index(strings.ToLower(line), "note"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return expandRepBlocks(lines)
}

func expandRepBlocks(lines []string) ([]string, error) {
	var out []string
	for i := 0; i < len(lines); i++ {
		lower := strings.ToLower(lines[i])
		if !strings.HasPrefix(lower, "@rep") {
			if strings.HasPrefix(lower, "@end") {
				return nil, fmt.Errorf("@end without matching @rep")
			}
			out = append(out, lines[i])
			continue
		}

		fields := strings.Fields(lines[i])
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed @rep")
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil || count < 0 {
			return nil, fmt.Errorf("malformed @rep count %q", fields[1])
		}

		end := -1
		for j := i + 1; j < len(lines); j++ {
			if strings.HasPrefix(strings.ToLower(lines[j]), "@end") {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, fmt.Errorf("@rep without matching @end")
		}

		for rep := 0; rep < count; rep++ {
			for _, body := range lines[i+1 : end] {
				expanded, err := substituteRepMacros(body, rep)
				if err != nil {
					return nil, err
				}
				out = append(out, expanded)
			}
		}
		i = end
	}
	return out, nil
}

// substituteRepMacros rewrites every @{start,step} in the line for the
// given repetition index.
func substituteRepMacros(line string, rep int) (string, error) {
	for {
		open := strings.Index(line, "@{")
		if open < 0 {
			return line, nil
		}
		close := strings.Index(line[open:], "}")
		if close < 0 {
			return "", fmt.Errorf("unterminated @{...} in %q", line)
		}
		close += open

		parts := strings.Split(line[open+2:close], ",")
		if len(parts) != 2 {
			return "", fmt.Errorf("malformed @{...} in %q", line)
		}
		start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		step, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return "", fmt.Errorf("malformed @{...} in %q", line)
		}

		line = line[:open] + strconv.Itoa(start+step*rep) + line[close+1:]
	}
}

func parseLine(line string) (Instruction, error) {
	fields := strings.Fields(line)
	op := strings.ToLower(fields[0])

	switch op {
	case "copy":
		if err := wantOperands(fields, 2); err != nil {
			return Instruction{}, err
		}
		a, err := parseTarget(fields[1])
		if err != nil {
			return Instruction{}, err
		}
		dst, err := parseTarget(fields[2])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OP_COPY, A: a, Dst: dst}, nil

	case "addi", "subi", "muli", "divi", "modi", "swiz", "rand":
		if err := wantOperands(fields, 3); err != nil {
			return Instruction{}, err
		}
		a, err := parseTarget(fields[1])
		if err != nil {
			return Instruction{}, err
		}
		b, err := parseTarget(fields[2])
		if err != nil {
			return Instruction{}, err
		}
		dst, err := parseRegisterTarget(fields[3])
		if err != nil {
			return Instruction{}, err
		}
		ops := map[string]int{
			"addi": OP_ADDI, "subi": OP_SUBI, "muli": OP_MULI,
			"divi": OP_DIVI, "modi": OP_MODI, "swiz": OP_SWIZ,
			"rand": OP_RAND,
		}
		return Instruction{Op: ops[op], A: a, B: b, Dst: dst}, nil

	case "test":
		if len(fields) == 2 {
			switch strings.ToLower(fields[1]) {
			case "eof":
				return Instruction{Op: OP_TEST_EOF}, nil
			case "mrd":
				return Instruction{Op: OP_TEST_MRD}, nil
			}
			return Instruction{}, fmt.Errorf("unknown test form")
		}
		if err := wantOperands(fields, 3); err != nil {
			return Instruction{}, err
		}
		a, err := parseTarget(fields[1])
		if err != nil {
			return Instruction{}, err
		}
		var comp int
		switch fields[2] {
		case "=":
			comp = COMP_EQUAL
		case ">":
			comp = COMP_GREATER
		case "<":
			comp = COMP_LESSER
		default:
			return Instruction{}, fmt.Errorf("unknown comparator %q", fields[2])
		}
		b, err := parseTarget(fields[3])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OP_TEST, A: a, Comp: comp, B: b}, nil

	case "jump", "tjmp", "fjmp", "mark", "repl":
		if err := wantOperands(fields, 1); err != nil {
			return Instruction{}, err
		}
		ops := map[string]int{
			"jump": OP_JUMP, "tjmp": OP_TJMP, "fjmp": OP_FJMP,
			"mark": OP_MARK, "repl": OP_REPL,
		}
		return Instruction{Op: ops[op], Label: strings.ToLower(fields[1])}, nil

	case "link", "grab", "seek":
		if err := wantOperands(fields, 1); err != nil {
			return Instruction{}, err
		}
		a, err := parseTarget(fields[1])
		if err != nil {
			return Instruction{}, err
		}
		ops := map[string]int{"link": OP_LINK, "grab": OP_GRAB, "seek": OP_SEEK}
		return Instruction{Op: ops[op], A: a}, nil

	case "host", "file":
		if err := wantOperands(fields, 1); err != nil {
			return Instruction{}, err
		}
		dst, err := parseRegisterTarget(fields[1])
		if err != nil {
			return Instruction{}, err
		}
		ops := map[string]int{"host": OP_HOST, "file": OP_FILE}
		return Instruction{Op: ops[op], Dst: dst}, nil

	case "void":
		if err := wantOperands(fields, 1); err != nil {
			return Instruction{}, err
		}
		switch strings.ToLower(fields[1]) {
		case "m":
			return Instruction{Op: OP_VOID_M}, nil
		case "f":
			return Instruction{Op: OP_VOID_F}, nil
		}
		return Instruction{}, fmt.Errorf("void expects m or f")

	case "data":
		if len(fields) < 2 {
			return Instruction{}, fmt.Errorf("data expects at least one value")
		}
		values := make([]int, 0, len(fields)-1)
		for _, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return Instruction{}, fmt.Errorf("malformed data value %q", f)
			}
			if v < LITERAL_MIN || v > LITERAL_MAX {
				return Instruction{}, fmt.Errorf("literal out of range")
			}
			values = append(values, v)
		}
		return Instruction{Op: OP_DATA, Data: values}, nil

	case "halt", "kill", "mode", "make", "drop", "wipe", "noop", "wait":
		if err := wantOperands(fields, 0); err != nil {
			return Instruction{}, err
		}
		ops := map[string]int{
			"halt": OP_HALT, "kill": OP_KILL, "mode": OP_MODE,
			"make": OP_MAKE, "drop": OP_DROP, "wipe": OP_WIPE,
			"noop": OP_NOOP, "wait": OP_WAIT,
		}
		return Instruction{Op: ops[op]}, nil
	}

	return Instruction{}, fmt.Errorf("unknown instruction %q", op)
}

func wantOperands(fields []string, n int) error {
	if len(fields) != n+1 {
		return fmt.Errorf("%s expects %d operands", strings.ToLower(fields[0]), n)
	}
	return nil
}

func parseTarget(token string) (Target, error) {
	if v, err := strconv.Atoi(token); err == nil {
		if v < LITERAL_MIN || v > LITERAL_MAX {
			return Target{}, fmt.Errorf("literal out of range")
		}
		return LiteralTarget(v), nil
	}
	return parseRegisterTarget(token)
}

func parseRegisterTarget(token string) (Target, error) {
	if token == "" || token == "#" {
		return Target{}, fmt.Errorf("malformed register %q", token)
	}
	for i, c := range token {
		if i == 0 {
			if c != '#' && !isLetter(c) {
				return Target{}, fmt.Errorf("malformed register %q", token)
			}
			continue
		}
		if !isLetter(c) && (c < '0' || c > '9') {
			return Target{}, fmt.Errorf("malformed register %q", token)
		}
	}
	return RegisterTarget(strings.ToLower(token)), nil
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// validateOperands enforces the per-instruction M budget.
func validateOperands(inst *Instruction) error {
	ms := 0
	for _, t := range inst.targets() {
		if t.Kind == TARGET_REGISTER && t.Register == "m" {
			ms++
		}
	}
	if ms > 1 {
		return fmt.Errorf("cannot reference M register more than once in one instruction")
	}
	return nil
}
