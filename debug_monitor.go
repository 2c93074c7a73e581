// debug_monitor.go - Interactive machine monitor

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
debug_monitor.go - Machine Monitor

A raw-terminal stepper over a VM. Single keystrokes drive it:

  space  advance one cycle and dump the machine
  f      advance one frame's cycle budget
  d      dump the machine (hosts, EXAs, statuses, program positions)
  r      draw the framebuffer as ASCII
  q      quit

Intended for poking at scripts without a display attached.
*/

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const MONITOR_PIXEL_GLYPH = '#'

type ExaMonitor struct {
	vm *VM
}

func NewExaMonitor(vm *VM) *ExaMonitor {
	return &ExaMonitor{vm: vm}
}

// Run takes the terminal raw and loops on keystrokes until 'q'.
func (m *ExaMonitor) Run() error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("monitor needs a terminal: %w", err)
	}
	defer term.Restore(fd, oldState)

	m.print("monitor ready: space=cycle f=frame d=dump r=render q=quit\n")
	m.dump()

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return err
		}
		switch buf[0] {
		case ' ':
			m.vm.RunCycle()
			m.dump()
		case 'f':
			m.vm.RunForFrame()
			m.print("ran %d cycles\n", m.vm.CyclesForFrame())
			m.dump()
		case 'd':
			m.dump()
		case 'r':
			m.render()
		case 'q', 3: // q or ctrl-c
			return nil
		}
	}
}

// print writes with the CR/LF discipline raw mode demands.
func (m *ExaMonitor) print(format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)
	for _, line := range splitKeepEmpty(s) {
		fmt.Fprint(os.Stdout, line, "\r\n")
	}
}

func (m *ExaMonitor) dump() {
	m.print("%s\n", m.vm.String())
}

func (m *ExaMonitor) render() {
	framebuffer := m.vm.Render()
	for y := 0; y < FRAMEBUFFER_HEIGHT; y++ {
		line := make([]byte, FRAMEBUFFER_WIDTH)
		for x := 0; x < FRAMEBUFFER_WIDTH; x++ {
			if framebuffer[y*FRAMEBUFFER_WIDTH+x] {
				line[x] = MONITOR_PIXEL_GLYPH
			} else {
				line[x] = ' '
			}
		}
		m.print("%s\n", string(line))
	}
}

func splitKeepEmpty(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
