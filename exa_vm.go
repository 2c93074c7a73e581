// exa_vm.go - VM root: topology, registries, RNG seam, rendering

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
exa_vm.go - Virtual Machine Root

The VM owns everything: the host registry, the EXA list, the global
message bus, the file-id counter, the framebuffer and the one RNG that
feeds every randomized decision (runnable shuffle, kill tie-breaks, the
RAND op). Seeding the RNG and disabling the shuffle makes a run bitwise
reproducible.

A VM instance is single-threaded: call its methods from one goroutine at
a time.
*/

package main

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// ------------------------------------------------------------------------------
// Framebuffer Geometry
// ------------------------------------------------------------------------------
const (
	FRAMEBUFFER_WIDTH  = 120
	FRAMEBUFFER_HEIGHT = 100
	FRAMEBUFFER_PIXELS = FRAMEBUFFER_WIDTH * FRAMEBUFFER_HEIGHT
)

// ------------------------------------------------------------------------------
// Frame Rates
// ------------------------------------------------------------------------------
const (
	FRAME_RATE_DEFAULT = 30
	FRAME_RATE_FAST    = 60
)

type VM struct {
	Cycle uint64

	Hosts map[string]*Host
	Exas  []*Exa

	bus         *MessageBus
	fileCounter int

	rng     *rand.Rand
	shuffle bool

	frameRate int

	Redshift *RedshiftEnvironment
	audio    *AudioChip

	framebuffer [FRAMEBUFFER_PIXELS]bool
	audioBuffer []int16
}

// NewVM builds a bare VM: no hosts, no profile hardware. The embedder
// adds hosts and links and spawns EXAs.
func NewVM() *VM {
	return &VM{
		Hosts:       make(map[string]*Host),
		bus:         NewMessageBus(),
		fileCounter: FILE_ID_START,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		shuffle:     true,
		frameRate:   FRAME_RATE_DEFAULT,
	}
}

// Seed re-seeds the VM RNG. With the shuffle disabled this pins every
// randomized decision for reproducible runs.
func (vm *VM) Seed(seed int64) {
	vm.rng = rand.New(rand.NewSource(seed))
}

// SetShuffle controls the per-cycle shuffle of the runnable list, the
// only source of cross-run ordering nondeterminism.
func (vm *VM) SetShuffle(enabled bool) {
	vm.shuffle = enabled
}

// SetFrameRate selects 30 or 60 frames per second; this only sizes the
// audio frame.
func (vm *VM) SetFrameRate(rate int) {
	vm.frameRate = rate
}

func (vm *VM) AddHost(h *Host) {
	vm.Hosts[h.Name] = h
}

// AddLink wires a directed link keyed by id from one host to another.
func (vm *VM) AddLink(id int, from, to *Host) {
	from.Links[id] = &HostLink{ToHost: to}
}

func (vm *VM) RegisterExa(e *Exa) {
	vm.Exas = append(vm.Exas, e)
}

// GetExa resolves a living EXA by display name.
func (vm *VM) GetExa(name string) *Exa {
	for _, e := range vm.Exas {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// NextFileID hands out the next file id; ids are never reused.
func (vm *VM) NextFileID() int {
	id := vm.fileCounter
	vm.fileCounter++
	return id
}

// Render repaints the framebuffer from scratch: every living EXA's
// sprite pixels OR into the bit matrix.
func (vm *VM) Render() *[FRAMEBUFFER_PIXELS]bool {
	for i := range vm.framebuffer {
		vm.framebuffer[i] = false
	}
	for _, e := range vm.Exas {
		for _, p := range e.pixels() {
			vm.framebuffer[p[1]*FRAMEBUFFER_WIDTH+p[0]] = true
		}
	}
	return &vm.framebuffer
}

func (vm *VM) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "VM (cycle:%d)", vm.Cycle)

	names := make([]string, 0, len(vm.Hosts))
	for name := range vm.Hosts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		h := vm.Hosts[name]
		fmt.Fprintf(&b, "\n\t%s", h)
		for _, e := range vm.Exas {
			if e.Host == h {
				fmt.Fprintf(&b, "\n\t\t%s", e)
			}
		}
	}
	return b.String()
}
