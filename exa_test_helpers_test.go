package main

import (
	"strconv"
	"testing"
)

// TestBench wires a small deterministic VM for the integration tests:
// shuffle disabled, RNG pinned.
type TestBench struct {
	t       *testing.T
	vm      *VM
	spawned int
}

// basicBench provides a VM with two hosts, "start" and "end", each with
// capacity 4, linked 800 forward and -1 back. "start" carries a
// ReadWrite hardware register #REG initialised to 100.
func basicBench(t *testing.T) *TestBench {
	t.Helper()

	h1 := NewHost("start", 4)
	h1.AddRegister("#REG", NewRegister(PERM_READ_WRITE, 100))
	h2 := NewHost("end", 4)

	vm := NewVM()
	vm.AddHost(h1)
	vm.AddHost(h2)
	vm.AddLink(800, h1, h2)
	vm.AddLink(-1, h2, h1)

	vm.SetShuffle(false)
	vm.Seed(1)

	return &TestBench{t: t, vm: vm}
}

// redshiftBench provides the full Redshift machine, determinism pinned.
func redshiftBench(t *testing.T) *TestBench {
	t.Helper()
	vm := NewRedshiftVM()
	vm.SetShuffle(false)
	vm.Seed(1)
	return &TestBench{t: t, vm: vm}
}

func (b *TestBench) startHost() *Host {
	if h, ok := b.vm.Hosts["start"]; ok {
		return h
	}
	return b.vm.Hosts["core"]
}

// exa spawns a sequentially named EXA in the bench's first host.
func (b *TestBench) exa(script string) *Exa {
	b.t.Helper()
	name := "x" + strconv.Itoa(b.spawned)
	b.spawned++
	e, err := Spawn(b.vm, b.startHost(), name, b.vm.Redshift != nil, script)
	if err != nil {
		b.t.Fatalf("spawn %s: %v", name, err)
	}
	return e
}

// exaCustom spawns with an explicit bus mode.
func (b *TestBench) exaCustom(script string, mode int) *Exa {
	b.t.Helper()
	e := b.exa(script)
	e.Mode = mode
	return e
}

func (b *TestBench) runCycle() {
	b.vm.RunCycle()
}

func (b *TestBench) getExa(name string) *Exa {
	b.t.Helper()
	e := b.vm.GetExa(name)
	if e == nil {
		b.t.Fatalf("exa %s not found", name)
	}
	return e
}

func (b *TestBench) assertPosition(e *Exa, hostname string) {
	b.t.Helper()
	if e.Host.Name != hostname {
		b.t.Fatalf("%s: on host %s, want %s", e.Name, e.Host.Name, hostname)
	}
}

func (b *TestBench) assertNoError(e *Exa) {
	b.t.Helper()
	if e.Err != nil {
		b.t.Fatalf("%s: unexpected error %v", e.Name, e.Err)
	}
}

func (b *TestBench) assertErrorClass(e *Exa, class int) {
	b.t.Helper()
	if e.Err == nil {
		b.t.Fatalf("%s: expected error, got none", e.Name)
	}
	if e.Err.Class != class {
		b.t.Fatalf("%s: error %v has wrong class", e.Name, e.Err)
	}
}

func (b *TestBench) assertFatalError(e *Exa)    { b.t.Helper(); b.assertErrorClass(e, ERROR_FATAL) }
func (b *TestBench) assertBlockingError(e *Exa) { b.t.Helper(); b.assertErrorClass(e, ERROR_BLOCKING) }
func (b *TestBench) assertFreezingError(e *Exa) { b.t.Helper(); b.assertErrorClass(e, ERROR_FREEZING) }

func (b *TestBench) assertAlive(e *Exa) {
	b.t.Helper()
	if b.vm.GetExa(e.Name) == nil {
		b.t.Fatalf("%s: expected alive", e.Name)
	}
}

func (b *TestBench) assertDead(e *Exa) {
	b.t.Helper()
	if b.vm.GetExa(e.Name) != nil {
		b.t.Fatalf("%s: expected dead", e.Name)
	}
}

func (b *TestBench) assertExaRegister(e *Exa, name string, want int) {
	b.t.Helper()
	reg := e.privateRegister(name)
	if reg == nil {
		b.t.Fatalf("no register %s", name)
	}
	if reg.Value != want {
		b.t.Fatalf("%s: register %s = %d, want %d", e.Name, name, reg.Value, want)
	}
}

func (b *TestBench) assertExaFile(e *Exa, id int) {
	b.t.Helper()
	if e.File == nil {
		b.t.Fatalf("%s: holds no file, want %d", e.Name, id)
	}
	if e.File.ID != id {
		b.t.Fatalf("%s: holds file %d, want %d", e.Name, e.File.ID, id)
	}
}

func (b *TestBench) assertExaNoFile(e *Exa) {
	b.t.Helper()
	if e.File != nil {
		b.t.Fatalf("%s: unexpectedly holds file %d", e.Name, e.File.ID)
	}
}

func (b *TestBench) assertExaFileContents(e *Exa, want []int) {
	b.t.Helper()
	if e.File == nil {
		b.t.Fatalf("%s: holds no file", e.Name)
	}
	if len(e.File.Contents) != len(want) {
		b.t.Fatalf("%s: file contents %v, want %v", e.Name, e.File.Contents, want)
	}
	for i := range want {
		if e.File.Contents[i] != want[i] {
			b.t.Fatalf("%s: file contents %v, want %v", e.Name, e.File.Contents, want)
		}
	}
}

func (b *TestBench) assertHostFile(hostname string, id int) {
	b.t.Helper()
	if !b.vm.Hosts[hostname].HasFile(id) {
		b.t.Fatalf("host %s: file %d not resident", hostname, id)
	}
}

func (b *TestBench) assertHostNoFile(hostname string, id int) {
	b.t.Helper()
	if b.vm.Hosts[hostname].HasFile(id) {
		b.t.Fatalf("host %s: file %d unexpectedly resident", hostname, id)
	}
}

func (b *TestBench) assertExaSprite(e *Exa, shorthand ...int) {
	b.t.Helper()
	want := SpriteFromShorthand(shorthand...)
	if e.Sprite != want {
		b.t.Fatalf("%s: sprite mismatch\n got: %v\nwant: %v", e.Name, e.Sprite.Pixels, want.Pixels)
	}
}

// assertOccupancy checks the capacity bookkeeping invariant: occupancy
// equals resident EXAs plus resident files.
func (b *TestBench) assertOccupancy() {
	b.t.Helper()
	for _, h := range b.vm.Hosts {
		count := len(h.Files)
		for _, e := range b.vm.Exas {
			if e.Host == h {
				count++
			}
		}
		if count != h.Occupied {
			b.t.Fatalf("host %s: occupancy %d, but %d residents", h.Name, h.Occupied, count)
		}
		if h.Occupied < 0 || h.Occupied > h.Capacity {
			b.t.Fatalf("host %s: occupancy %d out of range", h.Name, h.Occupied)
		}
	}
}
