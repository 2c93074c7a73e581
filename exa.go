// exa.go - The EXA agent record: spawn, replication, lineage, sprites

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
exa.go - Agent Lifecycle

An EXA carries a program (labels pre-extracted), a program counter, eight
private registers, a transport mode, at most one held file, and a sprite.
EXAs enter the world by Spawn (embedder) or REPL (another EXA) and leave
it when the scheduler reaps them after a Fatal status.

Lineage: every descendant of a root EXA shares the root's base name and a
single spawn counter, so replica names are unique within the lineage tree
("x0", "x0:1", "x0:2", ...) and ancestry is ordered by spawn id.
*/

package main

import (
	"fmt"
	"strconv"
)

// ------------------------------------------------------------------------------
// Transport Modes
// ------------------------------------------------------------------------------
const (
	MODE_LOCAL = iota
	MODE_GLOBAL
)

// ------------------------------------------------------------------------------
// Register Clamp Ranges (Redshift hardware contract)
// ------------------------------------------------------------------------------
const (
	GX_MIN = -10
	GX_MAX = 120
	GY_MIN = -10
	GY_MAX = 100
	GZ_MIN = -9
	GZ_MAX = 9
)

// CI holds this sentinel whenever no collision has been observed.
const COLLISION_NONE = -9999

// SpawnCounter is shared by every EXA in one lineage tree. The counter
// value is the next spawn id to hand out.
type SpawnCounter struct {
	next uint64
}

func NewSpawnCounter() *SpawnCounter {
	return &SpawnCounter{next: 1}
}

func (c *SpawnCounter) Next() uint64 {
	id := c.next
	c.next++
	return id
}

type exaRegisters struct {
	x, t, gx, gy, gz, gp, ci, co *Register
}

func newExaRegisters() exaRegisters {
	return exaRegisters{
		x:  NewRegister(PERM_READ_WRITE, 0),
		t:  NewRegister(PERM_READ_WRITE, 0),
		gx: NewRegister(PERM_DENIED, 0),
		gy: NewRegister(PERM_DENIED, 0),
		gz: NewRegister(PERM_DENIED, 0),
		gp: NewRegister(PERM_DENIED, 0),
		ci: NewRegister(PERM_DENIED, 0),
		co: NewRegister(PERM_DENIED, 0),
	}
}

func newRedshiftRegisters() exaRegisters {
	return exaRegisters{
		x:  NewRegister(PERM_READ_WRITE, 0),
		t:  NewRegister(PERM_READ_WRITE, 0),
		gx: NewClampedRegister(PERM_READ_WRITE, 0, GX_MIN, GX_MAX),
		gy: NewClampedRegister(PERM_READ_WRITE, 0, GY_MIN, GY_MAX),
		gz: NewClampedRegister(PERM_READ_WRITE, 0, GZ_MIN, GZ_MAX),
		gp: NewRegister(PERM_WRITE_ONLY, 0),
		ci: NewRegister(PERM_READ_ONLY, COLLISION_NONE),
		co: NewRegister(PERM_READ_WRITE, 0),
	}
}

// cloneForRepl builds fresh registers for a descendant: values carry over
// except GP (reset) and CI (back to the sentinel), permissions and clamps
// carry over as-is.
func (r *exaRegisters) cloneForRepl() exaRegisters {
	cp := func(src *Register, value int) *Register {
		out := *src
		out.Value = value
		return &out
	}
	return exaRegisters{
		x:  cp(r.x, r.x.Value),
		t:  cp(r.t, r.t.Value),
		gx: cp(r.gx, r.gx.Value),
		gy: cp(r.gy, r.gy.Value),
		gz: cp(r.gz, r.gz.Value),
		gp: cp(r.gp, 0),
		ci: cp(r.ci, COLLISION_NONE),
		co: cp(r.co, r.co.Value),
	}
}

type Exa struct {
	baseName string
	spawnID  uint64
	Name     string

	registers exaRegisters
	result    CycleResult

	spawnCounter *SpawnCounter

	pc           int
	instructions []Instruction
	labels       map[string]int

	Mode int

	Host *Host
	Err  *ExaError

	filePointer int
	File        *File

	Sprite Sprite

	RanTestMrdThisCycle bool
	Waiting             bool

	vm *VM
}

// Spawn parses the script and places a new EXA in the given host, if the
// host has a free square. Redshift EXAs get the graphical register set.
func Spawn(vm *VM, host *Host, name string, redshift bool, script string) (*Exa, error) {
	insts, err := ParseScript(script)
	if err != nil {
		return nil, err
	}
	return SpawnParsed(vm, host, name, redshift, insts)
}

// SpawnParsed is the AST-level seam: embedders with their own frontend
// hand the VM an already-parsed instruction sequence.
func SpawnParsed(vm *VM, host *Host, name string, redshift bool, insts []Instruction) (*Exa, error) {
	if reserveErr := host.ReserveSlot(); reserveErr != nil {
		return nil, reserveErr
	}

	program := make([]Instruction, len(insts))
	copy(program, insts)
	dataFile := extractData(&program, vm)
	labels := extractLabels(&program)

	registers := newExaRegisters()
	if redshift {
		registers = newRedshiftRegisters()
	}

	e := &Exa{
		baseName:     name,
		spawnID:      0,
		Name:         name,
		registers:    registers,
		pc:           0,
		instructions: program,
		labels:       labels,
		Mode:         MODE_GLOBAL,
		Host:         host,
		File:         dataFile,
		spawnCounter: NewSpawnCounter(),
		Sprite:       EmptySprite(),
		vm:           vm,
	}
	vm.RegisterExa(e)
	return e, nil
}

// innerRepl creates the descendant for a REPL, starting at the given
// program index. The caller has already resolved the label.
func (e *Exa) innerRepl(pc int) (*Exa, *ExaError) {
	if reserveErr := e.Host.ReserveSlot(); reserveErr != nil {
		return nil, reserveErr
	}

	spawnID := e.spawnCounter.Next()
	name := e.baseName + ":" + strconv.FormatUint(spawnID, 10)

	child := &Exa{
		baseName:     e.baseName,
		spawnID:      spawnID,
		Name:         name,
		registers:    e.registers.cloneForRepl(),
		pc:           pc,
		instructions: e.instructions,
		labels:       e.labels,
		Mode:         e.Mode,
		Host:         e.Host,
		spawnCounter: e.spawnCounter,
		Sprite:       e.Sprite,
		vm:           e.vm,
	}
	e.vm.RegisterExa(child)
	return child, nil
}

// extractLabels strips MARK pseudo-instructions, mapping each label to
// the index the mark occupied. Consecutive marks collapse to one index.
func extractLabels(instructions *[]Instruction) map[string]int {
	labels := make(map[string]int)
	insts := *instructions
	idx := 0
	for idx < len(insts) {
		if insts[idx].Op == OP_MARK {
			labels[insts[idx].Label] = idx
			insts = append(insts[:idx], insts[idx+1:]...)
		} else {
			idx++
		}
	}
	*instructions = insts
	return labels
}

// extractData strips DATA pseudo-instructions, concatenating their
// values in program order. A non-empty result materializes as an initial
// held file with a fresh id.
func extractData(instructions *[]Instruction, vm *VM) *File {
	var contents []int
	insts := *instructions
	idx := 0
	for idx < len(insts) {
		if insts[idx].Op == OP_DATA {
			contents = append(contents, insts[idx].Data...)
			insts = append(insts[:idx], insts[idx+1:]...)
		} else {
			idx++
		}
	}
	*instructions = insts

	if len(contents) == 0 {
		return nil
	}
	return NewFile(vm.NextFileID(), contents)
}

func (e *Exa) isFatal() bool {
	return e.Err != nil && e.Err.Class == ERROR_FATAL
}

func (e *Exa) isFrozen() bool {
	return e.Err != nil && e.Err.Class == ERROR_FREEZING
}

func (e *Exa) willKillThisCycle() bool {
	return e.pc < len(e.instructions) && e.instructions[e.pc].Op == OP_KILL
}

func (e *Exa) willTestMrdThisCycle() bool {
	return e.pc < len(e.instructions) && e.instructions[e.pc].Op == OP_TEST_MRD
}

func (e *Exa) descendantOf(other *Exa) bool {
	return e.baseName == other.baseName && e.spawnID > other.spawnID
}

func (e *Exa) ancestorOf(other *Exa) bool {
	return e.baseName == other.baseName && e.spawnID < other.spawnID
}

// Unfreeze releases a Freezing EXA and moves it past the instruction
// that froze it. Calling it on a non-frozen EXA is a scheduler bug.
func (e *Exa) Unfreeze() {
	if !e.isFrozen() {
		panic("unfreeze called on exa that is not freezing")
	}
	e.Err = nil
	e.Waiting = false
	e.pc++
	if e.pc >= len(e.instructions) {
		e.Err = fatalError("out of instructions")
	}
}

// pixels returns the screen-space coordinates of the sprite's enabled
// bits, clipped to the framebuffer.
func (e *Exa) pixels() [][2]int {
	x := e.registers.gx.Value
	y := e.registers.gy.Value
	var out [][2]int
	for idx, on := range e.Sprite.Pixels {
		if !on {
			continue
		}
		px := idx%SPRITE_SIZE + x
		py := idx/SPRITE_SIZE + y
		if px >= 0 && px < FRAMEBUFFER_WIDTH && py >= 0 && py < FRAMEBUFFER_HEIGHT {
			out = append(out, [2]int{px, py})
		}
	}
	return out
}

// writeGP decodes a GP store into a sprite operation. Negative values are
// silent no-ops; the four decimal digits read "_ op x y".
func (e *Exa) writeGP(value int) {
	if value < 0 {
		return
	}
	op := (value / 100) % 10
	x := (value / 10) % 10
	y := value % 10
	switch op {
	case 0:
		e.Sprite.Disable(x, y)
	case 1:
		e.Sprite.Enable(x, y)
	case 2:
		e.Sprite.Toggle(x, y)
	case 3:
		e.Sprite = BuiltinSprite(x*10 + y)
	}
}

func (e *Exa) String() string {
	s := fmt.Sprintf("\tExa %s pc:%d fp:%d", e.Name, e.pc, e.filePointer)
	if e.Err != nil {
		s += fmt.Sprintf(" (error: %s)", e.Err.Error())
	} else {
		s += " (error: None)"
	}
	if e.pc < len(e.instructions) {
		s += fmt.Sprintf("\n\tInst: %+v", e.instructions[e.pc])
	}
	s += fmt.Sprintf("\n\tX: %d T: %d", e.registers.x.Value, e.registers.t.Value)
	if e.File != nil {
		s += fmt.Sprintf("\nHeld: %s", e.File)
	}
	return s + "\n"
}
