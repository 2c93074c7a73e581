// exa_cycle.go - Single-instruction execution engine for EXAs

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
exa_cycle.go - Instruction Dispatch

One call to runCycle executes exactly one instruction of one EXA and
settles its status:

- success: error cleared, PC advances, running past the last instruction
  is fatal ("out of instructions")
- Blocking / Freezing: error stored, PC stays, the instruction will be
  retried (Blocking) or completed by Unfreeze (Freezing)
- Fatal: error stored, PC stays, the reaper collects next cycle

Reads and writes of the pseudo-registers M and F dispatch to the mode's
message bus and the held file. A bus read reports the sender's name in
the CycleResult so the scheduler can release the frozen writer within
the same cycle.
*/

package main

// ------------------------------------------------------------------------------
// Arithmetic Bounds
// ------------------------------------------------------------------------------
const (
	VALUE_MIN = -9999
	VALUE_MAX = 9999
)

// CycleResult carries cross-EXA effects of a single instruction back to
// the scheduler.
type CycleResult struct {
	UnfreezeExa string
}

func clampValue(v int) int {
	if v < VALUE_MIN {
		return VALUE_MIN
	}
	if v > VALUE_MAX {
		return VALUE_MAX
	}
	return v
}

// runCycle executes the EXA's current instruction.
func (e *Exa) runCycle() *CycleResult {
	e.result = CycleResult{}

	if e.pc >= len(e.instructions) {
		e.Err = fatalError("out of instructions")
		return &e.result
	}

	jumped, err := e.execute(&e.instructions[e.pc])
	if err != nil {
		e.Err = err
		return &e.result
	}

	e.Err = nil
	if !jumped {
		e.pc++
	}
	if e.pc >= len(e.instructions) {
		e.Err = fatalError("out of instructions")
	}
	return &e.result
}

func (e *Exa) execute(inst *Instruction) (jumped bool, err *ExaError) {
	switch inst.Op {
	case OP_COPY:
		v, err := e.readTarget(inst.A)
		if err != nil {
			return false, err
		}
		return false, e.writeTarget(inst.Dst, v)

	case OP_ADDI, OP_SUBI, OP_MULI, OP_DIVI, OP_MODI:
		return false, e.arithmetic(inst)

	case OP_SWIZ:
		return false, e.swiz(inst)

	case OP_TEST:
		return false, e.test(inst)

	case OP_TEST_EOF:
		if e.File == nil {
			return false, fatalError("no file is held")
		}
		e.registers.t.Value = boolValue(e.filePointer == len(e.File.Contents))
		return false, nil

	case OP_TEST_MRD:
		// Latched by the scheduler before the drain; the T write
		// happens after every EXA has run. Nothing to do here.
		return false, nil

	case OP_JUMP:
		return e.jump(inst.Label)

	case OP_TJMP:
		if e.registers.t.Value != 0 {
			return e.jump(inst.Label)
		}
		return false, nil

	case OP_FJMP:
		if e.registers.t.Value == 0 {
			return e.jump(inst.Label)
		}
		return false, nil

	case OP_REPL:
		target, ok := e.labels[inst.Label]
		if !ok {
			return false, fatalError("unknown label " + inst.Label)
		}
		_, err := e.innerRepl(target)
		return false, err

	case OP_HALT:
		return false, fatalError("explicit halt")

	case OP_KILL:
		// Kills resolve in the scheduler's kill phase, before any EXA
		// runs. By the time the killer executes this is a no-op.
		return false, nil

	case OP_LINK:
		return false, e.link(inst.A)

	case OP_HOST:
		// Unsupported in this VM; the op advances without writing.
		return false, nil

	case OP_MODE:
		if e.Mode == MODE_LOCAL {
			e.Mode = MODE_GLOBAL
		} else {
			e.Mode = MODE_LOCAL
		}
		return false, nil

	case OP_VOID_M:
		_, err := e.readM()
		return false, err

	case OP_VOID_F:
		return false, e.voidF()

	case OP_MAKE:
		return false, e.makeFile()

	case OP_DROP:
		return false, e.dropFile()

	case OP_WIPE:
		if e.File == nil {
			return false, fatalError("no file is held")
		}
		e.File = nil
		e.filePointer = 0
		return false, nil

	case OP_GRAB:
		return false, e.grabFile(inst.A)

	case OP_FILE:
		if e.File == nil {
			return false, fatalError("no file is held")
		}
		return false, e.writeTarget(inst.Dst, e.File.ID)

	case OP_SEEK:
		return false, e.seek(inst.A)

	case OP_RAND:
		return false, e.rand(inst)

	case OP_WAIT:
		e.Waiting = true
		return false, freezingError("waiting")

	case OP_NOOP:
		return false, nil

	case OP_MARK, OP_DATA:
		panic("mark/data instruction survived preprocessing")
	}

	panic("unhandled opcode")
}

func (e *Exa) jump(label string) (bool, *ExaError) {
	target, ok := e.labels[label]
	if !ok {
		return false, fatalError("unknown label " + label)
	}
	e.pc = target
	return true, nil
}

func (e *Exa) arithmetic(inst *Instruction) *ExaError {
	a, err := e.readTarget(inst.A)
	if err != nil {
		return err
	}
	b, err := e.readTarget(inst.B)
	if err != nil {
		return err
	}

	var v int
	switch inst.Op {
	case OP_ADDI:
		v = a + b
	case OP_SUBI:
		v = a - b
	case OP_MULI:
		v = a * b
	case OP_DIVI:
		if b == 0 {
			return fatalError("division by zero")
		}
		v = a / b
	case OP_MODI:
		if b == 0 {
			return fatalError("division by zero")
		}
		v = ((a % b) + b) % b
	}

	return e.writeTarget(inst.Dst, clampValue(v))
}

// swiz rearranges the base-10 digits of the input according to the mask:
// mask digit v in {1..4} at position i selects input digit v-1 for output
// position i, any other digit contributes zero. The result is negative
// iff exactly one operand is negative.
func (e *Exa) swiz(inst *Instruction) *ExaError {
	input, err := e.readTarget(inst.A)
	if err != nil {
		return err
	}
	mask, err := e.readTarget(inst.B)
	if err != nil {
		return err
	}

	in, mk := input, mask
	if in < 0 {
		in = -in
	}
	if mk < 0 {
		mk = -mk
	}

	digits := [4]int{in % 10, (in / 10) % 10, (in / 100) % 10, (in / 1000) % 10}
	v, scale := 0, 1
	for i := 0; i < 4; i++ {
		sel := (mk / scale) % 10
		if sel >= 1 && sel <= 4 {
			v += digits[sel-1] * scale
		}
		scale *= 10
	}
	if (input < 0) != (mask < 0) {
		v = -v
	}

	return e.writeTarget(inst.Dst, v)
}

func (e *Exa) test(inst *Instruction) *ExaError {
	a, err := e.readTarget(inst.A)
	if err != nil {
		return err
	}
	b, err := e.readTarget(inst.B)
	if err != nil {
		return err
	}

	var result bool
	switch inst.Comp {
	case COMP_EQUAL:
		result = a == b
	case COMP_GREATER:
		result = a > b
	case COMP_LESSER:
		result = a < b
	}
	e.registers.t.Value = boolValue(result)
	return nil
}

// link traverses an outbound link: the link must exist and be untraversed
// this cycle, and the target host must have a free square. A successful
// traversal consumes the reverse direction between the two hosts as well.
func (e *Exa) link(idTarget Target) *ExaError {
	id, err := e.readTarget(idTarget)
	if err != nil {
		return err
	}

	link, ok := e.Host.Links[id]
	if !ok {
		return fatalError("invalid link id")
	}
	if link.TraversedThisCycle {
		return blockingError("link bandwidth exceeded")
	}
	if reserveErr := link.ToHost.ReserveSlot(); reserveErr != nil {
		return reserveErr
	}

	link.TraversedThisCycle = true
	for _, back := range link.ToHost.Links {
		if back.ToHost == e.Host {
			back.TraversedThisCycle = true
		}
	}

	e.Host.FreeSlot()
	e.Host = link.ToHost
	return nil
}

func (e *Exa) rand(inst *Instruction) *ExaError {
	lo, err := e.readTarget(inst.A)
	if err != nil {
		return err
	}
	hi, err := e.readTarget(inst.B)
	if err != nil {
		return err
	}
	if lo > hi {
		return fatalError("invalid rand range")
	}
	return e.writeTarget(inst.Dst, lo+e.vm.rng.Intn(hi-lo+1))
}

// ------------------------------------------------------------------------------
// File operations
// ------------------------------------------------------------------------------

func (e *Exa) makeFile() *ExaError {
	if e.File != nil {
		return fatalError("already holding a file")
	}
	e.File = NewFile(e.vm.NextFileID(), nil)
	e.filePointer = 0
	return nil
}

func (e *Exa) grabFile(idTarget Target) *ExaError {
	if e.File != nil {
		return fatalError("already holding a file")
	}
	id, err := e.readTarget(idTarget)
	if err != nil {
		return err
	}
	f := e.Host.TakeFile(id)
	if f == nil {
		return fatalError("file not found on host")
	}
	e.Host.FreeSlot()
	e.File = f
	e.filePointer = 0
	return nil
}

func (e *Exa) dropFile() *ExaError {
	if e.File == nil {
		return fatalError("no file is held")
	}
	if reserveErr := e.Host.ReserveSlot(); reserveErr != nil {
		return reserveErr
	}
	e.Host.PutFile(e.File)
	e.File = nil
	e.filePointer = 0
	return nil
}

// seek moves the cursor by a relative offset, saturating at the file's
// bounds (SEEK -9999 rewinds, SEEK 9999 fast-forwards).
func (e *Exa) seek(offsetTarget Target) *ExaError {
	if e.File == nil {
		return fatalError("no file is held")
	}
	offset, err := e.readTarget(offsetTarget)
	if err != nil {
		return err
	}
	fp := e.filePointer + offset
	if fp < 0 {
		fp = 0
	}
	if fp > len(e.File.Contents) {
		fp = len(e.File.Contents)
	}
	e.filePointer = fp
	return nil
}

func (e *Exa) voidF() *ExaError {
	if e.File == nil {
		return fatalError("no file is held")
	}
	if e.filePointer >= len(e.File.Contents) {
		return fatalError("file pointer out of bounds")
	}
	e.File.Contents = append(
		e.File.Contents[:e.filePointer], e.File.Contents[e.filePointer+1:]...)
	return nil
}

func (e *Exa) readF() (int, *ExaError) {
	if e.File == nil {
		return 0, fatalError("no file is held")
	}
	if e.filePointer >= len(e.File.Contents) {
		return 0, fatalError("file pointer out of bounds")
	}
	v := e.File.Contents[e.filePointer]
	e.filePointer++
	return v, nil
}

func (e *Exa) writeF(value int) *ExaError {
	if e.File == nil {
		return fatalError("no file is held")
	}
	if e.filePointer == len(e.File.Contents) {
		e.File.Contents = append(e.File.Contents, value)
	} else {
		e.File.Contents[e.filePointer] = value
	}
	e.filePointer++
	return nil
}

// ------------------------------------------------------------------------------
// Message bus access
// ------------------------------------------------------------------------------

func (e *Exa) bus() *MessageBus {
	if e.Mode == MODE_LOCAL {
		return e.Host.Bus
	}
	return e.vm.bus
}

func (e *Exa) readM() (int, *ExaError) {
	msg, err := e.bus().Read()
	if err != nil {
		return 0, err
	}
	e.result.UnfreezeExa = msg.Sender
	return msg.Value, nil
}

// ------------------------------------------------------------------------------
// Operand access
// ------------------------------------------------------------------------------

func (e *Exa) readTarget(t Target) (int, *ExaError) {
	if t.Kind == TARGET_LITERAL {
		return t.Literal, nil
	}
	return e.readRegister(t.Register)
}

func (e *Exa) writeTarget(t Target, value int) *ExaError {
	if t.Kind != TARGET_REGISTER {
		return fatalError("cannot write to a literal")
	}
	return e.writeRegister(t.Register, value)
}

func (e *Exa) privateRegister(name string) *Register {
	switch name {
	case "x":
		return e.registers.x
	case "t":
		return e.registers.t
	case "gx":
		return e.registers.gx
	case "gy":
		return e.registers.gy
	case "gz":
		return e.registers.gz
	case "gp":
		return e.registers.gp
	case "ci":
		return e.registers.ci
	case "co":
		return e.registers.co
	}
	return nil
}

func (e *Exa) readRegister(name string) (int, *ExaError) {
	switch name {
	case "m":
		return e.readM()
	case "f":
		return e.readF()
	}

	var reg *Register
	if len(name) > 0 && name[0] == '#' {
		reg = e.Host.Register(name)
		if reg == nil {
			return 0, fatalError("unknown hardware register " + name)
		}
	} else {
		reg = e.privateRegister(name)
		if reg == nil {
			return 0, fatalError("unknown register " + name)
		}
	}

	if !reg.readable() {
		return 0, fatalError("register " + name + " cannot be read")
	}
	return reg.Value, nil
}

func (e *Exa) writeRegister(name string, value int) *ExaError {
	switch name {
	case "m":
		return e.bus().Write(e.Name, value)
	case "f":
		return e.writeF(value)
	}

	var reg *Register
	if len(name) > 0 && name[0] == '#' {
		reg = e.Host.Register(name)
		if reg == nil {
			return fatalError("unknown hardware register " + name)
		}
	} else {
		reg = e.privateRegister(name)
		if reg == nil {
			return fatalError("unknown register " + name)
		}
	}

	if !reg.writable() {
		return fatalError("register " + name + " cannot be written")
	}

	// GP is not a storage cell: stores decode into sprite operations.
	if reg == e.registers.gp {
		e.writeGP(value)
		return nil
	}

	reg.Store(value)
	return nil
}

func boolValue(b bool) int {
	if b {
		return 1
	}
	return 0
}
