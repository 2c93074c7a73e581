package main

import "testing"

func TestRepl(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("mark start\n copy 1 x \n copy 2 t\n repl start\n")

	bench.runCycle()
	bench.runCycle()
	bench.runCycle()
	bench.runCycle()
	e2 := bench.getExa("x0:1")
	bench.assertExaRegister(e2, "x", 1)
	bench.assertExaRegister(e2, "t", 2)
	bench.assertFatalError(e1)
	bench.assertNoError(e2)
}

func TestChainRepl(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("mark start\n noop \n repl start\n")

	bench.runCycle()
	bench.runCycle()
	bench.runCycle()
	bench.runCycle()
	bench.assertDead(e1)
	e2 := bench.getExa("x0:2")
	bench.assertNoError(e2)
}

func TestReplBlocksWhenFull(t *testing.T) {
	bench := basicBench(t)
	bench.exa("noop \n noop\n")
	bench.exa("noop \n noop\n")
	bench.exa("noop \n noop\n")
	e4 := bench.exa("mark start\n repl start\n")

	bench.runCycle()
	bench.assertBlockingError(e4)
}

// Descendants get fresh register cells, not references to the parent's.
func TestReplIndependentRegisters(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("mark start\n copy 1 x \n repl start \n copy 2 x\n noop\n")

	bench.runCycle()
	bench.runCycle()
	bench.runCycle()
	e2 := bench.getExa("x0:1")
	bench.assertExaRegister(e1, "x", 2)
	bench.assertExaRegister(e2, "x", 1)
}

func TestReplUnknownLabelIsFatal(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("repl nowhere\n noop\n")

	bench.runCycle()
	bench.assertFatalError(e1)
}

func TestReplDoesNotCopyHeldFile(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("data 1 2 3\n repl child\n noop\n mark child\n noop\n noop\n")

	bench.runCycle()
	e2 := bench.getExa("x0:1")
	bench.assertExaFile(e1, 400)
	bench.assertExaNoFile(e2)
}

// All replicas of one root draw spawn ids from one counter, so names
// stay unique across the whole lineage tree.
func TestLineageCounterIsShared(t *testing.T) {
	bench := basicBench(t)
	bench.exa("repl a\n repl a\n noop\n mark a\n repl b\n noop\n noop\n mark b\n noop\n noop\n noop\n")

	bench.runCycle() // parent spawns x0:1 at label a
	bench.runCycle() // parent spawns x0:2; x0:1 spawns x0:3 at label b
	bench.getExa("x0:1")
	bench.getExa("x0:2")
	bench.getExa("x0:3")
}
