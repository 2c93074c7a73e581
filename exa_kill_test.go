package main

import "testing"

func TestKillWithNoTargetIsQuiet(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("kill\n copy 1 x\n")

	bench.runCycle()
	bench.assertNoError(e1)
	bench.assertAlive(e1)
	bench.runCycle()
	bench.assertExaRegister(e1, "x", 1)
}

func TestKillTargetsOtherKillersFirst(t *testing.T) {
	bench := basicBench(t)
	e3 := bench.exa("noop\n noop\n")
	e1 := bench.exa("kill\n noop\n")
	e2 := bench.exa("kill\n noop\n")

	bench.runCycle()
	bench.assertFatalError(e1)
	bench.assertFatalError(e2)
	bench.assertNoError(e3)
	bench.runCycle()
	bench.assertDead(e1)
	bench.assertDead(e2)
	bench.assertAlive(e3)
}

func TestKillPrioritizesDescendants(t *testing.T) {
	bench := basicBench(t)
	bench.exa("repl end\n kill\n mark end\n noop\n noop\n")
	e2 := bench.exa("noop\n noop\n noop\n")

	bench.runCycle()
	e3 := bench.getExa("x0:1")
	bench.runCycle()
	bench.assertFatalError(e3)
	bench.assertNoError(e2)
}

func TestKillPrioritizesAncestors(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("repl end\n noop\n noop\n mark end\n kill\n noop\n")
	e2 := bench.exa("noop\n noop\n noop\n")

	bench.runCycle()
	bench.getExa("x0:1")
	bench.runCycle()
	bench.assertFatalError(e1)
	bench.assertNoError(e2)
}

func TestKilledExaTakesNoActionThisCycle(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("kill\n noop\n noop\n")
	e2 := bench.exa("copy 1 x\n copy 2 x\n noop\n")

	bench.runCycle()
	bench.assertNoError(e1)
	bench.assertFatalError(e2)
	// e2 was marked dead in the kill phase, before its turn to run.
	bench.assertExaRegister(e2, "x", 0)
}

func TestKillOnlyTargetsSameHost(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("link 800\n kill\n noop\n noop\n")
	e2 := bench.exa("noop\n noop\n noop\n noop\n")

	bench.runCycle()
	bench.assertPosition(e1, "end")
	bench.runCycle()
	// The only other EXA lives on "start"; the kill finds nobody.
	bench.assertNoError(e1)
	bench.assertNoError(e2)
	bench.assertAlive(e2)
}
