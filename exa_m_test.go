package main

import "testing"

func TestSimpleMPassing(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("copy 1 m\n")
	e2 := bench.exa("copy m x\n")

	bench.runCycle()
	bench.assertFreezingError(e1)
	bench.assertBlockingError(e2)
	bench.runCycle()
	bench.assertFatalError(e1)
	bench.assertFatalError(e2)
	bench.assertExaRegister(e2, "x", 1)
	bench.runCycle()
	bench.assertDead(e1)
	bench.assertDead(e2)
}

func TestMultiModeMPassing(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("copy 1 m\n")
	e2 := bench.exa("copy m x\n")
	e3 := bench.exaCustom("copy 2 m\n", MODE_LOCAL)
	e4 := bench.exaCustom("copy m t\n", MODE_LOCAL)

	bench.runCycle()
	bench.assertFreezingError(e1)
	bench.assertBlockingError(e2)
	bench.assertFreezingError(e3)
	bench.assertBlockingError(e4)

	bench.runCycle()
	bench.assertFatalError(e1)
	bench.assertFatalError(e2)
	bench.assertFatalError(e3)
	bench.assertFatalError(e4)
	bench.assertExaRegister(e2, "x", 1)
	bench.assertExaRegister(e4, "t", 2)

	bench.runCycle()
	bench.assertDead(e1)
	bench.assertDead(e2)
	bench.assertDead(e3)
	bench.assertDead(e4)
}

func TestWokenWriterActsSameCycle(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("copy 1 m\n copy 5 x\n noop\n")
	e2 := bench.exa("copy m t\n noop\n noop\n")

	bench.runCycle()
	bench.assertFreezingError(e1)
	bench.runCycle()
	// The read released the writer, which then ran its next
	// instruction within the same cycle.
	bench.assertNoError(e1)
	bench.assertExaRegister(e1, "x", 5)
	bench.assertExaRegister(e2, "t", 1)
}

func TestOneBusReadPerCycle(t *testing.T) {
	bench := basicBench(t)
	w1 := bench.exa("copy 1 m\n")
	w2 := bench.exa("copy 2 m\n")
	r1 := bench.exa("copy m x\n")
	r2 := bench.exa("copy m x\n")

	bench.runCycle()
	bench.assertFreezingError(w1)
	bench.assertFreezingError(w2)
	bench.runCycle()
	// Two messages visible, but only one read of bandwidth exists.
	bench.assertExaRegister(r1, "x", 1)
	bench.assertBlockingError(r2)
	bench.runCycle()
	bench.assertExaRegister(r2, "x", 2)
}

func TestVoidM(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("copy 7 m\n")
	e2 := bench.exa("void m\n noop\n")

	bench.runCycle()
	bench.assertFreezingError(e1)
	bench.assertBlockingError(e2)
	bench.runCycle()
	// The discard still counts as the read that releases the writer.
	bench.assertFatalError(e1)
	bench.assertNoError(e2)
	bench.assertExaRegister(e2, "x", 0)
}

func TestMrdSeesPendingMessage(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("copy 1 m\n noop\n noop\n")
	e2 := bench.exa("noop\n test mrd\n noop\n noop\n")

	bench.runCycle()
	// The write this cycle is not yet visible.
	bench.assertFreezingError(e1)
	bench.assertExaRegister(e2, "t", 0)
	bench.runCycle()
	bench.assertExaRegister(e2, "t", 1)
}

func TestMrdReflectsPostDrainVisibility(t *testing.T) {
	bench := basicBench(t)
	writer := bench.exa("copy 1 m\n noop\n noop\n noop\n")
	tester := bench.exa("noop\n test mrd\n noop\n noop\n")
	reader := bench.exa("noop\n copy m x\n noop\n noop\n")

	bench.runCycle()
	bench.runCycle()
	// The reader consumed the message during the drain, so the latched
	// TEST MRD observes an empty bus even though the cycle started with
	// one visible message.
	bench.assertExaRegister(reader, "x", 1)
	bench.assertExaRegister(tester, "t", 0)
	bench.assertNoError(writer)
}

func TestReapPurgesPendingMessages(t *testing.T) {
	bench := basicBench(t)
	writer := bench.exa("copy 9 m\n")
	reader := bench.exa("noop\n noop\n copy m x\n noop\n")

	bench.runCycle()
	bench.assertFreezingError(writer)
	bench.runCycle()
	// Nobody read; the writer is still frozen with a visible message.
	bench.assertFreezingError(writer)
	writer.Err = fatalError("killed")
	bench.runCycle()
	// The writer was reaped at the start of this cycle, purging its
	// message before the reader's turn.
	bench.assertDead(writer)
	bench.assertBlockingError(reader)
	bench.assertExaRegister(reader, "x", 0)
}
