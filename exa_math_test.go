package main

import "testing"

func TestAddi(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("addi 4 -10 x\n")
	e2 := bench.exa("addi 5000 5000 x\n")
	e3 := bench.exa("addi -9999 -9999 x\n")

	bench.runCycle()
	bench.assertExaRegister(e1, "x", -6)
	bench.assertExaRegister(e2, "x", 9999)
	bench.assertExaRegister(e3, "x", -9999)
}

func TestSubi(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("subi 4 -10 x\n")
	e2 := bench.exa("subi 5000 -5000 x\n")
	e3 := bench.exa("subi -9999 -9999 x\n")
	e4 := bench.exa("subi -5000 5000 x\n")

	bench.runCycle()
	bench.assertExaRegister(e1, "x", 14)
	bench.assertExaRegister(e2, "x", 9999)
	bench.assertExaRegister(e3, "x", 0)
	bench.assertExaRegister(e4, "x", -9999)
}

func TestMuli(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("muli 4 -10 x\n")
	e2 := bench.exa("muli 5000 -5000 x\n")
	e3 := bench.exa("muli -9999 0 x\n")
	e4 := bench.exa("muli -5000 5000 x\n")

	bench.runCycle()
	bench.assertExaRegister(e1, "x", -40)
	bench.assertExaRegister(e2, "x", -9999)
	bench.assertExaRegister(e3, "x", 0)
	bench.assertExaRegister(e4, "x", -9999)
}

func TestDivi(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("divi 40 4 x\n")
	e2 := bench.exa("divi 40 -4 x\n")
	e3 := bench.exa("divi -9999 0 x\n")
	e4 := bench.exa("divi -9999 -3 x\n")

	bench.runCycle()
	bench.assertExaRegister(e1, "x", 10)
	bench.assertExaRegister(e2, "x", -10)
	bench.assertFatalError(e3)
	bench.assertExaRegister(e4, "x", 3333)
}

func TestDiviRoundsTowardsZero(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("divi 41 4 x\n")
	e2 := bench.exa("divi 39 4 x\n")
	e3 := bench.exa("divi -41 4 x\n")
	e4 := bench.exa("divi -39 4 x\n")

	bench.runCycle()
	bench.assertExaRegister(e1, "x", 10)
	bench.assertExaRegister(e2, "x", 9)
	bench.assertExaRegister(e3, "x", -10)
	bench.assertExaRegister(e4, "x", -9)
}

func TestModi(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("modi 4 4 x\n")
	e2 := bench.exa("modi 5 4 x\n")
	e3 := bench.exa("modi -4 4 x\n")
	e4 := bench.exa("modi -5 4 x\n")

	bench.runCycle()
	bench.assertExaRegister(e1, "x", 0)
	bench.assertExaRegister(e2, "x", 1)
	bench.assertExaRegister(e3, "x", 0)
	bench.assertExaRegister(e4, "x", 3)
}

func TestModiByZero(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("modi 5 0 x\n")

	bench.runCycle()
	bench.assertFatalError(e1)
}

func TestModiNeg(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("copy 80 t\n modi -1 t t\n modi -1 t t\n")

	bench.runCycle()
	bench.assertExaRegister(e1, "t", 80)
	bench.runCycle()
	bench.assertExaRegister(e1, "t", 79)
	bench.runCycle()
	bench.assertExaRegister(e1, "t", 78)
}

func TestSwiz(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("swiz -1579 0032 x\n")
	e2 := bench.exa("swiz 1234 1234 x\n")

	bench.runCycle()
	bench.assertExaRegister(e1, "x", -57)
	bench.assertExaRegister(e2, "x", 4321)
}

func TestSwizSign(t *testing.T) {
	bench := basicBench(t)
	e3 := bench.exa("swiz 12 1234 x\n")
	e4 := bench.exa("swiz -12 1234 x\n")
	e5 := bench.exa("swiz 12 -1234 x\n")
	e6 := bench.exa("swiz -12 -1234 x\n")

	bench.runCycle()
	bench.assertExaRegister(e3, "x", 2100)
	bench.assertExaRegister(e4, "x", -2100)
	bench.assertExaRegister(e5, "x", -2100)
	bench.assertExaRegister(e6, "x", 2100)
}

func TestSwizZeroAndHighMaskDigits(t *testing.T) {
	bench := basicBench(t)
	e1 := bench.exa("swiz 9876 5678 x\n")

	bench.runCycle()
	// Mask digits outside 1..4 contribute nothing.
	bench.assertExaRegister(e1, "x", 0)
}
