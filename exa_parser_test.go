package main

import "testing"

func TestParseText(t *testing.T) {
	s := `LINK 800
        copy   1    x

@rep 2
 addi @{-5,-4} 1 x ; comment
     @end
muli 1 0 #nrv
note we groovin`

	insts, err := ParseScript(s)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := []Instruction{
		{Op: OP_LINK, A: LiteralTarget(800)},
		{Op: OP_COPY, A: LiteralTarget(1), Dst: RegisterTarget("x")},
		{Op: OP_ADDI, A: LiteralTarget(-5), B: LiteralTarget(1), Dst: RegisterTarget("x")},
		{Op: OP_ADDI, A: LiteralTarget(-9), B: LiteralTarget(1), Dst: RegisterTarget("x")},
		{Op: OP_MULI, A: LiteralTarget(1), B: LiteralTarget(0), Dst: RegisterTarget("#nrv")},
	}
	if len(insts) != len(want) {
		t.Fatalf("got %d instructions, want %d: %+v", len(insts), len(want), insts)
	}
	for i := range want {
		if insts[i].Op != want[i].Op || insts[i].A != want[i].A ||
			insts[i].B != want[i].B || insts[i].Dst != want[i].Dst {
			t.Fatalf("instruction %d: got %+v, want %+v", i, insts[i], want[i])
		}
	}
}

func TestParseLiteralBounds(t *testing.T) {
	if _, err := ParseScript("addi -9999 9999 x\n"); err != nil {
		t.Fatalf("bounds are inclusive: %v", err)
	}
	if _, err := ParseScript("copy 10000 x\n"); err == nil {
		t.Fatalf("out-of-range literal should fail")
	}
	if _, err := ParseScript("copy -10000 x\n"); err == nil {
		t.Fatalf("out-of-range literal should fail")
	}
}

func TestParseMLimit(t *testing.T) {
	if _, err := ParseScript("copy 1 m\n"); err != nil {
		t.Fatalf("single m reference is fine: %v", err)
	}
	if _, err := ParseScript("copy m m\n"); err == nil {
		t.Fatalf("two m references in one instruction should fail")
	}
	if _, err := ParseScript("addi m m x\n"); err == nil {
		t.Fatalf("two m references in one instruction should fail")
	}
}

func TestParseComments(t *testing.T) {
	insts, err := ParseScript("noop ; trailing\n; full line\nNOTE shouting\ncopy 1 x note inline\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(insts) != 2 || insts[0].Op != OP_NOOP || insts[1].Op != OP_COPY {
		t.Fatalf("comments should strip away: %+v", insts)
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	insts, err := ParseScript("CoPy 1 X\nTEST X = 1\nTeSt EOF\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if insts[0].Op != OP_COPY || insts[0].Dst != RegisterTarget("x") {
		t.Fatalf("keywords and registers should fold to lowercase: %+v", insts[0])
	}
	if insts[1].Op != OP_TEST || insts[2].Op != OP_TEST_EOF {
		t.Fatalf("test forms misparsed: %+v", insts)
	}
}

func TestParseUnknownInstruction(t *testing.T) {
	if _, err := ParseScript("frobnicate 1 2\n"); err == nil {
		t.Fatalf("unknown instruction should fail")
	}
}

func TestParseDataValues(t *testing.T) {
	insts, err := ParseScript("data 1 -2 3\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if insts[0].Op != OP_DATA || len(insts[0].Data) != 3 || insts[0].Data[1] != -2 {
		t.Fatalf("data misparsed: %+v", insts[0])
	}
	if _, err := ParseScript("data 10000\n"); err == nil {
		t.Fatalf("out-of-range data value should fail")
	}
}

func TestParseRepWithoutEnd(t *testing.T) {
	if _, err := ParseScript("@rep 2\nnoop\n"); err == nil {
		t.Fatalf("unterminated @rep should fail")
	}
	if _, err := ParseScript("@end\n"); err == nil {
		t.Fatalf("stray @end should fail")
	}
}

func TestParseArithmeticNeedsRegisterDst(t *testing.T) {
	if _, err := ParseScript("addi 1 2 3\n"); err == nil {
		t.Fatalf("literal destination should fail to parse")
	}
}
