package main

import "testing"

func benchVM(b *testing.B, redshift bool, script string) *VM {
	b.Helper()

	var vm *VM
	var host *Host
	if redshift {
		vm = NewRedshiftVM()
		host = vm.Hosts["core"]
	} else {
		vm = NewVM()
		h1 := NewHost("start", 4)
		h1.AddRegister("#REG", NewRegister(PERM_READ_WRITE, 100))
		h2 := NewHost("end", 4)
		vm.AddHost(h1)
		vm.AddHost(h2)
		vm.AddLink(800, h1, h2)
		vm.AddLink(-1, h2, h1)
		host = h1
	}
	vm.SetShuffle(false)
	vm.Seed(1)

	if _, err := Spawn(vm, host, "x0", redshift, script); err != nil {
		b.Fatalf("spawn: %v", err)
	}
	return vm
}

func BenchmarkCopyRegisterLoop(b *testing.B) {
	vm := benchVM(b, false, "mark a\n copy 1 x\n jump a\n")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm.RunCycle()
	}
}

func BenchmarkRandLoop(b *testing.B) {
	vm := benchVM(b, false, "mark a\n rand 1 100 x\n jump a\n")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm.RunCycle()
	}
}

func BenchmarkRandGXWithSpriteDefined(b *testing.B) {
	vm := benchVM(b, true, "copy 301 gp\n mark a\n rand 1 100 gx\n jump a\n")
	vm.RunCycle()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm.RunCycle()
	}
}

func BenchmarkAudioFrame(b *testing.B) {
	vm := NewRedshiftVM()
	vm.Redshift.Sqr0.Store(60)
	vm.Redshift.Tri0.Store(48)
	vm.Redshift.Nse0.Store(72)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm.AudioFrame()
	}
}
