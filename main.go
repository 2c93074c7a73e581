// main.go - Main entry point for the Exa Engine virtual machine

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

package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	headless := flag.Bool("headless", false, "run without display or audio")
	monitor := flag.Bool("monitor", false, "drop into the interactive machine monitor")
	cycles := flag.Int("cycles", 0, "with -headless, number of cycles to run (0 = one frame)")
	scale := flag.Int("scale", DISPLAY_SCALE_DEFAULT, "window scale factor")
	seed := flag.Int64("seed", 0, "seed the VM RNG (0 = time-based)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: exa_engine [flags] rom.png")
		flag.PrintDefaults()
		os.Exit(1)
	}

	vm, err := LoadROM(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		vm.Seed(*seed)
	}

	fmt.Printf("Loaded %q: %d exas\n", vm.Redshift.GameName, len(vm.Exas))

	switch {
	case *monitor:
		if err := NewExaMonitor(vm).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Monitor error: %v\n", err)
			os.Exit(1)
		}

	case *headless:
		if *cycles > 0 {
			vm.RunCycles(*cycles)
		} else {
			vm.RunForFrame()
		}
		fmt.Println(vm)

	default:
		audio, err := NewOtoPlayer(SAMPLE_RATE)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialise sound: %v\n", err)
			os.Exit(1)
		}
		frontend := NewEbitenFrontend(vm, audio, *scale)
		if err := frontend.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Display error: %v\n", err)
			os.Exit(1)
		}
	}
}
