// video_backend_ebiten.go - Ebiten display and input frontend

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
video_backend_ebiten.go - Ebiten Frontend

Runs the VM at the display's frame cadence. Each tick latches the held
keys into the pad registers, releases WAITing EXAs, runs one frame's
cycle budget, queues one frame of audio and repaints the 120x100 bit
matrix.

Key mapping: arrows = d-pad, Enter = Start, Z/X/C = the X/Y/Z face
buttons, Escape quits.
*/

//go:build !headless

package main

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// ------------------------------------------------------------------------------
// Display Parameters
// ------------------------------------------------------------------------------
const (
	DISPLAY_SCALE_DEFAULT = 4
	DISPLAY_SCALE_MIN     = 1
	DISPLAY_SCALE_MAX     = 8

	RGBA_BYTES_PER_PIXEL = 4
	PIXEL_ON             = 0xFF
	PIXEL_OFF            = 0x00
)

type EbitenFrontend struct {
	vm     *VM
	audio  *OtoPlayer
	scale  int
	pixels []byte
}

func NewEbitenFrontend(vm *VM, audio *OtoPlayer, scale int) *EbitenFrontend {
	if scale < DISPLAY_SCALE_MIN {
		scale = DISPLAY_SCALE_MIN
	}
	if scale > DISPLAY_SCALE_MAX {
		scale = DISPLAY_SCALE_MAX
	}
	return &EbitenFrontend{
		vm:     vm,
		audio:  audio,
		scale:  scale,
		pixels: make([]byte, FRAMEBUFFER_PIXELS*RGBA_BYTES_PER_PIXEL),
	}
}

var ebitenPadKeys = map[ebiten.Key]int{
	ebiten.KeyArrowUp:    BUTTON_UP,
	ebiten.KeyArrowDown:  BUTTON_DOWN,
	ebiten.KeyArrowLeft:  BUTTON_LEFT,
	ebiten.KeyArrowRight: BUTTON_RIGHT,
	ebiten.KeyEnter:      BUTTON_START,
	ebiten.KeyZ:          BUTTON_X,
	ebiten.KeyX:          BUTTON_Y,
	ebiten.KeyC:          BUTTON_Z,
}

func (f *EbitenFrontend) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	f.vm.ResetInputs()
	f.vm.UnfreezeWaiters()
	for key, button := range ebitenPadKeys {
		if ebiten.IsKeyPressed(key) {
			f.vm.InputPressed(button)
		}
	}

	f.vm.RunForFrame()

	if f.audio != nil {
		f.audio.QueueFrame(f.vm.AudioFrame())
	}
	return nil
}

func (f *EbitenFrontend) Draw(screen *ebiten.Image) {
	framebuffer := f.vm.Render()
	for i, on := range framebuffer {
		v := byte(PIXEL_OFF)
		if on {
			v = PIXEL_ON
		}
		f.pixels[i*RGBA_BYTES_PER_PIXEL+0] = v
		f.pixels[i*RGBA_BYTES_PER_PIXEL+1] = v
		f.pixels[i*RGBA_BYTES_PER_PIXEL+2] = v
		f.pixels[i*RGBA_BYTES_PER_PIXEL+3] = 0xFF
	}
	screen.WritePixels(f.pixels)
}

func (f *EbitenFrontend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return FRAMEBUFFER_WIDTH, FRAMEBUFFER_HEIGHT
}

// Run opens the window and blocks until the player quits.
func (f *EbitenFrontend) Run() error {
	title := "Exa Engine"
	if f.vm.Redshift != nil && f.vm.Redshift.GameName != "" {
		title = f.vm.Redshift.GameName
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(FRAMEBUFFER_WIDTH*f.scale, FRAMEBUFFER_HEIGHT*f.scale)
	ebiten.SetTPS(f.vm.frameRate)

	if f.audio != nil {
		f.audio.Start()
		defer f.audio.Close()
	}
	return ebiten.RunGame(f)
}
