// audio_backend_oto.go - Oto audio backend

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

//go:build !headless

package main

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Keep at most this many queued frames before dropping the oldest; the
// VM produces frames on the video cadence, the device pulls on its own.
const OTO_MAX_PENDING_FRAMES = 4

// OtoPlayer streams frames of VM audio to the system mixer. The frontend
// queues one frame per video frame; the device thread drains the queue
// through Read and pads with silence when the VM falls behind.
type OtoPlayer struct {
	ctx     *oto.Context
	player  *oto.Player
	mutex   sync.Mutex
	pending []byte
	frame   int
	started bool
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &OtoPlayer{ctx: ctx}, nil
}

// QueueFrame appends one frame of interleaved stereo samples.
func (op *OtoPlayer) QueueFrame(samples []int16) {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.frame == 0 {
		op.frame = len(samples) * 2
	}
	if op.frame > 0 && len(op.pending) >= op.frame*OTO_MAX_PENDING_FRAMES {
		op.pending = op.pending[op.frame:]
	}
	for _, s := range samples {
		op.pending = append(op.pending, byte(uint16(s)), byte(uint16(s)>>8))
	}
}

// Read hands queued bytes to the device, zero-filling on underrun.
func (op *OtoPlayer) Read(p []byte) (int, error) {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	n := copy(p, op.pending)
	op.pending = op.pending[n:]
	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

func (op *OtoPlayer) Start() {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.player == nil {
		op.player = op.ctx.NewPlayer(op)
	}
	op.player.Play()
	op.started = true
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.player != nil {
		op.player.Pause()
	}
	op.started = false
}

func (op *OtoPlayer) Close() {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.player != nil {
		op.player.Close()
		op.player = nil
	}
	op.started = false
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}
