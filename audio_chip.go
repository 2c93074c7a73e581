// audio_chip.go - Audio channel synthesis for the Redshift sound registers

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
audio_chip.go - Four-Channel Audio Synthesis

The sound host exposes four registers: two square channels, one triangle
and one noise. Each register value is a semitone count (60 = middle C);
zero mutes the channel. Sample generation runs phase-accumulator
oscillators at 44.1kHz; the noise channel clocks a 23-bit LFSR at its
programmed frequency.

Signal flow:
1. Register values map to oscillator frequencies
2. Per-sample oscillator generation
3. Active channels mix by simple average
4. Quantisation to interleaved stereo int16
*/

package main

import "math"

// ------------------------------------------------------------------------------
// Sample Rate and Register Mapping
// ------------------------------------------------------------------------------
const (
	SAMPLE_RATE = 44100 // Audio sample rate

	MIDDLE_C_FREQ        = 261.63 // Frequency of register value 60
	MIDDLE_C_SEMITONE    = 60
	SEMITONES_PER_OCTAVE = 12
)

// ------------------------------------------------------------------------------
// Channel Layout
// ------------------------------------------------------------------------------
const (
	AUDIO_CHANNEL_SQR0 = iota
	AUDIO_CHANNEL_SQR1
	AUDIO_CHANNEL_TRI0
	AUDIO_CHANNEL_NSE0
	AUDIO_NUM_CHANNELS
)

// ------------------------------------------------------------------------------
// Wave Types
// ------------------------------------------------------------------------------
const (
	WAVE_SQUARE = iota
	WAVE_TRIANGLE
	WAVE_NOISE
)

// ------------------------------------------------------------------------------
// Noise Generator LFSR
// ------------------------------------------------------------------------------
const (
	NOISE_LFSR_SEED = 0x7FFFFF // 23-bit LFSR seed
	NOISE_LFSR_MASK = 0x7FFFFF // 23-bit mask
	NOISE_TAP1      = 22       // Primary tap position
	NOISE_TAP2      = 17       // Secondary tap position
)

// ------------------------------------------------------------------------------
// Output Scaling
// ------------------------------------------------------------------------------
const OUTPUT_SCALE = 32767.0 // Float [-1,1] to int16

type AudioChannel struct {
	waveType  int
	frequency float64
	phase     float64
	enabled   bool

	// Noise channel state
	noisePhase float64
	noiseSR    uint32
	noiseValue float64
}

func NewAudioChannel(waveType int) *AudioChannel {
	return &AudioChannel{
		waveType: waveType,
		noiseSR:  NOISE_LFSR_SEED,
	}
}

// SetSemitone maps a sound register value onto the oscillator: 60 is
// middle C, each step is a semitone, zero silences the channel.
func (c *AudioChannel) SetSemitone(value int) {
	if value == 0 {
		c.enabled = false
		return
	}
	c.enabled = true
	steps := float64(value - MIDDLE_C_SEMITONE)
	c.frequency = MIDDLE_C_FREQ * math.Pow(2.0, steps/SEMITONES_PER_OCTAVE)
}

// Sample produces the next sample in [-1, 1] and advances the phase.
func (c *AudioChannel) Sample(sampleRate int) float64 {
	if !c.enabled {
		return 0.0
	}

	switch c.waveType {
	case WAVE_SQUARE:
		c.advancePhase(sampleRate)
		if c.phase < 0.5 {
			return 1.0
		}
		return -1.0

	case WAVE_TRIANGLE:
		c.advancePhase(sampleRate)
		return 4.0*math.Abs(c.phase-0.5) - 1.0

	case WAVE_NOISE:
		c.noisePhase += c.frequency / float64(sampleRate)
		for c.noisePhase >= 1.0 {
			c.noisePhase -= 1.0
			c.stepLFSR()
		}
		return c.noiseValue
	}
	return 0.0
}

func (c *AudioChannel) advancePhase(sampleRate int) {
	c.phase += c.frequency / float64(sampleRate)
	for c.phase >= 1.0 {
		c.phase -= 1.0
	}
}

func (c *AudioChannel) stepLFSR() {
	bit := ((c.noiseSR >> NOISE_TAP1) ^ (c.noiseSR >> NOISE_TAP2)) & 1
	c.noiseSR = ((c.noiseSR << 1) | bit) & NOISE_LFSR_MASK
	if c.noiseSR&1 == 1 {
		c.noiseValue = 1.0
	} else {
		c.noiseValue = -1.0
	}
}

// AudioChip owns the four channels and renders whole video frames of
// interleaved stereo PCM.
type AudioChip struct {
	sampleRate int
	channels   [AUDIO_NUM_CHANNELS]*AudioChannel
}

func NewAudioChip(sampleRate int) *AudioChip {
	return &AudioChip{
		sampleRate: sampleRate,
		channels: [AUDIO_NUM_CHANNELS]*AudioChannel{
			NewAudioChannel(WAVE_SQUARE),
			NewAudioChannel(WAVE_SQUARE),
			NewAudioChannel(WAVE_TRIANGLE),
			NewAudioChannel(WAVE_NOISE),
		},
	}
}

// RenderFrame fills buf (interleaved stereo, len = 2 * samples) from the
// current register values. Active channels mix by simple average.
func (chip *AudioChip) RenderFrame(buf []int16, registers [AUDIO_NUM_CHANNELS]int) {
	for i, v := range registers {
		chip.channels[i].SetSemitone(v)
	}

	active := 0
	for _, c := range chip.channels {
		if c.enabled {
			active++
		}
	}
	if active == 0 {
		for i := range buf {
			buf[i] = 0
		}
		return
	}

	samples := len(buf) / 2
	for s := 0; s < samples; s++ {
		mix := 0.0
		for _, c := range chip.channels {
			mix += c.Sample(chip.sampleRate)
		}
		value := int16(mix / float64(active) * OUTPUT_SCALE)
		buf[s*2] = value
		buf[s*2+1] = value
	}
}

// AudioFrame renders one video frame's worth of interleaved stereo PCM
// (44100/framerate samples per channel). Without graphical hardware the
// frame is silence.
func (vm *VM) AudioFrame() []int16 {
	samples := SAMPLE_RATE / vm.frameRate
	if len(vm.audioBuffer) != samples*2 {
		vm.audioBuffer = make([]int16, samples*2)
	}

	if vm.Redshift == nil || vm.audio == nil {
		for i := range vm.audioBuffer {
			vm.audioBuffer[i] = 0
		}
		return vm.audioBuffer
	}

	vm.audio.RenderFrame(vm.audioBuffer, [AUDIO_NUM_CHANNELS]int{
		vm.Redshift.Sqr0.Value,
		vm.Redshift.Sqr1.Value,
		vm.Redshift.Tri0.Value,
		vm.Redshift.Nse0.Value,
	})
	return vm.audioBuffer
}
