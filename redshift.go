// redshift.go - The Redshift handheld hardware profile

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
redshift.go - Redshift Hardware Profile

Preconstructs the handheld's topology: five hosts (core, input, sound,
aux1, aux2), forward links 800-803 out of core with -1 return links, the
read-only pad registers on input and the read-write audio channel
registers on sound. The frontend latches controller state into the pad
registers between frames and releases WAITing EXAs at the same cadence.
*/

package main

// ------------------------------------------------------------------------------
// Host Capacities
// ------------------------------------------------------------------------------
const (
	REDSHIFT_CORE_CAPACITY  = 18
	REDSHIFT_INPUT_CAPACITY = 24
	REDSHIFT_SOUND_CAPACITY = 24
	REDSHIFT_AUX_CAPACITY   = 3
)

// ------------------------------------------------------------------------------
// Link Numbers
// ------------------------------------------------------------------------------
const (
	LINK_CORE_TO_INPUT = 800
	LINK_CORE_TO_SOUND = 801
	LINK_CORE_TO_AUX1  = 802
	LINK_CORE_TO_AUX2  = 803
	LINK_RETURN        = -1
)

// ------------------------------------------------------------------------------
// Audio Channel Register Range
// ------------------------------------------------------------------------------
const (
	AUDIO_REGISTER_MIN = 0
	AUDIO_REGISTER_MAX = 99
)

// ------------------------------------------------------------------------------
// Pad Button Weights (#PADB chords sum)
// ------------------------------------------------------------------------------
const (
	PADB_START_WEIGHT = 1000
	PADB_Z_WEIGHT     = 100
	PADB_Y_WEIGHT     = 10
	PADB_X_WEIGHT     = 1
)

// ------------------------------------------------------------------------------
// Buttons
// ------------------------------------------------------------------------------
const (
	BUTTON_UP = iota
	BUTTON_DOWN
	BUTTON_LEFT
	BUTTON_RIGHT
	BUTTON_START
	BUTTON_X
	BUTTON_Y
	BUTTON_Z
)

// RedshiftEnvironment aggregates the profile's hardware registers and
// the name of the loaded game.
type RedshiftEnvironment struct {
	GameName string

	PadX *Register
	PadY *Register
	PadB *Register
	EN3D *Register

	Sqr0 *Register
	Sqr1 *Register
	Tri0 *Register
	Nse0 *Register
}

// NewRedshiftVM builds a VM wired to the Redshift hardware layout.
func NewRedshiftVM() *VM {
	vm := NewVM()

	core := NewHost("core", REDSHIFT_CORE_CAPACITY)
	input := NewHost("input", REDSHIFT_INPUT_CAPACITY)
	sound := NewHost("sound", REDSHIFT_SOUND_CAPACITY)
	aux1 := NewHost("aux1", REDSHIFT_AUX_CAPACITY)
	aux2 := NewHost("aux2", REDSHIFT_AUX_CAPACITY)

	env := &RedshiftEnvironment{
		PadX: NewRegister(PERM_READ_ONLY, 0),
		PadY: NewRegister(PERM_READ_ONLY, 0),
		PadB: NewRegister(PERM_READ_ONLY, 0),
		EN3D: NewRegister(PERM_READ_ONLY, 0),
		Sqr0: NewClampedRegister(PERM_READ_WRITE, 0, AUDIO_REGISTER_MIN, AUDIO_REGISTER_MAX),
		Sqr1: NewClampedRegister(PERM_READ_WRITE, 0, AUDIO_REGISTER_MIN, AUDIO_REGISTER_MAX),
		Tri0: NewClampedRegister(PERM_READ_WRITE, 0, AUDIO_REGISTER_MIN, AUDIO_REGISTER_MAX),
		Nse0: NewClampedRegister(PERM_READ_WRITE, 0, AUDIO_REGISTER_MIN, AUDIO_REGISTER_MAX),
	}

	input.AddRegister("#PADX", env.PadX)
	input.AddRegister("#PADY", env.PadY)
	input.AddRegister("#PADB", env.PadB)
	input.AddRegister("#EN3D", env.EN3D)

	sound.AddRegister("#SQR0", env.Sqr0)
	sound.AddRegister("#SQR1", env.Sqr1)
	sound.AddRegister("#TRI0", env.Tri0)
	sound.AddRegister("#NSE0", env.Nse0)

	vm.AddHost(core)
	vm.AddHost(input)
	vm.AddHost(sound)
	vm.AddHost(aux1)
	vm.AddHost(aux2)

	vm.AddLink(LINK_CORE_TO_INPUT, core, input)
	vm.AddLink(LINK_RETURN, input, core)
	vm.AddLink(LINK_CORE_TO_SOUND, core, sound)
	vm.AddLink(LINK_RETURN, sound, core)
	vm.AddLink(LINK_CORE_TO_AUX1, core, aux1)
	vm.AddLink(LINK_RETURN, aux1, core)
	vm.AddLink(LINK_CORE_TO_AUX2, core, aux2)
	vm.AddLink(LINK_RETURN, aux2, core)

	vm.Redshift = env
	vm.audio = NewAudioChip(SAMPLE_RATE)
	return vm
}

// ResetInputs clears the pad registers. Runs once per input frame,
// before the pressed buttons are latched.
func (vm *VM) ResetInputs() {
	if vm.Redshift == nil {
		return
	}
	vm.Redshift.PadX.Value = 0
	vm.Redshift.PadY.Value = 0
	vm.Redshift.PadB.Value = 0
}

// InputPressed latches one held button. Direction pairs overwrite their
// axis; face buttons add weights into #PADB so chords read as sums.
func (vm *VM) InputPressed(button int) {
	if vm.Redshift == nil {
		return
	}
	switch button {
	case BUTTON_LEFT:
		vm.Redshift.PadX.Value = -1
	case BUTTON_RIGHT:
		vm.Redshift.PadX.Value = 1
	case BUTTON_UP:
		vm.Redshift.PadY.Value = -1
	case BUTTON_DOWN:
		vm.Redshift.PadY.Value = 1
	case BUTTON_START:
		vm.Redshift.PadB.Value += PADB_START_WEIGHT
	case BUTTON_Z:
		vm.Redshift.PadB.Value += PADB_Z_WEIGHT
	case BUTTON_Y:
		vm.Redshift.PadB.Value += PADB_Y_WEIGHT
	case BUTTON_X:
		vm.Redshift.PadB.Value += PADB_X_WEIGHT
	}
}

// UnfreezeWaiters releases every EXA suspended on WAIT. The frontend
// calls this once per input frame.
func (vm *VM) UnfreezeWaiters() {
	for _, e := range vm.Exas {
		if e.Waiting && e.isFrozen() {
			e.Unfreeze()
		}
	}
}
