// exa_error.go - Execution status errors for the EXA engine

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
exa_error.go - Execution Status Model

Every instruction handler reports its outcome as a nil *ExaError (success)
or an error of one of three classes, each with a distinct lifetime:

- Blocking: suspended for the remainder of this cycle only. The EXA
  retries the same instruction next cycle.
- Freezing: suspended indefinitely, until another actor clears it (a bus
  read releasing the writer, or the per-frame waiter release).
- Fatal: the EXA is dead. It is reaped at the start of the next cycle.

The scheduler switches on the class; nothing outside the VM inspects the
message text.
*/

package main

// ------------------------------------------------------------------------------
// Error Classes
// ------------------------------------------------------------------------------
const (
	ERROR_BLOCKING = iota // Cleared on next cycle entry
	ERROR_FREEZING        // Cleared by another actor
	ERROR_FATAL           // Permanent; reaped next cycle
)

type ExaError struct {
	Class   int
	Message string
}

func (e *ExaError) Error() string {
	switch e.Class {
	case ERROR_BLOCKING:
		return "blocking: " + e.Message
	case ERROR_FREEZING:
		return "freezing: " + e.Message
	default:
		return "fatal: " + e.Message
	}
}

func blockingError(message string) *ExaError {
	return &ExaError{Class: ERROR_BLOCKING, Message: message}
}

func freezingError(message string) *ExaError {
	return &ExaError{Class: ERROR_FREEZING, Message: message}
}

func fatalError(message string) *ExaError {
	return &ExaError{Class: ERROR_FATAL, Message: message}
}
