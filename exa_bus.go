// exa_bus.go - Message bus (the M register) for the EXA engine

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
exa_bus.go - Cycle-Scoped FIFO Message Bus

A write to the bus cannot be read in the cycle it was written; the
visible counter tracks the readable prefix and is refreshed from the
message list at each cycle start. Only one message may be read from a
bus per cycle (readAvailable). Writers freeze until their message is
read; the reader learns the sender's name so the scheduler can release
the writer in the same cycle.
*/

package main

type Message struct {
	Sender string
	Value  int
}

type MessageBus struct {
	messages      []Message
	visible       int
	readAvailable bool
}

func NewMessageBus() *MessageBus {
	return &MessageBus{readAvailable: true}
}

// Read removes and returns the first visible message, consuming this
// cycle's read bandwidth. Both failure modes are Blocking.
func (b *MessageBus) Read() (Message, *ExaError) {
	if !b.readAvailable {
		return Message{}, blockingError("no available read bandwidth on bus")
	}
	if b.visible == 0 || len(b.messages) == 0 {
		return Message{}, blockingError("no messages available to read")
	}
	read := b.messages[0]
	b.messages = b.messages[1:]
	b.visible--
	b.readAvailable = false
	return read, nil
}

// Write appends a message. The write itself succeeds, but the writer
// always freezes until the message is read.
func (b *MessageBus) Write(sender string, value int) *ExaError {
	b.messages = append(b.messages, Message{Sender: sender, Value: value})
	return freezingError("bus write successful, freezing until it is read")
}

// StartOfCycle resets read bandwidth and promotes last cycle's writes
// into the visible prefix. Runs before any EXA executes.
func (b *MessageBus) StartOfCycle() {
	b.readAvailable = true
	b.visible = len(b.messages)
}

// HasVisible reports whether a read could observe a message right now.
func (b *MessageBus) HasVisible() bool {
	return b.visible > 0
}

// PurgeSender removes every pending message from the named sender. Runs
// when that EXA is reaped.
func (b *MessageBus) PurgeSender(name string) {
	kept := b.messages[:0]
	for _, m := range b.messages {
		if m.Sender != name {
			kept = append(kept, m)
		}
	}
	if removed := len(b.messages) - len(kept); removed > 0 {
		b.messages = kept
		if b.visible > len(b.messages) {
			b.visible = len(b.messages)
		}
	}
}
