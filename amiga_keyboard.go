// amiga_keyboard.go - keyboard scan-code serial injection into CIA-A

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

// Keyboard models the Amiga's keyboard as an 8-bit serial device: each
// key transition shifts one inverted, rotated scan-code byte into CIA-A's
// serial data register, then waits for the host handshake pulse before
// the next queued event goes out.
type Keyboard struct {
	cia   *CIA
	queue []byte
	busy  bool
}

func NewKeyboard(ciaA *CIA) *Keyboard {
	return &Keyboard{cia: ciaA}
}

// KeyEvent encodes keycode/pressed into the Amiga wire format: the raw
// code shifted left one bit with the up/down flag in bit 0, then
// bit-inverted as the real keyboard transmits.
func (k *Keyboard) KeyEvent(keycode byte, pressed bool) {
	code := keycode << 1
	if !pressed {
		code |= 1
	}
	k.queue = append(k.queue, ^code)
	k.pump()
}

func (k *Keyboard) pump() {
	if k.busy || len(k.queue) == 0 {
		return
	}
	b := k.queue[0]
	k.queue = k.queue[1:]
	k.busy = true
	k.cia.LoadSerialByte(b)
}

// KeyboardHandshake is called when the host handshake line pulses,
// acknowledging receipt of the last transmitted scan code and releasing
// the next queued key event.
func (k *Keyboard) KeyboardHandshake() {
	k.busy = false
	k.pump()
}
