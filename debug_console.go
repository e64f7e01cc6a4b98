//go:build !windows

// debug_console.go - raw-stdin interactive debug console for headless runs

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// DebugConsole puts the controlling terminal in raw mode and reads single
// keypresses into commands for a headless run: 'p' toggles pause, 's'
// steps one frame while paused, 'r' hard-resets the machine, 'q' quits.
// Only instantiated by runHeadless when -debug-console is set.
type DebugConsole struct {
	machine *Machine

	fd           int
	oldTermState *term.State
	nonblockSet  bool

	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once

	mu      sync.Mutex
	paused  bool
	quit    bool
	stepReq bool
}

func NewDebugConsole(machine *Machine) *DebugConsole {
	return &DebugConsole{
		machine: machine,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start enters raw mode and begins reading commands in a goroutine.
func (d *DebugConsole) Start() {
	d.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(d.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug_console: failed to set raw mode: %v\n", err)
		close(d.done)
		return
	}
	d.oldTermState = oldState

	if err := syscall.SetNonblock(d.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "debug_console: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(d.fd, d.oldTermState)
		d.oldTermState = nil
		close(d.done)
		return
	}
	d.nonblockSet = true

	fmt.Fprintln(os.Stderr, "debug console: p=pause/resume s=step r=hard-reset q=quit")

	go func() {
		defer close(d.done)
		buf := make([]byte, 1)
		for {
			select {
			case <-d.stopCh:
				return
			default:
			}
			n, err := syscall.Read(d.fd, buf)
			if n > 0 {
				d.handleKey(buf[0])
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
		}
	}()
}

func (d *DebugConsole) handleKey(b byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch b {
	case 'p', 'P':
		d.paused = !d.paused
	case 's', 'S':
		d.stepReq = true
	case 'r', 'R':
		d.machine.HardReset()
	case 'q', 'Q':
		d.quit = true
	}
}

// ShouldRunFrame reports whether the caller's frame loop should advance
// the machine this iteration, consuming a pending single-step request.
func (d *DebugConsole) ShouldRunFrame() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.paused {
		return true
	}
	if d.stepReq {
		d.stepReq = false
		return true
	}
	return false
}

func (d *DebugConsole) Quit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quit
}

// Stop terminates the reader goroutine and restores the terminal.
func (d *DebugConsole) Stop() {
	d.stopped.Do(func() {
		close(d.stopCh)
	})
	<-d.done
	if d.nonblockSet {
		_ = syscall.SetNonblock(d.fd, false)
		d.nonblockSet = false
	}
	if d.oldTermState != nil {
		_ = term.Restore(d.fd, d.oldTermState)
		d.oldTermState = nil
	}
}
