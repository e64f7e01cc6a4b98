//go:build windows

package main

// DebugConsole is a no-op stub on Windows: raw terminal control here
// follows the donor's own platform split (see terminal_host_windows.go).
type DebugConsole struct{}

func NewDebugConsole(machine *Machine) *DebugConsole { return &DebugConsole{} }

func (d *DebugConsole) Start()              {}
func (d *DebugConsole) Stop()               {}
func (d *DebugConsole) ShouldRunFrame() bool { return true }
func (d *DebugConsole) Quit() bool           { return false }
