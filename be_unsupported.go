//go:build !(amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm)

package main

// This emulator uses unsafe.Pointer byte-slice aliasing for audio sample
// packing, which assumes little-endian byte order.
var _ = "requires a little-endian architecture" + 1
