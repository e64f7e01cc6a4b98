// main.go - Amiga A500 (OCS/ECS) entry point

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

import (
	"flag"
	"fmt"
	"os"
	"time"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m")
	fmt.Println("\nA cycle-accurate Amiga A500 (OCS/ECS) chipset emulator.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	romPath := flag.String("rom", "", "path to a Kickstart ROM image")
	diskPath := flag.String("disk", "", "path to an ADF floppy disk image")
	ntsc := flag.Bool("ntsc", false, "run at NTSC timing instead of PAL")
	verbose := flag.Bool("verbose", false, "log chipset activity")
	headless := flag.Bool("headless", false, "run without opening a display window")
	audioBackend := flag.String("audio-backend", "oto", "audio output backend: oto or alsa")
	debugConsole := flag.Bool("debug-console", false, "enable the raw-stdin pause/step/reset console in headless mode")
	flag.Parse()

	boilerPlate()

	if *romPath == "" {
		fmt.Println("Usage: amiga -rom kickstart.rom [-disk game.adf] [-ntsc] [-verbose] [-headless]")
		os.Exit(1)
	}

	rom, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Printf("failed to read ROM %q: %v\n", *romPath, err)
		os.Exit(1)
	}

	cfg := MachineConfig{
		Model:      ModelA500,
		Chipset:    ChipsetECS,
		ROM:        rom,
		PAL:        !*ntsc,
		SampleRate: DefaultAudioSampleRate,
		Verbose:    *verbose,
	}

	machine := NewMachine(cfg)

	if *diskPath != "" {
		data, err := os.ReadFile(*diskPath)
		if err != nil {
			fmt.Printf("failed to read disk image %q: %v\n", *diskPath, err)
			os.Exit(1)
		}
		adf, err := NewAdfImage(data)
		if err != nil {
			fmt.Printf("failed to load disk image %q: %v\n", *diskPath, err)
			os.Exit(1)
		}
		machine.Disk.InsertDisk(adf)
		amigaLogf(cfg.Verbose, "inserted disk %s", *diskPath)
	}

	backend := VIDEO_BACKEND_EBITEN
	if *headless {
		runHeadless(machine, cfg, *audioBackend, *debugConsole)
		return
	}

	video, err := NewVideoOutput(backend)
	if err != nil {
		fmt.Printf("failed to initialize video: %v\n", err)
		os.Exit(1)
	}

	audio, err := newAudioPlayer(*audioBackend, cfg.sampleRate())
	if err != nil {
		fmt.Printf("failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	audio.SetupPlayer(machine.Paula)

	if err := video.SetDisplayConfig(DisplayConfig{
		Width:       FramebufferLoResWidth,
		Height:      FramebufferHeight,
		Scale:       2,
		RefreshRate: 50,
		PixelFormat: PixelFormatRGBA,
		VSync:       true,
	}); err != nil {
		fmt.Printf("failed to configure video: %v\n", err)
		os.Exit(1)
	}

	if kb, ok := video.(KeyboardInput); ok {
		kb.SetKeyHandler(func(b byte) {
			machine.Keyboard.KeyEvent(b, true)
			machine.Keyboard.KeyEvent(b, false)
		})
	}
	if hr, ok := video.(HardResettable); ok {
		hr.SetHardResetHandler(machine.HardReset)
	}

	if err := video.Start(); err != nil {
		fmt.Printf("failed to start video: %v\n", err)
		os.Exit(1)
	}
	audio.Start()
	defer audio.Stop()

	for video.IsStarted() {
		machine.RunFrame()
		if err := video.UpdateFrame(machine.Denise.Framebuffer); err != nil {
			return
		}
		_ = video.WaitForVSync()
	}
}

func runHeadless(machine *Machine, cfg MachineConfig, audioBackend string, debugConsole bool) {
	audio, err := newAudioPlayer(audioBackend, cfg.sampleRate())
	if err == nil {
		audio.SetupPlayer(machine.Paula)
		audio.Start()
		defer audio.Stop()
	}

	if !debugConsole {
		for {
			machine.RunFrame()
		}
	}

	console := NewDebugConsole(machine)
	console.Start()
	defer console.Stop()
	for !console.Quit() {
		if console.ShouldRunFrame() {
			machine.RunFrame()
		} else {
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// newAudioPlayer selects the sample sink that drains Paula's stereo
// output: Oto's portable backend by default, or ALSA direct on Linux.
func newAudioPlayer(backend string, sampleRate int) (AudioPlayer, error) {
	if backend == "alsa" {
		return NewALSAPlayer(sampleRate)
	}
	return NewOtoPlayer(sampleRate)
}
