package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-wall/audio"
	"github.com/lixenwraith/tile-wall/config"
	"github.com/lixenwraith/tile-wall/engine"
	"github.com/lixenwraith/tile-wall/input"
	"github.com/lixenwraith/tile-wall/network"
	"github.com/lixenwraith/tile-wall/render"
	"github.com/lixenwraith/tile-wall/status"
)

const refreshInterval = time.Second

func main() {
	var screen tcell.Screen

	// Panic Recovery: Ensure terminal is reset even if the unit crashes
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTILEWALL CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cfg, err := config.Load("tilewall", os.Args[1:], config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	reg := status.NewRegistry()

	// Radio comes up before the terminal so a bind failure prints cleanly
	netCfg := cfg.Network()
	radio := network.NewRadio(netCfg, network.NewMulticastTransport(netCfg, reg), reg)

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	surface := render.NewTerminalSurface(screen, 1, 1, fmt.Sprintf("g%d %s", cfg.Group, radio.UnitID()))
	surface.SetFooter(func() string {
		return reg.Summary(status.UnitRole, status.RadioSent, status.RadioReceived)
	})
	drawHelp(screen)

	var sound engine.Sounder
	var soundManager *audio.SoundManager
	if cfg.Sound {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer sm.Cleanup()
			sound, soundManager = sm, sm
		}
	}
	muted := false

	unit := engine.NewUnit(cfg.Unit(), engine.NewRealClock(), radio, surface, sound, reg)
	radio.SetHandler(unit.Deliver)

	if err := radio.Start(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start radio on %s: %v\n", netCfg.Address, err)
		os.Exit(1)
	}
	defer radio.Stop()

	if gc := cfg.GPIO(); gc.Enabled() {
		buttons, err := input.OpenGPIOButtons(gc, unit)
		if err != nil {
			log.Printf("GPIO buttons unavailable: %v (continuing with keyboard only)", err)
		} else {
			defer buttons.Close()
		}
	}

	// Initial readout before the first poll tick
	surface.Flush()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mUNIT CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		runDone <- unit.Run(ctx)
	}()

	eventChan := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	refresh := time.NewTicker(refreshInterval)
	defer refresh.Stop()

	for {
		select {
		case ev := <-eventChan:
			intent := input.FromEvent(ev)
			switch intent.Type {
			case input.IntentQuit:
				cancel()
			case input.IntentMute:
				if soundManager != nil {
					muted = !muted
					soundManager.SetMuted(muted)
					log.Printf("sound muted=%v", muted)
				}
			case input.IntentResize:
				screen.Clear()
				drawHelp(screen)
				surface.Draw()
				screen.Sync()
			default:
				input.Apply(intent, unit)
			}

		case <-refresh.C:
			// Footer counters move without a tile change
			surface.Draw()
			screen.Show()

		case err := <-runDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("unit stopped: %v", err)
			}
			return
		}
	}
}

func drawHelp(screen tcell.Screen) {
	const help = "a: leader  b: start  m: mute  q: quit"
	for i, ch := range help {
		screen.SetContent(1+i, render.SurfaceHeight+2, ch, nil, render.StyleHelp)
	}
}
