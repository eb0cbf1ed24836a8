// Command wall-sim runs several units in one terminal over a simulated lossy radio
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-wall/config"
	"github.com/lixenwraith/tile-wall/engine"
	"github.com/lixenwraith/tile-wall/input"
	"github.com/lixenwraith/tile-wall/logfile"
	"github.com/lixenwraith/tile-wall/network"
	"github.com/lixenwraith/tile-wall/render"
	"github.com/lixenwraith/tile-wall/status"
)

const (
	refreshInterval = 250 * time.Millisecond
	surfaceGap      = 1
	surfaceTop      = 2
)

// simUnit is one simulated display unit and its radio attachment
type simUnit struct {
	label   string
	unit    *engine.Unit
	radio   *network.Radio
	surface *render.TerminalSurface
	reg     *status.Registry
	powered bool
}

// wall owns the simulated units; all fields are touched by the main loop only
type wall struct {
	screen  tcell.Screen
	units   []*simUnit
	focus   int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	autoRun bool
}

func main() {
	var screen tcell.Screen

	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mWALL-SIM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cfg, err := config.Load("wall-sim", os.Args[1:], config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if logFile := logfile.Setup(cfg.Debug, "logs", "wall-sim.log", logfile.DefaultMaxSize); logFile != nil {
		defer logFile.Close()
	}

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	w := newWall(screen, cfg)
	defer w.shutdown()

	// Unit 1 boots immediately; later units join one by one
	w.power(0)
	w.draw()

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
			if !w.handle(input.FromEvent(ev)) {
				return
			}
		case <-refresh.C:
			if w.autoRun {
				w.autoJoin()
			}
			w.draw()
		}
	}
}

func newWall(screen tcell.Screen, cfg *config.Config) *wall {
	bus := network.NewBus(cfg.Bus())
	ctx, cancel := context.WithCancel(context.Background())
	w := &wall{screen: screen, ctx: ctx, cancel: cancel, autoRun: true}

	for i := 0; i < cfg.Units; i++ {
		su := &simUnit{
			label: fmt.Sprintf("u%d", i+1),
			reg:   status.NewRegistry(),
		}
		x := 1 + i*(render.FrameWidth+surfaceGap)
		su.surface = render.NewTerminalSurface(screen, x, surfaceTop, su.label)
		su.surface.SetFooter(su.footer)

		netCfg := cfg.Network()
		netCfg.UnitID = fmt.Sprintf("%s-%s", cfg.UnitID, su.label)
		su.radio = network.NewRadio(netCfg, bus.Port(), su.reg)
		su.unit = engine.NewUnit(cfg.Unit(), engine.NewRealClock(), su.radio, su.surface, nil, su.reg)
		su.radio.SetHandler(su.unit.Deliver)

		w.units = append(w.units, su)
	}
	return w
}

// footer shows the global columns a unit covers once it holds a role
func (su *simUnit) footer() string {
	index, ok := engine.ScreenIndex(su.unit.Snapshot().Role)
	if !ok {
		return "waiting"
	}
	first, last := render.TileSpan(index)
	return fmt.Sprintf("x%d-%d", first, last)
}

// power switches a unit on: its radio starts listening and its runtime starts polling
func (w *wall) power(i int) {
	su := w.units[i]
	if su.powered {
		return
	}
	if err := su.radio.Start(); err != nil {
		log.Printf("wall-sim: %s radio: %v", su.label, err)
		return
	}
	su.powered = true
	log.Printf("wall-sim: %s powered on", su.label)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		su.unit.Run(w.ctx)
	}()
}

// autoJoin powers the next unit once every powered unit holds a role
// Units must join one at a time: an address grant is adopted by every unassigned listener
func (w *wall) autoJoin() {
	var leader bool
	for _, su := range w.units {
		if !su.powered {
			if leader {
				w.power(indexOf(w.units, su))
			}
			return
		}
		switch su.unit.Snapshot().Role.(type) {
		case engine.Unassigned:
			return
		case engine.Leader:
			leader = true
		}
	}
}

func indexOf(units []*simUnit, target *simUnit) int {
	for i, su := range units {
		if su == target {
			return i
		}
	}
	return -1
}

// handle applies one intent, returning false to quit
func (w *wall) handle(intent input.Intent) bool {
	n := len(w.units)
	switch intent.Type {
	case input.IntentQuit:
		return false
	case input.IntentFocusNext:
		w.focus = (w.focus + 1) % n
	case input.IntentFocusPrev:
		w.focus = (w.focus + n - 1) % n
	case input.IntentFocus:
		if intent.Index >= 1 && intent.Index <= n {
			w.focus = intent.Index - 1
		}
	case input.IntentPower:
		// Manual power switches off automatic joining
		w.autoRun = false
		w.power(w.focus)
	case input.IntentResize:
		w.screen.Clear()
		w.draw()
		w.screen.Sync()
		return true
	default:
		su := w.units[w.focus]
		if su.powered {
			input.Apply(intent, su.unit)
		}
	}
	w.draw()
	return true
}

func (w *wall) draw() {
	for i, su := range w.units {
		x := 1 + i*(render.FrameWidth+surfaceGap)
		marker := ' '
		if i == w.focus {
			marker = '▼'
		}
		for dx := 0; dx < render.FrameWidth; dx++ {
			w.screen.SetContent(x+dx, surfaceTop-1, ' ', nil, render.StyleFocus)
		}
		w.screen.SetContent(x+render.FrameWidth/2, surfaceTop-1, marker, nil, render.StyleFocus)
		if su.powered {
			su.surface.Draw()
		}
	}

	help := "1-9/tab: focus  a: leader  b: start  p: power  q: quit"
	if w.autoRun {
		help += "  (auto-join)"
	}
	y := surfaceTop + render.SurfaceHeight + 1
	width, _ := w.screen.Size()
	for x := 0; x < width; x++ {
		ch := ' '
		if x > 0 && x-1 < len(help) {
			ch = rune(help[x-1])
		}
		w.screen.SetContent(x, y, ch, nil, render.StyleHelp)
	}
	w.screen.Show()
}

func (w *wall) shutdown() {
	w.cancel()
	w.wg.Wait()
	for _, su := range w.units {
		if su.powered {
			su.radio.Stop()
		}
	}
}
