//go:build linux

package input

import (
	"fmt"
	"log"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOButtons watches two GPIO lines and forwards falling edges as button presses
type GPIOButtons struct {
	lines *gpiocdev.Lines
}

// OpenGPIOButtons requests both lines with pull-ups and edge events
func OpenGPIOButtons(cfg GPIOConfig, target Buttons) (*GPIOButtons, error) {
	if cfg.LeaderLine == cfg.StartLine {
		return nil, fmt.Errorf("leader and start share line %d", cfg.LeaderLine)
	}

	handler := func(evt gpiocdev.LineEvent) {
		if evt.Type != gpiocdev.LineEventFallingEdge {
			return
		}
		if !Apply(cfg.intentFor(evt.Offset), target) {
			log.Printf("gpio: event on unmapped line %d", evt.Offset)
		}
	}

	opts := []gpiocdev.LineReqOption{
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(handler),
		gpiocdev.WithConsumer("tilewall"),
	}
	if cfg.DebounceFor > 0 {
		opts = append(opts, gpiocdev.WithDebounce(cfg.DebounceFor))
	}

	lines, err := gpiocdev.RequestLines(cfg.Chip, []int{cfg.LeaderLine, cfg.StartLine}, opts...)
	if err != nil {
		return nil, fmt.Errorf("request %s lines %d,%d: %w", cfg.Chip, cfg.LeaderLine, cfg.StartLine, err)
	}

	return &GPIOButtons{lines: lines}, nil
}

// Close releases the lines
func (g *GPIOButtons) Close() error {
	return g.lines.Close()
}
