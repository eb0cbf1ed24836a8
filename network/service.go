package network

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/tile-wall/status"
)

// Radio wraps a Transport with framing, group filtering and message codec
type Radio struct {
	config    *Config
	transport Transport

	onMessage func(Message)

	statSent         *atomic.Int64
	statSendErrors   *atomic.Int64
	statReceived     *atomic.Int64
	statForeign      *atomic.Int64
	statDecodeErrors *atomic.Int64
}

// NewRadio binds a transport to the unit identity in cfg
func NewRadio(cfg *Config, transport Transport, reg *status.Registry) *Radio {
	r := &Radio{
		config:           cfg,
		transport:        transport,
		statSent:         reg.Counters.Get(status.RadioSent),
		statSendErrors:   reg.Counters.Get(status.RadioSendErrors),
		statReceived:     reg.Counters.Get(status.RadioReceived),
		statForeign:      reg.Counters.Get(status.RadioForeign),
		statDecodeErrors: reg.Counters.Get(status.RadioDecodeErrors),
	}
	transport.SetHandler(r.onDatagram)
	return r
}

// SetHandler configures the decoded message callback, must be called before Start
func (r *Radio) SetHandler(onMessage func(Message)) {
	r.onMessage = onMessage
}

// Start starts the underlying transport
func (r *Radio) Start() error {
	return r.transport.Start()
}

// Stop stops the underlying transport
func (r *Radio) Stop() error {
	return r.transport.Stop()
}

// UnitID returns this radio's sender identity
func (r *Radio) UnitID() string {
	return r.config.UnitID
}

// Broadcast encodes and sends a message, fire-and-forget
func (r *Radio) Broadcast(msg Message) error {
	text, err := msg.Encode()
	if err != nil {
		r.statSendErrors.Add(1)
		return err
	}
	frame, err := EncodeFrame(r.config.Group, r.config.UnitID, text)
	if err != nil {
		r.statSendErrors.Add(1)
		return err
	}
	if err := r.transport.Send(frame); err != nil {
		r.statSendErrors.Add(1)
		return err
	}
	r.statSent.Add(1)
	return nil
}

// onDatagram filters and decodes inbound frames
func (r *Radio) onDatagram(b []byte) {
	pkt, err := DecodeFrame(b)
	if err != nil {
		r.statDecodeErrors.Add(1)
		log.Printf("radio: drop frame: %v", err)
		return
	}
	if pkt.Group != r.config.Group || pkt.Sender == r.config.UnitID {
		r.statForeign.Add(1)
		return
	}

	msg, err := Decode(pkt.Text)
	if err != nil {
		r.statDecodeErrors.Add(1)
		log.Printf("radio: drop message from %s: %v", pkt.Sender, err)
		return
	}

	r.statReceived.Add(1)
	if r.onMessage != nil {
		r.onMessage(msg)
	}
}
