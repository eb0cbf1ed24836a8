package network

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/net/ipv4"

	"github.com/lixenwraith/tile-wall/constants"
	"github.com/lixenwraith/tile-wall/status"
)

// readBackoff pauses the read loop after a socket error that is neither a timeout nor a close
const readBackoff = 250 * time.Millisecond

var ErrNotRunning = errors.New("transport not running")

// Transport is a best-effort broadcast datagram channel
// No ordering or delivery guarantee; handlers run on the transport's goroutine
type Transport interface {
	// SetHandler configures the datagram callback, must be called before Start
	SetHandler(onDatagram func([]byte))
	Start() error
	Stop() error
	// Send broadcasts a datagram to every unit in the channel
	Send(b []byte) error
}

// MulticastTransport carries frames over an IPv4 multicast group
type MulticastTransport struct {
	config *Config

	conn  *net.UDPConn
	pc    *ipv4.PacketConn
	group *net.UDPAddr

	onDatagram func([]byte)

	statReadErrors *atomic.Int64

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewMulticastTransport creates a transport with the given configuration
// Socket read failures are counted under status.RadioReadErrors
func NewMulticastTransport(cfg *Config, reg *status.Registry) *MulticastTransport {
	return &MulticastTransport{
		config:         cfg,
		stopCh:         make(chan struct{}),
		statReadErrors: reg.Counters.Get(status.RadioReadErrors),
	}
}

// SetHandler implements Transport
func (t *MulticastTransport) SetHandler(onDatagram func([]byte)) {
	t.onDatagram = onDatagram
}

// Start joins the multicast group and begins reading
func (t *MulticastTransport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	if err := t.join(); err != nil {
		t.running.Store(false)
		return err
	}

	t.wg.Add(1)
	go t.readLoop()

	return nil
}

// join opens the socket and applies group options
func (t *MulticastTransport) join() error {
	group, err := net.ResolveUDPAddr("udp4", t.config.Address)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", t.config.Address, err)
	}
	if !group.IP.IsMulticast() {
		return fmt.Errorf("%s is not a multicast address", group.IP)
	}

	var ifi *net.Interface
	if t.config.Interface != "" {
		ifi, err = net.InterfaceByName(t.config.Interface)
		if err != nil {
			return fmt.Errorf("interface %s: %w", t.config.Interface, err)
		}
	}

	conn, err := net.ListenMulticastUDP("udp4", ifi, group)
	if err != nil {
		return fmt.Errorf("join %s: %w", group, err)
	}

	pc := ipv4.NewPacketConn(conn)
	if err := pc.SetMulticastLoopback(t.config.Loopback); err != nil {
		conn.Close()
		return fmt.Errorf("multicast loopback: %w", err)
	}
	if t.config.TTL > 0 {
		if err := pc.SetMulticastTTL(t.config.TTL); err != nil {
			conn.Close()
			return fmt.Errorf("multicast ttl: %w", err)
		}
	}
	if ifi != nil {
		if err := pc.SetMulticastInterface(ifi); err != nil {
			conn.Close()
			return fmt.Errorf("multicast interface: %w", err)
		}
	}
	if t.config.ReadBufferSize > 0 {
		if err := conn.SetReadBuffer(t.config.ReadBufferSize); err != nil {
			conn.Close()
			return fmt.Errorf("read buffer: %w", err)
		}
	}

	t.conn = conn
	t.pc = pc
	t.group = group
	return nil
}

// readLoop hands every datagram to the handler until Stop
// Reads carry a deadline so an idle socket still observes stopCh; a closed socket ends the loop
func (t *MulticastTransport) readLoop() {
	defer t.wg.Done()

	buf := make([]byte, constants.MaxDatagramSize)
	for {
		if t.config.ReadTimeout > 0 {
			t.conn.SetReadDeadline(time.Now().Add(t.config.ReadTimeout))
		}

		n, _, _, err := t.pc.ReadFrom(buf)
		if err != nil {
			select {
			case <-t.stopCh:
				return
			default:
			}

			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			t.statReadErrors.Add(1)
			if errors.Is(err, net.ErrClosed) {
				log.Printf("multicast: socket closed, read loop exiting: %v", err)
				return
			}

			log.Printf("multicast: read: %v", err)
			select {
			case <-t.stopCh:
				return
			case <-time.After(readBackoff):
			}
			continue
		}

		if t.onDatagram != nil && n > 0 {
			datagram := make([]byte, n)
			copy(datagram, buf[:n])
			t.onDatagram(datagram)
		}
	}
}

// Send implements Transport
func (t *MulticastTransport) Send(b []byte) error {
	if !t.running.Load() {
		return ErrNotRunning
	}
	if len(b) > constants.MaxDatagramSize {
		return fmt.Errorf("datagram of %d bytes exceeds %d", len(b), constants.MaxDatagramSize)
	}
	_, err := t.pc.WriteTo(b, nil, t.group)
	return err
}

// Stop leaves the group and waits for the read loop
func (t *MulticastTransport) Stop() error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	close(t.stopCh)
	err := t.conn.Close()
	t.wg.Wait()

	return err
}

// IsRunning returns transport state
func (t *MulticastTransport) IsRunning() bool {
	return t.running.Load()
}
