package network

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// frameSep separates group, sender and message text inside a datagram
const frameSep = "|"

var ErrMalformedFrame = errors.New("malformed frame")

// Packet is a received message text with its framing metadata
type Packet struct {
	Group  int
	Sender string
	Text   string
}

// EncodeFrame wraps message text for the radio: <group>|<sender>|<text>
func EncodeFrame(group int, sender, text string) ([]byte, error) {
	if sender == "" || strings.Contains(sender, frameSep) {
		return nil, fmt.Errorf("sender %q: %w", sender, ErrMalformedFrame)
	}
	return []byte(strconv.Itoa(group) + frameSep + sender + frameSep + text), nil
}

// DecodeFrame splits a datagram into its packet fields
func DecodeFrame(b []byte) (Packet, error) {
	parts := strings.SplitN(string(b), frameSep, 3)
	if len(parts) != 3 || parts[1] == "" {
		return Packet{}, ErrMalformedFrame
	}
	group, err := strconv.Atoi(parts[0])
	if err != nil {
		return Packet{}, fmt.Errorf("group %q: %w", parts[0], ErrMalformedFrame)
	}
	return Packet{Group: group, Sender: parts[1], Text: parts[2]}, nil
}
