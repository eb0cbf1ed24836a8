package network

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MessageType identifies the semantic meaning of a message
type MessageType uint8

const (
	MsgRequestAddress MessageType = iota + 1 // Unassigned unit asks for an index
	MsgAssignAddress                         // Leader hands out an index
	MsgStartAnimation                        // Leader starts the shared animation
	MsgClearAll                              // Leader: clear tiles before next frame
	MsgDisplayCoords                         // Leader: global point for this frame
)

// Wire tags, matched as literal strings or prefixes
const (
	TagRequestAddress = "REQUEST"
	TagAssignAddress  = "ASSIGN"
	TagStartAnimation = "START"
	TagClearAll       = "CLEAR_SCREEN"
	TagDisplayCoords  = "DISPLAY_COORDS"
)

var (
	ErrUnknownMessage   = errors.New("unknown message")
	ErrMalformedPayload = errors.New("malformed payload")
)

// String implements fmt.Stringer
func (t MessageType) String() string {
	switch t {
	case MsgRequestAddress:
		return "RequestAddress"
	case MsgAssignAddress:
		return "AssignAddress"
	case MsgStartAnimation:
		return "StartAnimation"
	case MsgClearAll:
		return "ClearAll"
	case MsgDisplayCoords:
		return "DisplayCoords"
	default:
		return fmt.Sprintf("MessageType(%d)", uint8(t))
	}
}

// Message is a decoded radio message
// Index is set for AssignAddress, X/Y for DisplayCoords
type Message struct {
	Type  MessageType
	Index int
	X, Y  int
}

// RequestAddress builds an address request
func RequestAddress() Message { return Message{Type: MsgRequestAddress} }

// AssignAddress builds an address assignment for index
func AssignAddress(index int) Message { return Message{Type: MsgAssignAddress, Index: index} }

// StartAnimation builds the animation start signal
func StartAnimation() Message { return Message{Type: MsgStartAnimation} }

// ClearAll builds the per-frame clear signal
func ClearAll() Message { return Message{Type: MsgClearAll} }

// DisplayCoords builds a frame carrying global point (x, y)
func DisplayCoords(x, y int) Message { return Message{Type: MsgDisplayCoords, X: x, Y: y} }

// Encode renders the message as its wire text
func (m Message) Encode() (string, error) {
	switch m.Type {
	case MsgRequestAddress:
		return TagRequestAddress, nil
	case MsgAssignAddress:
		if m.Index < 1 {
			return "", fmt.Errorf("assign index %d: %w", m.Index, ErrMalformedPayload)
		}
		return TagAssignAddress + strconv.Itoa(m.Index), nil
	case MsgStartAnimation:
		return TagStartAnimation, nil
	case MsgClearAll:
		return TagClearAll, nil
	case MsgDisplayCoords:
		return TagDisplayCoords + strconv.Itoa(m.X) + "," + strconv.Itoa(m.Y), nil
	default:
		return "", fmt.Errorf("encode %v: %w", m.Type, ErrUnknownMessage)
	}
}

// Decode parses wire text into a message
// Literal tags must match exactly; prefixed tags must carry a well-formed payload
func Decode(text string) (Message, error) {
	switch text {
	case TagRequestAddress:
		return RequestAddress(), nil
	case TagStartAnimation:
		return StartAnimation(), nil
	case TagClearAll:
		return ClearAll(), nil
	}

	if rest, ok := strings.CutPrefix(text, TagDisplayCoords); ok {
		xs, ys, found := strings.Cut(rest, ",")
		if !found {
			return Message{}, fmt.Errorf("display coords %q: %w", rest, ErrMalformedPayload)
		}
		x, err := parseDecimal(xs)
		if err != nil {
			return Message{}, fmt.Errorf("display coords x %q: %w", xs, err)
		}
		y, err := parseDecimal(ys)
		if err != nil {
			return Message{}, fmt.Errorf("display coords y %q: %w", ys, err)
		}
		return DisplayCoords(x, y), nil
	}

	if rest, ok := strings.CutPrefix(text, TagAssignAddress); ok {
		index, err := parseDecimal(rest)
		if err != nil {
			return Message{}, fmt.Errorf("assign %q: %w", rest, err)
		}
		if index < 1 {
			return Message{}, fmt.Errorf("assign index %d: %w", index, ErrMalformedPayload)
		}
		return AssignAddress(index), nil
	}

	return Message{}, fmt.Errorf("%q: %w", text, ErrUnknownMessage)
}

// parseDecimal accepts an optionally signed base-10 integer and nothing else
func parseDecimal(s string) (int, error) {
	if s == "" || strings.ContainsAny(s, " \t\n+_") {
		return 0, ErrMalformedPayload
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrMalformedPayload
	}
	return n, nil
}
