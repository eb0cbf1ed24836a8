package status

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// Metric keys shared by the radio and the unit runtime
const (
	RadioSent         = "radio.sent"
	RadioSendErrors   = "radio.send_errors"
	RadioReceived     = "radio.recv"
	RadioForeign      = "radio.foreign"
	RadioDecodeErrors = "radio.decode_errors"
	RadioReadErrors   = "radio.read_errors"
	UnitDropped       = "unit.dropped"
	UnitFrames        = "unit.frames"
	UnitPlots         = "unit.plots"
	UnitRole          = "unit.role"
)

// Registry is the central metrics facade
// Components cache pointers at construction; hot paths write directly to atomics
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Labels   *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Labels:   NewMetricMap[AtomicString](),
	}
}

// Summary formats the named metrics as "key=value" pairs in argument order
// Labels take precedence over counters sharing a key; unknown keys are skipped
func (r *Registry) Summary(keys ...string) string {
	var sb strings.Builder
	for _, k := range keys {
		var val string
		switch {
		case r.Labels.Has(k):
			val = r.Labels.Get(k).Load()
		case r.Counters.Has(k):
			val = strconv.FormatInt(r.Counters.Get(k).Load(), 10)
		default:
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k[strings.LastIndexByte(k, '.')+1:])
		sb.WriteByte('=')
		sb.WriteString(val)
	}
	return sb.String()
}
