// Package logfile opens size-rotated log files for the standard logger
package logfile

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultMaxSize is the rotation threshold used by the binaries
const DefaultMaxSize = 10 * 1024 * 1024 // 10MB

// Setup points the standard logger at dir/name when debug is set, discarding output otherwise
// The terminal belongs to tcell, so logs never go to stdout or stderr
// Returns the open file for the caller to close, or nil when logging is off or unavailable
func Setup(debug bool, dir, name string, maxSize int64) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	f, err := Open(dir, name, maxSize)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("=== %s started (pid %d) ===", strings.TrimSuffix(name, filepath.Ext(name)), os.Getpid())
	return f
}

// Open creates dir if needed and opens dir/name for appending
// An existing file larger than maxSize is first renamed to name_<timestamp>.ext
func Open(dir, name string, maxSize int64) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && info.Size() > maxSize {
		if err := os.Rename(path, filepath.Join(dir, RotatedName(name, time.Now()))); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

// RotatedName inserts a timestamp before the extension: tilewall.log -> tilewall_20060102_150405.log
func RotatedName(name string, at time.Time) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + at.Format("20060102_150405") + ext
}
