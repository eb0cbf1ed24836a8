package main

import (
	"os"

	"github.com/lixenwraith/tile-wall/logfile"
)

const (
	logDir      = "logs"
	logFileName = "tilewall.log"
	maxLogSize  = logfile.DefaultMaxSize
)

// setupLogging writes the standard logger to logs/tilewall.log under -debug
func setupLogging(debug bool) *os.File {
	return logfile.Setup(debug, logDir, logFileName, maxLogSize)
}
