package utils

import (
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/logfmt"
)

// NewLogger returns a logfmt logger writing to output, with fields attached
// to every entry. debug overrides level.
func NewLogger(level log.Level, debug bool, output io.Writer, fields log.Fields) log.Interface {
	logger := &log.Logger{
		Handler: logfmt.New(output),
		Level:   level,
	}
	if debug {
		logger.Level = log.DebugLevel
	}

	if len(fields) == 0 {
		return logger
	}
	return logger.WithFields(fields)
}
