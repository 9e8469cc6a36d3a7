package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apex/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     log.Level
		debug     bool
		wantDebug bool
		wantInfo  bool
	}{
		{name: "info", level: log.InfoLevel, wantInfo: true},
		{name: "warn hides info", level: log.WarnLevel},
		{name: "debug flag wins", level: log.WarnLevel, debug: true, wantDebug: true, wantInfo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, tt.debug, &buf, nil)
			logger.Debug("debug entry")
			logger.Info("info entry")

			out := buf.String()
			if got := strings.Contains(out, "debug entry"); got != tt.wantDebug {
				t.Errorf("debug entry written=%v, want %v: %q", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "info entry"); got != tt.wantInfo {
				t.Errorf("info entry written=%v, want %v: %q", got, tt.wantInfo, out)
			}
		})
	}
}

func TestNewLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(log.InfoLevel, false, &buf, log.Fields{"run": "seed"}).
		WithField("phase", "species").
		Info("starting phase")

	out := buf.String()
	for _, want := range []string{"run=seed", "phase=species", "starting phase"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
