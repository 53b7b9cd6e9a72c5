package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		verbose   bool
		wantDebug bool
	}{
		{verbose: false, wantDebug: false},
		{verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		log := New(&buf, tt.verbose)
		log.Debug().Msg("debug line")
		log.Info().Msg("info line")

		out := buf.String()
		if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
			t.Errorf("verbose=%v: debug logged = %v, want %v", tt.verbose, got, tt.wantDebug)
		}
		if !strings.Contains(out, "info line") {
			t.Errorf("verbose=%v: info line missing from %q", tt.verbose, out)
		}
	}
}
