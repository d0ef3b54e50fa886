package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"error", false, false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		l := New(&buf, tt.level)
		l.Debug("debug %d", 1)
		l.Info("info %d", 2)
		l.Error("error %d", 3)

		out := buf.String()
		if got := strings.Contains(out, "debug 1"); got != tt.wantDebug {
			t.Errorf("level %s: debug logged = %v, want %v", tt.level, got, tt.wantDebug)
		}
		if got := strings.Contains(out, "info 2"); got != tt.wantInfo {
			t.Errorf("level %s: info logged = %v, want %v", tt.level, got, tt.wantInfo)
		}
		if !strings.Contains(out, "ERROR: ") || !strings.Contains(out, "error 3") {
			t.Errorf("level %s: error should always be logged, got %q", tt.level, out)
		}
	}
}

func TestDiscardLogger(t *testing.T) {
	l := NewDiscardLogger()
	l.Info("nothing %s", "here")
	l.Error("nothing")
	if l.Level() != LevelInfo {
		t.Errorf("expected info level, got %s", l.Level())
	}
}
