package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	defer SetLevel(Notice)

	logger := New("test")

	SetLevel(Notice)
	logger.Info("hidden")
	logger.Noticef("shown %d", 1)

	SetLevel(Debug)
	logger.Debug("debug line")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at notice level:\n%s", out)
	}
	for _, want := range []string{"shown 1", "debug line", "[test]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestSetSink_KeepsLevel(t *testing.T) {
	SetLevel(Error)
	defer SetLevel(Notice)

	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)

	New("test").Warning("filtered")
	if buf.Len() != 0 {
		t.Errorf("warning logged at error level: %q", buf.String())
	}
}
