package renderer

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/df07/go-manylight-renderer/pkg/log"
)

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	log.SetSink(&buf)
	log.SetLevel(log.Debug)
	defer log.SetSink(os.Stdout)
	defer log.SetLevel(log.Notice)

	reporter := NewLogReporter(log.New("renderer-test"))
	reporter.BeginActivity("cluster lights")
	for done := 1; done <= 100; done++ {
		reporter.Progress("cluster lights", done, 100)
	}
	reporter.Message("%d groups", 7)
	reporter.EndActivity("cluster lights")

	out := buf.String()
	for _, want := range []string{"cluster lights...", "cluster lights: 10%", "cluster lights: 100%", "7 groups", "cluster lights done in"} {
		if !strings.Contains(out, want) {
			t.Errorf("log is missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "cluster lights: "); n != 11 {
		t.Errorf("expected 11 progress lines (0%% to 100%%), got %d:\n%s", n, out)
	}
}
