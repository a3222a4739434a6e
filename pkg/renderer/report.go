package renderer

import (
	"sync"
	"time"

	"github.com/df07/go-manylight-renderer/pkg/log"
)

// LogReporter forwards pipeline progress to a logger. Progress is logged in
// steps of ten percent.
type LogReporter struct {
	logger log.Logger

	mu      sync.Mutex
	started map[string]time.Time
	percent map[string]int
}

// NewLogReporter creates a reporter writing to logger
func NewLogReporter(logger log.Logger) *LogReporter {
	return &LogReporter{
		logger:  logger,
		started: make(map[string]time.Time),
		percent: make(map[string]int),
	}
}

func (r *LogReporter) BeginActivity(name string) {
	r.mu.Lock()
	r.started[name] = time.Now()
	r.percent[name] = -1
	r.mu.Unlock()

	r.logger.Infof("%s...", name)
}

func (r *LogReporter) EndActivity(name string) {
	r.mu.Lock()
	start, ok := r.started[name]
	delete(r.started, name)
	delete(r.percent, name)
	r.mu.Unlock()

	if ok {
		r.logger.Infof("%s done in %v", name, time.Since(start))
	}
}

func (r *LogReporter) Progress(name string, done, total int) {
	if total <= 0 {
		return
	}
	step := 10 * done / total * 10

	r.mu.Lock()
	last, ok := r.percent[name]
	if ok && step <= last {
		r.mu.Unlock()
		return
	}
	r.percent[name] = step
	r.mu.Unlock()

	r.logger.Debugf("%s: %d%% (%d/%d)", name, step, done, total)
}

func (r *LogReporter) Message(format string, args ...interface{}) {
	r.logger.Infof(format, args...)
}
