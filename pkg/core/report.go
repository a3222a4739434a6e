package core

// Reporter receives progress of long running stages. Implementations must be
// safe for concurrent use; reporting never affects the result of a stage.
type Reporter interface {
	BeginActivity(name string)
	EndActivity(name string)
	Progress(name string, done, total int)
	Message(format string, args ...interface{})
}

// NopReporter discards all progress
type NopReporter struct{}

func (NopReporter) BeginActivity(name string)                  {}
func (NopReporter) EndActivity(name string)                    {}
func (NopReporter) Progress(name string, done, total int)      {}
func (NopReporter) Message(format string, args ...interface{}) {}
