// Package errsink collects transient failures from the render and refresh
// paths until the errors view drains and displays them.
package errsink

import (
	"sync"
	"time"
)

// Record is one captured failure.
type Record struct {
	Message string
	// Cause is the underlying error, when one exists.
	Cause error
	At    time.Time
}

// Sink is an append-only, drain-on-read collection of failures. Recording
// requests a visual alert through the hook; the sink does not own the
// indicator. Application state is mutated from a single goroutine, but the
// mutex keeps Record/Drain atomic should a caller slip.
type Sink struct {
	mu      sync.Mutex
	records []Record
	alert   func()
	now     func() time.Time
}

// New builds a Sink. alert may be nil.
func New(alert func()) *Sink {
	return &Sink{alert: alert, now: time.Now}
}

// Record appends a failure and requests the alert indicator.
func (s *Sink) Record(msg string, cause error) {
	s.mu.Lock()
	s.records = append(s.records, Record{Message: msg, Cause: cause, At: s.now()})
	alert := s.alert
	s.mu.Unlock()

	if alert != nil {
		alert()
	}
}

// Capture records an error using its own text as the message.
func (s *Sink) Capture(err error) {
	if err == nil {
		return
	}
	s.Record(err.Error(), err)
}

// Drain returns all records in arrival order and empties the sink.
func (s *Sink) Drain() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.records
	s.records = nil
	return records
}

// Len reports how many records are waiting.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
