// Package journal records the adventure log: the running narration of a
// session ("Fought 7♠ barehanded! Took 7 damage."). The game session writes
// through an injected Sink so the core stays decoupled from any presentation
// or storage technology.
package journal

import (
	"fmt"
	"io"
	"time"
)

// Sink receives one narration line at a time.
type Sink interface {
	Log(message string)
}

// Entry is one persisted journal line.
type Entry struct {
	ID        int64
	SessionID string
	At        time.Time
	Message   string
}

// Discard is a Sink that drops every message.
var Discard Sink = discardSink{}

type discardSink struct{}

func (discardSink) Log(string) {}

// NewWriterSink returns a Sink that writes one line per message.
func NewWriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

type writerSink struct {
	w io.Writer
}

func (s *writerSink) Log(message string) {
	fmt.Fprintln(s.w, message)
}

// Multi fans a message out to every sink in order.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Log(message string) {
	for _, sink := range m {
		if sink != nil {
			sink.Log(message)
		}
	}
}
