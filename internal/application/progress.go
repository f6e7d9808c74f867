package application

import "sync"

// ChannelSink is a bounded message channel between the worker goroutine and
// the front end. It is the only state that crosses the worker boundary.
// When the buffer is full the newest message is dropped rather than blocking
// the worker on a stalled front end.
type ChannelSink struct {
	mu     sync.Mutex
	ch     chan string
	closed bool
}

// NewChannelSink creates a sink with the given buffer size.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 256
	}
	return &ChannelSink{ch: make(chan string, buffer)}
}

// Progress implements ports.ProgressSink.
func (s *ChannelSink) Progress(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- message:
	default:
	}
}

// Messages returns the receive side of the sink.
func (s *ChannelSink) Messages() <-chan string {
	return s.ch
}

// Close closes the channel. Progress calls after Close are ignored.
func (s *ChannelSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
