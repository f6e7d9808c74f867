package ports

// ProgressSink receives the human-readable progress messages of a running
// operation. Implementations must be safe to call from the worker goroutine.
type ProgressSink interface {
	Progress(message string)
}

// ProgressFunc adapts a function to the ProgressSink interface.
type ProgressFunc func(message string)

func (f ProgressFunc) Progress(message string) { f(message) }
