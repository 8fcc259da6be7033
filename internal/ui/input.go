package ui

import (
	"errors"
	"io"
	"os"
	"sync"
)

// watchedInput is a terminal input that reports when its stream ends. It
// keeps the *os.File method set so bubbletea still puts it in raw mode.
type watchedInput struct {
	*os.File
	once sync.Once
	done chan struct{}
}

func newWatchedInput(f *os.File) *watchedInput {
	return &watchedInput{File: f, done: make(chan struct{})}
}

func (w *watchedInput) Read(p []byte) (int, error) {
	n, err := w.File.Read(p)
	if errors.Is(err, io.EOF) {
		w.once.Do(func() { close(w.done) })
	}
	return n, err
}

// Done is closed once the input reaches end of stream.
func (w *watchedInput) Done() <-chan struct{} {
	return w.done
}
