// Package transcript records one line per request and one line per response
// in an append-only log.
package transcript

import (
	"fmt"
	"io"
	"log"
	"os"
)

type Sink interface {
	Request(line string)
	Response(head string)
}

// Logger is a Sink writing timestamped lines through a *log.Logger, which
// serialises concurrent workers.
type Logger struct {
	l *log.Logger
	c io.Closer
}

// Open appends to the file at path, creating it if needed.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	t := New(f)
	t.c = f
	return t, nil
}

func New(w io.Writer) *Logger {
	return &Logger{l: log.New(w, "", log.LstdFlags)}
}

func (t *Logger) Request(line string) {
	t.l.Printf("request: %q", line)
}

func (t *Logger) Response(head string) {
	// quoted so CRLFs stay on one line
	t.l.Printf("response: %q", head)
}

func (t *Logger) Close() error {
	if t.c == nil {
		return nil
	}
	return t.c.Close()
}

var Discard Sink = discard{}

type discard struct{}

func (discard) Request(string)  {}
func (discard) Response(string) {}
