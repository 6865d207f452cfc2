// Package log records what the shell does for later debugging. Nothing is
// shown to the user: lines go to the file named by --debug-log or debug_log.
//
// Messages written before the file is known (while flags and config are
// still being read) are held in memory and written out by SetFile.
package log

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// maxPending bounds the bytes kept before SetFile is called. Older bytes are
// dropped first.
const maxPending = 256 << 10

type sink struct {
	mu      sync.Mutex
	file    *os.File
	pending []byte
	off     bool
}

var (
	out    = &sink{}
	logger = log.New(out, "", log.LstdFlags|log.Lmicroseconds)
)

func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.off:
		return len(p), nil
	case s.file != nil:
		n, err := s.file.Write(p)
		_ = s.file.Sync()
		return n, err
	}

	s.pending = append(s.pending, p...)
	if extra := len(s.pending) - maxPending; extra > 0 {
		s.pending = append([]byte(nil), s.pending[extra:]...)
	}
	return len(p), nil
}

// closeFile must be called with mu held.
func (s *sink) closeFile() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// disable must be called with mu held.
func (s *sink) disable() {
	s.off = true
	s.pending = nil
}

// SetFile sends the log to path, appending, and writes out what was held so
// far. An empty path turns logging off for the rest of the process, as does
// a path that cannot be opened.
func SetFile(path string) error {
	out.mu.Lock()
	defer out.mu.Unlock()

	_ = out.closeFile()
	if path == "" {
		out.disable()
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		out.disable()
		return fmt.Errorf("open debug log: %w", err)
	}
	out.file = f
	out.off = false

	if len(out.pending) > 0 {
		_, _ = f.Write(out.pending)
		_ = f.Sync()
		out.pending = nil
	}
	return nil
}

// Printf logs an untagged line.
func Printf(format string, args ...any) {
	logger.Printf(format, args...)
}

// Println logs an untagged line.
func Println(v ...any) {
	logger.Println(v...)
}

// Close releases the log file.
func Close() error {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.closeFile()
}

// Logger tags each line with the component that wrote it, so lines from
// concurrent sessions can be told apart.
type Logger struct {
	tag string
}

// For returns a logger for component, for example "session=1b4e28ba".
func For(component string) Logger {
	return Logger{tag: "[" + component + "] "}
}

// With appends a nested tag.
func (l Logger) With(component string) Logger {
	return Logger{tag: l.tag + "[" + component + "] "}
}

// Printf logs a tagged line.
func (l Logger) Printf(format string, args ...any) {
	logger.Print(l.tag + fmt.Sprintf(format, args...))
}
