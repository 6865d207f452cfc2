// Package term implements the text-display surfaces the shell writes to.
package term

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Display receives the shell's output stream.
type Display interface {
	// Write emits raw characters, including control characters.
	Write(s string)
	// Writeln emits one line followed by a line break.
	Writeln(line string)
	// Clear wipes the surface.
	Clear()
}

// DefaultScrollback is the number of lines a Buffer keeps.
const DefaultScrollback = 1000

// Buffer is an in-memory terminal screen. It understands "\r", "\n", "\b"
// and keeps SGR sequences inline. It is safe for concurrent use.
type Buffer struct {
	mu         sync.Mutex
	lines      [][]rune
	col        int
	scrollback int
	rev        uint64
}

var _ Display = (*Buffer)(nil)

// NewBuffer returns an empty buffer keeping at most scrollback lines.
func NewBuffer(scrollback int) *Buffer {
	if scrollback <= 0 {
		scrollback = DefaultScrollback
	}
	return &Buffer{lines: [][]rune{{}}, scrollback: scrollback}
}

// Write interprets s at the cursor.
func (b *Buffer) Write(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\r':
			b.col = 0
		case '\n':
			b.lines = append(b.lines, []rune{})
			b.col = 0
			b.trim()
		case '\b':
			if b.col > 0 {
				b.col--
			}
		case '\x1b':
			end := escapeEnd(runes, i)
			b.put(runes[i : end+1]...)
			i = end
		default:
			b.put(r)
		}
	}
	b.rev++
}

// Writeln writes line and moves to the start of the next one.
func (b *Buffer) Writeln(line string) {
	b.Write(line + "\r\n")
}

// Clear empties the screen.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = [][]rune{{}}
	b.col = 0
	b.rev++
}

// Lines returns the screen content with trailing blanks removed from each
// line. The last element is the line holding the cursor.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = strings.TrimRight(string(l), " ")
	}
	return out
}

// String joins Lines with newlines.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// PlainLines returns Lines with escape sequences removed.
func (b *Buffer) PlainLines() []string {
	lines := b.Lines()
	for i, l := range lines {
		lines[i] = ansi.Strip(l)
	}
	return lines
}

// Rev changes every time the buffer is modified.
func (b *Buffer) Rev() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rev
}

// put writes runes at the cursor, overwriting what is there.
func (b *Buffer) put(rs ...rune) {
	last := len(b.lines) - 1
	line := b.lines[last]
	for _, r := range rs {
		if b.col < len(line) {
			line[b.col] = r
		} else {
			line = append(line, r)
		}
		b.col++
	}
	b.lines[last] = line
}

func (b *Buffer) trim() {
	if extra := len(b.lines) - b.scrollback; extra > 0 {
		b.lines = b.lines[extra:]
	}
}

// escapeEnd returns the index of the final rune of the CSI sequence starting
// at i, or i when the sequence is not CSI.
func escapeEnd(runes []rune, i int) int {
	if i+1 >= len(runes) || runes[i+1] != '[' {
		return i
	}
	for j := i + 2; j < len(runes); j++ {
		if runes[j] >= 0x40 && runes[j] <= 0x7e {
			return j
		}
	}
	return len(runes) - 1
}

// Writer adapts an io.Writer, such as stdout, into a Display.
type Writer struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

var _ Display = (*Writer)(nil)

// NewWriter returns a Display writing to w. When color is false escape
// sequences are stripped.
func NewWriter(w io.Writer, color bool) *Writer {
	return &Writer{w: w, color: color}
}

// Write emits s.
func (w *Writer) Write(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.color {
		s = ansi.Strip(s)
	}
	_, _ = io.WriteString(w.w, s)
}

// Writeln emits line and a newline.
func (w *Writer) Writeln(line string) {
	w.Write(line + "\n")
}

// Clear homes the cursor and erases the screen. Without escape sequences it
// emits a form feed, the plain-text page break.
func (w *Writer) Clear() {
	if !w.color {
		w.Write("\f")
		return
	}
	w.Write("\x1b[H\x1b[2J")
}
