// Package transcript holds the accumulated OCR text and its file persistence.
package transcript

import (
	"fmt"
	"strings"
	"sync"
)

// FormatBlock renders one processed image as a delimited transcript block.
func FormatBlock(basename, text string) string {
	return fmt.Sprintf("------%s------\n%s\n\n", basename, text)
}

// Buffer is the editable transcript. Blocks are only ever appended by
// processing; user edits replace the whole content through Set.
// Methods are safe on a nil receiver and for concurrent use.
type Buffer struct {
	mu     sync.Mutex
	b      strings.Builder
	blocks int
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Append adds a block for basename.
func (t *Buffer) Append(basename, text string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.b.WriteString(FormatBlock(basename, text))
	t.blocks++
	t.mu.Unlock()
}

// Set replaces the whole content, typically with the user's edited text or
// with a file loaded from disk. The block counter is reset.
func (t *Buffer) Set(text string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.b.Reset()
	t.b.WriteString(text)
	t.blocks = 0
	t.mu.Unlock()
}

func (t *Buffer) String() string {
	if t == nil {
		return ""
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.b.String()
}

// Clear empties the buffer.
func (t *Buffer) Clear() { t.Set("") }

// Blocks returns how many blocks were appended since the last Set or Clear.
func (t *Buffer) Blocks() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.blocks
}
