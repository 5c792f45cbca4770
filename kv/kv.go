// Package kv reads and writes the plain "key = value" text format used for spawn data files
package kv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrSyntax = errors.New("kv syntax error")

// SyntaxError reports a line that is neither blank, a comment, nor key = value
type SyntaxError struct {
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("kv line %d: expected key = value, got %q", e.Line, e.Text)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// Entry is one key/value pair; Line is zero for entries not read from text
type Entry struct {
	Key   string
	Value string
	Line  int
}

// File is an ordered list of entries. Keys may repeat; the last occurrence wins on lookup.
type File struct {
	entries []Entry
}

// New creates an empty file
func New() *File { return &File{} }

// Parse reads entries from r.
// Whitespace around keys and values is trimmed, blank lines and lines starting with '#'
// are skipped, and the first '=' separates key from value.
func Parse(r io.Reader) (*File, error) {
	f := New()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &SyntaxError{Line: line, Text: text}
		}
		f.entries = append(f.entries, Entry{Key: key, Value: strings.TrimSpace(value), Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("kv read: %w", err)
	}
	return f, nil
}

// ParseString parses s
func ParseString(s string) (*File, error) {
	return Parse(strings.NewReader(s))
}

// Entries returns a copy of the entries in file order
func (f *File) Entries() []Entry {
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

func (f *File) Len() int { return len(f.entries) }

// Get returns the value of the last entry for key
func (f *File) Get(key string) (string, bool) {
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].Key == key {
			return f.entries[i].Value, true
		}
	}
	return "", false
}

// Set replaces the last entry for key or appends a new one
func (f *File) Set(key, value string) {
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].Key == key {
			f.entries[i].Value = value
			return
		}
	}
	f.entries = append(f.entries, Entry{Key: key, Value: value})
}

// WriteTo writes the entries as "key = value" lines
func (f *File) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range f.entries {
		n, err := fmt.Fprintf(w, "%s = %s\n", e.Key, e.Value)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (f *File) String() string {
	var sb strings.Builder
	sb.WriteString("kv[")
	for i, e := range f.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Key)
		sb.WriteByte('=')
		sb.WriteString(e.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}
