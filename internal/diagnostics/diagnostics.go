// Package diagnostics implements the append-only diagnostics sink shared by
// the lexer, parser, function indexer, and evaluator: {level, message, file,
// line} records queried for HasError and flushed to a text stream, with an
// optional source-line excerpt under each entry.
package diagnostics

import (
	"fmt"
	"io"
	"strings"
)

// Level is the severity of a diagnostic entry.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Warn:
		return "WARNING"
	default:
		return "ERROR"
	}
}

// Entry is one diagnostic record.
type Entry struct {
	Level   Level
	Message string
	File    string
	Line    int
}

// HasPosition reports whether the entry carries a known line.
func (e Entry) HasPosition() bool {
	return e.Line > 0
}

func (e Entry) String() string {
	prefix := "[" + e.Level.String() + "]"
	if e.HasPosition() {
		file := e.File
		if file == "" {
			file = "<unknown>"
		}
		return fmt.Sprintf("%s %s:%d -- %s", prefix, file, e.Line, e.Message)
	}
	return fmt.Sprintf("%s %s", prefix, e.Message)
}

// Sink is an append-only list of diagnostics.
type Sink struct {
	entries []Entry
}

// NewSink creates an empty diagnostics sink.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) add(level Level, file string, line int, msg string) {
	s.entries = append(s.entries, Entry{Level: level, Message: msg, File: file, Line: line})
}

// Info records an informational diagnostic.
func (s *Sink) Info(file string, line int, format string, args ...any) {
	s.add(Info, file, line, fmt.Sprintf(format, args...))
}

// Warn records a warning diagnostic.
func (s *Sink) Warn(file string, line int, format string, args ...any) {
	s.add(Warn, file, line, fmt.Sprintf(format, args...))
}

// Error records an error diagnostic.
func (s *Sink) Error(file string, line int, format string, args ...any) {
	s.add(Error, file, line, fmt.Sprintf(format, args...))
}

// HasError reports whether any Error-level diagnostic has been recorded.
func (s *Sink) HasError() bool {
	for _, e := range s.entries {
		if e.Level == Error {
			return true
		}
	}
	return false
}

// Entries returns every recorded diagnostic, in the order it was recorded.
func (s *Sink) Entries() []Entry {
	return s.entries
}

// Reset discards all recorded diagnostics.
func (s *Sink) Reset() {
	s.entries = nil
}

// Flush writes the diagnostics report header (if non-empty) followed by one
// line per entry.
func (s *Sink) Flush(w io.Writer) {
	if len(s.entries) == 0 {
		return
	}
	fmt.Fprintln(w, "--- DIAGNOSTICS REPORT ---")
	for _, e := range s.entries {
		fmt.Fprintln(w, e.String())
	}
}

// FlushWithSource is like Flush but additionally prints the offending source
// line for every entry that knows its line.
func FlushWithSource(w io.Writer, s *Sink, sources map[string]string) {
	if len(s.entries) == 0 {
		return
	}
	fmt.Fprintln(w, "--- DIAGNOSTICS REPORT ---")
	for _, e := range s.entries {
		fmt.Fprintln(w, e.String())
		if !e.HasPosition() {
			continue
		}
		src, ok := sources[e.File]
		if !ok {
			continue
		}
		lines := strings.Split(src, "\n")
		if e.Line < 1 || e.Line > len(lines) {
			continue
		}
		fmt.Fprintf(w, "    %s\n", lines[e.Line-1])
	}
}
