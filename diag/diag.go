// Package diag accumulates line-tagged diagnostics for one compilation.
package diag

import (
	"errors"
	"fmt"
	"io"
)

// Error is a single diagnostic: a message tied to a 1-based source line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: syntax error: %s", e.Line, e.Msg)
}

// Errorf creates a diagnostic for the given source line.
func Errorf(line int, format string, args ...any) *Error {
	return &Error{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Log is an append-only, ordered collection of diagnostics. Records are
// never removed: a compilation either ends with an empty log or the log
// holds every error found, in the order they were encountered.
type Log struct {
	errs []*Error
}

// Add appends a diagnostic to the log.
func (l *Log) Add(e *Error) {
	l.errs = append(l.errs, e)
}

// Report records err, wrapping it at the given line when it is not
// already a diagnostic.
func (l *Log) Report(line int, err error) {
	var de *Error
	if errors.As(err, &de) {
		l.Add(de)
		return
	}
	l.Add(Errorf(line, "%s", err))
}

// HasErrors reports whether any diagnostic has been recorded.
func (l *Log) HasErrors() bool { return len(l.errs) > 0 }

// Len returns the number of recorded diagnostics.
func (l *Log) Len() int { return len(l.errs) }

// Errors returns the recorded diagnostics in insertion order.
func (l *Log) Errors() []*Error { return l.errs }

// Err returns all recorded diagnostics as one aggregate error,
// or nil if the log is empty.
func (l *Log) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	errs := make([]error, 0, len(l.errs))
	for _, e := range l.errs {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// Dump writes every diagnostic to w, one per line.
func (l *Log) Dump(w io.Writer) {
	for _, e := range l.errs {
		fmt.Fprintln(w, e.Error())
	}
}
