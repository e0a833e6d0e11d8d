// Package diag accumulates fatal errors and non-fatal warnings the same
// way pkg/scenario/validator.Validator did for chaos scenarios: two
// growable slices, a HasErrors/HasWarnings pair, and a combined report.
package diag

import (
	"fmt"
	"strings"

	"github.com/jihwankim/genpairs/internal/lexspec/token"
)

// Entry is a single diagnostic, optionally tied to a source position.
type Entry struct {
	Pos token.Position
	Msg string
}

func (e Entry) String() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

// Bag collects errors and warnings over the lifetime of one invocation.
// A Bag is never reset mid-run: errors are fatal (the caller aborts as
// soon as HasErrors is true) and warnings accumulate until output time.
type Bag struct {
	Errors   []Entry
	Warnings []Entry
}

// New returns an empty Bag.
func New() *Bag {
	return &Bag{}
}

// Errorf records a fatal diagnostic at the given position.
func (b *Bag) Errorf(pos token.Position, format string, args ...interface{}) {
	b.Errors = append(b.Errors, Entry{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// Warnf records a non-fatal diagnostic at the given position.
func (b *Bag) Warnf(pos token.Position, format string, args ...interface{}) {
	b.Warnings = append(b.Warnings, Entry{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any fatal diagnostic was recorded.
func (b *Bag) HasErrors() bool { return len(b.Errors) > 0 }

// HasWarnings reports whether any non-fatal diagnostic was recorded.
func (b *Bag) HasWarnings() bool { return len(b.Warnings) > 0 }

// Report renders every recorded error, one per line, for a fatal abort.
func (b *Bag) Report() string {
	var sb strings.Builder
	for _, e := range b.Errors {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// AsError turns the accumulated errors into a single error value, or nil
// if there are none.
func (b *Bag) AsError() error {
	if !b.HasErrors() {
		return nil
	}
	if len(b.Errors) == 1 {
		return fmt.Errorf("%s", b.Errors[0].String())
	}
	return fmt.Errorf("%d errors:\n%s", len(b.Errors), b.Report())
}
