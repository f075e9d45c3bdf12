package wfcheck

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/hashstructure"
	"github.com/starkandwayne/goutils/ansi"
)

// ExceptionList accumulates fatal diagnostics (TypeMismatch,
// MissingRequiredParameter, LoopMisuse) and is
// raised together as one validation failure, in the teacher's MultiError
// idiom (errors.go): a single ansi-colored count-and-bullets message.
type ExceptionList struct {
	messages []string
}

// Append records one exception message. A nil/empty message is ignored.
func (e *ExceptionList) Append(msg string) {
	if msg == "" {
		return
	}
	e.messages = append(e.messages, msg)
}

// Count returns the number of recorded exceptions.
func (e *ExceptionList) Count() int { return len(e.messages) }

// Error implements error, joining every recorded message after
// deduplicating adjacent identical lines.
func (e *ExceptionList) Error() string {
	lines := dedupAdjacentLines(e.messages)
	return ansi.Sprintf("@r{%d} error(s) detected:\n%s\n", len(e.messages), strings.Join(lines, "\n"))
}

// AsError returns e as an error, or nil if nothing was recorded — so
// callers can write `return exceptions.AsError()` unconditionally.
func (e *ExceptionList) AsError() error {
	if len(e.messages) == 0 {
		return nil
	}
	return e
}

// WarningList accumulates non-fatal diagnostics (SecondaryFilesMissing,
// NotConnectedSink, ConditionalWithoutPickValue, PickValueSingleSource,
// ConditionalMayProduceNull). It is built on hashicorp/go-multierror
// rather than the ansi-colored ExceptionList, giving the two output
// streams spec.md §4.H calls for visibly distinct representations: one
// raised as a validation failure, one only ever logged.
type WarningList struct {
	err *multierror.Error
}

// NewWarningList returns an empty WarningList.
func NewWarningList() *WarningList {
	return &WarningList{err: &multierror.Error{}}
}

// Append records one warning message.
func (w *WarningList) Append(msg string) {
	if msg == "" {
		return
	}
	w.err = multierror.Append(w.err, errors.New(msg))
}

// Empty reports whether no warnings were recorded.
func (w *WarningList) Empty() bool {
	return w.err == nil || len(w.err.Errors) == 0
}

// String renders every recorded warning, deduplicating adjacent identical
// lines the same way ExceptionList does.
func (w *WarningList) String() string {
	if w.Empty() {
		return ""
	}
	lines := make([]string, 0, len(w.err.Errors))
	for _, err := range w.err.Errors {
		lines = append(lines, err.Error())
	}
	return strings.Join(dedupAdjacentLines(lines), "\n")
}

// dedupAdjacentLines splits each message into its own lines and drops a
// line that is identical to the immediately preceding line, matching
// spec.md §4.H: "deduplicated so that identical source-line prefixes on
// adjacent lines appear only once." Equality is decided by content hash
// rather than direct string comparison so that the dedup key matches what
// a source-location-aware formatter would hash on a real SourceRef-backed
// line (position + text), not incidental Go string identity.
func dedupAdjacentLines(messages []string) []string {
	var all []string
	for _, msg := range messages {
		all = append(all, strings.Split(msg, "\n")...)
	}

	out := make([]string, 0, len(all))
	var prevHash uint64
	havePrev := false
	for _, line := range all {
		h, err := hashstructure.Hash(line, nil)
		if err != nil {
			out = append(out, line)
			havePrev = false
			continue
		}
		if havePrev && h == prevHash {
			continue
		}
		out = append(out, line)
		prevHash = h
		havePrev = true
	}
	return out
}
