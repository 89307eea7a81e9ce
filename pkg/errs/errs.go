// Package errs carries the error taxonomy shared by repositories, services and
// handlers. Errors are marked with one of the Kind sentinels so callers can branch
// with errors.Is without parsing messages.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// Kind markers. Compare with errors.Is or use KindOf.
var (
	ErrNotFound         = cr.New("not found")
	ErrConflict         = cr.New("conflict")
	ErrValidationFailed = cr.New("validation failed")
	ErrInternal         = cr.New("internal error")
)

type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindConflict         Kind = "CONFLICT"
	KindValidationFailed Kind = "VALIDATION_FAILED"
	KindInternal         Kind = "INTERNAL"
)

func NotFound(format string, args ...any) error {
	return cr.Mark(cr.Newf(format, args...), ErrNotFound)
}

func Conflict(format string, args ...any) error {
	return cr.Mark(cr.Newf(format, args...), ErrConflict)
}

func Validation(format string, args ...any) error {
	return cr.Mark(cr.Newf(format, args...), ErrValidationFailed)
}

// Internal wraps an infrastructure failure. The wrapped message is kept for logs.
func Internal(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Mark(cr.Wrap(err, msg), ErrInternal)
}

// KindOf reports the taxonomy kind of err. Unmarked errors count as internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case cr.Is(err, ErrNotFound):
		return KindNotFound
	case cr.Is(err, ErrConflict):
		return KindConflict
	case cr.Is(err, ErrValidationFailed):
		return KindValidationFailed
	default:
		return KindInternal
	}
}

// ExtractStackLines renders the first maxLines of the verbose error report.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
