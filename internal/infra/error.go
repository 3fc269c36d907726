package infra

import (
	"errors"
	"log/slog"
	"strings"

	"slot-booking/internal/pkg/errs"
)

// ErrorKind classifies adapter failures so use cases can branch without
// knowing which adapter produced them.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindDuplicateKey  ErrorKind = "duplicate_key"
	KindStateMismatch ErrorKind = "state_mismatch"
	KindInvalidSeed   ErrorKind = "invalid_seed"
	KindPublishFailed ErrorKind = "publish_failed"
)

type Error struct {
	Kind ErrorKind
	msg  string
	err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.msg)
	if e.err != nil {
		b.WriteString(": ")
		b.WriteString(e.err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.err
}

func NewError(kind ErrorKind, msg string) error {
	return &Error{Kind: kind, msg: msg}
}

// WrapError attaches a kind to a low-level failure, logging it when a logger is given.
func WrapError(logger *slog.Logger, kind ErrorKind, msg string, err error) error {
	if logger != nil {
		attrs := []any{slog.String("kind", string(kind))}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		logger.Error("adapter error: "+msg, attrs...)
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return &Error{Kind: kind, msg: msg, err: err}
}

func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
