package folderhash

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every error returned by a hashing call
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindExcludedRoot
	KindUnreadableFile
	KindUnsupportedAlgorithm
	KindUnsupportedEncoding
	KindInvalidOption
)

// Sentinels for errors.Is
var (
	ErrNotFound             = errors.New("not found")
	ErrExcludedRoot         = errors.New("root is excluded")
	ErrUnreadableFile       = errors.New("unreadable file")
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
	ErrUnsupportedEncoding  = errors.New("unsupported encoding")
	ErrInvalidOption        = errors.New("invalid option")
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindExcludedRoot:
		return "ExcludedRoot"
	case KindUnreadableFile:
		return "UnreadableFile"
	case KindUnsupportedAlgorithm:
		return "UnsupportedAlgorithm"
	case KindUnsupportedEncoding:
		return "UnsupportedEncoding"
	case KindInvalidOption:
		return "InvalidOption"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindExcludedRoot:
		return ErrExcludedRoot
	case KindUnreadableFile:
		return ErrUnreadableFile
	case KindUnsupportedAlgorithm:
		return ErrUnsupportedAlgorithm
	case KindUnsupportedEncoding:
		return ErrUnsupportedEncoding
	case KindInvalidOption:
		return ErrInvalidOption
	default:
		return nil
	}
}

// HashError is the error type returned by the hashing calls
type HashError struct {
	Kind ErrorKind
	Path string // Path or option value the error refers to
	Err  error  // Underlying cause, may be nil
}

func (e *HashError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *HashError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *HashError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func newHashError(kind ErrorKind, path string, err error) *HashError {
	return &HashError{Kind: kind, Path: path, Err: err}
}

// KindOf returns the kind of err, or 0 if err is not a *HashError
func KindOf(err error) ErrorKind {
	var he *HashError
	if errors.As(err, &he) {
		return he.Kind
	}
	return 0
}
