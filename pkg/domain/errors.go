package domain

import (
	"errors"
	"fmt"
)

// ErrorKind tags a FetchError, the set is closed
type ErrorKind int

// fetch error kinds
const (
	KindTransientHTTP ErrorKind = iota + 1
	KindRateLimited
	KindForbidden
	KindNotFound
	KindMissingCredential
	KindParseFailure
	KindEmpty
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransientHTTP:
		return "transient http error"
	case KindRateLimited:
		return "rate limited (429)"
	case KindForbidden:
		return "forbidden (403)"
	case KindNotFound:
		return "not found (404)"
	case KindMissingCredential:
		return "missing credential"
	case KindParseFailure:
		return "parse failure"
	case KindEmpty:
		return "empty response"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// FetchError is a tagged fetch failure carrying the originating source name
type FetchError struct {
	Kind   ErrorKind
	Source string
	Err    error
}

// NewFetchError makes FetchError of the given kind, err is optional
func NewFetchError(kind ErrorKind, source string, err error) *FetchError {
	return &FetchError{Kind: kind, Source: source, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches another FetchError by kind, so errors.Is(err, &FetchError{Kind: KindEmpty}) works
func (e *FetchError) Is(target error) bool {
	var fe *FetchError
	if !errors.As(target, &fe) {
		return false
	}
	return fe.Kind == e.Kind
}

// KindOf returns kind of the wrapped FetchError, or KindTransientHTTP for foreign errors
func KindOf(err error) ErrorKind {
	if err == nil {
		return 0
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindTransientHTTP
}

// WithSource fills in source name on FetchError if missing, foreign errors become transient
func WithSource(err error, source string) error {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		if fe.Source == "" {
			fe.Source = source
		}
		return fe
	}
	return NewFetchError(KindTransientHTTP, source, err)
}
