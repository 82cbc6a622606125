// Package apperrors classifies failures of the analysis pipeline so the
// request layer can pick a status code without knowing which upstream failed.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind is a coarse failure category.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindMalformedAudio
	KindQuotaExceeded
	KindUnavailable
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid_request"
	case KindMalformedAudio:
		return "malformed_audio"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindUnavailable:
		return "service_unavailable"
	case KindTimeout:
		return "timeout"
	default:
		return "internal"
	}
}

// Error attaches a Kind and the failing operation to an underlying error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with a plain message.
func New(kind Kind, op, message string) error {
	return &Error{Kind: kind, Op: op, Err: errors.New(message)}
}

// Wrap classifies err. A nil err stays nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf finds the outermost classified error in the chain. Context
// deadlines always count as timeouts, cancellations as unavailability.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.Canceled) {
		return KindUnavailable
	}
	return KindInternal
}

// HTTPStatus maps a Kind to the response status code.
func HTTPStatus(k Kind) int {
	switch k {
	case KindInvalid:
		return http.StatusBadRequest
	case KindMalformedAudio:
		return http.StatusUnprocessableEntity
	case KindQuotaExceeded:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus classifies an upstream HTTP status code. badRequest is the
// kind to use for 4xx payload rejections, which differs per upstream.
func FromStatus(code int, badRequest Kind) Kind {
	switch {
	case code == http.StatusTooManyRequests:
		return KindQuotaExceeded
	case code == http.StatusBadRequest, code == http.StatusRequestEntityTooLarge,
		code == http.StatusUnsupportedMediaType, code == http.StatusUnprocessableEntity:
		return badRequest
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		return KindTimeout
	case code >= 500, code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindUnavailable
	default:
		return KindInternal
	}
}
