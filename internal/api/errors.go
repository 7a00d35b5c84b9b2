// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"fmt"
)

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeTransport: the request never produced an HTTP response.
	ErrTypeTransport
	// ErrTypeTimeout: the request deadline passed.
	ErrTypeTimeout
	// ErrTypeCanceled: the caller's context was canceled (screen torn down).
	ErrTypeCanceled
	// ErrTypeStatus: non-2xx HTTP status.
	ErrTypeStatus
	// ErrTypeBackend: 2xx response with success:false.
	ErrTypeBackend
	// ErrTypeInvalidResponse: the body was not a decodable envelope.
	ErrTypeInvalidResponse
)

// String returns a short name for logs.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeTransport:
		return "transport"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeCanceled:
		return "canceled"
	case ErrTypeStatus:
		return "status"
	case ErrTypeBackend:
		return "backend"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// ClientError represents a failed backend call.
type ClientError struct {
	Type ErrorType
	// Message describes the failure from the client's point of view.
	Message string
	// Backend is the message field of the response envelope, if any.
	Backend string
	// Status is the HTTP status code, 0 when no response arrived.
	Status int
	Cause  error
}

func (e *ClientError) Error() string {
	msg := e.Message
	if e.Backend != "" {
		msg += ": " + e.Backend
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches ClientErrors by type so sentinels work with errors.Is.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t == e || (t.Message == "" && t.Type == e.Type)
}

// BackendMessage reports the envelope message. reported is true for
// success:false answers, which have no client-side message worth showing.
func (e *ClientError) BackendMessage() (string, bool) {
	return e.Backend, e.Type == ErrTypeBackend
}

// Sentinel errors for errors.Is checks. They carry no message, so they match
// any ClientError of the same type.
var (
	ErrTransport       = &ClientError{Type: ErrTypeTransport}
	ErrTimeout         = &ClientError{Type: ErrTypeTimeout}
	ErrCanceled        = &ClientError{Type: ErrTypeCanceled}
	ErrStatus          = &ClientError{Type: ErrTypeStatus}
	ErrRejected        = &ClientError{Type: ErrTypeBackend}
	ErrInvalidResponse = &ClientError{Type: ErrTypeInvalidResponse}
)

func statusError(status int, backend string) *ClientError {
	return &ClientError{
		Type:    ErrTypeStatus,
		Message: fmt.Sprintf("request failed with status code %d", status),
		Backend: backend,
		Status:  status,
	}
}

func rejectedError(status int, backend string) *ClientError {
	return &ClientError{
		Type:    ErrTypeBackend,
		Message: "request rejected by backend",
		Backend: backend,
		Status:  status,
	}
}
