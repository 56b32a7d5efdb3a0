package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind tells how a request failed.
type ErrorKind string

const (
	// KindTransport means the request never produced a response.
	KindTransport ErrorKind = "transport"
	// KindStatus means the server answered with a non-2xx status.
	KindStatus ErrorKind = "status"
	// KindDecode means the response body was not what was expected.
	KindDecode ErrorKind = "decode"
)

// Error is returned by every Client method.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return e.Detail
	case KindDecode:
		return "invalid response: " + e.Detail
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Detail
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// statusError builds a KindStatus error, preferring the body's "detail"
// and then its "error" field for the message.
func statusError(status int, body []byte) *Error {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	detail := strings.TrimSpace(payload.Detail)
	if detail == "" {
		detail = strings.TrimSpace(payload.Error)
	}
	if detail == "" {
		detail = http.StatusText(status)
	}
	if detail == "" {
		detail = fmt.Sprintf("HTTP %d", status)
	}
	return &Error{Kind: KindStatus, StatusCode: status, Detail: detail}
}

func decodeError(status int, err error) *Error {
	return &Error{Kind: KindDecode, StatusCode: status, Detail: err.Error(), Err: err}
}
