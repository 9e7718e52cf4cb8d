package netclient

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ErrorKind is the closed set of failure categories. All errors crossing the
// network boundary are normalized into one of these, so callers match on a
// tag instead of sniffing arbitrary error shapes.
type ErrorKind int

const (
	// KindValidation is rejected input, caught before any network call
	KindValidation ErrorKind = iota
	// KindAuthExpired is a 401/403 or an expired/invalid token; the caller
	// should run the session-expired flow
	KindAuthExpired
	// KindServer is any other error the server reported
	KindServer
	// KindNetwork is a transport failure with no server response
	KindNetwork
)

const unknownErrorMessage = "an unknown error occurred"

// Error is a normalized client error
type Error struct {
	Kind    ErrorKind
	Message string
	Details string
	Hint    string
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Details != "" {
		parts = append(parts, e.Details)
	}
	if e.Hint != "" {
		parts = append(parts, "hint: "+e.Hint)
	}
	if len(parts) == 0 {
		return unknownErrorMessage
	}
	return strings.Join(parts, ": ")
}

// validationError builds a pre-network validation failure
func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// normalizeError is the single normalization point at the network boundary.
// transportErr is a failure with no HTTP response; otherwise status and body
// come from the server's reply.
func normalizeError(status int, body []byte, transportErr error) *Error {
	if transportErr != nil {
		return &Error{Kind: KindNetwork, Message: "network error", Details: transportErr.Error()}
	}

	// Tolerant extraction: the body may be a procedure error, a plain
	// {"error": ...}, or something else entirely
	message := firstString(body, "message", "error")
	details := firstString(body, "details")
	hint := firstString(body, "hint")

	if status == 401 || status == 403 || looksLikeExpiredToken(message) {
		if message == "" {
			message = "session expired"
		}
		return &Error{Kind: KindAuthExpired, Message: message, Details: details, Hint: hint}
	}

	if message == "" {
		message = unknownErrorMessage
	}
	return &Error{Kind: KindServer, Message: message, Details: details, Hint: hint}
}

func firstString(body []byte, paths ...string) string {
	for _, p := range paths {
		if v := gjson.GetBytes(body, p); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

func looksLikeExpiredToken(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "token") &&
		(strings.Contains(m, "expired") || strings.Contains(m, "invalid"))
}
