package netclient

import (
	"errors"
	"testing"
)

func TestNormalizeTransportError(t *testing.T) {
	err := normalizeError(0, nil, errors.New("connection refused"))
	if err.Kind != KindNetwork {
		t.Errorf("Kind = %d, want KindNetwork", err.Kind)
	}
}

func TestNormalizeAuthStatus(t *testing.T) {
	for _, status := range []int{401, 403} {
		err := normalizeError(status, []byte(`{"error":"Invalid or expired token"}`), nil)
		if err.Kind != KindAuthExpired {
			t.Errorf("status %d: Kind = %d, want KindAuthExpired", status, err.Kind)
		}
	}
}

func TestNormalizeExpiredTokenMessage(t *testing.T) {
	err := normalizeError(400, []byte(`{"message":"JWT token has expired"}`), nil)
	if err.Kind != KindAuthExpired {
		t.Errorf("Kind = %d, want KindAuthExpired for token-expiry message", err.Kind)
	}
}

func TestNormalizeStructuredServerError(t *testing.T) {
	body := []byte(`{"message":"not authorized","hint":"requires net ownership"}`)
	err := normalizeError(500, body, nil)
	if err.Kind != KindServer {
		t.Errorf("Kind = %d, want KindServer", err.Kind)
	}
	if err.Message != "not authorized" {
		t.Errorf("Message = %q, want %q", err.Message, "not authorized")
	}
	if err.Hint != "requires net ownership" {
		t.Errorf("Hint = %q, want %q", err.Hint, "requires net ownership")
	}
}

func TestNormalizeUnrecognizedBody(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte(``),
		[]byte(`<html>502 Bad Gateway</html>`),
		[]byte(`{"unrelated":true}`),
	}
	for _, body := range cases {
		err := normalizeError(500, body, nil)
		if err.Kind != KindServer {
			t.Errorf("Kind = %d, want KindServer", err.Kind)
		}
		if err.Message != unknownErrorMessage {
			t.Errorf("Message = %q, want fallback for body %q", err.Message, body)
		}
	}
}
