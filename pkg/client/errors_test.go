package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			"kind only",
			&Error{Kind: KindTransport},
			"ttapi transport error",
		},
		{
			"with status and message",
			&Error{Kind: KindAuthentication, StatusCode: 401, Message: "api token rejected"},
			"ttapi authentication error (status 401): api token rejected",
		},
		{
			"with cause",
			&Error{Kind: KindParse, Message: "malformed response envelope", Err: errors.New("unexpected EOF")},
			"ttapi parse error: malformed response envelope: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Kind: KindTransport, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the cause")
	}
}

func TestKindOf(t *testing.T) {
	typed := Errorf(KindRateLimit, "quota exhausted")

	if got := KindOf(typed); got != KindRateLimit {
		t.Errorf("KindOf = %q, want %q", got, KindRateLimit)
	}
	if got := KindOf(fmt.Errorf("wrapped: %w", typed)); got != KindRateLimit {
		t.Errorf("KindOf through wrap = %q, want %q", got, KindRateLimit)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
	if got := KindOf(nil); got != "" {
		t.Errorf("KindOf(nil) = %q, want empty", got)
	}
}

func TestIsKind(t *testing.T) {
	err := Errorf(KindInvalidArgument, "page must be >= 1")

	if !IsKind(err, KindInvalidArgument) {
		t.Error("IsKind = false for matching kind")
	}
	if IsKind(err, KindTransport) {
		t.Error("IsKind = true for non-matching kind")
	}
}
