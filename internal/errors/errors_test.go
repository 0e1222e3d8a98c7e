package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrProbe, "Can't reach 'web'", "Check the host is up")
	out := err.Error()

	if !strings.HasPrefix(out, "✗ Can't reach 'web'") {
		t.Errorf("missing failure line: %q", out)
	}
	if !strings.Contains(out, "Check the host is up") {
		t.Errorf("missing suggestion: %q", out)
	}
}

func TestErrorIncludesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := WrapWithCode(cause, ErrProbe, "Probe failed", "Try again")
	out := err.Error()

	if !strings.Contains(out, "connection refused") {
		t.Errorf("missing cause: %q", out)
	}
}

func TestErrorWithoutSuggestion(t *testing.T) {
	err := New(ErrConfig, "Bad config", "")
	out := err.Error()

	if strings.Count(out, "\n\n") != 0 {
		t.Errorf("unexpected blank sections without suggestion: %q", out)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(cause, "wrapped")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestWrapDefaultsToLaunchCode(t *testing.T) {
	err := Wrap(stderrors.New("x"), "msg")
	if err.Code != ErrLaunch {
		t.Errorf("Wrap code = %q, want %q", err.Code, ErrLaunch)
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrSession, "msg", "")

	if !IsCode(err, ErrSession) {
		t.Error("IsCode should match the error's code")
	}
	if IsCode(err, ErrConfig) {
		t.Error("IsCode should reject a different code")
	}
	if IsCode(nil, ErrSession) {
		t.Error("IsCode(nil) must be false")
	}
	if IsCode(stderrors.New("plain"), ErrSession) {
		t.Error("IsCode on a plain error must be false")
	}
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := New(ErrProbe, "inner", "")
	outer := WrapWithCode(inner, ErrLaunch, "outer", "")

	if !IsCode(outer, ErrLaunch) {
		t.Error("outer code should match")
	}
}
