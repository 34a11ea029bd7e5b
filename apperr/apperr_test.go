package apperr

import (
	"errors"
	"testing"
)

func TestWrapPreservesInnerKind(t *testing.T) {
	inner := New(NotFound, "album not found")
	wrapped := Wrap(Internal, "failed to delete album", inner)

	if KindOf(wrapped) != NotFound {
		t.Fatalf("expected inner kind preserved, got %v", KindOf(wrapped))
	}
	if MessageOf(wrapped) != "album not found" {
		t.Fatalf("expected inner message preserved, got %q", MessageOf(wrapped))
	}
}

func TestWrapClassifiesPlainErrors(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(Internal, "failed to fetch albums", cause)

	if KindOf(wrapped) != Internal {
		t.Fatalf("expected Internal, got %v", KindOf(wrapped))
	}
	if !errors.Is(wrapped, cause) {
		t.Fatalf("expected the cause reachable via errors.Is")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(Internal, "noop", nil) != nil {
		t.Fatalf("expected nil for nil cause")
	}
}

func TestMessageOfUnclassified(t *testing.T) {
	if got := MessageOf(errors.New("raw driver error")); got != "something went wrong" {
		t.Fatalf("expected generic message, got %q", got)
	}
}

func TestKindCodes(t *testing.T) {
	cases := map[Kind]string{
		Unauthenticated: "UNAUTHENTICATED",
		Forbidden:       "FORBIDDEN",
		NotFound:        "NOT_FOUND",
		Conflict:        "CONFLICT",
		BadInput:        "BAD_USER_INPUT",
		Validation:      "VALIDATION_FAILED",
		Internal:        "INTERNAL_SERVER_ERROR",
	}
	for kind, want := range cases {
		if kind.Code() != want {
			t.Fatalf("kind %d: expected %s, got %s", kind, want, kind.Code())
		}
	}
}

func TestIsKind(t *testing.T) {
	err := New(Conflict, "already exists")
	if !IsKind(err, Conflict) {
		t.Fatalf("expected IsKind true")
	}
	if IsKind(err, NotFound) {
		t.Fatalf("expected IsKind false for other kinds")
	}
	if IsKind(errors.New("plain"), Internal) {
		t.Fatalf("unclassified errors carry no kind")
	}
}
