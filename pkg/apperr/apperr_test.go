package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf_TypedAndPlain(t *testing.T) {
	if k := KindOf(Conflictf("busy")); k != KindConflict {
		t.Fatalf("kind = %s, want conflict", k)
	}
	if k := KindOf(errors.New("boom")); k != KindInternal {
		t.Fatalf("plain error kind = %s, want internal", k)
	}
	if KindOf(nil) != KindInternal {
		t.Fatalf("nil should map to internal")
	}
}

func TestKindOf_SurvivesWrapping(t *testing.T) {
	base := NotFoundf("session %s not found", "abc")
	wrapped := fmt.Errorf("close: %w", base)
	if !IsKind(wrapped, KindNotFound) {
		t.Fatalf("kind lost through fmt wrapping")
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("duplicate entry")
	err := Wrap(KindConflict, cause, "open session already exists")
	if !errors.Is(err, cause) {
		t.Fatalf("cause not reachable via errors.Is")
	}
	if got := err.Error(); got != "open session already exists: duplicate entry" {
		t.Fatalf("message = %q", got)
	}
}
