package service

import (
	"errors"
	"testing"
)

func TestEditCursorCreateFlow(t *testing.T) {
	c := NewEditCursor()

	if c.State() != EditIdle {
		t.Fatalf("expected idle start, got %s", c.State())
	}
	if err := c.StartCreate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != EditCreating || c.TargetID() != "" {
		t.Fatalf("expected creating with no target, got %s/%q", c.State(), c.TargetID())
	}

	if err := c.BeginSubmit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Succeed()
	if c.State() != EditIdle {
		t.Fatalf("expected idle after success, got %s", c.State())
	}
}

func TestEditCursorEditFlow(t *testing.T) {
	c := NewEditCursor()

	if err := c.StartEdit("x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != EditEditing || c.TargetID() != "x" {
		t.Fatalf("expected editing x, got %s/%q", c.State(), c.TargetID())
	}

	// Switching targets moves the cursor; at most one invoice is in
	// edit mode at a time.
	if err := c.StartEdit("y"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.TargetID() != "y" {
		t.Fatalf("expected target y, got %q", c.TargetID())
	}
}

func TestEditCursorDoubleSubmitRejected(t *testing.T) {
	c := NewEditCursor()
	c.StartCreate()

	if err := c.BeginSubmit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.BeginSubmit(); err == nil {
		t.Fatalf("expected re-entrant submit to be rejected")
	}
}

func TestEditCursorFailureAllowsRetry(t *testing.T) {
	c := NewEditCursor()
	c.StartEdit("x")
	c.BeginSubmit()

	c.Fail(errors.New("server rejected"))
	if c.State() != EditError {
		t.Fatalf("expected error state, got %s", c.State())
	}
	if c.Err() == nil {
		t.Fatalf("expected the failure to be recorded")
	}
	if c.ResumeState() != EditEditing {
		t.Fatalf("expected retry to resume editing, got %s", c.ResumeState())
	}
	if c.TargetID() != "x" {
		t.Fatalf("expected target retained for retry, got %q", c.TargetID())
	}

	// Retry is possible straight from the error state.
	if err := c.BeginSubmit(); err != nil {
		t.Fatalf("expected retry to be allowed, got %v", err)
	}
	c.Succeed()
	if c.State() != EditIdle || c.TargetID() != "" {
		t.Fatalf("expected clean idle after successful retry")
	}
}

func TestEditCursorCancel(t *testing.T) {
	c := NewEditCursor()
	c.StartEdit("x")

	if err := c.Cancel(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != EditIdle || c.TargetID() != "" {
		t.Fatalf("expected idle with no target after cancel")
	}

	// Cancel is not available while a submit is in flight.
	c.StartCreate()
	c.BeginSubmit()
	if err := c.Cancel(); err == nil {
		t.Fatalf("expected cancel to be rejected while submitting")
	}
}

func TestEditCursorSubmitFromIdleRejected(t *testing.T) {
	c := NewEditCursor()
	if err := c.BeginSubmit(); err == nil {
		t.Fatalf("expected submit from idle to be rejected")
	}
}

func TestEditCursorStartWhileSubmittingRejected(t *testing.T) {
	c := NewEditCursor()
	c.StartCreate()
	c.BeginSubmit()

	if err := c.StartCreate(); err == nil {
		t.Fatalf("expected StartCreate to be rejected while submitting")
	}
	if err := c.StartEdit("x"); err == nil {
		t.Fatalf("expected StartEdit to be rejected while submitting")
	}
}
