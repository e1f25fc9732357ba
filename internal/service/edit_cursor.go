package service

import "fmt"

// EditState enumerates the invoice form's states. Every state has a
// defined way out: a failed submit lands in EditError (with the draft
// retained for retry) instead of leaving a stale cursor behind.
type EditState int

const (
	EditIdle EditState = iota
	EditCreating
	EditEditing
	EditSubmitting
	EditError
)

func (s EditState) String() string {
	switch s {
	case EditIdle:
		return "idle"
	case EditCreating:
		return "creating"
	case EditEditing:
		return "editing"
	case EditSubmitting:
		return "submitting"
	case EditError:
		return "error"
	default:
		return "unknown"
	}
}

// EditCursor tracks which invoice, if any, is open for editing. At most
// one invoice is in edit mode at a time.
type EditCursor struct {
	state   EditState
	id      string    // set while editing or submitting an edit
	resume  EditState // state to return to after a failed submit
	lastErr error
}

// NewEditCursor starts idle
func NewEditCursor() *EditCursor {
	return &EditCursor{state: EditIdle}
}

func (c *EditCursor) State() EditState { return c.state }

// TargetID returns the invoice being edited, or "" in create mode
func (c *EditCursor) TargetID() string { return c.id }

// Err returns the failure that moved the cursor into EditError
func (c *EditCursor) Err() error { return c.lastErr }

// StartCreate opens the create draft. Allowed from any non-submitting state.
func (c *EditCursor) StartCreate() error {
	if c.state == EditSubmitting {
		return fmt.Errorf("cannot start create while %s", c.state)
	}
	c.state = EditCreating
	c.id = ""
	c.lastErr = nil
	return nil
}

// StartEdit opens the edit draft for one invoice. Allowed from any
// non-submitting state; switching targets just moves the cursor.
func (c *EditCursor) StartEdit(id string) error {
	if c.state == EditSubmitting {
		return fmt.Errorf("cannot start edit while %s", c.state)
	}
	if id == "" {
		return fmt.Errorf("edit target id is required")
	}
	c.state = EditEditing
	c.id = id
	c.lastErr = nil
	return nil
}

// BeginSubmit moves into submitting. Re-entry while a submit is in flight
// is rejected, which is what stops a double-click from creating two records.
func (c *EditCursor) BeginSubmit() error {
	switch c.state {
	case EditCreating, EditEditing:
		c.resume = c.state
		c.state = EditSubmitting
		return nil
	case EditError:
		// Retry after a failure resumes the draft that failed.
		c.state = EditSubmitting
		return nil
	default:
		return fmt.Errorf("cannot submit while %s", c.state)
	}
}

// Succeed closes the form after a successful submit
func (c *EditCursor) Succeed() {
	c.state = EditIdle
	c.id = ""
	c.resume = EditIdle
	c.lastErr = nil
}

// Fail records the error and keeps the draft available for retry
func (c *EditCursor) Fail(err error) {
	c.state = EditError
	c.lastErr = err
}

// Cancel abandons the draft from any non-submitting state
func (c *EditCursor) Cancel() error {
	if c.state == EditSubmitting {
		return fmt.Errorf("cannot cancel while %s", c.state)
	}
	c.Succeed()
	return nil
}

// ResumeState returns the draft mode a retry would resume
func (c *EditCursor) ResumeState() EditState {
	if c.resume == EditIdle {
		return EditCreating
	}
	return c.resume
}
