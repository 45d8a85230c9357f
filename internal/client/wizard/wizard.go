// Package wizard implements the six-step inquiry flow used by prospective
// clients to apply for financing or business support.
//
// The flow is linear:
//
//	PathSelect -> ProductSelect -> ProfileEntry -> Acknowledgement -> ContactEntry -> Submitted
//
// Moving forward requires the current step to be complete; moving back is
// allowed from ProductSelect through ContactEntry. Nothing leaves the process
// until Submit is called from ContactEntry. Closing the wizard discards the
// draft.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/casiec/internal/client/models"
	"github.com/dmitrijs2005/casiec/internal/client/toast"
)

type Step int

const (
	StepPathSelect Step = iota + 1
	StepProductSelect
	StepProfileEntry
	StepAcknowledgement
	StepContactEntry
	StepSubmitted
)

var stepNames = map[Step]string{
	StepPathSelect:      "path selection",
	StepProductSelect:   "product selection",
	StepProfileEntry:    "business profile",
	StepAcknowledgement: "documentation checklist",
	StepContactEntry:    "contact details",
	StepSubmitted:       "submitted",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var (
	ErrIncomplete  = errors.New("step incomplete")
	ErrClosed      = errors.New("wizard is closed")
	ErrWrongStep   = errors.New("action not available at this step")
	ErrSubmitting  = errors.New("submission already in progress")
	ErrUnknownPath = errors.New("unknown inquiry path")
)

const (
	msgIncomplete = "Please complete all required fields."
	msgSubmitted  = "Application submitted successfully!"
	msgFailed     = "Failed to submit application. Please try again later."
)

// Submitter sends a finished application to the backend.
type Submitter interface {
	Submit(ctx context.Context, category models.Category, payload models.ApplicationPayload) error
}

// Wizard is safe for concurrent use, though the console drives it from a
// single goroutine.
type Wizard struct {
	submitter Submitter
	notifier  toast.Notifier

	mu         sync.Mutex
	open       bool
	step       Step
	draft      Draft
	submitting bool
	generation int
}

func New(submitter Submitter, notifier toast.Notifier) *Wizard {
	return &Wizard{submitter: submitter, notifier: notifier}
}

// Open starts a fresh draft. With an empty path the user begins at
// PathSelect; with a known path the wizard skips straight to ProductSelect.
func (w *Wizard) Open(path models.PathType) error {
	if path != "" && !path.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPath, path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.open = true
	w.submitting = false
	w.generation++
	w.draft = newDraft(path)
	if path == "" {
		w.step = StepPathSelect
	} else {
		w.step = StepProductSelect
	}
	return nil
}

// Close discards the draft. A submission still in flight completes on the
// backend, but its outcome no longer changes the wizard.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.open = false
	w.submitting = false
	w.generation++
	w.draft = Draft{}
	w.step = 0
}

func (w *Wizard) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Valid reports whether the current step's predicate holds.
func (w *Wizard) Valid() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.open {
		return ErrClosed
	}
	return w.draft.validate(w.step)
}

// SelectPath records the branch and moves to ProductSelect. Switching to a
// different path clears a previously chosen product.
func (w *Wizard) SelectPath(path models.PathType) error {
	if !path.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPath, path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireLocked(StepPathSelect); err != nil {
		return err
	}
	if w.draft.Path != path {
		w.draft.Product = ""
	}
	w.draft.Path = path
	w.step = StepProductSelect
	return nil
}

// SelectProduct records a product label from the path's catalogue.
func (w *Wizard) SelectProduct(label string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireLocked(StepProductSelect); err != nil {
		return err
	}
	if !contains(Products(w.draft.Path), label) {
		return fmt.Errorf("%w: %q is not offered on the %s path", ErrIncomplete, label, w.draft.Path)
	}
	w.draft.Product = label
	return nil
}

func (w *Wizard) SetProfile(p Profile) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireLocked(StepProfileEntry); err != nil {
		return err
	}
	if p.Industry == "" {
		p.Industry = DefaultIndustry
	}
	w.draft.Profile = p
	return nil
}

func (w *Wizard) Acknowledge(ok bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireLocked(StepAcknowledgement); err != nil {
		return err
	}
	w.draft.Acknowledged = ok
	return nil
}

func (w *Wizard) SetContact(c Contact) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireLocked(StepContactEntry); err != nil {
		return err
	}
	w.draft.Contact = c
	return nil
}

// Checklist returns the acknowledgement items for the current draft.
func (w *Wizard) Checklist() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Checklist(w.draft.Profile.Registered)
}

// Next advances one step if the current one is complete. ContactEntry is
// left only through Submit.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return ErrClosed
	}
	if w.step >= StepContactEntry {
		return fmt.Errorf("%w: %s", ErrWrongStep, w.step)
	}
	if err := w.draft.validate(w.step); err != nil {
		return err
	}
	w.step++
	return nil
}

// Back returns to the previous step. The draft is kept as is.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return ErrClosed
	}
	if w.step <= StepPathSelect || w.step >= StepSubmitted || w.submitting {
		return fmt.Errorf("%w: %s", ErrWrongStep, w.step)
	}
	w.step--
	return nil
}

// Submit sends the draft from ContactEntry. On success the wizard moves to
// Submitted; on failure it stays on ContactEntry so the user can retry.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if err := w.requireLocked(StepContactEntry); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.submitting {
		w.mu.Unlock()
		return ErrSubmitting
	}
	if err := w.draft.validate(StepContactEntry); err != nil {
		w.mu.Unlock()
		w.notifier.Error(msgIncomplete)
		return err
	}
	w.submitting = true
	gen := w.generation
	draft := w.draft
	w.mu.Unlock()

	err := w.submitter.Submit(ctx, draft.Path.Category(), draft.Payload())

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.generation {
		return ErrClosed
	}
	w.submitting = false
	if err != nil {
		w.notifier.Error(msgFailed)
		return fmt.Errorf("submit application: %w", err)
	}
	w.step = StepSubmitted
	w.notifier.Success(msgSubmitted)
	return nil
}

func (w *Wizard) requireLocked(step Step) error {
	if !w.open {
		return ErrClosed
	}
	if w.step != step {
		return fmt.Errorf("%w: at %s", ErrWrongStep, w.step)
	}
	return nil
}
