// Package form implements the input side of entry creation: a candidate
// record gathered from the user, validated eagerly against the static field
// rules before anything reaches the store.
package form

import (
	"strings"

	"jizhang/internal/core"
)

// Candidate carries the raw field values of an in-progress entry. Amount is
// kept as the raw string so that "absent" and "out of range" stay distinct
// failures.
type Candidate struct {
	Description string
	Amount      string
	Category    string
}

// Validate checks the candidate and, on success, returns the entry fields
// ready for the store. The entry's ID is empty: identity is assigned by the
// store at append, never here.
func (c Candidate) Validate() (core.Entry, core.FieldErrors) {
	errs := core.FieldErrors{}

	var amount core.Money
	raw := strings.TrimSpace(c.Amount)
	if raw == "" {
		errs[core.FieldAmount] = core.RequiredField
	} else if cents, err := core.ParseDecimalToCents(raw); err != nil || cents > core.MaxAmountCents {
		errs[core.FieldAmount] = core.OutOfRange
	} else {
		amount = core.Money{Cents: cents}
	}

	entry := core.Entry{
		Description: strings.TrimSpace(c.Description),
		Amount:      amount,
		Category:    core.Category(strings.TrimSpace(c.Category)),
	}
	for field, code := range entry.Validate() {
		// The raw-amount check above is more precise than the zero-cents
		// one; keep its code.
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = code
	}

	if len(errs) > 0 {
		return core.Entry{}, errs
	}
	return entry, nil
}

// Collector gathers candidate input and hands validated entries to its
// caller. It owns only its own transient field state: on success the fields
// reset to defaults, on failure they stay as entered so the user can correct
// and resubmit.
type Collector struct {
	current Candidate
}

func NewCollector() *Collector {
	return &Collector{}
}

// Submit validates the candidate. On success it returns the validated entry
// and resets the collector's state; on failure it returns the per-field
// errors and keeps the erroneous input. No partial record is ever produced.
func (c *Collector) Submit(cand Candidate) (core.Entry, core.FieldErrors) {
	entry, errs := cand.Validate()
	if errs != nil {
		c.current = cand
		return core.Entry{}, errs
	}
	c.current = Candidate{}
	return entry, nil
}

// Current returns the fields as last entered, for re-rendering a rejected
// form.
func (c *Collector) Current() Candidate {
	return c.current
}
