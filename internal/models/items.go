package models

import (
	"fmt"
	"time"
)

// Countdown counts down to a trip date.
type Countdown struct {
	Meta
	TargetDate time.Time `json:"targetDate"`
	Park       string    `json:"park,omitempty"`
}

func (c *Countdown) Validate() error {
	if err := c.Meta.Validate(); err != nil {
		return err
	}
	if c.TargetDate.IsZero() {
		return fmt.Errorf("countdown target date is required")
	}
	return nil
}

// Budget is a spending envelope for one trip.
type Budget struct {
	Meta
	Total    float64 `json:"total"`
	Spent    float64 `json:"spent"`
	Currency string  `json:"currency,omitempty"`
}

func (b *Budget) Validate() error {
	if err := b.Meta.Validate(); err != nil {
		return err
	}
	if b.Total < 0 || b.Spent < 0 {
		return fmt.Errorf("budget amounts must be non-negative")
	}
	return nil
}

// Remaining returns the unspent portion of the budget.
func (b *Budget) Remaining() float64 { return b.Total - b.Spent }

// PackingEntry is one line of a packing checklist.
type PackingEntry struct {
	Label  string `json:"label"`
	Packed bool   `json:"packed"`
}

// PackingList is a checklist of things to pack.
type PackingList struct {
	Meta
	Entries []PackingEntry `json:"entries,omitempty"`
}

// PackedCount returns how many entries are checked off.
func (p *PackingList) PackedCount() int {
	n := 0
	for _, e := range p.Entries {
		if e.Packed {
			n++
		}
	}
	return n
}

// Activity is one scheduled stop in a planner day.
type Activity struct {
	Time     string `json:"time,omitempty"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
}

// PlannerDay is a single day of the day-by-day planner.
type PlannerDay struct {
	Meta
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities,omitempty"`
}

func (p *PlannerDay) Validate() error {
	if err := p.Meta.Validate(); err != nil {
		return err
	}
	for _, a := range p.Activities {
		if a.Title == "" {
			return fmt.Errorf("planner activity title is required")
		}
	}
	return nil
}

// WidgetConfig describes one dashboard slot.
//
// Order values across all configs form a contiguous permutation of 0..N-1.
// SelectedItemID, when present, references an existing item of the matching
// domain; deletion of the referent clears it, never leaves it dangling.
type WidgetConfig struct {
	ID              string         `json:"id"`
	DomainType      Domain         `json:"domainType"`
	Order           int            `json:"order"`
	SelectedItemID  string         `json:"selectedItemId,omitempty"`
	DisplaySettings map[string]any `json:"displaySettings,omitempty"`
}

// PendingLink records a widget's outstanding request to be bound to an item
// that has not been created yet. At most one exists per widget.
type PendingLink struct {
	DomainType  Domain    `json:"domainType"`
	WidgetID    string    `json:"widgetId"`
	RequestedAt time.Time `json:"requestedAt"`
}
