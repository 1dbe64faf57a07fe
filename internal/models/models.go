package models

import (
	"fmt"
	"time"
)

// Item defines the base interface for all content entities owned by a domain
// collection. Implementations include Countdown, Budget, PackingList, and PlannerDay.
type Item interface {
	ItemID() string                   // ItemID returns the unique identifier for this item
	Stamp(id string, now time.Time)   // Stamp assigns identity and creation timestamps to a new item
	Touch(now time.Time)              // Touch updates the modification timestamp
	Validate() error                  // Validate checks if the item's data is valid and returns an error if not
}

// Meta carries the fields every domain item shares. Domain item types embed
// it and pick up the [Item] interface through promotion.
type Meta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Meta) ItemID() string { return m.ID }

// Stamp assigns the id and sets both timestamps. Called once, at creation.
func (m *Meta) Stamp(id string, now time.Time) {
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
}

func (m *Meta) Touch(now time.Time) { m.UpdatedAt = now }

// Validate checks the shared fields. Domain types layer their own checks on top.
func (m *Meta) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("item id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("item name is required")
	}
	return nil
}

// Tier is the user's permission level, produced by the external identity flow.
//
// Tiers are totally ordered (anonymous < standard < premium) with admin as a
// disjoint super-tier that satisfies every check without being numerically
// above premium.
type Tier string

const (
	TierAnonymous Tier = "anonymous"
	TierStandard  Tier = "standard"
	TierPremium   Tier = "premium"
	TierAdmin     Tier = "admin"
)

var tierRank = map[Tier]int{
	TierAnonymous: 0,
	TierStandard:  1,
	TierPremium:   2,
}

// ParseTier validates a tier label read from config or a flag.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	switch t {
	case TierAnonymous, TierStandard, TierPremium, TierAdmin:
		return t, nil
	}
	return "", fmt.Errorf("unrecognized tier %q", s)
}

// Meets reports whether t satisfies a check requiring at least min.
// Admin satisfies every check.
func (t Tier) Meets(min Tier) bool {
	if t == TierAdmin {
		return true
	}
	if min == TierAdmin {
		return false
	}
	return tierRank[t] >= tierRank[min]
}

// Domain names one of the four content types.
type Domain string

const (
	DomainCountdown Domain = "countdown"
	DomainBudget    Domain = "budget"
	DomainPacking   Domain = "packing"
	DomainPlanner   Domain = "planner"
)

// Domains returns all content domains in display order.
func Domains() []Domain {
	return []Domain{DomainCountdown, DomainBudget, DomainPacking, DomainPlanner}
}

// ParseDomain validates a domain label from user input.
func ParseDomain(s string) (Domain, error) {
	d := Domain(s)
	switch d {
	case DomainCountdown, DomainBudget, DomainPacking, DomainPlanner:
		return d, nil
	}
	return "", fmt.Errorf("unrecognized domain %q", s)
}

// StorageKey returns the storage key under which this domain's item list is
// persisted. Keys are stable for the lifetime of the app version.
func (d Domain) StorageKey() string {
	return fmt.Sprintf("disney-%ss", d)
}
