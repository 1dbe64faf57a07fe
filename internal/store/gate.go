package store

import "github.com/desertthunder/tripkit/internal/models"

// TierSource reports the session's current [models.Tier].
//
// The gate polls it at the moment of each durable-write decision, never
// caching the result, because tier can change mid-session (upgrade flow).
type TierSource func() models.Tier

// TierPermits is the persistence policy: anonymous sessions may not write
// durably, every other tier may. Pure, no side effects, no error path.
func TierPermits(t models.Tier) bool {
	return t.Meets(models.TierStandard)
}

// Gate binds the policy to a tier source plus an explicit force-writes
// override used by diagnostic contexts. The override is a constructor
// parameter rather than a hidden special case so the policy stays pure.
type Gate struct {
	tier        TierSource
	forceWrites bool
}

// NewGate creates a Gate over the given tier source.
func NewGate(tier TierSource, forceWrites bool) *Gate {
	if tier == nil {
		tier = func() models.Tier { return models.TierAnonymous }
	}
	return &Gate{tier: tier, forceWrites: forceWrites}
}

// Permits reports whether a durable read or write is allowed right now.
func (g *Gate) Permits() bool {
	if g.forceWrites {
		return true
	}
	return TierPermits(g.tier())
}
