package store

import (
	"testing"

	"github.com/desertthunder/tripkit/internal/models"
)

func TestTierPermits(t *testing.T) {
	tc := []struct {
		tier models.Tier
		want bool
	}{
		{models.TierAnonymous, false},
		{models.TierStandard, true},
		{models.TierPremium, true},
		{models.TierAdmin, true},
	}

	for _, tt := range tc {
		t.Run(string(tt.tier), func(t *testing.T) {
			if got := TierPermits(tt.tier); got != tt.want {
				t.Errorf("TierPermits(%s) = %v, want %v", tt.tier, got, tt.want)
			}
		})
	}
}

func TestGate(t *testing.T) {
	t.Run("Polls Tier Source Per Call", func(t *testing.T) {
		tier := models.TierAnonymous
		gate := NewGate(func() models.Tier { return tier }, false)

		if gate.Permits() {
			t.Error("anonymous session should not permit durable writes")
		}

		// Mid-session upgrade takes effect on the very next decision.
		tier = models.TierStandard
		if !gate.Permits() {
			t.Error("standard session should permit durable writes")
		}
	})

	t.Run("Force Writes Override", func(t *testing.T) {
		gate := NewGate(func() models.Tier { return models.TierAnonymous }, true)
		if !gate.Permits() {
			t.Error("force-writes gate should permit regardless of tier")
		}
	})

	t.Run("Nil Tier Source Defaults To Anonymous", func(t *testing.T) {
		if NewGate(nil, false).Permits() {
			t.Error("gate without a tier source should refuse durable writes")
		}
	})
}
