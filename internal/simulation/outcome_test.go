package simulation

import (
	"testing"
	"time"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOutcomeDistribution(t *testing.T) {
	model := NewOutcomeModelWithSeed(1)
	campaign := &models.Campaign{Name: "Promo"}
	customer := &models.Customer{Name: "Mohit"}

	const draws = 20000
	var sent, opened, clicked int
	for i := 0; i < draws; i++ {
		outcome := model.ComputeOutcome(campaign, customer)
		if outcome.Status == models.LogStatusSent {
			sent++
		}
		if outcome.OpenedAt != nil {
			opened++
		}
		if outcome.ClickedAt != nil {
			clicked++
		}
	}

	// 90% deliver, 60% of delivered open, 50% of opened click.
	assert.InDelta(t, 0.90, float64(sent)/draws, 0.02)
	assert.InDelta(t, 0.60, float64(opened)/float64(sent), 0.02)
	assert.InDelta(t, 0.50, float64(clicked)/float64(opened), 0.03)
}

func TestComputeOutcomeInvariants(t *testing.T) {
	model := NewOutcomeModelWithSeed(7)
	campaign := &models.Campaign{Name: "Promo"}
	customer := &models.Customer{Name: "Mohit"}

	for i := 0; i < 5000; i++ {
		outcome := model.ComputeOutcome(campaign, customer)

		switch outcome.Status {
		case models.LogStatusFailed:
			assert.Nil(t, outcome.OpenedAt)
			assert.Nil(t, outcome.ClickedAt)
			assert.Empty(t, outcome.ReceiptID)
		case models.LogStatusSent:
			assert.NotEmpty(t, outcome.ReceiptID)
		default:
			t.Fatalf("unexpected status %q", outcome.Status)
		}

		if outcome.ClickedAt != nil {
			require.NotNil(t, outcome.OpenedAt)
		}
		if outcome.OpenedAt != nil {
			delay := outcome.OpenedAt.Sub(outcome.SentAt)
			assert.GreaterOrEqual(t, delay, time.Duration(0))
			assert.Less(t, delay, maxOpenDelay)
		}
		if outcome.ClickedAt != nil {
			delay := outcome.ClickedAt.Sub(outcome.SentAt)
			assert.GreaterOrEqual(t, delay, time.Duration(0))
			assert.Less(t, delay, maxClickDelay)
		}
	}
}

func TestComputeOutcomeReceiptIDsAreUnique(t *testing.T) {
	model := NewOutcomeModelWithSeed(3)
	campaign := &models.Campaign{Name: "Promo"}
	customer := &models.Customer{Name: "Mohit"}

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		outcome := model.ComputeOutcome(campaign, customer)
		if outcome.ReceiptID == "" {
			continue
		}
		assert.False(t, seen[outcome.ReceiptID], "duplicate receipt id %s", outcome.ReceiptID)
		seen[outcome.ReceiptID] = true
	}
}

func TestPersonalize(t *testing.T) {
	assert.Equal(t, "Hi Mohit, here's 10% off on your next order!", personalize("Mohit"))
	assert.Equal(t, "Hi there, here's 10% off on your next order!", personalize(""))
}
