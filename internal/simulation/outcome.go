// Package simulation decides per-recipient delivery and engagement
// outcomes for campaign sends. Delivery is never handed to a real vendor;
// the outcome model stands in for one.
package simulation

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/omnireach/crm-backend/internal/models"
)

// Outcome probabilities. 90% of messages deliver; 60% of delivered are
// opened; half of opened are clicked (30% of delivered overall).
const (
	deliverProbability = 0.90
	openProbability    = 0.60
	clickProbability   = 0.50

	maxOpenDelay  = 60 * time.Second
	maxClickDelay = 120 * time.Second
)

// Outcome is the full result of sending one campaign message to one
// recipient. ClickedAt is only ever set together with OpenedAt.
type Outcome struct {
	Status    string
	Message   string
	ReceiptID string
	SentAt    time.Time
	OpenedAt  *time.Time
	ClickedAt *time.Time
}

// OutcomeModel draws delivery and engagement outcomes. It holds its own
// randomness source so tests can seed it; the zero-value clock defaults to
// time.Now.
type OutcomeModel struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewOutcomeModel creates an OutcomeModel seeded from the wall clock
func NewOutcomeModel() *OutcomeModel {
	return NewOutcomeModelWithSeed(time.Now().UnixNano())
}

// NewOutcomeModelWithSeed creates a deterministic OutcomeModel for tests
func NewOutcomeModelWithSeed(seed int64) *OutcomeModel {
	return &OutcomeModel{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// ComputeOutcome draws the atomic delivery/engagement outcome for one
// (campaign, customer) pair. The message body is personalized with the
// customer's display name. No side effects.
func (m *OutcomeModel) ComputeOutcome(campaign *models.Campaign, customer *models.Customer) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	outcome := Outcome{
		Status:  models.LogStatusFailed,
		Message: personalize(customer.Name),
		SentAt:  now,
	}

	if m.rng.Float64() >= deliverProbability {
		// Failed deliveries never gain engagement.
		return outcome
	}

	outcome.Status = models.LogStatusSent
	outcome.ReceiptID = uuid.NewString()

	if m.rng.Float64() < openProbability {
		openedAt := now.Add(time.Duration(m.rng.Int63n(int64(maxOpenDelay))))
		outcome.OpenedAt = &openedAt
		if m.rng.Float64() < clickProbability {
			clickedAt := now.Add(time.Duration(m.rng.Int63n(int64(maxClickDelay))))
			outcome.ClickedAt = &clickedAt
		}
	}

	return outcome
}

func personalize(name string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hi %s, here's 10%% off on your next order!", name)
}
