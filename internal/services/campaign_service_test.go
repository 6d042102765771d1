package services

import (
	"context"
	"testing"
	"time"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestCustomers(n int) []*models.Customer {
	customers := make([]*models.Customer, 0, n)
	for i := 0; i < n; i++ {
		customers = append(customers, &models.Customer{
			ID:    primitive.NewObjectID(),
			Email: primitive.NewObjectID().Hex() + "@example.com",
			Name:  "Customer",
		})
	}
	return customers
}

func newTestCampaignService(campaigns []*models.Campaign, customers []*models.Customer) (*CampaignService, *memLogRepo, *memCustomerRepo) {
	campaignRepo := newMemCampaignRepo(campaigns...)
	customerRepo := &memCustomerRepo{customers: customers}
	logRepo := &memLogRepo{}
	svc := NewCampaignService(campaignRepo, customerRepo, logRepo, simulation.NewOutcomeModelWithSeed(42))
	return svc, logRepo, customerRepo
}

func TestSendCampaignWritesOneLogPerRecipient(t *testing.T) {
	campaign := &models.Campaign{Name: "Promo", Status: models.CampaignStatusActive}
	svc, logRepo, _ := newTestCampaignService([]*models.Campaign{campaign}, newTestCustomers(50))

	result, err := svc.SendCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)

	assert.Equal(t, 50, result.Total)
	assert.Equal(t, result.Total, result.Sent+result.Failed)
	assert.Len(t, logRepo.logs, 50)

	for _, l := range logRepo.logs {
		assert.Equal(t, campaign.ID, l.CampaignID)
		assert.Contains(t, []string{models.LogStatusSent, models.LogStatusFailed}, l.Status)
		if l.Status == models.LogStatusFailed {
			assert.Nil(t, l.OpenedAt)
			assert.Nil(t, l.ClickedAt)
			assert.Empty(t, l.ReceiptID)
		}
		if l.ClickedAt != nil {
			assert.NotNil(t, l.OpenedAt)
		}
	}
}

func TestSendCampaignResendAppendsNewRows(t *testing.T) {
	campaign := &models.Campaign{Name: "Promo"}
	svc, logRepo, _ := newTestCampaignService([]*models.Campaign{campaign}, newTestCustomers(10))

	_, err := svc.SendCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)
	_, err = svc.SendCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)

	// There is no dedup: each send writes a full set of rows.
	assert.Len(t, logRepo.logs, 20)
}

func TestSendCampaignUsesTargetingFilters(t *testing.T) {
	segment := newTestCustomers(3)
	campaign := &models.Campaign{
		Name: "Segmented",
		Targeting: models.CampaignTargeting{
			Filters: map[string]interface{}{"attributes.tier": "gold"},
		},
	}
	svc, logRepo, customerRepo := newTestCampaignService([]*models.Campaign{campaign}, newTestCustomers(10))
	customerRepo.filtered = segment

	result, err := svc.SendCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Len(t, logRepo.logs, 3)
	assert.Equal(t, campaign.Targeting.Filters, customerRepo.lastFilter)
}

func TestSendCampaignNotFound(t *testing.T) {
	svc, _, _ := newTestCampaignService(nil, newTestCustomers(2))

	_, err := svc.SendCampaign(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestSimulateOpensTakesFloorShare(t *testing.T) {
	campaign := &models.Campaign{Name: "Promo"}
	svc, logRepo, _ := newTestCampaignService([]*models.Campaign{campaign}, nil)
	for i := 0; i < 10; i++ {
		require.NoError(t, logRepo.Create(context.Background(), &models.CommunicationLog{
			CampaignID: campaign.ID,
			Status:     models.LogStatusSent,
			SentAt:     time.Now(),
		}))
	}

	result, err := svc.SimulateOpens(context.Background(), campaign.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Opened)
	assert.Equal(t, 10, result.Total)

	// Repeating shrinks the eligible pool: floor(0.6 * 4) = 2.
	result, err = svc.SimulateOpens(context.Background(), campaign.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Opened)
	assert.Equal(t, 4, result.Total)

	// floor(0.6 * 2) = 1, then floor(0.6 * 1) = 0: the pool converges
	// without ever exceeding 100%.
	result, err = svc.SimulateOpens(context.Background(), campaign.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Opened)

	result, err = svc.SimulateOpens(context.Background(), campaign.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Opened)
	assert.Equal(t, 1, result.Total)
}

func TestSimulateOpensIgnoresFailedRows(t *testing.T) {
	campaign := &models.Campaign{Name: "Promo"}
	svc, logRepo, _ := newTestCampaignService([]*models.Campaign{campaign}, nil)
	for i := 0; i < 5; i++ {
		require.NoError(t, logRepo.Create(context.Background(), &models.CommunicationLog{
			CampaignID: campaign.ID,
			Status:     models.LogStatusFailed,
			SentAt:     time.Now(),
		}))
	}

	result, err := svc.SimulateOpens(context.Background(), campaign.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Opened)
	assert.Equal(t, 0, result.Total)
}

func TestSimulateClicksRequiresOpen(t *testing.T) {
	campaign := &models.Campaign{Name: "Promo"}
	svc, logRepo, _ := newTestCampaignService([]*models.Campaign{campaign}, nil)
	opened := time.Now()
	// 4 opened, 6 merely sent.
	for i := 0; i < 10; i++ {
		entry := &models.CommunicationLog{
			CampaignID: campaign.ID,
			Status:     models.LogStatusSent,
			SentAt:     time.Now(),
		}
		if i < 4 {
			at := opened
			entry.OpenedAt = &at
		}
		require.NoError(t, logRepo.Create(context.Background(), entry))
	}

	result, err := svc.SimulateClicks(context.Background(), campaign.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Clicked)
	assert.Equal(t, 4, result.Total)

	for _, l := range logRepo.logs {
		if l.ClickedAt != nil {
			assert.NotNil(t, l.OpenedAt)
		}
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"draft to active", models.CampaignStatusDraft, models.CampaignStatusActive, nil},
		{"active to paused", models.CampaignStatusActive, models.CampaignStatusPaused, nil},
		{"paused to active", models.CampaignStatusPaused, models.CampaignStatusActive, nil},
		{"active to completed", models.CampaignStatusActive, models.CampaignStatusCompleted, nil},
		{"draft to completed", models.CampaignStatusDraft, models.CampaignStatusCompleted, ErrInvalidTransition},
		{"draft to paused", models.CampaignStatusDraft, models.CampaignStatusPaused, ErrInvalidTransition},
		{"completed to active", models.CampaignStatusCompleted, models.CampaignStatusActive, ErrInvalidTransition},
		{"active to draft", models.CampaignStatusActive, models.CampaignStatusDraft, ErrInvalidTransition},
		{"unknown target", models.CampaignStatusDraft, "archived", ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			campaign := &models.Campaign{Name: "Promo", Status: tt.from}
			svc, _, _ := newTestCampaignService([]*models.Campaign{campaign}, nil)

			updated, err := svc.UpdateStatus(context.Background(), campaign.ID, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
		})
	}
}

func TestCreateCampaignDefaults(t *testing.T) {
	svc, _, _ := newTestCampaignService(nil, nil)
	userID := primitive.NewObjectID()

	campaign := &models.Campaign{Name: "Promo"}
	require.NoError(t, svc.CreateCampaign(context.Background(), campaign, userID))

	assert.Equal(t, models.CampaignStatusDraft, campaign.Status)
	assert.Equal(t, models.CampaignTypeEmail, campaign.Type)
	assert.Equal(t, userID, campaign.UserID)
	assert.False(t, campaign.ID.IsZero())
}

func TestCreateCampaignRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestCampaignService(nil, nil)

	err := svc.CreateCampaign(context.Background(), &models.Campaign{Name: "Promo", Status: "archived"}, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApplyDeliveryReceipt(t *testing.T) {
	campaign := &models.Campaign{Name: "Promo"}
	svc, logRepo, _ := newTestCampaignService([]*models.Campaign{campaign}, nil)
	entry := &models.CommunicationLog{CampaignID: campaign.ID, Status: models.LogStatusSent}
	require.NoError(t, logRepo.Create(context.Background(), entry))

	require.NoError(t, svc.ApplyDeliveryReceipt(context.Background(), entry.ID, models.LogStatusFailed))
	assert.Equal(t, models.LogStatusFailed, entry.Status)

	assert.ErrorIs(t, svc.ApplyDeliveryReceipt(context.Background(), entry.ID, "BOUNCED"), ErrInvalidStatus)
	assert.ErrorIs(t, svc.ApplyDeliveryReceipt(context.Background(), primitive.NewObjectID(), models.LogStatusSent), ErrLogNotFound)
}

func TestGetLogsScopedToCampaign(t *testing.T) {
	campaign := &models.Campaign{Name: "Promo"}
	other := &models.Campaign{Name: "Other"}
	svc, logRepo, _ := newTestCampaignService([]*models.Campaign{campaign, other}, nil)
	require.NoError(t, logRepo.Create(context.Background(), &models.CommunicationLog{CampaignID: campaign.ID, Status: models.LogStatusSent}))
	require.NoError(t, logRepo.Create(context.Background(), &models.CommunicationLog{CampaignID: other.ID, Status: models.LogStatusSent}))

	scoped, err := svc.GetLogs(context.Background(), &campaign.ID)
	require.NoError(t, err)
	assert.Len(t, scoped, 1)

	all, err := svc.GetLogs(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
