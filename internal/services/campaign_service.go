package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/repositories"
	"github.com/omnireach/crm-backend/internal/simulation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// statusTransitions is the closed transition table for campaign statuses.
// Anything not listed is rejected.
var statusTransitions = map[string][]string{
	models.CampaignStatusDraft:     {models.CampaignStatusActive},
	models.CampaignStatusActive:    {models.CampaignStatusPaused, models.CampaignStatusCompleted},
	models.CampaignStatusPaused:    {models.CampaignStatusActive, models.CampaignStatusCompleted},
	models.CampaignStatusCompleted: {},
}

// CampaignService handles campaign lifecycle, the send fan-out and the
// engagement simulators
type CampaignService struct {
	campaignRepo repositories.CampaignRepository
	customerRepo repositories.CustomerRepository
	logRepo      repositories.CommunicationLogRepository
	outcomes     *simulation.OutcomeModel
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(
	campaignRepo repositories.CampaignRepository,
	customerRepo repositories.CustomerRepository,
	logRepo repositories.CommunicationLogRepository,
	outcomes *simulation.OutcomeModel,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		customerRepo: customerRepo,
		logRepo:      logRepo,
		outcomes:     outcomes,
	}
}

// CreateCampaign creates a campaign owned by userID. New campaigns start
// as drafts unless the caller picked another valid status.
func (s *CampaignService) CreateCampaign(ctx context.Context, campaign *models.Campaign, userID primitive.ObjectID) error {
	campaign.UserID = userID
	if campaign.Status == "" {
		campaign.Status = models.CampaignStatusDraft
	}
	if _, ok := statusTransitions[campaign.Status]; !ok {
		return ErrInvalidStatus
	}
	if campaign.Type == "" {
		campaign.Type = models.CampaignTypeEmail
	}
	return s.campaignRepo.Create(ctx, campaign)
}

// GetCampaignsByUser lists the caller's campaigns
func (s *CampaignService) GetCampaignsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Campaign, error) {
	return s.campaignRepo.FindByUserID(ctx, userID)
}

// GetCampaignByID retrieves one campaign
func (s *CampaignService) GetCampaignByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCampaignNotFound
	}
	return campaign, err
}

// UpdateStatus moves a campaign through the status machine, rejecting
// transitions outside the table
func (s *CampaignService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Campaign, error) {
	campaign, err := s.GetCampaignByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, ok := statusTransitions[status]; !ok {
		return nil, ErrInvalidStatus
	}
	if !transitionAllowed(campaign.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, campaign.Status, status)
	}
	campaign.Status = status
	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// DeleteCampaign deletes a campaign
func (s *CampaignService) DeleteCampaign(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetCampaignByID(ctx, id); err != nil {
		return err
	}
	return s.campaignRepo.Delete(ctx, id)
}

// PreviewAudience resolves an equality filter to its matching customers
func (s *CampaignService) PreviewAudience(ctx context.Context, filters map[string]interface{}) ([]*models.Customer, error) {
	if len(filters) == 0 {
		return s.customerRepo.FindAll(ctx)
	}
	return s.customerRepo.FindByFilter(ctx, filters)
}

// SendCampaign executes one full fan-out of a campaign to its resolved
// audience: one outcome draw and one persisted log row per recipient.
// Rows already written are not rolled back when a later persist fails, and
// re-sending a campaign writes a second full set of rows.
func (s *CampaignService) SendCampaign(ctx context.Context, campaignID primitive.ObjectID) (*models.SendResult, error) {
	campaign, err := s.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	audience, err := s.resolveAudience(ctx, campaign)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve audience: %w", err)
	}

	result := &models.SendResult{Total: len(audience)}
	for _, customer := range audience {
		outcome := s.outcomes.ComputeOutcome(campaign, customer)
		entry := &models.CommunicationLog{
			CampaignID: campaign.ID,
			CustomerID: customer.ID,
			Channel:    logChannel(campaign.Type),
			Status:     outcome.Status,
			Message:    outcome.Message,
			ReceiptID:  outcome.ReceiptID,
			SentAt:     outcome.SentAt,
			OpenedAt:   outcome.OpenedAt,
			ClickedAt:  outcome.ClickedAt,
		}
		if err := s.logRepo.Create(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to persist communication log: %w", err)
		}
		if outcome.Status == models.LogStatusSent {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	log.Printf("[INFO] campaign %s sent: %d sent, %d failed, %d total",
		campaignID.Hex(), result.Sent, result.Failed, result.Total)
	return result, nil
}

// SimulateOpens stamps openedAt on floor(percentage/100 * eligible) of the
// campaign's SENT-but-unopened logs, in storage order
func (s *CampaignService) SimulateOpens(ctx context.Context, campaignID primitive.ObjectID, percentage float64) (*models.SimulationResult, error) {
	if _, err := s.GetCampaignByID(ctx, campaignID); err != nil {
		return nil, err
	}
	eligible, err := s.logRepo.FindUnopened(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	selected := takeShare(eligible, percentage)
	if err := s.logRepo.SetOpened(ctx, logIDs(selected), time.Now()); err != nil {
		return nil, err
	}
	return &models.SimulationResult{Opened: len(selected), Total: len(eligible)}, nil
}

// SimulateClicks stamps clickedAt the same way, but eligibility requires
// openedAt already set, which keeps "click implies open" intact
func (s *CampaignService) SimulateClicks(ctx context.Context, campaignID primitive.ObjectID, percentage float64) (*models.SimulationResult, error) {
	if _, err := s.GetCampaignByID(ctx, campaignID); err != nil {
		return nil, err
	}
	eligible, err := s.logRepo.FindUnclicked(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	selected := takeShare(eligible, percentage)
	if err := s.logRepo.SetClicked(ctx, logIDs(selected), time.Now()); err != nil {
		return nil, err
	}
	return &models.SimulationResult{Clicked: len(selected), Total: len(eligible)}, nil
}

// ApplyDeliveryReceipt overwrites a log's status from a vendor callback
func (s *CampaignService) ApplyDeliveryReceipt(ctx context.Context, logID primitive.ObjectID, status string) error {
	if status != models.LogStatusSent && status != models.LogStatusFailed {
		return ErrInvalidStatus
	}
	err := s.logRepo.UpdateStatus(ctx, logID, status)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrLogNotFound
	}
	return err
}

// GetLogs lists logs, optionally scoped to one campaign
func (s *CampaignService) GetLogs(ctx context.Context, campaignID *primitive.ObjectID) ([]*models.CommunicationLog, error) {
	if campaignID != nil {
		return s.logRepo.FindByCampaignID(ctx, *campaignID)
	}
	return s.logRepo.FindAll(ctx)
}

// resolveAudience applies the campaign's targeting filters when present
// and falls back to every customer, which keeps legacy campaigns with an
// empty targeting block behaving as before.
func (s *CampaignService) resolveAudience(ctx context.Context, campaign *models.Campaign) ([]*models.Customer, error) {
	if len(campaign.Targeting.Filters) > 0 {
		return s.customerRepo.FindByFilter(ctx, campaign.Targeting.Filters)
	}
	return s.customerRepo.FindAll(ctx)
}

func transitionAllowed(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// takeShare keeps the first floor(percentage/100 * len) entries
func takeShare(logs []*models.CommunicationLog, percentage float64) []*models.CommunicationLog {
	if percentage < 0 {
		percentage = 0
	}
	n := int(percentage / 100 * float64(len(logs)))
	if n > len(logs) {
		n = len(logs)
	}
	return logs[:n]
}

func logIDs(logs []*models.CommunicationLog) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(logs))
	for _, l := range logs {
		ids = append(ids, l.ID)
	}
	return ids
}

// logChannel maps a campaign type to the channel recorded on its logs.
// Multi-channel campaigns log as email, the original's default.
func logChannel(campaignType string) string {
	switch campaignType {
	case models.CampaignTypeSMS:
		return models.ChannelSMS
	case models.CampaignTypePush:
		return models.ChannelPush
	default:
		return models.ChannelEmail
	}
}
