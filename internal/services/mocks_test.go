package services

import (
	"context"
	"sync"
	"time"

	"github.com/omnireach/crm-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes shared by the service tests.

type memCampaignRepo struct {
	campaigns map[primitive.ObjectID]*models.Campaign
}

func newMemCampaignRepo(campaigns ...*models.Campaign) *memCampaignRepo {
	repo := &memCampaignRepo{campaigns: map[primitive.ObjectID]*models.Campaign{}}
	for _, c := range campaigns {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		repo.campaigns[c.ID] = c
	}
	return repo
}

func (r *memCampaignRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	campaign, ok := r.campaigns[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return campaign, nil
}

func (r *memCampaignRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) ([]*models.Campaign, error) {
	out := []*models.Campaign{}
	for _, c := range r.campaigns {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCampaignRepo) Create(_ context.Context, campaign *models.Campaign) error {
	if campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
	}
	r.campaigns[campaign.ID] = campaign
	return nil
}

func (r *memCampaignRepo) Update(_ context.Context, campaign *models.Campaign) error {
	if _, ok := r.campaigns[campaign.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.campaigns[campaign.ID] = campaign
	return nil
}

func (r *memCampaignRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.campaigns, id)
	return nil
}

func (r *memCampaignRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.campaigns)), nil
}

type memCustomerRepo struct {
	customers  []*models.Customer
	filtered   []*models.Customer
	lastFilter map[string]interface{}
}

func (r *memCustomerRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memCustomerRepo) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memCustomerRepo) FindAll(_ context.Context) ([]*models.Customer, error) {
	return r.customers, nil
}

func (r *memCustomerRepo) FindByFilter(_ context.Context, filter map[string]interface{}) ([]*models.Customer, error) {
	r.lastFilter = filter
	return r.filtered, nil
}

func (r *memCustomerRepo) Create(_ context.Context, customer *models.Customer) error {
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	r.customers = append(r.customers, customer)
	return nil
}

func (r *memCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

type memLogRepo struct {
	logs      []*models.CommunicationLog
	createErr error
}

func (r *memLogRepo) Create(_ context.Context, entry *models.CommunicationLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	r.logs = append(r.logs, entry)
	return nil
}

func (r *memLogRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.CommunicationLog, error) {
	for _, l := range r.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memLogRepo) FindByCampaignID(_ context.Context, campaignID primitive.ObjectID) ([]*models.CommunicationLog, error) {
	out := []*models.CommunicationLog{}
	for _, l := range r.logs {
		if l.CampaignID == campaignID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLogRepo) FindAll(_ context.Context) ([]*models.CommunicationLog, error) {
	return r.logs, nil
}

func (r *memLogRepo) FindUnopened(_ context.Context, campaignID primitive.ObjectID) ([]*models.CommunicationLog, error) {
	out := []*models.CommunicationLog{}
	for _, l := range r.logs {
		if l.CampaignID == campaignID && l.Status == models.LogStatusSent && l.OpenedAt == nil {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLogRepo) FindUnclicked(_ context.Context, campaignID primitive.ObjectID) ([]*models.CommunicationLog, error) {
	out := []*models.CommunicationLog{}
	for _, l := range r.logs {
		if l.CampaignID == campaignID && l.Status == models.LogStatusSent && l.OpenedAt != nil && l.ClickedAt == nil {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLogRepo) SetOpened(_ context.Context, ids []primitive.ObjectID, openedAt time.Time) error {
	for _, id := range ids {
		for _, l := range r.logs {
			if l.ID == id {
				at := openedAt
				l.OpenedAt = &at
			}
		}
	}
	return nil
}

func (r *memLogRepo) SetClicked(_ context.Context, ids []primitive.ObjectID, clickedAt time.Time) error {
	for _, id := range ids {
		for _, l := range r.logs {
			if l.ID == id {
				at := clickedAt
				l.ClickedAt = &at
			}
		}
	}
	return nil
}

func (r *memLogRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	for _, l := range r.logs {
		if l.ID == id {
			l.Status = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type memJobRepo struct {
	mu   sync.Mutex
	jobs []*models.ScheduledJob
}

func (r *memJobRepo) Create(_ context.Context, job *models.ScheduledJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	if job.State == "" {
		job.State = models.JobStatePending
	}
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *memJobRepo) ClaimDue(_ context.Context, now time.Time) (*models.ScheduledJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due *models.ScheduledJob
	for _, j := range r.jobs {
		if j.State != models.JobStatePending || j.FiresAt.After(now) {
			continue
		}
		if due == nil || j.FiresAt.Before(due.FiresAt) {
			due = j
		}
	}
	if due == nil {
		return nil, nil
	}
	due.State = models.JobStateRunning
	return due, nil
}

func (r *memJobRepo) MarkCompleted(_ context.Context, id primitive.ObjectID) error {
	return r.setState(id, models.JobStateCompleted, "")
}

func (r *memJobRepo) MarkFailed(_ context.Context, id primitive.ObjectID, jobErr string) error {
	return r.setState(id, models.JobStateFailed, jobErr)
}

func (r *memJobRepo) FindByCampaignID(_ context.Context, campaignID primitive.ObjectID) ([]*models.ScheduledJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.ScheduledJob{}
	for _, j := range r.jobs {
		if j.CampaignID == campaignID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *memJobRepo) setState(id primitive.ObjectID, state, jobErr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.ID == id {
			j.State = state
			j.Error = jobErr
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type memAccountRepo struct {
	accounts map[string]*models.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: map[string]*models.Account{}}
}

func (r *memAccountRepo) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	account, ok := r.accounts[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return account, nil
}

func (r *memAccountRepo) Create(_ context.Context, account *models.Account) error {
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	r.accounts[account.Email] = account
	return nil
}
