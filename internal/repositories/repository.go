package repositories

import (
	"context"
	"time"

	"github.com/omnireach/crm-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignRepository defines the interface for campaign operations
type CampaignRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Campaign, error)
	Create(ctx context.Context, campaign *models.Campaign) error
	Update(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// CommunicationLogRepository defines the interface for communication log operations
type CommunicationLogRepository interface {
	Create(ctx context.Context, log *models.CommunicationLog) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CommunicationLog, error)
	FindByCampaignID(ctx context.Context, campaignID primitive.ObjectID) ([]*models.CommunicationLog, error)
	FindAll(ctx context.Context) ([]*models.CommunicationLog, error)
	// FindUnopened returns SENT logs with no openedAt, in storage order.
	FindUnopened(ctx context.Context, campaignID primitive.ObjectID) ([]*models.CommunicationLog, error)
	// FindUnclicked returns SENT logs with openedAt set and no clickedAt,
	// in storage order.
	FindUnclicked(ctx context.Context, campaignID primitive.ObjectID) ([]*models.CommunicationLog, error)
	SetOpened(ctx context.Context, ids []primitive.ObjectID, openedAt time.Time) error
	SetClicked(ctx context.Context, ids []primitive.ObjectID, clickedAt time.Time) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// CustomerRepository defines the interface for customer operations
type CustomerRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	FindAll(ctx context.Context) ([]*models.Customer, error)
	FindByFilter(ctx context.Context, filter map[string]interface{}) ([]*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Count(ctx context.Context) (int64, error)
}

// OrderRepository defines the interface for order operations
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByCustomerID(ctx context.Context, customerID primitive.ObjectID) ([]*models.Order, error)
}

// DataRecordRepository defines the interface for raw data record operations
type DataRecordRepository interface {
	InsertMany(ctx context.Context, records []*models.DataRecord) error
	FindAll(ctx context.Context) ([]*models.DataRecord, error)
}

// DataSourceRepository defines the interface for data source registry operations
type DataSourceRepository interface {
	FindAll(ctx context.Context) ([]*models.DataSource, error)
	Create(ctx context.Context, source *models.DataSource) error
}

// TemplateRepository defines the interface for message template operations
type TemplateRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Template, error)
	FindByName(ctx context.Context, name string) (*models.Template, error)
	FindAll(ctx context.Context) ([]*models.Template, error)
	Create(ctx context.Context, template *models.Template) error
	Update(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ScheduledJobRepository defines the interface for durable scheduled sends
type ScheduledJobRepository interface {
	Create(ctx context.Context, job *models.ScheduledJob) error
	// ClaimDue atomically moves the earliest due pending job to running and
	// returns it. Returns (nil, nil) when no job is due.
	ClaimDue(ctx context.Context, now time.Time) (*models.ScheduledJob, error)
	MarkCompleted(ctx context.Context, id primitive.ObjectID) error
	MarkFailed(ctx context.Context, id primitive.ObjectID, jobErr string) error
	FindByCampaignID(ctx context.Context, campaignID primitive.ObjectID) ([]*models.ScheduledJob, error)
}

// AccountRepository defines the interface for backend login accounts
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
}
