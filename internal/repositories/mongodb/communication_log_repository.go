package mongodb

import (
	"context"
	"time"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommunicationLogRepository implements the repositories.CommunicationLogRepository interface
type CommunicationLogRepository struct {
	collection *mongo.Collection
}

// NewCommunicationLogRepository creates a new CommunicationLogRepository
func NewCommunicationLogRepository(db *mongo.Database) repositories.CommunicationLogRepository {
	return &CommunicationLogRepository{
		collection: db.Collection("communication_logs"),
	}
}

// Create creates a new communication log row
func (r *CommunicationLogRepository) Create(ctx context.Context, log *models.CommunicationLog) error {
	log.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		log.ID = oid
	}
	return nil
}

// FindByID finds a log by ID
func (r *CommunicationLogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CommunicationLog, error) {
	var log models.CommunicationLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// FindByCampaignID finds all logs for a campaign in storage order
func (r *CommunicationLogRepository) FindByCampaignID(ctx context.Context, campaignID primitive.ObjectID) ([]*models.CommunicationLog, error) {
	return r.find(ctx, bson.M{"campaignId": campaignID})
}

// FindAll finds every log in the store
func (r *CommunicationLogRepository) FindAll(ctx context.Context) ([]*models.CommunicationLog, error) {
	return r.find(ctx, bson.M{})
}

// FindUnopened finds SENT logs for a campaign that have no openedAt yet
func (r *CommunicationLogRepository) FindUnopened(ctx context.Context, campaignID primitive.ObjectID) ([]*models.CommunicationLog, error) {
	return r.find(ctx, bson.M{
		"campaignId": campaignID,
		"status":     models.LogStatusSent,
		"openedAt":   bson.M{"$exists": false},
	})
}

// FindUnclicked finds opened SENT logs for a campaign that have no clickedAt yet
func (r *CommunicationLogRepository) FindUnclicked(ctx context.Context, campaignID primitive.ObjectID) ([]*models.CommunicationLog, error) {
	return r.find(ctx, bson.M{
		"campaignId": campaignID,
		"status":     models.LogStatusSent,
		"openedAt":   bson.M{"$exists": true},
		"clickedAt":  bson.M{"$exists": false},
	})
}

// SetOpened stamps openedAt on the given logs
func (r *CommunicationLogRepository) SetOpened(ctx context.Context, ids []primitive.ObjectID, openedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"openedAt": openedAt, "updatedAt": time.Now()}},
	)
	return err
}

// SetClicked stamps clickedAt on the given logs
func (r *CommunicationLogRepository) SetClicked(ctx context.Context, ids []primitive.ObjectID, clickedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"clickedAt": clickedAt, "updatedAt": time.Now()}},
	)
	return err
}

// UpdateStatus overwrites a log's delivery status
func (r *CommunicationLogRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *CommunicationLogRepository) find(ctx context.Context, filter bson.M) ([]*models.CommunicationLog, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*models.CommunicationLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*models.CommunicationLog{}
	}
	return logs, nil
}
