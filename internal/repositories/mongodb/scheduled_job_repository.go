package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScheduledJobRepository implements the repositories.ScheduledJobRepository interface
type ScheduledJobRepository struct {
	collection *mongo.Collection
}

// NewScheduledJobRepository creates a new ScheduledJobRepository
func NewScheduledJobRepository(db *mongo.Database) repositories.ScheduledJobRepository {
	return &ScheduledJobRepository{
		collection: db.Collection("scheduled_jobs"),
	}
}

// Create persists a new scheduled send
func (r *ScheduledJobRepository) Create(ctx context.Context, job *models.ScheduledJob) error {
	job.State = models.JobStatePending
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, job)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		job.ID = oid
	}
	return nil
}

// ClaimDue atomically claims the earliest due pending job. The
// FindOneAndUpdate guard means a job fires at most once even with several
// workers polling.
func (r *ScheduledJobRepository) ClaimDue(ctx context.Context, now time.Time) (*models.ScheduledJob, error) {
	filter := bson.M{
		"state":   models.JobStatePending,
		"firesAt": bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{"state": models.JobStateRunning, "updatedAt": now}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.M{"firesAt": 1}).
		SetReturnDocument(options.After)

	var job models.ScheduledJob
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkCompleted transitions a running job to completed
func (r *ScheduledJobRepository) MarkCompleted(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"state": models.JobStateCompleted, "updatedAt": time.Now()}},
	)
	return err
}

// MarkFailed transitions a running job to failed with its error message
func (r *ScheduledJobRepository) MarkFailed(ctx context.Context, id primitive.ObjectID, jobErr string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"state": models.JobStateFailed, "error": jobErr, "updatedAt": time.Now()}},
	)
	return err
}

// FindByCampaignID finds all jobs scheduled for a campaign
func (r *ScheduledJobRepository) FindByCampaignID(ctx context.Context, campaignID primitive.ObjectID) ([]*models.ScheduledJob, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"campaignId": campaignID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []*models.ScheduledJob
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []*models.ScheduledJob{}
	}
	return jobs, nil
}
