package mongodb

import (
	"context"
	"time"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DataRecordRepository implements the repositories.DataRecordRepository interface
type DataRecordRepository struct {
	collection *mongo.Collection
}

// NewDataRecordRepository creates a new DataRecordRepository
func NewDataRecordRepository(db *mongo.Database) repositories.DataRecordRepository {
	return &DataRecordRepository{
		collection: db.Collection("data_records"),
	}
}

// InsertMany bulk-inserts data records, stamping missing timestamps
func (r *DataRecordRepository) InsertMany(ctx context.Context, records []*models.DataRecord) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		if rec.UpdatedAt.IsZero() {
			rec.UpdatedAt = now
		}
		docs = append(docs, rec)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindAll finds all data records
func (r *DataRecordRepository) FindAll(ctx context.Context) ([]*models.DataRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*models.DataRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.DataRecord{}
	}
	return records, nil
}
