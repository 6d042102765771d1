package mongodb

import (
	"context"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DataSourceRepository implements the repositories.DataSourceRepository interface
type DataSourceRepository struct {
	collection *mongo.Collection
}

// NewDataSourceRepository creates a new DataSourceRepository
func NewDataSourceRepository(db *mongo.Database) repositories.DataSourceRepository {
	return &DataSourceRepository{
		collection: db.Collection("data_sources"),
	}
}

// FindAll finds all registered data sources
func (r *DataSourceRepository) FindAll(ctx context.Context) ([]*models.DataSource, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sources []*models.DataSource
	if err := cursor.All(ctx, &sources); err != nil {
		return nil, err
	}
	if sources == nil {
		sources = []*models.DataSource{}
	}
	return sources, nil
}

// Create registers a new data source
func (r *DataSourceRepository) Create(ctx context.Context, source *models.DataSource) error {
	_, err := r.collection.InsertOne(ctx, source)
	return err
}
