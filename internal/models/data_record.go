package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DataRecord is a raw ingested record awaiting segmentation
type DataRecord struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	Email      string                 `bson:"email" json:"email"`
	Name       string                 `bson:"name" json:"name"`
	Phone      string                 `bson:"phone,omitempty" json:"phone,omitempty"`
	Attributes map[string]interface{} `bson:"attributes,omitempty" json:"attributes,omitempty"`
	Segments   []string               `bson:"segments,omitempty" json:"segments,omitempty"`
	CreatedAt  time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// DataSource describes a registered ingestion source
type DataSource struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string                 `bson:"name" json:"name"`
	Type        string                 `bson:"type" json:"type"`
	Status      string                 `bson:"status" json:"status"`
	RecordCount int                    `bson:"recordCount" json:"recordCount"`
	LastSync    time.Time              `bson:"lastSync,omitempty" json:"lastSync,omitempty"`
	Config      map[string]interface{} `bson:"config,omitempty" json:"config,omitempty"`
}
