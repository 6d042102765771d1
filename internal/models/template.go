package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template represents a reusable campaign message template
type Template struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Subject   string             `bson:"subject" json:"subject"`
	Content   string             `bson:"content" json:"content"`
	Type      string             `bson:"type" json:"type"` // email, sms, push
	Variables []string           `bson:"variables,omitempty" json:"variables,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedBy string             `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
