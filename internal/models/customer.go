package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer represents an ingested CRM customer record. Customers form the
// send audience for campaigns.
type Customer struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	GoogleID   string                 `bson:"googleId,omitempty" json:"googleId,omitempty"`
	Email      string                 `bson:"email" json:"email"`
	Name       string                 `bson:"name" json:"name"`
	Avatar     string                 `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Attributes map[string]interface{} `bson:"attributes,omitempty" json:"attributes,omitempty"`
	Segments   []string               `bson:"segments,omitempty" json:"segments,omitempty"`
	CreatedAt  time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time              `bson:"updatedAt" json:"updatedAt"`
}
