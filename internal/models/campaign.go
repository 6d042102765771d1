package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign statuses
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

// Campaign channel types
const (
	CampaignTypeEmail = "email"
	CampaignTypeSMS   = "sms"
	CampaignTypePush  = "push"
	CampaignTypeMulti = "multi-channel"
)

// Campaign represents an outbound marketing campaign owned by a user
type Campaign struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Name         string             `bson:"name" json:"name"`
	Status       string             `bson:"status" json:"status"` // draft, active, paused, completed
	Type         string             `bson:"type" json:"type"`     // email, sms, push, multi-channel
	AudienceSize int                `bson:"audienceSize" json:"audienceSize"`
	DeliveryRate float64            `bson:"deliveryRate" json:"deliveryRate"`
	OpenRate     float64            `bson:"openRate" json:"openRate"`
	ClickRate    float64            `bson:"clickRate" json:"clickRate"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
	ScheduledAt  *time.Time         `bson:"scheduledAt,omitempty" json:"scheduledAt,omitempty"`
	Content      CampaignContent    `bson:"content" json:"content"`
	Targeting    CampaignTargeting  `bson:"targeting" json:"targeting"`
}

// CampaignContent holds the message block of a campaign
type CampaignContent struct {
	Subject  string `bson:"subject" json:"subject"`
	Message  string `bson:"message" json:"message"`
	Template string `bson:"template" json:"template"`
}

// CampaignTargeting holds the audience targeting block of a campaign
type CampaignTargeting struct {
	Segments []string               `bson:"segments,omitempty" json:"segments,omitempty"`
	Filters  map[string]interface{} `bson:"filters,omitempty" json:"filters,omitempty"`
}
