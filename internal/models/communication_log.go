package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Communication log statuses
const (
	LogStatusSent   = "SENT"
	LogStatusFailed = "FAILED"
)

// Log channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelPush  = "push"
)

// CommunicationLog records the outcome of sending a campaign to one customer.
// Exactly one row is written per (campaign, customer) per send invocation.
// OpenedAt is only ever set on SENT rows, and ClickedAt only when OpenedAt
// is already set.
type CommunicationLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	Channel    string             `bson:"channel" json:"channel"` // email, sms, push
	Status     string             `bson:"status" json:"status"`   // SENT, FAILED
	Message    string             `bson:"message" json:"message"`
	ReceiptID  string             `bson:"receiptId,omitempty" json:"receiptId,omitempty"`
	SentAt     time.Time          `bson:"sentAt" json:"sentAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
	OpenedAt   *time.Time         `bson:"openedAt,omitempty" json:"openedAt,omitempty"`
	ClickedAt  *time.Time         `bson:"clickedAt,omitempty" json:"clickedAt,omitempty"`
}
