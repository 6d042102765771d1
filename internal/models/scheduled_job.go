package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scheduled job states
const (
	JobStatePending   = "pending"
	JobStateRunning   = "running"
	JobStateCompleted = "completed"
	JobStateFailed    = "failed"
)

// ScheduledJob is a durable one-shot campaign send, persisted so that a
// restart does not drop pending schedules. Jobs are claimed by the schedule
// worker with an atomic pending -> running update.
type ScheduledJob struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	FiresAt    time.Time          `bson:"firesAt" json:"firesAt"`
	State      string             `bson:"state" json:"state"` // pending, running, completed, failed
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
