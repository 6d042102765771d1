package services

import "errors"

// Sentinel errors surfaced by services. Handlers translate these to
// 404/400; anything else is a 500.
var (
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrLogNotFound       = errors.New("communication log not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrInvalidTransition = errors.New("invalid campaign status transition")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrEmailTaken        = errors.New("account with this email already exists")
	ErrInvalidLogin      = errors.New("invalid email or password")
)
