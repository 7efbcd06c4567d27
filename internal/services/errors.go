package services

import "errors"

// Sentinel errors. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrJobNotFound         = errors.New("job not found")
	ErrJobInactive         = errors.New("cannot apply to inactive job")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrNotOwner            = errors.New("application belongs to another student")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrOfferDeadlinePassed = errors.New("offer deadline has passed")

	ErrProfileNotFound = errors.New("student profile not found")
	ErrAlreadyPlaced   = errors.New("student is already marked as placed")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrCampaignRunning       = errors.New("campaign is already running")
	ErrCampaignCompleted     = errors.New("cannot delete a completed campaign")
	ErrProviderNotConfigured = errors.New("notification provider is not configured")

	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplatePrebuilt = errors.New("pre-built templates cannot be modified")
)
