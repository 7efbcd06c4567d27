package models

// Application statuses.
// Forward pipeline: APPLIED → SELECTED → IN_PROCESS → INTERVIEW_SCHEDULED →
// SHORTLISTED → OFFER_RELEASED → PLACED
const (
	AppStatusApplied            = "APPLIED"
	AppStatusSelected           = "SELECTED"
	AppStatusInProcess          = "IN_PROCESS"
	AppStatusInterviewScheduled = "INTERVIEW_SCHEDULED"
	AppStatusShortlisted        = "SHORTLISTED"
	AppStatusOfferReleased      = "OFFER_RELEASED"
	AppStatusPlaced             = "PLACED"
	AppStatusOfferDeclined      = "OFFER_DECLINED"
	AppStatusWithdrawn          = "WITHDRAWN"
	AppStatusRejected           = "REJECTED"
)

// Campaign statuses (shared by voice, email and WhatsApp campaigns).
const (
	CampaignStatusDraft     = "DRAFT"
	CampaignStatusRunning   = "RUNNING"
	CampaignStatusCompleted = "COMPLETED"
	CampaignStatusCancelled = "CANCELLED"
)

// Delivery log statuses.
const (
	LogStatusPending    = "PENDING"
	LogStatusSending    = "SENDING" // email only
	LogStatusSent       = "SENT"
	LogStatusInProgress = "IN_PROGRESS" // voice only
	LogStatusCompleted  = "COMPLETED"   // voice only
	LogStatusFailed     = "FAILED"
	LogStatusNoAnswer   = "NO_ANSWER" // voice only
	LogStatusBusy       = "BUSY"      // voice only
)
