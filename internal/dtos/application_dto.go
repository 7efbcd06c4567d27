package dtos

// ApplicationCreateRequest is a student applying to a job.
type ApplicationCreateRequest struct {
	JobID string `json:"job_id" binding:"required,uuid"`
}

// OfferReleaseRequest configures the response window for an offer.
// nil falls back to the configured default; an explicit 0 means the
// deadline is the release instant itself.
type OfferReleaseRequest struct {
	DeadlineDays *int `json:"deadline_days" binding:"omitempty,gte=0"`
}
