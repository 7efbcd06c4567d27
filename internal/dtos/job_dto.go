package dtos

import "github.com/Mr-K2901/TnP-Portal/internal/models"

type JobCreationRequest struct {
	CompanyName string  `json:"company_name" binding:"required"`
	Role        string  `json:"role" binding:"required"`
	CTC         string  `json:"ctc"`
	MinCGPA     float64 `json:"min_cgpa" binding:"omitempty,gte=0,lte=10"`
	IsActive    *bool   `json:"is_active"`
	JDLink      string  `json:"jd_link"`
	Description string  `json:"description"`
}

// JobUpdateRequest is a partial update: nil fields are left untouched.
type JobUpdateRequest struct {
	CompanyName *string  `json:"company_name"`
	Role        *string  `json:"role"`
	CTC         *string  `json:"ctc"`
	MinCGPA     *float64 `json:"min_cgpa" binding:"omitempty,gte=0,lte=10"`
	IsActive    *bool    `json:"is_active"`
	JDLink      *string  `json:"jd_link"`
	Description *string  `json:"description"`
}

// Updates flattens the set fields into a column map for a partial update.
func (r *JobUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.CompanyName != nil {
		updates["company_name"] = *r.CompanyName
	}
	if r.Role != nil {
		updates["role"] = *r.Role
	}
	if r.CTC != nil {
		updates["ctc"] = *r.CTC
	}
	if r.MinCGPA != nil {
		updates["min_cgpa"] = *r.MinCGPA
	}
	if r.IsActive != nil {
		updates["is_active"] = *r.IsActive
	}
	if r.JDLink != nil {
		updates["jd_link"] = *r.JDLink
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	return updates
}

type JobListResponse struct {
	Jobs  []models.Job `json:"jobs"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}
