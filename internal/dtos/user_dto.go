package dtos

// ProfileUpdateRequest is a partial update of the student's own profile.
// is_placed is deliberately absent: only admins control placement.
type ProfileUpdateRequest struct {
	FullName   *string  `json:"full_name"`
	CGPA       *float64 `json:"cgpa" binding:"omitempty,gte=0,lte=10"`
	Branch     *string  `json:"branch"`
	Department *string  `json:"department"`
	Phone      *string  `json:"phone"`
	ResumeURL  *string  `json:"resume_url"`
}

func (r *ProfileUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.FullName != nil {
		updates["full_name"] = *r.FullName
	}
	if r.CGPA != nil {
		updates["cgpa"] = *r.CGPA
	}
	if r.Branch != nil {
		updates["branch"] = *r.Branch
	}
	if r.Department != nil {
		updates["department"] = *r.Department
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	if r.ResumeURL != nil {
		updates["resume_url"] = *r.ResumeURL
	}
	return updates
}
