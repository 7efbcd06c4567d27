package dtos

// VoiceCampaignRequest creates or updates a call campaign. One PENDING
// call log is created per student id.
type VoiceCampaignRequest struct {
	Title          string   `json:"title" binding:"required"`
	ScriptTemplate string   `json:"script_template" binding:"required"`
	StudentIDs     []string `json:"student_ids" binding:"required,min=1"`
}

type EmailCampaignRequest struct {
	Title      string   `json:"title" binding:"required"`
	TemplateID *string  `json:"template_id"`
	Subject    string   `json:"subject" binding:"required"`
	BodyHTML   string   `json:"body_html" binding:"required"`
	StudentIDs []string `json:"student_ids" binding:"required,min=1"`
}

type WhatsAppCampaignRequest struct {
	Title      string   `json:"title" binding:"required"`
	TemplateID *string  `json:"template_id"`
	BodyText   string   `json:"body_text" binding:"required"`
	StudentIDs []string `json:"student_ids" binding:"required,min=1"`
}

type EmailTemplateRequest struct {
	Name      string `json:"name" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	BodyHTML  string `json:"body_html" binding:"required"`
	Variables string `json:"variables"`
}

type WhatsAppTemplateRequest struct {
	Name      string `json:"name" binding:"required"`
	BodyText  string `json:"body_text" binding:"required"`
	Variables string `json:"variables"`
}
