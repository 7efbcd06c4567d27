package services

import "github.com/Mr-K2901/TnP-Portal/internal/models"

// prebuiltEmailTemplates are seeded on first template listing. They cover
// the standard placement-office mailings and are immutable once seeded.
var prebuiltEmailTemplates = []models.EmailTemplate{
	{
		Name:    "Job Opportunity Alert",
		Subject: "New Opportunity: {{role}} at {{company_name}}",
		BodyHTML: `Dear {{student_name}},

We are pleased to inform you about a new job opportunity that aligns with your profile.

Company: {{company_name}}
Position: {{role}}
Package: {{ctc}}

Please log in to the TnP Portal at your earliest convenience to review the complete job description and submit your application before the deadline.

Should you have any questions, feel free to reach out to the Placement Cell.

Best regards,
Training & Placement Cell`,
		Variables:  "student_name,company_name,role,ctc",
		IsPrebuilt: true,
	},
	{
		Name:    "Interview Scheduled",
		Subject: "Interview Confirmation: {{company_name}} - {{role}}",
		BodyHTML: `Dear {{student_name}},

Your interview has been confirmed. Please find the details below:

Company: {{company_name}}
Position: {{role}}
Date: {{date}}
Time: {{time}}
Venue: {{venue}}

Kindly ensure you arrive 15 minutes prior to your scheduled time. Carry the following documents:
- Updated Resume (2 copies)
- College ID Card
- Academic Transcripts

We wish you the very best for your interview.

Warm regards,
Training & Placement Cell`,
		Variables:  "student_name,company_name,role,date,time,venue",
		IsPrebuilt: true,
	},
	{
		Name:    "Placement Congratulations",
		Subject: "Congratulations on Your Placement at {{company_name}}",
		BodyHTML: `Dear {{student_name}},

We are delighted to inform you that you have been successfully placed!

Company: {{company_name}}
Position: {{role}}
Package: {{ctc}}

This achievement reflects your dedication and hard work throughout the placement process. We are proud of your accomplishment and wish you a fulfilling and successful career ahead.

Please visit the Placement Cell at your convenience to complete the necessary formalities.

Congratulations once again!

Warm regards,
Training & Placement Cell`,
		Variables:  "student_name,company_name,role,ctc",
		IsPrebuilt: true,
	},
	{
		Name:    "Document Reminder",
		Subject: "Action Required: Document Submission",
		BodyHTML: `Dear {{student_name}},

This is a gentle reminder regarding the submission of your pending documents.

Documents Required:
{{document_list}}

Please submit the above documents to the Placement Cell office or upload them through the TnP Portal by the specified deadline.

Failure to submit these documents may affect your eligibility for upcoming placement opportunities.

For any clarifications, please contact the Placement Cell.

Regards,
Training & Placement Cell`,
		Variables:  "student_name,document_list",
		IsPrebuilt: true,
	},
	{
		Name:    "General Announcement",
		Subject: "Important Notice from Training & Placement Cell",
		BodyHTML: `Dear {{student_name}},

We would like to bring the following to your attention:

{{message}}

Please take note of this information and act accordingly. For any queries or assistance, the Placement Cell is available during office hours.

Thank you for your attention.

Regards,
Training & Placement Cell`,
		Variables:  "student_name,message",
		IsPrebuilt: true,
	},
}
