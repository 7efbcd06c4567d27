package services

import "testing"

func TestRenderTemplate(t *testing.T) {
	vars := map[string]string{
		"student_name": "Asha",
		"company_name": "Initech",
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"plain substitution", "Hello {{student_name}}", "Hello Asha"},
		{"multiple tokens", "{{student_name}} at {{company_name}}", "Asha at Initech"},
		{"whitespace inside braces", "Hello {{ student_name }}", "Hello Asha"},
		{"unknown token kept verbatim", "CTC: {{ctc}}", "CTC: {{ctc}}"},
		{"repeated token", "{{student_name}} {{student_name}}", "Asha Asha"},
		{"no tokens", "plain text", "plain text"},
		{"single braces untouched", "{student_name}", "{student_name}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderTemplate(tt.template, vars); got != tt.want {
				t.Errorf("RenderTemplate(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestRenderTemplateEmptyValue(t *testing.T) {
	got := RenderTemplate("CGPA: {{cgpa}}", map[string]string{"cgpa": ""})
	if got != "CGPA: " {
		t.Errorf("empty value should substitute, got %q", got)
	}
}
