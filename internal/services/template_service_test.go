package services

import (
	"errors"
	"testing"

	"github.com/Mr-K2901/TnP-Portal/internal/models"
)

func TestListEmailSeedsPrebuiltOnce(t *testing.T) {
	db := openTestDB(t)
	svc := NewTemplateService(db)

	first, err := svc.ListEmail()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != len(prebuiltEmailTemplates) {
		t.Fatalf("templates = %d, want %d seeded", len(first), len(prebuiltEmailTemplates))
	}

	// A second list must not duplicate the seed set.
	second, err := svc.ListEmail()
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(second) != len(first) {
		t.Errorf("templates after second list = %d, want %d", len(second), len(first))
	}
}

func TestPrebuiltTemplatesImmutable(t *testing.T) {
	db := openTestDB(t)
	svc := NewTemplateService(db)
	templates, _ := svc.ListEmail()

	var prebuilt *models.EmailTemplate
	for i := range templates {
		if templates[i].IsPrebuilt {
			prebuilt = &templates[i]
			break
		}
	}
	if prebuilt == nil {
		t.Fatal("no prebuilt template seeded")
	}

	if _, err := svc.UpdateEmail(prebuilt.ID, "x", "x", "x", ""); !errors.Is(err, ErrTemplatePrebuilt) {
		t.Errorf("update error = %v, want ErrTemplatePrebuilt", err)
	}
	if err := svc.DeleteEmail(prebuilt.ID); !errors.Is(err, ErrTemplatePrebuilt) {
		t.Errorf("delete error = %v, want ErrTemplatePrebuilt", err)
	}
}

func TestCustomTemplateLifecycle(t *testing.T) {
	db := openTestDB(t)
	svc := NewTemplateService(db)

	tpl, err := svc.CreateEmail("Hackathon Invite", "Join us", "Dear {{student_name}}", "student_name")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tpl.IsPrebuilt {
		t.Error("custom template must not be prebuilt")
	}

	updated, err := svc.UpdateEmail(tpl.ID, "Hackathon Invite v2", "Join us", "Dear {{student_name}}", "student_name")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Hackathon Invite v2" {
		t.Errorf("name = %s, want updated", updated.Name)
	}

	if err := svc.DeleteEmail(tpl.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetEmail(tpl.ID); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("get after delete error = %v, want ErrTemplateNotFound", err)
	}
}
