package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Mr-K2901/TnP-Portal/internal/models"
	"github.com/Mr-K2901/TnP-Portal/internal/worker"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ---------------------------------------------------------------------------
// fake providers
// ---------------------------------------------------------------------------

type fakeEmailSender struct {
	mu       sync.Mutex
	sent     []string
	failFor  map[string]bool
	disabled bool
}

func (f *fakeEmailSender) IsConfigured() bool { return !f.disabled }

func (f *fakeEmailSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[to] {
		return errors.New("smtp rejected recipient")
	}
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeEmailSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeWhatsAppSender struct {
	mu            sync.Mutex
	attempts      map[string]int
	rateLimitOnce map[string]bool
	failFor       map[string]bool
	statuses      map[string]*MessageStatus
}

func newFakeWhatsAppSender() *fakeWhatsAppSender {
	return &fakeWhatsAppSender{
		attempts:      map[string]int{},
		rateLimitOnce: map[string]bool{},
		failFor:       map[string]bool{},
		statuses:      map[string]*MessageStatus{},
	}
}

func (f *fakeWhatsAppSender) IsConfigured() bool { return true }

func (f *fakeWhatsAppSender) Send(toNumber, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[toNumber]++
	if f.rateLimitOnce[toNumber] && f.attempts[toNumber] == 1 {
		return "", errors.New("Twilio error 63038: daily message limit reached")
	}
	if f.failFor[toNumber] {
		return "", errors.New("undeliverable number")
	}
	return fmt.Sprintf("SM%s-%d", toNumber, f.attempts[toNumber]), nil
}

func (f *fakeWhatsAppSender) FetchStatus(sid string) (*MessageStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	status, ok := f.statuses[sid]
	if !ok {
		return nil, errors.New("message not found")
	}
	return status, nil
}

func (f *fakeWhatsAppSender) attemptCount(toNumber string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts[toNumber]
}

type fakeVoiceDialer struct {
	mu      sync.Mutex
	dialed  []string
	failFor map[string]bool
}

func (f *fakeVoiceDialer) IsConfigured() bool { return true }

func (f *fakeVoiceDialer) Dial(toNumber, callLogID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[toNumber] {
		return "", errors.New("carrier rejected call")
	}
	f.dialed = append(f.dialed, toNumber)
	return "CA" + toNumber, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func newTestDispatcher(t *testing.T, db *gorm.DB) (*Dispatcher, *fakeVoiceDialer, *fakeEmailSender, *fakeWhatsAppSender) {
	t.Helper()
	voice := &fakeVoiceDialer{failFor: map[string]bool{}}
	email := &fakeEmailSender{failFor: map[string]bool{}}
	whatsapp := newFakeWhatsAppSender()
	pool := worker.NewPool(2)
	t.Cleanup(pool.Stop)
	return NewDispatcher(db, testConfig(), voice, email, whatsapp, pool), voice, email, whatsapp
}

func seedEmailCampaign(t *testing.T, db *gorm.DB, studentIDs ...uuid.UUID) *models.EmailCampaign {
	t.Helper()
	campaign, err := NewCampaignService(db).CreateEmail(
		"Drive Notice", "Hello {{student_name}}", "Dear {{student_name}}, please log in.", nil, studentIDs)
	if err != nil {
		t.Fatalf("create email campaign: %v", err)
	}
	return campaign
}

func emailLogStatuses(t *testing.T, db *gorm.DB, campaignID uuid.UUID) map[string]int {
	t.Helper()
	var logs []models.EmailLog
	if err := db.Where("campaign_id = ?", campaignID).Find(&logs).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	counts := map[string]int{}
	for _, l := range logs {
		counts[l.Status]++
	}
	return counts
}

func campaignStatus(t *testing.T, db *gorm.DB, model interface{}, id uuid.UUID) string {
	t.Helper()
	switch m := model.(type) {
	case *models.EmailCampaign:
		if err := db.First(m, "id = ?", id).Error; err != nil {
			t.Fatalf("load campaign: %v", err)
		}
		return m.Status
	case *models.WhatsAppCampaign:
		if err := db.First(m, "id = ?", id).Error; err != nil {
			t.Fatalf("load campaign: %v", err)
		}
		return m.Status
	case *models.Campaign:
		if err := db.First(m, "id = ?", id).Error; err != nil {
			t.Fatalf("load campaign: %v", err)
		}
		return m.Status
	}
	t.Fatal("unsupported campaign model")
	return ""
}

// ---------------------------------------------------------------------------
// email campaign tests
// ---------------------------------------------------------------------------

func TestEmailCampaignRunToCompletion(t *testing.T) {
	db := openTestDB(t)
	d, _, email, _ := newTestDispatcher(t, db)

	good := createStudent(t, db, "good@college.edu", "Good", "")
	alsoGood := createStudent(t, db, "also@college.edu", "Also", "")
	bad := createStudent(t, db, "bad@college.edu", "Bad", "")
	email.failFor["bad@college.edu"] = true

	campaign := seedEmailCampaign(t, db, good.ID, alsoGood.ID, bad.ID)

	if err := d.StartEmailCampaign(campaign.ID); err != nil {
		t.Fatalf("StartEmailCampaign: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool {
		return campaignStatus(t, db, &models.EmailCampaign{}, campaign.ID) == models.CampaignStatusCompleted
	})

	counts := emailLogStatuses(t, db, campaign.ID)
	if counts[models.LogStatusSent] != 2 || counts[models.LogStatusFailed] != 1 {
		t.Errorf("log statuses = %v, want 2 SENT 1 FAILED", counts)
	}
	if email.sentCount() != 2 {
		t.Errorf("provider sends = %d, want 2", email.sentCount())
	}
}

func TestEmailCampaignDoubleStartRejected(t *testing.T) {
	db := openTestDB(t)
	d, _, _, _ := newTestDispatcher(t, db)
	student := createStudent(t, db, "asha@college.edu", "Asha", "")
	campaign := seedEmailCampaign(t, db, student.ID)

	// Pin the campaign RUNNING so the second start observes the race loser's view.
	db.Model(&models.EmailCampaign{}).Where("id = ?", campaign.ID).
		Update("status", models.CampaignStatusRunning)

	if err := d.StartEmailCampaign(campaign.ID); !errors.Is(err, ErrCampaignRunning) {
		t.Errorf("start of running campaign error = %v, want ErrCampaignRunning", err)
	}
}

func TestEmailCampaignStartUnconfiguredProvider(t *testing.T) {
	db := openTestDB(t)
	d, _, email, _ := newTestDispatcher(t, db)
	email.disabled = true
	student := createStudent(t, db, "asha@college.edu", "Asha", "")
	campaign := seedEmailCampaign(t, db, student.ID)

	if err := d.StartEmailCampaign(campaign.ID); !errors.Is(err, ErrProviderNotConfigured) {
		t.Errorf("error = %v, want ErrProviderNotConfigured", err)
	}
	if got := campaignStatus(t, db, &models.EmailCampaign{}, campaign.ID); got != models.CampaignStatusDraft {
		t.Errorf("campaign status = %s, want DRAFT untouched", got)
	}
}

func TestEmailCampaignRetry(t *testing.T) {
	db := openTestDB(t)
	d, _, email, _ := newTestDispatcher(t, db)

	good := createStudent(t, db, "good@college.edu", "Good", "")
	flaky := createStudent(t, db, "flaky@college.edu", "Flaky", "")
	email.failFor["flaky@college.edu"] = true

	campaign := seedEmailCampaign(t, db, good.ID, flaky.ID)
	if err := d.StartEmailCampaign(campaign.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool {
		return campaignStatus(t, db, &models.EmailCampaign{}, campaign.ID) == models.CampaignStatusCompleted
	})

	// Provider recovers; retry resets only the FAILED log.
	email.mu.Lock()
	email.failFor["flaky@college.edu"] = false
	email.mu.Unlock()

	count, err := d.RetryEmailCampaign(campaign.ID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if count != 1 {
		t.Errorf("retried count = %d, want 1", count)
	}
	waitFor(t, 2*time.Second, func() bool {
		counts := emailLogStatuses(t, db, campaign.ID)
		return counts[models.LogStatusSent] == 2
	})
}

func TestEmailCampaignRetryNothingFailed(t *testing.T) {
	db := openTestDB(t)
	d, _, _, _ := newTestDispatcher(t, db)
	student := createStudent(t, db, "asha@college.edu", "Asha", "")
	campaign := seedEmailCampaign(t, db, student.ID)
	if err := d.StartEmailCampaign(campaign.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool {
		return campaignStatus(t, db, &models.EmailCampaign{}, campaign.ID) == models.CampaignStatusCompleted
	})

	count, err := d.RetryEmailCampaign(campaign.ID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if count != 0 {
		t.Errorf("retried count = %d, want 0", count)
	}
	// A no-op retry leaves the campaign COMPLETED.
	if got := campaignStatus(t, db, &models.EmailCampaign{}, campaign.ID); got != models.CampaignStatusCompleted {
		t.Errorf("campaign status = %s, want COMPLETED", got)
	}
}

func TestEmailCampaignCancel(t *testing.T) {
	db := openTestDB(t)
	d, _, _, _ := newTestDispatcher(t, db)
	student := createStudent(t, db, "asha@college.edu", "Asha", "")
	campaign := seedEmailCampaign(t, db, student.ID)

	if err := d.CancelEmailCampaign(campaign.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := campaignStatus(t, db, &models.EmailCampaign{}, campaign.ID); got != models.CampaignStatusCancelled {
		t.Errorf("campaign status = %s, want CANCELLED", got)
	}
	counts := emailLogStatuses(t, db, campaign.ID)
	if counts[models.LogStatusFailed] != 1 {
		t.Errorf("pending log should be failed on cancel, got %v", counts)
	}
}

// ---------------------------------------------------------------------------
// whatsapp campaign tests
// ---------------------------------------------------------------------------

func TestWhatsAppRateLimitRetriesOnce(t *testing.T) {
	db := openTestDB(t)
	d, _, _, whatsapp := newTestDispatcher(t, db)

	student := createStudent(t, db, "asha@college.edu", "Asha", "+911111111111")
	whatsapp.rateLimitOnce["+911111111111"] = true

	campaign, err := NewCampaignService(db).CreateWhatsApp(
		"Reminder", "Hi {{student_name}}", nil, []uuid.UUID{student.ID})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	if err := d.StartWhatsAppCampaign(campaign.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitFor(t, 5*time.Second, func() bool {
		return campaignStatus(t, db, &models.WhatsAppCampaign{}, campaign.ID) == models.CampaignStatusCompleted
	})

	if got := whatsapp.attemptCount("+911111111111"); got != 2 {
		t.Errorf("attempts = %d, want exactly 2 (one retry)", got)
	}
	var entry models.WhatsAppLog
	db.First(&entry, "campaign_id = ?", campaign.ID)
	if entry.Status != models.LogStatusSent {
		t.Errorf("log status = %s, want SENT after retry", entry.Status)
	}
	if entry.MessageSID == "" {
		t.Error("message sid not recorded")
	}
}

func TestWhatsAppMissingPhoneFailsLog(t *testing.T) {
	db := openTestDB(t)
	d, _, _, _ := newTestDispatcher(t, db)

	student := createStudent(t, db, "asha@college.edu", "Asha", "")
	campaign, _ := NewCampaignService(db).CreateWhatsApp(
		"Reminder", "Hi", nil, []uuid.UUID{student.ID})

	if err := d.StartWhatsAppCampaign(campaign.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool {
		return campaignStatus(t, db, &models.WhatsAppCampaign{}, campaign.ID) == models.CampaignStatusCompleted
	})

	var entry models.WhatsAppLog
	db.First(&entry, "campaign_id = ?", campaign.ID)
	if entry.Status != models.LogStatusFailed {
		t.Errorf("log status = %s, want FAILED", entry.Status)
	}
	if entry.ErrorMessage == "" {
		t.Error("failure reason not recorded")
	}
}

func TestSyncWhatsAppStatus(t *testing.T) {
	db := openTestDB(t)
	d, _, _, whatsapp := newTestDispatcher(t, db)

	student := createStudent(t, db, "asha@college.edu", "Asha", "+911111111111")
	campaign, _ := NewCampaignService(db).CreateWhatsApp(
		"Reminder", "Hi", nil, []uuid.UUID{student.ID})

	db.Model(&models.WhatsAppLog{}).
		Where("campaign_id = ?", campaign.ID).
		Updates(map[string]interface{}{"status": models.LogStatusSent, "message_sid": "SM123"})
	whatsapp.statuses["SM123"] = &MessageStatus{Status: "delivered"}

	updated, failures, err := d.SyncWhatsAppStatus(campaign.ID)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if updated != 1 || failures != 0 {
		t.Errorf("updated=%d failures=%d, want 1/0", updated, failures)
	}
	var entry models.WhatsAppLog
	db.First(&entry, "campaign_id = ?", campaign.ID)
	if entry.Status != "DELIVERED" {
		t.Errorf("log status = %s, want DELIVERED", entry.Status)
	}
}

// ---------------------------------------------------------------------------
// voice campaign tests
// ---------------------------------------------------------------------------

func TestVoiceCampaignDialsAndStaysInProgress(t *testing.T) {
	db := openTestDB(t)
	d, _, _, _ := newTestDispatcher(t, db)

	student := createStudent(t, db, "asha@college.edu", "Asha", "+911111111111")
	campaign, _ := NewCampaignService(db).CreateVoice(
		"Drive Calls", "Hello {{student_name}}", []uuid.UUID{student.ID})

	if err := d.StartVoiceCampaign(campaign.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool {
		return campaignStatus(t, db, &models.Campaign{}, campaign.ID) == models.CampaignStatusCompleted
	})

	// The dial handed off: webhooks resolve the final call state later.
	var entry models.CallLog
	db.First(&entry, "campaign_id = ?", campaign.ID)
	if entry.Status != models.LogStatusInProgress {
		t.Errorf("log status = %s, want IN_PROGRESS", entry.Status)
	}
	if entry.TwilioSID == "" {
		t.Error("call sid not recorded")
	}
}

func TestVoiceRetryClearsPreviousAttempt(t *testing.T) {
	db := openTestDB(t)
	d, _, _, _ := newTestDispatcher(t, db)

	student := createStudent(t, db, "asha@college.edu", "Asha", "+911111111111")
	campaign, _ := NewCampaignService(db).CreateVoice(
		"Drive Calls", "Hello", []uuid.UUID{student.ID})

	db.Model(&models.CallLog{}).
		Where("campaign_id = ?", campaign.ID).
		Updates(map[string]interface{}{
			"status":             models.LogStatusNoAnswer,
			"twilio_sid":         "CAold",
			"recording_url":      "https://old",
			"transcription_text": "old words",
			"error_message":      "no answer",
		})

	count, err := d.RetryVoiceCampaign(campaign.ID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if count != 1 {
		t.Errorf("retried count = %d, want 1", count)
	}
	waitFor(t, 2*time.Second, func() bool {
		var entry models.CallLog
		db.First(&entry, "campaign_id = ?", campaign.ID)
		return entry.Status == models.LogStatusInProgress && entry.TwilioSID != "CAold"
	})
	var entry models.CallLog
	db.First(&entry, "campaign_id = ?", campaign.ID)
	if entry.RecordingURL != "" || entry.TranscriptionText != "" || entry.ErrorMessage != "" {
		t.Error("retry must clear the previous attempt's artifacts")
	}
}

func TestReconcileCallStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		provider string
		want     string
	}{
		{"ringing maps to in progress", models.LogStatusPending, "ringing", models.LogStatusInProgress},
		{"completed maps to completed", models.LogStatusInProgress, "completed", models.LogStatusCompleted},
		{"busy maps to busy", models.LogStatusInProgress, "busy", models.LogStatusBusy},
		{"no-answer maps", models.LogStatusInProgress, "no-answer", models.LogStatusNoAnswer},
		{"canceled maps to failed", models.LogStatusInProgress, "canceled", models.LogStatusFailed},
		{"late ringing never downgrades completed", models.LogStatusCompleted, "ringing", models.LogStatusCompleted},
		{"completed can reaffirm", models.LogStatusCompleted, "completed", models.LogStatusCompleted},
		{"unknown state leaves current", models.LogStatusInProgress, "jitterbug", models.LogStatusInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReconcileCallStatus(tt.current, tt.provider); got != tt.want {
				t.Errorf("ReconcileCallStatus(%s, %s) = %s, want %s", tt.current, tt.provider, got, tt.want)
			}
		})
	}
}
