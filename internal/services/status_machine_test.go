package services

import (
	"testing"

	"github.com/Mr-K2901/TnP-Portal/internal/models"
)

func TestCanAdminTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		want    bool
	}{
		{"applied to selected", models.AppStatusApplied, models.AppStatusSelected, true},
		{"selected to in process", models.AppStatusSelected, models.AppStatusInProcess, true},
		{"in process to interview", models.AppStatusInProcess, models.AppStatusInterviewScheduled, true},
		{"interview to shortlisted", models.AppStatusInterviewScheduled, models.AppStatusShortlisted, true},
		{"shortlisted to offer", models.AppStatusShortlisted, models.AppStatusOfferReleased, true},
		{"no skipping stages", models.AppStatusApplied, models.AppStatusShortlisted, false},
		{"no going backward", models.AppStatusShortlisted, models.AppStatusSelected, false},
		{"admin cannot place", models.AppStatusOfferReleased, models.AppStatusPlaced, false},
		{"admin cannot withdraw", models.AppStatusApplied, models.AppStatusWithdrawn, false},
		{"terminal is frozen", models.AppStatusPlaced, models.AppStatusRejected, false},
		{"withdrawn is frozen", models.AppStatusWithdrawn, models.AppStatusSelected, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAdminTransition(tt.current, tt.next); got != tt.want {
				t.Errorf("CanAdminTransition(%s, %s) = %v, want %v", tt.current, tt.next, got, tt.want)
			}
		})
	}
}

func TestCanStudentTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		want    bool
	}{
		{"withdraw while applied", models.AppStatusApplied, models.AppStatusWithdrawn, true},
		{"accept released offer", models.AppStatusOfferReleased, models.AppStatusPlaced, true},
		{"decline released offer", models.AppStatusOfferReleased, models.AppStatusOfferDeclined, true},
		{"no withdraw after selection", models.AppStatusSelected, models.AppStatusWithdrawn, false},
		{"no withdraw mid pipeline", models.AppStatusInterviewScheduled, models.AppStatusWithdrawn, false},
		{"student cannot advance", models.AppStatusApplied, models.AppStatusSelected, false},
		{"no accepting twice", models.AppStatusPlaced, models.AppStatusPlaced, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanStudentTransition(tt.current, tt.next); got != tt.want {
				t.Errorf("CanStudentTransition(%s, %s) = %v, want %v", tt.current, tt.next, got, tt.want)
			}
		})
	}
}

func TestCanReject(t *testing.T) {
	for _, status := range []string{
		models.AppStatusApplied,
		models.AppStatusSelected,
		models.AppStatusInProcess,
		models.AppStatusInterviewScheduled,
		models.AppStatusShortlisted,
		models.AppStatusOfferReleased,
	} {
		if !CanReject(status) {
			t.Errorf("CanReject(%s) = false, want true", status)
		}
	}
	for _, status := range []string{
		models.AppStatusPlaced,
		models.AppStatusOfferDeclined,
		models.AppStatusWithdrawn,
		models.AppStatusRejected,
	} {
		if CanReject(status) {
			t.Errorf("CanReject(%s) = true, want false", status)
		}
	}
}

func TestStatusFlowCoversAllStatuses(t *testing.T) {
	flow := StatusFlow()
	statuses, ok := flow["statuses"].([]string)
	if !ok {
		t.Fatal("statuses missing from flow")
	}
	if len(statuses) != len(StatusLabels) {
		t.Errorf("flow has %d statuses, labels have %d", len(statuses), len(StatusLabels))
	}
}
