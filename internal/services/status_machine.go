package services

import "github.com/Mr-K2901/TnP-Portal/internal/models"

// Transition tables for the hiring pipeline, keyed by the acting role.
// Rejection is not part of the forward pipeline: admins can reject from
// any non-terminal state (see CanReject).

var adminTransitions = map[string][]string{
	models.AppStatusApplied:            {models.AppStatusSelected, models.AppStatusRejected},
	models.AppStatusSelected:           {models.AppStatusInProcess, models.AppStatusRejected},
	models.AppStatusInProcess:          {models.AppStatusInterviewScheduled, models.AppStatusRejected},
	models.AppStatusInterviewScheduled: {models.AppStatusShortlisted, models.AppStatusRejected},
	models.AppStatusShortlisted:        {models.AppStatusOfferReleased, models.AppStatusRejected},
	models.AppStatusOfferReleased:      {models.AppStatusRejected}, // student handles accept/decline
}

var studentTransitions = map[string][]string{
	models.AppStatusApplied:       {models.AppStatusWithdrawn},
	models.AppStatusOfferReleased: {models.AppStatusPlaced, models.AppStatusOfferDeclined},
}

var terminalStates = map[string]bool{
	models.AppStatusPlaced:        true,
	models.AppStatusOfferDeclined: true,
	models.AppStatusWithdrawn:     true,
	models.AppStatusRejected:      true,
}

// StatusLabels maps statuses to display names for the frontend.
var StatusLabels = map[string]string{
	models.AppStatusApplied:            "Applied",
	models.AppStatusSelected:           "Selected",
	models.AppStatusInProcess:          "In Process",
	models.AppStatusInterviewScheduled: "Interview Scheduled",
	models.AppStatusShortlisted:        "Shortlisted",
	models.AppStatusOfferReleased:      "Offer Released",
	models.AppStatusPlaced:             "Placed",
	models.AppStatusOfferDeclined:      "Offer Declined",
	models.AppStatusWithdrawn:          "Withdrawn",
	models.AppStatusRejected:           "Rejected",
}

func IsTerminal(status string) bool {
	return terminalStates[status]
}

// CanAdminTransition reports whether an admin may move an application
// from current to next along the pipeline.
func CanAdminTransition(current, next string) bool {
	return canTransition(current, next, adminTransitions)
}

// CanStudentTransition reports whether the owning student may move an
// application from current to next.
func CanStudentTransition(current, next string) bool {
	return canTransition(current, next, studentTransitions)
}

// CanReject bypasses the tables: any non-terminal application may be
// rejected by an admin.
func CanReject(current string) bool {
	return !IsTerminal(current)
}

func canTransition(current, next string, table map[string][]string) bool {
	if IsTerminal(current) {
		return false
	}
	for _, allowed := range table[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StatusFlow is the full state machine configuration, exposed so the
// frontend can show available actions per status.
func StatusFlow() map[string]interface{} {
	statuses := make([]string, 0, len(StatusLabels))
	for s := range StatusLabels {
		statuses = append(statuses, s)
	}
	terminal := make([]string, 0, len(terminalStates))
	for s := range terminalStates {
		terminal = append(terminal, s)
	}
	return map[string]interface{}{
		"statuses":            statuses,
		"labels":              StatusLabels,
		"admin_transitions":   adminTransitions,
		"student_transitions": studentTransitions,
		"terminal_states":     terminal,
	}
}
