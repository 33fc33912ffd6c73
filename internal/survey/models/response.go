package models

import "time"

// Status is the survey response lifecycle state.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusSubmitted  Status = "submitted"
)

// Valid reports whether s is a recognized lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusCompleted, StatusSubmitted:
		return true
	}
	return false
}

// CanTransitionTo enforces the forward-only lifecycle. Submitted is terminal;
// completed responses may move back to in_progress when edited.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusDraft:
		return next == StatusInProgress || next == StatusCompleted || next == StatusSubmitted
	case StatusInProgress:
		return next == StatusCompleted || next == StatusSubmitted
	case StatusCompleted:
		return next == StatusInProgress || next == StatusSubmitted
	case StatusSubmitted:
		return false
	}
	return false
}

// SurveyResponse is one organization's questionnaire response and its
// lifecycle metadata. Data holds the nested document.
type SurveyResponse struct {
	ID             string      `json:"id"`
	OrganizationID string      `json:"organizationId"`
	UserID         string      `json:"userId"`
	Status         Status      `json:"status"`
	Progress       int         `json:"progress"`
	Data           *SurveyData `json:"data"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	SubmittedAt    *time.Time  `json:"submittedAt,omitempty"`
}

// Document returns the response data, never nil.
func (r *SurveyResponse) Document() *SurveyData {
	if r.Data == nil {
		return &SurveyData{}
	}
	return r.Data
}

// Editable reports whether the response data may still change.
func (r *SurveyResponse) Editable() bool {
	return r.Status != StatusSubmitted
}
