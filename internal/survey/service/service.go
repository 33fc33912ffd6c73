// Package service orchestrates the survey response lifecycle: CRUD over the
// stores, the validation and submission gates, progress scoring and export.
// Handlers stay thin; domain rules live in validation and progress.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"benesurvey/internal/audit"
	"benesurvey/internal/survey/export"
	"benesurvey/internal/survey/metrics"
	"benesurvey/internal/survey/models"
	"benesurvey/internal/survey/progress"
	"benesurvey/internal/survey/store"
	"benesurvey/internal/survey/validation"
	"benesurvey/pkg/attrs"
	dErrors "benesurvey/pkg/domain-errors"
	"benesurvey/pkg/platform/sentinel"
	"benesurvey/pkg/requestcontext"
)

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service orchestrates survey response operations.
type Service struct {
	responses      store.ResponseStore
	validations    store.ValidationStore
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	cache          ProgressCache
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithProgressCache(cache ProgressCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// New constructs a Service.
func New(responses store.ResponseStore, validations store.ValidationStore, opts ...Option) *Service {
	s := &Service{responses: responses, validations: validations}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create opens a new response for the organization, optionally seeded with
// document data. New responses always start as drafts.
func (s *Service) Create(ctx context.Context, organizationID, userID string, data *models.SurveyData) (*models.SurveyResponse, error) {
	if data == nil {
		data = &models.SurveyData{}
	}
	now := requestcontext.Now(ctx)
	response := &models.SurveyResponse{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		UserID:         userID,
		Status:         models.StatusDraft,
		Progress:       progress.Score(data).Overall,
		Data:           data,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create survey")
	}

	s.logAudit(ctx, audit.EventSurveyCreated, "survey_id", response.ID, "user_id", userID)
	s.metrics.IncrementSurveysCreated()
	return response, nil
}

// Get fetches a single response scoped to the organization.
func (s *Service) Get(ctx context.Context, organizationID, id string) (*models.SurveyResponse, error) {
	response, err := s.responses.FindByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "survey not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load survey")
	}
	return response, nil
}

// List returns the organization's responses, newest first.
func (s *Service) List(ctx context.Context, organizationID string, filter store.ListFilter) ([]*models.SurveyResponse, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown status %q", filter.Status)
	}
	responses, err := s.responses.List(ctx, organizationID, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list surveys")
	}
	return responses, nil
}

// UpdateData replaces the document of an editable response and refreshes the
// progress snapshot. Submitted responses are frozen.
func (s *Service) UpdateData(ctx context.Context, organizationID, id string, req *models.UpdateSurveyRequest) (*models.SurveyResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	response, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if !response.Editable() {
		return nil, dErrors.New(dErrors.CodeConflict, "survey has been submitted and can no longer be edited")
	}

	nextStatus := response.Status
	if req.Status != "" {
		nextStatus = req.Status
	} else if response.Status == models.StatusDraft {
		nextStatus = models.StatusInProgress
	}
	if !response.Status.CanTransitionTo(nextStatus) {
		return nil, dErrors.Newf(dErrors.CodeConflict, "cannot transition from %s to %s", response.Status, nextStatus)
	}

	response.Data = req.Data
	response.Status = nextStatus
	response.Progress = progress.Score(req.Data).Overall
	response.UpdatedAt = requestcontext.Now(ctx)

	if err := s.responses.Update(ctx, response); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "survey not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update survey")
	}
	s.invalidateProgress(ctx, id)

	s.logAudit(ctx, audit.EventSurveyUpdated, "survey_id", id, "progress", response.Progress)
	return response, nil
}

// Validate runs the submission rule set and replaces the stored unresolved
// findings with the error-severity subset of this run. The replace is total:
// a clean run clears the stored set.
func (s *Service) Validate(ctx context.Context, organizationID, id string) (*models.ValidationResult, error) {
	start := time.Now()
	defer s.metrics.ObserveValidate(start)

	response, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	result := validation.Validate(response.Document())
	if err := s.validations.ReplaceUnresolved(ctx, id, result.Errors); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist validation findings")
	}

	s.metrics.RecordValidationRun(len(result.Errors), len(result.Warnings))
	s.logAudit(ctx, audit.EventSurveyValidated,
		"survey_id", id,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings))
	return &result, nil
}

// Submit runs the validation gate and, when it passes, freezes the response.
// On rejection the validation result is returned alongside the error so the
// caller can report the offending fields, and the unresolved findings are
// refreshed so the stored set reflects this attempt.
func (s *Service) Submit(ctx context.Context, organizationID, id string) (*models.SurveyResponse, *models.ValidationResult, error) {
	response, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, nil, err
	}
	if response.Status == models.StatusSubmitted {
		return nil, nil, dErrors.New(dErrors.CodeConflict, "survey has already been submitted")
	}

	result := validation.Validate(response.Document())
	if err := s.validations.ReplaceUnresolved(ctx, id, result.Errors); err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist validation findings")
	}
	if !result.IsValid {
		s.metrics.IncrementSubmissionsBlocked()
		return nil, &result, dErrors.Newf(dErrors.CodeValidation,
			"survey has %d validation errors and cannot be submitted", len(result.Errors))
	}

	now := requestcontext.Now(ctx)
	response.Status = models.StatusSubmitted
	response.SubmittedAt = &now
	response.UpdatedAt = now
	if err := s.responses.Update(ctx, response); err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to submit survey")
	}

	s.logAudit(ctx, audit.EventSurveySubmitted, "survey_id", id)
	s.metrics.IncrementSurveysSubmitted()
	return response, &result, nil
}

// Progress computes completion for the response, reading through the cache
// when one is configured.
func (s *Service) Progress(ctx context.Context, organizationID, id string) (*models.ProgressResult, error) {
	start := time.Now()
	defer s.metrics.ObserveProgress(start)

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, id); ok {
			s.metrics.IncrementProgressCacheHits()
			return cached, nil
		}
	}

	response, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	result := progress.Score(response.Document())
	if s.cache != nil {
		s.cache.Set(ctx, id, result)
	}
	return &result, nil
}

// Overview is the editor screen payload: the response, its stored unresolved
// findings and a fresh progress computation.
type Overview struct {
	Response *models.SurveyResponse `json:"survey"`
	Findings []models.StoredFinding `json:"unresolvedFindings"`
	Progress *models.ProgressResult `json:"progress"`
}

// GetOverview fetches the response, findings and progress concurrently.
func (s *Service) GetOverview(ctx context.Context, organizationID, id string) (*Overview, error) {
	overview := &Overview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		response, err := s.Get(gctx, organizationID, id)
		if err != nil {
			return err
		}
		overview.Response = response
		return nil
	})
	g.Go(func() error {
		findings, err := s.validations.ListUnresolved(gctx, id)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list findings")
		}
		overview.Findings = findings
		return nil
	})
	g.Go(func() error {
		result, err := s.Progress(gctx, organizationID, id)
		if err != nil {
			return err
		}
		overview.Progress = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

// Import validates an external payload structurally and creates a draft
// response from it. Structural findings reject the import wholesale.
func (s *Service) Import(ctx context.Context, organizationID, userID string, payload map[string]any) (*models.SurveyResponse, *models.ValidationResult, error) {
	result := validation.ValidateImport(payload)
	if !result.IsValid {
		s.metrics.IncrementImportsRejected()
		return nil, &result, dErrors.New(dErrors.CodeValidation, "invalid survey data structure")
	}

	data, err := decodeDocument(payload)
	if err != nil {
		return nil, nil, err
	}
	response, err := s.Create(ctx, organizationID, userID, data)
	if err != nil {
		return nil, nil, err
	}

	s.logAudit(ctx, audit.EventSurveyImported, "survey_id", response.ID, "user_id", userID)
	s.metrics.IncrementSurveysImported()
	return response, &result, nil
}

// Export renders the response document in the requested format.
func (s *Service) Export(ctx context.Context, organizationID, id string, format export.Format) ([]byte, string, error) {
	if !format.Valid() {
		return nil, "", dErrors.Newf(dErrors.CodeBadRequest, "unsupported export format %q", format)
	}
	response, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case export.FormatCSV:
		out, err := export.CSV(export.Rows(response.Document()))
		if err != nil {
			return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to render csv export")
		}
		return out, "text/csv", nil
	default:
		out, err := export.JSON(response.Document())
		if err != nil {
			return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to render json export")
		}
		return out, "application/json", nil
	}
}

// Delete removes a response and drops its cached progress.
func (s *Service) Delete(ctx context.Context, organizationID, id string) error {
	if err := s.responses.Delete(ctx, organizationID, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "survey not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete survey")
	}
	s.invalidateProgress(ctx, id)
	s.logAudit(ctx, audit.EventSurveyDeleted, "survey_id", id)
	return nil
}

func (s *Service) invalidateProgress(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}

// decodeDocument converts a structurally validated payload into the typed
// document. Unknown keys are dropped rather than rejected.
func decodeDocument(payload map[string]any) (*models.SurveyData, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "payload is not valid JSON")
	}
	var data models.SurveyData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("payload does not match the survey document shape: %v", err))
	}
	return &data, nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, event, args...)
	}
	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp:      requestcontext.Now(ctx),
		UserID:         attrs.ExtractString(attributes, "user_id"),
		OrganizationID: requestcontext.OrganizationID(ctx),
		SurveyID:       attrs.ExtractString(attributes, "survey_id"),
		Action:         event,
		RequestID:      requestcontext.RequestID(ctx),
	})
}
