package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benesurvey/internal/audit"
	"benesurvey/internal/survey/export"
	"benesurvey/internal/survey/models"
	"benesurvey/internal/survey/store"
	dErrors "benesurvey/pkg/domain-errors"
	"benesurvey/pkg/requestcontext"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

type fixture struct {
	svc         *Service
	responses   *store.MemoryResponseStore
	validations *store.MemoryValidationStore
	auditStore  *audit.InMemoryStore
	cache       *fakeCache
	ctx         context.Context
	now         time.Time
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		responses:   store.NewMemoryResponseStore(),
		validations: store.NewMemoryValidationStore(),
		auditStore:  audit.NewInMemoryStore(),
		cache:       newFakeCache(),
		now:         time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
	}
	opts = append([]Option{
		WithAuditPublisher(audit.NewPublisher(f.auditStore)),
		WithProgressCache(f.cache),
	}, opts...)
	f.svc = New(f.responses, f.validations, opts...)

	ctx := requestcontext.WithTime(context.Background(), f.now)
	ctx = requestcontext.WithOrganizationID(ctx, "org-1")
	f.ctx = ctx
	return f
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]models.ProgressResult
	hits    int
	sets    int
	drops   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]models.ProgressResult)}
}

func (c *fakeCache) Get(_ context.Context, surveyID string) (*models.ProgressResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.entries[surveyID]
	if !ok {
		return nil, false
	}
	c.hits++
	return &result, true
}

func (c *fakeCache) Set(_ context.Context, surveyID string, result models.ProgressResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[surveyID] = result
}

func (c *fakeCache) Invalidate(_ context.Context, surveyID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drops++
	delete(c.entries, surveyID)
}

func validDoc() *models.SurveyData {
	return &models.SurveyData{
		GeneralInformation: &models.GeneralInformation{
			OrganizationName:  strPtr("Acme"),
			Email:             strPtr("hr@acme.com"),
			ContactPerson:     strPtr("Jane Doe"),
			EmployeeCount:     intPtr(50),
			EligibleEmployees: intPtr(40),
		},
	}
}

func invalidDoc() *models.SurveyData {
	doc := validDoc()
	doc.GeneralInformation.Email = strPtr("not-an-email")
	doc.GeneralInformation.ContactPerson = nil
	return doc
}

func TestCreateStartsAsDraft(t *testing.T) {
	f := newFixture(t)

	response, err := f.svc.Create(f.ctx, "org-1", "user-1", validDoc())
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, response.Status)
	assert.Equal(t, "org-1", response.OrganizationID)
	assert.Equal(t, f.now, response.CreatedAt)
	assert.Greater(t, response.Progress, 0)

	events, err := f.auditStore.ListByOrganization(f.ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.EventSurveyCreated, events[0].Action)
	assert.Equal(t, response.ID, events[0].SurveyID)
}

func TestGetUnknownSurvey(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Get(f.ctx, "org-1", "missing")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestUpdateDataRefreshesProgressAndInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	response, err := f.svc.Create(f.ctx, "org-1", "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, response.Progress)

	updated, err := f.svc.UpdateData(f.ctx, "org-1", response.ID, &models.UpdateSurveyRequest{Data: validDoc()})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Greater(t, updated.Progress, 0)
	assert.Equal(t, 1, f.cache.drops)
}

func TestUpdateDataRejectedAfterSubmission(t *testing.T) {
	f := newFixture(t)
	response, err := f.svc.Create(f.ctx, "org-1", "user-1", validDoc())
	require.NoError(t, err)
	_, _, err = f.svc.Submit(f.ctx, "org-1", response.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateData(f.ctx, "org-1", response.ID, &models.UpdateSurveyRequest{Data: validDoc()})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestValidatePersistsErrorFindingsOnly(t *testing.T) {
	f := newFixture(t)
	doc := invalidDoc()
	doc.GeneralInformation.Phone = strPtr("call me")
	response, err := f.svc.Create(f.ctx, "org-1", "user-1", doc)
	require.NoError(t, err)

	result, err := f.svc.Validate(f.ctx, "org-1", response.ID)
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 2)
	require.Len(t, result.Warnings, 1)

	stored, err := f.validations.ListUnresolved(f.ctx, response.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	for _, finding := range stored {
		assert.Equal(t, models.SeverityError, finding.Severity)
	}
}

func TestValidateClearsFindingsOnceFixed(t *testing.T) {
	f := newFixture(t)
	response, err := f.svc.Create(f.ctx, "org-1", "user-1", invalidDoc())
	require.NoError(t, err)

	_, err = f.svc.Validate(f.ctx, "org-1", response.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateData(f.ctx, "org-1", response.ID, &models.UpdateSurveyRequest{Data: validDoc()})
	require.NoError(t, err)

	result, err := f.svc.Validate(f.ctx, "org-1", response.ID)
	require.NoError(t, err)
	assert.True(t, result.IsValid)

	stored, err := f.validations.ListUnresolved(f.ctx, response.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSubmitBlockedByErrorFindings(t *testing.T) {
	f := newFixture(t)
	response, err := f.svc.Create(f.ctx, "org-1", "user-1", invalidDoc())
	require.NoError(t, err)

	_, result, err := f.svc.Submit(f.ctx, "org-1", response.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	require.NotNil(t, result)
	assert.Equal(t, []string{"generalInformation.email", "generalInformation.contactPerson"}, result.ErrorFields())

	// The attempt must not have changed state.
	unchanged, err := f.svc.Get(f.ctx, "org-1", response.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, unchanged.Status)
	assert.Nil(t, unchanged.SubmittedAt)
}

func TestSubmitStampsSubmittedAt(t *testing.T) {
	f := newFixture(t)
	response, err := f.svc.Create(f.ctx, "org-1", "user-1", validDoc())
	require.NoError(t, err)

	submitted, result, err := f.svc.Submit(f.ctx, "org-1", response.ID)
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, models.StatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)
	assert.Equal(t, f.now, *submitted.SubmittedAt)

	_, _, err = f.svc.Submit(f.ctx, "org-1", response.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestSubmitWarningsDoNotBlock(t *testing.T) {
	f := newFixture(t)
	doc := validDoc()
	doc.GeneralInformation.Phone = strPtr("call me")
	response, err := f.svc.Create(f.ctx, "org-1", "user-1", doc)
	require.NoError(t, err)

	submitted, result, err := f.svc.Submit(f.ctx, "org-1", response.ID)
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
	assert.Equal(t, models.StatusSubmitted, submitted.Status)
}

func TestProgressReadsThroughCache(t *testing.T) {
	f := newFixture(t)
	response, err := f.svc.Create(f.ctx, "org-1", "user-1", validDoc())
	require.NoError(t, err)

	first, err := f.svc.Progress(f.ctx, "org-1", response.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.sets)

	second, err := f.svc.Progress(f.ctx, "org-1", response.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.hits)
	assert.Equal(t, first.Overall, second.Overall)
}

func TestGetOverview(t *testing.T) {
	f := newFixture(t)
	response, err := f.svc.Create(f.ctx, "org-1", "user-1", invalidDoc())
	require.NoError(t, err)
	_, err = f.svc.Validate(f.ctx, "org-1", response.ID)
	require.NoError(t, err)

	overview, err := f.svc.GetOverview(f.ctx, "org-1", response.ID)
	require.NoError(t, err)
	assert.Equal(t, response.ID, overview.Response.ID)
	assert.Len(t, overview.Findings, 2)
	require.NotNil(t, overview.Progress)
	assert.GreaterOrEqual(t, overview.Progress.Overall, 0)
}

func TestImportRejectsBadStructure(t *testing.T) {
	f := newFixture(t)

	_, result, err := f.svc.Import(f.ctx, "org-1", "user-1", map[string]any{
		"medicalPlans": "not an array",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	require.NotNil(t, result)
	assert.False(t, result.IsValid)

	responses, err := f.svc.List(f.ctx, "org-1", store.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestImportCreatesDraft(t *testing.T) {
	f := newFixture(t)

	response, result, err := f.svc.Import(f.ctx, "org-1", "user-1", map[string]any{
		"generalInformation": map[string]any{
			"organizationName": "Acme",
			"email":            "hr@acme.com",
		},
	})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, models.StatusDraft, response.Status)
	require.NotNil(t, response.Data.GeneralInformation)
	assert.Equal(t, "Acme", *response.Data.GeneralInformation.OrganizationName)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	response, err := f.svc.Create(f.ctx, "org-1", "user-1", validDoc())
	require.NoError(t, err)

	out, contentType, err := f.svc.Export(f.ctx, "org-1", response.ID, export.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Contains(t, string(out), "hr@acme.com")

	out, contentType, err = f.svc.Export(f.ctx, "org-1", response.ID, export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(out), "Section,Field,Value")

	_, _, err = f.svc.Export(f.ctx, "org-1", response.ID, export.Format("excel"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	response, err := f.svc.Create(f.ctx, "org-1", "user-1", validDoc())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(f.ctx, "org-1", response.ID))
	_, err = f.svc.Get(f.ctx, "org-1", response.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	err = f.svc.Delete(f.ctx, "org-1", response.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
