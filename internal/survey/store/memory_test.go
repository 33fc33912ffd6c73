package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"benesurvey/internal/survey/models"
	"benesurvey/pkg/platform/sentinel"
)

type MemoryResponseStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *MemoryResponseStore
}

func TestMemoryResponseStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryResponseStoreSuite))
}

func (s *MemoryResponseStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemoryResponseStore()
}

func (s *MemoryResponseStoreSuite) newResponse(org string, createdAt time.Time) *models.SurveyResponse {
	return &models.SurveyResponse{
		ID:             uuid.NewString(),
		OrganizationID: org,
		UserID:         uuid.NewString(),
		Status:         models.StatusDraft,
		Data:           &models.SurveyData{},
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

func (s *MemoryResponseStoreSuite) TestCreateAndFind() {
	response := s.newResponse("org-1", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, response))

	found, err := s.store.FindByID(s.ctx, "org-1", response.ID)
	s.Require().NoError(err)
	s.Equal(response.ID, found.ID)
	s.Equal(models.StatusDraft, found.Status)
}

func (s *MemoryResponseStoreSuite) TestCreateDuplicateConflicts() {
	response := s.newResponse("org-1", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, response))
	s.ErrorIs(s.store.Create(s.ctx, response), sentinel.ErrConflict)
}

func (s *MemoryResponseStoreSuite) TestFindScopedToOrganization() {
	response := s.newResponse("org-1", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, response))

	_, err := s.store.FindByID(s.ctx, "org-2", response.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryResponseStoreSuite) TestFindReturnsSnapshot() {
	name := "Acme"
	response := s.newResponse("org-1", time.Now())
	response.Data = &models.SurveyData{
		GeneralInformation: &models.GeneralInformation{OrganizationName: &name},
	}
	s.Require().NoError(s.store.Create(s.ctx, response))

	found, err := s.store.FindByID(s.ctx, "org-1", response.ID)
	s.Require().NoError(err)
	*found.Data.GeneralInformation.OrganizationName = "mutated"

	again, err := s.store.FindByID(s.ctx, "org-1", response.ID)
	s.Require().NoError(err)
	s.Equal("Acme", *again.Data.GeneralInformation.OrganizationName)
}

func (s *MemoryResponseStoreSuite) TestListOrderingAndPaging() {
	base := time.Now()
	first := s.newResponse("org-1", base.Add(-2*time.Hour))
	second := s.newResponse("org-1", base.Add(-time.Hour))
	third := s.newResponse("org-1", base)
	other := s.newResponse("org-2", base)
	for _, r := range []*models.SurveyResponse{first, second, third, other} {
		s.Require().NoError(s.store.Create(s.ctx, r))
	}

	all, err := s.store.List(s.ctx, "org-1", ListFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(third.ID, all[0].ID)
	s.Equal(first.ID, all[2].ID)

	page, err := s.store.List(s.ctx, "org-1", ListFilter{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(second.ID, page[0].ID)

	empty, err := s.store.List(s.ctx, "org-1", ListFilter{Offset: 10})
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *MemoryResponseStoreSuite) TestListStatusFilter() {
	draft := s.newResponse("org-1", time.Now())
	submitted := s.newResponse("org-1", time.Now())
	submitted.Status = models.StatusSubmitted
	s.Require().NoError(s.store.Create(s.ctx, draft))
	s.Require().NoError(s.store.Create(s.ctx, submitted))

	out, err := s.store.List(s.ctx, "org-1", ListFilter{Status: models.StatusSubmitted})
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal(submitted.ID, out[0].ID)
}

func (s *MemoryResponseStoreSuite) TestUpdate() {
	response := s.newResponse("org-1", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, response))

	response.Status = models.StatusInProgress
	response.Progress = 40
	s.Require().NoError(s.store.Update(s.ctx, response))

	found, err := s.store.FindByID(s.ctx, "org-1", response.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, found.Status)
	s.Equal(40, found.Progress)

	missing := s.newResponse("org-1", time.Now())
	s.ErrorIs(s.store.Update(s.ctx, missing), sentinel.ErrNotFound)
}

func (s *MemoryResponseStoreSuite) TestDelete() {
	response := s.newResponse("org-1", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, response))

	s.ErrorIs(s.store.Delete(s.ctx, "org-2", response.ID), sentinel.ErrNotFound)
	s.Require().NoError(s.store.Delete(s.ctx, "org-1", response.ID))

	_, err := s.store.FindByID(s.ctx, "org-1", response.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

type MemoryValidationStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *MemoryValidationStore
}

func TestMemoryValidationStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryValidationStoreSuite))
}

func (s *MemoryValidationStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemoryValidationStore()
}

func (s *MemoryValidationStoreSuite) TestReplaceIsFullReplace() {
	surveyID := uuid.NewString()
	first := []models.Finding{
		{Field: "generalInformation.email", Message: "Email is required", Type: models.FindingRequired, Severity: models.SeverityError},
		{Field: "medicalPlans[0].planName", Message: "Plan name is required", Type: models.FindingRequired, Severity: models.SeverityError},
	}
	s.Require().NoError(s.store.ReplaceUnresolved(s.ctx, surveyID, first))

	stored, err := s.store.ListUnresolved(s.ctx, surveyID)
	s.Require().NoError(err)
	s.Len(stored, 2)

	second := []models.Finding{
		{Field: "generalInformation.contactPerson", Message: "Contact person is required", Type: models.FindingRequired, Severity: models.SeverityError},
	}
	s.Require().NoError(s.store.ReplaceUnresolved(s.ctx, surveyID, second))

	stored, err = s.store.ListUnresolved(s.ctx, surveyID)
	s.Require().NoError(err)
	s.Require().Len(stored, 1)
	s.Equal("generalInformation.contactPerson", stored[0].Field)
	s.False(stored[0].Resolved)
}

func (s *MemoryValidationStoreSuite) TestReplaceWithEmptyClears() {
	surveyID := uuid.NewString()
	s.Require().NoError(s.store.ReplaceUnresolved(s.ctx, surveyID, []models.Finding{
		{Field: "generalInformation.email", Message: "Email is required", Type: models.FindingRequired, Severity: models.SeverityError},
	}))
	s.Require().NoError(s.store.ReplaceUnresolved(s.ctx, surveyID, nil))

	stored, err := s.store.ListUnresolved(s.ctx, surveyID)
	s.Require().NoError(err)
	s.Empty(stored)
}

func (s *MemoryValidationStoreSuite) TestListUnknownSurveyIsEmpty() {
	stored, err := s.store.ListUnresolved(s.ctx, uuid.NewString())
	s.Require().NoError(err)
	s.Empty(stored)
}
