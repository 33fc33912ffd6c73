// Package handler wires the survey HTTP surface to the survey service.
// Handlers decode, authorize and translate; all domain decisions live below.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"benesurvey/internal/survey/export"
	"benesurvey/internal/survey/models"
	"benesurvey/internal/survey/service"
	"benesurvey/internal/survey/store"
	dErrors "benesurvey/pkg/domain-errors"
	"benesurvey/pkg/platform/httputil"
	"benesurvey/pkg/requestcontext"
)

// Service defines the survey operations the handler depends on.
type Service interface {
	Create(ctx context.Context, organizationID, userID string, data *models.SurveyData) (*models.SurveyResponse, error)
	Get(ctx context.Context, organizationID, id string) (*models.SurveyResponse, error)
	List(ctx context.Context, organizationID string, filter store.ListFilter) ([]*models.SurveyResponse, error)
	UpdateData(ctx context.Context, organizationID, id string, req *models.UpdateSurveyRequest) (*models.SurveyResponse, error)
	Validate(ctx context.Context, organizationID, id string) (*models.ValidationResult, error)
	Submit(ctx context.Context, organizationID, id string) (*models.SurveyResponse, *models.ValidationResult, error)
	Progress(ctx context.Context, organizationID, id string) (*models.ProgressResult, error)
	GetOverview(ctx context.Context, organizationID, id string) (*service.Overview, error)
	Import(ctx context.Context, organizationID, userID string, payload map[string]any) (*models.SurveyResponse, *models.ValidationResult, error)
	Export(ctx context.Context, organizationID, id string, format export.Format) ([]byte, string, error)
	Delete(ctx context.Context, organizationID, id string) error
}

// Handler wires survey endpoints to the survey service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a survey handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts survey endpoints on the router. The router is expected to
// run behind the auth middleware that fills the request context principal.
func (h *Handler) Register(r chi.Router) {
	r.Route("/surveys", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Post("/import", h.HandleImport)
		r.Route("/{surveyID}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Patch("/", h.HandleUpdate)
			r.Delete("/", h.HandleDelete)
			r.Post("/validate", h.HandleValidate)
			r.Post("/submit", h.HandleSubmit)
			r.Get("/progress", h.HandleProgress)
			r.Get("/overview", h.HandleOverview)
			r.Get("/export", h.HandleExport)
		})
	})
}

type principal struct {
	userID         string
	organizationID string
	role           string
}

func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (principal, bool) {
	p := principal{
		userID:         requestcontext.UserID(r.Context()),
		organizationID: requestcontext.OrganizationID(r.Context()),
		role:           requestcontext.Role(r.Context()),
	}
	if p.userID == "" || p.organizationID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return principal{}, false
	}
	return p, true
}

// HandleCreate handles POST /surveys.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.CreateSurveyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	response, err := h.service.Create(ctx, p.organizationID, p.userID, req.Data)
	if err != nil {
		h.logError(ctx, "create survey failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, response)
}

// HandleList handles GET /surveys.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	filter := store.ListFilter{Status: models.Status(r.URL.Query().Get("status"))}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	responses, err := h.service.List(ctx, p.organizationID, filter)
	if err != nil {
		h.logError(ctx, "list surveys failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"surveys": responses})
}

// HandleGet handles GET /surveys/{surveyID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	response, err := h.service.Get(ctx, p.organizationID, chi.URLParam(r, "surveyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, response)
}

// HandleUpdate handles PATCH /surveys/{surveyID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UpdateSurveyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	response, err := h.service.UpdateData(ctx, p.organizationID, chi.URLParam(r, "surveyID"), req)
	if err != nil {
		h.logError(ctx, "update survey failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, response)
}

// HandleValidate handles POST /surveys/{surveyID}/validate.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	result, err := h.service.Validate(ctx, p.organizationID, chi.URLParam(r, "surveyID"))
	if err != nil {
		h.logError(ctx, "validate survey failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleSubmit handles POST /surveys/{surveyID}/submit. A rejection reports
// the error count and offending field paths, not just a denial.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	response, result, err := h.service.Submit(ctx, p.organizationID, chi.URLParam(r, "surveyID"))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) && result != nil {
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":             string(dErrors.CodeValidation),
				"error_description": dErrors.MessageOf(err),
				"errorCount":        len(result.Errors),
				"fields":            result.ErrorFields(),
				"validation":        result,
			})
			return
		}
		h.logError(ctx, "submit survey failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"survey":     response,
		"validation": result,
	})
}

// HandleProgress handles GET /surveys/{surveyID}/progress.
func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	result, err := h.service.Progress(ctx, p.organizationID, chi.URLParam(r, "surveyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleOverview handles GET /surveys/{surveyID}/overview.
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	overview, err := h.service.GetOverview(ctx, p.organizationID, chi.URLParam(r, "surveyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, overview)
}

// HandleImport handles POST /surveys/import. Structural findings come back
// with the rejection so the caller can fix the payload.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.ImportSurveyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	response, result, err := h.service.Import(ctx, p.organizationID, p.userID, req.Data)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) && result != nil {
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":             string(dErrors.CodeValidation),
				"error_description": dErrors.MessageOf(err),
				"validation":        result,
			})
			return
		}
		h.logError(ctx, "import survey failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"survey":     response,
		"validation": result,
	})
}

// HandleExport handles GET /surveys/{surveyID}/export?format=json|csv.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatJSON
	}
	surveyID := chi.URLParam(r, "surveyID")
	out, contentType, err := h.service.Export(ctx, p.organizationID, surveyID, format)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("survey-%s.%s", surveyID, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// HandleDelete handles DELETE /surveys/{surveyID}. Admin only.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	if p.role != "admin" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin role required"))
		return
	}

	if err := h.service.Delete(ctx, p.organizationID, chi.URLParam(r, "surveyID")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	if h.logger == nil {
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
