package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/seamlabs/codeshift/internal/errors"
	"github.com/seamlabs/codeshift/pkg/jobs"
	"github.com/seamlabs/codeshift/pkg/tools"
)

// Tools exposes the migration tool surface over HTTP. Submissions return
// 202 with the freshly registered RUNNING record; status reads return 200
// regardless of whether the id is known, with UNKNOWN as the sentinel.
type Tools struct {
	facade   *tools.Facade
	validate *validator.Validate
}

func NewTools(facade *tools.Facade) *Tools {
	return &Tools{
		facade:   facade,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes mounts the tool endpoints on r.
func (h *Tools) Routes(r chi.Router) {
	r.Post("/analyze", h.Analyze)
	r.Post("/run-recipe", h.RunRecipe)
	r.Get("/recipe-status/{id}", h.RecipeStatus)
	r.Post("/dry-run-build", h.DryRunBuild)
	r.Get("/build-status/{id}", h.BuildStatus)
	r.Get("/jobs", h.Jobs)
}

type analyzeRequest struct {
	ProjectPath string `json:"project_path" validate:"required"`
}

type runRecipeRequest struct {
	ProjectPath      string `json:"project_path" validate:"required"`
	TransformationID string `json:"transformation_id" validate:"required"`
}

type dryRunBuildRequest struct {
	ProjectPath string `json:"project_path" validate:"required"`
}

// Analyze inspects a project synchronously and returns its profile.
func (h *Tools) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	profile, err := h.facade.Analyze(r.Context(), req.ProjectPath)
	if err != nil {
		respondWithError(w, r, apperrors.NewValidationError(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// RunRecipe submits a transformation job and returns its initial record.
func (h *Tools) RunRecipe(w http.ResponseWriter, r *http.Request) {
	var req runRecipeRequest
	if !h.decode(w, r, &req) {
		return
	}

	jobID, err := h.facade.RunTransformation(req.ProjectPath, req.TransformationID)
	if err != nil {
		respondWithError(w, r, apperrors.NewValidationError(err.Error()))
		return
	}
	writeJSON(w, http.StatusAccepted, h.facade.TransformationStatus(jobID))
}

// RecipeStatus returns the record for a transformation job id.
func (h *Tools) RecipeStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, h.facade.TransformationStatus(id))
}

// DryRunBuild submits a verification build job and returns its initial
// record.
func (h *Tools) DryRunBuild(w http.ResponseWriter, r *http.Request) {
	var req dryRunBuildRequest
	if !h.decode(w, r, &req) {
		return
	}

	jobID, err := h.facade.DryRunBuild(req.ProjectPath)
	if err != nil {
		respondWithError(w, r, apperrors.NewValidationError(err.Error()))
		return
	}
	writeJSON(w, http.StatusAccepted, h.facade.BuildStatus(jobID))
}

// BuildStatus returns the record for a build job id.
func (h *Tools) BuildStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, h.facade.BuildStatus(id))
}

// Jobs lists job records, optionally filtered by ?kind=transform|build.
func (h *Tools) Jobs(w http.ResponseWriter, r *http.Request) {
	kind := jobs.Kind(r.URL.Query().Get("kind"))
	switch kind {
	case "", jobs.KindTransform, jobs.KindBuild:
	default:
		respondWithError(w, r, apperrors.NewValidationError("unknown job kind: "+string(kind)))
		return
	}
	writeJSON(w, http.StatusOK, h.facade.Jobs(kind))
}

// decode unmarshals and validates the request body, writing the error
// response itself when the input is rejected.
func (h *Tools) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, r, apperrors.NewValidationError("invalid request body"))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		appErr := apperrors.NewValidationError("invalid request")
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				appErr.WithDetail(fe.Field(), "failed "+fe.Tag()+" validation")
			}
		}
		respondWithError(w, r, appErr)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
