package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	apibias "github.com/pronas-suite/aicore/pkg/api/types/bias"
	apierr "github.com/pronas-suite/aicore/pkg/api/types/errors"
	apiprojects "github.com/pronas-suite/aicore/pkg/api/types/projects"
	"github.com/pronas-suite/aicore/pkg/bias"
	"github.com/pronas-suite/aicore/pkg/capability"
	kdb "github.com/pronas-suite/aicore/pkg/db"
	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/nlp"
	"github.com/pronas-suite/aicore/pkg/synthesis"
)

// renderFormats is the set of artifacts produced for each generated project.
var renderFormats = []string{"proposal", "budget", "workplan"}

// FeedbackRecorder receives the "generated" feedback entry written after
// each successful generation.
type FeedbackRecorder interface {
	Record(ctx context.Context, entry domain.FeedbackEntry) (pending int, scheduled bool, err error)
}

func GenerateProjectHandler(
	extractor capability.TextExtractor,
	structurer *nlp.Structurer,
	synthesizer *synthesis.Synthesizer,
	engine *bias.Engine,
	renderer capability.Renderer,
	dbProjects kdb.ProjectInterface,
	recorder FeedbackRecorder,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apiprojects.GenerateRequest{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return apierr.NewErrorMessage(
				http.StatusBadRequest,
				"format error",
				apierr.WithAdvice(err.Error()),
				apierr.WithError(err),
			)
		}

		if req.InstitutionId == "" {
			return apierr.BadRequest("institution_id is required", nil)
		}
		projectType, err := domain.AsProjectType(req.ProjectType)
		if err != nil {
			return apierr.BadRequest("project_type should be research, development or training", err)
		}

		// guideline text given inline in the request is used as-is;
		// documents go through text extraction first.
		texts := make([]string, 0, len(req.Guidelines)+len(req.Documents))
		texts = append(texts, req.Guidelines...)
		for _, document := range req.Documents {
			extracted, err := extractor.ExtractText(ctx, document)
			if err != nil {
				return apierr.UnprocessableInput(
					"the document can not be processed; check its format and encoding",
					err,
				)
			}
			if strings.TrimSpace(extracted) == "" {
				return apierr.UnprocessableInput(
					"no text could be extracted from the document; check its format and encoding",
					nil,
				)
			}
			texts = append(texts, extracted)
		}

		guidelines, err := structurer.Process(ctx, texts)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		project := synthesizer.Synthesize(
			req.InstitutionId, projectType, guidelines,
			synthesis.SeedInput{
				Title:         req.SeedData.Title,
				Budget:        req.SeedData.Budget,
				MainObjective: req.SeedData.MainObjective,
				Context:       req.SeedData.Context,
				Foundation:    req.SeedData.Foundation,
				Impacts:       req.SeedData.Impacts,
				Beneficiaries: req.SeedData.Beneficiaries,
			},
		)

		report := engine.Analyze(ctx, bias.SubjectOf(project, req.InstitutionType, req.Region))

		// rendering is not essential for the response; the structure is
		// returned even when no artifact could be produced.
		artifacts, err := renderer.Render(ctx, project, renderFormats)
		if err != nil {
			c.Logger().Warnf("artifact rendering failed for %s: %s", project.Id, err)
			artifacts = nil
		}

		if err := dbProjects.Register(ctx, project); err != nil {
			if errors.Is(err, kdb.ErrAlreadyExists) {
				return apierr.NewErrorMessage(
					http.StatusConflict, "a project with the same id is already registered",
					apierr.WithError(err),
				)
			}
			return apierr.InternalServerError(err)
		}

		if entry, err := generatedFeedback(project); err == nil {
			// c is recycled once the response is written; the detached
			// goroutine must not touch it.
			logger := c.Logger()
			go func() {
				if _, _, err := recorder.Record(context.Background(), entry); err != nil {
					logger.Warnf("can not record feedback for %s: %s", project.Id, err)
				}
			}()
		}

		return c.JSON(http.StatusOK, apiprojects.GenerateResponse{
			ProjectId:  project.Id,
			Structure:  apiprojects.ComposeDetail(project),
			BiasReport: apibias.ComposeReport(report),
			Artifacts:  artifacts,
			Confidence: project.Confidence,
		})
	}
}

func generatedFeedback(p domain.ProjectStructure) (domain.FeedbackEntry, error) {
	payload, err := json.Marshal(map[string]any{"structure": p})
	if err != nil {
		return domain.FeedbackEntry{}, err
	}
	return domain.NewFeedbackEntry(p.Id, "generated", payload)
}
