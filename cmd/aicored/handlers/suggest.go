package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/pronas-suite/aicore/pkg/api/types/errors"
	apiprojects "github.com/pronas-suite/aicore/pkg/api/types/projects"
	"github.com/pronas-suite/aicore/pkg/conformity"
	kdb "github.com/pronas-suite/aicore/pkg/db"
	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/feedback"
)

// improvableFields are the sections suggestions are produced for, in
// response order.
var improvableFields = []string{"justification", "objectives", "methodology"}

func SuggestImprovementsHandler(
	improver *conformity.Improver,
	models *feedback.Models,
	dbProjects kdb.ProjectInterface,
	dbApproved kdb.ApprovedInterface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apiprojects.SuggestRequest{}
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
		if req.ProjectId == "" {
			return apierr.BadRequest("project_id is required", nil)
		}

		suggestions := []apiprojects.Suggestion{}
		for _, field := range improvableFields {
			current, ok := req.CurrentFields[field]
			if !ok || current == "" {
				continue
			}
			improvement := improver.Improve(ctx, current, field)
			if improvement.ImprovedText == current {
				continue
			}
			suggestions = append(suggestions, apiprojects.Suggestion{
				Field:          field,
				CurrentValue:   current,
				SuggestedValue: improvement.ImprovedText,
				Confidence:     improvement.Confidence,
				Reasoning:      improvement.Reasoning,
				ChangesMade:    improvement.ChangesMade,
			})
		}

		// approval probability is scored on the stored structure when the
		// project is known, or on the submitted fields alone otherwise.
		project, err := dbProjects.Get(ctx, req.ProjectId)
		if errors.Is(err, kdb.ErrMissing) {
			project = domain.ProjectStructure{
				Id:            req.ProjectId,
				Type:          domain.ProjectDevelopment,
				Justification: req.CurrentFields["justification"],
			}
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		similar, err := dbApproved.CountSimilar(ctx, project.Type)
		if err != nil {
			c.Logger().Warnf("can not count similar approved projects: %s", err)
			similar = 0
		}

		return c.JSON(http.StatusOK, apiprojects.SuggestResponse{
			Suggestions:         suggestions,
			ApprovalProbability: models.ApprovalProbability(project),
			SimilarCount:        similar,
		})
	}
}
