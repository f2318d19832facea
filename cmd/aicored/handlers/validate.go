package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/pronas-suite/aicore/pkg/api/types/errors"
	apiprojects "github.com/pronas-suite/aicore/pkg/api/types/projects"
	"github.com/pronas-suite/aicore/pkg/conformity"
	kdb "github.com/pronas-suite/aicore/pkg/db"
	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/nlp"
)

// complianceThreshold is the overall score at and above which a project
// is reported compliant.
const complianceThreshold = 0.8

// validatedSections are the sections checked against guidelines, in
// response order.
var validatedSections = []string{"justification", "objectives", "methodology"}

func ValidateConformityHandler(
	validator *conformity.Validator,
	guidelines *nlp.GuidelineCache,
	dbApproved kdb.ApprovedInterface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apiprojects.ValidateRequest{}
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

		g, err := guidelines.Get(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		issues := []apiprojects.Issue{}
		recommendations := []string{}
		sum, validated := 0.0, 0
		for _, section := range validatedSections {
			content, ok := req.Fields[section]
			if !ok {
				continue
			}
			result := validator.ValidateSection(ctx, section, content, g)
			sum += result.Score
			validated += 1

			for _, issue := range result.Issues {
				issues = append(issues, apiprojects.Issue{
					Section: result.Section,
					Type:    issue.Type,
					Message: issue.Message,
				})
			}
			if result.Score < 0.7 {
				recommendations = append(recommendations, fmt.Sprintf(
					"Revisar e expandir a seção '%s' para melhor aderência às diretrizes",
					result.Section,
				))
			}
		}

		score := 0.0
		if validated != 0 {
			score = sum / float64(validated)
		}

		if similar, err := dbApproved.CountSimilar(ctx, domain.ProjectDevelopment); err != nil {
			c.Logger().Warnf("can not count similar approved projects: %s", err)
		} else if similar > 0 {
			recommendations = append(
				recommendations,
				"Considerar estrutura similar à de projetos aprovados anteriormente",
			)
		}
		if len(req.Fields["justification"]) < 1000 {
			recommendations = append(
				recommendations,
				"Expandir a justificativa com dados epidemiológicos e contexto regional",
			)
		}
		if req.Fields["evaluation_metrics"] == "" {
			recommendations = append(
				recommendations,
				"Incluir métricas claras de avaliação com indicadores mensuráveis",
			)
		}

		return c.JSON(http.StatusOK, apiprojects.ValidateResponse{
			Compliant:       score >= complianceThreshold,
			Score:           score,
			Issues:          issues,
			Recommendations: recommendations,
		})
	}
}
