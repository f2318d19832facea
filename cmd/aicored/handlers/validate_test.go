package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/pronas-suite/aicore/internal/testutils/http"
	apiprojects "github.com/pronas-suite/aicore/pkg/api/types/projects"
	"github.com/pronas-suite/aicore/pkg/capability"
	capmocks "github.com/pronas-suite/aicore/pkg/capability/mocks"
	"github.com/pronas-suite/aicore/pkg/conformity"
	dbmock "github.com/pronas-suite/aicore/pkg/db/mocks"
	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/nlp"
	"github.com/pronas-suite/aicore/pkg/utils/slices"
	"github.com/pronas-suite/aicore/pkg/utils/try"

	"github.com/pronas-suite/aicore/cmd/aicored/handlers"
)

func positiveClassifier() *capmocks.SentimentClassifier {
	classifier := capmocks.NewSentimentClassifier()
	classifier.Impl.Classify = func(ctx context.Context, text string) (capability.Sentiment, error) {
		return capability.Sentiment{Label: "5 stars", Score: 0.9}, nil
	}
	return classifier
}

func cacheOf(g domain.Guidelines) *nlp.GuidelineCache {
	return nlp.NewGuidelineCache(func(ctx context.Context) (domain.Guidelines, error) {
		return g, nil
	})
}

func TestValidateConformityHandler(t *testing.T) {

	t.Run("when every section satisfies the guidelines, it should report compliant", func(t *testing.T) {
		guidelines := domain.Guidelines{
			Version:  "test",
			Keywords: []string{"inclusão"},
		}

		dbApproved := dbmock.NewApprovedInterface()
		dbApproved.Impl.CountSimilar = func(ctx context.Context, pt domain.ProjectType) (int, error) {
			return 0, nil
		}

		testee := handlers.ValidateConformityHandler(
			conformity.NewValidator(positiveClassifier()),
			cacheOf(guidelines),
			dbApproved,
		)

		sentence := "Este projeto promove inclusão com resultados concretos para a comunidade atendida. "
		body := try.To(json.Marshal(apiprojects.ValidateRequest{
			ProjectId: "proj-1",
			Fields: map[string]string{
				"justification":      strings.Repeat(sentence, 20),
				"objectives":         strings.Repeat(sentence, 6),
				"methodology":        strings.Repeat(sentence, 15),
				"evaluation_metrics": "Indicadores trimestrais de inclusão.",
			},
		})).OrFatal(t)

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/v1/validate-conformity", bytes.NewReader(body),
			httptestutil.ContentType("application/json"),
		)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		resp := apiprojects.ValidateResponse{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}

		if !resp.Compliant {
			t.Errorf("should be compliant: score = %f, issues = %+v", resp.Score, resp.Issues)
		}
		if resp.Score != 1.0 {
			t.Errorf("unexpected score: %f", resp.Score)
		}
		if len(resp.Issues) != 0 {
			t.Errorf("unexpected issues: %+v", resp.Issues)
		}
	})

	t.Run("when sections are short and off-topic, it should report issues and recommendations", func(t *testing.T) {
		dbApproved := dbmock.NewApprovedInterface()
		dbApproved.Impl.CountSimilar = func(ctx context.Context, pt domain.ProjectType) (int, error) {
			return 5, nil
		}

		testee := handlers.ValidateConformityHandler(
			conformity.NewValidator(positiveClassifier()),
			cacheOf(nlp.DefaultGuidelines()),
			dbApproved,
		)

		body := try.To(json.Marshal(apiprojects.ValidateRequest{
			ProjectId: "proj-1",
			Fields: map[string]string{
				"justification": "Texto curto.",
			},
		})).OrFatal(t)

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/v1/validate-conformity", bytes.NewReader(body),
			httptestutil.ContentType("application/json"),
		)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		resp := apiprojects.ValidateResponse{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}

		if resp.Compliant {
			t.Errorf("should not be compliant: score = %f", resp.Score)
		}
		if !slices.Any(resp.Issues, func(i apiprojects.Issue) bool {
			return i.Section == "justification" && i.Type == "length"
		}) {
			t.Errorf("length issue is missing: %+v", resp.Issues)
		}
		if !slices.Any(resp.Issues, func(i apiprojects.Issue) bool {
			return i.Section == "justification" && i.Type == "keywords"
		}) {
			t.Errorf("keywords issue is missing: %+v", resp.Issues)
		}

		for _, expected := range []string{
			"Revisar e expandir a seção 'justification' para melhor aderência às diretrizes",
			"Considerar estrutura similar à de projetos aprovados anteriormente",
			"Expandir a justificativa com dados epidemiológicos e contexto regional",
			"Incluir métricas claras de avaliação com indicadores mensuráveis",
		} {
			if !slices.Any(resp.Recommendations, func(r string) bool { return r == expected }) {
				t.Errorf("recommendation %q is missing: %+v", expected, resp.Recommendations)
			}
		}
	})

	t.Run("when no known section is given, it should report zero score", func(t *testing.T) {
		dbApproved := dbmock.NewApprovedInterface()
		dbApproved.Impl.CountSimilar = func(ctx context.Context, pt domain.ProjectType) (int, error) {
			return 0, nil
		}

		testee := handlers.ValidateConformityHandler(
			conformity.NewValidator(positiveClassifier()),
			cacheOf(nlp.DefaultGuidelines()),
			dbApproved,
		)

		body := try.To(json.Marshal(apiprojects.ValidateRequest{
			ProjectId: "proj-1",
			Fields:    map[string]string{},
		})).OrFatal(t)

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/v1/validate-conformity", bytes.NewReader(body),
			httptestutil.ContentType("application/json"),
		)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		resp := apiprojects.ValidateResponse{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Score != 0.0 {
			t.Errorf("unexpected score: %f", resp.Score)
		}
		if resp.Compliant {
			t.Error("should not be compliant")
		}
	})
}
