package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/pronas-suite/aicore/internal/testutils/http"
	apiprojects "github.com/pronas-suite/aicore/pkg/api/types/projects"
	capmocks "github.com/pronas-suite/aicore/pkg/capability/mocks"
	"github.com/pronas-suite/aicore/pkg/conformity"
	kdb "github.com/pronas-suite/aicore/pkg/db"
	dbmock "github.com/pronas-suite/aicore/pkg/db/mocks"
	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/feedback"
	"github.com/pronas-suite/aicore/pkg/utils/try"

	"github.com/pronas-suite/aicore/cmd/aicored/handlers"
)

func quietImproverLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestSuggestImprovementsHandler(t *testing.T) {

	t.Run("when no approved example matches, it should suggest the generic enhancement", func(t *testing.T) {
		embedder := capmocks.NewEmbedder()
		embedder.Impl.Embed = func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0, 0}, nil
		}
		dbApproved := dbmock.NewApprovedInterface()
		dbApproved.Impl.ExamplesFor = func(ctx context.Context, field string, limit int) ([]kdb.FieldExample, error) {
			return []kdb.FieldExample{}, nil
		}
		dbApproved.Impl.CountSimilar = func(ctx context.Context, pt domain.ProjectType) (int, error) {
			return 3, nil
		}

		dbProjects := dbmock.NewProjectInterface()
		dbProjects.Impl.Get = func(ctx context.Context, projectId string) (domain.ProjectStructure, error) {
			return domain.ProjectStructure{}, kdb.ErrMissing
		}

		testee := handlers.SuggestImprovementsHandler(
			conformity.NewImprover(embedder, dbApproved),
			feedback.NewModels(),
			dbProjects,
			dbApproved,
		)

		current := "Este projeto beneficia a comunidade local."
		body := try.To(json.Marshal(apiprojects.SuggestRequest{
			ProjectId: "proj-1",
			CurrentFields: map[string]string{
				"justification": current,
			},
		})).OrFatal(t)

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/v1/suggest-improvements", bytes.NewReader(body),
			httptestutil.ContentType("application/json"),
		)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		resp := apiprojects.SuggestResponse{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}

		if len(resp.Suggestions) != 1 {
			t.Fatalf("unexpected suggestions: %+v", resp.Suggestions)
		}
		suggestion := resp.Suggestions[0]
		if suggestion.Field != "justification" {
			t.Errorf("unexpected field: %s", suggestion.Field)
		}
		if suggestion.CurrentValue != current {
			t.Errorf("unexpected current value: %s", suggestion.CurrentValue)
		}
		if suggestion.SuggestedValue == current {
			t.Error("suggested value is not changed")
		}
		if suggestion.Confidence != 0.6 {
			t.Errorf("unexpected confidence: %f", suggestion.Confidence)
		}

		// models are not fitted yet; the default probability applies
		if resp.ApprovalProbability != 0.75 {
			t.Errorf("unexpected approval probability: %f", resp.ApprovalProbability)
		}
		if resp.SimilarCount != 3 {
			t.Errorf("unexpected similar count: %d", resp.SimilarCount)
		}
	})

	t.Run("when the improver can not change a field, it should omit the suggestion", func(t *testing.T) {
		embedder := capmocks.NewEmbedder()
		embedder.Impl.Embed = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("fake embedding error")
		}
		dbApproved := dbmock.NewApprovedInterface()
		dbApproved.Impl.CountSimilar = func(ctx context.Context, pt domain.ProjectType) (int, error) {
			return 0, nil
		}

		dbProjects := dbmock.NewProjectInterface()
		dbProjects.Impl.Get = func(ctx context.Context, projectId string) (domain.ProjectStructure, error) {
			return domain.ProjectStructure{}, kdb.ErrMissing
		}

		quiet := conformity.NewImprover(
			embedder, dbApproved,
			conformity.WithImproverLogger(quietImproverLogger()),
		)
		testee := handlers.SuggestImprovementsHandler(
			quiet, feedback.NewModels(), dbProjects, dbApproved,
		)

		body := try.To(json.Marshal(apiprojects.SuggestRequest{
			ProjectId: "proj-1",
			CurrentFields: map[string]string{
				"methodology": "Metodologia ágil com entregas incrementais.",
			},
		})).OrFatal(t)

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/v1/suggest-improvements", bytes.NewReader(body),
			httptestutil.ContentType("application/json"),
		)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		resp := apiprojects.SuggestResponse{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Suggestions) != 0 {
			t.Errorf("unexpected suggestions: %+v", resp.Suggestions)
		}
	})

	t.Run("when project_id is not given, it should respond Bad Request", func(t *testing.T) {
		testee := handlers.SuggestImprovementsHandler(
			conformity.NewImprover(capmocks.NewEmbedder(), dbmock.NewApprovedInterface()),
			feedback.NewModels(),
			dbmock.NewProjectInterface(),
			dbmock.NewApprovedInterface(),
		)

		body := try.To(json.Marshal(apiprojects.SuggestRequest{})).OrFatal(t)

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/v1/suggest-improvements", bytes.NewReader(body),
			httptestutil.ContentType("application/json"),
		)

		err := testee(c)
		if err == nil {
			t.Fatal("no error is returned")
		}
		httperr := &echo.HTTPError{}
		if !errors.As(err, &httperr) {
			t.Fatalf("unexpected error: %+v", err)
		}
		if httperr.Code != http.StatusBadRequest {
			t.Errorf("status code is not %d: %d", http.StatusBadRequest, httperr.Code)
		}
	})
}
