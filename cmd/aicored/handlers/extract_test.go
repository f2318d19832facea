package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/pronas-suite/aicore/internal/testutils/http"
	apiprojects "github.com/pronas-suite/aicore/pkg/api/types/projects"
	"github.com/pronas-suite/aicore/pkg/capability"
	capmocks "github.com/pronas-suite/aicore/pkg/capability/mocks"
	"github.com/pronas-suite/aicore/pkg/utils/try"

	"github.com/pronas-suite/aicore/cmd/aicored/handlers"
)

func TestExtractTextHandler(t *testing.T) {

	t.Run("when a document is given, it should respond its text and tables", func(t *testing.T) {
		extractor := capmocks.NewTextExtractor()
		extractor.Impl.ExtractText = func(ctx context.Context, document string) (string, error) {
			return "conteúdo extraído", nil
		}
		extractor.Impl.ExtractTables = func(ctx context.Context, document string) ([]capability.Table, error) {
			return []capability.Table{
				{Name: "orçamento", Rows: [][]string{{"item", "valor"}, {"equipamento", "1000"}}},
			}, nil
		}

		testee := handlers.ExtractTextHandler(extractor)

		body := try.To(json.Marshal(apiprojects.ExtractRequest{Document: "doc-1"})).OrFatal(t)

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/v1/extract-text", bytes.NewReader(body),
			httptestutil.ContentType("application/json"),
		)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		resp := apiprojects.ExtractResponse{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Text != "conteúdo extraído" {
			t.Errorf("unexpected text: %s", resp.Text)
		}
		if len(resp.Tables) != 1 || resp.Tables[0].Name != "orçamento" {
			t.Errorf("unexpected tables: %+v", resp.Tables)
		}
	})

	t.Run("when table extraction fails, it should respond the text alone", func(t *testing.T) {
		extractor := capmocks.NewTextExtractor()
		extractor.Impl.ExtractText = func(ctx context.Context, document string) (string, error) {
			return "conteúdo extraído", nil
		}
		extractor.Impl.ExtractTables = func(ctx context.Context, document string) ([]capability.Table, error) {
			return nil, errors.New("fake table error")
		}

		testee := handlers.ExtractTextHandler(extractor)

		body := try.To(json.Marshal(apiprojects.ExtractRequest{Document: "doc-1"})).OrFatal(t)

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/v1/extract-text", bytes.NewReader(body),
			httptestutil.ContentType("application/json"),
		)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		resp := apiprojects.ExtractResponse{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Text != "conteúdo extraído" {
			t.Errorf("unexpected text: %s", resp.Text)
		}
		if len(resp.Tables) != 0 {
			t.Errorf("tables should be empty: %+v", resp.Tables)
		}
	})

	t.Run("when text extraction fails, it should respond Unprocessable Entity", func(t *testing.T) {
		extractor := capmocks.NewTextExtractor()
		extractor.Impl.ExtractText = func(ctx context.Context, document string) (string, error) {
			return "", errors.New("fake extraction error")
		}

		testee := handlers.ExtractTextHandler(extractor)

		body := try.To(json.Marshal(apiprojects.ExtractRequest{Document: "doc-broken"})).OrFatal(t)

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/v1/extract-text", bytes.NewReader(body),
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
		if httperr.Code != http.StatusUnprocessableEntity {
			t.Errorf("status code is not %d: %d", http.StatusUnprocessableEntity, httperr.Code)
		}
	})

	t.Run("when extraction yields no text, it should respond Unprocessable Entity", func(t *testing.T) {
		extractor := capmocks.NewTextExtractor()
		extractor.Impl.ExtractText = func(ctx context.Context, document string) (string, error) {
			return " \n\t", nil
		}

		testee := handlers.ExtractTextHandler(extractor)

		body := try.To(json.Marshal(apiprojects.ExtractRequest{Document: "doc-blank"})).OrFatal(t)

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/v1/extract-text", bytes.NewReader(body),
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
		if httperr.Code != http.StatusUnprocessableEntity {
			t.Errorf("status code is not %d: %d", http.StatusUnprocessableEntity, httperr.Code)
		}
	})

	t.Run("when no document is given, it should respond Bad Request", func(t *testing.T) {
		testee := handlers.ExtractTextHandler(capmocks.NewTextExtractor())

		body := try.To(json.Marshal(apiprojects.ExtractRequest{})).OrFatal(t)

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/v1/extract-text", bytes.NewReader(body),
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
