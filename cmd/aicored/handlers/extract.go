package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	apierr "github.com/pronas-suite/aicore/pkg/api/types/errors"
	apiprojects "github.com/pronas-suite/aicore/pkg/api/types/projects"
	"github.com/pronas-suite/aicore/pkg/capability"
	"github.com/pronas-suite/aicore/pkg/utils/slices"
)

func ExtractTextHandler(extractor capability.TextExtractor) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apiprojects.ExtractRequest{}
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
		if req.Document == "" {
			return apierr.BadRequest("document is required", nil)
		}

		text, err := extractor.ExtractText(ctx, req.Document)
		if err != nil {
			return apierr.UnprocessableInput(
				"the document can not be processed; check its format and encoding",
				err,
			)
		}
		if strings.TrimSpace(text) == "" {
			return apierr.UnprocessableInput(
				"no text could be extracted from the document; check its format and encoding",
				nil,
			)
		}

		// tables are extra; text alone is a useful response.
		tables, err := extractor.ExtractTables(ctx, req.Document)
		if err != nil {
			c.Logger().Warnf("table extraction failed: %s", err)
			tables = nil
		}

		return c.JSON(http.StatusOK, apiprojects.ExtractResponse{
			Text: text,
			Tables: slices.Map(tables, func(t capability.Table) apiprojects.ExtractTable {
				return apiprojects.ExtractTable{Name: t.Name, Rows: t.Rows}
			}),
		})
	}
}
