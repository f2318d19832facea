package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	apibias "github.com/pronas-suite/aicore/pkg/api/types/bias"
	apierr "github.com/pronas-suite/aicore/pkg/api/types/errors"
	"github.com/pronas-suite/aicore/pkg/bias"
)

func DetectBiasHandler(engine *bias.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apibias.DetectRequest{}
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

		report := engine.Analyze(ctx, req.Subject())
		return c.JSON(http.StatusOK, apibias.ComposeReport(report))
	}
}
