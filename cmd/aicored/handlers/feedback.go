package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/pronas-suite/aicore/pkg/api/types/errors"
	apiprojects "github.com/pronas-suite/aicore/pkg/api/types/projects"
	"github.com/pronas-suite/aicore/pkg/domain"
)

func SubmitFeedbackHandler(recorder FeedbackRecorder) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apiprojects.FeedbackRequest{}
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

		entry, err := domain.NewFeedbackEntry(req.ProjectId, req.FeedbackType, req.Payload)
		if errors.Is(err, domain.ErrEmptyFeedback) {
			return apierr.BadRequest("project_id and feedback_type are required", err)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		pending, scheduled, err := recorder.Record(ctx, entry)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiprojects.FeedbackResponse{
			Accepted:            true,
			PendingCount:        pending,
			RetrainingScheduled: scheduled,
		})
	}
}
