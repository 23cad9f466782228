package prompts

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muneerali199/website-builder/internal/auth"
	"github.com/Muneerali199/website-builder/internal/errors"
	"github.com/Muneerali199/website-builder/internal/home"
	"github.com/Muneerali199/website-builder/internal/logger"
	"github.com/Muneerali199/website-builder/internal/usage"
)

// SubmitHandler godoc
// @Summary Submit a prompt
// @Description Checks the visitor's quota and, when allowed, spends one free prompt and hands the prompt to the builder.
// @Description Blank prompts are ignored. Anonymous visitors must sign in. Free users with no prompts left are sent to pricing.
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Prompt"
// @Success 200 {object} SubmitResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 402 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/prompts [post]
// @Security BearerAuth
func SubmitHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if req.Prompt == nil {
			errors.EmptyPrompt(c)
			return
		}

		ctx := c.Request.Context()
		id := auth.GetIdentity(c)

		outcome, err := deps.Resolver.Submit(ctx, id, *req.Prompt)
		if outcome.Signal == "" {
			errors.InternalError(c, "failed to check usage", err)
			return
		}

		if stderrors.Is(err, usage.ErrMalformedRecord) {
			logger.Warn("stored usage unreadable, using defaults",
				"feed", id.Key(),
				"error", err,
			)
		}

		if stderrors.Is(err, usage.ErrSaveFailed) {
			// the prompt still goes through; the stored count is stale until the next write
			logger.ErrorErr(err, "failed to persist usage after accepted prompt",
				"feed", id.Key(),
			)
		}

		switch outcome.Signal {
		case usage.SignalIgnored:
			c.JSON(http.StatusOK, SubmitResponse{
				Status: StatusIgnored,
				Usage:  outcome.Record.View(),
			})

		case usage.SignalMustAuthenticate:
			errors.MustAuthenticate(c)

		case usage.SignalQuotaExhausted:
			logger.Info("prompt refused, free quota exhausted", "user_id", id.UserID)
			errors.QuotaExhausted(c, home.RoutePricing)

		case usage.SignalAccepted:
			view := outcome.Record.View()
			afterAccept(c, deps, id, outcome.Record)

			c.JSON(http.StatusOK, SubmitResponse{
				Status:   StatusAccepted,
				Redirect: home.RouteBuilder,
				State:    &home.BuilderState{Prompt: outcome.Prompt},
				Usage:    view,
			})
		}
	}
}

// fans out an accepted submission to live subscribers and notifications
func afterAccept(c *gin.Context, deps Deps, id usage.Identity, record usage.Record) {
	if deps.Feed != nil {
		deps.Feed.Publish(id, record.View())
	}

	if deps.Notifier == nil || !id.SignedIn() {
		return
	}

	if _, err := deps.Notifier.NotifyUsage(c.Request.Context(), id.UserID, record); err != nil {
		logger.ErrorErr(err, "failed to create usage notification", "user_id", id.UserID)
	}
}
