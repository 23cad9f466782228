package usage

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muneerali199/website-builder/internal/auth"
	apierrors "github.com/Muneerali199/website-builder/internal/errors"
	"github.com/Muneerali199/website-builder/internal/logger"
	"github.com/Muneerali199/website-builder/internal/usage"
)

// GetUsageHandler godoc
// @Summary Get usage
// @Description Current tier and remaining free prompts. Signed-in users read their profile, anonymous visitors their session's local storage.
// @Tags usage
// @Produce json
// @Param X-Session-ID header string false "Anonymous session id"
// @Success 200 {object} UsageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/usage [get]
func GetUsageHandler(resolver *usage.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.GetIdentity(c)

		tracker, err := resolver.Open(c.Request.Context(), id)
		if tracker == nil {
			apierrors.InternalError(c, "failed to load usage", err)
			return
		}

		if errors.Is(err, usage.ErrMalformedRecord) {
			logger.Warn("stored usage unreadable, showing defaults",
				"feed", id.Key(),
				"error", err,
			)
		}

		c.JSON(http.StatusOK, UsageResponse{
			Usage:     tracker.Record().View(),
			Store:     tracker.StoreKind(),
			SignedIn:  id.SignedIn(),
			SessionID: id.SessionID,
		})
	}
}
