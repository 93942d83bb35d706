package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aidlink/aidlink/internal/shared/constants"
	"github.com/aidlink/aidlink/internal/shared/errors"
	"github.com/aidlink/aidlink/internal/shared/utils"
)

const maxActorLength = 128

// Actor copies the gateway-supplied identity header into the context. It
// does not authenticate; the gateway in front of the service does.
func Actor(header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := strings.TrimSpace(c.GetHeader(header)); actor != "" && len(actor) <= maxActorLength {
			c.Set(constants.ContextKeyActorID, actor)
		}
		c.Next()
	}
}

// RequireActor rejects requests that carry no actor identity.
func RequireActor(header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(constants.ContextKeyActorID) == "" {
			utils.ErrorResponseWithError(c, errors.NewBadRequestError("missing actor identity", header+" header is required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorID returns the identity stored by Actor.
func ActorID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyActorID)
}
