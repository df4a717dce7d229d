package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// actorHeader is the request header carrying the acting user's ID.
const actorHeader = "X-Actor-ID"

// ActorMiddleware extracts the acting user's ID from the request header and
// stores it in the Gin context for downstream handlers.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader(actorHeader); actor != "" {
			c.Set(string(actorIDKey), actor)
		}
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user's ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}

	actor, ok := actorVal.(string)
	if !ok {
		return "", false
	}

	return actor, true
}
