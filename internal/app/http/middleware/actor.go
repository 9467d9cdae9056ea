package middleware

import (
	"vividmedi-backend/internal/actor"
	"vividmedi-backend/internal/domain/usage"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// WithActor resolves the request's actor once and stashes it in the gin
// context. Resolution never fails — an unauthenticated request becomes a
// guest — so this middleware never aborts.
func WithActor(r *actor.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(actorKey, r.Resolve(c))
		c.Next()
	}
}

// CurrentActor returns the actor resolved by WithActor. Routes without the
// middleware read as a blank guest.
func CurrentActor(c *gin.Context) actor.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(actor.Actor); ok {
			return a
		}
	}
	return actor.Actor{Kind: usage.ActorGuest}
}
