package routes

import (
	authapi "vividmedi-backend/internal/api/auth"
	billingapi "vividmedi-backend/internal/api/billing"
	generateapi "vividmedi-backend/internal/api/generate"
	stripewebhooks "vividmedi-backend/internal/api/stripewebhook"
	usersapi "vividmedi-backend/internal/api/users"
	"vividmedi-backend/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Deps carries the constructed handlers into route registration; nothing
// here reaches for globals.
type Deps struct {
	Auth     *authapi.Handler
	Users    *usersapi.Handler
	Billing  *billingapi.Handler
	Generate *generateapi.Handler
	Webhook  *stripewebhooks.Handler

	Actor gin.HandlerFunc
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// The webhook verifies its own signature over the raw body; it must
	// see neither the sanitizer nor the actor resolver.
	r.POST("/api/stripe/webhook", d.Webhook.HandleWebhook)

	r.GET("/health", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/_ping", func(c *gin.Context) { c.String(200, "pong") })

	api := r.Group("/", d.Actor)

	api.GET("/api/session", d.Users.EnsureSession)
	api.GET("/api/me", d.Users.Me)

	api.GET("/auth/google", d.Auth.GoogleStart)
	api.GET("/auth/google/callback", d.Auth.GoogleCallback)
	api.POST("/auth/logout", d.Auth.Logout)

	// Multipart upload; stays outside the JSON sanitizer.
	api.POST("/api/transcribe", d.Generate.Transcribe)

	public := api.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/auth/google", d.Auth.GoogleSignIn)
	public.POST("/api/generate", d.Generate.Generate)
	public.POST("/api/consult", d.Generate.Consult)

	authed := api.Group("/")
	authed.Use(middleware.RequireUser())
	authed.POST("/api/stripe/create-checkout-session", d.Billing.CreateCheckoutSession)
}
