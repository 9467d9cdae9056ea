package main

import (
	"log"
	"time"

	"vividmedi-backend/config"
	"vividmedi-backend/database"
	"vividmedi-backend/internal/actor"
	authapi "vividmedi-backend/internal/api/auth"
	billingapi "vividmedi-backend/internal/api/billing"
	generateapi "vividmedi-backend/internal/api/generate"
	stripewebhooks "vividmedi-backend/internal/api/stripewebhook"
	usersapi "vividmedi-backend/internal/api/users"
	routes "vividmedi-backend/internal/app/http"
	"vividmedi-backend/internal/app/http/middleware"
	"vividmedi-backend/internal/auth"
	"vividmedi-backend/internal/billing"
	"vividmedi-backend/internal/entitlement"
	"vividmedi-backend/internal/generation"
	"vividmedi-backend/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	db, err := database.Open(config.DB_URL)
	if err != nil {
		log.Fatal("❌ Failed to open database: ", err)
	}

	userStore := store.NewUserStore(db)
	usageStore := store.NewUsageStore(db)
	sessionStore := store.NewSessionStore(db)

	secret := []byte(config.APP_SECRET_KEY)
	resolver := actor.NewResolver(userStore, sessionStore, secret)
	entitlements := entitlement.NewService(usageStore)

	var verifier auth.IDTokenVerifier
	if config.GOOGLE_CLIENT_ID != "" {
		verifier = auth.NewGoogleVerifier(config.GOOGLE_CLIENT_ID)
	}

	var oauthCfg *oauth2.Config
	if config.GOOGLE_CLIENT_ID != "" && config.GOOGLE_CLIENT_SECRET != "" && config.GOOGLE_REDIRECT_URL != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     config.GOOGLE_CLIENT_ID,
			ClientSecret: config.GOOGLE_CLIENT_SECRET,
			RedirectURL:  config.GOOGLE_REDIRECT_URL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	var provider billing.Provider
	if config.STRIPE_SECRET_KEY != "" {
		provider = billing.NewStripeProvider(config.STRIPE_SECRET_KEY)
	}
	gateway := billing.NewGateway(userStore, provider, config.STRIPE_PRICE_ID_PRO, config.APP_BASE_URL)

	var generator generation.Generator
	if config.DEEPSEEK_API_KEY != "" {
		generator = generation.NewDeepSeekClient(config.DEEPSEEK_API_KEY, config.DEEPSEEK_MODEL, config.DEEPSEEK_URL)
	}

	var transcriber generation.Transcriber
	if config.WHISPER_URL != "" {
		transcriber = generation.NewWhisperClient(config.WHISPER_URL)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Auth: &authapi.Handler{
			Users:            userStore,
			Sessions:         sessionStore,
			Verifier:         verifier,
			Secret:           secret,
			CreatorEmail:     config.CREATOR_EMAIL,
			OAuth:            oauthCfg,
			FrontendRedirect: config.GOOGLE_FRONTEND_REDIRECT,
		},
		Users:    usersapi.NewHandler(entitlements),
		Billing:  billingapi.NewHandler(gateway),
		Generate: generateapi.NewHandler(entitlements, generator, transcriber),
		Webhook:  stripewebhooks.NewHandler(userStore, config.STRIPE_WEBHOOK_SECRET),
		Actor:    middleware.WithActor(resolver),
	})

	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal("❌ Server stopped: ", err)
	}
}
