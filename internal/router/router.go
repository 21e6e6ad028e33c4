package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/sasank-in/skin-disease/internal/assistant"
	"github.com/sasank-in/skin-disease/internal/auth"
	"github.com/sasank-in/skin-disease/internal/classifier"
	"github.com/sasank-in/skin-disease/internal/config"
	"github.com/sasank-in/skin-disease/internal/handler"
	"github.com/sasank-in/skin-disease/internal/listing"
	"github.com/sasank-in/skin-disease/internal/middleware"
	"github.com/sasank-in/skin-disease/web"
)

// Deps are the long-lived services built once in main.
type Deps struct {
	Config     *config.Config
	DB         *gorm.DB
	Hasher     *auth.Hasher
	Tokens     *auth.Tokens
	Classifier *classifier.Service
	Assistant  *assistant.Service
	Scraper    listing.Scraper
}

// SetupRouter configures the gin engine, templates, static assets and routes.
// The returned handler applies form method override before routing.
func SetupRouter(d Deps) (http.Handler, error) {
	cfg := d.Config
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestLog())
	// preflight requests never match a route, so CORS sits on the engine
	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	maxUpload := cfg.Server.UploadMaxMiB
	if maxUpload <= 0 {
		maxUpload = 10
	}

	app := r.Group("")
	app.Use(
		middleware.LimitBodySize(maxUpload<<20),
		middleware.DBSession(d.DB),
		middleware.LoadUser(d.Tokens, d.DB),
	)

	app.GET("/", handler.Index)
	app.GET("/remedy", handler.Remedy)
	app.GET("/health", handler.Health)

	app.POST("/predict", handler.NewPredictHandler(d.Classifier).Predict)
	app.POST("/feedback", handler.NewFeedbackHandler(d.DB).Submit)

	assistantHandler := handler.NewAssistantHandler(d.Assistant)
	app.GET("/assistant", assistantHandler.Page)
	app.POST("/assistant", assistantHandler.Submit)

	specialistHandler := handler.NewSpecialistHandler(d.Scraper)
	app.GET("/specialist", specialistHandler.Search)
	app.POST("/specialist", specialistHandler.Search)

	authHandler := handler.NewAuthHandler(d.DB, d.Hasher, d.Tokens, cfg.Auth.CookieSecure)
	app.GET("/login", authHandler.LoginPage)
	app.POST("/login", authHandler.Login)
	app.GET("/signup", authHandler.SignupPage)
	app.POST("/signup", authHandler.Signup)
	app.POST("/logout", authHandler.Logout)

	adminHandler := handler.NewAdminHandler(d.DB)
	app.GET("/admin", middleware.RequireLogin(), middleware.RequireAdminPage(), adminHandler.Page)

	// ====== API ======
	api := app.Group("/api")

	api.GET("/me", middleware.RequireAPIUser(), handler.GetMe)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAPIAdmin())
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/role", adminHandler.ChangeRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	exportHandler := handler.NewExportHandler(d.DB)
	admin.GET("/feedback/export.csv", exportHandler.ExportCSV)
	admin.GET("/feedback/export.xlsx", exportHandler.ExportXLSX)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(middleware.LoadUser(d.Tokens, d.DB), handler.NotFound)

	return middleware.MethodOverride(r), nil
}
