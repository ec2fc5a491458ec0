package server

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"freelancehub/internal/config"
	"freelancehub/internal/flash"
	"freelancehub/internal/handlers"
	"freelancehub/internal/middleware"
)

// Deps is the application context built once at startup; every handler gets
// what it needs from here instead of reaching for globals.
type Deps struct {
	DB    *gorm.DB
	Cfg   config.Config
	Flash flash.Store
}

func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     d.Cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	authH := &handlers.AuthHandler{
		DB:        d.DB,
		JWTSecret: d.Cfg.JWTSecret,
		Expires:   d.Cfg.JWTExpiresMin,
		Flash:     d.Flash,
	}
	projectH := handlers.NewProjectHandler(d.DB, d.Flash)
	reviewH := handlers.NewReviewHandler(d.DB, d.Flash)
	chatH := handlers.NewChatHandler(d.DB)

	googleH := &handlers.GoogleOAuthHandler{
		DB:              d.DB,
		JWTSecret:       d.Cfg.JWTSecret,
		Expires:         d.Cfg.JWTExpiresMin,
		GoogleClientID:  d.Cfg.GoogleClientID,
		GoogleSecret:    d.Cfg.GoogleSecret,
		GoogleRedirect:  d.Cfg.GoogleRedirect,
		FrontendBaseURL: d.Cfg.FrontendBaseURL,
	}

	// public
	app.Get("/", projectH.Home)
	app.Get("/register", authH.RegisterPage)
	app.Post("/register", authH.Register)
	app.Get("/login", authH.LoginPage)
	app.Post("/login", authH.Login)
	app.Get("/logout", authH.Logout)
	app.Get("/search_projects", projectH.Search)
	app.Get("/freelancers/:id/reviews", reviewH.FreelancerReviews)
	app.Get("/auth/google/start", googleH.GoogleStart)
	app.Get("/auth/google/callback", googleH.GoogleCallback)

	// session-guarded routes; middleware attached per route so unmatched
	// paths still fall through to the 404 handler below
	requireAuth := middleware.JWTFromCookie(d.Cfg.JWTSecret)
	attachUser := middleware.AttachJWTLocals()

	app.Get("/me", requireAuth, attachUser, authH.Me)
	app.Get("/dashboard", requireAuth, attachUser, projectH.Dashboard)
	app.Get("/post_project", requireAuth, attachUser, projectH.PostProjectPage)
	app.Post("/post_project", requireAuth, attachUser, projectH.PostProject)
	app.Get("/leave_review/:freelancer_id/:project_id", requireAuth, attachUser, reviewH.LeaveReviewPage)
	app.Post("/leave_review/:freelancer_id/:project_id", requireAuth, attachUser, reviewH.LeaveReview)
	app.Get("/chat", requireAuth, attachUser, chatH.Conversations)
	app.Get("/chat/:user_id", requireAuth, attachUser, chatH.Chat)
	app.Post("/chat/:user_id", requireAuth, attachUser, chatH.SendMessage)

	app.Use(notFound)

	return app
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": "Page not found",
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong on our side"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		if code != fiber.StatusInternalServerError {
			message = e.Message
		}
	}

	if code == fiber.StatusInternalServerError {
		log.Println("Server error:", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
