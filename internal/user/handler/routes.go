package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, auth *AuthHandler, users *UserHandler, requireAuth fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	api.Post("/auth/register", auth.Register)
	api.Post("/auth/login", auth.Login)
	api.Post("/auth/reset-password", auth.ResetPassword)
	api.Post("/auth/logout", requireAuth, auth.Logout)

	u := api.Group("/users", requireAuth)
	// Fixed paths must be mounted before the :id wildcard.
	u.Get("/profile", users.GetProfile)
	u.Put("/profile", users.UpdateProfile)
	u.Get("/activity", users.Activity)
	u.Get("/stats", users.Stats)
	u.Get("/", users.List)
	u.Post("/", users.Create)
	u.Get("/:id", users.Get)
	u.Put("/:id", users.Update)
	u.Delete("/:id", users.Delete)
}
