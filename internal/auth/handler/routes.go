package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/generate-key", h.GenerateKey)
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Post("/logout", h.Logout)
	app.Get("/protected", h.Protected)
	app.Get("/get-user-id", h.GetUserID)
	app.Post("/additional-data", h.AdditionalData)
}
