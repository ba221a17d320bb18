package routes

import (
	"github.com/gofiber/fiber/v2"

	authController "github.com/Devprashant05/Paanshala-sub000/controllers/auth"
	"github.com/Devprashant05/Paanshala-sub000/middlewares"
)

func AuthRoutes(app *fiber.App, ctl *authController.Controller, jwtSecret string) {
	app.Post("/api/auth/register", ctl.Register)
	app.Post("/api/auth/login", ctl.Login)
	app.Get("/api/auth/profile", middlewares.Auth(jwtSecret), ctl.GetProfile)
	app.Put("/api/auth/profile", middlewares.Auth(jwtSecret), ctl.UpdateProfile)
}
