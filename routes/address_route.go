package routes

import (
	"github.com/gofiber/fiber/v2"

	addressController "github.com/Devprashant05/Paanshala-sub000/controllers/addresses"
	"github.com/Devprashant05/Paanshala-sub000/middlewares"
)

func AddressRoutes(app *fiber.App, ctl *addressController.Controller, jwtSecret string) {
	auth := middlewares.Auth(jwtSecret)
	app.Get("/api/addresses", auth, ctl.List)
	app.Post("/api/addresses", auth, ctl.Create)
	app.Put("/api/addresses/:id", auth, ctl.Update)
	app.Delete("/api/addresses/:id", auth, ctl.Delete)
}
