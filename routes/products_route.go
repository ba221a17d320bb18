package routes

import (
	"github.com/gofiber/fiber/v2"

	productController "github.com/Devprashant05/Paanshala-sub000/controllers/products"
	"github.com/Devprashant05/Paanshala-sub000/middlewares"
)

func ProductRoutes(app *fiber.App, ctl *productController.Controller, jwtSecret string) {
	app.Get("/api/products", ctl.List)
	app.Get("/api/products/:id", ctl.GetById)
	app.Get("/api/products/:id/reviews", ctl.ListReviews)
	app.Post("/api/products/:id/reviews", middlewares.Auth(jwtSecret), ctl.AddReview)

	app.Post("/api/admin/products", middlewares.Auth(jwtSecret), middlewares.AdminOnly(), ctl.Create)
	app.Put("/api/admin/products/:id", middlewares.Auth(jwtSecret), middlewares.AdminOnly(), ctl.Update)
	app.Delete("/api/admin/products/:id", middlewares.Auth(jwtSecret), middlewares.AdminOnly(), ctl.Delete)
}
