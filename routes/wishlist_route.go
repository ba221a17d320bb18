package routes

import (
	"github.com/gofiber/fiber/v2"

	wishlistController "github.com/Devprashant05/Paanshala-sub000/controllers/wishlist"
	"github.com/Devprashant05/Paanshala-sub000/middlewares"
)

func WishlistRoutes(app *fiber.App, ctl *wishlistController.Controller, jwtSecret string) {
	auth := middlewares.Auth(jwtSecret)
	app.Post("/api/wishlist/toggle", auth, ctl.Toggle)
	app.Get("/api/wishlist", auth, ctl.List)
}
