package routes

import (
	"github.com/gofiber/fiber/v2"

	cartController "github.com/Devprashant05/Paanshala-sub000/controllers/cart"
	"github.com/Devprashant05/Paanshala-sub000/middlewares"
)

func CartRoutes(app *fiber.App, ctl *cartController.Controller, jwtSecret string) {
	auth := middlewares.Auth(jwtSecret)
	app.Get("/api/cart", auth, ctl.GetCart)
	app.Post("/api/cart/add", auth, ctl.AddToCart)
	app.Post("/api/cart/decrement", auth, ctl.DecrementFromCart)
	app.Post("/api/cart/remove", auth, ctl.RemoveFromCart)
	app.Post("/api/cart/apply-coupon", auth, ctl.ApplyCoupon)
	app.Post("/api/cart/remove-coupon", auth, ctl.RemoveCoupon)
}
