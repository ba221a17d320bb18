package routes

import (
	"github.com/gofiber/fiber/v2"

	couponController "github.com/Devprashant05/Paanshala-sub000/controllers/coupons"
	"github.com/Devprashant05/Paanshala-sub000/middlewares"
)

func CouponRoutes(app *fiber.App, ctl *couponController.Controller, jwtSecret string) {
	auth := middlewares.Auth(jwtSecret)
	admin := middlewares.AdminOnly()

	app.Get("/api/coupons", auth, ctl.ListActive)

	app.Get("/api/admin/coupons", auth, admin, ctl.ListAll)
	app.Post("/api/admin/coupons", auth, admin, ctl.Create)
	app.Put("/api/admin/coupons/:id", auth, admin, ctl.Update)
	app.Delete("/api/admin/coupons/:id", auth, admin, ctl.Delete)
}
