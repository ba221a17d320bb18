package routes

import (
	"github.com/gofiber/fiber/v2"

	orderController "github.com/Devprashant05/Paanshala-sub000/controllers/orders"
	"github.com/Devprashant05/Paanshala-sub000/middlewares"
)

func OrderRoutes(app *fiber.App, ctl *orderController.Controller, jwtSecret string) {
	auth := middlewares.Auth(jwtSecret)
	admin := middlewares.AdminOnly()

	app.Post("/api/orders/create-payment", auth, ctl.CreatePayment)
	app.Post("/api/orders/verify", auth, ctl.VerifyPayment)
	app.Get("/api/orders/my", auth, ctl.GetMyOrders)
	app.Get("/api/orders/:id", auth, ctl.GetOrderById)

	app.Get("/api/admin/orders", auth, admin, ctl.ListOrders)
	app.Patch("/api/admin/orders/status/:id", auth, admin, ctl.UpdateStatus)
	app.Get("/api/admin/reports/sales", auth, admin, ctl.SalesReport)
}
