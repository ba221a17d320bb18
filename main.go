package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Devprashant05/Paanshala-sub000/configs"
	addressController "github.com/Devprashant05/Paanshala-sub000/controllers/addresses"
	authController "github.com/Devprashant05/Paanshala-sub000/controllers/auth"
	cartController "github.com/Devprashant05/Paanshala-sub000/controllers/cart"
	couponController "github.com/Devprashant05/Paanshala-sub000/controllers/coupons"
	orderController "github.com/Devprashant05/Paanshala-sub000/controllers/orders"
	productController "github.com/Devprashant05/Paanshala-sub000/controllers/products"
	wishlistController "github.com/Devprashant05/Paanshala-sub000/controllers/wishlist"
	"github.com/Devprashant05/Paanshala-sub000/repositories"
	"github.com/Devprashant05/Paanshala-sub000/routes"
	"github.com/Devprashant05/Paanshala-sub000/services"
)

func main() {
	configs.LoadEnv()

	client, err := configs.ConnectDB(configs.EnvMongoURI())
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	users := repositories.NewUserRepo(configs.GetCollection(client, "users"))
	products := repositories.NewProductRepo(configs.GetCollection(client, "products"))
	addresses := repositories.NewAddressRepo(configs.GetCollection(client, "addresses"))
	carts := repositories.NewCartRepo(configs.GetCollection(client, "carts"))
	coupons := repositories.NewCouponRepo(
		configs.GetCollection(client, "coupons"),
		configs.GetCollection(client, "coupon_usages"),
	)
	orders := repositories.NewOrderRepo(configs.GetCollection(client, "orders"))
	sequences := repositories.NewSequenceRepo(configs.GetCollection(client, "counters"))
	reviews := repositories.NewReviewRepo(configs.GetCollection(client, "reviews"))

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndex()
	for _, ensure := range []func(context.Context) error{
		users.EnsureIndexes, carts.EnsureIndexes, coupons.EnsureIndexes, reviews.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			log.Fatalf("ensure indexes: %v", err)
		}
	}

	gateway := services.NewRazorpayGateway(configs.EnvRazorpayKeyId(), configs.EnvRazorpayKeySecret())

	var storage services.BlobStorage
	if url := configs.EnvCloudinaryURL(); url != "" {
		cloudinaryStorage, err := services.NewCloudinaryStorage(url)
		if err != nil {
			log.Fatalf("cloudinary init: %v", err)
		}
		storage = cloudinaryStorage
	} else {
		log.Println("CLOUDINARY_URL not set, invoice uploads disabled")
	}

	smtpPort, err := strconv.Atoi(configs.EnvSMTPPort())
	if err != nil {
		smtpPort = 587
	}
	mailer := &services.SMTPSender{
		Host:     configs.EnvSMTPHost(),
		Port:     smtpPort,
		Username: configs.EnvSMTPUser(),
		Password: configs.EnvSMTPPassword(),
		From:     configs.EnvMailFrom(),
	}

	orderService := &services.OrderService{
		Carts:     carts,
		Addresses: addresses,
		Orders:    orders,
		Sequences: sequences,
		Usages:    coupons,
		Users:     users,
		Gateway:   gateway,
		Invoices:  &services.PDFInvoiceGenerator{},
		Storage:   storage,
		Mailer:    mailer,
	}

	reviewService := &services.ReviewService{Reviews: reviews, Products: products}

	jwtSecret := configs.EnvJWTSecret()
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	routes.AuthRoutes(app, authController.New(users, jwtSecret), jwtSecret)
	routes.ProductRoutes(app, productController.New(products, reviews, users, reviewService), jwtSecret)
	routes.AddressRoutes(app, addressController.New(addresses), jwtSecret)
	routes.CartRoutes(app, cartController.New(carts, products, coupons), jwtSecret)
	routes.CouponRoutes(app, couponController.New(coupons), jwtSecret)
	routes.OrderRoutes(app, orderController.New(orderService, orders), jwtSecret)
	routes.WishlistRoutes(app, wishlistController.New(users, products), jwtSecret)

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		log.Println("shutting down")
		_ = app.ShutdownWithTimeout(15 * time.Second)
	}()

	if err := app.Listen(":" + configs.EnvPort()); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
