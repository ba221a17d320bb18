package cartController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Devprashant05/Paanshala-sub000/models"
	"github.com/Devprashant05/Paanshala-sub000/repositories"
	"github.com/Devprashant05/Paanshala-sub000/responses"
	"github.com/Devprashant05/Paanshala-sub000/services"
)

var validate = validator.New()

type Controller struct {
	Carts    *repositories.CartRepo
	Products *repositories.ProductRepo
	Coupons  *repositories.CouponRepo
}

func New(carts *repositories.CartRepo, products *repositories.ProductRepo, coupons *repositories.CouponRepo) *Controller {
	return &Controller{Carts: carts, Products: products, Coupons: coupons}
}

func currentUserId(c *fiber.Ctx) (primitive.ObjectID, bool) {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
		Status:  fiber.StatusUnauthorized,
		Message: "User ID not found in token",
	})
}

type AddToCartRequest struct {
	ProductID string `json:"id" validate:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (ctl *Controller) AddToCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID format",
		})
	}

	product, err := ctl.Products.FindById(ctx, productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching product details",
		})
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product not found",
		})
	}

	cart, err := ctl.Carts.FindByUser(ctx, userObjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching cart",
		})
	}
	if cart == nil {
		cart = &models.Cart{UserId: userObjectID}
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductId == productID && cart.Items[i].Size == req.Size {
			cart.Items[i].Quantity += req.Quantity
			cart.Items[i].TotalPrice = cart.Items[i].UnitPrice * float64(cart.Items[i].Quantity)
			found = true
			break
		}
	}
	if !found {
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductId:  productID,
			Name:       product.Name,
			Image:      image,
			Size:       req.Size,
			Quantity:   req.Quantity,
			UnitPrice:  product.Price,
			TotalPrice: product.Price * float64(req.Quantity),
		})
	}

	ctl.revalidateCoupon(ctx, userObjectID, cart)
	services.Reprice(cart)

	if err := ctl.Carts.Save(ctx, cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update cart",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Successfully added to cart",
		Result:  &fiber.Map{"cart": cart},
	})
}

type CartLineRequest struct {
	ProductID string `json:"id" validate:"required"`
	Size      string `json:"size"`
}

func (ctl *Controller) DecrementFromCart(c *fiber.Ctx) error {
	return ctl.mutateLine(c, func(cart *models.Cart, i int) {
		if cart.Items[i].Quantity > 1 {
			cart.Items[i].Quantity--
			cart.Items[i].TotalPrice = cart.Items[i].UnitPrice * float64(cart.Items[i].Quantity)
		} else {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		}
	}, "Successfully decremented item")
}

func (ctl *Controller) RemoveFromCart(c *fiber.Ctx) error {
	return ctl.mutateLine(c, func(cart *models.Cart, i int) {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	}, "Successfully removed from cart")
}

func (ctl *Controller) mutateLine(c *fiber.Ctx, mutate func(cart *models.Cart, i int), successMsg string) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	var req CartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID format",
		})
	}

	cart, err := ctl.Carts.FindByUser(ctx, userObjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching cart",
		})
	}
	if cart == nil || len(cart.Items) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Cart is empty",
		})
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductId == productID && cart.Items[i].Size == req.Size {
			mutate(cart, i)
			found = true
			break
		}
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Item not found in cart",
		})
	}

	ctl.revalidateCoupon(ctx, userObjectID, cart)
	services.Reprice(cart)

	if err := ctl.Carts.Save(ctx, cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update cart",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: successMsg,
		Result:  &fiber.Map{"cart": cart},
	})
}

func (ctl *Controller) GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	cart, err := ctl.Carts.FindByUser(ctx, userObjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching cart",
		})
	}
	if cart == nil {
		cart = &models.Cart{UserId: userObjectID, Items: []models.CartItem{}}
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Successfully fetched cart",
		Result:  &fiber.Map{"cart": cart},
	})
}

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

func (ctl *Controller) ApplyCoupon(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	var req ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	cart, err := ctl.Carts.FindByUser(ctx, userObjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching cart",
		})
	}
	if cart == nil || len(cart.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Cart is empty",
		})
	}

	coupon, err := ctl.Coupons.FindByCode(ctx, services.NormalizeCouponCode(req.Code))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching coupon",
		})
	}
	if coupon == nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Coupon not found",
		})
	}

	userUsage, err := ctl.Coupons.UserUsageCount(ctx, coupon.Id, userObjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error checking coupon usage",
		})
	}

	subtotal := services.Subtotal(cart.Items)
	if err := services.CheckCouponUsable(coupon, subtotal, userUsage, time.Now()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	cart.Coupon = &models.AppliedCoupon{
		CouponId: coupon.Id,
		Code:     coupon.Code,
		Discount: services.CouponDiscount(coupon, subtotal),
	}
	services.Reprice(cart)

	if err := ctl.Carts.Save(ctx, cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update cart",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupon applied successfully",
		Result:  &fiber.Map{"cart": cart},
	})
}

func (ctl *Controller) RemoveCoupon(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	cart, err := ctl.Carts.FindByUser(ctx, userObjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching cart",
		})
	}
	if cart == nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Cart not found",
		})
	}

	cart.Coupon = nil
	services.Reprice(cart)

	if err := ctl.Carts.Save(ctx, cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update cart",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupon removed successfully",
		Result:  &fiber.Map{"cart": cart},
	})
}

// revalidateCoupon re-checks an applied coupon after the items change,
// dropping it when it is no longer eligible and refreshing its
// discount otherwise.
func (ctl *Controller) revalidateCoupon(ctx context.Context, userId primitive.ObjectID, cart *models.Cart) {
	if cart.Coupon == nil {
		return
	}

	coupon, err := ctl.Coupons.FindById(ctx, cart.Coupon.CouponId)
	if err != nil || coupon == nil {
		cart.Coupon = nil
		return
	}
	userUsage, err := ctl.Coupons.UserUsageCount(ctx, coupon.Id, userId)
	if err != nil {
		cart.Coupon = nil
		return
	}

	subtotal := services.Subtotal(cart.Items)
	if services.CheckCouponUsable(coupon, subtotal, userUsage, time.Now()) != nil {
		cart.Coupon = nil
		return
	}
	cart.Coupon.Discount = services.CouponDiscount(coupon, subtotal)
}
