package orderController

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Devprashant05/Paanshala-sub000/repositories"
	"github.com/Devprashant05/Paanshala-sub000/responses"
	"github.com/Devprashant05/Paanshala-sub000/services"
)

var validate = validator.New()

type Controller struct {
	Service *services.OrderService
	Orders  *repositories.OrderRepo
}

func New(service *services.OrderService, orders *repositories.OrderRepo) *Controller {
	return &Controller{Service: service, Orders: orders}
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

// CreatePayment opens a provider payment intent for the cart's current
// total. POST /api/orders/create-payment
func (ctl *Controller) CreatePayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	intent, err := ctl.Service.CreatePaymentIntent(ctx, userObjectID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Cart is empty",
			})
		case errors.Is(err, services.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Cart total must be greater than zero",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to create payment order",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment order created successfully",
		Result: &fiber.Map{
			"providerOrderId": intent.ProviderOrderId,
			"amount":          intent.Amount,
			"currency":        intent.Currency,
			"keyId":           intent.KeyId,
		},
	})
}

type VerifyPaymentRequest struct {
	ProviderOrderID   string `json:"providerOrderId" validate:"required"`
	ProviderPaymentID string `json:"providerPaymentId" validate:"required"`
	Signature         string `json:"signature" validate:"required"`
	BillingAddressID  string `json:"billingAddressId" validate:"required"`
	ShippingAddressID string `json:"shippingAddressId" validate:"required"`
}

// VerifyPayment checks the payment signature and materializes the
// order. POST /api/orders/verify
func (ctl *Controller) VerifyPayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	var req VerifyPaymentRequest
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

	billingID, err := primitive.ObjectIDFromHex(req.BillingAddressID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid billing address ID format",
		})
	}
	shippingID, err := primitive.ObjectIDFromHex(req.ShippingAddressID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid shipping address ID format",
		})
	}

	order, warnings, err := ctl.Service.PlaceOrder(ctx, userObjectID, services.PlaceOrderRequest{
		ProviderOrderId:   req.ProviderOrderID,
		ProviderPaymentId: req.ProviderPaymentID,
		Signature:         req.Signature,
		BillingAddressId:  billingID,
		ShippingAddressId: shippingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentVerificationFailed):
			// No detail about why; the client only learns that
			// verification failed.
			return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Payment verification failed",
			})
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Cart is empty",
			})
		case errors.Is(err, services.ErrInvalidAddress):
			return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Address not found or doesn't belong to user",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to place order",
			})
		}
	}

	result := fiber.Map{"order": order}
	if len(warnings) > 0 {
		result["warnings"] = warnings
	}
	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Order placed successfully",
		Result:  &result,
	})
}

// GetMyOrders lists the caller's orders. GET /api/orders/my
func (ctl *Controller) GetMyOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	page, limit := pagination(c)
	orders, total, err := ctl.Orders.ListByUser(ctx, userObjectID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch orders",
		})
	}

	totalPages := (total + limit - 1) / limit
	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result: &fiber.Map{
			"orders":      orders,
			"currentPage": page,
			"totalPages":  totalPages,
			"totalOrders": total,
		},
	})
}

// GetOrderById returns one of the caller's orders. GET /api/orders/:id
func (ctl *Controller) GetOrderById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order ID format",
		})
	}

	order, err := ctl.Orders.FindByIdForUser(ctx, orderID, userObjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch order",
		})
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Order not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Order fetched successfully",
		Result:  &fiber.Map{"order": order},
	})
}

// ListOrders is the admin listing across users, optionally filtered by
// status. GET /api/admin/orders
func (ctl *Controller) ListOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	status := c.Query("status", "")
	if status != "" && !services.IsOrderStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Unknown order status",
		})
	}

	page, limit := pagination(c)
	orders, total, err := ctl.Orders.List(ctx, status, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch orders",
		})
	}

	totalPages := (total + limit - 1) / limit
	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result: &fiber.Map{
			"orders":      orders,
			"currentPage": page,
			"totalPages":  totalPages,
			"totalOrders": total,
		},
	})
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus applies one fulfillment transition.
// PATCH /api/admin/orders/status/:id
func (ctl *Controller) UpdateStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order ID format",
		})
	}

	var req UpdateStatusRequest
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
	if !services.IsOrderStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Unknown order status",
		})
	}

	order, err := ctl.Service.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		var transitionErr *services.InvalidTransitionError
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
			})
		case errors.As(err, &transitionErr):
			return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: transitionErr.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update order status",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Order status updated successfully",
		Result:  &fiber.Map{"order": order},
	})
}

// SalesReport returns the aggregated sales summary.
// GET /api/admin/reports/sales
func (ctl *Controller) SalesReport(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	summary, err := ctl.Orders.SalesSummary(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to build sales report",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Sales report built successfully",
		Result:  &fiber.Map{"summary": summary},
	})
}

func pagination(c *fiber.Ctx) (int64, int64) {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}
