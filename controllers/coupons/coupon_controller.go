package couponController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Devprashant05/Paanshala-sub000/models"
	"github.com/Devprashant05/Paanshala-sub000/repositories"
	"github.com/Devprashant05/Paanshala-sub000/responses"
	"github.com/Devprashant05/Paanshala-sub000/services"
)

var validate = validator.New()

type Controller struct {
	Coupons *repositories.CouponRepo
}

func New(coupons *repositories.CouponRepo) *Controller {
	return &Controller{Coupons: coupons}
}

// ListActive is the storefront view of currently usable coupons.
// GET /api/coupons
func (ctl *Controller) ListActive(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	coupons, err := ctl.Coupons.List(ctx, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch coupons",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupons fetched successfully",
		Result:  &fiber.Map{"coupons": coupons},
	})
}

// ListAll is the admin view. GET /api/admin/coupons
func (ctl *Controller) ListAll(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	coupons, err := ctl.Coupons.List(ctx, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch coupons",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupons fetched successfully",
		Result:  &fiber.Map{"coupons": coupons},
	})
}

type CouponRequest struct {
	Code          string  `json:"code" validate:"required"`
	DiscountType  string  `json:"discountType" validate:"required,oneof=percentage flat"`
	DiscountValue float64 `json:"discountValue" validate:"required,gt=0"`
	MaxDiscount   float64 `json:"maxDiscount" validate:"gte=0"`
	MinCartValue  float64 `json:"minCartValue" validate:"gte=0"`
	UsageLimit    int     `json:"usageLimit" validate:"gte=0"`
	PerUserLimit  int     `json:"perUserLimit" validate:"gte=1"`
	Active        bool    `json:"active"`
	ExpiresAt     string  `json:"expiresAt" validate:"required"`
}

func (req *CouponRequest) toModel() (*models.Coupon, error) {
	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &models.Coupon{
		Code:          services.NormalizeCouponCode(req.Code),
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MaxDiscount:   req.MaxDiscount,
		MinCartValue:  req.MinCartValue,
		UsageLimit:    req.UsageLimit,
		PerUserLimit:  req.PerUserLimit,
		Active:        req.Active,
		ExpiresAt:     expiresAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Create adds a coupon. POST /api/admin/coupons
func (ctl *Controller) Create(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req CouponRequest
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

	coupon, err := req.toModel()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid expiry timestamp, expected RFC3339",
		})
	}

	id, err := ctl.Coupons.Insert(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(responses.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "A coupon with this code already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create coupon",
		})
	}
	coupon.Id = id

	return c.Status(fiber.StatusCreated).JSON(responses.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Coupon created successfully",
		Result:  &fiber.Map{"coupon": coupon},
	})
}

// Update replaces a coupon's rule fields. PUT /api/admin/coupons/:id
func (ctl *Controller) Update(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	couponID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid coupon ID format",
		})
	}

	var req CouponRequest
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

	coupon, err := req.toModel()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid expiry timestamp, expected RFC3339",
		})
	}
	coupon.Id = couponID

	updated, err := ctl.Coupons.Update(ctx, coupon)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update coupon",
		})
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Coupon not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupon updated successfully",
		Result:  &fiber.Map{"coupon": coupon},
	})
}

// Delete removes a coupon. DELETE /api/admin/coupons/:id
func (ctl *Controller) Delete(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	couponID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid coupon ID format",
		})
	}

	deleted, err := ctl.Coupons.Delete(ctx, couponID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete coupon",
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Coupon not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupon deleted successfully",
	})
}
