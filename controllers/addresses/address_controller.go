package addressController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Devprashant05/Paanshala-sub000/models"
	"github.com/Devprashant05/Paanshala-sub000/repositories"
	"github.com/Devprashant05/Paanshala-sub000/responses"
)

var validate = validator.New()

type Controller struct {
	Addresses *repositories.AddressRepo
}

func New(addresses *repositories.AddressRepo) *Controller {
	return &Controller{Addresses: addresses}
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

// List returns the caller's address book. GET /api/addresses
func (ctl *Controller) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	addresses, err := ctl.Addresses.ListByUser(ctx, userObjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch addresses",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Addresses fetched successfully",
		Result:  &fiber.Map{"addresses": addresses},
	})
}

// Create adds an address. POST /api/addresses
func (ctl *Controller) Create(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := validate.Struct(address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	address.Id = primitive.NilObjectID
	address.UserId = userObjectID
	if address.IsDefault {
		if err := ctl.Addresses.ClearDefault(ctx, userObjectID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update default address",
			})
		}
	}

	id, err := ctl.Addresses.Insert(ctx, &address)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create address",
		})
	}
	address.Id = id

	return c.Status(fiber.StatusCreated).JSON(responses.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Address created successfully",
		Result:  &fiber.Map{"address": address},
	})
}

// Update edits one of the caller's addresses. PUT /api/addresses/:id
func (ctl *Controller) Update(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	addressID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid address ID format",
		})
	}

	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := validate.Struct(address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	address.Id = addressID
	address.UserId = userObjectID
	if address.IsDefault {
		if err := ctl.Addresses.ClearDefault(ctx, userObjectID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update default address",
			})
		}
	}

	updated, err := ctl.Addresses.Update(ctx, &address)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update address",
		})
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Address not found or doesn't belong to user",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Address updated successfully",
		Result:  &fiber.Map{"address": address},
	})
}

// Delete removes one of the caller's addresses. DELETE /api/addresses/:id
func (ctl *Controller) Delete(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserId(c)
	if !ok {
		return unauthorized(c)
	}

	addressID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid address ID format",
		})
	}

	deleted, err := ctl.Addresses.Delete(ctx, addressID, userObjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete address",
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Address not found or doesn't belong to user",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Address deleted successfully",
	})
}
