package responses

import "github.com/gofiber/fiber/v2"

// ApiResponse is the envelope every handler returns.
type ApiResponse struct {
	Status  int        `json:"status"`
	Message string     `json:"message"`
	Result  *fiber.Map `json:"result"`
}
