package menu

import (
	"log/slog"

	"tastetrip/internal/middleware"
	"tastetrip/internal/models"
	"tastetrip/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// GetMenu handles GET /api/menu. Returns the full catalog, unfiltered and
// unpaginated, in fixed insertion order.
func (s *Server) GetMenu(c *fiber.Ctx) error {
	return c.JSON(s.catalog.Items())
}

// PlaceOrder handles POST /api/order. An empty item list is rejected;
// otherwise the order is accepted unconditionally, logged, and discarded.
// Item ids are not checked against the catalog: the intake accepts unknown
// ids, matching the current contract.
func (s *Server) PlaceOrder(c *fiber.Ctx) error {
	var order models.OrderRequest
	if err := c.BodyParser(&order); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if len(order.Items) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Order cannot be empty."))
	}

	if err := s.validator.Validate(order); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	middleware.Logger.InfoContext(c.UserContext(), "received new order",
		slog.Int("lines", len(order.Items)))
	for _, item := range order.Items {
		middleware.Logger.InfoContext(c.UserContext(), "order line",
			slog.String("item_id", item.ItemID),
			slog.Int("quantity", item.Quantity),
		)
	}

	observability.OrdersReceived.Inc()

	return c.JSON(fiber.Map{
		"message": "Order received successfully!",
	})
}
