package handlers

import (
	"errors"
	"log"

	"academy/internal/money"
	"academy/internal/payments"
	"academy/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler serves the checkout endpoints used by the course page.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers the payment intent route at the router root.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout/create-payment-intent", h.HandleCreatePaymentIntent)
}

// RegisterPriceRoute registers the public price lookup under the API group.
func (h *CheckoutHandler) RegisterPriceRoute(router fiber.Router) {
	router.Get("/checkout/price", h.HandleGetPrice)
}

// HandleCreatePaymentIntent creates a PENDING order and returns the client
// secret the browser needs to confirm payment.
func (h *CheckoutHandler) HandleCreatePaymentIntent(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	res, err := h.service.CreatePaymentIntent(c.UserContext(), req)
	if err != nil {
		var verr *services.ValidationError
		var gwErr *payments.GatewayError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Missing or invalid checkout fields",
				"errors": verr.Fields,
			})
		case errors.As(err, &gwErr):
			log.Printf("Payment gateway error during checkout: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Payment provider unavailable, please try again",
			})
		default:
			log.Printf("Checkout failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not start checkout",
			})
		}
	}

	return c.JSON(res)
}

// HandleGetPrice returns the flat course price.
func (h *CheckoutHandler) HandleGetPrice(c *fiber.Ctx) error {
	p := h.service.Pricing()
	return c.JSON(fiber.Map{
		"amount":    p.AmountCents,
		"currency":  p.Currency,
		"formatted": money.Format(p.AmountCents, p.Currency),
	})
}
