package handlers

import (
	"errors"
	"log"

	"academy/internal/payments"
	"academy/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WebhookHandler receives payment processor callbacks.
type WebhookHandler struct {
	service *services.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(service *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

// RegisterRoutes registers the webhook route at the router root.
func (h *WebhookHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/payments/webhook", h.HandleWebhook)
}

// HandleWebhook verifies the signature over the raw body and applies the
// event. A non-2xx answer makes the processor redeliver.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	// Fiber reuses the body buffer after the handler returns.
	payload := append([]byte(nil), c.Body()...)
	signature := c.Get(payments.SignatureHeader)

	err := h.service.HandleWebhook(c.UserContext(), payload, signature)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"received": true})
	case errors.Is(err, payments.ErrSignatureVerification):
		log.Printf("Rejected webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Webhook signature verification failed",
		})
	case errors.Is(err, payments.ErrMalformedEvent):
		log.Printf("Rejected webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Malformed webhook event",
		})
	default:
		log.Printf("Webhook processing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Webhook processing failed",
		})
	}
}
