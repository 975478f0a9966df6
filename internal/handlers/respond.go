package handlers

import (
	"errors"
	"log"

	"academy/internal/models"
	"academy/internal/repositories"
	"academy/internal/services"

	"github.com/gofiber/fiber/v2"
)

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrEventNotFound) ||
		errors.Is(err, repositories.ErrSpeakerNotFound) ||
		errors.Is(err, repositories.ErrTestimonialNotFound) ||
		errors.Is(err, repositories.ErrOrderNotFound)
}

// respondError maps a service error to the admin/content response shape.
func respondError(c *fiber.Ctx, err error, message string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case isNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	case errors.Is(err, repositories.ErrDuplicateSlug):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func badBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func parsePage(c *fiber.Ctx) models.Page {
	return models.Page{
		Number: c.QueryInt("page", 1),
		Size:   c.QueryInt("limit", models.DefaultPageSize),
	}
}
