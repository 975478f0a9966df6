package handlers

import (
	"errors"

	"academy/internal/models"
	"academy/internal/repositories"
	"academy/internal/services"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles HTTP requests for courses and webinars.
type EventHandler struct {
	service *services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// RegisterRoutes registers the public catalog routes.
func (h *EventHandler) RegisterRoutes(router fiber.Router) {
	eventRoutes := router.Group("/events")
	eventRoutes.Get("/", h.HandleListEvents)
	eventRoutes.Get("/:slug", h.HandleGetEventBySlug)
}

// RegisterAdminRoutes registers the catalog management routes.
func (h *EventHandler) RegisterAdminRoutes(router fiber.Router) {
	eventRoutes := router.Group("/events")
	eventRoutes.Get("/", h.HandleAdminListEvents)
	eventRoutes.Get("/:id", h.HandleAdminGetEvent)
	eventRoutes.Post("/", h.HandleCreateEvent)
	eventRoutes.Put("/:id", h.HandleUpdateEvent)
	eventRoutes.Delete("/:id", h.HandleDeleteEvent)
}

// HandleListEvents lists published events, optionally filtered by kind and text.
func (h *EventHandler) HandleListEvents(c *fiber.Ctx) error {
	kind := models.EventKind(c.Query("kind"))
	page, err := h.service.ListPublished(c.UserContext(), kind, c.Query("q"), parsePage(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve events")
	}
	return c.JSON(page)
}

func (h *EventHandler) HandleGetEventBySlug(c *fiber.Ctx) error {
	event, err := h.service.GetPublishedBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err, "Event not found")
	}
	return c.JSON(event)
}

func (h *EventHandler) HandleAdminListEvents(c *fiber.Ctx) error {
	page, err := h.service.ListAll(c.UserContext(), parsePage(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve events")
	}
	return c.JSON(page)
}

func (h *EventHandler) HandleAdminGetEvent(c *fiber.Ctx) error {
	event, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Event not found")
	}
	return c.JSON(event)
}

// HandleCreateEvent creates an event. Unknown speaker IDs are a client error.
func (h *EventHandler) HandleCreateEvent(c *fiber.Ctx) error {
	var event models.Event
	if err := c.BodyParser(&event); err != nil {
		return badBody(c, err)
	}
	event.ID = ""

	if err := h.service.CreateEvent(c.UserContext(), &event); err != nil {
		if errors.Is(err, repositories.ErrSpeakerNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Unknown speaker",
				"error":   err.Error(),
			})
		}
		return respondError(c, err, "Could not create event")
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *EventHandler) HandleUpdateEvent(c *fiber.Ctx) error {
	var event models.Event
	if err := c.BodyParser(&event); err != nil {
		return badBody(c, err)
	}

	if err := h.service.UpdateEvent(c.UserContext(), c.Params("id"), &event); err != nil {
		if errors.Is(err, repositories.ErrSpeakerNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Unknown speaker",
				"error":   err.Error(),
			})
		}
		return respondError(c, err, "Could not update event")
	}
	return c.JSON(event)
}

func (h *EventHandler) HandleDeleteEvent(c *fiber.Ctx) error {
	if err := h.service.DeleteEvent(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete event")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
