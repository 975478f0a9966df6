package handlers

import (
	"academy/internal/models"
	"academy/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SpeakerHandler handles HTTP requests for speakers.
type SpeakerHandler struct {
	service *services.SpeakerService
}

// NewSpeakerHandler creates a new SpeakerHandler.
func NewSpeakerHandler(service *services.SpeakerService) *SpeakerHandler {
	return &SpeakerHandler{service: service}
}

func (h *SpeakerHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/speakers", h.HandleGetSpeakers)
}

func (h *SpeakerHandler) RegisterAdminRoutes(router fiber.Router) {
	speakerRoutes := router.Group("/speakers")
	speakerRoutes.Get("/", h.HandleGetSpeakers)
	speakerRoutes.Get("/:id", h.HandleGetSpeaker)
	speakerRoutes.Post("/", h.HandleCreateSpeaker)
	speakerRoutes.Put("/:id", h.HandleUpdateSpeaker)
	speakerRoutes.Delete("/:id", h.HandleDeleteSpeaker)
}

func (h *SpeakerHandler) HandleGetSpeakers(c *fiber.Ctx) error {
	speakers, err := h.service.GetAllSpeakers(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not retrieve speakers")
	}
	return c.JSON(speakers)
}

func (h *SpeakerHandler) HandleGetSpeaker(c *fiber.Ctx) error {
	speaker, err := h.service.GetSpeakerByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Speaker not found")
	}
	return c.JSON(speaker)
}

func (h *SpeakerHandler) HandleCreateSpeaker(c *fiber.Ctx) error {
	var speaker models.Speaker
	if err := c.BodyParser(&speaker); err != nil {
		return badBody(c, err)
	}
	speaker.ID = ""
	if err := h.service.CreateSpeaker(c.UserContext(), &speaker); err != nil {
		return respondError(c, err, "Could not create speaker")
	}
	return c.Status(fiber.StatusCreated).JSON(speaker)
}

func (h *SpeakerHandler) HandleUpdateSpeaker(c *fiber.Ctx) error {
	var speaker models.Speaker
	if err := c.BodyParser(&speaker); err != nil {
		return badBody(c, err)
	}
	if err := h.service.UpdateSpeaker(c.UserContext(), c.Params("id"), &speaker); err != nil {
		return respondError(c, err, "Could not update speaker")
	}
	return c.JSON(speaker)
}

func (h *SpeakerHandler) HandleDeleteSpeaker(c *fiber.Ctx) error {
	if err := h.service.DeleteSpeaker(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete speaker")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TestimonialHandler handles HTTP requests for testimonials.
type TestimonialHandler struct {
	service *services.TestimonialService
}

// NewTestimonialHandler creates a new TestimonialHandler.
func NewTestimonialHandler(service *services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{service: service}
}

func (h *TestimonialHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/testimonials", h.HandleGetPublished)
}

func (h *TestimonialHandler) RegisterAdminRoutes(router fiber.Router) {
	testimonialRoutes := router.Group("/testimonials")
	testimonialRoutes.Get("/", h.HandleGetAll)
	testimonialRoutes.Get("/:id", h.HandleGetTestimonial)
	testimonialRoutes.Post("/", h.HandleCreateTestimonial)
	testimonialRoutes.Put("/:id", h.HandleUpdateTestimonial)
	testimonialRoutes.Delete("/:id", h.HandleDeleteTestimonial)
}

func (h *TestimonialHandler) HandleGetPublished(c *fiber.Ctx) error {
	items, err := h.service.GetTestimonials(c.UserContext(), true)
	if err != nil {
		return respondError(c, err, "Could not retrieve testimonials")
	}
	return c.JSON(items)
}

func (h *TestimonialHandler) HandleGetAll(c *fiber.Ctx) error {
	items, err := h.service.GetTestimonials(c.UserContext(), false)
	if err != nil {
		return respondError(c, err, "Could not retrieve testimonials")
	}
	return c.JSON(items)
}

func (h *TestimonialHandler) HandleGetTestimonial(c *fiber.Ctx) error {
	item, err := h.service.GetTestimonialByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Testimonial not found")
	}
	return c.JSON(item)
}

func (h *TestimonialHandler) HandleCreateTestimonial(c *fiber.Ctx) error {
	var t models.Testimonial
	if err := c.BodyParser(&t); err != nil {
		return badBody(c, err)
	}
	t.ID = ""
	if err := h.service.CreateTestimonial(c.UserContext(), &t); err != nil {
		return respondError(c, err, "Could not create testimonial")
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *TestimonialHandler) HandleUpdateTestimonial(c *fiber.Ctx) error {
	var t models.Testimonial
	if err := c.BodyParser(&t); err != nil {
		return badBody(c, err)
	}
	if err := h.service.UpdateTestimonial(c.UserContext(), c.Params("id"), &t); err != nil {
		return respondError(c, err, "Could not update testimonial")
	}
	return c.JSON(t)
}

func (h *TestimonialHandler) HandleDeleteTestimonial(c *fiber.Ctx) error {
	if err := h.service.DeleteTestimonial(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete testimonial")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	service *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/contact", h.HandleSubmit)
}

func (h *ContactHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/contact", h.HandleList)
}

func (h *ContactHandler) HandleSubmit(c *fiber.Ctx) error {
	var msg models.ContactMessage
	if err := c.BodyParser(&msg); err != nil {
		return badBody(c, err)
	}
	msg.ID = ""
	if err := h.service.Submit(c.UserContext(), &msg); err != nil {
		return respondError(c, err, "Could not send message")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message received",
		"id":      msg.ID,
	})
}

func (h *ContactHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), parsePage(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve messages")
	}
	return c.JSON(page)
}
