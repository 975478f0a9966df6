package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"academy/internal/models"
	"academy/internal/notifications"
	"academy/internal/repositories"
	"academy/internal/validation"

	"github.com/go-playground/validator/v10"
)

func validateStruct(v *validator.Validate, s interface{}) error {
	if err := v.Struct(s); err != nil {
		if fields := validation.Fields(err); fields != nil {
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

// EventService handles business logic for courses and webinars.
type EventService struct {
	repo     repositories.EventRepository
	validate *validator.Validate
}

// NewEventService creates a new EventService.
func NewEventService(repo repositories.EventRepository) *EventService {
	return &EventService{repo: repo, validate: validation.New()}
}

// ListPublished returns the public catalog page.
func (s *EventService) ListPublished(ctx context.Context, kind models.EventKind, query string, page models.Page) (models.Paginated[models.Event], error) {
	if kind != "" && kind != models.KindCourse && kind != models.KindWebinar {
		return models.Paginated[models.Event]{}, &ValidationError{Fields: map[string]string{
			"Kind": "Field 'Kind' failed on the 'oneof' tag",
		}}
	}
	filter := models.EventFilter{Kind: kind, Query: strings.TrimSpace(query), PublishedOnly: true}
	return s.list(ctx, filter, page)
}

// ListAll returns every event, published or not, for the admin panel.
func (s *EventService) ListAll(ctx context.Context, page models.Page) (models.Paginated[models.Event], error) {
	return s.list(ctx, models.EventFilter{}, page)
}

func (s *EventService) list(ctx context.Context, filter models.EventFilter, page models.Page) (models.Paginated[models.Event], error) {
	page = page.Normalize()
	events, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return models.Paginated[models.Event]{}, err
	}
	return models.Paginated[models.Event]{Items: events, Total: total, Page: page.Number, Limit: page.Size}, nil
}

// GetPublishedBySlug returns a published event for the public detail page.
func (s *EventService) GetPublishedBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return s.repo.GetBySlug(ctx, strings.ToLower(slug), true)
}

// GetByID returns any event by its ID.
func (s *EventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateEvent validates and stores a new event.
func (s *EventService) CreateEvent(ctx context.Context, event *models.Event) error {
	event.Slug = strings.ToLower(strings.TrimSpace(event.Slug))
	if err := validateStruct(s.validate, event); err != nil {
		return err
	}
	return s.repo.Create(ctx, event)
}

// UpdateEvent validates and replaces an existing event.
func (s *EventService) UpdateEvent(ctx context.Context, id string, event *models.Event) error {
	event.ID = id
	event.Slug = strings.ToLower(strings.TrimSpace(event.Slug))
	if err := validateStruct(s.validate, event); err != nil {
		return err
	}
	return s.repo.Update(ctx, event)
}

// DeleteEvent removes an event.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SpeakerService handles business logic for speakers.
type SpeakerService struct {
	repo     repositories.SpeakerRepository
	validate *validator.Validate
}

// NewSpeakerService creates a new SpeakerService.
func NewSpeakerService(repo repositories.SpeakerRepository) *SpeakerService {
	return &SpeakerService{repo: repo, validate: validation.New()}
}

func (s *SpeakerService) GetAllSpeakers(ctx context.Context) ([]models.Speaker, error) {
	return s.repo.GetAll(ctx)
}

func (s *SpeakerService) GetSpeakerByID(ctx context.Context, id string) (*models.Speaker, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SpeakerService) CreateSpeaker(ctx context.Context, speaker *models.Speaker) error {
	if err := validateStruct(s.validate, speaker); err != nil {
		return err
	}
	return s.repo.Create(ctx, speaker)
}

func (s *SpeakerService) UpdateSpeaker(ctx context.Context, id string, speaker *models.Speaker) error {
	speaker.ID = id
	if err := validateStruct(s.validate, speaker); err != nil {
		return err
	}
	return s.repo.Update(ctx, speaker)
}

func (s *SpeakerService) DeleteSpeaker(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// TestimonialService handles business logic for testimonials.
type TestimonialService struct {
	repo     repositories.TestimonialRepository
	validate *validator.Validate
}

// NewTestimonialService creates a new TestimonialService.
func NewTestimonialService(repo repositories.TestimonialRepository) *TestimonialService {
	return &TestimonialService{repo: repo, validate: validation.New()}
}

// GetTestimonials lists testimonials; the public site only sees published ones.
func (s *TestimonialService) GetTestimonials(ctx context.Context, publishedOnly bool) ([]models.Testimonial, error) {
	return s.repo.GetAll(ctx, publishedOnly)
}

func (s *TestimonialService) GetTestimonialByID(ctx context.Context, id string) (*models.Testimonial, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TestimonialService) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	if err := validateStruct(s.validate, t); err != nil {
		return err
	}
	return s.repo.Create(ctx, t)
}

func (s *TestimonialService) UpdateTestimonial(ctx context.Context, id string, t *models.Testimonial) error {
	t.ID = id
	if err := validateStruct(s.validate, t); err != nil {
		return err
	}
	return s.repo.Update(ctx, t)
}

func (s *TestimonialService) DeleteTestimonial(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ContactService stores contact form submissions and alerts the admin.
type ContactService struct {
	repo       repositories.ContactRepository
	notifier   notifications.Sender
	adminEmail string
	validate   *validator.Validate
}

// NewContactService creates a new ContactService.
func NewContactService(repo repositories.ContactRepository, notifier notifications.Sender, adminEmail string) *ContactService {
	return &ContactService{
		repo:       repo,
		notifier:   notifier,
		adminEmail: adminEmail,
		validate:   validation.New(),
	}
}

// Submit stores the message, then emails the admin. A failed email does
// not fail the submission.
func (s *ContactService) Submit(ctx context.Context, msg *models.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.ToLower(strings.TrimSpace(msg.Email))
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)
	if err := validateStruct(s.validate, msg); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}

	sent := s.notifier.Send(ctx, notifications.AdminContact(s.adminEmail, notifications.ContactEmail{
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Subject: msg.Subject,
		Message: msg.Message,
	}))
	if !sent {
		log.Printf("Contact message %s stored but admin was not notified", msg.ID)
	}
	return nil
}

// List returns a page of contact messages, newest first.
func (s *ContactService) List(ctx context.Context, page models.Page) (models.Paginated[models.ContactMessage], error) {
	page = page.Normalize()
	msgs, total, err := s.repo.GetAll(ctx, page)
	if err != nil {
		return models.Paginated[models.ContactMessage]{}, err
	}
	return models.Paginated[models.ContactMessage]{Items: msgs, Total: total, Page: page.Number, Limit: page.Size}, nil
}
