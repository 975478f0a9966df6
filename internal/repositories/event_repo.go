package repositories

import (
	"context"
	"errors"

	"academy/internal/models"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrSpeakerNotFound     = errors.New("speaker not found")
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrDuplicateSlug       = errors.New("slug already in use")
)

// EventRepository defines the interface for course and webinar data access.
type EventRepository interface {
	List(ctx context.Context, filter models.EventFilter, page models.Page) ([]models.Event, int64, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

// SpeakerRepository defines the interface for speaker data access.
type SpeakerRepository interface {
	GetAll(ctx context.Context) ([]models.Speaker, error)
	GetByID(ctx context.Context, id string) (*models.Speaker, error)
	Create(ctx context.Context, speaker *models.Speaker) error
	Update(ctx context.Context, speaker *models.Speaker) error
	Delete(ctx context.Context, id string) error
}

// TestimonialRepository defines the interface for testimonial data access.
type TestimonialRepository interface {
	GetAll(ctx context.Context, publishedOnly bool) ([]models.Testimonial, error)
	GetByID(ctx context.Context, id string) (*models.Testimonial, error)
	Create(ctx context.Context, testimonial *models.Testimonial) error
	Update(ctx context.Context, testimonial *models.Testimonial) error
	Delete(ctx context.Context, id string) error
}

// ContactRepository stores contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetAll(ctx context.Context, page models.Page) ([]models.ContactMessage, int64, error)
}
