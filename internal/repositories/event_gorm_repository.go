package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"academy/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var eventColumns = []string{
	"slug", "title", "kind", "summary", "description",
	"starts_at", "location", "image_url", "published", "updated_at",
}

// GORMEventRepository is a GORM implementation of EventRepository.
type GORMEventRepository struct {
	db *gorm.DB
}

// NewGORMEventRepository creates a new instance of GORMEventRepository.
func NewGORMEventRepository(db *gorm.DB) *GORMEventRepository {
	return &GORMEventRepository{
		db: db,
	}
}

func (r *GORMEventRepository) filtered(ctx context.Context, filter models.EventFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Event{})
	if filter.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if s := strings.TrimSpace(filter.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(summary) LIKE ?", like, like)
	}
	return q
}

// List retrieves a filtered page of events ordered by start date.
func (r *GORMEventRepository) List(ctx context.Context, filter models.EventFilter, page models.Page) ([]models.Event, int64, error) {
	page = page.Normalize()
	var (
		events []models.Event
		total  int64
	)
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}
	err := r.filtered(ctx, filter).
		Preload("Speakers").
		Order("starts_at ASC").Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&events).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return events, total, nil
}

// GetByID retrieves a single event by its ID.
func (r *GORMEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Preload("Speakers").First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event with ID %s: %w", id, ErrEventNotFound)
		}
		return nil, fmt.Errorf("failed to get event by ID %s: %w", id, err)
	}
	return &event, nil
}

// GetBySlug retrieves a single event by its slug.
func (r *GORMEventRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Event, error) {
	var event models.Event
	q := r.db.WithContext(ctx).Preload("Speakers").Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	if err := q.First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event with slug %s: %w", slug, ErrEventNotFound)
		}
		return nil, fmt.Errorf("failed to get event by slug %s: %w", slug, err)
	}
	return &event, nil
}

func (r *GORMEventRepository) loadSpeakers(ctx context.Context, ids []string) ([]models.Speaker, error) {
	if len(ids) == 0 {
		return []models.Speaker{}, nil
	}
	var speakers []models.Speaker
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&speakers).Error; err != nil {
		return nil, fmt.Errorf("failed to load speakers: %w", err)
	}
	if len(speakers) != len(ids) {
		return nil, fmt.Errorf("event references unknown speaker: %w", ErrSpeakerNotFound)
	}
	return speakers, nil
}

// Create creates a new event and links its speakers.
func (r *GORMEventRepository) Create(ctx context.Context, event *models.Event) error {
	speakers, err := r.loadSpeakers(ctx, event.SpeakerIDs)
	if err != nil {
		return err
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.Speakers = speakers
	if err := r.db.WithContext(ctx).Omit("Speakers.*").Create(event).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("event %q: %w", event.Slug, ErrDuplicateSlug)
		}
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// Update overwrites the editable fields of an event and replaces its speakers.
func (r *GORMEventRepository) Update(ctx context.Context, event *models.Event) error {
	speakers, err := r.loadSpeakers(ctx, event.SpeakerIDs)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event.UpdatedAt = time.Now()
		res := tx.Model(&models.Event{ID: event.ID}).Select(eventColumns).Updates(event)
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("event %q: %w", event.Slug, ErrDuplicateSlug)
		}
		if res.Error != nil {
			return fmt.Errorf("failed to update event: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("event with ID %s: %w", event.ID, ErrEventNotFound)
		}
		assoc := tx.Model(&models.Event{ID: event.ID}).Association("Speakers")
		if len(speakers) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(speakers)
		}
		if err != nil {
			return fmt.Errorf("failed to update event speakers: %w", err)
		}
		event.Speakers = speakers
		return nil
	})
}

// Delete soft-deletes an event by its ID.
func (r *GORMEventRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("event with ID %s: %w", id, ErrEventNotFound)
	}
	return nil
}
