package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"academy/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSpeakerRepository is a GORM implementation of SpeakerRepository.
type GORMSpeakerRepository struct {
	db *gorm.DB
}

func NewGORMSpeakerRepository(db *gorm.DB) *GORMSpeakerRepository {
	return &GORMSpeakerRepository{db: db}
}

func (r *GORMSpeakerRepository) GetAll(ctx context.Context) ([]models.Speaker, error) {
	var speakers []models.Speaker
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Order("name ASC").Find(&speakers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all speakers: %w", err)
	}
	return speakers, nil
}

func (r *GORMSpeakerRepository) GetByID(ctx context.Context, id string) (*models.Speaker, error) {
	var speaker models.Speaker
	if err := r.db.WithContext(ctx).First(&speaker, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("speaker with ID %s: %w", id, ErrSpeakerNotFound)
		}
		return nil, fmt.Errorf("failed to get speaker by ID %s: %w", id, err)
	}
	return &speaker, nil
}

func (r *GORMSpeakerRepository) Create(ctx context.Context, speaker *models.Speaker) error {
	if speaker.ID == "" {
		speaker.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(speaker).Error; err != nil {
		return fmt.Errorf("failed to create speaker: %w", err)
	}
	return nil
}

func (r *GORMSpeakerRepository) Update(ctx context.Context, speaker *models.Speaker) error {
	speaker.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Speaker{ID: speaker.ID}).
		Select("name", "headline", "bio", "photo_url", "sort_order", "updated_at").
		Updates(speaker)
	if res.Error != nil {
		return fmt.Errorf("failed to update speaker: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("speaker with ID %s: %w", speaker.ID, ErrSpeakerNotFound)
	}
	return nil
}

func (r *GORMSpeakerRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Speaker{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete speaker: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("speaker with ID %s: %w", id, ErrSpeakerNotFound)
	}
	return nil
}

// GORMTestimonialRepository is a GORM implementation of TestimonialRepository.
type GORMTestimonialRepository struct {
	db *gorm.DB
}

func NewGORMTestimonialRepository(db *gorm.DB) *GORMTestimonialRepository {
	return &GORMTestimonialRepository{db: db}
}

func (r *GORMTestimonialRepository) GetAll(ctx context.Context, publishedOnly bool) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&testimonials).Error; err != nil {
		return nil, fmt.Errorf("failed to get testimonials: %w", err)
	}
	return testimonials, nil
}

func (r *GORMTestimonialRepository) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	var t models.Testimonial
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("testimonial with ID %s: %w", id, ErrTestimonialNotFound)
		}
		return nil, fmt.Errorf("failed to get testimonial by ID %s: %w", id, err)
	}
	return &t, nil
}

func (r *GORMTestimonialRepository) Create(ctx context.Context, t *models.Testimonial) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}

func (r *GORMTestimonialRepository) Update(ctx context.Context, t *models.Testimonial) error {
	t.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Testimonial{ID: t.ID}).
		Select("author_name", "author_role", "quote", "rating", "published", "updated_at").
		Updates(t)
	if res.Error != nil {
		return fmt.Errorf("failed to update testimonial: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("testimonial with ID %s: %w", t.ID, ErrTestimonialNotFound)
	}
	return nil
}

func (r *GORMTestimonialRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Testimonial{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete testimonial: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("testimonial with ID %s: %w", id, ErrTestimonialNotFound)
	}
	return nil
}

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{db: db}
}

func (r *GORMContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}
	return nil
}

func (r *GORMContactRepository) GetAll(ctx context.Context, page models.Page) ([]models.ContactMessage, int64, error) {
	page = page.Normalize()
	var (
		msgs  []models.ContactMessage
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}
	err := r.db.WithContext(ctx).Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&msgs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get contact messages: %w", err)
	}
	return msgs, total, nil
}
