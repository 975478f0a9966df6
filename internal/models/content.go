package models

import (
	"time"

	"gorm.io/gorm"
)

// Speaker is an instructor or guest presenting at events.
type Speaker struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string         `json:"name" gorm:"type:varchar(150)" validate:"required,min=2,max=150"`
	Headline  string         `json:"headline" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	Bio       string         `json:"bio" gorm:"type:text"`
	PhotoURL  string         `json:"photo_url" gorm:"type:varchar(500)" validate:"omitempty,url"`
	SortOrder int            `json:"sort_order" validate:"gte=0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Testimonial is a quote from a past student.
type Testimonial struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AuthorName string    `json:"author_name" gorm:"type:varchar(150)" validate:"required,min=2,max=150"`
	AuthorRole string    `json:"author_role" gorm:"type:varchar(150)" validate:"omitempty,max=150"`
	Quote      string    `json:"quote" gorm:"type:text" validate:"required,min=10,max=2000"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Published  bool      `json:"published" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(150)" validate:"required,min=2,max=150"`
	Email     string    `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Phone     string    `json:"phone" gorm:"type:varchar(32)" validate:"omitempty,max=32"`
	Subject   string    `json:"subject" gorm:"type:varchar(200)" validate:"omitempty,max=200"`
	Message   string    `json:"message" gorm:"type:text" validate:"required,min=10,max=5000"`
	CreatedAt time.Time `json:"created_at"`
}
