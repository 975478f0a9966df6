package models

import (
	"time"

	"gorm.io/gorm"
)

// EventKind distinguishes the two kinds of catalog entries.
type EventKind string

const (
	KindCourse  EventKind = "course"
	KindWebinar EventKind = "webinar"
)

// Event is a course or webinar in the public catalog.
type Event struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;type:varchar(200)" validate:"required,slug,max=200"`
	Title       string         `json:"title" gorm:"type:varchar(200)" validate:"required,min=3,max=200"`
	Kind        EventKind      `json:"kind" gorm:"type:varchar(16);index" validate:"required,oneof=course webinar"`
	Summary     string         `json:"summary" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Description string         `json:"description" gorm:"type:text"`
	StartsAt    *time.Time     `json:"starts_at,omitempty" gorm:"index"`
	Location    string         `json:"location" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	ImageURL    string         `json:"image_url" gorm:"type:varchar(500)" validate:"omitempty,url"`
	Published   bool           `json:"published" gorm:"index"`
	Speakers    []Speaker      `json:"speakers,omitempty" gorm:"many2many:event_speakers" validate:"-"`
	SpeakerIDs  []string       `json:"speaker_ids,omitempty" gorm:"-" validate:"omitempty,dive,required"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
