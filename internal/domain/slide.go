package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxSlideMessageLen caps the length of a homepage message slide.
const MaxSlideMessageLen = 300

// MessageSlide is one rotating announcement on the marketing homepage.
type MessageSlide struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	IsActive  bool      `json:"isActive"`
	SortOrder int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MessageSlideUpdate carries optional slide fields for a PATCH.
type MessageSlideUpdate struct {
	Message   *string
	IsActive  *bool
	SortOrder *int
}
